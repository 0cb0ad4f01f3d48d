package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/housing-studio/hsl-index/internal/symbol"
)

// WriteSnapshot replaces the snapshot contents with the given declarations,
// grouped by file. Enum members are written as their own rows with
// parent_enum set.
func (s *Store) WriteSnapshot(byFile map[string][]*symbol.Declaration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"params", "symbols", "files"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	now := time.Now()
	for _, path := range paths {
		res, err := tx.Exec(
			"INSERT INTO files (path, indexed_at) VALUES (?, ?)", path, now)
		if err != nil {
			return fmt.Errorf("insert file: %w", err)
		}
		fileID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, d := range byFile[path] {
			if err := insertDeclTx(tx, fileID, d); err != nil {
				return err
			}
			for _, m := range d.Members {
				if err := insertDeclTx(tx, fileID, m); err != nil {
					return err
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertDeclTx(tx *sql.Tx, fileID int64, d *symbol.Declaration) error {
	res, err := tx.Exec(
		`INSERT INTO symbols
		   (file_id, name, kind, line, col, signature, documentation, scope_key, namespace, parent_enum)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fileID, d.Name, string(d.Kind), d.Line, d.Column,
		d.Signature, d.Documentation, d.ScopeKey, d.Namespace, d.ParentEnum)
	if err != nil {
		return fmt.Errorf("insert symbol %s: %w", d.Name, err)
	}
	symbolID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, p := range d.Params {
		if _, err := tx.Exec(
			`INSERT INTO params (symbol_id, ordinal, name, type_expr, default_expr)
			 VALUES (?, ?, ?, ?, ?)`,
			symbolID, i, p.Name, p.Type, p.Default); err != nil {
			return fmt.Errorf("insert param %s: %w", p.Name, err)
		}
	}
	return nil
}
