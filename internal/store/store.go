// Package store persists a snapshot of the symbol index to SQLite so other
// tooling can inspect a workspace's symbols offline. The live index stays
// in memory; this is an export format, not the source of truth.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the snapshot tables.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the snapshot tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id           INTEGER PRIMARY KEY,
  path         TEXT NOT NULL UNIQUE,
  indexed_at   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id            INTEGER PRIMARY KEY,
  file_id       INTEGER NOT NULL REFERENCES files(id),
  name          TEXT NOT NULL,
  kind          TEXT NOT NULL,
  line          INTEGER,
  col           INTEGER,
  signature     TEXT,
  documentation TEXT,
  scope_key     TEXT,
  namespace     TEXT,
  parent_enum   TEXT
);

CREATE TABLE IF NOT EXISTS params (
  id           INTEGER PRIMARY KEY,
  symbol_id    INTEGER NOT NULL REFERENCES symbols(id),
  ordinal      INTEGER NOT NULL,
  name         TEXT NOT NULL,
  type_expr    TEXT,
  default_expr TEXT
);

CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_params_symbol ON params(symbol_id);
`

// File is one snapshot file record.
type File struct {
	ID        int64
	Path      string
	IndexedAt time.Time
}

// Symbol is one snapshot symbol row.
type Symbol struct {
	ID            int64
	FileID        int64
	Name          string
	Kind          string
	Line          int
	Col           int
	Signature     string
	Documentation string
	ScopeKey      string
	Namespace     string
	ParentEnum    string
}

// InsertFile inserts a file record and returns its ID.
func (s *Store) InsertFile(path string, indexedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, indexed_at) VALUES (?, ?)", path, indexedAt)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	return res.LastInsertId()
}

// InsertSymbol inserts a symbol row and returns its ID.
func (s *Store) InsertSymbol(sym *Symbol) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO symbols
		   (file_id, name, kind, line, col, signature, documentation, scope_key, namespace, parent_enum)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sym.FileID, sym.Name, sym.Kind, sym.Line, sym.Col,
		sym.Signature, sym.Documentation, sym.ScopeKey, sym.Namespace, sym.ParentEnum)
	if err != nil {
		return 0, fmt.Errorf("insert symbol: %w", err)
	}
	return res.LastInsertId()
}

// InsertParam inserts one parameter row for a symbol.
func (s *Store) InsertParam(symbolID int64, ordinal int, name, typeExpr, defaultExpr string) error {
	_, err := s.db.Exec(
		`INSERT INTO params (symbol_id, ordinal, name, type_expr, default_expr)
		 VALUES (?, ?, ?, ?, ?)`,
		symbolID, ordinal, name, typeExpr, defaultExpr)
	if err != nil {
		return fmt.Errorf("insert param: %w", err)
	}
	return nil
}

// SymbolsByName returns all symbol rows sharing a name.
func (s *Store) SymbolsByName(name string) ([]*Symbol, error) {
	rows, err := s.db.Query(
		`SELECT id, file_id, name, kind, line, col, signature, documentation, scope_key, namespace, parent_enum
		 FROM symbols WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("symbols by name: %w", err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

// SymbolsByFile returns all symbol rows for a file path.
func (s *Store) SymbolsByFile(path string) ([]*Symbol, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.file_id, s.name, s.kind, s.line, s.col, s.signature, s.documentation, s.scope_key, s.namespace, s.parent_enum
		 FROM symbols s JOIN files f ON s.file_id = f.id WHERE f.path = ?`, path)
	if err != nil {
		return nil, fmt.Errorf("symbols by file: %w", err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func scanSymbols(rows *sql.Rows) ([]*Symbol, error) {
	var syms []*Symbol
	for rows.Next() {
		sym := &Symbol{}
		if err := rows.Scan(&sym.ID, &sym.FileID, &sym.Name, &sym.Kind,
			&sym.Line, &sym.Col, &sym.Signature, &sym.Documentation,
			&sym.ScopeKey, &sym.Namespace, &sym.ParentEnum); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		syms = append(syms, sym)
	}
	return syms, rows.Err()
}
