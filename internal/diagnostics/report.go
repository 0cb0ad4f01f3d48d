// Package diagnostics invokes the HSL compiler as a subprocess and decodes
// its diagnostic report. The compiler is an external collaborator; every
// failure mode here degrades to zero diagnostics so error checking never
// blocks editing.
package diagnostics

import (
	"encoding/json"
	"fmt"
)

// Severity of a diagnostic entry.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Range is a zero-based highlighted span on one line.
type Range struct {
	Line      int `json:"line"`
	StartChar int `json:"startChar"`
	EndChar   int `json:"endChar"`
}

// Diagnostic is one decoded compiler finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Notes    []string `json:"notes,omitempty"`
	Ranges   []Range  `json:"ranges"`
}

// Wire format of the compiler's JSON report. The shape varies per entry, so
// every nested field is optional and decoded explicitly.

type reportEntry struct {
	Type   string        `json:"type"`
	Code   json.Number   `json:"code"`
	Title  string        `json:"title"`
	Notes  []string      `json:"notes"`
	Errors []entryErrors `json:"errors"`
}

type entryErrors struct {
	Tokens []entryToken `json:"tokens"`
}

type entryToken struct {
	Meta tokenMeta `json:"meta"`
}

type tokenMeta struct {
	LineNumber int `json:"lineNumber"`
	LineIndex  int `json:"lineIndex"`
	BeginIndex int `json:"beginIndex"`
	EndIndex   int `json:"endIndex"`
}

// decodeReport parses the compiler's JSON array into diagnostics.
func decodeReport(data []byte) ([]Diagnostic, error) {
	var entries []reportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	diags := make([]Diagnostic, 0, len(entries))
	for _, entry := range entries {
		d := Diagnostic{
			Severity: severityFor(entry.Type),
			Code:     entry.Code.String(),
			Title:    entry.Title,
			Notes:    entry.Notes,
		}
		for _, errs := range entry.Errors {
			for _, tok := range errs.Tokens {
				d.Ranges = append(d.Ranges, Range{
					Line:      tok.Meta.LineIndex,
					StartChar: tok.Meta.BeginIndex,
					EndChar:   tok.Meta.EndIndex,
				})
			}
		}
		diags = append(diags, d)
	}
	return diags, nil
}

func severityFor(typ string) Severity {
	if typ == "WARNING" {
		return SeverityWarning
	}
	return SeverityError
}
