// Package valueobject contains domain value objects for the reconciliation system.
package valueobject

import (
	"strings"
	"time"
)

// CellKind tags the kind of value a spreadsheet cell holds. Raw rows of
// unknown shape never cross the normalizer boundary; loaders classify every
// cell into one of these kinds first.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
)

// Cell is one spreadsheet cell, already classified by kind. Exactly one of
// Text/Number/Date is meaningful depending on Kind.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// StringCell returns a text cell. Whitespace-only input collapses to an
// empty cell.
func StringCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyCell()
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// DateCell returns a date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Lower returns the lowercased text of a string cell, or "" for any other
// kind. Header matching works on this form.
func (c Cell) Lower() string {
	if c.Kind != CellString {
		return ""
	}
	return strings.ToLower(c.Text)
}
