package normalization

import (
	"strings"

	"github.com/conciliador/backend/internal/domain/valueobject"
)

// findColumn resolves a column index by first-match fuzzy search: aliases
// are tried in order, and the first alias contained in any header cell wins.
// Returns -1 when no alias matches.
func findColumn(header []valueobject.Cell, aliases []string) int {
	for _, alias := range aliases {
		for i, cell := range header {
			if strings.Contains(cell.Lower(), alias) {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the cell at idx, or an empty cell when idx is out of range
// or unresolved (-1). Ragged rows are the norm in real exports.
func cellAt(row []valueobject.Cell, idx int) valueobject.Cell {
	if idx < 0 || idx >= len(row) {
		return valueobject.EmptyCell()
	}
	return row[idx]
}

// textAt returns the trimmed text at idx, "" for anything non-textual.
func textAt(row []valueobject.Cell, idx int) string {
	c := cellAt(row, idx)
	if c.Kind != valueobject.CellString {
		return ""
	}
	return c.Text
}

func rowIsBlank(row []valueobject.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// rowHasMarker reports whether any cell in the row contains one of the
// lowercased markers.
func rowHasMarker(row []valueobject.Cell, markers []string) bool {
	for _, c := range row {
		lower := c.Lower()
		if lower == "" {
			continue
		}
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}
