// Package spreadsheet loads CSV and XLSX files into the typed cell grid the
// normalizers consume. Workbook parsing is delegated to excelize; this
// package only classifies the resulting values.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// xlsxMagic is the ZIP signature every xlsx workbook starts with.
var xlsxMagic = []byte("PK\x03\x04")

// LoadFile reads a spreadsheet file into a cell grid. The format is decided
// by extension, with a content sniff as fallback for files exported under
// the wrong name.
func LoadFile(path string) ([][]valueobject.Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, filepath.Ext(path))
}

// LoadReader reads a spreadsheet from a stream. ext hints the format the
// same way a file extension would.
func LoadReader(r io.Reader, ext string) ([][]valueobject.Cell, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, ext)
}

// LoadBytes parses raw file bytes into a cell grid.
func LoadBytes(data []byte, ext string) ([][]valueobject.Cell, error) {
	if strings.EqualFold(ext, ".xlsx") || bytes.HasPrefix(data, xlsxMagic) {
		return loadWorkbook(data)
	}
	return loadCSV(data)
}

// loadWorkbook reads the first worksheet of an xlsx workbook.
func loadWorkbook(data []byte) ([][]valueobject.Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domainerror.NewNormalizationError(
			domainerror.ErrCodeEmptyGrid,
			"workbook has no sheets",
			domainerror.ErrEmptyGrid,
		)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return toGrid(rows), nil
}

// loadCSV reads a delimiter-sniffed CSV: Argentine exports use ";" as often
// as ",".
func loadCSV(data []byte) ([][]valueobject.Cell, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return toGrid(records), nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func toGrid(rows [][]string) [][]valueobject.Cell {
	grid := make([][]valueobject.Cell, 0, len(rows))
	for _, row := range rows {
		cells := make([]valueobject.Cell, 0, len(row))
		for _, value := range row {
			cells = append(cells, valueobject.StringCell(value))
		}
		grid = append(grid, cells)
	}
	return grid
}
