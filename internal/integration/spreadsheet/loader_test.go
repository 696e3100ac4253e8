package spreadsheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadBytesCSV(t *testing.T) {
	t.Run("semicolon-delimited export", func(t *testing.T) {
		data := []byte("Fecha;Concepto;Importe\n11/09/2024;TRANSFERENCIA;99500,00\n")
		grid, err := LoadBytes(data, ".csv")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(grid) != 2 || len(grid[0]) != 3 {
			t.Fatalf("unexpected grid shape: %d rows", len(grid))
		}
		if grid[1][2].Text != "99500,00" {
			t.Errorf("expected the comma decimal to survive splitting, got %q", grid[1][2].Text)
		}
	})

	t.Run("comma-delimited export", func(t *testing.T) {
		data := []byte("Fecha,Concepto,Importe\n11/09/2024,TRANSFERENCIA,\"99500,00\"\n")
		grid, err := LoadBytes(data, ".csv")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(grid[0]) != 3 {
			t.Fatalf("expected 3 columns, got %d", len(grid[0]))
		}
		if grid[1][2].Text != "99500,00" {
			t.Errorf("expected quoted amount intact, got %q", grid[1][2].Text)
		}
	})

	t.Run("ragged rows are preserved", func(t *testing.T) {
		data := []byte("a;b;c\n1;2\n")
		grid, err := LoadBytes(data, ".csv")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(grid[1]) != 2 {
			t.Errorf("expected short row kept as-is, got %d cells", len(grid[1]))
		}
	})

	t.Run("blank cells classify as empty", func(t *testing.T) {
		data := []byte("a;;c\n")
		grid, err := LoadBytes(data, ".csv")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !grid[0][1].IsEmpty() {
			t.Error("expected middle cell to be empty")
		}
	})
}

func TestLoadBytesXLSX(t *testing.T) {
	buildWorkbook := func(t *testing.T) []byte {
		t.Helper()
		f := excelize.NewFile()
		defer f.Close()
		rows := [][]string{
			{"Fecha", "Concepto", "Importe"},
			{"11/09/2024", "TRANSFERENCIA", "99500,00"},
		}
		for i, row := range rows {
			for j, value := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue("Sheet1", cell, value); err != nil {
					t.Fatalf("set cell: %v", err)
				}
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatalf("write workbook: %v", err)
		}
		return buf.Bytes()
	}

	t.Run("xlsx by extension", func(t *testing.T) {
		grid, err := LoadBytes(buildWorkbook(t), ".xlsx")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(grid) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(grid))
		}
		if grid[0][0].Text != "Fecha" || grid[1][1].Text != "TRANSFERENCIA" {
			t.Errorf("unexpected cell content: %+v", grid)
		}
	})

	t.Run("xlsx sniffed despite csv extension", func(t *testing.T) {
		grid, err := LoadBytes(buildWorkbook(t), ".csv")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(grid) != 2 || grid[0][0].Text != "Fecha" {
			t.Errorf("content sniff did not route to the workbook parser: %+v", grid)
		}
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extracto.csv")
	if err := os.WriteFile(path, []byte("Fecha;Importe\n11/09/2024;100\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	grid, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(grid) != 2 || grid[1][1].Text != "100" {
		t.Errorf("unexpected grid: %+v", grid)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
