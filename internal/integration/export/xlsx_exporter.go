// Package export serializes match results into downstream tabular formats.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/conciliador/backend/internal/application/adapter"
	"github.com/conciliador/backend/internal/domain/entity"
)

var resultHeaders = []string{
	"Fecha", "Concepto", "Importe", "Tipo", "Estado", "Referencia", "Score", "Motivo",
}

// xlsxExporter implements adapter.ResultExporter as a single-sheet workbook.
type xlsxExporter struct{}

// NewXLSXExporter creates a workbook-based result exporter.
func NewXLSXExporter() adapter.ResultExporter {
	return xlsxExporter{}
}

// Export writes one row per MatchResult with the fixed result columns.
func (xlsxExporter) Export(ctx context.Context, results []entity.MatchResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range resultHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, r := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reference := r.Movement.Reference
		if reference == "" {
			reference = r.DocumentID()
		}
		values := []interface{}{
			r.Movement.OperationDate.Format("02/01/2006"),
			r.Movement.Concept,
			r.Movement.Amount.InexactFloat64(),
			string(r.Kind),
			string(r.Status),
			reference,
			fmt.Sprintf("%.2f", r.Score),
			r.Reason,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
