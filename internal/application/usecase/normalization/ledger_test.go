package normalization

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// row builds a grid row from raw strings; empty strings become empty cells.
func row(values ...string) []valueobject.Cell {
	cells := make([]valueobject.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, valueobject.StringCell(v))
	}
	return cells
}

func salesHeader() []valueobject.Cell {
	return row("Fecha", "Tipo", "Número", "Razón Social", "CUIT", "Neto Gravado", "IVA", "Imp. Total")
}

func TestNormalizeSales(t *testing.T) {
	t.Run("header on first row", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			salesHeader(),
			row("10/09/2024", "FC A", "0001-00001234", "AGRO SUR SA", "30-11122233-3", "82644,63", "17355,37", "100000,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 {
			t.Fatalf("expected 1 sale, got %d", len(sales))
		}
		s := sales[0]
		if s.ID != "venta-1" {
			t.Errorf("expected ID venta-1, got %q", s.ID)
		}
		if want := time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC); !s.IssueDate.Equal(want) {
			t.Errorf("expected issue date %v, got %v", want, s.IssueDate)
		}
		if s.CustomerName != "AGRO SUR SA" {
			t.Errorf("expected customer name, got %q", s.CustomerName)
		}
		if s.CustomerTaxID != "30111222333" {
			t.Errorf("expected normalized CUIT, got %q", s.CustomerTaxID)
		}
		if s.TotalAmount.String() != "100000" {
			t.Errorf("expected total 100000, got %s", s.TotalAmount.String())
		}
	})

	t.Run("title row pushes header down", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			row("Libro IVA Ventas - Septiembre 2024"),
			salesHeader(),
			row("10/09/2024", "FC A", "0001-00001234", "AGRO SUR SA", "30111222333", "", "", "100000,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 {
			t.Fatalf("expected 1 sale, got %d", len(sales))
		}
	})

	t.Run("blank first row pushes header down", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			row("", "", ""),
			salesHeader(),
			row("10/09/2024", "", "", "", "", "", "", "1500,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 {
			t.Fatalf("expected 1 sale, got %d", len(sales))
		}
	})

	t.Run("alias resolution prefers earlier aliases", func(t *testing.T) {
		// "Monto" only matches after the "total" aliases fail.
		grid := [][]valueobject.Cell{
			row("Fecha", "Cliente", "Monto"),
			row("10/09/2024", "ACME SA", "2500,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 || sales[0].TotalAmount.String() != "2500" {
			t.Fatalf("expected total 2500, got %+v", sales)
		}
	})

	t.Run("rows without date are skipped", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			salesHeader(),
			row("", "", "", "", "", "", "", "100,00"),
			row("10/09/2024", "", "", "", "", "", "", "100,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 {
			t.Fatalf("expected 1 sale, got %d", len(sales))
		}
	})

	t.Run("non-positive totals are discarded", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			salesHeader(),
			row("10/09/2024", "", "", "", "", "", "", "0,00"),
			row("11/09/2024", "", "", "", "", "", "", "-500,00"),
			row("12/09/2024", "", "", "", "", "", "", "750,00"),
		}
		sales, err := NormalizeSales(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sales) != 1 {
			t.Fatalf("expected only the positive-total row, got %d", len(sales))
		}
	})

	t.Run("empty grid is a structural error", func(t *testing.T) {
		_, err := NormalizeSales(nil)
		if !errors.Is(err, domainerror.ErrEmptyGrid) {
			t.Errorf("expected ErrEmptyGrid, got %v", err)
		}
	})

	t.Run("missing header is a structural error", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			row("a", "b", "c"),
			row("d", "e", "f"),
		}
		_, err := NormalizeSales(grid)
		if !errors.Is(err, domainerror.ErrHeaderNotFound) {
			t.Errorf("expected ErrHeaderNotFound, got %v", err)
		}
	})

	t.Run("unresolved total column is a structural error", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			row("Fecha", "Cliente", "Observaciones"),
			row("10/09/2024", "ACME SA", "sin importar"),
		}
		_, err := NormalizeSales(grid)
		if !errors.Is(err, domainerror.ErrColumnsUnresolved) {
			t.Errorf("expected ErrColumnsUnresolved, got %v", err)
		}
	})
}

func TestNormalizePurchases(t *testing.T) {
	t.Run("supplier columns resolve", func(t *testing.T) {
		grid := [][]valueobject.Cell{
			row("Fecha", "Comprobante", "Proveedor", "CUIT", "Imp. Total"),
			row("05/09/2024", "FC A 0002-00000042", "DISTRIBUIDORA NORTE SRL", "30-22233344-5", "50000,00"),
		}
		purchases, err := NormalizePurchases(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(purchases) != 1 {
			t.Fatalf("expected 1 purchase, got %d", len(purchases))
		}
		p := purchases[0]
		if p.ID != "compra-1" {
			t.Errorf("expected ID compra-1, got %q", p.ID)
		}
		if p.SupplierName != "DISTRIBUIDORA NORTE SRL" {
			t.Errorf("expected supplier name, got %q", p.SupplierName)
		}
		if p.SupplierTaxID != "30222333445" {
			t.Errorf("expected normalized CUIT, got %q", p.SupplierTaxID)
		}
	})

	t.Run("header-only grid yields no records", func(t *testing.T) {
		purchases, err := NormalizePurchases([][]valueobject.Cell{salesHeader()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(purchases) != 0 {
			t.Fatalf("expected no purchases, got %d", len(purchases))
		}
	})
}
