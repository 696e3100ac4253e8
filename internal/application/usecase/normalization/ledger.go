package normalization

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// titleMarkers are texts that identify a report title row above the real
// header in common accounting-software exports.
var titleMarkers = []string{"libro", "subdiario", "listado"}

// headerScanLimit bounds how deep the header search goes in a ledger file.
const headerScanLimit = 5

// ledgerAliases lists, per canonical field, the acceptable header substrings
// in resolution order: the first alias with any matching header cell wins.
type ledgerAliases struct {
	date      []string
	docType   []string
	docNumber []string
	name      []string
	taxID     []string
	account   []string
	method    []string
	currency  []string
	reference []string
	dueDate   []string
	net       []string
	vat       []string
	total     []string
}

var salesAliases = ledgerAliases{
	date:      []string{"fecha"},
	docType:   []string{"tipo", "comprobante", "comp."},
	docNumber: []string{"número", "numero", "nro"},
	name:      []string{"razón social", "razon social", "cliente", "nombre"},
	taxID:     []string{"cuit", "c.u.i.t", "nro. doc", "documento"},
	account:   []string{"cbu", "cuenta"},
	method:    []string{"forma de cobro", "cobro", "condición", "condicion"},
	currency:  []string{"moneda"},
	reference: []string{"referencia", "ref.", "orden"},
	dueDate:   []string{"vencimiento", "vto", "cobro estimado"},
	net:       []string{"neto gravado", "imp. neto", "neto"},
	vat:       []string{"iva", "i.v.a"},
	total:     []string{"imp. total", "importe total", "total", "monto", "valor"},
}

var purchasesAliases = ledgerAliases{
	date:      []string{"fecha"},
	docType:   []string{"tipo", "comprobante", "comp."},
	docNumber: []string{"número", "numero", "nro"},
	name:      []string{"razón social", "razon social", "proveedor", "nombre"},
	taxID:     []string{"cuit", "c.u.i.t", "nro. doc", "documento"},
	account:   []string{"cbu", "cuenta"},
	method:    []string{"forma de pago", "pago", "condición", "condicion"},
	currency:  []string{"moneda"},
	reference: []string{"referencia", "ref.", "orden"},
	dueDate:   []string{"vencimiento", "vto", "pago estimado"},
	net:       []string{"neto gravado", "imp. neto", "neto"},
	vat:       []string{"iva", "i.v.a"},
	total:     []string{"imp. total", "importe total", "total", "monto", "valor"},
}

// ledgerColumns holds the resolved column index per field, -1 when the
// header has no matching column. Unresolved optional fields are simply
// omitted from the output records.
type ledgerColumns struct {
	date      int
	docType   int
	docNumber int
	name      int
	taxID     int
	account   int
	method    int
	currency  int
	reference int
	dueDate   int
	net       int
	vat       int
	total     int
}

// ledgerRecord is the side-neutral result of normalizing one data row.
type ledgerRecord struct {
	date      time.Time
	dueDate   *time.Time
	docType   string
	docNumber string
	name      string
	taxID     string
	account   string
	method    string
	currency  string
	reference string
	net       decimal.Decimal
	vat       decimal.Decimal
	total     decimal.Decimal
}

// NormalizeSales detects the column layout of a raw sales-ledger grid and
// emits canonical Sale records. Rows without a date are skipped and rows
// whose total is not strictly positive are discarded; those are the only
// validity gates.
func NormalizeSales(grid [][]valueobject.Cell) ([]entity.Sale, error) {
	records, err := normalizeLedger(grid, salesAliases)
	if err != nil {
		return nil, err
	}
	sales := make([]entity.Sale, 0, len(records))
	for _, r := range records {
		sales = append(sales, entity.Sale{
			ID:                 fmt.Sprintf("venta-%d", len(sales)+1),
			IssueDate:          r.date,
			ExpectedCollection: r.dueDate,
			DocType:            r.docType,
			DocNumber:          r.docNumber,
			CustomerName:       r.name,
			CustomerTaxID:      r.taxID,
			CustomerAccount:    r.account,
			CollectionMethod:   r.method,
			Currency:           r.currency,
			NetAmount:          r.net,
			VATAmount:          r.vat,
			TotalAmount:        r.total,
			Reference:          r.reference,
		})
	}
	return sales, nil
}

// NormalizePurchases is the purchases-side counterpart of NormalizeSales.
func NormalizePurchases(grid [][]valueobject.Cell) ([]entity.Purchase, error) {
	records, err := normalizeLedger(grid, purchasesAliases)
	if err != nil {
		return nil, err
	}
	purchases := make([]entity.Purchase, 0, len(records))
	for _, r := range records {
		purchases = append(purchases, entity.Purchase{
			ID:              fmt.Sprintf("compra-%d", len(purchases)+1),
			IssueDate:       r.date,
			ExpectedPayment: r.dueDate,
			DocType:         r.docType,
			DocNumber:       r.docNumber,
			SupplierName:    r.name,
			SupplierTaxID:   r.taxID,
			SupplierAccount: r.account,
			PaymentMethod:   r.method,
			Currency:        r.currency,
			NetAmount:       r.net,
			VATAmount:       r.vat,
			TotalAmount:     r.total,
			Reference:       r.reference,
		})
	}
	return purchases, nil
}

func normalizeLedger(grid [][]valueobject.Cell, aliases ledgerAliases) ([]ledgerRecord, error) {
	if len(grid) == 0 {
		return nil, domainerror.NewNormalizationError(
			domainerror.ErrCodeEmptyGrid,
			"ledger file contains no rows",
			domainerror.ErrEmptyGrid,
		)
	}

	headerIdx, dataIdx, ok := locateLedgerHeader(grid)
	if !ok {
		return nil, domainerror.NewNormalizationError(
			domainerror.ErrCodeHeaderNotFound,
			"no header row with a date column found",
			domainerror.ErrHeaderNotFound,
		)
	}

	cols := resolveLedgerColumns(grid[headerIdx], aliases)
	if cols.date < 0 || cols.total < 0 {
		if dataIdx < len(grid) {
			return nil, domainerror.NewNormalizationError(
				domainerror.ErrCodeColumnsUnresolved,
				"date or total column could not be resolved",
				domainerror.ErrColumnsUnresolved,
			)
		}
		return nil, nil
	}

	var records []ledgerRecord
	for _, row := range grid[dataIdx:] {
		dateCell := cellAt(row, cols.date)
		if dateCell.IsEmpty() {
			continue
		}
		total := ParseNumber(cellAt(row, cols.total))
		if !total.IsPositive() {
			continue
		}

		r := ledgerRecord{
			date:      ParseDate(dateCell),
			docType:   textAt(row, cols.docType),
			docNumber: textAt(row, cols.docNumber),
			name:      textAt(row, cols.name),
			taxID:     ParseCUIT(cellAt(row, cols.taxID)),
			account:   textAt(row, cols.account),
			method:    textAt(row, cols.method),
			currency:  textAt(row, cols.currency),
			reference: textAt(row, cols.reference),
			net:       ParseNumber(cellAt(row, cols.net)),
			vat:       ParseNumber(cellAt(row, cols.vat)),
			total:     total,
		}
		if cols.dueDate >= 0 && !cellAt(row, cols.dueDate).IsEmpty() {
			due := ParseDate(cellAt(row, cols.dueDate))
			r.dueDate = &due
		}
		records = append(records, r)
	}
	return records, nil
}

// locateLedgerHeader finds the header row and the first data row. A blank or
// title-marker first row pushes the header to row 1; otherwise the first of
// the top rows containing a "fecha" cell is the header.
func locateLedgerHeader(grid [][]valueobject.Cell) (header, data int, ok bool) {
	if rowIsBlank(grid[0]) || rowHasMarker(grid[0], titleMarkers) {
		if len(grid) < 2 {
			return 0, 0, false
		}
		return 1, 2, true
	}
	limit := headerScanLimit
	if len(grid) < limit {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		if rowHasMarker(grid[i], []string{"fecha"}) {
			return i, i + 1, true
		}
	}
	return 0, 0, false
}

func resolveLedgerColumns(header []valueobject.Cell, aliases ledgerAliases) ledgerColumns {
	return ledgerColumns{
		date:      findColumn(header, aliases.date),
		docType:   findColumn(header, aliases.docType),
		docNumber: findColumn(header, aliases.docNumber),
		name:      findColumn(header, aliases.name),
		taxID:     findColumn(header, aliases.taxID),
		account:   findColumn(header, aliases.account),
		method:    findColumn(header, aliases.method),
		currency:  findColumn(header, aliases.currency),
		reference: findColumn(header, aliases.reference),
		dueDate:   findColumn(header, aliases.dueDate),
		net:       findColumn(header, aliases.net),
		vat:       findColumn(header, aliases.vat),
		total:     findColumn(header, aliases.total),
	}
}
