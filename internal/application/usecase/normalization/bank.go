package normalization

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// bankLayout identifies one of the known bank-statement column layouts.
type bankLayout int

const (
	// layoutMarked: date, marker, concept, debit, credit, value date,
	// balance, account. Headers carry "marca", "débito" and "crédito".
	layoutMarked bankLayout = iota
	// layoutSplit: date, concept, debit, credit, value date, balance,
	// account. Headers carry "débito" and "crédito" but no "marca".
	layoutSplit
	// layoutSigned: date, concept, signed amount, value date, balance.
	// Headers carry "importe" and neither "débito" nor "crédito".
	layoutSigned
	// layoutVoucher: date, voucher, concept, debit, credit, balance.
	// Headers carry unaccented "debito"/"credito" plus "movimiento".
	layoutVoucher
)

// bankColumns maps a layout onto fixed column positions; -1 marks a column
// the layout does not carry.
type bankColumns struct {
	date      int
	voucher   int
	concept   int
	debit     int
	credit    int
	amount    int
	valueDate int
	balance   int
	account   int
}

var bankLayoutColumns = map[bankLayout]bankColumns{
	layoutMarked:  {date: 0, voucher: -1, concept: 2, debit: 3, credit: 4, amount: -1, valueDate: 5, balance: 6, account: 7},
	layoutSplit:   {date: 0, voucher: -1, concept: 1, debit: 2, credit: 3, amount: -1, valueDate: 4, balance: 5, account: 6},
	layoutSigned:  {date: 0, voucher: -1, concept: 1, debit: -1, credit: -1, amount: 2, valueDate: 3, balance: 4, account: -1},
	layoutVoucher: {date: 0, voucher: 1, concept: 2, debit: 3, credit: 4, amount: -1, valueDate: -1, balance: 5, account: -1},
}

// NormalizeBankStatement classifies a raw bank-statement grid into one of
// the known column layouts and emits canonical Movement records with a
// signed amount (credit positive, debit negative). Layout detection never
// fails: when no header keyword matches, the column count decides. An empty
// grid is the only structural error.
func NormalizeBankStatement(grid [][]valueobject.Cell, bank string) ([]entity.Movement, error) {
	if len(grid) == 0 {
		return nil, domainerror.NewNormalizationError(
			domainerror.ErrCodeEmptyGrid,
			"bank statement contains no rows",
			domainerror.ErrEmptyGrid,
		)
	}

	headerIdx, dataIdx, found := locateBankHeader(grid)
	var layout bankLayout
	var detected bool
	if found {
		layout, detected = detectBankLayout(grid[headerIdx])
	}
	if !detected {
		layout = layoutByWidth(grid)
		if !found {
			dataIdx = 0
		}
	}
	cols := bankLayoutColumns[layout]

	var movements []entity.Movement
	for _, row := range grid[dataIdx:] {
		dateCell := cellAt(row, cols.date)
		if dateCell.IsEmpty() {
			continue
		}

		var amount decimal.Decimal
		if cols.amount >= 0 {
			amount = ParseNumber(cellAt(row, cols.amount))
		} else {
			debitCell := cellAt(row, cols.debit)
			creditCell := cellAt(row, cols.credit)
			if debitCell.IsEmpty() && creditCell.IsEmpty() {
				continue
			}
			amount = ParseNumber(creditCell).Sub(ParseNumber(debitCell).Abs())
		}
		if amount.IsZero() {
			continue
		}

		concept := textAt(row, cols.concept)
		// A CBU embeds an 11-digit run, so it must be cut before the CUIT scan.
		cbu := ScanCBU(concept)
		taxIDSource := concept
		if cbu != "" {
			taxIDSource = strings.Replace(concept, cbu, " ", 1)
		}
		m := entity.Movement{
			ID:                  fmt.Sprintf("mov-%d", len(movements)+1),
			Bank:                bank,
			Account:             textAt(row, cols.account),
			OperationDate:       ParseDate(dateCell),
			Concept:             concept,
			Amount:              amount,
			CounterpartyTaxID:   ScanCUIT(taxIDSource),
			CounterpartyAccount: cbu,
			Reference:           textAt(row, cols.voucher),
		}
		if vd := cellAt(row, cols.valueDate); !vd.IsEmpty() {
			valueDate := ParseDate(vd)
			m.ValueDate = &valueDate
		}
		if bal := cellAt(row, cols.balance); !bal.IsEmpty() {
			balance := ParseNumber(bal)
			m.Balance = &balance
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func locateBankHeader(grid [][]valueobject.Cell) (header, data int, ok bool) {
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

// detectBankLayout inspects the lowercased header text. Matching is
// deliberately diacritic-sensitive: the voucher layout's bank exports
// unaccented "debito"/"credito" headers, which is part of its signature.
func detectBankLayout(header []valueobject.Cell) (bankLayout, bool) {
	var parts []string
	for _, c := range header {
		if lower := c.Lower(); lower != "" {
			parts = append(parts, lower)
		}
	}
	text := strings.Join(parts, " ")

	has := func(s string) bool { return strings.Contains(text, s) }
	switch {
	case has("marca") && has("débito") && has("crédito"):
		return layoutMarked, true
	case has("débito") && has("crédito"):
		return layoutSplit, true
	case has("importe") && !has("débito") && !has("crédito"):
		return layoutSigned, true
	case has("debito") && has("credito") && has("movimiento"):
		return layoutVoucher, true
	}
	return layoutSigned, false
}

// layoutByWidth guesses the layout from the widest row when no header
// keyword matched.
func layoutByWidth(grid [][]valueobject.Cell) bankLayout {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	switch {
	case width >= 8:
		return layoutMarked
	case width >= 6:
		return layoutSplit
	}
	return layoutSigned
}
