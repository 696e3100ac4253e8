package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents one canonical bank-statement line item.
//
// The sign of Amount is the single source of truth for monetary direction:
// positive means credit (inflow), negative means debit (outflow). Direction
// is never stored separately.
type Movement struct {
	ID                  string
	Bank                string
	Account             string
	OperationDate       time.Time
	ValueDate           *time.Time
	Concept             string
	Amount              decimal.Decimal // Signed: credit positive, debit negative
	Balance             *decimal.Decimal
	CounterpartyTaxID   string // 11-digit CUIT scanned from the concept, when present
	CounterpartyAccount string
	Reference           string
}

// IsCredit reports whether the movement is an inflow.
func (m Movement) IsCredit() bool {
	return m.Amount.IsPositive()
}
