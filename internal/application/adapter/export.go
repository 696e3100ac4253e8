package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/entity"
)

// ResultExporter serializes a MatchResult list into a tabular document with
// the fixed columns date, concept, amount, type, status, reference, score
// and reason.
type ResultExporter interface {
	Export(ctx context.Context, results []entity.MatchResult) ([]byte, error)
}

// TaxLineItem is one withholding/tax movement already separated upstream by
// concept-keyword filtering, handed to the ledger-entry generator.
type TaxLineItem struct {
	Date    time.Time
	Concept string
	Amount  decimal.Decimal
}

// LedgerEntry is one side of a balanced accounting entry.
type LedgerEntry struct {
	Account     string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// LedgerEntryGenerator turns tax line items for one bank and period into
// balanced debit/credit entries. The entry formatting itself is an external
// collaborator; the core only defines the data handed across.
type LedgerEntryGenerator interface {
	Generate(ctx context.Context, items []TaxLineItem, bank, period string) ([]LedgerEntry, error)
}
