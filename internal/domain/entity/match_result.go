package entity

import (
	"github.com/google/uuid"
)

// MatchStatus classifies the outcome of matching one movement.
type MatchStatus string

const (
	StatusMatched   MatchStatus = "matched"
	StatusSuggested MatchStatus = "suggested"
	StatusPending   MatchStatus = "pending"
	StatusError     MatchStatus = "error"
)

// DocumentKind identifies which side of the ledger a candidate came from.
type DocumentKind string

const (
	KindSale     DocumentKind = "venta"
	KindPurchase DocumentKind = "compra"
)

// MatchResult is the outcome of pairing one Movement with its best-candidate
// ledger record during a single pass. Exactly one of Sale/Purchase is set
// when a candidate was found; both are nil for pending movements with no
// candidates. Results are immutable; a re-run of the engine produces fresh
// MatchResults.
type MatchResult struct {
	ID       uuid.UUID
	Movement Movement
	Sale     *Sale
	Purchase *Purchase
	Kind     DocumentKind // Inferred document type, empty when no candidate
	Score    float64      // Weighted total in [0,1]
	Criteria map[string]float64
	Status   MatchStatus
	Reason   string
}

// DocumentID returns the matched ledger record's ID, or "" when none.
func (r MatchResult) DocumentID() string {
	switch {
	case r.Sale != nil:
		return r.Sale.ID
	case r.Purchase != nil:
		return r.Purchase.ID
	}
	return ""
}
