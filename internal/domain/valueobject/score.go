package valueobject

import "github.com/conciliador/backend/internal/domain/entity"

// MatchScore is the full scoring breakdown for one (movement, candidate)
// pair. Criteria holds the unweighted per-criterion scores in [0,1]; Total
// is their weighted sum.
type MatchScore struct {
	Total       float64
	Criteria    map[string]float64
	IsMatch     bool
	NeedsReview bool
}

// Status maps the score onto a MatchResult status tag.
func (s MatchScore) Status() entity.MatchStatus {
	switch {
	case s.IsMatch:
		return entity.StatusMatched
	case s.NeedsReview:
		return entity.StatusSuggested
	}
	return entity.StatusPending
}

// SummaryReport aggregates a whole multi-bank reconciliation session: the
// running totals over every processed pass plus the ordered step log.
type SummaryReport struct {
	TotalMatched     int
	TotalPending     int
	MatchRate        float64 // matched / (matched + pending), 0 when empty
	SalesMatched     int
	PurchasesMatched int
	Steps            []entity.BankStep
}
