package reconciliation

import (
	"sort"

	"github.com/conciliador/backend/internal/application/usecase/matching"
	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// Snapshot captures the full serializable state of the session so a caller
// can persist it between passes and restore it later, instead of keeping a
// long-lived in-process object.
func (s *Session) Snapshot() *entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &entity.SessionSnapshot{
		ID:                 s.id,
		CreatedAt:          s.createdAt,
		Sales:              append([]entity.Sale(nil), s.sales...),
		Purchases:          append([]entity.Purchase(nil), s.purchases...),
		MatchedSaleIDs:     sortedKeys(s.matchedSaleIDs),
		MatchedPurchaseIDs: sortedKeys(s.matchedPurchaseIDs),
		Steps:              append([]entity.BankStep(nil), s.steps...),
		Matched:            append([]entity.MatchResult(nil), s.matched...),
		Pending:            append([]entity.MatchResult(nil), s.pending...),
	}
	return snap
}

// Restore rebuilds a session from a snapshot. The restored session behaves
// exactly like the one the snapshot was taken from: already-consumed ledger
// records stay excluded from later passes.
func Restore(snap *entity.SessionSnapshot, cfg valueobject.MatchingConfig, opts ...Option) (*Session, error) {
	if snap == nil || (len(snap.Sales) == 0 && len(snap.Purchases) == 0) {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeMissingLedgerInput,
			"snapshot carries no ledger records",
			domainerror.ErrMissingLedgerInput,
		)
	}

	s := NewSession(cfg, opts...)
	s.id = snap.ID
	s.createdAt = snap.CreatedAt
	s.engine = matching.NewEngine(cfg)
	s.sales = append([]entity.Sale(nil), snap.Sales...)
	s.purchases = append([]entity.Purchase(nil), snap.Purchases...)
	s.matchedSaleIDs = toSet(snap.MatchedSaleIDs)
	s.matchedPurchaseIDs = toSet(snap.MatchedPurchaseIDs)
	s.steps = append([]entity.BankStep(nil), snap.Steps...)
	s.matched = append([]entity.MatchResult(nil), snap.Matched...)
	s.pending = append([]entity.MatchResult(nil), snap.Pending...)
	s.initialized = true
	return s, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
