// Package reconciliation contains the multi-bank sequential orchestrator.
// A Session holds the frozen ledger sets, tracks which records earlier
// passes already consumed, and drives the matching engine once per bank
// statement so a second bank's extract is only matched against the
// remainder.
package reconciliation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conciliador/backend/internal/application/adapter"
	"github.com/conciliador/backend/internal/application/usecase/matching"
	"github.com/conciliador/backend/internal/application/usecase/normalization"
	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// ReasonNothingPending is the reason carried by the sentinel result of a
// pass that found no pending ledger records.
const ReasonNothingPending = "nothing pending for this bank"

// Session is one reconciliation run over a fixed pair of ledger files and
// any number of sequential bank statements. Passes must be serialized; the
// mutex guards against accidental concurrent use, it does not make
// concurrent passes meaningful.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	createdAt time.Time
	engine    *matching.Engine
	observer  adapter.Observer

	initialized bool
	sales       []entity.Sale
	purchases   []entity.Purchase

	matchedSaleIDs     map[string]struct{}
	matchedPurchaseIDs map[string]struct{}
	steps              []entity.BankStep
	matched            []entity.MatchResult
	pending            []entity.MatchResult
}

// Option configures a Session.
type Option func(*Session)

// WithObserver wires structured pass instrumentation into the session.
func WithObserver(o adapter.Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// NewSession creates an empty session with the given matching
// configuration. Initialize must succeed before any bank can be processed.
func NewSession(cfg valueobject.MatchingConfig, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		engine:    matching.NewEngine(cfg),
		observer:  adapter.NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the opaque session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Initialize parses and freezes the full ledger record sets and resets all
// accumulated state. It fails fast when neither file yields a single
// parseable record, since no bank could ever be processed against an empty
// ledger. Initialize may be retried after a failure.
func (s *Session) Initialize(salesGrid, purchasesGrid [][]valueobject.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := normalization.NormalizeSales(salesGrid)
	if err != nil {
		return err
	}
	purchases, err := normalization.NormalizePurchases(purchasesGrid)
	if err != nil {
		return err
	}
	if len(sales) == 0 && len(purchases) == 0 {
		return domainerror.NewSessionError(
			domainerror.ErrCodeMissingLedgerInput,
			"neither sales nor purchases yielded any record",
			domainerror.ErrMissingLedgerInput,
		)
	}

	s.sales = sales
	s.purchases = purchases
	s.matchedSaleIDs = make(map[string]struct{})
	s.matchedPurchaseIDs = make(map[string]struct{})
	s.steps = nil
	s.matched = nil
	s.pending = nil
	s.initialized = true
	return nil
}

// ProcessBank normalizes one bank statement and matches its movements
// against the ledger records not yet consumed by earlier passes. Matched
// document IDs join the consumed sets so later passes never see them again.
//
// Ordering is normalize-then-match-then-commit: a failure before the commit
// leaves the consumed sets and accumulators untouched, and is recorded as
// an error step distinct from the nothing-pending skip.
func (s *Session) ProcessBank(statement [][]valueobject.Cell, bank string) ([]entity.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSessionNotInitialized,
			"initialize must be called before processing a bank",
			domainerror.ErrSessionNotInitialized,
		)
	}

	start := time.Now()
	pendingSales := s.pendingSales()
	pendingPurchases := s.pendingPurchases()
	s.observer.PassStarted(bank, len(pendingSales), len(pendingPurchases))

	if len(pendingSales) == 0 && len(pendingPurchases) == 0 {
		s.steps = append(s.steps, entity.BankStep{
			Bank:           bank,
			At:             time.Now().UTC(),
			Status:         entity.StepSkipped,
			SalesTotal:     len(s.sales),
			PurchasesTotal: len(s.purchases),
		})
		s.observer.PassFinished(adapter.PassObservation{
			Bank: bank, Skipped: true, Duration: time.Since(start),
		})
		sentinel := entity.MatchResult{
			ID:     uuid.New(),
			Status: entity.StatusPending,
			Reason: ReasonNothingPending,
		}
		return []entity.MatchResult{sentinel}, nil
	}

	movements, err := normalization.NormalizeBankStatement(statement, bank)
	if err != nil {
		s.steps = append(s.steps, entity.BankStep{
			Bank:   bank,
			At:     time.Now().UTC(),
			Status: entity.StepError,
			Error:  err.Error(),
		})
		s.observer.PassFinished(adapter.PassObservation{
			Bank: bank, Failed: true, Duration: time.Since(start),
		})
		return nil, err
	}

	results := s.engine.Match(movements, pendingSales, pendingPurchases)

	// Commit: no mutation happens before this point.
	step := entity.BankStep{
		Bank:           bank,
		At:             time.Now().UTC(),
		Status:         entity.StepProcessed,
		Movements:      len(movements),
		SalesTotal:     len(s.sales),
		PurchasesTotal: len(s.purchases),
	}
	for _, r := range results {
		if r.Status == entity.StatusMatched {
			switch {
			case r.Sale != nil:
				s.matchedSaleIDs[r.Sale.ID] = struct{}{}
				step.SalesMatched++
			case r.Purchase != nil:
				s.matchedPurchaseIDs[r.Purchase.ID] = struct{}{}
				step.PurchasesMatched++
			}
			step.Matched++
			s.matched = append(s.matched, r)
		} else {
			step.Pending++
			s.pending = append(s.pending, r)
		}
	}
	s.steps = append(s.steps, step)

	s.observer.PassFinished(adapter.PassObservation{
		Bank:      bank,
		Movements: len(movements),
		Matched:   step.Matched,
		Pending:   step.Pending,
		Duration:  time.Since(start),
	})
	return results, nil
}

// Finalize is a pure read of the accumulated state: running totals, the
// overall match rate and the full step log. It can be called repeatedly at
// any point after initialization.
func (s *Session) Finalize() (*valueobject.SummaryReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSessionNotInitialized,
			"initialize must be called before generating the final result",
			domainerror.ErrSessionNotInitialized,
		)
	}

	report := &valueobject.SummaryReport{
		TotalMatched:     len(s.matched),
		TotalPending:     len(s.pending),
		SalesMatched:     len(s.matchedSaleIDs),
		PurchasesMatched: len(s.matchedPurchaseIDs),
		Steps:            append([]entity.BankStep(nil), s.steps...),
	}
	if total := report.TotalMatched + report.TotalPending; total > 0 {
		report.MatchRate = float64(report.TotalMatched) / float64(total)
	}
	return report, nil
}

func (s *Session) pendingSales() []entity.Sale {
	var out []entity.Sale
	for _, sale := range s.sales {
		if _, consumed := s.matchedSaleIDs[sale.ID]; !consumed {
			out = append(out, sale)
		}
	}
	return out
}

func (s *Session) pendingPurchases() []entity.Purchase {
	var out []entity.Purchase
	for _, purchase := range s.purchases {
		if _, consumed := s.matchedPurchaseIDs[purchase.ID]; !consumed {
			out = append(out, purchase)
		}
	}
	return out
}
