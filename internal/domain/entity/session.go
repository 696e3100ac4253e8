package entity

import (
	"time"

	"github.com/google/uuid"
)

// StepStatus classifies one per-bank entry in the session step log.
type StepStatus string

const (
	// StepProcessed marks a pass that ran the matching engine (possibly
	// over zero movements).
	StepProcessed StepStatus = "processed"
	// StepSkipped marks a pass that found nothing pending and never
	// invoked the engine.
	StepSkipped StepStatus = "skipped"
	// StepError marks a pass that failed before committing any state.
	StepError StepStatus = "error"
)

// BankStep is one entry of the ordered per-bank processing log kept by a
// reconciliation session.
type BankStep struct {
	Bank             string
	At               time.Time
	Status           StepStatus
	Movements        int
	Matched          int
	Pending          int
	SalesMatched     int
	SalesTotal       int
	PurchasesMatched int
	PurchasesTotal   int
	Error            string // Set only for StepError
}

// SessionSnapshot is the fully serializable state of a reconciliation
// session: the frozen ledger sets, the consumed-ID sets, the step log and
// the accumulated results. A snapshot can be persisted by a session store
// and later restored into an equivalent session.
type SessionSnapshot struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	Sales              []Sale
	Purchases          []Purchase
	MatchedSaleIDs     []string
	MatchedPurchaseIDs []string
	Steps              []BankStep
	Matched            []MatchResult
	Pending            []MatchResult
}
