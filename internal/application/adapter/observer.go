package adapter

import "time"

// PassObservation captures the outcome of one bank pass for telemetry:
// counts in, counts out and timing.
type PassObservation struct {
	Bank      string
	Movements int
	Matched   int
	Pending   int
	Skipped   bool
	Failed    bool
	Duration  time.Duration
}

// Observer receives structured instrumentation from the reconciliation
// session. Callers wire it to real telemetry; business logic never logs
// directly.
type Observer interface {
	// PassStarted fires before a bank statement is normalized, with the
	// sizes of the pending candidate pools.
	PassStarted(bank string, pendingSales, pendingPurchases int)

	// PassFinished fires after the pass committed, skipped or failed.
	PassFinished(obs PassObservation)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) PassStarted(string, int, int) {}
func (NopObserver) PassFinished(PassObservation) {}
