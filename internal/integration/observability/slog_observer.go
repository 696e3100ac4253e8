// Package observability provides default telemetry sinks for the
// reconciliation session.
package observability

import (
	"log/slog"

	"github.com/conciliador/backend/internal/application/adapter"
)

// slogObserver logs pass instrumentation through a structured logger.
type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer backed by the given logger; nil uses
// the process default.
func NewSlogObserver(logger *slog.Logger) adapter.Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogObserver{logger: logger}
}

func (o *slogObserver) PassStarted(bank string, pendingSales, pendingPurchases int) {
	o.logger.Info("bank pass started",
		"bank", bank,
		"pending_sales", pendingSales,
		"pending_purchases", pendingPurchases,
	)
}

func (o *slogObserver) PassFinished(obs adapter.PassObservation) {
	switch {
	case obs.Failed:
		o.logger.Error("bank pass failed",
			"bank", obs.Bank,
			"duration_ms", obs.Duration.Milliseconds(),
		)
	case obs.Skipped:
		o.logger.Info("bank pass skipped, nothing pending",
			"bank", obs.Bank,
		)
	default:
		o.logger.Info("bank pass finished",
			"bank", obs.Bank,
			"movements", obs.Movements,
			"matched", obs.Matched,
			"pending", obs.Pending,
			"duration_ms", obs.Duration.Milliseconds(),
		)
	}
}
