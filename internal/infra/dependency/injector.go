// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/conciliador/backend/config"
	"github.com/conciliador/backend/internal/application/adapter"
	"github.com/conciliador/backend/internal/application/usecase/reconciliation"
	"github.com/conciliador/backend/internal/domain/valueobject"
	"github.com/conciliador/backend/internal/infra/redis"
	"github.com/conciliador/backend/internal/integration/export"
	"github.com/conciliador/backend/internal/integration/observability"
	"github.com/conciliador/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	Matching     valueobject.MatchingConfig
	Observer     adapter.Observer
	Exporter     adapter.ResultExporter
	SessionStore adapter.SessionStore // nil when Redis is unavailable
}

// NewInjector creates a new dependency injector with all dependencies
// wired. A nil Redis connection leaves the session store unset; the rest of
// the system works without it.
func NewInjector(cfg *config.Config, conn *redis.Connection) *Injector {
	matching := valueobject.DefaultMatchingConfig()
	matching.MatchThreshold = cfg.Matching.MatchThreshold
	matching.ReviewThreshold = cfg.Matching.ReviewThreshold
	matching.MaxWithholdingGapDays = cfg.Matching.MaxWithholdingGapDays

	injector := &Injector{
		Config:   cfg,
		Matching: matching,
		Observer: observability.NewSlogObserver(slog.Default()),
		Exporter: export.NewXLSXExporter(),
	}
	if conn != nil {
		injector.SessionStore = persistence.NewRedisSessionStore(conn.Client(), cfg.Redis.SessionTTL)
	}
	return injector
}

// NewSession creates a reconciliation session wired with the injector's
// matching configuration and observer.
func (i *Injector) NewSession() *reconciliation.Session {
	return reconciliation.NewSession(i.Matching, reconciliation.WithObserver(i.Observer))
}
