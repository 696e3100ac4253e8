// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"github.com/conciliador/backend/internal/application/usecase/reconciliation"
	"github.com/conciliador/backend/internal/domain/entity"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	session *reconciliation.Session

	salesGrid     [][]valueobject.Cell
	purchasesGrid [][]valueobject.Cell

	lastResults []entity.MatchResult
	lastErr     error
	report      *valueobject.SummaryReport
}
