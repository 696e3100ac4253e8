package steps

import (
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/conciliador/backend/internal/application/usecase/reconciliation"
	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
	"github.com/conciliador/backend/internal/domain/valueobject"
	"github.com/conciliador/backend/internal/integration/spreadsheet"
)

// InitializeScenario registers the step definitions against a fresh context
// per scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Step(`^a sales ledger:$`, tc.aSalesLedger)
	ctx.Step(`^a purchases ledger:$`, tc.aPurchasesLedger)
	ctx.Step(`^an empty purchases ledger$`, tc.anEmptyPurchasesLedger)
	ctx.Step(`^the bank "([^"]*)" statement is processed:$`, tc.theBankStatementIsProcessed)
	ctx.Step(`^processing the bank "([^"]*)" statement fails:$`, tc.processingTheBankStatementFails)
	ctx.Step(`^the movement is matched against "([^"]*)"$`, tc.theMovementIsMatchedAgainst)
	ctx.Step(`^the movement stays pending$`, tc.theMovementStaysPending)
	ctx.Step(`^the summary reports (\d+) matched and (\d+) pending$`, tc.theSummaryReports)
	ctx.Step(`^the failure is a "([^"]*)" error$`, tc.theFailureIsAnError)
}

func (tc *TestContext) aSalesLedger(doc *godog.DocString) error {
	grid, err := spreadsheet.LoadBytes([]byte(doc.Content), ".csv")
	if err != nil {
		return err
	}
	tc.salesGrid = grid
	return nil
}

func (tc *TestContext) aPurchasesLedger(doc *godog.DocString) error {
	grid, err := spreadsheet.LoadBytes([]byte(doc.Content), ".csv")
	if err != nil {
		return err
	}
	tc.purchasesGrid = grid
	return nil
}

func (tc *TestContext) anEmptyPurchasesLedger() error {
	grid, err := spreadsheet.LoadBytes(
		[]byte("Fecha;Tipo;Número;Razón Social;CUIT;Neto Gravado;IVA;Imp. Total\n"), ".csv")
	if err != nil {
		return err
	}
	tc.purchasesGrid = grid
	return nil
}

func (tc *TestContext) ensureSession() error {
	if tc.session != nil {
		return nil
	}
	session := reconciliation.NewSession(valueobject.DefaultMatchingConfig())
	if err := session.Initialize(tc.salesGrid, tc.purchasesGrid); err != nil {
		return err
	}
	tc.session = session
	return nil
}

func (tc *TestContext) theBankStatementIsProcessed(bank string, doc *godog.DocString) error {
	if err := tc.ensureSession(); err != nil {
		return err
	}
	grid, err := spreadsheet.LoadBytes([]byte(doc.Content), ".csv")
	if err != nil {
		return err
	}
	tc.lastResults, tc.lastErr = tc.session.ProcessBank(grid, bank)
	return tc.lastErr
}

func (tc *TestContext) processingTheBankStatementFails(bank string, doc *godog.DocString) error {
	if err := tc.ensureSession(); err != nil {
		return err
	}
	grid, err := spreadsheet.LoadBytes([]byte(doc.Content), ".csv")
	if err != nil {
		return err
	}
	tc.lastResults, tc.lastErr = tc.session.ProcessBank(grid, bank)
	if tc.lastErr == nil {
		return errors.New("expected the pass to fail, it succeeded")
	}
	return nil
}

func (tc *TestContext) theMovementIsMatchedAgainst(documentID string) error {
	if len(tc.lastResults) == 0 {
		return errors.New("no results from the last pass")
	}
	r := tc.lastResults[0]
	if r.Status != entity.StatusMatched {
		return fmt.Errorf("expected matched, got %s (score %.2f, reason %q)", r.Status, r.Score, r.Reason)
	}
	if got := r.DocumentID(); got != documentID {
		return fmt.Errorf("matched against %q, want %q", got, documentID)
	}
	return nil
}

func (tc *TestContext) theMovementStaysPending() error {
	if len(tc.lastResults) == 0 {
		return errors.New("no results from the last pass")
	}
	if s := tc.lastResults[0].Status; s == entity.StatusMatched {
		return fmt.Errorf("expected the movement to stay unresolved, got %s", s)
	}
	return nil
}

func (tc *TestContext) theSummaryReports(matched, pending int) error {
	report, err := tc.session.Finalize()
	if err != nil {
		return err
	}
	tc.report = report
	if report.TotalMatched != matched || report.TotalPending != pending {
		return fmt.Errorf("summary reports %d matched / %d pending, want %d / %d",
			report.TotalMatched, report.TotalPending, matched, pending)
	}
	return nil
}

func (tc *TestContext) theFailureIsAnError(code string) error {
	if tc.lastErr == nil {
		return errors.New("no failure recorded")
	}
	var normErr *domainerror.NormalizationError
	if errors.As(tc.lastErr, &normErr) && string(normErr.Code) == code {
		return nil
	}
	var sessErr *domainerror.SessionError
	if errors.As(tc.lastErr, &sessErr) && string(sessErr.Code) == code {
		return nil
	}
	return fmt.Errorf("expected error code %q, got %v", code, tc.lastErr)
}
