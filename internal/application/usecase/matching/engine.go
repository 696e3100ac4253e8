// Package matching implements the weighted multi-criteria scorer that pairs
// bank movements with their best-candidate ledger records.
package matching

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/entity"
	"github.com/conciliador/backend/internal/domain/valueobject"
)

// ReasonNoCandidate is the reason attached to movements with no candidate
// documents at all.
const ReasonNoCandidate = "no coincidence found"

var (
	conceptNamePattern   = regexp.MustCompile(`(?i)N:\s*([^-]+)`)
	operationCodePattern = regexp.MustCompile(`C\.\s?(\d+)`)
	nonDigitPattern      = regexp.MustCompile(`\D`)
)

// transferMarkers are concept fragments indicating an outbound transfer,
// debit or payment operation.
var transferMarkers = []string{
	"transferencia", "transf", "débito", "debito", "pago", "extracción", "extraccion",
}

// scoredCriteria fixes the summation order of the weighted total. Float
// addition is order-sensitive, so ranging over the criteria map would make
// equal inputs produce slightly different totals.
var scoredCriteria = []string{
	valueobject.CriterionExactAmount,
	valueobject.CriterionNetAmount,
	valueobject.CriterionDateProximity,
	valueobject.CriterionTaxID,
	valueobject.CriterionName,
	valueobject.CriterionReference,
	valueobject.CriterionOperationType,
}

// Candidate tags a ledger document with its kind so the scorer can treat
// sales and purchases uniformly. Exactly one of Sale/Purchase is set.
type Candidate struct {
	Kind     entity.DocumentKind
	Sale     *entity.Sale
	Purchase *entity.Purchase
}

// SaleCandidate wraps a sale for scoring.
func SaleCandidate(s *entity.Sale) Candidate {
	return Candidate{Kind: entity.KindSale, Sale: s}
}

// PurchaseCandidate wraps a purchase for scoring.
func PurchaseCandidate(p *entity.Purchase) Candidate {
	return Candidate{Kind: entity.KindPurchase, Purchase: p}
}

func (c Candidate) id() string {
	if c.Sale != nil {
		return c.Sale.ID
	}
	return c.Purchase.ID
}

func (c Candidate) total() decimal.Decimal {
	if c.Sale != nil {
		return c.Sale.TotalAmount
	}
	return c.Purchase.TotalAmount
}

func (c Candidate) date() time.Time {
	if c.Sale != nil {
		return c.Sale.IssueDate
	}
	return c.Purchase.IssueDate
}

func (c Candidate) taxID() string {
	if c.Sale != nil {
		return c.Sale.CustomerTaxID
	}
	return c.Purchase.SupplierTaxID
}

func (c Candidate) name() string {
	if c.Sale != nil {
		return c.Sale.CustomerName
	}
	return c.Purchase.SupplierName
}

func (c Candidate) reference() string {
	if c.Sale != nil {
		return c.Sale.Reference
	}
	return c.Purchase.Reference
}

// Engine scores movements against candidate documents. It is a pure
// function of its inputs and the configuration it was built with: no hidden
// state, fully replayable.
type Engine struct {
	cfg valueobject.MatchingConfig
}

// NewEngine creates a matching engine with the given configuration.
func NewEngine(cfg valueobject.MatchingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score evaluates every criterion for one (movement, candidate) pair and
// returns the weighted total with the per-criterion breakdown.
func (e *Engine) Score(m entity.Movement, c Candidate) valueobject.MatchScore {
	criteria := map[string]float64{
		valueobject.CriterionExactAmount:   e.scoreExactAmount(m, c),
		valueobject.CriterionNetAmount:     e.scoreNetAmount(m, c),
		valueobject.CriterionDateProximity: e.scoreDateProximity(m, c),
		valueobject.CriterionTaxID:         e.scoreTaxID(m, c),
		valueobject.CriterionName:          e.scoreName(m, c),
		valueobject.CriterionReference:     e.scoreReference(m, c),
		valueobject.CriterionOperationType: e.scoreOperationType(m, c),
	}

	total := 0.0
	for _, name := range scoredCriteria {
		total += criteria[name] * e.cfg.Weight(name)
	}
	if total > 1 {
		total = 1
	}

	return valueobject.MatchScore{
		Total:       total,
		Criteria:    criteria,
		IsMatch:     total >= e.cfg.MatchThreshold,
		NeedsReview: total >= e.cfg.ReviewThreshold && total < e.cfg.MatchThreshold,
	}
}

// Match evaluates each movement against its candidate pool exactly once and
// keeps the single highest-scoring document per movement; ties keep the
// first candidate encountered. Credits draw candidates from the sales set,
// debits from the purchases set.
func (e *Engine) Match(movements []entity.Movement, sales []entity.Sale, purchases []entity.Purchase) []entity.MatchResult {
	results := make([]entity.MatchResult, 0, len(movements))
	for _, m := range movements {
		results = append(results, e.matchOne(m, sales, purchases))
	}
	return results
}

func (e *Engine) matchOne(m entity.Movement, sales []entity.Sale, purchases []entity.Purchase) entity.MatchResult {
	var candidates []Candidate
	if m.IsCredit() {
		for i := range sales {
			candidates = append(candidates, SaleCandidate(&sales[i]))
		}
	} else {
		for i := range purchases {
			candidates = append(candidates, PurchaseCandidate(&purchases[i]))
		}
	}

	if len(candidates) == 0 {
		return entity.MatchResult{
			ID:       uuid.New(),
			Movement: m,
			Status:   entity.StatusPending,
			Reason:   ReasonNoCandidate,
		}
	}

	best := candidates[0]
	bestScore := e.Score(m, best)
	for _, c := range candidates[1:] {
		if s := e.Score(m, c); s.Total > bestScore.Total {
			best, bestScore = c, s
		}
	}

	result := entity.MatchResult{
		ID:       uuid.New(),
		Movement: m,
		Kind:     best.Kind,
		Score:    bestScore.Total,
		Criteria: bestScore.Criteria,
		Status:   bestScore.Status(),
		Reason:   e.buildReason(bestScore),
	}
	if best.Sale != nil {
		sale := *best.Sale
		result.Sale = &sale
	} else {
		purchase := *best.Purchase
		result.Purchase = &purchase
	}
	return result
}

// amountTier converts a relative amount difference into a tiered score.
func amountTier(relDiff float64) float64 {
	switch {
	case relDiff < 0.001:
		return 1.0
	case relDiff < 0.01:
		return 0.9
	case relDiff < 0.02:
		return 0.7
	case relDiff < 0.05:
		return 0.5
	case relDiff < 0.1:
		return 0.3
	}
	return 0
}

func relativeDifference(a, b decimal.Decimal) float64 {
	if b.IsZero() {
		return 1
	}
	diff, _ := a.Sub(b).Abs().Div(b.Abs()).Float64()
	return diff
}

func (e *Engine) scoreExactAmount(m entity.Movement, c Candidate) float64 {
	return amountTier(relativeDifference(m.Amount.Abs(), c.total()))
}

// scoreNetAmount compares the movement against the document total net of
// the modeled withholding taxes. Settlements drift from the invoice total
// when the bank credits the amount after retenciones; beyond the configured
// day gap the estimate is too unreliable to score.
func (e *Engine) scoreNetAmount(m entity.Movement, c Candidate) float64 {
	if dayGap(m.OperationDate, c.date()) > e.cfg.MaxWithholdingGapDays {
		return 0
	}
	net := c.total()
	for _, w := range e.cfg.Withholdings {
		switch w.Base {
		case valueobject.BaseMovement:
			net = net.Sub(m.Amount.Abs().Mul(w.Rate))
		default:
			net = net.Sub(c.total().Mul(w.Rate))
		}
	}
	if !net.IsPositive() {
		return 0
	}
	return amountTier(relativeDifference(m.Amount.Abs(), net))
}

func (e *Engine) scoreDateProximity(m entity.Movement, c Candidate) float64 {
	gap := dayGap(m.OperationDate, c.date())
	switch {
	case gap == 0:
		return 1.0
	case gap <= 2:
		return 0.9
	case gap <= 5:
		return 0.7
	case gap <= 10:
		return 0.5
	case gap <= 30:
		return 0.3
	case gap <= 60:
		return 0.1
	}
	return 0
}

func (e *Engine) scoreTaxID(m entity.Movement, c Candidate) float64 {
	cuit := nonDigitPattern.ReplaceAllString(c.taxID(), "")
	if len(cuit) != 11 {
		return 0
	}
	if strings.Contains(m.Concept, cuit) {
		return 1.0
	}
	if strings.Contains(m.Concept, cuit[3:]) {
		return 0.7
	}
	return 0
}

// scoreName compares the counterparty name against the concept. Several
// bank formats embed the ordering party as "N: SOME NAME - ..."; when that
// marker is present it is the strongest signal, otherwise the score falls
// back to the fraction of significant name words found in the concept.
func (e *Engine) scoreName(m entity.Movement, c Candidate) float64 {
	name := strings.ToLower(strings.TrimSpace(c.name()))
	if name == "" {
		return 0
	}
	concept := strings.ToLower(m.Concept)

	if match := conceptNamePattern.FindStringSubmatch(m.Concept); match != nil {
		parsed := strings.ToLower(strings.TrimSpace(match[1]))
		if parsed == name {
			return 1.0
		}
		if strings.Contains(parsed, name) || strings.Contains(name, parsed) {
			return 0.7
		}
	}

	words := strings.Fields(name)
	significant, found := 0, 0
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		significant++
		if strings.Contains(concept, w) {
			found++
		}
	}
	if significant == 0 {
		return 0
	}
	return float64(found) / float64(significant)
}

func (e *Engine) scoreReference(m entity.Movement, c Candidate) float64 {
	ref := strings.TrimSpace(c.reference())
	if ref == "" {
		return 0
	}
	if strings.Contains(m.Concept, ref) {
		return 1.0
	}
	if match := operationCodePattern.FindStringSubmatch(m.Concept); match != nil {
		if match[1] == nonDigitPattern.ReplaceAllString(ref, "") {
			return 1.0
		}
	}
	return 0
}

// scoreOperationType checks directional consistency: purchases settle
// through transfers/debits/payments, sales settle through credits.
func (e *Engine) scoreOperationType(m entity.Movement, c Candidate) float64 {
	switch c.Kind {
	case entity.KindPurchase:
		concept := strings.ToLower(m.Concept)
		for _, marker := range transferMarkers {
			if strings.Contains(concept, marker) {
				return 1.0
			}
		}
	case entity.KindSale:
		if m.IsCredit() {
			return 1.0
		}
	}
	return 0
}

// buildReason lists every criterion whose unweighted score cleared its
// disclosure threshold, or falls back to a generic partial-coincidence note.
func (e *Engine) buildReason(s valueobject.MatchScore) string {
	type disclosure struct {
		criterion string
		label     string
		threshold float64
	}
	disclosures := []disclosure{
		{valueobject.CriterionExactAmount, "exact amount", e.cfg.AmountDisclosure},
		{valueobject.CriterionNetAmount, "amount net of withholdings", e.cfg.AmountDisclosure},
		{valueobject.CriterionDateProximity, "date proximity", e.cfg.AmountDisclosure},
		{valueobject.CriterionTaxID, "CUIT in concept", e.cfg.OtherDisclosure},
		{valueobject.CriterionName, "counterparty name", e.cfg.OtherDisclosure},
		{valueobject.CriterionReference, "reference", e.cfg.OtherDisclosure},
		{valueobject.CriterionOperationType, "operation type", e.cfg.OtherDisclosure},
	}

	var reasons []string
	for _, d := range disclosures {
		if s.Criteria[d.criterion] > d.threshold {
			reasons = append(reasons, d.label)
		}
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("partial coincidence (%.0f%%)", s.Total*100)
	}
	return strings.Join(reasons, ", ")
}

func dayGap(a, b time.Time) int {
	gap := a.Sub(b).Hours() / 24
	if gap < 0 {
		gap = -gap
	}
	return int(gap)
}
