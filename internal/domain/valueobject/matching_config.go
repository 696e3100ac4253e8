package valueobject

import "github.com/shopspring/decimal"

// Criterion names every scoring criterion the matching engine evaluates.
// The names key the per-criterion score maps on MatchScore and MatchResult.
const (
	CriterionExactAmount   = "exact_amount"
	CriterionNetAmount     = "net_amount_withholdings"
	CriterionDateProximity = "date_proximity"
	CriterionTaxID         = "tax_id_in_concept"
	CriterionName          = "name_in_concept"
	CriterionReference     = "reference"
	CriterionOperationType = "operation_type"
)

// WithholdingBase selects what a withholding rate applies to.
type WithholdingBase string

const (
	// BaseDocument applies the rate to the document total.
	BaseDocument WithholdingBase = "document"
	// BaseMovement applies the rate to the absolute movement amount.
	BaseMovement WithholdingBase = "movement"
)

// WithholdingRate is one modeled withholding tax. The rates are a business
// policy input, not an algorithmic invariant, so they live in configuration.
type WithholdingRate struct {
	Name string
	Rate decimal.Decimal
	Base WithholdingBase
}

// MatchingConfig holds the weights, thresholds and withholding table of the
// matching engine. All values are business tuning inputs with no derived
// optimum; callers may override any of them.
type MatchingConfig struct {
	// Weights per criterion. They intentionally sum above 1; the total
	// score is still interpreted on a [0,1] scale.
	Weights map[string]float64

	// MatchThreshold is the minimum total score for status "matched".
	MatchThreshold float64
	// ReviewThreshold is the minimum total score for status "suggested".
	ReviewThreshold float64

	// MaxWithholdingGapDays gates the withholding-aware amount criterion:
	// beyond this many days between operation and issue date it scores 0.
	MaxWithholdingGapDays int

	// Withholdings models the taxes deducted at source that reduce the
	// settled amount relative to the invoice total.
	Withholdings []WithholdingRate

	// Disclosure thresholds decide which criteria are named in the
	// human-readable reason string.
	AmountDisclosure float64
	OtherDisclosure  float64
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		Weights: map[string]float64{
			CriterionExactAmount:   0.35,
			CriterionNetAmount:     0.25,
			CriterionDateProximity: 0.20,
			CriterionTaxID:         0.15,
			CriterionName:          0.10,
			CriterionReference:     0.10,
			CriterionOperationType: 0.05,
		},
		MatchThreshold:        0.70,
		ReviewThreshold:       0.50,
		MaxWithholdingGapDays: 30,
		Withholdings: []WithholdingRate{
			{Name: "IIBB", Rate: decimal.NewFromFloat(0.03), Base: BaseDocument},
			{Name: "SIRCREB", Rate: decimal.NewFromFloat(0.02), Base: BaseDocument},
			{Name: "Ganancias", Rate: decimal.NewFromFloat(0.02), Base: BaseDocument},
			{Name: "IVA", Rate: decimal.NewFromFloat(0.01), Base: BaseDocument},
			{Name: "Ley 25413", Rate: decimal.NewFromFloat(0.006), Base: BaseMovement},
		},
		AmountDisclosure: 0.8,
		OtherDisclosure:  0.5,
	}
}

// Weight returns the configured weight for a criterion, 0 when absent.
func (c MatchingConfig) Weight(criterion string) float64 {
	return c.Weights[criterion]
}
