package budget

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
)

// ErrZeroIncome is returned when allocation is requested for a prediction
// with zero income; percentages of nothing are undefined and the caller is
// expected to explain that to the user.
var ErrZeroIncome = errors.New("cannot generate budget with zero predicted income")

// Baseline 50/30/20 split and its volatility adjustment
const (
	NeedsBaseline   = 0.50
	WantsBaseline   = 0.30
	SavingsBaseline = 0.20

	// HighVolatilityThreshold: above this score, 10 points move from
	// wants to savings. One step, not graduated.
	HighVolatilityThreshold = 1.5
	VolatilityShift         = 0.10
)

// Allocator adapts the 50/30/20 rule to income volatility and savings
// goals. Stateless and safe for concurrent use.
type Allocator struct {
	log zerolog.Logger
}

// NewAllocator creates a new budget allocator
func NewAllocator(log zerolog.Logger) *Allocator {
	return &Allocator{
		log: log.With().Str("component", "allocator").Logger(),
	}
}

// Allocate splits the predicted income into needs, wants and savings.
// goals may be nil. Returns ErrZeroIncome for zero-income predictions.
func (a *Allocator) Allocate(prediction cashflow.CashFlowPrediction, goals *domain.Goals) (BudgetAllocation, error) {
	income := prediction.PredictedIncome
	if income == 0 {
		return BudgetAllocation{}, ErrZeroIncome
	}

	needs := NeedsBaseline
	wants := WantsBaseline
	savings := SavingsBaseline

	if prediction.VolatilityScore > HighVolatilityThreshold {
		savings += VolatilityShift
		wants -= VolatilityShift
	}

	goalFeasible := true
	if goals != nil && goals.SavingsGoal != nil && *goals.SavingsGoal > income*savings {
		requiredFraction := *goals.SavingsGoal / income
		if requiredFraction <= savings+wants {
			// Raise savings to the goal, shrink wants to absorb it;
			// needs stays untouched.
			savings = requiredFraction
			wants = 1.0 - savings - needs
		} else {
			// Goal too aggressive even taking all of wants: keep the
			// volatility-adjusted baseline and report infeasibility.
			goalFeasible = false
		}
	}

	currency := prediction.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	allocation := BudgetAllocation{
		NeedsAllocation:   roundShare(income, needs),
		WantsAllocation:   roundShare(income, wants),
		SavingsAllocation: roundShare(income, savings),
		Currency:          currency,
		Notes:             "Based on the 50/30/20 rule, adjusted for income volatility.",
		GoalFeasible:      goalFeasible,
	}

	a.log.Debug().
		Float64("income", income).
		Float64("needs", allocation.NeedsAllocation).
		Float64("wants", allocation.WantsAllocation).
		Float64("savings", allocation.SavingsAllocation).
		Bool("goal_feasible", goalFeasible).
		Msg("Budget allocated")

	return allocation, nil
}

// roundShare computes fraction * income rounded to 2 decimal places using
// decimal arithmetic, avoiding float drift on the cent boundary.
func roundShare(income, fraction float64) float64 {
	share := decimal.NewFromFloat(income).Mul(decimal.NewFromFloat(fraction)).Round(2)
	v, _ := share.Float64()
	return v
}
