package cashflow

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/pkg/formulas"
)

// Totals aggregates a transaction batch
type Totals struct {
	TotalIncome   float64
	TotalExpenses float64
	DaysSpanned   int // inclusive day count, minimum 1
}

// Estimator computes aggregate totals and the volatility score from a
// transaction history. Stateless and safe for concurrent use.
type Estimator struct {
	log zerolog.Logger
}

// NewEstimator creates a new estimator
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{
		log: log.With().Str("component", "estimator").Logger(),
	}
}

// Totals sums income and expenses and measures the inclusive day span of
// the batch. Empty input yields the zero value (DaysSpanned 1).
func (e *Estimator) Totals(txs []domain.Transaction) Totals {
	totals := Totals{DaysSpanned: 1}

	var first, last time.Time
	seen := false

	for _, tx := range txs {
		if tx.Amount > 0 {
			totals.TotalIncome += tx.Amount
		} else {
			totals.TotalExpenses += -tx.Amount
		}

		day, err := time.Parse(dateLayout, tx.Date)
		if err != nil {
			continue
		}
		if !seen || day.Before(first) {
			first = day
		}
		if !seen || day.After(last) {
			last = day
		}
		seen = true
	}

	if seen {
		if span := int(last.Sub(first).Hours()/24) + 1; span > totals.DaysSpanned {
			totals.DaysSpanned = span
		}
	}

	return totals
}

// VolatilityScore is the coefficient of variation of the daily net
// cash-flow series: |stddev / mean| of per-day net amounts with missing
// days counted as zero. Zero for steady flows, zero-mean flows, and
// histories shorter than two days.
func (e *Estimator) VolatilityScore(txs []domain.Transaction) float64 {
	daily := dailySeries(txs, netAmount)
	return formulas.CoefficientOfVariation(daily)
}
