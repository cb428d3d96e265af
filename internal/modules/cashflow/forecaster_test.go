package cashflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

func newTestForecaster() *Forecaster {
	return NewForecaster(NewEstimator(zerolog.Nop()), DefaultFitTimeout, zerolog.Nop())
}

func TestForecast_EmptyInput(t *testing.T) {
	f := newTestForecaster()

	prediction := f.Forecast(context.Background(), nil, 30)
	assert.Equal(t, 0.0, prediction.PredictedIncome)
	assert.Equal(t, 0.0, prediction.PredictedExpenses)
	assert.Equal(t, 0.0, prediction.NetCashFlow)
	assert.Equal(t, 0.0, prediction.VolatilityScore)
	assert.Equal(t, "USD", prediction.Currency)
}

func TestForecast_FallbackScenario(t *testing.T) {
	// Two transactions 10 days apart: span 11 days, well under the model
	// threshold, so both series use the averaging fallback.
	f := newTestForecaster()

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 1000},
		{Date: "2024-01-11", Amount: -400},
	}

	prediction := f.Forecast(context.Background(), txs, 30)

	// 1000/11 * 30 = 2727.27..., 400/11 * 30 = 1090.90...
	assert.InDelta(t, 2727.27, prediction.PredictedIncome, 0.01)
	assert.InDelta(t, 1090.91, prediction.PredictedExpenses, 0.01)
	assert.InDelta(t, 1636.36, prediction.NetCashFlow, 0.01)
	assert.Equal(t, "USD", prediction.Currency)
}

func TestForecast_FallbackIsExactlyDeterministic(t *testing.T) {
	f := newTestForecaster()

	txs := []domain.Transaction{
		{Date: "2024-02-01", Amount: 2500, Currency: "EUR"},
		{Date: "2024-02-05", Amount: -800},
	}

	first := f.Forecast(context.Background(), txs, 60)
	second := f.Forecast(context.Background(), txs, 60)
	assert.Equal(t, first, second)
	assert.Equal(t, "EUR", first.Currency)
}

func TestForecast_SparseLongSpanUsesAveraging(t *testing.T) {
	// A handful of transactions spread over six weeks: the calendar span
	// produces far more than ten zero-filled buckets, but only three days
	// carry observations, so averaging must run, exactly.
	f := newTestForecaster()

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 900},
		{Date: "2024-01-20", Amount: 600},
		{Date: "2024-02-10", Amount: -500},
	}

	prediction := f.Forecast(context.Background(), txs, 30)

	// Span is 41 days inclusive: 1500/41 * 30 and 500/41 * 30.
	assert.InDelta(t, 1097.56, prediction.PredictedIncome, 0.01)
	assert.InDelta(t, 365.85, prediction.PredictedExpenses, 0.01)
}

func TestForecast_ModelSumBoundedByHistory(t *testing.T) {
	// Strongly trending expenses over enough observation days to clear the
	// model threshold. Whichever path runs, the sanity bound holds: the
	// forecast can never exceed ModelSanityFactor times the averaging
	// estimate, so a compounding fit cannot emit totals hundreds of times
	// the observed history.
	f := newTestForecaster()

	var total float64
	txs := make([]domain.Transaction, 0, 14)
	for i := 0; i < 14; i++ {
		amount := -20 * float64(i+1) * float64(i+1)
		total += -amount
		txs = append(txs, domain.Transaction{
			Date:   fmt.Sprintf("2024-04-%02d", i+1),
			Amount: amount,
		})
	}

	prediction := f.Forecast(context.Background(), txs, 30)

	bound := ModelSanityFactor * (total / 14 * 30)
	assert.GreaterOrEqual(t, prediction.PredictedExpenses, 0.0)
	assert.LessOrEqual(t, prediction.PredictedExpenses, bound+0.01)
}

func TestForecast_PredictionsNeverNegative(t *testing.T) {
	f := newTestForecaster()

	// Expense-only history
	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: -100},
		{Date: "2024-01-05", Amount: -250},
	}

	prediction := f.Forecast(context.Background(), txs, 30)
	assert.GreaterOrEqual(t, prediction.PredictedIncome, 0.0)
	assert.GreaterOrEqual(t, prediction.PredictedExpenses, 0.0)
	assert.Negative(t, prediction.NetCashFlow)
}

func TestForecast_ModelPathWithLongHistory(t *testing.T) {
	f := newTestForecaster()

	// 30 days of income with mild day-to-day variation: enough points for
	// the model path on the income series.
	txs := make([]domain.Transaction, 0, 30)
	for i := 0; i < 30; i++ {
		amount := 100.0
		if i%3 == 0 {
			amount = 130
		}
		txs = append(txs, domain.Transaction{
			Date:   fmt.Sprintf("2024-01-%02d", i+1),
			Amount: amount,
		})
	}

	prediction := f.Forecast(context.Background(), txs, 30)

	// Whichever path ran, the contract holds: non-negative income in the
	// rough neighborhood of the historical daily average.
	assert.GreaterOrEqual(t, prediction.PredictedIncome, 0.0)
	assert.Greater(t, prediction.PredictedIncome, 1000.0)
	assert.Less(t, prediction.PredictedIncome, 10000.0)
	assert.Equal(t, 0.0, prediction.PredictedExpenses)
}

func TestForecast_ModelPathRepeatWithinTolerance(t *testing.T) {
	f := newTestForecaster()

	txs := make([]domain.Transaction, 0, 20)
	for i := 0; i < 20; i++ {
		txs = append(txs, domain.Transaction{
			Date:   fmt.Sprintf("2024-03-%02d", i+1),
			Amount: 100 + float64(i%5)*20,
		})
	}

	first := f.Forecast(context.Background(), txs, 30)
	second := f.Forecast(context.Background(), txs, 30)

	require.Greater(t, first.PredictedIncome, 0.0)
	assert.InEpsilon(t, first.PredictedIncome, second.PredictedIncome, 0.01)
}

func TestForecast_VolatilityIndependentOfPath(t *testing.T) {
	f := newTestForecaster()

	// Short history: fallback path, but volatility is still the day-level
	// coefficient of variation.
	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 300},
		{Date: "2024-01-03", Amount: 300},
	}

	prediction := f.Forecast(context.Background(), txs, 30)
	assert.InDelta(t, 0.87, prediction.VolatilityScore, 0.01)
}
