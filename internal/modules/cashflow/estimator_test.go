package cashflow

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

func TestTotals_IncomeExpensesAndSpan(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 1000},
		{Date: "2024-01-11", Amount: -400},
	}

	totals := est.Totals(txs)
	assert.Equal(t, 1000.0, totals.TotalIncome)
	assert.Equal(t, 400.0, totals.TotalExpenses)
	assert.Equal(t, 11, totals.DaysSpanned)
}

func TestTotals_SameDayMinimumSpan(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	totals := est.Totals([]domain.Transaction{
		{Date: "2024-03-05", Amount: 500},
		{Date: "2024-03-05", Amount: -200},
	})
	assert.Equal(t, 1, totals.DaysSpanned)
}

func TestTotals_Empty(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	totals := est.Totals(nil)
	assert.Equal(t, 0.0, totals.TotalIncome)
	assert.Equal(t, 0.0, totals.TotalExpenses)
	assert.Equal(t, 1, totals.DaysSpanned)
}

func TestVolatilityScore_SteadyFlowIsZero(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 100},
		{Date: "2024-01-02", Amount: 100},
		{Date: "2024-01-03", Amount: 100},
	}
	assert.Equal(t, 0.0, est.VolatilityScore(txs))
}

func TestVolatilityScore_ZeroMeanIsZero(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 100},
		{Date: "2024-01-02", Amount: -100},
	}
	assert.Equal(t, 0.0, est.VolatilityScore(txs))
}

func TestVolatilityScore_MissingDaysCountAsZero(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	// Daily net series is [300, 0, 300]: mean 200, sample stddev ~173.2
	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 300},
		{Date: "2024-01-03", Amount: 300},
	}

	score := est.VolatilityScore(txs)
	assert.InDelta(t, 0.866, score, 0.001)
}

func TestVolatilityScore_NonNegative(t *testing.T) {
	est := NewEstimator(zerolog.Nop())

	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: -300},
		{Date: "2024-01-02", Amount: -100},
		{Date: "2024-01-03", Amount: -500},
	}
	assert.GreaterOrEqual(t, est.VolatilityScore(txs), 0.0)
}

func TestDailySeries_SelectorsAndZeroFill(t *testing.T) {
	txs := []domain.Transaction{
		{Date: "2024-01-01", Amount: 100},
		{Date: "2024-01-01", Amount: -30},
		{Date: "2024-01-04", Amount: -70},
	}

	net := dailySeries(txs, netAmount)
	assert.Equal(t, []float64{70, 0, 0, -70}, net)

	income := dailySeries(txs, incomeAmount)
	assert.Equal(t, []float64{100, 0, 0, 0}, income)

	expenses := dailySeries(txs, expenseAmount)
	assert.Equal(t, []float64{30, 0, 0, 70}, expenses)
}

func TestDailySeries_SkipsBadDates(t *testing.T) {
	txs := []domain.Transaction{
		{Date: "not-a-date", Amount: 100},
		{Date: "2024-01-02", Amount: 50},
	}
	assert.Equal(t, []float64{50}, dailySeries(txs, netAmount))
	assert.Nil(t, dailySeries([]domain.Transaction{{Date: "bad", Amount: 1}}, netAmount))
}
