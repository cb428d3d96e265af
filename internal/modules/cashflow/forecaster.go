package cashflow

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/pkg/formulas"
)

// MinModelPoints is the number of observation-bearing days a series needs
// before the ARIMA path is attempted; sparser histories go straight to
// averaging no matter how many calendar days they span.
const MinModelPoints = 10

// DefaultFitTimeout bounds a single model fit. The fallback path is cheap
// and always available, so a slow fit is treated the same as a failed one.
const DefaultFitTimeout = 5 * time.Second

// ModelSanityFactor rejects fitted forecasts whose horizon sum exceeds this
// multiple of the averaging estimate. A near-unit AR coefficient can
// compound a spiky series into totals hundreds of times the observed
// history; such fits fall back silently.
const ModelSanityFactor = 3.0

// Forecaster projects income and expenses over a forward horizon.
//
// It is a two-stage strategy: try the ARIMA(1,1,1) model per series, and on
// any failure (too little data, degenerate series, non-convergence,
// timeout, implausible horizon sum) silently fall back to the per-day
// average. Income and expense series are handled independently, so one may
// use the model while the other falls back.
type Forecaster struct {
	estimator  *Estimator
	fitTimeout time.Duration
	log        zerolog.Logger
}

// NewForecaster creates a new forecaster
func NewForecaster(estimator *Estimator, fitTimeout time.Duration, log zerolog.Logger) *Forecaster {
	if fitTimeout <= 0 {
		fitTimeout = DefaultFitTimeout
	}
	return &Forecaster{
		estimator:  estimator,
		fitTimeout: fitTimeout,
		log:        log.With().Str("component", "forecaster").Logger(),
	}
}

// Forecast predicts cash flow over the next horizonDays. Empty input is a
// valid, trivial case and yields an all-zero prediction in the default
// currency. Predicted totals are clamped at zero.
func (f *Forecaster) Forecast(ctx context.Context, txs []domain.Transaction, horizonDays int) CashFlowPrediction {
	if len(txs) == 0 {
		return CashFlowPrediction{Currency: domain.DefaultCurrency}
	}

	totals := f.estimator.Totals(txs)

	incomeSeries := dailySeries(txs, incomeAmount)
	expenseSeries := dailySeries(txs, expenseAmount)

	predictedIncome := f.predictSeries(ctx, "income", incomeSeries, totals.TotalIncome, totals.DaysSpanned, horizonDays)
	predictedExpenses := f.predictSeries(ctx, "expenses", expenseSeries, totals.TotalExpenses, totals.DaysSpanned, horizonDays)

	// Volatility characterizes historical variability, not forecast
	// uncertainty; it is day-level regardless of which path ran above.
	volatility := f.estimator.VolatilityScore(txs)

	return CashFlowPrediction{
		PredictedIncome:   formulas.Round2(predictedIncome),
		PredictedExpenses: formulas.Round2(predictedExpenses),
		NetCashFlow:       formulas.Round2(predictedIncome - predictedExpenses),
		VolatilityScore:   formulas.Round2(volatility),
		Currency:          domain.BatchCurrency(txs),
	}
}

// predictSeries forecasts a single daily series, model first, averaging on
// any failure or implausible fit. Never returns a negative total.
func (f *Forecaster) predictSeries(ctx context.Context, name string, series []float64, total float64, daysSpanned, horizonDays int) float64 {
	avg := total / float64(daysSpanned) * float64(horizonDays)

	if observedDays(series) >= MinModelPoints {
		sum, err := f.modelForecast(ctx, series, horizonDays)
		if err != nil {
			f.log.Debug().Err(err).Str("series", name).Msg("Model fit failed, using average fallback")
			return avg
		}
		if sum < 0 {
			sum = 0
		}
		if sum > ModelSanityFactor*avg {
			f.log.Debug().
				Str("series", name).
				Float64("model_sum", sum).
				Float64("average_sum", avg).
				Msg("Model forecast implausible, using average fallback")
			return avg
		}
		return sum
	}

	return avg
}

// modelForecast fits ARIMA(1,1,1) under the configured timeout and sums the
// forecast steps. The fit itself cannot be interrupted; on timeout its
// eventual result is discarded.
func (f *Forecaster) modelForecast(ctx context.Context, series []float64, horizonDays int) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.fitTimeout)
	defer cancel()

	type fitResult struct {
		model *arimaModel
		err   error
	}

	done := make(chan fitResult, 1)
	go func() {
		model, err := fitARIMA111(series)
		done <- fitResult{model: model, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return 0, res.err
		}
		var sum float64
		for _, level := range res.model.forecast(horizonDays) {
			sum += level
		}
		return sum, nil
	}
}
