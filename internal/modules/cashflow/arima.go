package cashflow

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/abelzach/KaroBuddy/pkg/formulas"
)

// Errors returned by the fitter. Callers treat every one of them as a cue
// to fall back to the averaging method, never as a caller-visible failure.
var (
	errSeriesTooShort   = errors.New("arima: series too short")
	errDegenerateSeries = errors.New("arima: degenerate series")
	errFitDiverged      = errors.New("arima: fit did not converge")
)

// arimaModel is a fitted ARIMA(1,1,1): an ARMA(1,1) with constant on the
// once-differenced series. The order is intentionally fixed rather than
// tuned, trading precision for robustness on short personal histories.
type arimaModel struct {
	c     float64
	phi   float64
	theta float64

	lastLevel float64 // last observed level
	lastDiff  float64 // last observed difference
	lastResid float64 // last in-sample residual
}

// fitARIMA111 fits the model by conditional sum of squares, minimized with
// Nelder-Mead. AR and MA coefficients are parameterized through tanh so the
// optimizer cannot wander into explosive (|phi| >= 1) territory.
func fitARIMA111(series []float64) (*arimaModel, error) {
	if len(series) < 5 {
		return nil, errSeriesTooShort
	}

	diffs := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		diffs[i-1] = series[i] - series[i-1]
	}

	if formulas.Variance(diffs) == 0 {
		return nil, errDegenerateSeries
	}

	css := func(x []float64) float64 {
		c, phi, theta := x[0], math.Tanh(x[1]), math.Tanh(x[2])
		_, sse := residuals(diffs, c, phi, theta)
		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return math.MaxFloat64
		}
		return sse
	}

	problem := optimize.Problem{Func: css}
	x0 := []float64{formulas.Mean(diffs), 0, 0}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, errFitDiverged
	}

	c, phi, theta := result.X[0], math.Tanh(result.X[1]), math.Tanh(result.X[2])
	if math.IsNaN(c) || math.IsNaN(phi) || math.IsNaN(theta) {
		return nil, errFitDiverged
	}

	resid, _ := residuals(diffs, c, phi, theta)

	return &arimaModel{
		c:         c,
		phi:       phi,
		theta:     theta,
		lastLevel: series[len(series)-1],
		lastDiff:  diffs[len(diffs)-1],
		lastResid: resid,
	}, nil
}

// residuals runs the ARMA(1,1) recursion over the differenced series and
// returns the final residual plus the conditional sum of squared errors.
// The pre-sample residual is taken as zero.
func residuals(diffs []float64, c, phi, theta float64) (last, sse float64) {
	var prevResid float64
	for t := 1; t < len(diffs); t++ {
		resid := diffs[t] - c - phi*diffs[t-1] - theta*prevResid
		sse += resid * resid
		prevResid = resid
	}
	return prevResid, sse
}

// forecast projects h steps ahead and returns predicted levels. The MA term
// contributes only to the first step; expected future shocks are zero.
func (m *arimaModel) forecast(h int) []float64 {
	levels := make([]float64, 0, h)

	level := m.lastLevel
	diff := m.lastDiff
	resid := m.lastResid

	for step := 0; step < h; step++ {
		next := m.c + m.phi*diff
		if step == 0 {
			next += m.theta * resid
		}
		level += next
		levels = append(levels, level)
		diff = next
	}

	return levels
}
