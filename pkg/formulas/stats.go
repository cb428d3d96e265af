package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// CoefficientOfVariation calculates |stddev / mean| of a dataset.
// Returns 0 when the mean is exactly zero (downstream consumers expect a
// finite score, not infinity) or when fewer than two points are available.
func CoefficientOfVariation(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}

	mean := Mean(data)
	if mean == 0 {
		return 0
	}

	cv := StdDev(data) / mean
	if math.IsNaN(cv) || math.IsInf(cv, 0) {
		return 0
	}
	return math.Abs(cv)
}

// Percentile calculates the q-th percentile (q in [0, 1]) using linear
// interpolation between closest ranks.
//
// Note: gonum's stat.Quantile empirical mode steps between observations
// instead of interpolating, which changes which values sit above the cutoff
// for small samples, so this one is computed by hand.
func Percentile(data []float64, q float64) float64 {
	if len(data) == 0 {
		return 0
	}
	if len(data) == 1 {
		return data[0]
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// Round2 rounds a value to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
