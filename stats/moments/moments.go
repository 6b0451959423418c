// Package moments provides one-pass descriptive statistics for flux arrays.
//
// All quantities are computed in a single pass using Welford's online
// algorithm for the higher-order moments, so large light curves are
// summarized without intermediate allocations and without the cancellation
// problems of naive two-pass formulas.
package moments

import "math"

// Summary holds one-pass statistics of a flux array.
type Summary struct {
	Length   int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Range    float64 // max - min
}

// Calculate computes all summary statistics in a single pass.
//
// Variance is the population variance (divisor N); StdDev is its square
// root. Skewness and Kurtosis are zero for constant input.
func Calculate(flux []float64) Summary {
	n := len(flux)
	if n == 0 {
		return Summary{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	minVal := flux[0]
	minPos := 0
	maxVal := flux[0]
	maxPos := 0

	for i, x := range flux {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Length:   n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Range:    maxVal - minVal,
	}
}

// Mean returns the arithmetic mean of flux using Kahan summation.
func Mean(flux []float64) float64 {
	if len(flux) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range flux {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(flux))
}

// StdDev returns the population standard deviation of flux.
func StdDev(flux []float64) float64 {
	if len(flux) == 0 {
		return 0
	}

	var mean, m2 float64
	for i, x := range flux {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return math.Sqrt(m2 / float64(len(flux)))
}

// MostExtreme returns the value with the largest magnitude and its index.
// Returns (0, -1) for empty input.
func MostExtreme(flux []float64) (float64, int) {
	if len(flux) == 0 {
		return 0, -1
	}

	best := flux[0]
	pos := 0

	for i, x := range flux[1:] {
		if math.Abs(x) > math.Abs(best) {
			best = x
			pos = i + 1
		}
	}

	return best, pos
}
