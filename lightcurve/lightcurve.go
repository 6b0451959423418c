package lightcurve

import (
	"errors"
	"math"
	"sort"

	"github.com/drgmk/comet-project/stats/moments"
)

var (
	// ErrTooShort is returned when a series has fewer than two samples.
	ErrTooShort = errors.New("lightcurve: series too short")

	// ErrLengthMismatch is returned when time and flux lengths differ.
	ErrLengthMismatch = errors.New("lightcurve: time and flux lengths differ")

	// ErrNonIncreasing is returned when timestamps are not strictly increasing.
	ErrNonIncreasing = errors.New("lightcurve: time values not strictly increasing")

	// ErrZeroMean is returned by Normalize for a flux array with zero mean.
	ErrZeroMean = errors.New("lightcurve: flux mean is zero")

	// ErrNaN is returned when a time or flux value is NaN.
	ErrNaN = errors.New("lightcurve: NaN sample")
)

// Series is a light curve as parallel time and flux arrays.
type Series struct {
	Time []float64
	Flux []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Time) }

// Span returns the total time covered, time[N-1] - time[0].
// Returns 0 for series shorter than two samples.
func (s Series) Span() float64 {
	if len(s.Time) < 2 {
		return 0
	}
	return s.Time[len(s.Time)-1] - s.Time[0]
}

// Validate checks the structural invariants of the series.
func (s Series) Validate() error {
	if len(s.Time) != len(s.Flux) {
		return ErrLengthMismatch
	}
	if len(s.Time) < 2 {
		return ErrTooShort
	}
	for i := range s.Time {
		if math.IsNaN(s.Time[i]) || math.IsNaN(s.Flux[i]) {
			return ErrNaN
		}
		if i > 0 && s.Time[i] <= s.Time[i-1] {
			return ErrNonIncreasing
		}
	}
	return nil
}

// EstimateTimestep returns the nominal sampling interval of time, defined
// as the median of consecutive differences. Even-length difference arrays
// take the lower-middle element, index (N-1)/2 of the sorted differences,
// rather than interpolating between the two middle values. Downstream gap
// arithmetic depends on this exact tie rule.
func EstimateTimestep(time []float64) (float64, error) {
	if len(time) < 2 {
		return 0, ErrTooShort
	}

	diffs := make([]float64, len(time)-1)
	for i := 1; i < len(time); i++ {
		d := time[i] - time[i-1]
		if d <= 0 {
			return 0, ErrNonIncreasing
		}
		diffs[i-1] = d
	}

	sort.Float64s(diffs)

	return diffs[(len(diffs)-1)/2], nil
}

// Resample fills sampling gaps by linear interpolation onto the nominal
// cadence. For each pair of consecutive samples it computes the integer
// step count round(dt/Δ); when the pair spans more than one step, the
// missing steps-1 points are synthesized exactly Δ apart starting from the
// earlier sample, with flux interpolated linearly at each inserted time.
//
// The returned mask is parallel to the output series and is true for
// original measurements, false for synthesized points. A gap-free input
// is returned unchanged with an all-true mask.
func Resample(s Series) (Series, []bool, error) {
	if err := s.Validate(); err != nil {
		return Series{}, nil, err
	}

	delta, err := EstimateTimestep(s.Time)
	if err != nil {
		return Series{}, nil, err
	}

	n := s.Len()
	outTime := make([]float64, 0, n)
	outFlux := make([]float64, 0, n)
	real := make([]bool, 0, n)

	outTime = append(outTime, s.Time[0])
	outFlux = append(outFlux, s.Flux[0])
	real = append(real, true)

	for i := 1; i < n; i++ {
		dt := s.Time[i] - s.Time[i-1]
		steps := int(math.Round(dt / delta))

		if steps > 1 {
			t0 := s.Time[i-1]
			slope := (s.Flux[i] - s.Flux[i-1]) / dt

			for j := 1; j < steps; j++ {
				tj := t0 + float64(j)*delta
				outTime = append(outTime, tj)
				outFlux = append(outFlux, s.Flux[i-1]+slope*(tj-t0))
				real = append(real, false)
			}
		}

		outTime = append(outTime, s.Time[i])
		outFlux = append(outFlux, s.Flux[i])
		real = append(real, true)
	}

	return Series{Time: outTime, Flux: outFlux}, real, nil
}

// Normalize rescales flux to relative deviations about its mean,
// flux[i]/mean - 1. The result has mean zero up to rounding. Returns
// ErrZeroMean when the mean vanishes and the rescaling is undefined.
func Normalize(flux []float64) ([]float64, error) {
	if len(flux) == 0 {
		return nil, ErrTooShort
	}

	mean := moments.Mean(flux)
	if mean == 0 {
		return nil, ErrZeroMean
	}

	out := make([]float64, len(flux))
	for i, f := range flux {
		out[i] = f/mean - 1
	}

	return out, nil
}

// SelectReal extracts the samples marked true in the mask, preserving
// order. The mask must be parallel to the series.
func SelectReal(s Series, real []bool) (Series, error) {
	if len(real) != s.Len() || len(s.Time) != len(s.Flux) {
		return Series{}, ErrLengthMismatch
	}

	count := 0
	for _, r := range real {
		if r {
			count++
		}
	}

	out := Series{
		Time: make([]float64, 0, count),
		Flux: make([]float64, 0, count),
	}

	for i, r := range real {
		if r {
			out.Time = append(out.Time, s.Time[i])
			out.Flux = append(out.Flux, s.Flux[i])
		}
	}

	return out, nil
}
