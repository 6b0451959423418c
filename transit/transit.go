package transit

import (
	"errors"
	"fmt"
	"math"

	"github.com/drgmk/comet-project/stats/moments"
)

var (
	// ErrTooShort is returned for flux arrays with fewer than three samples.
	ErrTooShort = errors.New("transit: flux too short")

	// ErrInvalidHalfWidth is returned when maxHalfWidth is below 2.
	ErrInvalidHalfWidth = errors.New("transit: max half-width out of range")

	// ErrZeroVariance is returned when the flux is constant and the
	// statistic's normalization is undefined.
	ErrZeroVariance = errors.New("transit: flux has zero variance")
)

// Matrix is the detection statistic indexed by [halfWidth][center].
//
// Cells are defined for halfWidth in [1, MaxHalfWidth) and center in
// [halfWidth, SeriesLen-halfWidth); everything else is zero by
// construction and carries no information.
type Matrix struct {
	maxHalfWidth int
	n            int
	data         []float64 // row-major, maxHalfWidth rows of n columns
}

// Statistic computes the windowed detection statistic of flux for every
// half-width below maxHalfWidth.
//
// The normalization uses the standard deviation of the full flux array,
// computed once and shared across all half-widths. Rows whose window no
// longer fits into the series are left zero.
func Statistic(flux []float64, maxHalfWidth int) (*Matrix, error) {
	n := len(flux)
	if n < 3 {
		return nil, ErrTooShort
	}
	if maxHalfWidth < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHalfWidth, maxHalfWidth)
	}

	sigma := moments.StdDev(flux)
	if sigma == 0 {
		return nil, ErrZeroVariance
	}

	m := &Matrix{
		maxHalfWidth: maxHalfWidth,
		n:            n,
		data:         make([]float64, maxHalfWidth*n),
	}

	for hw := 1; hw < maxHalfWidth; hw++ {
		if 2*hw >= n {
			break
		}

		norm := 1 / (math.Sqrt(2*float64(hw)) * sigma)
		row := m.data[hw*n : (hw+1)*n]

		// Seed the running sum at the first valid center, then slide:
		// one add and one subtract per step, never a full recompute.
		var sum float64
		for _, v := range flux[:2*hw] {
			sum += v
		}
		row[hw] = sum * norm

		for i := hw + 1; i < n-hw; i++ {
			sum += flux[i+hw-1] - flux[i-hw-1]
			row[i] = sum * norm
		}
	}

	return m, nil
}

// MaxHalfWidth returns the exclusive upper bound of half-width rows.
func (m *Matrix) MaxHalfWidth() int { return m.maxHalfWidth }

// SeriesLen returns the length of the flux array the matrix was built from.
func (m *Matrix) SeriesLen() int { return m.n }

// At returns the statistic for the given half-width and center. Cells
// outside the defined region read as zero, the additive identity.
func (m *Matrix) At(halfWidth, center int) float64 {
	if halfWidth < 0 || halfWidth >= m.maxHalfWidth || center < 0 || center >= m.n {
		return 0
	}
	return m.data[halfWidth*m.n+center]
}

// Nonzero flattens every nonzero cell into a 1D sample set, row by row.
// Structural zeros outside the defined region are excluded by value; a
// defined cell that is exactly zero is indistinguishable from padding
// and is excluded as well.
func (m *Matrix) Nonzero() []float64 {
	out := make([]float64, 0, len(m.data))
	for _, v := range m.data {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Extreme returns the cell with the largest magnitude and its indices.
// Transit dips show up as strongly negative cells, so callers usually
// care about the sign as well as the location. Returns (0, 0, 0) when
// every cell is zero.
func (m *Matrix) Extreme() (value float64, halfWidth, center int) {
	best := 0
	for i, v := range m.data {
		if math.Abs(v) > math.Abs(m.data[best]) {
			best = i
		}
	}
	return m.data[best], best / m.n, best % m.n
}
