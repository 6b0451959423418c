package detrend

import (
	"errors"
	"fmt"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	// ErrTooShort is returned for flux arrays with fewer than two samples.
	ErrTooShort = errors.New("detrend: flux too short")

	// ErrInvalidBins is returned when the kept-bin count is out of range.
	ErrInvalidBins = errors.New("detrend: bin count out of range")

	// ErrLengthMismatch is returned when parallel arrays disagree in length.
	ErrLengthMismatch = errors.New("detrend: array lengths differ")

	// ErrTooFewReal is returned when fewer than three samples are real.
	ErrTooFewReal = errors.New("detrend: too few real samples")
)

// FourierFilter subtracts the k strongest periodic components from flux.
//
// The flux is transformed with a real-input DFT at its exact length, the
// k bins with the largest magnitude are kept (ties broken toward lower
// frequency), all other bins are zeroed, and the inverse transform is
// subtracted from the input. k must lie in [1, len(flux)/2]. The input
// is not modified.
//
// Keeping every usable bin reconstructs a zero-mean flux completely, so
// k = len(flux)/2 returns an all-zero residual up to rounding.
func FourierFilter(flux []float64, k int) ([]float64, error) {
	n := len(flux)
	if n < 2 {
		return nil, ErrTooShort
	}
	if k < 1 || k > n/2 {
		return nil, fmt.Errorf("%w: k=%d with %d usable bins", ErrInvalidBins, k, n/2)
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, flux)

	mag := make([]float64, len(coeff))
	order := make([]int, len(coeff))
	for i, c := range coeff {
		mag[i] = cmplx.Abs(c)
		order[i] = i
	}

	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if mag[ia] != mag[ib] {
			return mag[ia] > mag[ib]
		}
		return ia < ib
	})

	keep := make([]bool, len(coeff))
	for _, idx := range order[:k] {
		keep[idx] = true
	}
	for i := range coeff {
		if !keep[i] {
			coeff[i] = 0
		}
	}

	// Sequence(Coefficients(x)) scales by n.
	recon := fft.Sequence(nil, coeff)
	scale := 1 / float64(n)

	out := make([]float64, n)
	for i := range out {
		out[i] = flux[i] - recon[i]*scale
	}

	return out, nil
}
