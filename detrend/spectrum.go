package detrend

import (
	"fmt"
	"sort"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Spectrum returns the single-sided amplitude spectrum of flux on a
// power-of-2 grid, zero-padded as needed. Bin i corresponds to frequency
// i/(fftSize·Δt) for sampling interval Δt.
//
// This is a quick-look diagnostic: amplitudes are scaled so a unit
// sinusoid aligned with a bin reads as 1 in that bin. Use it to choose
// the bin budget for FourierFilter or to sanity-check what
// PeriodogramFilter removed.
func Spectrum(flux []float64) ([]float64, error) {
	n := len(flux)
	if n < 2 {
		return nil, ErrTooShort
	}

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("detrend: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, f := range flux {
		padded[i] = complex(f, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(freq[i])
		im[i] = imag(freq[i])
	}

	amp := make([]float64, bins)
	vecmath.Magnitude(amp, re, im)

	// Single-sided scaling: interior bins carry both halves of the
	// spectrum, DC and Nyquist only one.
	scale := 2 / float64(n)
	for i := range amp {
		if i == 0 || i == bins-1 {
			amp[i] *= scale / 2
		} else {
			amp[i] *= scale
		}
	}

	return amp, nil
}

// SuggestPeaks returns the indices of up to count local maxima of the
// amplitude spectrum, strongest first. The DC bin is never suggested.
func SuggestPeaks(amp []float64, count int) []int {
	if count <= 0 || len(amp) < 3 {
		return nil
	}

	var peaks []int
	for i := 1; i < len(amp)-1; i++ {
		if amp[i] > amp[i-1] && amp[i] >= amp[i+1] {
			peaks = append(peaks, i)
		}
	}

	sort.Slice(peaks, func(a, b int) bool {
		if amp[peaks[a]] != amp[peaks[b]] {
			return amp[peaks[a]] > amp[peaks[b]]
		}
		return peaks[a] < peaks[b]
	})

	if len(peaks) > count {
		peaks = peaks[:count]
	}

	return peaks
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	power := 1
	for power < n {
		power *= 2
	}

	return power
}
