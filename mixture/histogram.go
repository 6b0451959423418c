package mixture

import (
	"errors"

	"github.com/montanaflynn/stats"
)

var (
	// ErrNoSamples is returned when the sample set is empty.
	ErrNoSamples = errors.New("mixture: no samples")

	// ErrDegenerate is returned when all samples coincide and the
	// histogram span is zero.
	ErrDegenerate = errors.New("mixture: degenerate sample range")
)

// Histogram bins samples into equal-width bins spanning [min, max] and
// returns the bin centers and counts. The maximum falls into the last
// bin. Counts are float64 so they can feed a least-squares fit directly.
func Histogram(samples []float64, bins int) (centers, counts []float64, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrNoSamples
	}
	if bins < 1 {
		return nil, nil, ErrDegenerate
	}

	data := stats.Float64Data(samples)
	minVal, err := stats.Min(data)
	if err != nil {
		return nil, nil, ErrNoSamples
	}
	maxVal, err := stats.Max(data)
	if err != nil {
		return nil, nil, ErrNoSamples
	}
	if maxVal == minVal {
		return nil, nil, ErrDegenerate
	}

	width := (maxVal - minVal) / float64(bins)

	centers = make([]float64, bins)
	counts = make([]float64, bins)
	for i := range centers {
		centers[i] = minVal + (float64(i)+0.5)*width
	}

	for _, v := range samples {
		idx := int((v - minVal) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return centers, counts, nil
}
