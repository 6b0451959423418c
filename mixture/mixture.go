package mixture

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
)

// defaultBins is the histogram resolution used by FitTwoGaussians.
const defaultBins = 100

// minSecondaryFraction is the smallest secondary amplitude, relative to
// the bulk fit, that counts as a distinct population. The floored ratio
// curve carries single-count spikes in its tail; a fit below this floor
// tracks those spikes, not a second mode.
const minSecondaryFraction = 0.005

// ErrTooFewPoints is returned when a curve has fewer points than the
// Gaussian's three parameters can be fitted to.
var ErrTooFewPoints = errors.New("mixture: too few points for fit")

// Component is a single Gaussian, Amp·exp(-(x-Mean)²/(2·Sigma²)).
type Component struct {
	Amp   float64
	Mean  float64
	Sigma float64
}

// At evaluates the component at x.
func (c Component) At(x float64) float64 {
	dx := x - c.Mean
	return c.Amp * math.Exp(-dx*dx/(2*c.Sigma*c.Sigma))
}

// Params holds the two sequential fits in fit order, not ordered by
// amplitude. Use Interpret for the canonical ordering.
type Params struct {
	First  Component
	Second Component
}

// Interpretation summarizes a two-component fit after canonical
// relabeling by amplitude.
type Interpretation struct {
	// HeightRatio is the smaller component's amplitude over the larger's.
	HeightRatio float64

	// Separation is the distance between the component means in units
	// of the larger component's width.
	Separation float64
}

// FitGaussian fits a single Gaussian to the curve (x, y) by bounded
// least squares. The fit is seeded at the curve's peak with unit width
// and constrained to nonnegative amplitude, a mean inside the x range,
// and positive width.
func FitGaussian(x, y []float64) (Component, error) {
	if len(x) != len(y) {
		return Component{}, ErrTooFewPoints
	}
	if len(x) < 3 {
		return Component{}, ErrTooFewPoints
	}

	peak := 0
	for i, v := range y {
		if v > y[peak] {
			peak = i
		}
	}

	xMin, _ := stats.Min(stats.Float64Data(x))
	xMax, _ := stats.Max(stats.Float64Data(x))

	seed := Component{Amp: y[peak], Mean: x[peak], Sigma: 1}
	b := bounds{
		lo: [3]float64{0, xMin, lmSigmaFloor},
		hi: [3]float64{math.Inf(1), xMax, math.Inf(1)},
	}

	return levenbergMarquardt(x, y, seed, b)
}

// FitTwoGaussians decomposes the distribution of samples into two
// Gaussian components fitted sequentially.
//
// The samples are binned into a 100-bin histogram, the dominant mode is
// fitted first, then the histogram is divided by the first fit's curve
// floored at one count and the secondary mode is fitted to the ratio.
// A secondary whose amplitude stays below half a percent of the bulk's
// is collapsed onto the bulk, same mean and width, so single-population
// input reports zero separation.
// The returned params keep fit order; they are not sorted by amplitude.
func FitTwoGaussians(samples []float64) (Params, error) {
	x, y, err := Histogram(samples, defaultBins)
	if err != nil {
		return Params{}, err
	}

	first, err := FitGaussian(x, y)
	if err != nil {
		return Params{}, err
	}

	ratio := make([]float64, len(y))
	for i := range y {
		den := first.At(x[i])
		if den < 1 {
			den = 1
		}
		ratio[i] = y[i] / den
	}

	second, err := FitGaussian(x, ratio)
	if err != nil {
		return Params{}, err
	}

	// Below the floor the secondary is count noise from the ratio tail.
	// Collapse it onto the bulk so the separation reads zero.
	if second.Amp < minSecondaryFraction*first.Amp {
		second.Mean = first.Mean
		second.Sigma = first.Sigma
	}

	return Params{First: first, Second: second}, nil
}

// Interpret relabels the components so the larger-amplitude one is the
// reference, then reports the height ratio A2/A1 and the normalized
// separation (μ2-μ1)/σ1.
func Interpret(p Params) Interpretation {
	first, second := p.First, p.Second
	if second.Amp > first.Amp {
		first, second = second, first
	}

	return Interpretation{
		HeightRatio: second.Amp / first.Amp,
		Separation:  (second.Mean - first.Mean) / first.Sigma,
	}
}
