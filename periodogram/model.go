package periodogram

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when the least-squares system cannot be solved.
var ErrSingular = errors.New("periodogram: singular least-squares system")

// Model is an offset sinusoid a·cos(ωt) + b·sin(ωt) + c at a fixed
// frequency.
type Model struct {
	Freq   float64
	CosAmp float64
	SinAmp float64
	Offset float64
}

// Fit solves for the sinusoid coefficients at the given frequency by
// linear least squares over (time, flux). Ill-conditioned systems are
// reported as ErrSingular rather than returning dubious coefficients.
func Fit(time, flux []float64, freq float64) (Model, error) {
	if len(time) != len(flux) {
		return Model{}, ErrLengthMismatch
	}
	if len(time) < 3 {
		return Model{}, ErrTooFewSamples
	}
	if freq <= 0 {
		return Model{}, ErrInvalidRange
	}

	omega := 2 * math.Pi * freq
	n := len(time)

	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, t := range time {
		sin, cos := math.Sincos(omega * t)
		a.Set(i, 0, cos)
		a.Set(i, 1, sin)
		a.Set(i, 2, 1)
		b.SetVec(i, flux[i])
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Model{}, ErrSingular
	}

	return Model{
		Freq:   freq,
		CosAmp: x.AtVec(0),
		SinAmp: x.AtVec(1),
		Offset: x.AtVec(2),
	}, nil
}

// At evaluates the model at time t.
func (m Model) At(t float64) float64 {
	sin, cos := math.Sincos(2 * math.Pi * m.Freq * t)
	return m.CosAmp*cos + m.SinAmp*sin + m.Offset
}

// Predict evaluates the model at every given time.
func (m Model) Predict(time []float64) []float64 {
	out := make([]float64, len(time))
	for i, t := range time {
		out[i] = m.At(t)
	}
	return out
}

// Amplitude returns the peak amplitude of the sinusoidal part.
func (m Model) Amplitude() float64 {
	return math.Hypot(m.CosAmp, m.SinAmp)
}

// Period returns the model period, 1/Freq.
func (m Model) Period() float64 { return 1 / m.Freq }
