// Package testutil provides deterministic light-curve builders shared by
// tests across the module.
package testutil

import (
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformTime returns n timestamps spaced dt apart starting at zero.
func UniformTime(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// Sine evaluates amp·sin(2π·freq·t + phase) at every timestamp.
func Sine(time []float64, freq, amp, phase float64) []float64 {
	out := make([]float64, len(time))
	for i, t := range time {
		out[i] = amp * math.Sin(2*math.Pi*freq*t+phase)
	}
	return out
}

// GaussianNoise returns n samples of zero-mean Gaussian noise with the
// given deviation, reproducible per seed.
func GaussianNoise(n int, sigma float64, seed uint64) []float64 {
	return NormalSamples(n, 0, sigma, seed)
}

// NormalSamples draws n values from N(mu, sigma²), reproducible per seed.
func NormalSamples(n int, mu, sigma float64, seed uint64) []float64 {
	dist := distuv.Normal{
		Mu:    mu,
		Sigma: sigma,
		Src:   exprand.NewSource(seed),
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// NormalQuantiles returns n values placed at the evenly spaced quantiles
// (i+0.5)/n of N(mu, sigma²): a noise population with no sampling
// scatter. The values are strictly increasing.
func NormalQuantiles(n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}

	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

// InjectBox subtracts depth from width consecutive samples starting at
// start, clipped to the array bounds.
func InjectBox(flux []float64, start, width int, depth float64) {
	for i := start; i < start+width && i < len(flux); i++ {
		if i < 0 {
			continue
		}
		flux[i] -= depth
	}
}

// Add returns the elementwise sum of a and b, which must have equal length.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}
