// Package periodogram implements a floating-mean Lomb-Scargle periodogram
// for unevenly sampled light curves.
//
// Unlike an FFT, the Lomb-Scargle estimator works directly on arbitrary
// time stamps, so it can be restricted to genuine measurements while
// skipping gap-filled samples. At each trial frequency the flux is fitted
// by least squares to an offset sinusoid
//
//	y(t) = a·cos(ωt) + b·sin(ωt) + c
//
// and the power is the fraction of the flux variance explained by that
// fit, normalized to [0, 1]. The floating offset term makes the estimator
// insensitive to an imperfectly removed mean, which matters for series
// whose gaps would otherwise bias a fixed-mean fit.
//
// New computes power over a frequency grid spanning one cycle per series
// up to the pseudo-Nyquist limit; Fit recovers the sinusoid coefficients
// at any single frequency so callers can evaluate and subtract the model.
package periodogram
