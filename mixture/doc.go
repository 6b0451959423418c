// Package mixture decomposes the detection-statistic distribution into a
// background and a signal-bearing Gaussian population.
//
// The nonzero statistic values are binned into a histogram and fitted
// sequentially: first a single Gaussian captures the dominant (noise)
// mode, then the histogram is divided by that fit, floored at one count
// to keep the division bounded, and a second Gaussian is fitted to the
// ratio. A secondary at the count-noise floor is collapsed onto the
// bulk, so a pure-noise curve reports zero separation.
//
// Interpret reduces the six parameters to two numbers: the height ratio
// of the smaller to the larger component and their mean separation in
// units of the larger component's width. A well-separated second
// population is the signature of a transit-bearing curve.
package mixture
