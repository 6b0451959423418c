// Package detrend removes periodic noise from uniformly resampled light
// curves so that box-shaped transit dips stand out against a flat
// baseline.
//
// Two complementary filters are provided. FourierFilter is a single
// deterministic pass: it transforms the flux, keeps the k strongest
// frequency bins, and subtracts their reconstruction. PeriodogramFilter
// iterates a Lomb-Scargle fit restricted to genuine (non-interpolated)
// samples, subtracting one periodic component per iteration until the
// spectrum's best peak drops below a significance floor. The iterative
// filter handles signals whose periods do not align with the Fourier bin
// grid and ignores the bias that gap-filled samples would introduce.
//
// Spectrum and SuggestPeaks give a quick amplitude-spectrum view of a
// curve, useful for choosing the bin budget handed to FourierFilter.
package detrend
