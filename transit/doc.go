// Package transit computes the sliding-window detection statistic for
// box-shaped dips in a denoised light curve.
//
// For every half-width m and center i the statistic is the window sum of
// flux[i-m : i+m] scaled by 1/(sqrt(2m)·σ), which is the matched-filter
// response to a box dip of that width under white noise of deviation σ.
// A transit appears as a strongly negative cell whose half-width row
// matches the transit duration and whose column matches its epoch.
//
// The inner loop maintains the window sum incrementally, one add and one
// subtract per center, so the full matrix costs O(maxHalfWidth · N)
// rather than O(maxHalfWidth · N · width).
package transit
