// Package lightcurve provides the sampling-repair primitives for stellar
// brightness time series.
//
// A light curve arrives as parallel time and flux arrays with strictly
// increasing timestamps but possibly irregular spacing (gaps from downlink
// windows, safe modes, or quality masking). EstimateTimestep recovers the
// nominal cadence from the median of consecutive time differences, and
// Resample fills gaps by linear interpolation so that downstream
// frequency-domain stages see a uniform grid. Every synthesized point is
// flagged so later stages can restrict themselves to genuine measurements.
//
// Normalize converts flux to the zero-mean relative deviation
// flux/mean - 1 used throughout the detection pipeline.
package lightcurve
