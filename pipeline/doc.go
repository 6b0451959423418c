// Package pipeline chains the transit-detection stages over one light
// curve: resample, normalize, denoise, windowed statistic, mixture fit.
//
// Each Run call owns its buffers end to end, so independent light curves
// can be processed concurrently with one pipeline invocation each. All
// tuning lives in the per-call Config; there is no package-level state.
package pipeline
