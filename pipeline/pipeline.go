package pipeline

import (
	"errors"
	"fmt"

	"github.com/drgmk/comet-project/detrend"
	"github.com/drgmk/comet-project/lightcurve"
	"github.com/drgmk/comet-project/mixture"
	"github.com/drgmk/comet-project/stats/moments"
	"github.com/drgmk/comet-project/transit"
)

const (
	defaultMaxHalfWidth = 20
	defaultFourierBins  = 5
)

// ErrUnknownMode is returned for a DetrendMode outside the defined set.
var ErrUnknownMode = errors.New("pipeline: unknown detrend mode")

// DetrendMode selects which denoiser runs between normalization and the
// windowed statistic.
type DetrendMode int

const (
	// DetrendPeriodogram runs the iterative Lomb-Scargle filter. It is
	// the default: it tolerates off-grid periods and fits only real
	// samples.
	DetrendPeriodogram DetrendMode = iota

	// DetrendFourier runs the single-pass top-k bin filter.
	DetrendFourier

	// DetrendBoth runs the Fourier filter first, then the periodogram
	// filter on its residual.
	DetrendBoth
)

// String implements fmt.Stringer.
func (m DetrendMode) String() string {
	switch m {
	case DetrendPeriodogram:
		return "periodogram"
	case DetrendFourier:
		return "fourier"
	case DetrendBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Config holds per-run parameters. The zero value selects all defaults.
type Config struct {
	// Detrend selects the denoising stage.
	Detrend DetrendMode

	// FourierBins is the k handed to detrend.FourierFilter when the
	// Fourier stage runs. Nonpositive selects the default of 5.
	FourierBins int

	// Filter parametrizes the periodogram stage when it runs.
	Filter detrend.FilterConfig

	// MaxHalfWidth bounds the statistic's half-width rows. Nonpositive
	// selects the default of 20.
	MaxHalfWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Detrend:      DetrendPeriodogram,
		FourierBins:  defaultFourierBins,
		Filter:       detrend.DefaultFilterConfig(),
		MaxHalfWidth: defaultMaxHalfWidth,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.FourierBins <= 0 {
		cfg.FourierBins = defaultFourierBins
	}
	if cfg.MaxHalfWidth <= 0 {
		cfg.MaxHalfWidth = defaultMaxHalfWidth
	}
	return cfg
}

// Result carries the outputs of every stage of one run.
type Result struct {
	// Series is the uniformly resampled light curve; Real flags its
	// original (true) versus interpolated (false) samples.
	Series lightcurve.Series
	Real   []bool

	// Flux is the normalized, denoised flux the statistic was built on.
	Flux []float64

	// FluxStats summarizes Flux in one pass.
	FluxStats moments.Summary

	// Report describes the periodogram filter run. It is the zero
	// value when that stage did not run.
	Report detrend.Report

	// Matrix is the windowed detection statistic.
	Matrix *transit.Matrix

	// Params is the two-Gaussian decomposition of the statistic's
	// nonzero values, in fit order.
	Params mixture.Params

	// Summary is Params after canonical relabeling.
	Summary mixture.Interpretation
}

// Analyze runs the whole pipeline with default configuration.
func Analyze(s lightcurve.Series) (*Result, error) {
	return Run(s, DefaultConfig())
}

// Run executes resampling, normalization, denoising, the windowed
// statistic, and the mixture fit over one light curve.
//
// Every stage error is returned wrapped with the stage name; partial
// results are not returned. The one exception is the periodogram
// filter's documented best-effort contract: its internal fit failures
// terminate that stage early and are recorded in Result.Report rather
// than raised.
func Run(s lightcurve.Series, cfg Config) (*Result, error) {
	cfg = normalizeConfig(cfg)

	resampled, real, err := lightcurve.Resample(s)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resample: %w", err)
	}

	flux, err := lightcurve.Normalize(resampled.Flux)
	if err != nil {
		return nil, fmt.Errorf("pipeline: normalize: %w", err)
	}

	res := &Result{
		Series: resampled,
		Real:   real,
	}

	switch cfg.Detrend {
	case DetrendPeriodogram:
		flux, res.Report, err = detrend.PeriodogramFilter(resampled.Time, flux, real, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("pipeline: periodogram filter: %w", err)
		}

	case DetrendFourier:
		flux, err = detrend.FourierFilter(flux, cfg.FourierBins)
		if err != nil {
			return nil, fmt.Errorf("pipeline: fourier filter: %w", err)
		}

	case DetrendBoth:
		flux, err = detrend.FourierFilter(flux, cfg.FourierBins)
		if err != nil {
			return nil, fmt.Errorf("pipeline: fourier filter: %w", err)
		}
		flux, res.Report, err = detrend.PeriodogramFilter(resampled.Time, flux, real, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("pipeline: periodogram filter: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, cfg.Detrend)
	}

	res.Flux = flux
	res.FluxStats = moments.Calculate(flux)

	res.Matrix, err = transit.Statistic(flux, cfg.MaxHalfWidth)
	if err != nil {
		return nil, fmt.Errorf("pipeline: statistic: %w", err)
	}

	res.Params, err = mixture.FitTwoGaussians(res.Matrix.Nonzero())
	if err != nil {
		return nil, fmt.Errorf("pipeline: mixture fit: %w", err)
	}
	res.Summary = mixture.Interpret(res.Params)

	return res, nil
}
