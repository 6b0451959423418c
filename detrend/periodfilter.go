package detrend

import (
	"github.com/drgmk/comet-project/lightcurve"
	"github.com/drgmk/comet-project/periodogram"
)

const (
	defaultMaxIterations = 30
	defaultMinScore      = 0.1
	defaultOversample    = 5.0
)

// StopReason tells why PeriodogramFilter stopped iterating.
type StopReason int

const (
	// StopConverged means the best peak fell below MinScore.
	StopConverged StopReason = iota

	// StopFitFailed means a periodogram fit failed mid-loop. The flux
	// accumulated so far is returned and the failure is reported here,
	// never raised as an error.
	StopFitFailed

	// StopIterationCap means MaxIterations components were subtracted.
	StopIterationCap
)

// String implements fmt.Stringer.
func (r StopReason) String() string {
	switch r {
	case StopConverged:
		return "converged"
	case StopFitFailed:
		return "fit failed"
	case StopIterationCap:
		return "iteration cap"
	default:
		return "unknown"
	}
}

// FilterConfig holds per-call parameters for PeriodogramFilter. The zero
// value selects all defaults.
//
// Configuration is per invocation so that concurrent pipelines over
// series with different time spans cannot contaminate each other.
type FilterConfig struct {
	// MinScore is the normalized power below which the best peak is
	// considered noise and iteration stops. Nonpositive selects the
	// default of 0.1.
	MinScore float64

	// MaxIterations caps the number of subtracted components.
	// Nonpositive selects the default of 30.
	MaxIterations int

	// Oversample is the periodogram grid density (see periodogram.Config).
	Oversample float64

	// MinFreq and MaxFreq optionally restrict the searched frequency
	// range; zero selects the full-series band [1/span, N/(2·span)].
	MinFreq float64
	MaxFreq float64

	// Trace, when non-nil, is called after every subtracted component.
	// Leave nil for quiet operation.
	Trace func(TraceStep)
}

// TraceStep describes one subtracted periodic component.
type TraceStep struct {
	Iteration int
	Peak      periodogram.Peak
	Model     periodogram.Model
}

// DefaultFilterConfig returns sensible defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinScore:      defaultMinScore,
		MaxIterations: defaultMaxIterations,
		Oversample:    defaultOversample,
	}
}

func normalizeFilterConfig(cfg FilterConfig) FilterConfig {
	if cfg.MinScore <= 0 {
		cfg.MinScore = defaultMinScore
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.Oversample <= 0 {
		cfg.Oversample = defaultOversample
	}
	return cfg
}

// Report summarizes a PeriodogramFilter run.
type Report struct {
	// Iterations is the number of components actually subtracted.
	Iterations int

	// Stop is the terminating condition.
	Stop StopReason

	// Removed holds the best peak of each subtracted component in
	// subtraction order.
	Removed []periodogram.Peak
}

// PeriodogramFilter iteratively subtracts the strongest periodic
// component from flux until the Lomb-Scargle spectrum of the remaining
// real samples has no peak above cfg.MinScore.
//
// Each iteration fits the periodogram over the samples flagged true in
// real only; interpolated samples carry no independent periodic
// information and would bias the fit toward the resampling cadence. The
// fitted model is then evaluated and subtracted at every sample, real
// and interpolated alike. time and real are read-only; the returned
// flux is a new array.
//
// A fit failure inside the loop terminates it and returns the flux as
// accumulated so far with Report.Stop set to StopFitFailed. The error
// return covers input validation only.
func PeriodogramFilter(time, flux []float64, real []bool, cfg FilterConfig) ([]float64, Report, error) {
	if len(time) != len(flux) || len(real) != len(flux) {
		return nil, Report{}, ErrLengthMismatch
	}

	realCount := 0
	for _, r := range real {
		if r {
			realCount++
		}
	}
	if realCount < 3 {
		return nil, Report{}, ErrTooFewReal
	}

	cfg = normalizeFilterConfig(cfg)

	out := make([]float64, len(flux))
	copy(out, flux)

	// The search band comes from the full series, one cycle per span up
	// to the Nyquist rate N/(2·span) of the resampled cadence. The real
	// subset is only the fit domain, never the band.
	span := time[len(time)-1] - time[0]
	minFreq, maxFreq := cfg.MinFreq, cfg.MaxFreq
	if span > 0 {
		if minFreq <= 0 {
			minFreq = 1 / span
		}
		if maxFreq <= 0 {
			maxFreq = float64(len(time)) / (2 * span)
		}
	}

	opts := []periodogram.Option{
		periodogram.WithOversample(cfg.Oversample),
		periodogram.WithFrequencyRange(minFreq, maxFreq),
	}

	rep := Report{Stop: StopIterationCap}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		measured, err := lightcurve.SelectReal(lightcurve.Series{Time: time, Flux: out}, real)
		if err != nil {
			rep.Stop = StopFitFailed
			break
		}

		p, err := periodogram.New(measured.Time, measured.Flux, opts...)
		if err != nil {
			rep.Stop = StopFitFailed
			break
		}

		best := p.Best()
		if best.Power < cfg.MinScore {
			rep.Stop = StopConverged
			break
		}

		model, err := p.BestModel()
		if err != nil {
			rep.Stop = StopFitFailed
			break
		}

		for i, t := range time {
			out[i] -= model.At(t)
		}
		rep.Removed = append(rep.Removed, best)

		if cfg.Trace != nil {
			cfg.Trace(TraceStep{Iteration: iter, Peak: best, Model: model})
		}
	}

	rep.Iterations = len(rep.Removed)

	return out, rep, nil
}
