package periodogram

// Config defines the frequency grid of a periodogram.
type Config struct {
	// Oversample controls the grid density: the frequency step is
	// 1/(Oversample · span). Values above 1 resolve peaks narrower
	// than the natural 1/span resolution element.
	Oversample float64

	// MinFreq and MaxFreq bound the searched frequencies in cycles per
	// time unit. Zero selects the defaults 1/span and N/(2·span).
	MinFreq float64
	MaxFreq float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Oversample: 5,
	}
}

// WithOversample sets the frequency grid oversampling factor.
func WithOversample(oversample float64) Option {
	return func(cfg *Config) {
		if oversample > 0 {
			cfg.Oversample = oversample
		}
	}
}

// WithFrequencyRange restricts the searched frequency range.
func WithFrequencyRange(minFreq, maxFreq float64) Option {
	return func(cfg *Config) {
		if minFreq > 0 {
			cfg.MinFreq = minFreq
		}
		if maxFreq > 0 {
			cfg.MaxFreq = maxFreq
		}
	}
}

// WithPeriodRange restricts the search by period instead of frequency.
// The bounds are converted to the equivalent frequency range.
func WithPeriodRange(minPeriod, maxPeriod float64) Option {
	return func(cfg *Config) {
		if maxPeriod > 0 {
			cfg.MinFreq = 1 / maxPeriod
		}
		if minPeriod > 0 {
			cfg.MaxFreq = 1 / minPeriod
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
