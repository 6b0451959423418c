package periodogram

import (
	"errors"
	"math"
)

var (
	// ErrTooFewSamples is returned when fewer than three samples are given.
	ErrTooFewSamples = errors.New("periodogram: need at least 3 samples")

	// ErrLengthMismatch is returned when time and flux lengths differ.
	ErrLengthMismatch = errors.New("periodogram: time and flux lengths differ")

	// ErrZeroSpan is returned when all timestamps coincide.
	ErrZeroSpan = errors.New("periodogram: zero time span")

	// ErrZeroVariance is returned when the flux is constant.
	ErrZeroVariance = errors.New("periodogram: flux has zero variance")

	// ErrInvalidRange is returned for an empty or inverted frequency range.
	ErrInvalidRange = errors.New("periodogram: invalid frequency range")
)

// Peak is one point of the power spectrum.
type Peak struct {
	Freq   float64
	Period float64
	Power  float64
}

// Periodogram is the normalized Lomb-Scargle power spectrum of one series.
type Periodogram struct {
	time  []float64
	flux  []float64
	freqs []float64
	power []float64
}

// New computes the periodogram of (time, flux) over the configured
// frequency grid. The inputs are not modified and must stay unchanged for
// the lifetime of the returned value.
//
// Power is normalized so that 1 means the sinusoid model explains the
// flux variance completely and 0 means it explains none of it.
func New(time, flux []float64, opts ...Option) (*Periodogram, error) {
	if len(time) != len(flux) {
		return nil, ErrLengthMismatch
	}
	if len(time) < 3 {
		return nil, ErrTooFewSamples
	}

	span := time[len(time)-1] - time[0]
	if span <= 0 {
		return nil, ErrZeroSpan
	}

	cfg := ApplyOptions(opts...)

	minFreq := cfg.MinFreq
	if minFreq <= 0 {
		minFreq = 1 / span
	}
	maxFreq := cfg.MaxFreq
	if maxFreq <= 0 {
		maxFreq = float64(len(time)) / (2 * span)
	}
	if maxFreq <= minFreq {
		return nil, ErrInvalidRange
	}

	step := 1 / (cfg.Oversample * span)
	count := int((maxFreq-minFreq)/step) + 1

	p := &Periodogram{
		time:  time,
		flux:  flux,
		freqs: make([]float64, count),
		power: make([]float64, count),
	}
	for i := range p.freqs {
		p.freqs[i] = minFreq + float64(i)*step
	}

	if err := p.compute(); err != nil {
		return nil, err
	}

	return p, nil
}

// compute evaluates the floating-mean Lomb-Scargle power at every grid
// frequency. Formulas follow Zechmeister & Kürster (2009) with uniform
// weights.
func (p *Periodogram) compute() error {
	n := float64(len(p.flux))

	var mean float64
	for _, y := range p.flux {
		mean += y
	}
	mean /= n

	centered := make([]float64, len(p.flux))
	var yy float64
	for i, y := range p.flux {
		c := y - mean
		centered[i] = c
		yy += c * c
	}
	yy /= n
	if yy == 0 {
		return ErrZeroVariance
	}

	for k, freq := range p.freqs {
		omega := 2 * math.Pi * freq

		var sumC, sumS, sumCC, sumCS, sumYC, sumYS float64
		for i, t := range p.time {
			sin, cos := math.Sincos(omega * t)
			sumC += cos
			sumS += sin
			sumCC += cos * cos
			sumCS += cos * sin
			sumYC += centered[i] * cos
			sumYS += centered[i] * sin
		}

		c1 := sumC / n
		s1 := sumS / n
		cc := sumCC/n - c1*c1
		ss := (1 - sumCC/n) - s1*s1
		cs := sumCS/n - c1*s1
		yc := sumYC / n
		ys := sumYS / n

		d := cc*ss - cs*cs
		if d <= 0 {
			continue
		}

		pw := (ss*yc*yc + cc*ys*ys - 2*cs*yc*ys) / (yy * d)
		if math.IsNaN(pw) || pw < 0 {
			continue
		}
		if pw > 1 {
			pw = 1
		}
		p.power[k] = pw
	}

	return nil
}

// Len returns the number of grid frequencies.
func (p *Periodogram) Len() int { return len(p.freqs) }

// Freqs returns the frequency grid. The slice is owned by the
// periodogram and must not be modified.
func (p *Periodogram) Freqs() []float64 { return p.freqs }

// Power returns the normalized power at each grid frequency. The slice
// is owned by the periodogram and must not be modified.
func (p *Periodogram) Power() []float64 { return p.power }

// Best returns the highest peak of the spectrum.
func (p *Periodogram) Best() Peak {
	best := 0
	for i, pw := range p.power {
		if pw > p.power[best] {
			best = i
		}
	}

	return Peak{
		Freq:   p.freqs[best],
		Period: 1 / p.freqs[best],
		Power:  p.power[best],
	}
}

// BestModel fits the offset sinusoid at the highest peak's frequency.
func (p *Periodogram) BestModel() (Model, error) {
	return Fit(p.time, p.flux, p.Best().Freq)
}
