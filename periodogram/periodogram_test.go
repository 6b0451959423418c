package periodogram

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func sineSeries(n int, span, freq, phase float64) ([]float64, []float64) {
	time := make([]float64, n)
	flux := make([]float64, n)
	for i := range time {
		t := span * float64(i) / float64(n-1)
		time[i] = t
		flux[i] = math.Sin(2*math.Pi*freq*t + phase)
	}
	return time, flux
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		time []float64
		flux []float64
		want error
	}{
		{"length mismatch", []float64{0, 1, 2}, []float64{0, 1}, ErrLengthMismatch},
		{"too few", []float64{0, 1}, []float64{0, 1}, ErrTooFewSamples},
		{"zero span", []float64{1, 1, 1}, []float64{0, 1, 2}, ErrZeroSpan},
		{"constant flux", []float64{0, 1, 2}, []float64{5, 5, 5}, ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.time, tt.flux); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_InvalidRange(t *testing.T) {
	time, flux := sineSeries(50, 10, 1, 0)

	_, err := New(time, flux, WithFrequencyRange(5, 2))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}

func TestBest_RecoversSineFrequency(t *testing.T) {
	const (
		span = 10.0
		freq = 1.3
	)
	time, flux := sineSeries(400, span, freq, 0.7)

	p, err := New(time, flux)
	if err != nil {
		t.Fatal(err)
	}

	best := p.Best()

	// The grid step is 1/(5·span); the peak must land within one step.
	step := 1 / (5 * span)
	if math.Abs(best.Freq-freq) > step {
		t.Errorf("peak frequency: got %g, want %g ± %g", best.Freq, freq, step)
	}
	if best.Power < 0.95 {
		t.Errorf("peak power: got %g, want near 1 for a pure sinusoid", best.Power)
	}
	if math.Abs(best.Period-1/best.Freq) > 1e-15 {
		t.Errorf("period: got %g, want %g", best.Period, 1/best.Freq)
	}
}

func TestBest_IrregularSampling(t *testing.T) {
	// Random sampling: a Lomb-Scargle estimator must still find the
	// period where an FFT could not be applied at all.
	const freq = 2.5
	rng := rand.New(rand.NewSource(3))

	time := make([]float64, 300)
	flux := make([]float64, 300)
	cursor := 0.0
	for i := range time {
		cursor += 0.01 + 0.05*rng.Float64()
		time[i] = cursor
		flux[i] = math.Sin(2*math.Pi*freq*time[i]) + 0.1*rng.NormFloat64()
	}

	p, err := New(time, flux)
	if err != nil {
		t.Fatal(err)
	}

	best := p.Best()
	if math.Abs(best.Freq-freq) > 0.05 {
		t.Errorf("peak frequency: got %g, want %g", best.Freq, freq)
	}
}

func TestNew_PowerWithinUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	time := make([]float64, 128)
	flux := make([]float64, 128)
	for i := range time {
		time[i] = float64(i) * 0.3
		flux[i] = rng.NormFloat64()
	}

	p, err := New(time, flux)
	if err != nil {
		t.Fatal(err)
	}

	for i, pw := range p.Power() {
		if pw < 0 || pw > 1 || math.IsNaN(pw) {
			t.Fatalf("power[%d] = %g outside [0, 1]", i, pw)
		}
	}
}

func TestNew_FrequencyRangeRespected(t *testing.T) {
	time, flux := sineSeries(200, 10, 1, 0)

	p, err := New(time, flux, WithFrequencyRange(0.5, 3))
	if err != nil {
		t.Fatal(err)
	}

	freqs := p.Freqs()
	if freqs[0] < 0.5 {
		t.Errorf("first freq %g below requested minimum", freqs[0])
	}
	if freqs[len(freqs)-1] > 3 {
		t.Errorf("last freq %g above requested maximum", freqs[len(freqs)-1])
	}
}

func TestWithPeriodRange(t *testing.T) {
	cfg := ApplyOptions(WithPeriodRange(0.5, 4))

	if math.Abs(cfg.MinFreq-0.25) > 1e-15 {
		t.Errorf("MinFreq: got %g, want 0.25", cfg.MinFreq)
	}
	if math.Abs(cfg.MaxFreq-2) > 1e-15 {
		t.Errorf("MaxFreq: got %g, want 2", cfg.MaxFreq)
	}
}

func TestApplyOptions_IgnoresInvalid(t *testing.T) {
	cfg := ApplyOptions(WithOversample(-1), nil)

	if cfg.Oversample != DefaultConfig().Oversample {
		t.Errorf("Oversample: got %g, want default %g", cfg.Oversample, DefaultConfig().Oversample)
	}
}

func TestFit_RecoversCoefficients(t *testing.T) {
	const (
		freq   = 0.8
		cosAmp = 2.0
		sinAmp = -1.0
		offset = 0.5
	)

	rng := rand.New(rand.NewSource(5))
	time := make([]float64, 64)
	flux := make([]float64, 64)
	cursor := 0.0
	for i := range time {
		cursor += 0.05 + 0.2*rng.Float64()
		time[i] = cursor
		sin, cos := math.Sincos(2 * math.Pi * freq * time[i])
		flux[i] = cosAmp*cos + sinAmp*sin + offset
	}

	m, err := Fit(time, flux, freq)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(m.CosAmp-cosAmp) > 1e-8 {
		t.Errorf("CosAmp: got %g, want %g", m.CosAmp, cosAmp)
	}
	if math.Abs(m.SinAmp-sinAmp) > 1e-8 {
		t.Errorf("SinAmp: got %g, want %g", m.SinAmp, sinAmp)
	}
	if math.Abs(m.Offset-offset) > 1e-8 {
		t.Errorf("Offset: got %g, want %g", m.Offset, offset)
	}

	wantAmp := math.Hypot(cosAmp, sinAmp)
	if math.Abs(m.Amplitude()-wantAmp) > 1e-8 {
		t.Errorf("Amplitude: got %g, want %g", m.Amplitude(), wantAmp)
	}
}

func TestFit_Errors(t *testing.T) {
	time := []float64{0, 1, 2, 3}
	flux := []float64{0, 1, 0, -1}

	if _, err := Fit(time, flux[:3], 1); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("length mismatch: got %v", err)
	}
	if _, err := Fit(time[:2], flux[:2], 1); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("too few: got %v", err)
	}
	if _, err := Fit(time, flux, 0); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("zero freq: got %v", err)
	}
}

func TestModel_PredictMatchesAt(t *testing.T) {
	m := Model{Freq: 1.5, CosAmp: 0.3, SinAmp: 0.4, Offset: -0.2}
	time := []float64{0, 0.1, 0.25, 1.7}

	pred := m.Predict(time)
	for i, t0 := range time {
		if pred[i] != m.At(t0) {
			t.Errorf("Predict[%d]: got %g, want %g", i, pred[i], m.At(t0))
		}
	}
}

func TestBestModel_SubtractionRemovesSine(t *testing.T) {
	time, flux := sineSeries(256, 8, 1.25, 0.3)

	p, err := New(time, flux)
	if err != nil {
		t.Fatal(err)
	}

	m, err := p.BestModel()
	if err != nil {
		t.Fatal(err)
	}

	var rms float64
	for i, t0 := range time {
		r := flux[i] - m.At(t0)
		rms += r * r
	}
	rms = math.Sqrt(rms / float64(len(time)))

	// Residual after subtracting the fitted sinusoid must be far below
	// the unit signal amplitude.
	if rms > 0.1 {
		t.Errorf("residual rms: got %g, want < 0.1", rms)
	}
}
