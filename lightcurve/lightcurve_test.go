package lightcurve

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol
}

func uniformSeries(n int, dt float64) Series {
	s := Series{
		Time: make([]float64, n),
		Flux: make([]float64, n),
	}
	for i := range s.Time {
		s.Time[i] = float64(i) * dt
		s.Flux[i] = 1 + 0.01*float64(i%5)
	}
	return s
}

func TestEstimateTimestep_TooShort(t *testing.T) {
	if _, err := EstimateTimestep([]float64{1}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("got %v, want ErrTooShort", err)
	}
}

func TestEstimateTimestep_NonIncreasing(t *testing.T) {
	if _, err := EstimateTimestep([]float64{0, 1, 1, 2}); !errors.Is(err, ErrNonIncreasing) {
		t.Fatalf("got %v, want ErrNonIncreasing", err)
	}
}

func TestEstimateTimestep_OddDiffCount(t *testing.T) {
	// Diffs {1, 2, 4}: median is the middle element, 2.
	got, err := EstimateTimestep([]float64{0, 1, 3, 7})
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("got %g, want 2", got)
	}
}

func TestEstimateTimestep_EvenDiffCountTakesLowerMiddle(t *testing.T) {
	// Diffs sorted: {1, 2, 3, 4}. The lower-middle element (index 1) is 2,
	// not the interpolated median 2.5.
	got, err := EstimateTimestep([]float64{0, 2, 3, 7, 10})
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("got %g, want lower-middle 2", got)
	}
}

func TestResample_UniformInputUnchanged(t *testing.T) {
	s := uniformSeries(100, 0.5)

	out, real, err := Resample(s)
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != s.Len() {
		t.Fatalf("length changed: got %d, want %d", out.Len(), s.Len())
	}
	for i := range real {
		if !real[i] {
			t.Fatalf("point %d marked synthetic on gap-free input", i)
		}
		if out.Time[i] != s.Time[i] || out.Flux[i] != s.Flux[i] {
			t.Fatalf("point %d altered: got (%g, %g), want (%g, %g)",
				i, out.Time[i], out.Flux[i], s.Time[i], s.Flux[i])
		}
	}
}

func TestResample_TripleGapInsertsTwoPoints(t *testing.T) {
	// Cadence 1.0 with one gap of exactly 3 steps between t=4 and t=7.
	s := Series{
		Time: []float64{0, 1, 2, 3, 4, 7, 8, 9},
		Flux: []float64{0, 0, 0, 0, 1, 4, 4, 4},
	}

	out, real, err := Resample(s)
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != 10 {
		t.Fatalf("got %d points, want 10", out.Len())
	}

	synthetic := 0
	for _, r := range real {
		if !r {
			synthetic++
		}
	}
	if synthetic != 2 {
		t.Fatalf("got %d synthetic points, want 2", synthetic)
	}

	// Inserted at t=5 and t=6, linearly interpolated between (4,1) and (7,4).
	if real[5] || real[6] {
		t.Fatal("inserted points not flagged synthetic")
	}
	if !almostEqual(out.Time[5], 5, tolerance) || !almostEqual(out.Time[6], 6, tolerance) {
		t.Errorf("inserted times: got %g, %g, want 5, 6", out.Time[5], out.Time[6])
	}
	if !almostEqual(out.Flux[5], 2, tolerance) || !almostEqual(out.Flux[6], 3, tolerance) {
		t.Errorf("inserted flux: got %g, %g, want 2, 3", out.Flux[5], out.Flux[6])
	}
}

func TestResample_SpacingIsExactlyDelta(t *testing.T) {
	s := Series{
		Time: []float64{0, 0.25, 0.5, 0.75, 2.0, 2.25},
		Flux: []float64{1, 1, 1, 1, 1, 1},
	}

	out, _, err := Resample(s)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < out.Len(); i++ {
		dt := out.Time[i] - out.Time[i-1]
		if dt <= 0 {
			t.Fatalf("non-increasing output at %d", i)
		}
		if math.Abs(dt-0.25) > 1e-9 {
			t.Errorf("gap %d: got spacing %g, want 0.25", i, dt)
		}
	}
}

func TestResample_Errors(t *testing.T) {
	tests := []struct {
		name string
		s    Series
		want error
	}{
		{"empty", Series{}, ErrTooShort},
		{"single sample", Series{Time: []float64{1}, Flux: []float64{1}}, ErrTooShort},
		{"length mismatch", Series{Time: []float64{1, 2}, Flux: []float64{1}}, ErrLengthMismatch},
		{"duplicate time", Series{Time: []float64{1, 1, 2}, Flux: []float64{1, 2, 3}}, ErrNonIncreasing},
		{"NaN time", Series{Time: []float64{1, math.NaN(), 3}, Flux: []float64{1, 2, 3}}, ErrNaN},
		{"NaN flux", Series{Time: []float64{1, 2, 3}, Flux: []float64{1, math.NaN(), 3}}, ErrNaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Resample(tt.s); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalize_ZeroMeanResult(t *testing.T) {
	flux := []float64{0.9, 1.0, 1.1, 1.05, 0.95}

	out, err := Normalize(flux)
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, f := range out {
		sum += f
	}
	if math.Abs(sum/float64(len(out))) > 1e-14 {
		t.Errorf("normalized mean: got %g, want ~0", sum/float64(len(out)))
	}
}

func TestNormalize_KnownValues(t *testing.T) {
	out, err := Normalize([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{-0.5, 0, 0.5}
	for i := range want {
		if !almostEqual(out[i], want[i], tolerance) {
			t.Errorf("out[%d]: got %g, want %g", i, out[i], want[i])
		}
	}
}

func TestNormalize_ZeroMean(t *testing.T) {
	if _, err := Normalize([]float64{-1, 1}); !errors.Is(err, ErrZeroMean) {
		t.Fatalf("got %v, want ErrZeroMean", err)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if _, err := Normalize(nil); !errors.Is(err, ErrTooShort) {
		t.Fatalf("got %v, want ErrTooShort", err)
	}
}

func TestSelectReal(t *testing.T) {
	s := Series{
		Time: []float64{0, 1, 2, 3},
		Flux: []float64{10, 11, 12, 13},
	}
	real := []bool{true, false, false, true}

	out, err := SelectReal(s, real)
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != 2 {
		t.Fatalf("got %d samples, want 2", out.Len())
	}
	if out.Time[0] != 0 || out.Time[1] != 3 || out.Flux[0] != 10 || out.Flux[1] != 13 {
		t.Errorf("got %v / %v, want selected endpoints", out.Time, out.Flux)
	}
}

func TestSelectReal_MaskMismatch(t *testing.T) {
	s := Series{Time: []float64{0, 1}, Flux: []float64{1, 2}}
	if _, err := SelectReal(s, []bool{true}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("got %v, want ErrLengthMismatch", err)
	}
}

func TestSpan(t *testing.T) {
	s := Series{Time: []float64{2, 3, 9}, Flux: []float64{0, 0, 0}}
	if got := s.Span(); got != 7 {
		t.Errorf("Span: got %g, want 7", got)
	}
	if got := (Series{}).Span(); got != 0 {
		t.Errorf("empty Span: got %g, want 0", got)
	}
}
