package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t when got and want differ in length or
// when any element pair differs by more than eps. The worst offender is
// reported.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	worst, at := 0.0, 0
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worst {
			worst, at = d, i
		}
	}
	if worst > eps {
		t.Fatalf("index %d: got %v, want %v (|diff| %v > eps %v)",
			at, got[at], want[at], worst, eps)
	}
}

// RequireFinite fails t when data contains a NaN or an infinity.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireIncreasing fails t when time is not strictly increasing.
func RequireIncreasing(t *testing.T, time []float64) {
	t.Helper()
	for i := 1; i < len(time); i++ {
		if time[i] <= time[i-1] {
			t.Fatalf("index %d: time %v does not increase past %v", i, time[i], time[i-1])
		}
	}
}
