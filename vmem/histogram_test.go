package vmem

import (
	"math"
	"testing"
)

// TestHistogramBasic tests basic histogram operations
func TestHistogramBasic(t *testing.T) {
	h := NewHistogram()

	samples := []uint64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	for _, s := range samples {
		h.Record(s)
	}

	if h.Count() != 10 {
		t.Errorf("Expected count 10, got %d", h.Count())
	}

	if h.Min() != 10 {
		t.Errorf("Expected min 10, got %d", h.Min())
	}
	if h.Max() != 100 {
		t.Errorf("Expected max 100, got %d", h.Max())
	}

	if math.Abs(h.Mean()-55.0) > 0.1 {
		t.Errorf("Expected mean 55, got %.2f", h.Mean())
	}
}

// TestHistogramPercentiles tests percentile calculations
func TestHistogramPercentiles(t *testing.T) {
	h := NewHistogram()

	// Record in reverse so the percentile path has to sort
	for i := uint64(100); i >= 1; i-- {
		h.Record(i)
	}

	tests := []struct {
		percentile float64
		expected   float64
		tolerance  float64
	}{
		{50, 50.5, 0.01},
		{95, 95.05, 0.01},
		{99, 99.01, 0.01},
		{0, 1.0, 0.01},
		{100, 100.0, 0.01},
	}

	for _, tt := range tests {
		got := h.Percentile(tt.percentile)
		if math.Abs(got-tt.expected) > tt.tolerance {
			t.Errorf("P%.0f: expected %.2f, got %.2f", tt.percentile, tt.expected, got)
		}
	}
}

func TestHistogramRepeatedValues(t *testing.T) {
	h := NewHistogram()
	for range 90 {
		h.Record(4)
	}
	for range 10 {
		h.Record(1000)
	}

	if h.Percentile(50) != 4 {
		t.Errorf("Expected median 4, got %.2f", h.Percentile(50))
	}
	if h.Percentile(99) != 1000 {
		t.Errorf("Expected p99 1000, got %.2f", h.Percentile(99))
	}

	// A new distinct value after a percentile query must be picked up
	h.Record(1)
	if h.Percentile(0) != 1 {
		t.Errorf("Expected p0 1 after new minimum, got %.2f", h.Percentile(0))
	}
}

// TestHistogramKeepsEverySample tests that no samples are dropped on long runs
func TestHistogramKeepsEverySample(t *testing.T) {
	h := NewHistogram()
	const n = 50000
	for i := range uint64(n) {
		h.Record(i % 7)
	}

	if h.Count() != n {
		t.Errorf("Expected count %d, got %d", n, h.Count())
	}
	if h.Min() != 0 || h.Max() != 6 {
		t.Errorf("Expected range [0,6], got [%d,%d]", h.Min(), h.Max())
	}
}

func TestHistogramEmptyAndReset(t *testing.T) {
	h := NewHistogram()
	if snap := h.Snapshot(); snap != (HistogramSnapshot{}) {
		t.Errorf("Expected zero snapshot, got %+v", snap)
	}

	h.Record(5)
	h.Record(9)
	h.Reset()
	if h.Count() != 0 {
		t.Errorf("Expected count 0 after reset, got %d", h.Count())
	}
	if snap := h.Snapshot(); snap != (HistogramSnapshot{}) {
		t.Errorf("Expected zero snapshot after reset, got %+v", snap)
	}

	h.Record(3)
	if h.Min() != 3 || h.Percentile(50) != 3 {
		t.Errorf("Expected fresh samples after reset, got min %d p50 %.2f", h.Min(), h.Percentile(50))
	}
}
