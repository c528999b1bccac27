package vmem

import (
	"math"
	"slices"
)

// Histogram tracks the residency of evicted pages, measured in events,
// over a whole run. Samples are kept as exact value counts so every
// eviction contributes to Count, Mean and the percentiles.
// It is owned by a single run and is not safe for concurrent use.
type Histogram struct {
	counts map[uint64]uint64
	total  uint64
	sum    float64
	min    uint64
	max    uint64
	keys   []uint64 // sorted distinct values, rebuilt lazily
	dirty  bool
}

// NewHistogram creates an empty histogram
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[uint64]uint64)}
}

// Record adds a sample
func (h *Histogram) Record(v uint64) {
	if h.total == 0 || v < h.min {
		h.min = v
	}
	if v > h.max {
		h.max = v
	}
	if h.counts[v] == 0 {
		h.dirty = true
	}
	h.counts[v]++
	h.total++
	h.sum += float64(v)
}

// valueAt returns the sample at position idx of the sorted distribution
func (h *Histogram) valueAt(idx uint64) uint64 {
	if h.dirty {
		h.keys = h.keys[:0]
		for v := range h.counts {
			h.keys = append(h.keys, v)
		}
		slices.Sort(h.keys)
		h.dirty = false
	}

	var seen uint64
	for _, v := range h.keys {
		seen += h.counts[v]
		if idx < seen {
			return v
		}
	}
	return h.max
}

// Percentile calculates the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	if h.total == 0 {
		return 0
	}

	rank := (p / 100.0) * float64(h.total-1)
	lower := uint64(math.Floor(rank))
	upper := uint64(math.Ceil(rank))

	lo := float64(h.valueAt(lower))
	if lower == upper {
		return lo
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return lo*(1-weight) + float64(h.valueAt(upper))*weight
}

// Mean calculates the average sample
func (h *Histogram) Mean() float64 {
	if h.total == 0 {
		return 0
	}
	return h.sum / float64(h.total)
}

// Min returns the minimum sample
func (h *Histogram) Min() uint64 {
	return h.min
}

// Max returns the maximum sample
func (h *Histogram) Max() uint64 {
	return h.max
}

// Count returns the number of samples
func (h *Histogram) Count() uint64 {
	return h.total
}

// Reset clears all samples
func (h *Histogram) Reset() {
	clear(h.counts)
	h.keys = h.keys[:0]
	h.total, h.sum, h.min, h.max = 0, 0, 0, 0
	h.dirty = false
}

// HistogramSnapshot holds summary statistics of a histogram
type HistogramSnapshot struct {
	Count uint64
	Min   uint64
	Max   uint64
	Mean  float64
	P50   float64 // Median
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Min:   h.Min(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}
}
