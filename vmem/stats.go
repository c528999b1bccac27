package vmem

import (
	"log/slog"
)

// Stats is the outcome of one simulation run.
// It is a plain value: each run owns its own and returns a copy.
type Stats struct {
	Policy    Policy
	Frames    uint32
	Events    uint64
	Reads     uint64 // disk reads, one per miss
	Writes    uint64 // disk writes, one per dirty eviction
	Hits      uint64
	Evictions uint64

	// Residency is the distribution of how many events an evicted page
	// stayed resident before it was chosen as a victim
	Residency HistogramSnapshot
}

// Misses returns Events - Hits
func (s Stats) Misses() uint64 {
	return s.Events - s.Hits
}

// HitRatio returns Hits / Events, or 0 when no events were replayed
func (s Stats) HitRatio() float64 {
	if s.Events == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(s.Events)
}

// HitPercentage returns HitRatio scaled to 0-100
func (s Stats) HitPercentage() float64 {
	return s.HitRatio() * 100.0
}

// LogStats logs the run summary using structured logging
func (s Stats) LogStats(logger *slog.Logger) {
	logger.Info("Simulation Stats",
		slog.String("policy", string(s.Policy)),
		slog.Uint64("frames", uint64(s.Frames)),
		slog.Group("events",
			slog.Uint64("total", s.Events),
			slog.Uint64("hits", s.Hits),
			slog.Uint64("misses", s.Misses()),
			slog.Float64("hit_ratio", s.HitRatio()),
		),
		slog.Group("disk",
			slog.Uint64("reads", s.Reads),
			slog.Uint64("writes", s.Writes),
			slog.Uint64("evictions", s.Evictions),
		),
		slog.Group("residency",
			slog.Uint64("count", s.Residency.Count),
			slog.Float64("mean", s.Residency.Mean),
			slog.Float64("p50", s.Residency.P50),
			slog.Float64("p95", s.Residency.P95),
			slog.Float64("p99", s.Residency.P99),
		),
	)
}
