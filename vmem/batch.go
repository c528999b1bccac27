package vmem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Result pairs a run configuration with its outcome
type Result struct {
	Config Config
	Stats  Stats
	Err    error
}

// RunMany replays the same in-memory trace under every config concurrently.
// Each run gets its own Simulator and random source; results come back in
// config order. The returned error is the failure of the first config (in
// order) that failed; every Result still carries its own Stats and Err.
func RunMany(ctx context.Context, accesses []Access, cfgs []Config, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]Result, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(i int, cfg Config) {
			defer wg.Done()

			stats, err := Simulate(ctx, cfg, NewSliceSource(accesses), WithLogger(logger))
			if err != nil {
				err = fmt.Errorf("%s with %d frames: %w", cfg.Policy, cfg.Frames, err)
			}
			results[i] = Result{Config: cfg, Stats: stats, Err: err}
		}(i, cfg)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}

// ComparePolicies runs every supported policy with the same frame count and seed
func ComparePolicies(ctx context.Context, accesses []Access, base Config, logger *slog.Logger) ([]Result, error) {
	cfgs := make([]Config, 0, len(Policies))
	for _, p := range Policies {
		cfg := *base.Clone()
		cfg.Policy = p
		cfgs = append(cfgs, cfg)
	}
	return RunMany(ctx, accesses, cfgs, logger)
}
