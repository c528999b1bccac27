package vmem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Simulator replays a trace against a fixed set of frames.
// A Simulator owns all of its state; distinct simulators share nothing
// and may run on different goroutines. A single Simulator is not safe
// for concurrent use.
type Simulator struct {
	policy    Policy
	pageTable *PageTable
	frames    *FrameTable
	replacer  Replacer
	stats     Stats

	installedAt []uint64 // event sequence at which each frame was last filled
	residency   *Histogram

	rng      RandomSource
	logger   *slog.Logger
	observer Observer
}

// Option configures a Simulator
type Option func(*Simulator)

// WithRandomSource injects the random source used by the rdm policy,
// overriding the one derived from Config.Seed
func WithRandomSource(rng RandomSource) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithObserver attaches a per-event observer (debug narration)
func WithObserver(o Observer) Option {
	return func(s *Simulator) {
		s.observer = o
	}
}

// NewSimulator creates a simulator for cfg.
// Returns a configuration error if the frame count or policy is invalid.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	if cfg.Frames <= 0 || cfg.Frames > MaxFrames {
		return nil, ErrInvalidFrames("NewSimulator", cfg.Frames)
	}
	policy, err := ParsePolicy(string(cfg.Policy))
	if err != nil {
		return nil, err
	}

	capacity := uint32(cfg.Frames)
	s := &Simulator{
		policy:      policy,
		pageTable:   NewPageTable(),
		frames:      NewFrameTable(capacity),
		installedAt: make([]uint64, capacity),
		residency:   NewHistogram(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSeededSource(cfg.Seed)
	}

	s.replacer, err = NewReplacer(policy, capacity, s.rng)
	if err != nil {
		return nil, err
	}

	s.stats = Stats{Policy: policy, Frames: capacity}
	return s, nil
}

// PageTable exposes the page table for inspection
func (s *Simulator) PageTable() *PageTable {
	return s.pageTable
}

// Frames exposes the frame table for inspection
func (s *Simulator) Frames() *FrameTable {
	return s.frames
}

// Stats returns the counts so far
func (s *Simulator) Stats() Stats {
	out := s.stats
	out.Residency = s.residency.Snapshot()
	return out
}

// Access services one memory access and updates the counters.
// Errors are only returned for broken engine invariants.
func (s *Simulator) Access(a Access) (Event, error) {
	vpn := PageNumber(a.Address)
	seq := s.stats.Events + 1
	write := a.Kind == Write

	ev := Event{Seq: seq, Access: a, VPN: vpn}

	s.pageTable.EnsureValid(vpn)

	if idx, ok := s.frames.Find(vpn); ok {
		// Hit
		s.replacer.RecordAccess(idx)
		if write {
			s.frames.MarkDirty(idx)
			s.pageTable.SetDirty(vpn, true)
		}
		s.stats.Hits++
		ev.Outcome = OutcomeHit
		ev.Frame = idx
		return s.finish(ev), nil
	}

	idx, ok := s.frames.FirstFree()
	if ok {
		ev.Outcome = OutcomeMissFree
	} else {
		victim, err := s.evict()
		if err != nil {
			return ev, err
		}
		idx = victim.frame
		ev.Outcome = OutcomeMissEvict
		ev.Evicted = &Eviction{VPN: victim.slot.VPN, Dirty: victim.slot.Dirty}
	}

	if err := s.frames.Install(idx, vpn, write); err != nil {
		return ev, err
	}
	s.replacer.RecordInstall(idx)
	s.installedAt[idx] = seq
	s.pageTable.SetPresent(vpn, true)
	s.pageTable.SetDirty(vpn, write)
	s.stats.Reads++

	ev.Frame = idx
	return s.finish(ev), nil
}

type victim struct {
	frame uint32
	slot  FrameSlot
}

// evict asks the replacer for a victim, writes it back if dirty and
// frees its frame
func (s *Simulator) evict() (victim, error) {
	if !s.frames.IsFull() {
		return victim{}, ErrPrecondition("Simulator.evict", "victim requested while a free frame exists")
	}

	frameID, ok := s.replacer.Victim()
	if !ok {
		return victim{}, ErrPrecondition("Simulator.evict",
			fmt.Sprintf("%s replacer returned no victim with %d frames occupied", s.policy, s.frames.Occupied()))
	}
	if _, occupied := s.frames.Occupant(frameID); !occupied {
		return victim{}, ErrPrecondition("Simulator.evict",
			fmt.Sprintf("%s replacer chose empty frame %d", s.policy, frameID))
	}

	slot, err := s.frames.Evict(frameID)
	if err != nil {
		return victim{}, err
	}

	if slot.Dirty {
		s.stats.Writes++
	}
	s.pageTable.SetPresent(slot.VPN, false)
	s.pageTable.SetDirty(slot.VPN, false)
	s.stats.Evictions++
	s.residency.Record(s.stats.Events + 1 - s.installedAt[frameID])

	s.logger.Debug("evicted page",
		slog.String("policy", string(s.policy)),
		slog.Uint64("frame", uint64(frameID)),
		slog.Uint64("vpn", uint64(slot.VPN)),
		slog.Bool("dirty", slot.Dirty),
	)

	return victim{frame: frameID, slot: slot}, nil
}

func (s *Simulator) finish(ev Event) Event {
	s.stats.Events++
	if s.observer != nil {
		ev.Frames = s.frames.Snapshot()
		s.observer.ObserveEvent(ev)
	}
	return ev
}

// Run replays src until io.EOF, ctx is done, or an error occurs.
// The returned Stats always hold the counts of the events fully
// serviced so far, including when an error is returned.
func (s *Simulator) Run(ctx context.Context, src Source) (Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.Stats(), err
		}

		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s.Stats(), fmt.Errorf("trace record %d: %w", s.stats.Events+1, err)
		}

		if _, err := s.Access(a); err != nil {
			return s.Stats(), err
		}
	}

	stats := s.Stats()
	s.logger.Info("simulation complete",
		slog.String("policy", string(stats.Policy)),
		slog.Uint64("frames", uint64(stats.Frames)),
		slog.Uint64("events", stats.Events),
	)
	return stats, nil
}

// Simulate is a convenience wrapper: build a simulator for cfg and run src
func Simulate(ctx context.Context, cfg Config, src Source, opts ...Option) (Stats, error) {
	sim, err := NewSimulator(cfg, opts...)
	if err != nil {
		return Stats{}, err
	}
	return sim.Run(ctx, src)
}
