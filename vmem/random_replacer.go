package vmem

import (
	"math/rand/v2"
)

// RandomReplacer picks victims uniformly at random and ignores history
type RandomReplacer struct {
	capacity uint32
	rng      RandomSource
}

// NewRandomReplacer creates a random replacer drawing from rng
func NewRandomReplacer(capacity uint32, rng RandomSource) *RandomReplacer {
	return &RandomReplacer{
		capacity: capacity,
		rng:      rng,
	}
}

// NewSeededSource returns a reproducible random source for seed
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (r *RandomReplacer) RecordAccess(frameID uint32)  {}
func (r *RandomReplacer) RecordInstall(frameID uint32) {}

// Victim returns a frame index in [0, capacity)
func (r *RandomReplacer) Victim() (uint32, bool) {
	if r.capacity == 0 {
		return 0, false
	}
	return uint32(r.rng.IntN(int(r.capacity))), true
}

// Policy returns PolicyRandom
func (r *RandomReplacer) Policy() Policy {
	return PolicyRandom
}
