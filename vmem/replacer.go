package vmem

import "strings"

// Policy names a victim-selection strategy
type Policy string

const (
	PolicyRandom Policy = "rdm"
	PolicyLRU    Policy = "lru"
	PolicyFIFO   Policy = "fifo"
	PolicyClock  Policy = "clock"
)

// Policies lists every supported policy in a stable order
var Policies = []Policy{PolicyRandom, PolicyLRU, PolicyFIFO, PolicyClock}

// ParsePolicy converts a command-line selector into a Policy
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case PolicyRandom, PolicyLRU, PolicyFIFO, PolicyClock:
		return p, nil
	}
	return "", ErrUnknownPolicy("ParsePolicy", name)
}

// Replacer interface for page replacement policies.
// The simulator owns the hit/miss protocol; a Replacer only keeps
// its own bookkeeping and picks victims.
type Replacer interface {
	// RecordAccess is called on every hit to frameID
	RecordAccess(frameID uint32)

	// RecordInstall is called after a page is installed into frameID,
	// both while filling and after an eviction
	RecordInstall(frameID uint32)

	// Victim selects a frame to evict. Only called when every frame is occupied.
	// Returns the frame ID and true if a victim was found, false otherwise
	Victim() (uint32, bool)

	// Policy returns the strategy this replacer implements
	Policy() Policy
}

// RandomSource is the randomness a RandomReplacer draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewReplacer creates a replacer based on the specified policy.
// rng is only used by PolicyRandom.
func NewReplacer(policy Policy, capacity uint32, rng RandomSource) (Replacer, error) {
	if capacity == 0 {
		return nil, ErrInvalidFrames("NewReplacer", 0)
	}
	switch policy {
	case PolicyRandom:
		if rng == nil {
			return nil, NewSimError(ErrCodeConfiguration, "NewReplacer", "random policy requires a random source", nil)
		}
		return NewRandomReplacer(capacity, rng), nil
	case PolicyLRU:
		return NewLRUReplacer(capacity), nil
	case PolicyFIFO:
		return NewFIFOReplacer(capacity), nil
	case PolicyClock:
		return NewClockReplacer(capacity), nil
	default:
		return nil, ErrUnknownPolicy("NewReplacer", string(policy))
	}
}
