package vmem

// LRUReplacer implements LRU (Least Recently Used) replacement policy.
// Every hit and install stamps the frame with a logical clock; the victim
// is the frame with the smallest stamp.
type LRUReplacer struct {
	capacity uint32
	lastUsed []uint64
	stamped  []bool
	clock    uint64
}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer(capacity uint32) *LRUReplacer {
	return &LRUReplacer{
		capacity: capacity,
		lastUsed: make([]uint64, capacity),
		stamped:  make([]bool, capacity),
	}
}

func (lru *LRUReplacer) touch(frameID uint32) {
	if frameID >= lru.capacity {
		return
	}
	lru.lastUsed[frameID] = lru.clock
	lru.stamped[frameID] = true
	lru.clock++
}

// RecordAccess moves frameID to most recently used
func (lru *LRUReplacer) RecordAccess(frameID uint32) {
	lru.touch(frameID)
}

// RecordInstall stamps a freshly installed frame
func (lru *LRUReplacer) RecordInstall(frameID uint32) {
	lru.touch(frameID)
}

// Victim returns the least recently used frame.
// Ties go to the lowest frame index.
func (lru *LRUReplacer) Victim() (uint32, bool) {
	var (
		victim uint32
		oldest uint64
		found  bool
	)
	for i := uint32(0); i < lru.capacity; i++ {
		if !lru.stamped[i] {
			continue
		}
		if !found || lru.lastUsed[i] < oldest {
			victim = i
			oldest = lru.lastUsed[i]
			found = true
		}
	}
	return victim, found
}

// LastUsed returns the stamp of frameID
func (lru *LRUReplacer) LastUsed(frameID uint32) (uint64, bool) {
	if frameID >= lru.capacity || !lru.stamped[frameID] {
		return 0, false
	}
	return lru.lastUsed[frameID], true
}

// Policy returns PolicyLRU
func (lru *LRUReplacer) Policy() Policy {
	return PolicyLRU
}
