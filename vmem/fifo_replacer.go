package vmem

// FIFOReplacer evicts frames in arrival order.
// Frames fill from index 0 upward, so a single circular head pointer
// starting at 0 tracks the oldest resident page. Hits do not affect it.
type FIFOReplacer struct {
	capacity uint32
	head     uint32
}

// NewFIFOReplacer creates a new FIFO replacer
func NewFIFOReplacer(capacity uint32) *FIFOReplacer {
	return &FIFOReplacer{capacity: capacity}
}

// RecordAccess is a no-op for FIFO
func (f *FIFOReplacer) RecordAccess(frameID uint32) {}

// RecordInstall is a no-op for FIFO; arrival order is implied by the head
func (f *FIFOReplacer) RecordInstall(frameID uint32) {}

// Victim returns the oldest frame and advances the head
func (f *FIFOReplacer) Victim() (uint32, bool) {
	if f.capacity == 0 {
		return 0, false
	}
	victim := f.head
	f.head = (f.head + 1) % f.capacity
	return victim, true
}

// Head returns the frame that will be evicted next
func (f *FIFOReplacer) Head() uint32 {
	return f.head
}

// Policy returns PolicyFIFO
func (f *FIFOReplacer) Policy() Policy {
	return PolicyFIFO
}
