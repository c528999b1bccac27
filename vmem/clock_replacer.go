package vmem

// ClockReplacer implements second-chance (CLOCK) replacement.
// Each frame carries a reference bit set on hit and install. The hand
// sweeps the frames, clearing set bits, and evicts the first frame whose
// bit is already clear.
type ClockReplacer struct {
	capacity   uint32
	referenced []bool
	hand       uint32
}

// NewClockReplacer creates a new CLOCK replacer
func NewClockReplacer(capacity uint32) *ClockReplacer {
	return &ClockReplacer{
		capacity:   capacity,
		referenced: make([]bool, capacity),
	}
}

// RecordAccess sets the reference bit
func (c *ClockReplacer) RecordAccess(frameID uint32) {
	if frameID < c.capacity {
		c.referenced[frameID] = true
	}
}

// RecordInstall sets the reference bit of the new page
func (c *ClockReplacer) RecordInstall(frameID uint32) {
	c.RecordAccess(frameID)
}

// Victim sweeps at most two full turns; the second turn always finds a clear bit
func (c *ClockReplacer) Victim() (uint32, bool) {
	if c.capacity == 0 {
		return 0, false
	}
	for i := uint32(0); i < 2*c.capacity; i++ {
		frameID := c.hand
		c.hand = (c.hand + 1) % c.capacity
		if c.referenced[frameID] {
			c.referenced[frameID] = false
			continue
		}
		return frameID, true
	}
	return 0, false
}

// Policy returns PolicyClock
func (c *ClockReplacer) Policy() Policy {
	return PolicyClock
}
