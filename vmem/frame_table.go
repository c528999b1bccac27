package vmem

import "fmt"

// FrameSlot is one physical frame. An empty slot has Occupied == false.
type FrameSlot struct {
	Occupied bool
	VPN      VPN
	Dirty    bool
}

// FrameTable is the fixed set of physical frames.
// A reverse index keeps Find O(1) and guarantees one frame per resident VPN.
type FrameTable struct {
	slots    []FrameSlot
	index    map[VPN]uint32
	occupied uint32
}

// NewFrameTable allocates capacity empty frames
func NewFrameTable(capacity uint32) *FrameTable {
	return &FrameTable{
		slots: make([]FrameSlot, capacity),
		index: make(map[VPN]uint32, capacity),
	}
}

// Capacity returns the number of frames
func (ft *FrameTable) Capacity() uint32 {
	return uint32(len(ft.slots))
}

// Occupied returns the number of non-empty frames
func (ft *FrameTable) Occupied() uint32 {
	return ft.occupied
}

// IsFull reports whether every frame holds a page
func (ft *FrameTable) IsFull() bool {
	return ft.occupied == ft.Capacity()
}

// Find returns the frame holding vpn
func (ft *FrameTable) Find(vpn VPN) (uint32, bool) {
	idx, ok := ft.index[vpn]
	return idx, ok
}

// FirstFree returns the lowest empty frame index
func (ft *FrameTable) FirstFree() (uint32, bool) {
	if ft.IsFull() {
		return 0, false
	}
	for i := range ft.slots {
		if !ft.slots[i].Occupied {
			return uint32(i), true
		}
	}
	return 0, false
}

// Occupant returns the slot at idx and whether it is occupied
func (ft *FrameTable) Occupant(idx uint32) (FrameSlot, bool) {
	if idx >= ft.Capacity() {
		return FrameSlot{}, false
	}
	slot := ft.slots[idx]
	return slot, slot.Occupied
}

// Evict empties the frame at idx and returns its former occupant
func (ft *FrameTable) Evict(idx uint32) (FrameSlot, error) {
	if idx >= ft.Capacity() {
		return FrameSlot{}, ErrPrecondition("FrameTable.Evict", fmt.Sprintf("frame %d out of range", idx))
	}
	slot := ft.slots[idx]
	if !slot.Occupied {
		return FrameSlot{}, ErrPrecondition("FrameTable.Evict", fmt.Sprintf("frame %d is empty", idx))
	}
	delete(ft.index, slot.VPN)
	ft.slots[idx] = FrameSlot{}
	ft.occupied--
	return slot, nil
}

// Install places vpn into the empty frame idx.
// The caller must have evicted any previous occupant.
func (ft *FrameTable) Install(idx uint32, vpn VPN, dirty bool) error {
	if idx >= ft.Capacity() {
		return ErrPrecondition("FrameTable.Install", fmt.Sprintf("frame %d out of range", idx))
	}
	if ft.slots[idx].Occupied {
		return ErrPrecondition("FrameTable.Install",
			fmt.Sprintf("frame %d still holds page %d", idx, ft.slots[idx].VPN))
	}
	if other, ok := ft.index[vpn]; ok {
		return ErrPrecondition("FrameTable.Install",
			fmt.Sprintf("page %d already resident in frame %d", vpn, other))
	}

	ft.slots[idx] = FrameSlot{Occupied: true, VPN: vpn, Dirty: dirty}
	ft.index[vpn] = idx
	ft.occupied++
	return nil
}

// MarkDirty sets the dirty flag of an occupied frame
func (ft *FrameTable) MarkDirty(idx uint32) {
	if idx < ft.Capacity() && ft.slots[idx].Occupied {
		ft.slots[idx].Dirty = true
	}
}

// Snapshot returns the VPN held by each frame, -1 for empty frames
func (ft *FrameTable) Snapshot() []int64 {
	out := make([]int64, len(ft.slots))
	for i, slot := range ft.slots {
		if slot.Occupied {
			out[i] = int64(slot.VPN)
		} else {
			out[i] = -1
		}
	}
	return out
}
