package vmem

import (
	"slices"
	"testing"
)

func TestFrameTableFill(t *testing.T) {
	ft := NewFrameTable(3)

	if ft.Capacity() != 3 {
		t.Fatalf("Expected capacity 3, got %d", ft.Capacity())
	}

	for i, vpn := range []VPN{10, 20, 30} {
		idx, ok := ft.FirstFree()
		if !ok {
			t.Fatalf("Expected free frame for page %d", vpn)
		}
		if idx != uint32(i) {
			t.Errorf("Expected frames to fill in order, got %d for step %d", idx, i)
		}
		if err := ft.Install(idx, vpn, false); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
	}

	if !ft.IsFull() {
		t.Error("Expected table to be full")
	}
	if _, ok := ft.FirstFree(); ok {
		t.Error("Full table should have no free frame")
	}

	idx, ok := ft.Find(20)
	if !ok || idx != 1 {
		t.Errorf("Expected page 20 in frame 1, got %d, %v", idx, ok)
	}
	if _, ok := ft.Find(99); ok {
		t.Error("Page 99 should not be resident")
	}

	if got := ft.Snapshot(); !slices.Equal(got, []int64{10, 20, 30}) {
		t.Errorf("Unexpected snapshot %v", got)
	}
}

func TestFrameTableEvictAndReinstall(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Install(0, 1, false)
	ft.Install(1, 2, false)
	ft.MarkDirty(1)

	slot, err := ft.Evict(1)
	if err != nil {
		t.Fatalf("Evict failed: %v", err)
	}
	if slot.VPN != 2 || !slot.Dirty {
		t.Errorf("Unexpected evicted slot %+v", slot)
	}
	if _, ok := ft.Find(2); ok {
		t.Error("Evicted page should not be found")
	}
	if ft.Occupied() != 1 {
		t.Errorf("Expected 1 occupied frame, got %d", ft.Occupied())
	}

	if err := ft.Install(1, 3, false); err != nil {
		t.Fatalf("Install into freed frame failed: %v", err)
	}
	if got := ft.Snapshot(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("Unexpected snapshot %v", got)
	}
}

func TestFrameTablePreconditions(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Install(0, 5, false)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"install over occupant", func() error { return ft.Install(0, 6, false) }},
		{"install duplicate page", func() error { return ft.Install(1, 5, false) }},
		{"install out of range", func() error { return ft.Install(2, 6, false) }},
		{"evict empty frame", func() error { _, err := ft.Evict(1); return err }},
		{"evict out of range", func() error { _, err := ft.Evict(9); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if !IsErrorCode(err, ErrCodePolicyPrecondition) {
				t.Errorf("Expected policy precondition error, got %v", err)
			}
		})
	}

	if ft.Occupied() != 1 {
		t.Errorf("Failed operations must not change occupancy, got %d", ft.Occupied())
	}
}

func TestFrameTableSnapshotEmpty(t *testing.T) {
	ft := NewFrameTable(2)
	if got := ft.Snapshot(); !slices.Equal(got, []int64{-1, -1}) {
		t.Errorf("Expected empty frames as -1, got %v", got)
	}
	if _, ok := ft.Occupant(0); ok {
		t.Error("Empty frame should report unoccupied")
	}
}
