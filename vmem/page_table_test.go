package vmem

import "testing"

func TestPageNumber(t *testing.T) {
	tests := []struct {
		addr uint64
		vpn  VPN
	}{
		{0x0, 0},
		{0xfff, 0},
		{0x1000, 1},
		{0x0041f7a0, 0x41f},
		{0xffffffff, 0xfffff},
	}
	for _, tt := range tests {
		if got := PageNumber(tt.addr); got != tt.vpn {
			t.Errorf("PageNumber(%#x) = %d, want %d", tt.addr, got, tt.vpn)
		}
	}
}

func TestPageTableUnknownPage(t *testing.T) {
	pt := NewPageTable()

	if pt.IsDirty(42) {
		t.Error("Unknown page should be clean")
	}
	if _, ok := pt.Lookup(42); ok {
		t.Error("Unknown page should not be found")
	}
	if pt.Size() != 0 {
		t.Errorf("Expected empty table, got %d entries", pt.Size())
	}
}

func TestPageTableEnsureValidIdempotent(t *testing.T) {
	pt := NewPageTable()

	pt.EnsureValid(7)
	pt.SetDirty(7, true)
	pt.EnsureValid(7)

	e, ok := pt.Lookup(7)
	if !ok || !e.Valid {
		t.Fatal("Expected page 7 to be valid")
	}
	if !e.Dirty {
		t.Error("EnsureValid should not reset other bits")
	}
	if pt.Size() != 1 {
		t.Errorf("Expected 1 entry, got %d", pt.Size())
	}
}

func TestPageTablePresent(t *testing.T) {
	pt := NewPageTable()

	pt.SetPresent(3, true)
	pt.SetPresent(3, true)
	pt.SetPresent(4, true)

	e, _ := pt.Lookup(3)
	if !e.Present || !e.Valid {
		t.Errorf("Present page must be valid: %+v", e)
	}
	if pt.ResidentCount() != 2 {
		t.Errorf("Expected 2 resident pages, got %d", pt.ResidentCount())
	}

	pt.SetPresent(3, false)
	e, _ = pt.Lookup(3)
	if e.Present {
		t.Error("Expected page 3 not present")
	}
	if !e.Valid {
		t.Error("Evicted page stays valid")
	}
	if pt.ResidentCount() != 1 {
		t.Errorf("Expected 1 resident page, got %d", pt.ResidentCount())
	}
}
