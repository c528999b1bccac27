package vmem

// PageSize is the fixed page size in bytes
const PageSize = 4096

// VPN is a virtual page number (address / PageSize)
type VPN uint64

// PageNumber translates an address to its virtual page number
func PageNumber(address uint64) VPN {
	return VPN(address / PageSize)
}

// PageTableEntry holds the state bits of one virtual page
type PageTableEntry struct {
	Valid   bool // referenced at least once
	Present bool // resident in some frame
	Dirty   bool // written since it was last brought in
}

// PageTable is a sparse page table keyed by VPN.
// Entries are created on first touch and never removed during a run.
type PageTable struct {
	entries  map[VPN]*PageTableEntry
	resident int
}

// NewPageTable creates an empty page table
func NewPageTable() *PageTable {
	return &PageTable{
		entries: make(map[VPN]*PageTableEntry),
	}
}

func (pt *PageTable) entry(vpn VPN) *PageTableEntry {
	e, ok := pt.entries[vpn]
	if !ok {
		e = &PageTableEntry{}
		pt.entries[vpn] = e
	}
	return e
}

// EnsureValid marks vpn valid. Idempotent.
func (pt *PageTable) EnsureValid(vpn VPN) {
	pt.entry(vpn).Valid = true
}

// SetPresent sets the present bit. Present implies valid.
func (pt *PageTable) SetPresent(vpn VPN, present bool) {
	e := pt.entry(vpn)
	if e.Present == present {
		return
	}
	e.Present = present
	if present {
		e.Valid = true
		pt.resident++
	} else {
		pt.resident--
	}
}

// SetDirty sets the dirty bit
func (pt *PageTable) SetDirty(vpn VPN, dirty bool) {
	pt.entry(vpn).Dirty = dirty
}

// IsDirty returns the dirty bit; unknown pages are clean
func (pt *PageTable) IsDirty(vpn VPN) bool {
	if e, ok := pt.entries[vpn]; ok {
		return e.Dirty
	}
	return false
}

// Lookup returns a copy of the entry for vpn and whether it was ever touched
func (pt *PageTable) Lookup(vpn VPN) (PageTableEntry, bool) {
	if e, ok := pt.entries[vpn]; ok {
		return *e, true
	}
	return PageTableEntry{}, false
}

// Size returns the number of touched pages
func (pt *PageTable) Size() int {
	return len(pt.entries)
}

// ResidentCount returns the number of pages with the present bit set
func (pt *PageTable) ResidentCount() int {
	return pt.resident
}
