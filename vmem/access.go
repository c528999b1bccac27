package vmem

import "io"

// AccessKind is the kind of a memory access
type AccessKind uint8

const (
	Read AccessKind = iota
	Write
)

// String returns "R" or "W"
func (k AccessKind) String() string {
	if k == Write {
		return "W"
	}
	return "R"
}

// Access is one trace record
type Access struct {
	Address uint64
	Kind    AccessKind
}

// Source yields trace records one at a time.
// Next returns io.EOF when the trace is exhausted.
type Source interface {
	Next() (Access, error)
}

// SliceSource replays an in-memory trace
type SliceSource struct {
	accesses []Access
	pos      int
}

// NewSliceSource creates a source over accesses. The slice is not copied
// and must not be modified while the source is in use.
func NewSliceSource(accesses []Access) *SliceSource {
	return &SliceSource{accesses: accesses}
}

// Next returns the next access or io.EOF
func (s *SliceSource) Next() (Access, error) {
	if s.pos >= len(s.accesses) {
		return Access{}, io.EOF
	}
	a := s.accesses[s.pos]
	s.pos++
	return a, nil
}

// Outcome is the branch of the replacement protocol an access took
type Outcome uint8

const (
	OutcomeHit       Outcome = iota // page already resident
	OutcomeMissFree                 // installed into an empty frame
	OutcomeMissEvict                // installed after evicting a victim
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMissFree:
		return "miss"
	case OutcomeMissEvict:
		return "evict"
	default:
		return "unknown"
	}
}

// Eviction describes the page removed to make room
type Eviction struct {
	VPN   VPN
	Dirty bool // a dirty victim cost one disk write
}

// Event narrates one serviced access
type Event struct {
	Seq     uint64 // 1-based position in the trace
	Access  Access
	VPN     VPN
	Outcome Outcome
	Frame   uint32
	Evicted *Eviction
	Frames  []int64 // frame contents after the access, only when an observer is attached
}

// Observer receives an Event after every access
type Observer interface {
	ObserveEvent(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

func (f ObserverFunc) ObserveEvent(e Event) { f(e) }
