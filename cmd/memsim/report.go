package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sibexico/memsim/vmem"
)

// printSummary renders the end-of-run totals
func printSummary(w io.Writer, s vmem.Stats) {
	fmt.Fprintf(w, "Total memory frames: %d\n", s.Frames)
	fmt.Fprintf(w, "Events in trace: %d\n", s.Events)
	fmt.Fprintf(w, "Total disk reads: %d\n", s.Reads)
	fmt.Fprintf(w, "Total disk writes: %d\n", s.Writes)
	fmt.Fprintf(w, "Hits: %d\n", s.Hits)
	fmt.Fprintf(w, "Hits percentage: %f%%\n", s.HitPercentage())
}

// printComparison renders one summary per policy
func printComparison(w io.Writer, results []vmem.Result) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Policy: %s\n", r.Config.Policy)
		printSummary(w, r.Stats)
		if r.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", r.Err)
		}
	}
}

// narrator prints the per-event debug trace
type narrator struct {
	w io.Writer
}

func (n narrator) ObserveEvent(e vmem.Event) {
	switch e.Outcome {
	case vmem.OutcomeHit:
		fmt.Fprintln(n.w, "Found in memory.")
	case vmem.OutcomeMissFree:
		if e.Frame == 0 {
			fmt.Fprintln(n.w, "Put in first memory slot.")
		} else {
			fmt.Fprintf(n.w, "Slot %d in array is filled.\n", e.Frame)
		}
		fmt.Fprintln(n.w, "Read from disk.")
	case vmem.OutcomeMissEvict:
		fmt.Fprintln(n.w, "Memory is full.")
		if e.Evicted != nil && e.Evicted.Dirty {
			fmt.Fprintln(n.w, "Write to disk.")
		}
		fmt.Fprintln(n.w, "Read from disk.")
	}

	var b strings.Builder
	b.WriteString("Memory: ")
	for _, vpn := range e.Frames {
		fmt.Fprintf(&b, "%d  ", vpn)
	}
	fmt.Fprintln(n.w, b.String())
}
