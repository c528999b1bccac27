// Package vmem simulates demand paging over a fixed number of physical
// frames and counts what each page-replacement policy costs.
//
// A Simulator owns a sparse PageTable, a FrameTable and a Replacer.
// Every access goes through the same protocol:
//
//   - hit: the replacer is told about the access; a write marks the frame dirty
//   - miss with a free frame: the page is installed (one disk read)
//   - miss with every frame full: the replacer picks a victim, a dirty victim
//     costs one disk write, then the page is installed (one disk read)
//
// Replacers differ only in how they pick victims: RandomReplacer (rdm),
// FIFOReplacer (fifo), LRUReplacer (lru) and ClockReplacer (clock).
//
// Runs are independent. Stats are returned by value, and RunMany replays
// one trace under several configurations on separate goroutines.
package vmem
