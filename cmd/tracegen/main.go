// Command tracegen writes synthetic memory traces for memsim.
//
// Patterns:
//
//	seq     touch pages 0..pages-1 in order, wrapping around
//	loop    like seq, but each page is touched several times per visit
//	random  uniform accesses over the working set
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sibexico/memsim/trace"
	"github.com/sibexico/memsim/vmem"
)

type genConfig struct {
	pattern    string
	n          int
	pages      int
	writeRatio float64
	seed       uint64
	base       uint64
}

const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	fs := flag.NewFlagSet("tracegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg genConfig
	fs.StringVar(&cfg.pattern, "pattern", "random", "access pattern: seq, loop, or random")
	fs.IntVar(&cfg.n, "n", 10000, "number of records")
	fs.IntVar(&cfg.pages, "pages", 64, "working-set size in pages")
	fs.Float64Var(&cfg.writeRatio, "write-ratio", 0.25, "fraction of accesses that are writes")
	fs.Uint64Var(&cfg.seed, "seed", 1, "random seed")
	fs.Uint64Var(&cfg.base, "base", 0x00400000, "address of page 0")
	codecName := fs.String("codec", "none", "compression: none, snappy, or lz4")
	out := fs.String("o", "", "output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	codec, err := trace.ParseCodec(*codecName)
	if err != nil {
		fmt.Fprintf(stderr, "tracegen: %v\n", err)
		return exitUsage
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(stderr, "tracegen: %v\n", err)
			return exitRun
		}
		defer func() {
			if err := f.Close(); err != nil && code == exitOK {
				fmt.Fprintf(stderr, "tracegen: %v\n", err)
				code = exitRun
			}
		}()
		w = f
	}

	if err := generate(w, codec, cfg); err != nil {
		fmt.Fprintf(stderr, "tracegen: %v\n", err)
		return exitRun
	}
	return exitOK
}

func generate(w io.Writer, codec trace.Codec, cfg genConfig) error {
	if cfg.pages <= 0 {
		return fmt.Errorf("pages must be greater than 0")
	}
	if cfg.n < 0 {
		return fmt.Errorf("n must not be negative")
	}

	next, err := pattern(cfg)
	if err != nil {
		return err
	}

	tw, err := trace.NewWriter(w, codec)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed+1))
	for i := 0; i < cfg.n; i++ {
		page := next(i, rng)
		offset := rng.Uint64N(vmem.PageSize)
		kind := vmem.Read
		if rng.Float64() < cfg.writeRatio {
			kind = vmem.Write
		}
		a := vmem.Access{Address: cfg.base + uint64(page)*vmem.PageSize + offset, Kind: kind}
		if err := tw.Write(a); err != nil {
			return err
		}
	}
	return tw.Close()
}

func pattern(cfg genConfig) (func(i int, rng *rand.Rand) int, error) {
	switch cfg.pattern {
	case "seq":
		return func(i int, _ *rand.Rand) int { return i % cfg.pages }, nil
	case "loop":
		const repeat = 4
		return func(i int, _ *rand.Rand) int { return (i / repeat) % cfg.pages }, nil
	case "random":
		return func(_ int, rng *rand.Rand) int { return rng.IntN(cfg.pages) }, nil
	}
	return nil, fmt.Errorf("unknown pattern: %s (must be seq, loop, or random)", cfg.pattern)
}
