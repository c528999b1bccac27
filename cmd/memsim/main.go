// Command memsim replays a memory trace against a fixed number of frames
// and reports the disk traffic of a page-replacement policy.
//
//	memsim [flags] <tracefile> <nframes> <rdm|lru|fifo|clock> <debug|quiet>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sibexico/memsim/trace"
	"github.com/sibexico/memsim/vmem"
)

const (
	exitOK    = 0
	exitRun   = 1 // the run failed part way; partial totals were printed
	exitUsage = 2 // bad arguments, configuration, or missing trace
)

const usageLine = "Format: memsim [flags] <tracefile> <nframes> <rdm|lru|fifo|clock> <debug|quiet>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	tracePath string
	cfg       *vmem.Config
	compare   bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("memsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "JSON config file (frames, policy, seed, log_level)")
	seed := fs.Uint64("seed", 0, "seed for the rdm policy (0 derives one from the clock)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	compare := fs.Bool("compare", false, "run every policy concurrently and print one summary each")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 4 {
		fs.Usage()
		return nil, vmem.NewSimError(vmem.ErrCodeConfiguration, "memsim", "expected 4 arguments", nil)
	}

	cfg := vmem.DefaultConfig()
	if *configPath != "" {
		loaded, err := vmem.LoadConfigFromFile(*configPath)
		if err != nil {
			return nil, vmem.NewSimError(vmem.ErrCodeConfiguration, "memsim", "failed to load config", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	frames, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return nil, vmem.NewSimError(vmem.ErrCodeConfiguration, "memsim",
			fmt.Sprintf("invalid frame count %q", fs.Arg(1)), nil)
	}
	cfg.Frames = frames

	policy, err := vmem.ParsePolicy(fs.Arg(2))
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	switch fs.Arg(3) {
	case "debug":
		cfg.Debug = true
	case "quiet":
		cfg.Debug = false
	default:
		return nil, vmem.NewSimError(vmem.ErrCodeConfiguration, "memsim",
			fmt.Sprintf("invalid mode %q (must be debug or quiet)", fs.Arg(3)), nil)
	}

	if *compare && cfg.Debug {
		return nil, vmem.NewSimError(vmem.ErrCodeConfiguration, "memsim",
			"debug narration is not available with -compare", nil)
	}

	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &options{tracePath: fs.Arg(0), cfg: cfg, compare: *compare}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "memsim: %v\n", err)
		}
		return exitUsage
	}

	logger := newLogger(stderr, opts.cfg.LogLevel)
	logger.Debug("starting run",
		"trace", opts.tracePath,
		"frames", opts.cfg.Frames,
		"policy", opts.cfg.Policy,
		"seed", opts.cfg.Seed,
	)

	tf, err := trace.Open(opts.tracePath)
	if err != nil {
		fmt.Fprintf(stderr, "memsim: %v\n", err)
		return exitUsage
	}
	defer tf.Close()

	if opts.compare {
		accesses, err := trace.ReadAll(tf)
		if err != nil {
			fmt.Fprintf(stderr, "memsim: %v\n", err)
			return exitRun
		}
		results, err := vmem.ComparePolicies(ctx, accesses, *opts.cfg, logger)
		printComparison(stdout, results)
		if err != nil {
			fmt.Fprintf(stderr, "memsim: %v\n", err)
			return exitRun
		}
		return exitOK
	}

	simOpts := []vmem.Option{vmem.WithLogger(logger)}
	if opts.cfg.Debug {
		simOpts = append(simOpts, vmem.WithObserver(narrator{w: stdout}))
	}

	stats, err := vmem.Simulate(ctx, *opts.cfg, tf, simOpts...)
	printSummary(stdout, stats)
	if err != nil {
		fmt.Fprintf(stderr, "memsim: %v\n", err)
		if vmem.IsErrorCode(err, vmem.ErrCodeConfiguration) {
			return exitUsage
		}
		return exitRun
	}
	stats.LogStats(logger)
	return exitOK
}
