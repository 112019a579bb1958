// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"seedloc-core/index"
	"seedloc/internal/cli"
	"seedloc/internal/logutil"
	"seedloc/internal/monitor"
	"seedloc/internal/pipeline"
	"seedloc/internal/version"
	"seedloc/internal/writers"
)

// RunContext wires CLI options into one pipeline run. Exit codes: 0 success,
// 2 usage error, 3 runtime failure, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("seedloc")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "seedloc version %s\n", version.Version)
		return 0
	}

	log := logutil.New(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	out, closeOut, err := openOutput(opts.Output, stdout)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	timers := monitor.NewTimers()
	counters := &monitor.Counters{}
	orch := pipeline.New(pipeline.Config{
		SeqFile:   opts.SeqFile,
		IndexFile: opts.IndexFile,
		SeedLen:   opts.SeedLen,
		Strategy:  opts.ParsedStrategy(),
		Step:      opts.Step,
		SortDedup: opts.Sort,
	}, log, timers, counters)

	in, writeErr := writers.StartOccurrenceWriter(out, 256)

	// SIGUSR1 requests a progress line at any time, most usefully during the
	// long locate phase. The listener only reads shared state.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGUSR1)
	defer signal.Stop(sig)

	g, gctx := errgroup.WithContext(parent)
	finished := make(chan struct{})
	g.Go(func() error {
		for {
			select {
			case <-sig:
				log.Infof("%s", monitor.StatusLine(counters.Snapshot(), timers.Elapsed("locate")))
			case <-finished:
				return nil
			}
		}
	})
	g.Go(func() error {
		defer close(finished)
		return orch.Run(gctx, func(occ index.Occurrence) error {
			select {
			case in <- occ:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	perr := g.Wait()

	close(in)
	werr := <-writeErr
	cerr := closeOut()

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		log.Errorf("%v", perr)
		return 3
	}
	if writers.IsBrokenPipe(werr) {
		return 0
	}
	if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if cerr != nil {
		_, _ = fmt.Fprintln(stderr, cerr)
		return 3
	}
	return 0
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %q: %w", path, err)
	}
	return fh, fh.Close, nil
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
