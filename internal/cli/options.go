// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"seedloc-core/seed"
	"seedloc/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	SeqFile   string // positional
	IndexFile string

	SeedLen  int
	Strategy string
	Step     int // 0 = derived from --strategy

	Output string // "-" = stdout
	Sort   bool

	Quiet   bool
	Version bool
}

// ParsedStrategy resolves the --strategy spelling; call after Validate.
func (o *Options) ParsedStrategy() seed.Strategy {
	s, _ := seed.ParseStrategy(o.Strategy)
	return s
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: locate fixed-length seeds in a precomputed graph index

Version: %s

Usage:
  %s [OPTIONS] -g INDEX_FILE -l INT -o OUTPUT SEQ_FILE

SEQ_FILE holds one sequence per line ('-' = stdin, .gz accepted). Output is
one occurrence per line: node<TAB>offset. Send SIGUSR1 for a progress line
while locating.

Flags:
%s`, name, version.Version, name, fs.FlagUsages())
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVarP(&opt.IndexFile, "index", "g", "", "index file [*]")
	fs.IntVarP(&opt.SeedLen, "seed-len", "l", 0, "seed length [*]")
	fs.StringVar(&opt.Strategy, "strategy", "overlapping", "seeding strategy: overlapping | non-overlapping | greedy [overlapping]")
	fs.IntVarP(&opt.Step, "step", "d", 0, "distance between seed start offsets (0 = by strategy) [0]")
	fs.StringVarP(&opt.Output, "output", "o", "", "occurrence output file, '-' for stdout [*]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort and deduplicate located occurrences [false]")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "suppress phase diagnostics [false]")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit [false]")
	fs.BoolVarP(&help, "help", "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	switch pos := fs.Args(); len(pos) {
	case 0:
		return opt, errors.New("a sequence file argument is required")
	case 1:
		opt.SeqFile = pos[0]
	default:
		return opt, fmt.Errorf("expected one sequence file, got %d arguments", len(pos))
	}

	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	if o.IndexFile == "" {
		return errors.New("--index is required")
	}
	if o.SeedLen < 1 {
		return errors.New("--seed-len must be >= 1")
	}
	if o.Output == "" {
		return errors.New("--output is required")
	}
	if _, err := seed.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if o.Step < 0 {
		return errors.New("--step must be >= 0")
	}
	if o.Step > 0 && o.Strategy == "greedy" {
		return errors.New("--step conflicts with --strategy greedy")
	}
	return nil
}
