package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"seedloc-core/seed"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("seedloc")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParseMinimal(t *testing.T) {
	opt, err := parse(t, "-g", "idx.slx", "-l", "4", "-o", "out.tsv", "reads.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.SeqFile != "reads.txt" || opt.IndexFile != "idx.slx" || opt.SeedLen != 4 || opt.Output != "out.tsv" {
		t.Fatalf("unexpected options %+v", opt)
	}
	if opt.ParsedStrategy() != seed.Overlapping {
		t.Fatalf("default strategy must be overlapping, got %v", opt.ParsedStrategy())
	}
}

func TestParseStrategyAndStep(t *testing.T) {
	opt, err := parse(t, "-g", "i", "-l", "4", "-o", "o", "--strategy", "greedy", "s.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.ParsedStrategy() != seed.GreedyNonOverlapping {
		t.Fatalf("strategy: %v", opt.ParsedStrategy())
	}

	opt, err = parse(t, "-g", "i", "-l", "4", "-o", "o", "-d", "3", "s.txt")
	if err != nil || opt.Step != 3 {
		t.Fatalf("step parse: %+v, %v", opt, err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		argv []string
	}{
		{"no positional", []string{"-g", "i", "-l", "4", "-o", "o"}},
		{"two positionals", []string{"-g", "i", "-l", "4", "-o", "o", "a", "b"}},
		{"missing index", []string{"-l", "4", "-o", "o", "s"}},
		{"missing seed len", []string{"-g", "i", "-o", "o", "s"}},
		{"zero seed len", []string{"-g", "i", "-l", "0", "-o", "o", "s"}},
		{"missing output", []string{"-g", "i", "-l", "4", "s"}},
		{"bad strategy", []string{"-g", "i", "-l", "4", "-o", "o", "--strategy", "zigzag", "s"}},
		{"step with greedy", []string{"-g", "i", "-l", "4", "-o", "o", "--strategy", "greedy", "-d", "2", "s"}},
		{"unknown flag", []string{"--frobnicate", "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse(t, tc.argv...); err == nil {
				t.Fatalf("argv %v must fail", tc.argv)
			}
		})
	}
}

func TestParseHelpAndVersion(t *testing.T) {
	if _, err := parse(t, "-h"); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	opt, err := parse(t, "--version")
	if err != nil || !opt.Version {
		t.Fatalf("--version must short-circuit validation: %+v, %v", opt, err)
	}
}

func TestUsageMentionsFlags(t *testing.T) {
	fs := NewFlagSet("seedloc")
	var buf strings.Builder
	fs.SetOutput(&buf)
	if _, err := ParseArgs(fs, []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	fs.Usage()
	for _, want := range []string{"--index", "--seed-len", "--strategy", "--output"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("usage missing %s:\n%s", want, buf.String())
		}
	}
}
