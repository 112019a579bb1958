// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"seedloc-core/index"
	"seedloc-core/seed"
	"seedloc-core/seqio"
	"seedloc/internal/monitor"
)

// State tracks the orchestrator through its run. Failed absorbs any I/O or
// precondition failure; no stage is retried.
type State int

const (
	Idle State = iota
	IndexLoaded
	SequencesLoaded
	SeedsGenerated
	Searching
	LocatingOccurrences
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case IndexLoaded:
		return "index-loaded"
	case SequencesLoaded:
		return "sequences-loaded"
	case SeedsGenerated:
		return "seeds-generated"
	case Searching:
		return "searching"
	case LocatingOccurrences:
		return "locating"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config controls one locate run.
type Config struct {
	SeqFile   string
	IndexFile string
	SeedLen   int
	Strategy  seed.Strategy
	Step      int // >0 overrides the strategy's spacing
	SortDedup bool
}

// Loader opens and deserializes the searchable index. Tests substitute a
// stub; the default is index.LoadFile.
type Loader func(path string) (index.Searcher, error)

// Orchestrator drives sequences -> seeds -> ranges -> occurrences, bracketing
// each phase with a named timer and keeping the shared progress counters
// current for the signal listener.
type Orchestrator struct {
	cfg      Config
	log      *zap.SugaredLogger
	timers   *monitor.Timers
	counters *monitor.Counters
	load     Loader
	state    State
}

func New(cfg Config, log *zap.SugaredLogger, timers *monitor.Timers, counters *monitor.Counters) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		log:      log,
		timers:   timers,
		counters: counters,
		load: func(path string) (index.Searcher, error) {
			return index.LoadFile(path)
		},
		state: Idle,
	}
}

// SetLoader replaces the index loader (used by tests to inject a stub).
func (o *Orchestrator) SetLoader(l Loader) { o.load = l }

// State reports where the run is (Done or Failed after Run returns).
func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) fail(err error) error {
	o.state = Failed
	return err
}

// Run executes the whole pipeline, streaming each resolved occurrence to
// visit in resolution order. A seed with no match is skipped silently; any
// file/index failure aborts the run with no partial output expected
// downstream.
func (o *Orchestrator) Run(ctx context.Context, visit func(index.Occurrence) error) error {
	o.log.Infof("loading index from %s", o.cfg.IndexFile)
	idx, err := o.load(o.cfg.IndexFile)
	if err != nil {
		return o.fail(err)
	}
	o.state = IndexLoaded

	seqs, err := o.loadSequences()
	if err != nil {
		return o.fail(err)
	}
	o.state = SequencesLoaded

	seeds, err := o.generateSeeds(seqs)
	if err != nil {
		return o.fail(err)
	}
	o.state = SeedsGenerated
	o.counters.SetTotal(int64(len(seeds)))

	o.state = Searching
	ranges := o.findRanges(idx, seeds)

	o.state = LocatingOccurrences
	if err := o.locate(ctx, idx, ranges, visit); err != nil {
		return o.fail(err)
	}

	o.state = Done
	return nil
}

func (o *Orchestrator) loadSequences() ([]string, error) {
	defer o.timers.Phase("sequences")()
	o.log.Infof("loading sequences from %s", o.cfg.SeqFile)
	seqs, err := seqio.ReadFile(o.cfg.SeqFile)
	if err != nil {
		return nil, fmt.Errorf("read sequences %q: %w", o.cfg.SeqFile, err)
	}
	o.log.Infof("loaded %d sequences in %s", len(seqs), o.timers.Elapsed("sequences"))
	return seqs, nil
}

func (o *Orchestrator) generateSeeds(seqs []string) ([]string, error) {
	defer o.timers.Phase("patterns")()
	var (
		seeds []string
		err   error
	)
	if o.cfg.Step > 0 {
		seeds, err = seed.GenerateStep(seqs, o.cfg.SeedLen, o.cfg.Step)
	} else {
		seeds, err = seed.Generate(seqs, o.cfg.SeedLen, o.cfg.Strategy)
	}
	if err != nil {
		return nil, err
	}
	o.log.Infof("generated %d seeds in %s", len(seeds), o.timers.Elapsed("patterns"))
	return seeds, nil
}

// findRanges queries every seed in order and keeps the non-empty ranges. An
// empty range is a normal no-match outcome and never aborts the run.
func (o *Orchestrator) findRanges(idx index.Searcher, seeds []string) []index.SearchRange {
	defer o.timers.Phase("find")()
	var (
		ranges []index.SearchRange
		paths  int
	)
	for _, s := range seeds {
		r := idx.Find(s)
		if r.Empty() {
			continue
		}
		ranges = append(ranges, r)
		paths += idx.Count(r)
	}
	o.log.Infof("found %d seeds matching %d paths in %s", len(ranges), paths, o.timers.Elapsed("find"))
	return ranges
}

// locate resolves each retained range in order. This phase dominates runtime
// on large inputs and is the one the SIGUSR1 listener reports on, so the
// counters are bumped as each range completes.
func (o *Orchestrator) locate(ctx context.Context, idx index.Searcher, ranges []index.SearchRange, visit func(index.Occurrence) error) error {
	defer o.timers.Phase("locate")()
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		occs := idx.Locate(r, o.cfg.SortDedup)
		for _, occ := range occs {
			if err := visit(occ); err != nil {
				return err
			}
		}
		o.counters.IncDone()
		o.counters.AddOccurrences(int64(len(occs)))
	}
	s := o.counters.Snapshot()
	o.log.Infof("located %d occurrences in %s", s.Occurrences, o.timers.Elapsed("locate"))
	return nil
}
