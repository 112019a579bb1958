// internal/monitor/counters.go
package monitor

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Counters hold live pipeline progress. The orchestrator is the only writer;
// the signal-triggered progress listener reads concurrently, so every field
// is atomic and a snapshot is never torn within a field.
type Counters struct {
	done        atomic.Int64 // seeds whose range has been located
	total       atomic.Int64 // seeds generated for this run
	occurrences atomic.Int64 // occurrences resolved so far
}

// Snapshot is a point-in-time read of the counters.
type Snapshot struct {
	Done, Total, Occurrences int64
}

func (c *Counters) SetTotal(n int64)       { c.total.Store(n) }
func (c *Counters) IncDone()               { c.done.Add(1) }
func (c *Counters) AddOccurrences(n int64) { c.occurrences.Add(n) }

// Snapshot reads the counters without mutating them.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Done:        c.done.Load(),
		Total:       c.total.Load(),
		Occurrences: c.occurrences.Load(),
	}
}

// StatusLine renders the one-line progress report emitted on SIGUSR1.
// elapsed is the lap of the locate phase. Percent uses integer division and
// is guarded against a zero total (signal before seed generation finished).
func StatusLine(s Snapshot, elapsed time.Duration) string {
	var pct int64
	if s.Total > 0 {
		pct = s.Done * 100 / s.Total
	}
	return fmt.Sprintf("located %d out of %d seeds with %d occurrences in %s: %d%% done",
		s.Done, s.Total, s.Occurrences, elapsed.Round(time.Millisecond), pct)
}
