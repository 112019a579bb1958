// internal/monitor/timers.go
package monitor

import (
	"sync"
	"time"
)

// period records one timer's start/end instants. An end at or before start
// means the timer has not been stopped yet.
type period struct {
	start, end time.Time
}

// Timers is a registry of named phase timers owned by a single run, safe for
// concurrent use (the progress listener reads laps while the pipeline runs).
// Entries are created on first Start and overwritten when a name is reused.
type Timers struct {
	mu      sync.Mutex
	entries map[string]period
	now     func() time.Time
}

func NewTimers() *Timers {
	return &Timers{entries: map[string]period{}, now: time.Now}
}

// Start records the current instant as name's start, resetting any previous
// end.
func (t *Timers) Start(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = period{start: t.now()}
}

// Stop records the current instant as name's end.
func (t *Timers) Stop(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.entries[name]
	p.end = t.now()
	t.entries[name] = p
}

// Phase starts name and returns the stop action, meant for defer so the stop
// is recorded on every exit path:
//
//	defer timers.Phase("locate")()
func (t *Timers) Phase(name string) func() {
	t.Start(name)
	return func() { t.Stop(name) }
}

// Elapsed returns name's duration: end-start once stopped, otherwise the lap
// from start to now. Unknown names report zero.
func (t *Timers) Elapsed(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[name]
	if !ok {
		return 0
	}
	if p.end.After(p.start) {
		return p.end.Sub(p.start)
	}
	return t.now().Sub(p.start)
}
