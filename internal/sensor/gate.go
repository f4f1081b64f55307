package sensor

import (
	"sync"
	"time"
)

// Gate rate-limits re-fetching of a sensor's data source.
//
// The timestamp is taken before the fetch runs, not after it completes, so
// a fetch that outlives the rate window still counts from its start. That
// de-duplicates work under slow data sources at the cost of possibly
// skipping one refresh window.
//
// Gate also carries the in-flight guard: while one fetch is running,
// further Begin calls report false so re-entrant samples reuse the cache
// instead of double-invoking the data source.
type Gate struct {
	mu       sync.Mutex
	last     time.Time
	sampled  bool
	inFlight bool
}

// Begin reports whether the caller should fetch now. When it returns true
// the gate is held until End is called; the fetch timestamp is already
// recorded. When it returns false the caller renders from cached state.
//
// A fetch is due when the gate has never sampled, or more than rate has
// elapsed since the last fetch started. Elapsed time uses the monotonic
// clock, so wall-clock adjustments cannot force or starve a refresh.
func (g *Gate) Begin(rate time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return false
	}
	if g.sampled && time.Since(g.last) <= rate {
		return false
	}

	g.last = time.Now()
	g.sampled = true
	g.inFlight = true
	return true
}

// End releases the gate after a fetch finishes, successful or not.
func (g *Gate) End() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}
