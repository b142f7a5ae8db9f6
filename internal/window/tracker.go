package window

import (
	"sync"
	"time"
)

// Tracker counts events in a sliding time window, keyed by (guild, subject).
// A subject is whatever stream is being rated: the guild's join stream, or a
// single user's message stream. Windows are created lazily and evicted to
// empty as entries age out. The window duration is supplied per call because
// it is per-guild configuration and may change between events.
type Tracker struct {
	mu      sync.RWMutex
	windows map[key]*timeWindow
}

type key struct {
	guildID string
	subject string
}

// timeWindow holds monotonically ordered timestamps. start indexes the first
// live entry so eviction only ever drops from the front.
type timeWindow struct {
	mu    sync.Mutex
	times []time.Time
	start int
}

func NewTracker() *Tracker {
	return &Tracker{
		windows: make(map[key]*timeWindow),
	}
}

// Record appends now to the subject's window, evicts entries older than
// duration, and returns the resulting count. Insertion order is
// non-decreasing, so eviction is amortized O(1): stale entries are dropped
// from the front only, never by rescanning the whole window.
func (t *Tracker) Record(guildID, subject string, now time.Time, duration time.Duration) int {
	w := t.window(guildID, subject)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.times = append(w.times, now)
	cutoff := now.Add(-duration)
	for w.start < len(w.times) && w.times[w.start].Before(cutoff) {
		w.start++
	}
	// Compact once the dead prefix dominates, to bound slice growth.
	if w.start > 0 && w.start*2 >= len(w.times) {
		w.times = append(w.times[:0], w.times[w.start:]...)
		w.start = 0
	}
	return len(w.times) - w.start
}

// Exceeded reports whether count is over the allowed maximum.
func Exceeded(count, maxAllowed int) bool {
	return count > maxAllowed
}

// ResetGuild drops all windows of a guild (teardown on guild removal).
func (t *Tracker) ResetGuild(guildID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.windows {
		if k.guildID == guildID {
			delete(t.windows, k)
		}
	}
}

func (t *Tracker) window(guildID, subject string) *timeWindow {
	k := key{guildID: guildID, subject: subject}

	t.mu.RLock()
	w, exists := t.windows[k]
	t.mu.RUnlock()
	if exists {
		return w
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if w, exists = t.windows[k]; exists {
		return w
	}
	w = &timeWindow{}
	t.windows[k] = w
	return w
}
