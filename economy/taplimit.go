package economy

import (
	"sync"
	"time"
)

// Tap admission control: at most MaxTapsPerWindow taps per TapWindow per
// account. The counters are process-local and ephemeral; losing them on
// restart only briefly relaxes throttling, it is not a durable guarantee.
const (
	TapWindow        = 1000 * time.Millisecond
	MaxTapsPerWindow = 20
)

type tapWindow struct {
	count   int
	resetAt time.Time
}

// tapGuard keeps one counting window per account. Stale windows are swept
// lazily while the table lock is already held.
type tapGuard struct {
	mu      sync.Mutex
	windows map[uint]*tapWindow
}

func newTapGuard() *tapGuard {
	return &tapGuard{windows: make(map[uint]*tapWindow)}
}

// admit reports whether one more tap is allowed for the account right now.
// Callers must already hold the per-account serialization lock so concurrent
// taps cannot undercount.
func (g *tapGuard) admit(userID uint, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweepLocked(now)

	w, ok := g.windows[userID]
	if !ok || !now.Before(w.resetAt) {
		g.windows[userID] = &tapWindow{count: 1, resetAt: now.Add(TapWindow)}
		return true
	}

	w.count++
	return w.count <= MaxTapsPerWindow
}

func (g *tapGuard) sweepLocked(now time.Time) {
	for id, w := range g.windows {
		if now.After(w.resetAt) {
			delete(g.windows, id)
		}
	}
}
