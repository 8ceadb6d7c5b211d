package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler runs deferred view actions on a clockwork clock
type Scheduler struct {
	clock clockwork.Clock
}

// New creates a scheduler on the given clock
func New(clock clockwork.Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// NewSystem creates a scheduler backed by real timers
func NewSystem() *Scheduler {
	return New(clockwork.NewRealClock())
}

// AfterFunc runs f on its own goroutine once d has elapsed. The timer is
// not returned, so callers cannot stop it.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) {
	s.clock.AfterFunc(d, f)
}
