package mocktest

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// newClock returns a channel firing every d and a func releasing it.
var newClock = func(d time.Duration) (<-chan time.Time, func()) { // mockable
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Ticker drives a running Session's countdown from the wall clock.
type Ticker struct {
	interval time.Duration
	onTick   func(Snapshot)
}

// NewTicker returns a Ticker firing every interval (one second for real tests).
// onTick, if not nil, receives a snapshot after every applied tick.
func NewTicker(interval time.Duration, onTick func(Snapshot)) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, onTick: onTick}
}

// Run ticks s until it stops running, is exited, or ctx is done.
// Run returns nil when the session stopped on its own and ctx.Err() on cancellation.
func (t *Ticker) Run(ctx context.Context, s *Session) error {
	if mode := s.Mode(); mode != Running {
		return errors.WithStack(&StateError{Op: "run clock", Mode: mode})
	}

	c, stop := newClock(t.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Halted():
			return nil
		case <-c:
			if !s.Tick() {
				return nil // submitted or exited in between
			}
			if t.onTick != nil {
				t.onTick(s.Snapshot())
			}
		}
	}
}
