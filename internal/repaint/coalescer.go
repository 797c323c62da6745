// Package repaint coalesces wake-up signals from background producers
// into a bounded number of redraw requests. N rapid data updates collapse
// into at most one redraw per poll window, and no update waits longer
// than one window to become visible.
package repaint

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultPollInterval bounds worst-case latency between a producer
// raising the flag and the renderer waking up.
const DefaultPollInterval = 100 * time.Millisecond

// Flag is the shared redraw signal. It is the only concurrently mutated
// state in the system: any producer may Raise it at any time, and the
// ticker drains it with an atomic test-and-clear.
type Flag struct {
	set atomic.Bool
}

// Raise marks that new data is waiting for the renderer.
func (f *Flag) Raise() {
	f.set.Store(true)
}

// TestAndClear atomically reads and clears the flag. A true return means
// at least one Raise happened since the last drain; concurrent Raises
// between the read and the clear are impossible because Swap is atomic.
func (f *Flag) TestAndClear() bool {
	return f.set.Swap(false)
}

// Ticker polls a Flag and invokes wake once per observed raise.
type Ticker struct {
	flag     *Flag
	interval time.Duration
	wake     func()
}

// NewTicker creates a ticker draining flag into wake at the given interval.
// A non-positive interval falls back to DefaultPollInterval.
func NewTicker(flag *Flag, interval time.Duration, wake func()) *Ticker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Ticker{flag: flag, interval: interval, wake: wake}
}

// Run polls until ctx is cancelled. Meant to run on its own goroutine.
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.flag.TestAndClear() {
				t.wake()
			}
		}
	}
}
