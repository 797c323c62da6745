package display

import (
	"context"
	"time"
)

// RenderFunc receives each frame's state. The renderer must treat the
// state as read-only for the duration of the call.
type RenderFunc func(State)

// Loop is an in-process render host: it drives the Aggregator frame by
// frame and hands each frame to a RenderFunc. It implements Host — the
// aggregator and the repaint ticker both schedule wake-ups through it.
type Loop struct {
	agg    *Aggregator
	render RenderFunc
	wake   chan struct{}

	// next holds the earliest RequestRepaintAfter deadline for the
	// current frame. Written and read on the loop goroutine only.
	next time.Duration
}

// NewLoop creates a render loop. The returned Loop is the Host to pass
// to NewAggregator.
func NewLoop(render RenderFunc) *Loop {
	return &Loop{
		render: render,
		wake:   make(chan struct{}, 1),
	}
}

// Bind attaches the aggregator the loop drives. Separate from NewLoop
// because the aggregator needs the loop as its Host.
func (l *Loop) Bind(agg *Aggregator) {
	l.agg = agg
}

// RequestRepaint wakes the loop for an immediate frame. Safe to call
// from any goroutine; redundant calls before the loop wakes collapse
// into one frame.
func (l *Loop) RequestRepaint() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RequestRepaintAfter guarantees a frame within d. Earlier requests win.
func (l *Loop) RequestRepaintAfter(d time.Duration) {
	if l.next <= 0 || d < l.next {
		l.next = d
	}
}

// Run renders frames until ctx is cancelled. Each frame: update state,
// render, then sleep until either a wake-up or the earliest scheduled
// deadline.
func (l *Loop) Run(ctx context.Context) {
	for {
		l.next = 0
		state := l.agg.Update(time.Now())
		l.render(state)

		next := l.next
		if next <= 0 {
			next = time.Minute
		}
		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-l.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}
