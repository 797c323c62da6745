package display

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanchriswhite/quebar/internal/protocol"
)

func TestLoopRendersOnWake(t *testing.T) {
	frames := make(chan State, 16)
	loop := NewLoop(func(s State) {
		select {
		case frames <- s:
		default:
		}
	})

	wsCh := make(chan protocol.Snapshot, 8)
	agg := NewAggregator(wsCh, make(chan string, 1), loop)
	loop.Bind(agg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	// Initial frame.
	select {
	case <-frames:
	case <-time.After(5 * time.Second):
		t.Fatal("loop never rendered the first frame")
	}

	// New data plus a wake must produce a frame carrying the data.
	wsCh <- protocol.Snapshot{{Name: "dev", Focused: true}}
	loop.RequestRepaint()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case frame := <-frames:
			if len(frame.Workspaces) == 1 && frame.Workspaces[0].Name == "dev" {
				return
			}
		case <-deadline:
			t.Fatal("frame with published snapshot never rendered")
		}
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	loop := NewLoop(func(State) {})
	agg := NewAggregator(make(chan protocol.Snapshot), make(chan string), loop)
	loop.Bind(agg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()
	loop.RequestRepaint()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestLoopRequestRepaintAfterEarlierWins(t *testing.T) {
	loop := NewLoop(func(State) {})
	loop.RequestRepaintAfter(40 * time.Second)
	loop.RequestRepaintAfter(10 * time.Second)
	loop.RequestRepaintAfter(30 * time.Second)
	require.Equal(t, 10*time.Second, loop.next)
}
