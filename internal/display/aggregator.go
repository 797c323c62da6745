package display

import (
	"time"

	"github.com/bryanchriswhite/quebar/internal/protocol"
)

// Host is the render-host boundary: the two scheduling operations the
// core needs from whatever drives drawing. RequestRepaint wakes the
// renderer now; RequestRepaintAfter guarantees a wake-up within d. The
// two are independent and additive — the renderer wakes on whichever
// fires first.
type Host interface {
	RequestRepaint()
	RequestRepaintAfter(d time.Duration)
}

// Aggregator is the single display consumer. Once per render frame it
// drains both producer channels without blocking, keeps only the newest
// value from each, and recomputes the clock fields.
type Aggregator struct {
	workspaces <-chan protocol.Snapshot
	batteries  <-chan string
	host       Host
	state      State
}

// NewAggregator wires the producer channels to the render host.
func NewAggregator(workspaces <-chan protocol.Snapshot, batteries <-chan string, host Host) *Aggregator {
	return &Aggregator{
		workspaces: workspaces,
		batteries:  batteries,
		host:       host,
		state:      initialState(),
	}
}

// Update runs one frame's worth of state maintenance and returns the
// resulting state. If anything changed it requests an immediate redraw;
// regardless, it schedules a wake-up at the next minute boundary so the
// clock advances on time even with no other activity.
func (a *Aggregator) Update(now time.Time) State {
	changed := false

	// Keep-last draining is safe because each snapshot is a full
	// replacement, never an increment.
	for {
		select {
		case snap := <-a.workspaces:
			a.state.Workspaces = snap
			changed = true
			continue
		default:
		}
		break
	}

	for {
		select {
		case reading := <-a.batteries:
			if reading != a.state.Battery {
				changed = true
			}
			a.state.Battery = reading
			continue
		default:
		}
		break
	}

	newTime := now.Format(TimeFormat)
	newDate := now.Format(DateFormat)
	if newTime != a.state.Time || newDate != a.state.Date {
		a.state.Time = newTime
		a.state.Date = newDate
		changed = true
	}

	if changed {
		a.host.RequestRepaint()
	}
	a.host.RequestRepaintAfter(UntilNextMinute(now))

	return a.state
}

// State returns the most recently computed state.
func (a *Aggregator) State() State {
	return a.state
}

// UntilNextMinute returns how long until the next wall-clock minute
// boundary. Exactly on a boundary it returns a full minute.
func UntilNextMinute(now time.Time) time.Duration {
	return time.Duration(60-now.Unix()%60) * time.Second
}
