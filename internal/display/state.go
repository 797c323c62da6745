// Package display merges the background producer streams into the
// current display state and drives the render scheduling contract.
package display

import "github.com/bryanchriswhite/quebar/internal/protocol"

// Clock formats shown on the bar.
const (
	TimeFormat = "15:04"
	DateFormat = "01/02/2006"
)

// State is the complete view the renderer draws from. Mutated only by
// the Aggregator; read-only to the renderer within one frame.
type State struct {
	Workspaces protocol.Snapshot `json:"workspaces"`
	Battery    string            `json:"battery"`
	Time       string            `json:"time"`
	Date       string            `json:"date"`
}

// initialState is what the bar shows before any producer has published.
// The battery placeholder avoids rendering an empty slot for up to one
// sample interval on battery-less hosts.
func initialState() State {
	return State{Battery: "100%"}
}
