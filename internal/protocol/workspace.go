package protocol

import (
	"encoding/json"
	"errors"
)

// Workspace represents one workspace as reported by the window manager.
// Identity is positional within a snapshot; there is no stable ID.
type Workspace struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
	Visible bool   `json:"visible"`
}

// The wire format spells the boolean fields two ways depending on the
// window manager version: hasFocus/isDisplayed or focused/visible.
// Absent fields default to false.
type workspaceWire struct {
	Name        string `json:"name"`
	Focused     *bool  `json:"focused"`
	HasFocus    *bool  `json:"hasFocus"`
	Visible     *bool  `json:"visible"`
	IsDisplayed *bool  `json:"isDisplayed"`
}

// UnmarshalJSON accepts both key spellings for the focus and visibility flags.
func (w *Workspace) UnmarshalJSON(data []byte) error {
	var wire workspaceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	w.Name = wire.Name
	w.Focused = boolAlias(wire.Focused, wire.HasFocus)
	w.Visible = boolAlias(wire.Visible, wire.IsDisplayed)
	return nil
}

func boolAlias(primary, alias *bool) bool {
	if primary != nil {
		return *primary
	}
	if alias != nil {
		return *alias
	}
	return false
}

// Snapshot is a complete, atomically-replacing view of workspace state.
// A new snapshot fully supersedes the previous one; there is no diffing.
type Snapshot []Workspace

// ErrNotWorkspacePayload is returned when a response payload does not
// carry a workspaces list.
var ErrNotWorkspacePayload = errors.New("payload has no workspaces field")

type workspacesData struct {
	Workspaces *[]Workspace `json:"workspaces"`
}

// DecodeSnapshot decodes a workspace-shaped response payload.
func DecodeSnapshot(data json.RawMessage) (Snapshot, error) {
	var wd workspacesData
	if err := json.Unmarshal(data, &wd); err != nil {
		return nil, err
	}
	if wd.Workspaces == nil {
		return nil, ErrNotWorkspacePayload
	}
	return Snapshot(*wd.Workspaces), nil
}

// IsSubscriptionAck reports whether a response payload is the ack for a
// subscribe command rather than actual data. The window manager does not
// correlate request and response IDs, so presence of the subscriptionId
// field at the top level of the payload is the only available marker.
func IsSubscriptionAck(data json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["subscriptionId"]
	return ok
}
