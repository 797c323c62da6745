package protocol

import "encoding/json"

// MessageType identifies the kind of message inside an Envelope.
type MessageType string

const (
	MessageTypeClientResponse    MessageType = "client_response"
	MessageTypeQueryResponse     MessageType = "query_response"
	MessageTypeEvent             MessageType = "event"
	MessageTypeSubscribedEvent   MessageType = "subscribed_event"
	MessageTypeEventSubscription MessageType = "event_subscription"
)

// Outbound IPC commands. The window manager speaks plain text frames
// for commands and JSON envelopes for everything it sends back.
const (
	CmdSubscribeWorkspaceActivated = "sub -e workspace_activated"
	CmdSubscribeFocusChanged       = "sub -e focus_changed"
	CmdQueryWorkspaces             = "query workspaces"
)

// Envelope is the outer wrapper around every inbound message. Data stays
// opaque until the message type tells us how to decode it.
type Envelope struct {
	MessageType MessageType     `json:"messageType"`
	Data        json.RawMessage `json:"data"`
}

// IsResponse reports whether the envelope carries a command or query response.
func (e *Envelope) IsResponse() bool {
	return e.MessageType == MessageTypeClientResponse || e.MessageType == MessageTypeQueryResponse
}

// IsEvent reports whether the envelope carries a subscribed event notification.
func (e *Envelope) IsEvent() bool {
	switch e.MessageType {
	case MessageTypeEvent, MessageTypeSubscribedEvent, MessageTypeEventSubscription:
		return true
	}
	return false
}

// ParseEnvelope decodes a raw inbound frame. Malformed frames are the
// caller's cue to drop the message, not to tear down the connection.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
