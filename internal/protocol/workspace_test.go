package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Snapshot
	}{
		{
			"canonical keys",
			`{"workspaces":[{"name":"1","focused":true,"visible":true}]}`,
			Snapshot{{Name: "1", Focused: true, Visible: true}},
		},
		{
			"alias keys",
			`{"workspaces":[{"name":"1","hasFocus":true,"isDisplayed":true}]}`,
			Snapshot{{Name: "1", Focused: true, Visible: true}},
		},
		{
			"missing flags default to false",
			`{"workspaces":[{"name":"web"}]}`,
			Snapshot{{Name: "web"}},
		},
		{
			"order preserved",
			`{"workspaces":[{"name":"3"},{"name":"1","hasFocus":true},{"name":"2"}]}`,
			Snapshot{{Name: "3"}, {Name: "1", Focused: true}, {Name: "2"}},
		},
		{
			"empty list",
			`{"workspaces":[]}`,
			Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := DecodeSnapshot(json.RawMessage(tt.payload))
			if err != nil {
				t.Fatalf("DecodeSnapshot(%s) error: %v", tt.payload, err)
			}
			if len(snap) != len(tt.expected) {
				t.Fatalf("got %d workspaces, want %d", len(snap), len(tt.expected))
			}
			for i := range snap {
				if snap[i] != tt.expected[i] {
					t.Errorf("workspace %d = %+v, want %+v", i, snap[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDecodeSnapshotRejectsNonWorkspacePayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no workspaces key", `{"somethingElse":1}`},
		{"not an object", `"just a string"`},
		{"malformed json", `{"workspaces":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(json.RawMessage(tt.payload)); err == nil {
				t.Errorf("DecodeSnapshot(%s) succeeded, want error", tt.payload)
			}
		})
	}
}

func TestIsSubscriptionAck(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected bool
	}{
		{"ack", `{"subscriptionId":"abc-123"}`, true},
		{"ack with null id", `{"subscriptionId":null}`, true},
		{"workspace payload", `{"workspaces":[]}`, false},
		{"nested id does not count", `{"data":{"subscriptionId":"x"}}`, false},
		{"malformed", `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubscriptionAck(json.RawMessage(tt.payload)); got != tt.expected {
				t.Errorf("IsSubscriptionAck(%s) = %v, want %v", tt.payload, got, tt.expected)
			}
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"messageType":"query_response","data":{"workspaces":[]}}`))
	if err != nil {
		t.Fatalf("ParseEnvelope error: %v", err)
	}
	if env.MessageType != MessageTypeQueryResponse {
		t.Errorf("MessageType = %q, want %q", env.MessageType, MessageTypeQueryResponse)
	}
	if !env.IsResponse() {
		t.Error("IsResponse() = false, want true")
	}
	if env.IsEvent() {
		t.Error("IsEvent() = true, want false")
	}

	if _, err := ParseEnvelope([]byte(`garbage`)); err == nil {
		t.Error("ParseEnvelope(garbage) succeeded, want error")
	}
}

func TestEnvelopeRouting(t *testing.T) {
	tests := []struct {
		mt       MessageType
		response bool
		event    bool
	}{
		{MessageTypeClientResponse, true, false},
		{MessageTypeQueryResponse, true, false},
		{MessageTypeEvent, false, true},
		{MessageTypeSubscribedEvent, false, true},
		{MessageTypeEventSubscription, false, true},
		{MessageType("unknown"), false, false},
	}

	for _, tt := range tests {
		env := &Envelope{MessageType: tt.mt}
		if env.IsResponse() != tt.response {
			t.Errorf("%q IsResponse() = %v, want %v", tt.mt, env.IsResponse(), tt.response)
		}
		if env.IsEvent() != tt.event {
			t.Errorf("%q IsEvent() = %v, want %v", tt.mt, env.IsEvent(), tt.event)
		}
	}
}
