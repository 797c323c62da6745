package wm

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/bryanchriswhite/quebar/internal/protocol"
)

// QueryWorkspaces performs a one-shot workspace query: connect, query,
// read until a workspace snapshot arrives, disconnect. Used by the CLI;
// the long-lived Client never goes through this path.
func QueryWorkspaces(ctx context.Context, url string) (protocol.Snapshot, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to window manager: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(protocol.CmdQueryWorkspaces)); err != nil {
		return nil, fmt.Errorf("failed to send workspace query: %w", err)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read query response: %w", err)
		}

		env, err := protocol.ParseEnvelope(raw)
		if err != nil || !env.IsResponse() || protocol.IsSubscriptionAck(env.Data) {
			continue
		}
		snap, err := protocol.DecodeSnapshot(env.Data)
		if err != nil {
			continue
		}
		return snap, nil
	}
}
