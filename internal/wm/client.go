// Package wm maintains a persistent event subscription to the window
// manager's IPC server and republishes full workspace snapshots.
package wm

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bryanchriswhite/quebar/internal/logger"
	"github.com/bryanchriswhite/quebar/internal/protocol"
	"github.com/bryanchriswhite/quebar/internal/repaint"
)

// DefaultRetryInterval is the fixed delay between reconnect attempts.
const DefaultRetryInterval = 2 * time.Second

// Client owns one long-lived websocket connection to the window manager.
// It subscribes to workspace and focus events and, on every event of
// interest, re-queries the full workspace state rather than interpreting
// the event payload. Correctness over bandwidth: event volume is
// human-interaction scale.
type Client struct {
	url    string
	retry  time.Duration
	dialer *websocket.Dialer
	out    chan protocol.Snapshot
	flag   *repaint.Flag
	log    *zerolog.Logger
}

// NewClient creates a client for the window manager IPC endpoint
// (e.g. "ws://localhost:6123"). A non-positive retry interval falls back
// to DefaultRetryInterval.
func NewClient(url string, retry time.Duration, flag *repaint.Flag) *Client {
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	return &Client{
		url:    url,
		retry:  retry,
		dialer: websocket.DefaultDialer,
		out:    make(chan protocol.Snapshot, 8),
		flag:   flag,
		log:    logger.WithComponent("wm"),
	}
}

// Snapshots returns the channel of published workspace snapshots.
// Single consumer; each value fully replaces the previous one.
func (c *Client) Snapshots() <-chan protocol.Snapshot {
	return c.out
}

// Run connects, subscribes, and streams until ctx is cancelled. Every
// I/O failure is recoverable: the client drops back to the dial loop and
// retries forever. No error escapes this method besides ctx expiry.
func (c *Client) Run(ctx context.Context) {
	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.log.Debug().Err(err).Str("url", c.url).Msg("connect failed, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retry):
			}
			continue
		}

		c.log.Info().Str("url", c.url).Msg("connected to window manager")
		c.stream(ctx, conn)
		conn.Close()

		select {
		case <-ctx.Done():
			return
		default:
			c.log.Info().Msg("connection lost, reconnecting")
		}
	}
}

// stream runs the subscribe sequence and then reads messages until the
// connection dies or ctx is cancelled.
func (c *Client) stream(ctx context.Context, conn *websocket.Conn) {
	// Unblock the read loop when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := c.subscribe(conn); err != nil {
		// Write failure here means the connection is already gone; the
		// outer loop handles the reconnect.
		c.log.Debug().Err(err).Msg("subscribe sequence failed")
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.handleMessage(conn, raw)
	}
}

// subscribe sends the two event subscriptions followed by an immediate
// full-state query so the display is populated before the first event.
func (c *Client) subscribe(conn *websocket.Conn) error {
	for _, cmd := range []string{
		protocol.CmdSubscribeWorkspaceActivated,
		protocol.CmdSubscribeFocusChanged,
		protocol.CmdQueryWorkspaces,
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) handleMessage(conn *websocket.Conn, raw []byte) {
	env, err := protocol.ParseEnvelope(raw)
	if err != nil {
		// Not a valid envelope; drop silently per the protocol contract.
		c.log.Debug().Err(err).Msg("dropping malformed message")
		return
	}

	switch {
	case env.IsResponse():
		if protocol.IsSubscriptionAck(env.Data) {
			return
		}
		snap, err := protocol.DecodeSnapshot(env.Data)
		if err != nil {
			c.log.Debug().Err(err).Msg("dropping non-workspace response")
			return
		}
		c.publish(snap)
	case env.IsEvent():
		// Always re-fetch full truth instead of diffing the event payload.
		// A write failure is non-fatal; the next read surfaces the loss.
		if err := conn.WriteMessage(websocket.TextMessage, []byte(protocol.CmdQueryWorkspaces)); err != nil {
			c.log.Debug().Err(err).Msg("workspace query send failed")
		}
	}
}

// publish hands a snapshot to the consumer without ever blocking. When
// the buffer is full the oldest snapshot is evicted: the consumer keeps
// only the last value, so only the newest one matters.
func (c *Client) publish(snap protocol.Snapshot) {
	select {
	case c.out <- snap:
	default:
		select {
		case <-c.out:
		default:
		}
		select {
		case c.out <- snap:
		default:
		}
	}
	c.flag.Raise()
}
