// Package websocket streams live session records from a host over a
// websocket. Each text message carries one JSON record.
package websocket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/crimson-sun/actionlog/internal/connector"
	"github.com/crimson-sun/actionlog/internal/transcript"
)

func init() {
	connector.Register("websocket", func() connector.Connector { return New() })
}

// Connector dials a host event feed.
type Connector struct {
	dialer *websocket.Dialer
}

// New creates a websocket connector using the default dialer.
func New() *Connector {
	return &Connector{dialer: websocket.DefaultDialer}
}

// Stream dials cfg.Source and delivers one record per message. Messages that
// fail to decode are delivered with Err set. The channel closes when the
// peer disconnects or ctx is cancelled.
func (c *Connector) Stream(ctx context.Context, cfg connector.ConnectorConfig) (<-chan transcript.Record, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("websocket connector: no endpoint")
	}

	header := http.Header{}
	if cfg.APIKey != "" {
		header.Set("Authorization", "Bearer "+cfg.APIKey)
	}
	for k, v := range cfg.Extra {
		header.Set(k, v)
	}

	conn, _, err := c.dialer.DialContext(ctx, cfg.Source, header)
	if err != nil {
		return nil, fmt.Errorf("websocket connector: dial %s: %w", cfg.Source, err)
	}

	// Unblock ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })

	ch := make(chan transcript.Record)
	go func() {
		defer close(ch)
		defer stop()
		defer conn.Close()

		for n := 1; ; n++ {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					select {
					case ch <- transcript.Record{Err: fmt.Errorf("websocket connector: read: %w", err), Line: n}:
					case <-ctx.Done():
					}
				}
				return
			}
			if kind != websocket.TextMessage {
				continue
			}

			rec, err := transcript.DecodeJSON(data)
			if err != nil {
				rec = transcript.Record{Err: err}
			}
			rec.Line = n

			select {
			case ch <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
