// Package file replays a recorded transcript from disk or stdin.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/actionlog/internal/connector"
	"github.com/crimson-sun/actionlog/internal/transcript"
)

func init() {
	connector.Register("file", func() connector.Connector { return New() })
}

// Connector reads a JSONL or YAML transcript.
type Connector struct {
	stdin io.Reader
}

// New creates a file connector.
func New() *Connector {
	return &Connector{stdin: os.Stdin}
}

// Stream opens cfg.Source and streams its records. The format comes from
// cfg.Format, or the file extension when unset. A Source of "-" reads stdin.
func (c *Connector) Stream(ctx context.Context, cfg connector.ConnectorConfig) (<-chan transcript.Record, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("file connector: no source path")
	}

	format := transcript.FormatFor(cfg.Source)
	if cfg.Format != "" {
		f, err := transcript.ParseFormat(cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("file connector: %w", err)
		}
		format = f
	}

	if cfg.Source == "-" {
		return transcript.Read(ctx, c.stdin, format), nil
	}

	f, err := os.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("file connector: open %s: %w", cfg.Source, err)
	}

	out := make(chan transcript.Record)
	go func() {
		defer close(out)
		defer f.Close()
		for rec := range transcript.Read(ctx, f, format) {
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
