package connector

import (
	"context"

	"github.com/crimson-sun/actionlog/internal/transcript"
)

// Connector defines the interface all event source connectors must implement.
type Connector interface {
	// Stream delivers transcript records in arrival order. The channel is
	// closed when the source is exhausted, disconnects, or ctx is cancelled.
	Stream(ctx context.Context, cfg ConnectorConfig) (<-chan transcript.Record, error)
}

// ConnectorConfig holds provider-specific connection settings.
type ConnectorConfig struct {
	Provider string
	Source   string // file path ("-" for stdin) or endpoint URL
	Format   string // transcript encoding for file sources
	APIKey   string
	Extra    map[string]string
}
