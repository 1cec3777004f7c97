package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

// Output writes audit lines to stdout, either as plain text or as
// JSON-encoded records.
type Output struct {
	w    io.Writer
	enc  *json.Encoder
	json bool
	now  func() time.Time
}

// New creates a stdout Output. With asJSON unset each action is printed as
// its audit line; otherwise as one JSON record per line, optionally
// pretty-printed.
func New(asJSON, pretty bool) *Output {
	return NewWriter(os.Stdout, asJSON, pretty)
}

// NewWriter is New with an arbitrary destination.
func NewWriter(w io.Writer, asJSON, pretty bool) *Output {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{w: w, enc: enc, json: asJSON, now: time.Now}
}

func (o *Output) Write(_ context.Context, action model.Action) error {
	if !o.json {
		if _, err := fmt.Fprintln(o.w, action.Line()); err != nil {
			return fmt.Errorf("stdout output: %w", err)
		}
		return nil
	}
	if err := o.enc.Encode(output.NewRecord(action, o.now())); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
