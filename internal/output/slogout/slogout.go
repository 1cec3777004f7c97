// Package slogout emits audit lines through a structured logger at Info.
package slogout

import (
	"context"
	"log/slog"

	"github.com/crimson-sun/actionlog/internal/model"
)

// Output logs each action's line as the record message, with the category
// and tick as attributes.
type Output struct {
	logger *slog.Logger
}

// New creates an Output. A nil logger uses slog.Default at write time.
func New(logger *slog.Logger) *Output {
	return &Output{logger: logger}
}

func (o *Output) Write(ctx context.Context, action model.Action) error {
	l := o.logger
	if l == nil {
		l = slog.Default()
	}
	l.LogAttrs(ctx, slog.LevelInfo, action.Line(),
		slog.String("category", string(action.Category)),
		slog.Int("tick", action.Tick),
	)
	return nil
}

func (o *Output) Close() error { return nil }
