package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

// Multi fans out actions to several outputs in order. A failing output does
// not stop delivery to the rest.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the action to every wrapped output and joins their errors.
func (m *Multi) Write(ctx context.Context, action model.Action) error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Write(ctx, action); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of wrapped outputs.
func (m *Multi) Len() int { return len(m.outputs) }
