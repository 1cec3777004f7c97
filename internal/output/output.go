package output

import (
	"context"

	"github.com/crimson-sun/actionlog/internal/model"
)

// Output defines the interface for audit line destinations.
type Output interface {
	Write(ctx context.Context, action model.Action) error
	Close() error
}
