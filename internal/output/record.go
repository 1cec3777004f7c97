package output

import (
	"time"

	"github.com/crimson-sun/actionlog/internal/model"
)

// Record is the structured form of an audit line used by the JSON, webhook
// and database outputs.
type Record struct {
	Time     time.Time      `json:"time"`
	Tick     int            `json:"tick"`
	Category model.Category `json:"category"`
	Detail   string         `json:"detail"`
	Line     string         `json:"line"`
}

// NewRecord stamps an action with the wall-clock time it was written.
func NewRecord(a model.Action, now time.Time) Record {
	return Record{
		Time:     now.UTC(),
		Tick:     a.Tick,
		Category: a.Category,
		Detail:   a.Detail,
		Line:     a.Line(),
	}
}
