// Package testdata embeds a labeled corpus of menu clicks used to check the
// classifier end to end.
package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/actionlog/internal/model"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a menu click with its expected classification. The scene is
// anchored at SceneBase; an empty ExpectedCategory means no classification.
type CorpusEntry struct {
	Description      string            `json:"description"`
	Click            CorpusClick       `json:"click"`
	SceneBase        model.WorldPoint  `json:"scene_base"`
	Destination      *model.WorldPoint `json:"destination,omitempty"`
	ExpectedCategory model.Category    `json:"expected_category"`
	ExpectedDetail   string            `json:"expected_detail"`
}

// CorpusClick mirrors model.MenuClick with JSON names.
type CorpusClick struct {
	Action model.MenuAction `json:"action"`
	Option string           `json:"option"`
	Target string           `json:"target"`
	ID     int              `json:"id"`
	Param0 int              `json:"param0"`
	Param1 int              `json:"param1"`
}

// MenuClick converts the entry to the engine's event type.
func (c CorpusClick) MenuClick() model.MenuClick {
	return model.MenuClick(c)
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
