package slogout

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/actionlog/internal/model"
)

func TestWriteLogsLineAtInfo(t *testing.T) {
	var buf bytes.Buffer
	out := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, out.Write(context.Background(), model.Action{
		Category: model.CategoryPrayerToggle, Detail: "Enabled: PIETY", Tick: 9,
	}))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "[Action Logger] PrayerToggle: Enabled: PIETY", rec["msg"])
	assert.Equal(t, "PrayerToggle", rec["category"])
	assert.Equal(t, float64(9), rec["tick"])
}

func TestWriteBelowLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	out := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	require.NoError(t, out.Write(context.Background(), model.Action{Category: model.CategoryChat}))
	assert.Empty(t, buf.String())
}
