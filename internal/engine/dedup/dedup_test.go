package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/actionlog/internal/model"
)

func action(cat model.Category, detail string) model.Action {
	return model.Action{Category: cat, Detail: detail}
}

func TestShouldEmitWithinWindow(t *testing.T) {
	c := New(Config{})
	k := KeyFor(action(model.CategoryNPCInteraction, "NPC: Goblin, ID: 42"))

	assert.True(t, c.ShouldEmit(k, 100))
	assert.False(t, c.ShouldEmit(k, 101))
	// Second call refreshed the expiry to 111.
	assert.False(t, c.ShouldEmit(k, 110))
	assert.True(t, c.ShouldEmit(k, 120))
}

func TestShouldEmitAfterWindow(t *testing.T) {
	c := New(Config{Window: 10})
	k := KeyFor(action(model.CategoryWalkHere, "Location: (3200,3200,0)"))

	assert.True(t, c.ShouldEmit(k, 0))
	assert.False(t, c.ShouldEmit(k, 5))
	assert.True(t, c.ShouldEmit(k, 15))
}

func TestSuppressedAttemptsExtendWindow(t *testing.T) {
	c := New(Config{Window: 10})
	k := KeyFor(action(model.CategoryWalkHere, "Location: (1,1,0)"))

	require.True(t, c.ShouldEmit(k, 0))
	// A repeat every 5 ticks never escapes the window.
	for tick := 5; tick <= 100; tick += 5 {
		assert.False(t, c.ShouldEmit(k, tick), "tick %d", tick)
	}
	assert.True(t, c.ShouldEmit(k, 110))
}

func TestKeyIgnoresMarkup(t *testing.T) {
	a := KeyFor(action(model.CategoryNPCInteraction, "NPC: <col=ffff00>Goblin, ID: 42"))
	b := KeyFor(action(model.CategoryNPCInteraction, "NPC: Goblin, ID: 42"))
	assert.Equal(t, a, b)

	other := KeyFor(action(model.CategoryObjectInteraction, "NPC: Goblin, ID: 42"))
	assert.NotEqual(t, a, other, "category is part of the key")
}

func TestCapacityEvictsLeastRecentlyTouched(t *testing.T) {
	c := New(Config{Capacity: 512})
	keys := make([]Key, 513)
	for i := range keys {
		keys[i] = KeyFor(action(model.CategoryMenuClick, fmt.Sprintf("key-%d", i)))
	}

	for i := 0; i < 513; i++ {
		c.ShouldEmit(keys[i], 0)
	}

	assert.Equal(t, 512, c.Len())
	assert.False(t, c.Contains(keys[0]), "oldest key should be evicted")
	assert.True(t, c.Contains(keys[1]))
	assert.True(t, c.Contains(keys[512]))
}

func TestAccessRefreshesRecency(t *testing.T) {
	c := New(Config{Capacity: 3})
	a := KeyFor(action(model.CategoryMenuClick, "a"))
	b := KeyFor(action(model.CategoryMenuClick, "b"))
	cc := KeyFor(action(model.CategoryMenuClick, "c"))
	d := KeyFor(action(model.CategoryMenuClick, "d"))

	c.ShouldEmit(a, 0)
	c.ShouldEmit(b, 0)
	c.ShouldEmit(cc, 0)
	// Touch a so b becomes the least recently used.
	c.ShouldEmit(a, 1)
	c.ShouldEmit(d, 1)

	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Contains(a))
	assert.False(t, c.Contains(b))
	assert.True(t, c.Contains(cc))
	assert.True(t, c.Contains(d))
}

func TestEvictedKeyEmitsAgain(t *testing.T) {
	c := New(Config{Capacity: 1})
	a := KeyFor(action(model.CategoryMenuClick, "a"))
	b := KeyFor(action(model.CategoryMenuClick, "b"))

	require.True(t, c.ShouldEmit(a, 0))
	require.True(t, c.ShouldEmit(b, 0))
	assert.True(t, c.ShouldEmit(a, 1), "a was evicted so it is no longer suppressed")
}

func TestDefaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultWindow, c.Window())
	assert.Equal(t, 0, c.Len())
}
