package dedup

import (
	"container/list"

	"github.com/cespare/xxhash/v2"

	"github.com/crimson-sun/actionlog/internal/engine/normalize"
	"github.com/crimson-sun/actionlog/internal/model"
)

const (
	DefaultWindow   = 10  // ticks
	DefaultCapacity = 512 // entries
)

// keySeparator cannot occur in a category label.
const keySeparator = "\x1f"

// Config controls debounce behavior.
type Config struct {
	Window   int // suppression window in ticks (default 10)
	Capacity int // maximum tracked keys (default 512)
}

// Key identifies an emission for deduplication purposes.
type Key uint64

// KeyFor derives the debounce key of an action from its category and
// normalized detail.
func KeyFor(a model.Action) Key {
	return Key(xxhash.Sum64String(string(a.Category) + keySeparator + normalize.Key(a.Detail)))
}

type entry struct {
	key           Key
	suppressUntil int
}

// Cache is a bounded key -> expiry-tick store with least-recently-touched
// eviction. Not safe for concurrent use.
type Cache struct {
	cfg     Config
	entries map[Key]*list.Element
	order   *list.List // front = most recently touched
}

// New creates a Cache. Zero config fields take their defaults.
func New(cfg Config) *Cache {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	return &Cache{
		cfg:     cfg,
		entries: make(map[Key]*list.Element, cfg.Capacity),
		order:   list.New(),
	}
}

// ShouldEmit reports whether key may be emitted at tick. It returns true when
// the key is untracked or its window has elapsed. Every call, suppressed or
// not, pushes the key's expiry to tick+Window, so a steady stream of repeats
// stays suppressed until it pauses for a full window.
func (c *Cache) ShouldEmit(key Key, tick int) bool {
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		emit := tick >= e.suppressUntil
		e.suppressUntil = tick + c.cfg.Window
		c.order.MoveToFront(el)
		return emit
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, suppressUntil: tick + c.cfg.Window})
	if c.order.Len() > c.cfg.Capacity {
		c.evictOldest()
	}
	return true
}

// Len returns the number of tracked keys.
func (c *Cache) Len() int {
	return c.order.Len()
}

// Contains reports whether key is tracked without touching its recency.
func (c *Cache) Contains(key Key) bool {
	_, ok := c.entries[key]
	return ok
}

// Window returns the configured suppression window in ticks.
func (c *Cache) Window() int {
	return c.cfg.Window
}

func (c *Cache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry).key)
}
