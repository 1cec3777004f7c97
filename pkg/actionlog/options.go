package actionlog

import (
	"io"
	"log/slog"

	"github.com/crimson-sun/actionlog/internal/engine/dedup"
	"github.com/crimson-sun/actionlog/internal/engine/toggle"
)

type options struct {
	sink            Sink
	enabled         bool
	projectiles     bool
	window          int
	capacity        int
	toggleSuppress  int
	forgetOnDespawn bool
	onSinkError     func(error)
}

func defaultOptions() options {
	return options{
		enabled:        true,
		window:         dedup.DefaultWindow,
		capacity:       dedup.DefaultCapacity,
		toggleSuppress: toggle.DefaultSuppress,
	}
}

// Option configures a Logger.
type Option func(*options)

// WithSink sets where actions are written. Default: slog.Default at Info.
func WithSink(s Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithSlog writes actions through logger at Info.
func WithSlog(logger *slog.Logger) Option {
	return func(o *options) { o.sink = slogSink(logger) }
}

// WithWriter writes one audit line per action to w.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.sink = writerSink(w) }
}

// WithEnabled turns all processing on or off. Default: on.
func WithEnabled(on bool) Option {
	return func(o *options) { o.enabled = on }
}

// WithProjectiles turns projectile reporting on or off. Default: off.
func WithProjectiles(on bool) Option {
	return func(o *options) { o.projectiles = on }
}

// WithDebounce sets the suppression window in ticks and the number of
// distinct actions remembered. Non-positive values keep the defaults
// (10 ticks, 512 entries).
func WithDebounce(window, capacity int) Option {
	return func(o *options) {
		if window > 0 {
			o.window = window
		}
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithToggleSuppress sets how many ticks a prayer toggle mutes further
// changes to the same prayer. Default: 3.
func WithToggleSuppress(ticks int) Option {
	return func(o *options) { o.toggleSuppress = ticks }
}

// WithForgetOnDespawn re-announces NPCs that leave and re-enter the scene.
// Default: each NPC is announced once per session.
func WithForgetOnDespawn() Option {
	return func(o *options) { o.forgetOnDespawn = true }
}

// WithOnSinkError sets the callback for sink write failures. Default: a
// slog warning.
func WithOnSinkError(f func(error)) Option {
	return func(o *options) { o.onSinkError = f }
}
