// Package actionlog turns the raw event stream of a game client session into
// a debounced audit log of what the player did.
//
// Quick start:
//
//	l := actionlog.New(host, actionlog.WithProjectiles(true))
//	defer l.Close()
//
//	// from the client's event callbacks:
//	l.MenuClick(ctx, actionlog.MenuClick{Action: actionlog.MenuNPCFirst, Option: "Attack", Target: "Goblin", ID: 42})
//	l.Tick(ctx, actionlog.TickEvent{Number: host.Tick()})
//
// Each emitted action is written as "[Action Logger] {category}: {detail}",
// by default through slog at Info. Identical actions within the debounce
// window (10 ticks) are written once.
//
// A Logger is safe for concurrent use; calls are serialized.
package actionlog
