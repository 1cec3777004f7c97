// Package seen records entities that have already been announced this session.
package seen

// Registry is an append-only identity set. Identities are stable per
// in-session object, never reused wire ids.
type Registry struct {
	ids map[uint64]struct{}
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{ids: make(map[uint64]struct{})}
}

// Announce records id and reports whether this is its first sighting.
func (r *Registry) Announce(id uint64) bool {
	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

// Seen reports whether id has been announced.
func (r *Registry) Seen(id uint64) bool {
	_, ok := r.ids[id]
	return ok
}

// Forget drops id so a later sighting is announced again.
func (r *Registry) Forget(id uint64) {
	delete(r.ids, id)
}

// Len returns the number of recorded identities.
func (r *Registry) Len() int {
	return len(r.ids)
}
