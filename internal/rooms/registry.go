package rooms

import "sync"

// Registry is the single owner of room membership state. All mutation goes
// through Join, Leave and LeaveAll so the symmetric-membership invariant
// (a connection appears in RoomsOf iff it appears in MembersOf) is enforced
// in one place. Safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// room name -> member connection ids
	members map[string]map[string]struct{}

	// connection id -> joined room names
	joined map[string]map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		members: make(map[string]map[string]struct{}),
		joined:  make(map[string]map[string]struct{}),
	}
}

// Join adds connID to room. Joining a room twice is a no-op.
func (r *Registry) Join(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[room]; !ok {
		r.members[room] = make(map[string]struct{})
	}
	r.members[room][connID] = struct{}{}

	if _, ok := r.joined[connID]; !ok {
		r.joined[connID] = make(map[string]struct{})
	}
	r.joined[connID][room] = struct{}{}
}

// Leave removes connID from room. Leaving a room the connection is not in
// is a no-op.
func (r *Registry) Leave(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leave(connID, room)
}

func (r *Registry) leave(connID, room string) {
	if set, ok := r.members[room]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.members, room)
		}
	}
	if set, ok := r.joined[connID]; ok {
		delete(set, room)
		if len(set) == 0 {
			delete(r.joined, connID)
		}
	}
}

// LeaveAll removes connID from every room it belongs to and returns the
// rooms it left. Used on disconnect.
func (r *Registry) LeaveAll(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	left := make([]string, 0, len(r.joined[connID]))
	for room := range r.joined[connID] {
		left = append(left, room)
	}
	for _, room := range left {
		r.leave(connID, room)
	}
	return left
}

// MembersOf returns the connection ids currently in room.
func (r *Registry) MembersOf(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.members[room]))
	for id := range r.members[room] {
		out = append(out, id)
	}
	return out
}

// RoomsOf returns the rooms connID currently belongs to.
func (r *Registry) RoomsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.joined[connID]))
	for room := range r.joined[connID] {
		out = append(out, room)
	}
	return out
}

// MemberCount returns the number of connections in room. Zero means the
// room does not exist.
func (r *Registry) MemberCount(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members[room])
}

// IsMember reports whether connID is currently in room.
func (r *Registry) IsMember(connID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[room][connID]
	return ok
}
