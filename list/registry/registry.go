// Package registry keeps track of live lists for memory accounting and bulk
// teardown.
//
// A Registry only holds callbacks: a footprint function that reports what a
// list currently reserves and a release function that drops its storage. It
// never inspects list contents. All methods are safe for concurrent use; the
// lists themselves are not.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/joshuapare/listkit/pkg/types"
)

// FootprintFunc reports the current memory footprint of a member.
type FootprintFunc func() types.Footprint

// ReleaseFunc drops the storage of a member. It is called without the
// registry lock held and must not call back into the registry.
type ReleaseFunc func()

type member struct {
	id        uuid.UUID
	tag       string
	seq       uint64
	footprint FootprintFunc
	release   ReleaseFunc
}

// Entry describes one registered list at the time of a snapshot.
type Entry struct {
	ID        uuid.UUID       `json:"id" msgpack:"id"`
	Tag       string          `json:"tag" msgpack:"tag"`
	Footprint types.Footprint `json:"footprint" msgpack:"footprint"`
}

// Snapshot is the aggregate memory state plus the per-list breakdown, in
// registration order.
type Snapshot struct {
	Memory  types.MemoryInfo `json:"memory" msgpack:"memory"`
	Entries []Entry          `json:"entries" msgpack:"entries"`
}

// Registry is the set of live, tracked lists.
type Registry struct {
	mu      sync.Mutex
	members map[uuid.UUID]*member
	seq     uint64
	closed  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{members: make(map[uuid.UUID]*member)}
}

// Add registers a list and returns its identifier. After Close, Add returns
// uuid.Nil and registers nothing.
func (r *Registry) Add(tag string, fp FootprintFunc, release ReleaseFunc) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return uuid.Nil
	}
	r.seq++
	id := uuid.New()
	r.members[id] = &member{
		id:        id,
		tag:       tag,
		seq:       r.seq,
		footprint: fp,
		release:   release,
	}
	return id
}

// Remove deregisters id. It reports whether id was registered.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[id]
	return ok
}

// Len returns the number of registered lists.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// MemoryStats sums the footprints of every registered list.
// It is recomputed on each call: O(lists × per-list footprint cost).
func (r *Registry) MemoryStats() types.MemoryInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	var info types.MemoryInfo
	for _, m := range r.members {
		info.Add(m.footprint())
	}
	return info
}

// Snapshot returns MemoryStats together with the per-list breakdown.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	ms := r.sortedLocked()
	snap := Snapshot{Entries: make([]Entry, 0, len(ms))}
	for _, m := range ms {
		fp := m.footprint()
		snap.Memory.Add(fp)
		snap.Entries = append(snap.Entries, Entry{ID: m.id, Tag: m.tag, Footprint: fp})
	}
	return snap
}

// FreeAll deregisters every list and releases its storage. It returns the
// number of lists released.
func (r *Registry) FreeAll() int {
	r.mu.Lock()
	ms := r.sortedLocked()
	clear(r.members)
	r.mu.Unlock()

	for _, m := range ms {
		if m.release != nil {
			m.release()
		}
	}
	return len(ms)
}

// Close empties the registry without releasing anything and rejects further
// registrations. Lists registered before Close keep working untracked.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.members)
	r.closed = true
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Registry) sortedLocked() []*member {
	ms := make([]*member, 0, len(r.members))
	for _, m := range r.members {
		ms = append(ms, m)
	}
	slices.SortFunc(ms, func(a, b *member) int { return cmp.Compare(a.seq, b.seq) })
	return ms
}
