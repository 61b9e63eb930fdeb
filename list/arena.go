package list

import (
	"unsafe"

	"github.com/joshuapare/listkit/pkg/types"
)

// ref addresses an entry in an arena. nilRef terminates a chain.
type ref = int32

const nilRef ref = -1

// arena owns the entries of one chain. Entries are addressed by index so a
// chain never holds pointers into its own storage; released indices are
// recycled through a free list.
type arena[E any] struct {
	nodes []E
	free  []ref
}

func newArena[E any](hint int) arena[E] {
	return arena[E]{nodes: make([]E, 0, hint)}
}

// alloc stores e and returns its index. Callers check capacity limits first.
func (a *arena[E]) alloc(e E) ref {
	if n := len(a.free); n > 0 {
		r := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[r] = e
		return r
	}
	a.nodes = append(a.nodes, e)
	return ref(len(a.nodes) - 1)
}

// put returns r to the free list after overwriting it with blank.
func (a *arena[E]) put(r ref, blank E) {
	a.nodes[r] = blank
	a.free = append(a.free, r)
}

func (a *arena[E]) valid(r ref) bool {
	return r >= 0 && int(r) < len(a.nodes)
}

// reserved is the number of entries the arena holds storage for.
func (a *arena[E]) reserved() int { return cap(a.nodes) }

func (a *arena[E]) entrySize() uint64 {
	var e E
	return uint64(unsafe.Sizeof(e))
}

func (a *arena[E]) reset() {
	*a = arena[E]{}
}

// chainLimit resolves the entry cap of a chain store.
func chainLimit(cfg *Config) int {
	if cfg.MaxEntries > 0 && cfg.MaxEntries < types.MaxChainEntries {
		return cfg.MaxEntries
	}
	return types.MaxChainEntries
}
