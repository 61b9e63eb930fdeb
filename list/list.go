package list

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/joshuapare/listkit/internal/tagname"
	"github.com/joshuapare/listkit/list/registry"
	"github.com/joshuapare/listkit/pkg/types"
)

// store is the operation set shared by the three backing strategies.
type store[T comparable] interface {
	len() int
	capacity() int
	insert(v T) (int, error)
	push(v T) error
	pop() (T, error)
	get(i int) (T, error)
	replace(i int, v T) error
	removeAt(i int) error
	remove(v T) error
	walk(fn func(pos int, key []byte, v T, live bool) bool)
	start() position
	advance(p position) (T, position, bool)
	footprint() types.Usage
	release()
}

// List is a container handle. Its store kind is fixed at creation. Payloads
// are stored and compared by value; the list never dereferences or frees
// them.
//
// A List is not safe for concurrent use; callers serialise access.
type List[T comparable] struct {
	kind         types.StoreKind
	tag          string
	insertAtTail bool
	useFragFlag  bool

	store store[T]
	idx   *indexStore[T] // set for types.Indexed
	assoc *assocStore[T] // set for types.Associative

	seeking int
	freed   bool

	eng *Engine
	reg *registry.Registry
	id  uuid.UUID
}

// New creates an empty list configured by cfg and registers it with the
// engine when tracking is enabled.
func New[T comparable](cfg Config) (*List[T], error) {
	eng := cfg.Engine
	if eng == nil {
		eng = std
	}
	tag := tagname.Normalize(cfg.Tag)
	if err := cfg.validate(); err != nil {
		eng.trace("create", tag, cfg.Kind, err)
		return nil, err
	}

	l := &List[T]{
		kind:         cfg.Kind,
		tag:          tag,
		insertAtTail: cfg.InsertAtTail,
		useFragFlag:  cfg.UseFragFlag,
		eng:          eng,
	}
	switch cfg.Kind {
	case types.Indexed:
		s, err := newIndexStore[T](&cfg)
		if err != nil {
			err = fmt.Errorf("create: %w", err)
			eng.trace("create", tag, cfg.Kind, err)
			return nil, err
		}
		l.idx, l.store = s, s
	case types.Linked:
		l.store = newLinkedStore[T](&cfg)
	case types.Associative:
		s := newAssocStore[T](&cfg)
		l.assoc, l.store = s, s
	}

	if reg := eng.registry(); reg != nil {
		l.id = reg.Add(l.tag, l.Footprint, l.release)
		if l.id != uuid.Nil {
			l.reg = reg
		}
	}
	eng.trace("create", l.tag, l.kind, nil)
	return l, nil
}

// Kind returns the store kind.
func (l *List[T]) Kind() types.StoreKind { return l.kind }

// Tag returns the normalised diagnostic tag.
func (l *List[T]) Tag() string { return l.tag }

// ID returns the registry identifier, or uuid.Nil for an untracked list.
func (l *List[T]) ID() uuid.UUID { return l.id }

// Len returns the number of live entries.
func (l *List[T]) Len() int {
	if l.freed {
		return 0
	}
	return l.store.len()
}

// EntryCount is Len with a status, failing only on a freed list.
func (l *List[T]) EntryCount() (int, error) {
	if err := l.usable(); err != nil {
		return 0, l.done("entry_count", err)
	}
	return l.store.len(), nil
}

// Cap returns the number of entries the list holds storage for: slots for
// an indexed list, reserved chain entries otherwise.
func (l *List[T]) Cap() int {
	if l.freed {
		return 0
	}
	return l.store.capacity()
}

// Footprint returns the memory currently accounted to the list.
func (l *List[T]) Footprint() types.Footprint {
	fp := types.Footprint{Kind: l.kind}
	if !l.freed {
		fp.Usage = l.store.footprint()
	}
	return fp
}

// Insert adds v according to the list's insert policy and returns the
// position it occupies: the slot index for an indexed list, 0 for a head
// insert, Len()-1 for a tail insert. Associative lists require InsertWithKey.
func (l *List[T]) Insert(v T) (int, error) {
	if err := l.mutable("insert"); err != nil {
		return 0, err
	}
	i, err := l.store.insert(v)
	return i, l.done("insert", err)
}

// InsertWithKey adds v under key to an associative list. Empty and
// duplicate keys are rejected. The key is copied.
func (l *List[T]) InsertWithKey(key []byte, v T) error {
	if err := l.keyed("insert_with_key"); err != nil {
		return err
	}
	return l.done("insert_with_key", l.assoc.insertKey(key, v))
}

// Push adds v following the insert policy. On an indexed list it appends.
func (l *List[T]) Push(v T) error {
	if err := l.mutable("push"); err != nil {
		return err
	}
	return l.done("push", l.store.push(v))
}

// Pop removes and returns one entry: the highest used slot of an indexed
// list, the head entry of a chain. With InsertAtTail a chain therefore pops
// in FIFO order, otherwise in LIFO order.
func (l *List[T]) Pop() (T, error) {
	if err := l.mutable("pop"); err != nil {
		var zero T
		return zero, err
	}
	v, err := l.store.pop()
	return v, l.done("pop", err)
}

// Get returns the payload at position i.
func (l *List[T]) Get(i int) (T, error) {
	if err := l.usable(); err != nil {
		var zero T
		return zero, l.done("get_by_index", err)
	}
	v, err := l.store.get(i)
	return v, l.done("get_by_index", err)
}

// GetByKey returns the payload stored under key.
func (l *List[T]) GetByKey(key []byte) (T, error) {
	if err := l.keyed("get_by_key"); err != nil {
		var zero T
		return zero, err
	}
	v, err := l.assoc.getKey(key)
	return v, l.done("get_by_key", err)
}

// KeyExists reports whether key is present.
func (l *List[T]) KeyExists(key []byte) (bool, error) {
	if err := l.keyed("key_exists"); err != nil {
		return false, err
	}
	ok, err := l.assoc.keyExists(key)
	return ok, l.done("key_exists", err)
}

// Replace overwrites the payload at position i in place.
func (l *List[T]) Replace(i int, v T) error {
	if err := l.mutable("replace_by_index"); err != nil {
		return err
	}
	return l.done("replace_by_index", l.store.replace(i, v))
}

// RemoveAt removes the entry at position i. On an indexed list without
// ShiftOnRemove the slot becomes a hole and later indices are unchanged.
func (l *List[T]) RemoveAt(i int) error {
	if err := l.mutable("remove_by_index"); err != nil {
		return err
	}
	return l.done("remove_by_index", l.store.removeAt(i))
}

// Remove removes the first entry whose payload equals v.
func (l *List[T]) Remove(v T) error {
	if err := l.mutable("remove_by_ref"); err != nil {
		return err
	}
	return l.done("remove_by_ref", l.store.remove(v))
}

// RemoveByKey removes the entry stored under key.
func (l *List[T]) RemoveByKey(key []byte) error {
	if err := l.keyed("remove_by_key"); err != nil {
		return err
	}
	return l.done("remove_by_key", l.assoc.removeKey(key))
}

// IsFragmented reports whether an indexed list has a hole below its highest
// used index. With UseFragFlag and !forceScan it reads the maintained flag
// in O(1); otherwise it scans every slot.
func (l *List[T]) IsFragmented(forceScan bool) (bool, error) {
	if err := l.usable(); err != nil {
		return false, l.done("is_fragmented", err)
	}
	if l.idx == nil {
		return false, l.done("is_fragmented", types.ErrUnsupported)
	}
	if l.useFragFlag && !forceScan {
		return l.idx.fragmented, l.done("is_fragmented", nil)
	}
	return l.idx.scanFragmented(), l.done("is_fragmented", nil)
}

// Entry is one position of a list as reported by Entries. Key is set for
// associative lists only; Hole marks an indexed slot removed without
// compaction.
type Entry[T any] struct {
	Pos   int
	Key   []byte
	Value T
	Hole  bool
}

// Entries reports every position in storage order, including holes of an
// indexed list. Keys are copies.
func (l *List[T]) Entries(fn func(Entry[T]) bool) error {
	if err := l.usable(); err != nil {
		return l.done("dump", err)
	}
	l.store.walk(func(pos int, key []byte, v T, live bool) bool {
		return fn(Entry[T]{Pos: pos, Key: bytes.Clone(key), Value: v, Hole: !live})
	})
	return nil
}

// Free releases the list's storage and deregisters it. The list is unusable
// afterwards.
func (l *List[T]) Free() error {
	if l.freed {
		return l.done("free", types.ErrFreed)
	}
	if l.reg != nil {
		l.reg.Remove(l.id)
		l.reg = nil
	}
	l.release()
	return l.done("free", nil)
}

// release drops storage without touching the registry.
func (l *List[T]) release() {
	l.store.release()
	l.freed = true
}

func (l *List[T]) usable() error {
	if l.freed {
		return types.ErrFreed
	}
	return nil
}

// mutable guards operations that change the list.
func (l *List[T]) mutable(op string) error {
	if err := l.usable(); err != nil {
		return l.done(op, err)
	}
	if l.seeking > 0 {
		l.eng.trace(op+": mutation with open cursor", l.tag, l.kind, nil)
	}
	return nil
}

// keyed guards operations that need an associative store.
func (l *List[T]) keyed(op string) error {
	if err := l.usable(); err != nil {
		return l.done(op, err)
	}
	if l.assoc == nil {
		return l.done(op, fmt.Errorf("%s list: %w", l.kind, types.ErrWrongKind))
	}
	return nil
}

// done traces the outcome of op and attaches the list context to err.
func (l *List[T]) done(op string, err error) error {
	if err != nil {
		err = fmt.Errorf("list %q: %s: %w", l.tag, op, err)
	}
	l.eng.trace(op, l.tag, l.kind, err)
	return err
}
