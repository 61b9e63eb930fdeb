package list

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/listkit/pkg/types"
)

// assocEntry is a chain node carrying a key next to its payload. The key is
// a private copy; its length is len(key).
type assocEntry[T any] struct {
	next ref
	key  []byte
	val  T
}

// assocStore is a singly linked chain of key-tagged entries with unique keys.
// usage equals the entry count; keyBytes is the sum of key lengths.
type assocStore[T comparable] struct {
	a        arena[assocEntry[T]]
	head     ref
	usage    int
	keyBytes int
	limit    int
	atTail   bool
}

func newAssocStore[T comparable](cfg *Config) *assocStore[T] {
	return &assocStore[T]{
		a:      newArena[assocEntry[T]](0),
		head:   nilRef,
		limit:  chainLimit(cfg),
		atTail: cfg.InsertAtTail,
	}
}

func (s *assocStore[T]) len() int { return s.usage }

func (s *assocStore[T]) capacity() int { return s.a.reserved() }

func (s *assocStore[T]) insert(T) (int, error) { return 0, types.ErrUnsupported }

func (s *assocStore[T]) push(T) error { return types.ErrUnsupported }

// lookup scans for key, comparing lengths first and then bytes.
func (s *assocStore[T]) lookup(key []byte) (prev, cur ref) {
	prev = nilRef
	for cur = s.head; cur != nilRef; prev, cur = cur, s.a.nodes[cur].next {
		k := s.a.nodes[cur].key
		if len(k) == len(key) && bytes.Equal(k, key) {
			return prev, cur
		}
	}
	return nilRef, nilRef
}

// insertKey rejects empty and duplicate keys, then prepends (or appends
// under insert-at-tail) a new entry.
func (s *assocStore[T]) insertKey(key []byte, v T) error {
	if len(key) == 0 {
		return types.ErrEmptyKey
	}
	if _, cur := s.lookup(key); cur != nilRef {
		return fmt.Errorf("key %q: %w", key, types.ErrDuplicateKey)
	}
	if s.usage >= s.limit {
		return fmt.Errorf("%d entries at limit: %w", s.usage, types.ErrAllocation)
	}

	e := assocEntry[T]{next: nilRef, key: bytes.Clone(key), val: v}
	if !s.atTail || s.head == nilRef {
		e.next = s.head
		s.head = s.a.alloc(e)
	} else {
		last := s.head
		for s.a.nodes[last].next != nilRef {
			last = s.a.nodes[last].next
		}
		r := s.a.alloc(e)
		s.a.nodes[last].next = r
	}
	s.usage++
	s.keyBytes += len(key)
	return nil
}

func (s *assocStore[T]) getKey(key []byte) (T, error) {
	var zero T
	if len(key) == 0 {
		return zero, types.ErrEmptyKey
	}
	_, cur := s.lookup(key)
	if cur == nilRef {
		return zero, fmt.Errorf("key %q: %w", key, types.ErrEntryNotFound)
	}
	return s.a.nodes[cur].val, nil
}

func (s *assocStore[T]) keyExists(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, types.ErrEmptyKey
	}
	_, cur := s.lookup(key)
	return cur != nilRef, nil
}

func (s *assocStore[T]) removeKey(key []byte) error {
	if len(key) == 0 {
		return types.ErrEmptyKey
	}
	prev, cur := s.lookup(key)
	if cur == nilRef {
		return fmt.Errorf("key %q: %w", key, types.ErrEntryNotFound)
	}
	s.unlink(prev, cur)
	return nil
}

// pop unlinks the head entry.
func (s *assocStore[T]) pop() (T, error) {
	var zero T
	if s.head == nilRef {
		return zero, types.ErrEmptyList
	}
	v := s.a.nodes[s.head].val
	s.unlink(nilRef, s.head)
	return v, nil
}

// locate walks to position i and returns it with its predecessor.
func (s *assocStore[T]) locate(i int) (prev, cur ref, err error) {
	if i < 0 || i >= s.usage {
		return nilRef, nilRef, fmt.Errorf("index %d (entries %d): %w", i, s.usage, types.ErrOutOfBounds)
	}
	prev, cur = nilRef, s.head
	for n := 0; n < i; n++ {
		if !s.a.valid(cur) {
			return nilRef, nilRef, fmt.Errorf("chain ends at %d of %d: %w", n, s.usage, types.ErrDamagedList)
		}
		prev, cur = cur, s.a.nodes[cur].next
	}
	if !s.a.valid(cur) {
		return nilRef, nilRef, fmt.Errorf("chain ends at %d of %d: %w", i, s.usage, types.ErrDamagedList)
	}
	return prev, cur, nil
}

func (s *assocStore[T]) get(i int) (T, error) {
	_, cur, err := s.locate(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.a.nodes[cur].val, nil
}

// replace overwrites the payload at position i; the key is kept.
func (s *assocStore[T]) replace(i int, v T) error {
	_, cur, err := s.locate(i)
	if err != nil {
		return err
	}
	s.a.nodes[cur].val = v
	return nil
}

func (s *assocStore[T]) removeAt(i int) error {
	prev, cur, err := s.locate(i)
	if err != nil {
		return err
	}
	s.unlink(prev, cur)
	return nil
}

func (s *assocStore[T]) remove(v T) error {
	prev := nilRef
	for cur := s.head; cur != nilRef; prev, cur = cur, s.a.nodes[cur].next {
		if s.a.nodes[cur].val == v {
			s.unlink(prev, cur)
			return nil
		}
	}
	return types.ErrEntryNotFound
}

func (s *assocStore[T]) unlink(prev, cur ref) {
	e := s.a.nodes[cur]
	if prev == nilRef {
		s.head = e.next
	} else {
		s.a.nodes[prev].next = e.next
	}
	s.a.put(cur, assocEntry[T]{next: nilRef})
	s.usage--
	s.keyBytes -= len(e.key)
}

func (s *assocStore[T]) walk(fn func(pos int, key []byte, v T, live bool) bool) {
	pos := 0
	for cur := s.head; s.a.valid(cur); cur = s.a.nodes[cur].next {
		e := &s.a.nodes[cur]
		if !fn(pos, e.key, e.val, true) {
			return
		}
		pos++
	}
}

func (s *assocStore[T]) start() position { return chainPos{next: s.head} }

func (s *assocStore[T]) advance(p position) (T, position, bool) {
	var zero T
	cp, ok := p.(chainPos)
	if !ok || !s.a.valid(cp.next) {
		return zero, chainPos{next: nilRef}, false
	}
	e := &s.a.nodes[cp.next]
	return e.val, chainPos{next: e.next}, true
}

func (s *assocStore[T]) footprint() types.Usage {
	size := s.a.entrySize()
	keys := uint64(s.keyBytes)
	return types.Usage{
		Total: uint64(s.a.reserved())*size + keys,
		Used:  uint64(s.usage)*size + keys,
	}
}

func (s *assocStore[T]) release() {
	s.a.reset()
	s.head = nilRef
	s.usage = 0
	s.keyBytes = 0
}
