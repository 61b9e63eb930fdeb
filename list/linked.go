package list

import (
	"fmt"

	"github.com/joshuapare/listkit/pkg/types"
)

// linkedEntry is a chain node wrapping one payload.
type linkedEntry[T any] struct {
	next ref
	val  T
}

// linkedStore is a singly linked chain. usage always equals the number of
// entries reachable from head.
type linkedStore[T comparable] struct {
	a      arena[linkedEntry[T]]
	head   ref
	usage  int
	limit  int
	atTail bool
}

func newLinkedStore[T comparable](cfg *Config) *linkedStore[T] {
	return &linkedStore[T]{
		a:      newArena[linkedEntry[T]](cfg.InitialSize),
		head:   nilRef,
		limit:  chainLimit(cfg),
		atTail: cfg.InsertAtTail,
	}
}

func (s *linkedStore[T]) len() int { return s.usage }

func (s *linkedStore[T]) capacity() int { return s.a.reserved() }

// insert links v at the head, or walks to the end under insert-at-tail.
// It returns the position v now occupies.
func (s *linkedStore[T]) insert(v T) (int, error) {
	if s.usage >= s.limit {
		return 0, fmt.Errorf("%d entries at limit: %w", s.usage, types.ErrAllocation)
	}
	if !s.atTail || s.head == nilRef {
		r := s.a.alloc(linkedEntry[T]{next: s.head, val: v})
		s.head = r
		s.usage++
		return 0, nil
	}

	last := s.head
	for s.a.nodes[last].next != nilRef {
		last = s.a.nodes[last].next
	}
	r := s.a.alloc(linkedEntry[T]{next: nilRef, val: v})
	s.a.nodes[last].next = r
	s.usage++
	return s.usage - 1, nil
}

func (s *linkedStore[T]) push(v T) error {
	_, err := s.insert(v)
	return err
}

// pop unlinks the head entry regardless of the insert policy.
func (s *linkedStore[T]) pop() (T, error) {
	var zero T
	if s.head == nilRef {
		return zero, types.ErrEmptyList
	}
	v := s.a.nodes[s.head].val
	s.unlink(nilRef, s.head)
	return v, nil
}

// locate walks to position i and returns it with its predecessor.
func (s *linkedStore[T]) locate(i int) (prev, cur ref, err error) {
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

func (s *linkedStore[T]) get(i int) (T, error) {
	_, cur, err := s.locate(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.a.nodes[cur].val, nil
}

func (s *linkedStore[T]) replace(i int, v T) error {
	_, cur, err := s.locate(i)
	if err != nil {
		return err
	}
	s.a.nodes[cur].val = v
	return nil
}

func (s *linkedStore[T]) removeAt(i int) error {
	prev, cur, err := s.locate(i)
	if err != nil {
		return err
	}
	s.unlink(prev, cur)
	return nil
}

func (s *linkedStore[T]) remove(v T) error {
	prev := nilRef
	for cur := s.head; cur != nilRef; prev, cur = cur, s.a.nodes[cur].next {
		if s.a.nodes[cur].val == v {
			s.unlink(prev, cur)
			return nil
		}
	}
	return types.ErrEntryNotFound
}

// unlink relinks prev to the successor of cur (or moves head) and recycles cur.
func (s *linkedStore[T]) unlink(prev, cur ref) {
	next := s.a.nodes[cur].next
	if prev == nilRef {
		s.head = next
	} else {
		s.a.nodes[prev].next = next
	}
	s.a.put(cur, linkedEntry[T]{next: nilRef})
	s.usage--
}

func (s *linkedStore[T]) walk(fn func(pos int, key []byte, v T, live bool) bool) {
	pos := 0
	for cur := s.head; s.a.valid(cur); cur = s.a.nodes[cur].next {
		if !fn(pos, nil, s.a.nodes[cur].val, true) {
			return
		}
		pos++
	}
}

func (s *linkedStore[T]) start() position { return chainPos{next: s.head} }

func (s *linkedStore[T]) advance(p position) (T, position, bool) {
	var zero T
	cp, ok := p.(chainPos)
	if !ok || !s.a.valid(cp.next) {
		return zero, chainPos{next: nilRef}, false
	}
	e := s.a.nodes[cp.next]
	return e.val, chainPos{next: e.next}, true
}

func (s *linkedStore[T]) footprint() types.Usage {
	size := s.a.entrySize()
	return types.Usage{
		Total: uint64(s.a.reserved()) * size,
		Used:  uint64(s.usage) * size,
	}
}

func (s *linkedStore[T]) release() {
	s.a.reset()
	s.head = nilRef
	s.usage = 0
}
