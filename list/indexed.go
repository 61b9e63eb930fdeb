package list

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/listkit/pkg/types"
)

// slot is one cell of the indexed store. A slot below top that is not live
// is a hole.
type slot[T any] struct {
	val  T
	live bool
}

// indexStore is a growable slot array.
//
// Invariants:
//   - len(slots) is the capacity; top <= capacity.
//   - slots[top-1] is live whenever top > 0 (trailing holes are trimmed).
//   - holes counts the non-live slots below top; usage + holes == top.
//   - fragmented == (holes > 0); a store with shift never has holes.
type indexStore[T comparable] struct {
	slots      []slot[T]
	top        int
	usage      int
	holes      int
	growth     int
	limit      int
	shift      bool
	fragmented bool
}

func newIndexStore[T comparable](cfg *Config) (*indexStore[T], error) {
	s := &indexStore[T]{
		growth: cfg.GrowthIncrement,
		limit:  types.MaxIndexedSlots,
		shift:  cfg.ShiftOnRemove,
	}
	if cfg.MaxEntries > 0 {
		s.limit = cfg.MaxEntries
	}
	if err := s.grow(); err != nil {
		return nil, err
	}
	return s, nil
}

// grow extends capacity by the growth increment, clamped to the limit.
func (s *indexStore[T]) grow() error {
	capacity := len(s.slots)
	if capacity >= s.limit {
		return fmt.Errorf("capacity %d at limit: %w", capacity, types.ErrAllocation)
	}
	next := capacity + s.growth
	if next > s.limit || next < capacity {
		next = s.limit
	}
	slots := make([]slot[T], next)
	copy(slots, s.slots[:s.top])
	s.slots = slots
	return nil
}

func (s *indexStore[T]) len() int { return s.usage }

func (s *indexStore[T]) capacity() int { return len(s.slots) }

func (s *indexStore[T]) insert(v T) (int, error) {
	if s.top == len(s.slots) {
		if err := s.grow(); err != nil {
			return 0, err
		}
	}
	i := s.top
	s.slots[i] = slot[T]{val: v, live: true}
	s.top++
	s.usage++
	return i, nil
}

func (s *indexStore[T]) push(v T) error {
	_, err := s.insert(v)
	return err
}

// pop removes the entry at the highest used index.
func (s *indexStore[T]) pop() (T, error) {
	var zero T
	if s.usage == 0 {
		return zero, types.ErrEmptyList
	}
	i := s.top - 1
	if !s.slots[i].live {
		return zero, fmt.Errorf("slot %d below top is a hole: %w", i, types.ErrDamagedList)
	}
	v := s.slots[i].val
	s.removeSlot(i)
	return v, nil
}

// check validates i for access: beyond capacity is out of bounds, a hole or
// an unused slot is not found.
func (s *indexStore[T]) check(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("index %d (capacity %d): %w", i, len(s.slots), types.ErrOutOfBounds)
	}
	if !s.slots[i].live {
		return fmt.Errorf("index %d: %w", i, types.ErrEntryNotFound)
	}
	return nil
}

func (s *indexStore[T]) get(i int) (T, error) {
	if err := s.check(i); err != nil {
		var zero T
		return zero, err
	}
	return s.slots[i].val, nil
}

func (s *indexStore[T]) replace(i int, v T) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.slots[i].val = v
	return nil
}

func (s *indexStore[T]) removeAt(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.removeSlot(i)
	return nil
}

func (s *indexStore[T]) remove(v T) error {
	for i := 0; i < s.top; i++ {
		if s.slots[i].live && s.slots[i].val == v {
			s.removeSlot(i)
			return nil
		}
	}
	return types.ErrEntryNotFound
}

// removeSlot drops the live slot i under the configured discipline.
func (s *indexStore[T]) removeSlot(i int) {
	s.usage--
	if s.shift {
		copy(s.slots[i:s.top-1], s.slots[i+1:s.top])
		s.top--
		s.slots[s.top] = slot[T]{}
		return
	}

	s.slots[i] = slot[T]{}
	if i == s.top-1 {
		s.top--
		for s.top > 0 && !s.slots[s.top-1].live {
			s.top--
			s.holes--
		}
	} else {
		s.holes++
	}
	s.fragmented = s.holes > 0
}

// scanFragmented walks every slot and reports whether a hole precedes a
// live slot. It is the ground truth for the fragmented flag.
func (s *indexStore[T]) scanFragmented() bool {
	hole := false
	for i := range s.slots {
		if !s.slots[i].live {
			hole = true
		} else if hole {
			return true
		}
	}
	return false
}

func (s *indexStore[T]) walk(fn func(pos int, key []byte, v T, live bool) bool) {
	for i := 0; i < s.top; i++ {
		if !fn(i, nil, s.slots[i].val, s.slots[i].live) {
			return
		}
	}
}

func (s *indexStore[T]) start() position { return slotPos{} }

func (s *indexStore[T]) advance(p position) (T, position, bool) {
	var zero T
	sp, ok := p.(slotPos)
	if !ok {
		return zero, p, false
	}
	for i := sp.next; i < s.top && i < len(s.slots); i++ {
		if s.slots[i].live {
			return s.slots[i].val, slotPos{next: i + 1}, true
		}
	}
	return zero, slotPos{next: s.top}, false
}

func (s *indexStore[T]) footprint() types.Usage {
	size := uint64(unsafe.Sizeof(slot[T]{}))
	return types.Usage{
		Total: uint64(len(s.slots)) * size,
		Used:  uint64(s.usage) * size,
	}
}

func (s *indexStore[T]) release() {
	*s = indexStore[T]{growth: s.growth, limit: s.limit, shift: s.shift}
}
