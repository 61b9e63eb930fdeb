package list

import (
	"fmt"
	"iter"

	"github.com/joshuapare/listkit/pkg/types"
)

// position is the store-specific resumption state of a cursor.
type position interface {
	storeKind() types.StoreKind
}

// slotPos resumes an indexed store at slot next.
type slotPos struct{ next int }

func (slotPos) storeKind() types.StoreKind { return types.Indexed }

// chainPos resumes a linked or associative store at entry next.
type chainPos struct{ next ref }

func (chainPos) storeKind() types.StoreKind { return types.Linked | types.Associative }

type cursorState uint8

const (
	cursorIdle cursorState = iota // not started, or ended
	cursorBefore
	cursorPositioned
	cursorExhausted
)

// Cursor is a resumable forward position over the live entries of one list.
// The zero value is ready for SeekStart. A cursor is only valid for the list
// that started it; mutating the list while a cursor is open leaves the
// cursor's view of the list undefined.
type Cursor[T comparable] struct {
	owner *List[T]
	state cursorState
	pos   position
}

// Active reports whether the cursor was started and not yet ended.
func (c *Cursor[T]) Active() bool {
	return c.state != cursorIdle
}

// SeekStart resets c to the position before the first entry of l.
func (l *List[T]) SeekStart(c *Cursor[T]) error {
	if c == nil {
		return l.done("seek_start", fmt.Errorf("nil cursor: %w", types.ErrInvalidArgument))
	}
	if err := l.usable(); err != nil {
		return l.done("seek_start", err)
	}
	if c.state != cursorIdle && c.owner != nil && c.owner != l {
		return l.done("seek_start", types.ErrForeignCursor)
	}
	if c.state == cursorIdle {
		l.seeking++
	}
	c.owner = l
	c.state = cursorBefore
	c.pos = l.store.start()
	return l.done("seek_start", nil)
}

// SeekNext advances c to the next live entry and returns its payload.
// Holes of an indexed list are skipped. Once the list is exhausted it fails
// with types.ErrEntryNotFound.
func (l *List[T]) SeekNext(c *Cursor[T]) (T, error) {
	var zero T
	if err := l.ownCursor(c); err != nil {
		return zero, l.done("seek_next", err)
	}
	if c.state == cursorExhausted {
		return zero, l.done("seek_next", types.ErrEntryNotFound)
	}
	v, next, ok := l.store.advance(c.pos)
	c.pos = next
	if !ok {
		c.state = cursorExhausted
		return zero, l.done("seek_next", types.ErrEntryNotFound)
	}
	c.state = cursorPositioned
	return v, l.done("seek_next", nil)
}

// SeekEnd discards c. The list is not modified.
func (l *List[T]) SeekEnd(c *Cursor[T]) error {
	if err := l.ownCursor(c); err != nil {
		return l.done("seek_end", err)
	}
	l.seeking--
	*c = Cursor[T]{}
	return l.done("seek_end", nil)
}

func (l *List[T]) ownCursor(c *Cursor[T]) error {
	switch {
	case c == nil:
		return fmt.Errorf("nil cursor: %w", types.ErrInvalidArgument)
	case c.state == cursorIdle:
		return fmt.Errorf("cursor not started: %w", types.ErrInvalidArgument)
	case c.owner != l:
		return types.ErrForeignCursor
	case c.pos == nil || c.pos.storeKind()&l.kind == 0:
		return fmt.Errorf("cursor position for %s list: %w", l.kind, types.ErrDamagedList)
	}
	return l.usable()
}

// Seeking reports whether any cursor is open on l.
func (l *List[T]) Seeking() bool { return l.seeking > 0 }

// All returns an iterator over the live entries of l in storage order.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		var c Cursor[T]
		if l.SeekStart(&c) != nil {
			return
		}
		defer l.SeekEnd(&c)
		for {
			v, err := l.SeekNext(&c)
			if err != nil || !yield(v) {
				return
			}
		}
	}
}
