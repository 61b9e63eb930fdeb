package list

import (
	"fmt"

	"github.com/joshuapare/listkit/pkg/types"
)

// FindFunc is a find predicate. It reports types.Found to stop the scan at
// v; a non-nil error aborts the scan.
type FindFunc[T any] func(v T, param any) (types.Lookup, error)

// VisitFunc is called once per live entry by Visit.
type VisitFunc[T any] func(v T, param any)

// Find calls fn with each live entry in storage order until it reports
// types.Found, and returns that entry. Exhausting the list without a match
// returns types.NotFound and a nil error.
func (l *List[T]) Find(fn FindFunc[T], param any) (T, types.Lookup, error) {
	var zero T
	if fn == nil {
		return zero, types.NotFound, l.done("find", fmt.Errorf("nil predicate: %w", types.ErrInvalidArgument))
	}
	if err := l.usable(); err != nil {
		return zero, types.NotFound, l.done("find", err)
	}

	var found T
	var ferr error
	result := types.NotFound
	l.store.walk(func(_ int, _ []byte, v T, live bool) bool {
		if !live {
			return true
		}
		r, err := fn(v, param)
		if err != nil {
			ferr = err
			return false
		}
		if r == types.Found {
			found, result = v, types.Found
			return false
		}
		return true
	})
	if ferr != nil {
		return zero, types.NotFound, l.done("find", fmt.Errorf("predicate: %w", ferr))
	}
	return found, result, l.done("find", nil)
}

// Visit calls fn once for every live entry in storage order.
func (l *List[T]) Visit(fn VisitFunc[T], param any) error {
	if fn == nil {
		return l.done("visit", fmt.Errorf("nil callback: %w", types.ErrInvalidArgument))
	}
	if err := l.usable(); err != nil {
		return l.done("visit", err)
	}
	l.store.walk(func(_ int, _ []byte, v T, live bool) bool {
		if live {
			fn(v, param)
		}
		return true
	})
	return l.done("visit", nil)
}

// Contains reports whether some live entry equals v.
func (l *List[T]) Contains(v T) (bool, error) {
	_, r, err := l.Find(func(e T, _ any) (types.Lookup, error) {
		if e == v {
			return types.Found, nil
		}
		return types.NotFound, nil
	}, nil)
	return r == types.Found, err
}
