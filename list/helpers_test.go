package list

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/listkit/pkg/types"
)

// newList creates a list from cfg and frees it when the test ends.
func newList[T comparable](t *testing.T, cfg Config) *List[T] {
	t.Helper()
	l, err := New[T](cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Free() })
	return l
}

// insertAll inserts vs in order.
func insertAll[T comparable](t *testing.T, l *List[T], vs ...T) {
	t.Helper()
	for _, v := range vs {
		_, err := l.Insert(v)
		require.NoError(t, err, "Insert(%v)", v)
	}
}

// collect drains a fresh cursor over l.
func collect[T comparable](t *testing.T, l *List[T]) []T {
	t.Helper()
	var c Cursor[T]
	require.NoError(t, l.SeekStart(&c))
	var out []T
	for {
		v, err := l.SeekNext(&c)
		if err != nil {
			require.ErrorIs(t, err, types.ErrEntryNotFound)
			break
		}
		out = append(out, v)
	}
	require.NoError(t, l.SeekEnd(&c))
	return out
}

// requireKind asserts that err carries kind.
func requireKind(t *testing.T, err error, kind types.ErrKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, types.KindOf(err), "error %v", err)
}

func indexedConfig(shift bool) Config {
	cfg := NewConfig(types.Indexed)
	cfg.ShiftOnRemove = shift
	return cfg
}
