package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/listkit/pkg/types"
)

func linkedConfig(atTail bool) Config {
	cfg := NewConfig(types.Linked)
	cfg.InsertAtTail = atTail
	return cfg
}

func TestLinked_InsertAtHead(t *testing.T) {
	l := newList[string](t, linkedConfig(false))

	for _, v := range []string{"a", "b", "c"} {
		i, err := l.Insert(v)
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	}

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"c", "b", "a"}, collect(t, l))

	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestLinked_InsertAtTail(t *testing.T) {
	l := newList[string](t, linkedConfig(true))

	for want, v := range []string{"a", "b", "c"} {
		i, err := l.Insert(v)
		require.NoError(t, err)
		assert.Equal(t, want, i)
	}

	assert.Equal(t, []string{"a", "b", "c"}, collect(t, l))
	v, err := l.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestLinked_PopOrder(t *testing.T) {
	tests := []struct {
		name   string
		atTail bool
		want   []int
	}{
		{"head insert is LIFO", false, []int{3, 2, 1}},
		{"tail insert is FIFO", true, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList[int](t, linkedConfig(tt.atTail))
			for _, v := range []int{1, 2, 3} {
				require.NoError(t, l.Push(v))
			}

			var got []int
			for l.Len() > 0 {
				v, err := l.Pop()
				require.NoError(t, err)
				got = append(got, v)
			}
			assert.Equal(t, tt.want, got)

			_, err := l.Pop()
			requireKind(t, err, types.ErrKindEmptyList)
		})
	}
}

func TestLinked_PositionalOps(t *testing.T) {
	l := newList[string](t, linkedConfig(true))
	insertAll(t, l, "a", "b", "c", "d")

	require.NoError(t, l.Replace(1, "B"))
	require.NoError(t, l.RemoveAt(2))
	assert.Equal(t, []string{"a", "B", "d"}, collect(t, l))

	require.NoError(t, l.RemoveAt(0))
	assert.Equal(t, []string{"B", "d"}, collect(t, l))

	require.NoError(t, l.RemoveAt(1))
	assert.Equal(t, []string{"B"}, collect(t, l))
	assert.Equal(t, 1, l.Len())
}

func TestLinked_OutOfBounds(t *testing.T) {
	l := newList[int](t, linkedConfig(false))
	insertAll(t, l, 1, 2)

	for _, i := range []int{-1, 2, 50} {
		_, err := l.Get(i)
		requireKind(t, err, types.ErrKindOutOfBounds)
		requireKind(t, l.Replace(i, 0), types.ErrKindOutOfBounds)
		requireKind(t, l.RemoveAt(i), types.ErrKindOutOfBounds)
	}
	assert.Equal(t, []int{2, 1}, collect(t, l))
}

func TestLinked_RemoveByValue(t *testing.T) {
	l := newList[int](t, linkedConfig(true))
	insertAll(t, l, 1, 2, 1, 3)

	require.NoError(t, l.Remove(1))
	assert.Equal(t, []int{2, 1, 3}, collect(t, l))

	require.NoError(t, l.Remove(3))
	assert.Equal(t, []int{2, 1}, collect(t, l))

	requireKind(t, l.Remove(9), types.ErrKindNotFound)
	assert.Equal(t, 2, l.Len())
}

func TestLinked_ReusesFreedEntries(t *testing.T) {
	l := newList[int](t, linkedConfig(false))
	insertAll(t, l, 1, 2, 3)
	capBefore := l.Cap()

	require.NoError(t, l.Remove(2))
	insertAll(t, l, 4)

	assert.Equal(t, capBefore, l.Cap())
	assert.Equal(t, []int{4, 3, 1}, collect(t, l))
}

func TestLinked_MaxEntries(t *testing.T) {
	cfg := linkedConfig(true)
	cfg.MaxEntries = 2
	l := newList[int](t, cfg)
	insertAll(t, l, 1, 2)

	_, err := l.Insert(3)
	requireKind(t, err, types.ErrKindAllocation)
	requireKind(t, l.Push(3), types.ErrKindAllocation)
	assert.Equal(t, []int{1, 2}, collect(t, l))

	_, err = l.Pop()
	require.NoError(t, err)
	require.NoError(t, l.Push(3))
	assert.Equal(t, []int{2, 3}, collect(t, l))
}

func TestLinked_KeyOpsWrongKind(t *testing.T) {
	l := newList[int](t, linkedConfig(false))
	insertAll(t, l, 1)

	err := l.InsertWithKey([]byte("k"), 2)
	requireKind(t, err, types.ErrKindInvalidArgument)
	assert.ErrorIs(t, err, types.ErrWrongKind)

	_, err = l.GetByKey([]byte("k"))
	assert.ErrorIs(t, err, types.ErrWrongKind)
	_, err = l.KeyExists([]byte("k"))
	assert.ErrorIs(t, err, types.ErrWrongKind)
	assert.ErrorIs(t, l.RemoveByKey([]byte("k")), types.ErrWrongKind)

	assert.Equal(t, 1, l.Len())
}

func TestLinked_Footprint(t *testing.T) {
	l := newList[int](t, linkedConfig(false))
	assert.Zero(t, l.Footprint().Used)

	insertAll(t, l, 1, 2, 3)
	fp := l.Footprint()

	assert.Equal(t, types.Linked, fp.Kind)
	assert.Positive(t, fp.Used)
	assert.GreaterOrEqual(t, fp.Total, fp.Used)

	require.NoError(t, l.RemoveAt(0))
	assert.Less(t, l.Footprint().Used, fp.Used)
}
