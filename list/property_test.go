package list

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/listkit/pkg/types"
)

// model mirrors an indexed list with holes as nil.
type model []*int

func (m model) live() []int {
	var out []int
	for _, p := range m {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (m model) trim() model {
	for len(m) > 0 && m[len(m)-1] == nil {
		m = m[:len(m)-1]
	}
	return m
}

func TestIndexed_RandomOpsMatchModel(t *testing.T) {
	for _, shift := range []bool{false, true} {
		for seed := uint64(1); seed <= 8; seed++ {
			rng := rand.New(rand.NewPCG(seed, 0x5eed))

			cfg := indexedConfig(shift)
			cfg.GrowthIncrement = 1 + rng.IntN(8)
			cfg.UseFragFlag = true
			l := newList[int](t, cfg)

			var m model
			for step := range 500 {
				switch op := rng.IntN(10); {
				case op < 5:
					v := step
					i, err := l.Insert(v)
					require.NoError(t, err)
					require.Equal(t, len(m), i)
					m = append(m, &v)
				case op < 8 && len(m) > 0:
					i := rng.IntN(len(m))
					err := l.RemoveAt(i)
					if m[i] == nil {
						requireKind(t, err, types.ErrKindNotFound)
						break
					}
					require.NoError(t, err)
					if shift {
						m = slices.Delete(m, i, i+1)
					} else {
						m[i] = nil
						m = m.trim()
					}
				case op < 9:
					v, err := l.Pop()
					if len(m) == 0 {
						requireKind(t, err, types.ErrKindEmptyList)
						break
					}
					require.NoError(t, err)
					require.Equal(t, *m[len(m)-1], v)
					m = m[:len(m)-1].trim()
				default:
					if len(m) == 0 {
						break
					}
					i := rng.IntN(len(m))
					v := -step
					err := l.Replace(i, v)
					if m[i] == nil {
						requireKind(t, err, types.ErrKindNotFound)
						break
					}
					require.NoError(t, err)
					m[i] = &v
				}

				want := m.live()
				require.Equal(t, len(want), l.Len(), "seed %d step %d", seed, step)

				flag, err := l.IsFragmented(false)
				require.NoError(t, err)
				scan, err := l.IsFragmented(true)
				require.NoError(t, err)
				require.Equal(t, scan, flag, "seed %d step %d", seed, step)
				if shift {
					require.False(t, scan)
				}
			}

			assert.Equal(t, m.live(), collect(t, l), "shift=%v seed %d", shift, seed)
		}
	}
}

func TestLinked_RandomOpsMatchModel(t *testing.T) {
	for _, atTail := range []bool{false, true} {
		rng := rand.New(rand.NewPCG(7, 11))
		l := newList[int](t, linkedConfig(atTail))

		var m []int
		for step := range 400 {
			switch op := rng.IntN(8); {
			case op < 4:
				_, err := l.Insert(step)
				require.NoError(t, err)
				if atTail {
					m = append(m, step)
				} else {
					m = slices.Insert(m, 0, step)
				}
			case op < 6 && len(m) > 0:
				i := rng.IntN(len(m))
				require.NoError(t, l.RemoveAt(i))
				m = slices.Delete(m, i, i+1)
			case op < 7 && len(m) > 0:
				v, err := l.Pop()
				require.NoError(t, err)
				require.Equal(t, m[0], v)
				m = m[1:]
			default:
				if len(m) == 0 {
					break
				}
				v := m[rng.IntN(len(m))]
				require.NoError(t, l.Remove(v))
				m = slices.Delete(m, slices.Index(m, v), slices.Index(m, v)+1)
			}
			require.Equal(t, len(m), l.Len())
		}
		assert.Equal(t, m, collect(t, l), "atTail=%v", atTail)
	}
}
