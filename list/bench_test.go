package list

import (
	"strconv"
	"testing"

	"github.com/joshuapare/listkit/pkg/types"
)

func benchList(b *testing.B, cfg Config, n int) *List[int] {
	b.Helper()
	l, err := New[int](cfg)
	if err != nil {
		b.Fatal(err)
	}
	for i := range n {
		if cfg.Kind == types.Associative {
			err = l.InsertWithKey([]byte(strconv.Itoa(i)), i)
		} else {
			_, err = l.Insert(i)
		}
		if err != nil {
			b.Fatal(err)
		}
	}
	return l
}

func BenchmarkInsert(b *testing.B) {
	for _, k := range []types.StoreKind{types.Indexed, types.Linked} {
		b.Run(k.String(), func(b *testing.B) {
			b.ReportAllocs()
			l := benchList(b, NewConfig(k), 0)
			defer l.Free()
			for i := range b.N {
				if _, err := l.Insert(i); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkInsertWithKey(b *testing.B) {
	keys := make([][]byte, 1024)
	for i := range keys {
		keys[i] = []byte(strconv.Itoa(i))
	}
	b.ReportAllocs()
	for b.Loop() {
		l := benchList(b, NewConfig(types.Associative), 0)
		for i, k := range keys {
			if err := l.InsertWithKey(k, i); err != nil {
				b.Fatal(err)
			}
		}
		l.Free()
	}
}

func BenchmarkGet(b *testing.B) {
	const n = 1000
	for _, k := range types.StoreKinds {
		b.Run(k.String(), func(b *testing.B) {
			l := benchList(b, NewConfig(k), n)
			defer l.Free()
			b.ResetTimer()
			for i := range b.N {
				if _, err := l.Get(i % n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGetByKey(b *testing.B) {
	const n = 1000
	l := benchList(b, NewConfig(types.Associative), n)
	defer l.Free()
	key := []byte(strconv.Itoa(n / 2))
	b.ResetTimer()
	for b.Loop() {
		if _, err := l.GetByKey(key); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSeek(b *testing.B) {
	const n = 1000
	for _, k := range types.StoreKinds {
		b.Run(k.String(), func(b *testing.B) {
			l := benchList(b, NewConfig(k), n)
			defer l.Free()
			b.ResetTimer()
			for b.Loop() {
				for range l.All() {
				}
			}
		})
	}
}

func BenchmarkIsFragmented(b *testing.B) {
	for _, flag := range []bool{false, true} {
		b.Run("flag="+strconv.FormatBool(flag), func(b *testing.B) {
			cfg := NewConfig(types.Indexed)
			cfg.UseFragFlag = flag
			l := benchList(b, cfg, 4096)
			defer l.Free()
			if err := l.RemoveAt(0); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for b.Loop() {
				if _, err := l.IsFragmented(false); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
