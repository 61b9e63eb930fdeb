package list_test

import (
	"fmt"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/pkg/types"
)

// Example shows an indexed list keeping indices stable across removals.
func Example() {
	l, err := list.New[string](list.NewConfig(types.Indexed))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer l.Free()

	for _, v := range []string{"a", "b", "c"} {
		l.Insert(v)
	}
	l.Remove("b")

	frag, _ := l.IsFragmented(true)
	_, err = l.Get(1)
	fmt.Println(l.Len(), frag, types.StatusString(err))
	for v := range l.All() {
		fmt.Println(v)
	}
	// Output:
	// 2 true entry not found
	// a
	// c
}

// ExampleList_InsertWithKey demonstrates an associative list.
func ExampleList_InsertWithKey() {
	l, _ := list.New[int](list.NewConfig(types.Associative))
	defer l.Free()

	l.InsertWithKey([]byte("um"), 1)
	l.InsertWithKey([]byte("dois"), 2)

	v, _ := l.GetByKey([]byte("dois"))
	ok, _ := l.KeyExists([]byte("tres"))
	fmt.Println(v, ok)

	err := l.InsertWithKey([]byte("um"), 3)
	fmt.Println(types.StatusString(err))
	// Output:
	// 2 false
	// invalid argument
}

// ExampleList_Pop shows FIFO order from a linked list that inserts at the tail.
func ExampleList_Pop() {
	cfg := list.NewConfig(types.Linked)
	cfg.InsertAtTail = true
	l, _ := list.New[int](cfg)
	defer l.Free()

	for i := 1; i <= 3; i++ {
		l.Push(i)
	}
	for l.Len() > 0 {
		v, _ := l.Pop()
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output:
	// 1 2 3
}

// ExampleEngine_MemoryStats tracks lists with a dedicated engine.
func ExampleEngine_MemoryStats() {
	eng := list.NewEngine(list.InitOptions{TrackAll: true})

	for i := range 3 {
		cfg := list.NewConfig(types.Linked)
		cfg.Tag = fmt.Sprintf("jobs-%d", i)
		cfg.Engine = eng
		l, _ := list.New[int](cfg)
		l.Insert(i)
	}
	fmt.Println(eng.InternalCount())

	eng.FreeAll()
	info, _ := eng.MemoryStats()
	fmt.Println(eng.InternalCount(), info.Used)
	// Output:
	// 3
	// 0 0
}

// ExampleList_Find stops at the first entry the predicate accepts.
func ExampleList_Find() {
	cfg := list.NewConfig(types.Linked)
	cfg.InsertAtTail = true
	l, _ := list.New[int](cfg)
	defer l.Free()
	for _, v := range []int{3, 8, 12, 5} {
		l.Insert(v)
	}

	v, r, _ := l.Find(func(v int, param any) (types.Lookup, error) {
		if v > param.(int) {
			return types.Found, nil
		}
		return types.NotFound, nil
	}, 7)
	fmt.Println(v, r)
	// Output:
	// 8 found
}
