// Package list provides a generic in-memory container engine with three
// interchangeable storage strategies behind one handle type.
//
// # Overview
//
// A List[T] is created with a Config that selects exactly one store kind.
// Every list supports the same operation set; the store kind only changes
// the cost of each operation:
//
//	Operation     Indexed                Linked                Associative
//	Insert/Push   O(1) amortized         O(1) head, O(N) tail  InsertWithKey, O(N)
//	Get(i)        O(1)                   O(N)                  O(N)
//	GetByKey      n/a                    n/a                   O(N)
//	RemoveAt(i)   O(1) hole, O(N) shift  O(N)                  O(N)
//	Remove(v)     O(N)                   O(N)                  O(N)
//	Pop           O(1) highest slot      O(1) head             O(1) head
//
// # Store Kinds
//
// Indexed: a growable slot array. Without ShiftOnRemove a removed slot
// becomes a hole: later indices stay stable and the list reports itself
// fragmented. With ShiftOnRemove later slots move down and the list is never
// fragmented. IsFragmented reads a maintained flag (UseFragFlag) or scans
// every slot; both always agree.
//
// Linked: a singly linked chain. Insert prepends unless InsertAtTail is set.
// Pop always takes the head, so InsertAtTail gives FIFO order and the
// default gives LIFO order.
//
// Associative: a singly linked chain of entries tagged with a byte key.
// Keys are compared by length and then byte by byte; duplicate and empty
// keys are rejected.
//
// # Usage Example
//
//	l, err := list.New[string](list.NewConfig(types.Indexed))
//	if err != nil {
//	    return err
//	}
//	defer l.Free()
//
//	l.Insert("a")
//	l.Insert("b")
//	l.Insert("c")
//	l.Remove("b") // slot 1 becomes a hole
//
//	for v := range l.All() {
//	    fmt.Println(v) // a, c
//	}
//
// Iteration can also be driven explicitly with a Cursor:
//
//	var c list.Cursor[string]
//	l.SeekStart(&c)
//	for {
//	    v, err := l.SeekNext(&c)
//	    if err != nil {
//	        break // types.ErrEntryNotFound when exhausted
//	    }
//	    use(v)
//	}
//	l.SeekEnd(&c)
//
// # Errors
//
// Every operation reports its status as an error: nil on success, otherwise
// an error wrapping one of the pkg/types sentinels. Use errors.Is against a
// sentinel or types.KindOf to branch on the category. A failed operation
// leaves the list exactly as it was.
//
// # Engine, Tracking and Tracing
//
// An Engine holds the optional registry of live lists and the debug trace
// stream. The process-wide engine is configured with Init:
//
//	list.Init(list.InitOptions{TrackAll: true, Debug: true})
//	defer list.Shutdown()
//
//	info, _ := list.MemoryStats() // per-kind total/used bytes
//	list.FreeAll()                // free whatever is still tracked
//
// Tests and embedders that need isolation use NewEngine and set
// Config.Engine.
//
// # Thread Safety
//
// Lists are not thread-safe; callers serialise access to a list. Engine and
// registry operations are safe for concurrent use.
package list
