package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/list/printer"
	"github.com/joshuapare/listkit/pkg/types"
)

var (
	selftestRun []int
)

func init() {
	cmd := newSelftestCmd()
	cmd.Flags().IntSliceVar(&selftestRun, "run", nil, "Run only the given scenario numbers")
	rootCmd.AddCommand(cmd)
}

func newSelftestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the scripted list scenarios",
		Long: `The selftest command runs scripted scenarios against every store kind
and reports each as OK or NOT OK. Every operation prints its status; with
--verbose the lists are dumped after each step.

Example:
  listctl selftest
  listctl selftest --run 1,3 --verbose
  listctl selftest --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	return cmd
}

type scenario struct {
	title string
	run   func(s *session)
}

var scenarios = []scenario{
	{"indexed list without shifts: insert, remove by ref, dump", scenarioIndexedHoles},
	{"indexed list larger than one growth increment: insert, then pop until empty", scenarioIndexedGrowth},
	{"indexed list with shifts: removal keeps the list compact", scenarioIndexedShift},
	{"indexed list with fragmentation flag: flag and scan agree", scenarioFragFlag},
	{"linked list: insert, push and remove at head, middle and tail", scenarioLinked},
	{"engine registry: memory accounting across create, free and free-all", scenarioMemory},
	{"associative list: keyed insert, lookup and removal", scenarioAssoc},
	{"replace by index on every store kind", scenarioReplace},
	{"cursor seeking on every store kind", scenarioSeek},
	{"find with a predicate", scenarioFind},
}

var sampleData = []string{"first entry", "second entry", "third entry"}

// session is the state of one running scenario.
type session struct {
	out      io.Writer
	errOut   io.Writer
	eng      *list.Engine
	opts     printer.Options
	failures []string
}

func runSelftest(out, errOut io.Writer) error {
	failed, ran := 0, 0
	for i, sc := range scenarios {
		n := i + 1
		if len(selftestRun) > 0 && !slices.Contains(selftestRun, n) {
			continue
		}
		ran++

		printInfo(out, "\n  TEST #%d %s\n    %s\n\n", n, strings.Repeat("-", 55), sc.title)
		s := &session{out: out, errOut: errOut, eng: newEngine(errOut), opts: printerOptions()}
		sc.run(s)
		_ = s.eng.FreeAll()

		if len(s.failures) == 0 {
			fmt.Fprintf(out, "  TEST #%d OK\n", n)
			continue
		}
		failed++
		fmt.Fprintf(out, "  TEST #%d NOT OK\n", n)
		for _, f := range s.failures {
			fmt.Fprintf(out, "    %s\n", f)
		}
	}

	if ran == 0 {
		return fmt.Errorf("no scenario matches --run %v", selftestRun)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, ran)
	}
	printInfo(out, "\n%d scenarios passed\n", ran)
	return nil
}

// status prints the outcome of op.
func (s *session) status(op string, err error) {
	printInfo(s.out, "%s() = %s\n", op, types.StatusString(err))
	if err != nil {
		printVerbose(s.out, "  %v\n", err)
	}
}

// ok prints the outcome of op and records a failure unless it succeeded.
func (s *session) ok(op string, err error) bool {
	s.status(op, err)
	if err != nil {
		s.failf("%s: %v", op, err)
		return false
	}
	return true
}

// expectKind prints the outcome of op and records a failure unless it
// failed with kind.
func (s *session) expectKind(op string, err error, kind types.ErrKind) {
	s.status(op, err)
	if !types.IsKind(err, kind) {
		s.failf("%s: got %s, want %s", op, types.StatusString(err), kind)
	}
}

func (s *session) expect(cond bool, format string, args ...any) {
	if !cond {
		s.failf(format, args...)
	}
}

func (s *session) failf(format string, args ...any) {
	s.failures = append(s.failures, fmt.Sprintf(format, args...))
}

func (s *session) memory() types.MemoryInfo {
	info, err := s.eng.MemoryStats()
	s.ok("memory_stats", err)
	printInfo(s.out, "lists=%d indexed=%s/%s linked=%s/%s associative=%s/%s total=%s used=%s\n",
		s.eng.InternalCount(),
		humanize.IBytes(info.Indexed.Total), humanize.IBytes(info.Indexed.Used),
		humanize.IBytes(info.Linked.Total), humanize.IBytes(info.Linked.Used),
		humanize.IBytes(info.Associative.Total), humanize.IBytes(info.Associative.Used),
		humanize.IBytes(info.Total), humanize.IBytes(info.Used))
	if verbose && !quiet {
		if err := printer.PrintSnapshot(s.out, s.eng.Snapshot(), s.opts); err != nil {
			s.failf("print snapshot: %v", err)
		}
	}
	return info
}

// create builds a list on the session engine. It returns nil on failure.
func create[T comparable](s *session, cfg list.Config) *list.List[T] {
	cfg.Engine = s.eng
	l, err := list.New[T](cfg)
	if !s.ok("create", err) {
		return nil
	}
	return l
}

func release[T comparable](s *session, l *list.List[T]) {
	s.ok("free", l.Free())
}

// dump prints l when running verbose.
func dump[T comparable](s *session, l *list.List[T]) {
	if !verbose || quiet {
		return
	}
	if err := printer.PrintList(s.out, l, s.opts); err != nil {
		s.failf("dump: %v", err)
	}
}

// expectItems records a failure unless the live entries of l are want.
func expectItems[T comparable](s *session, l *list.List[T], want ...T) {
	got := slices.Collect(l.All())
	if !slices.Equal(got, want) {
		s.failf("entries %v, want %v", got, want)
	}
	n, err := l.EntryCount()
	s.ok("entry_count", err)
	s.expect(n == len(want), "entry_count %d, want %d", n, len(want))
}

func insertSample(s *session, l *list.List[string]) bool {
	for _, v := range sampleData {
		if _, err := l.Insert(v); !s.ok("insert", err) {
			return false
		}
	}
	return true
}

func scenarioIndexedHoles(s *session) {
	l := create[string](s, list.NewConfig(types.Indexed))
	if l == nil {
		return
	}
	defer release(s, l)

	if !insertSample(s, l) {
		return
	}
	dump(s, l)

	s.ok("remove_by_ref", l.Remove(sampleData[1]))
	dump(s, l)

	frag, err := l.IsFragmented(false)
	s.ok("is_fragmented", err)
	s.expect(frag, "a hole below the top must fragment the list")

	_, err = l.Get(1)
	s.expectKind("get_by_index", err, types.ErrKindNotFound)
	expectItems(s, l, sampleData[0], sampleData[2])
}

func scenarioIndexedGrowth(s *session) {
	cfg := list.NewConfig(types.Indexed)
	cfg.GrowthIncrement = types.DefaultGrowthIncrement / 2
	l := create[string](s, cfg)
	if l == nil {
		return
	}
	defer release(s, l)

	for i := range types.DefaultGrowthIncrement {
		if _, err := l.Insert(fmt.Sprintf("line %d", i)); err != nil {
			s.ok("insert", err)
			return
		}
	}
	s.status("insert", nil)
	s.expect(l.Cap() == types.DefaultGrowthIncrement, "capacity %d, want %d", l.Cap(), types.DefaultGrowthIncrement)
	dump(s, l)

	var popped []string
	var err error
	for {
		var v string
		if v, err = l.Pop(); err != nil {
			break
		}
		popped = append(popped, v)
	}
	s.expectKind("pop", err, types.ErrKindEmptyList)
	s.expect(len(popped) == types.DefaultGrowthIncrement, "popped %d entries", len(popped))
	if len(popped) > 0 {
		s.expect(popped[0] == fmt.Sprintf("line %d", types.DefaultGrowthIncrement-1), "first pop %q", popped[0])
	}
}

func scenarioIndexedShift(s *session) {
	cfg := list.NewConfig(types.Indexed)
	cfg.GrowthIncrement = types.DefaultGrowthIncrement / 2
	cfg.ShiftOnRemove = true
	l := create[string](s, cfg)
	if l == nil {
		return
	}
	defer release(s, l)

	if !insertSample(s, l) {
		return
	}
	dump(s, l)
	expectItems(s, l, sampleData...)

	s.ok("remove_by_ref", l.Remove(sampleData[1]))
	expectItems(s, l, sampleData[0], sampleData[2])
	dump(s, l)

	_, err := l.Insert(sampleData[1])
	s.ok("insert", err)
	dump(s, l)

	// middle, tail, head
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, sampleData[0], sampleData[1])
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, sampleData[0])
	s.ok("remove_by_index", l.RemoveAt(0))
	expectItems[string](s, l)
	dump(s, l)

	frag, err := l.IsFragmented(true)
	s.ok("is_fragmented", err)
	s.expect(!frag, "a list with shifts is never fragmented")
}

func scenarioFragFlag(s *session) {
	cfg := list.NewConfig(types.Indexed)
	cfg.UseFragFlag = true
	l := create[string](s, cfg)
	if l == nil {
		return
	}
	defer release(s, l)

	if !insertSample(s, l) {
		return
	}
	s.ok("remove_by_ref", l.Remove(sampleData[1]))
	dump(s, l)

	flag, err := l.IsFragmented(false)
	s.ok("is_fragmented", err)
	scan, err := l.IsFragmented(true)
	s.ok("is_fragmented", err)
	s.expect(flag && scan, "flag=%t scan=%t, want both true", flag, scan)
}

func scenarioLinked(s *session) {
	l := create[string](s, list.NewConfig(types.Linked))
	if l == nil {
		return
	}
	defer release(s, l)

	if !insertSample(s, l) {
		return
	}
	dump(s, l)
	expectItems(s, l, sampleData[2], sampleData[1], sampleData[0])

	s.ok("remove_by_ref", l.Remove(sampleData[1]))
	expectItems(s, l, sampleData[2], sampleData[0])

	s.ok("push", l.Push(sampleData[1]))
	expectItems(s, l, sampleData[1], sampleData[2], sampleData[0])
	dump(s, l)

	// middle, tail, head
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, sampleData[1], sampleData[0])
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, sampleData[1])
	s.ok("remove_by_index", l.RemoveAt(0))
	expectItems[string](s, l)

	_, err := l.Pop()
	s.expectKind("pop", err, types.ErrKindEmptyList)
}

func scenarioMemory(s *session) {
	untracked := list.NewEngine(list.InitOptions{Debug: debug, DebugWriter: s.errOut})
	info, err := untracked.MemoryStats()
	s.ok("memory_stats", err)
	s.expect(info == types.MemoryInfo{}, "untracked engine reports %+v", info)

	lists := make([]*list.List[string], 0, 5)
	for i := range 5 {
		cfg := list.NewConfig(types.Indexed)
		cfg.Tag = fmt.Sprintf("idx%d", i)
		l := create[string](s, cfg)
		if l == nil {
			return
		}
		lists = append(lists, l)
		for j := range i + 1 {
			if _, err := l.Insert(fmt.Sprintf("%s/%d", cfg.Tag, j)); !s.ok("insert", err) {
				return
			}
		}
	}

	info = s.memory()
	var want types.MemoryInfo
	for _, l := range lists {
		want.Add(l.Footprint())
	}
	s.expect(info == want, "memory %+v, want %+v", info, want)
	s.expect(s.eng.InternalCount() == 5, "internal count %d, want 5", s.eng.InternalCount())

	// the last list is left for free-all
	for _, l := range lists[:4] {
		release(s, l)
	}
	info = s.memory()
	s.expect(info.Used == lists[4].Footprint().Used, "used %d after freeing four lists", info.Used)

	s.ok("free_all", s.eng.FreeAll())
	info = s.memory()
	s.expect(info == types.MemoryInfo{}, "memory after free-all %+v", info)
	s.expect(s.eng.InternalCount() == 0, "internal count %d after free-all", s.eng.InternalCount())
}

func scenarioAssoc(s *session) {
	l := create[int](s, list.NewConfig(types.Associative))
	if l == nil {
		return
	}
	defer release(s, l)

	keys := []string{"um", "dois", "tres", "quatro"}
	for i, k := range keys {
		s.ok("insert_with_key", l.InsertWithKey([]byte(k), i+1))
	}
	dump(s, l)

	v, err := l.GetByKey([]byte("dois"))
	if s.ok("get_by_key", err) {
		printInfo(s.out, "key dois has value %d\n", v)
		s.expect(v == 2, "dois = %d, want 2", v)
	}

	s.expectKind("insert_with_key", l.InsertWithKey([]byte("um"), 9), types.ErrKindInvalidArgument)
	s.expectKind("insert_with_key", l.InsertWithKey(nil, 9), types.ErrKindInvalidArgument)

	s.ok("remove_by_key", l.RemoveByKey([]byte("dois")))
	ok, err := l.KeyExists([]byte("dois"))
	s.ok("key_exists", err)
	s.expect(!ok, "dois still present after removal")
	expectItems(s, l, 4, 3, 1)
	dump(s, l)

	// middle, tail, head
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, 4, 1)
	s.ok("remove_by_index", l.RemoveAt(1))
	expectItems(s, l, 4)
	s.ok("remove_by_index", l.RemoveAt(0))
	expectItems[int](s, l)
}

func scenarioReplace(s *session) {
	for _, kind := range types.StoreKinds {
		printInfo(s.out, "%s:\n", kind)
		l := create[string](s, list.NewConfig(kind))
		if l == nil {
			return
		}
		for i, v := range sampleData {
			if kind == types.Associative {
				s.ok("insert_with_key", l.InsertWithKey(fmt.Appendf(nil, "key%d", i+1), v))
			} else {
				_, err := l.Insert(v)
				s.ok("insert", err)
			}
		}
		dump(s, l)

		for _, i := range []int{1, 0, 2} {
			want := fmt.Sprintf("REPLACED %d!", i)
			s.ok("replace_by_index", l.Replace(i, want))
			got, err := l.Get(i)
			if s.ok("get_by_index", err) {
				s.expect(got == want, "%s: entry %d = %q, want %q", kind, i, got, want)
			}
			dump(s, l)
		}
		s.expectKind("replace_by_index", l.Replace(len(sampleData)+100, "x"), types.ErrKindOutOfBounds)
		release(s, l)
	}
}

// seekAll drains a cursor over l, returning the number of entries seen and
// the status that ended the scan.
func seekAll[T comparable](s *session, l *list.List[T]) (int, error) {
	var c list.Cursor[T]
	if !s.ok("seek_start", l.SeekStart(&c)) {
		return 0, nil
	}
	n := 0
	var last error
	for {
		_, err := l.SeekNext(&c)
		s.status("seek_next", err)
		if err != nil {
			last = err
			break
		}
		n++
	}
	s.ok("seek_end", l.SeekEnd(&c))
	return n, last
}

func scenarioSeek(s *session) {
	cases := []struct {
		kind   types.StoreKind
		remove int
		want   int
	}{
		{types.Indexed, -1, 3},
		{types.Linked, -1, 3},
		{types.Indexed, 1, 2},
	}

	for _, tc := range cases {
		l := create[string](s, list.NewConfig(tc.kind))
		if l == nil {
			return
		}
		insertSample(s, l)
		if tc.remove >= 0 {
			s.ok("remove_by_index", l.RemoveAt(tc.remove))
		}
		dump(s, l)

		n, last := seekAll(s, l)
		s.expect(n == tc.want, "%s: seek visited %d entries, want %d", tc.kind, n, tc.want)
		s.expect(types.IsKind(last, types.ErrKindNotFound), "%s: seek ended with %s", tc.kind, types.StatusString(last))
		release(s, l)
	}
}

func scenarioFind(s *session) {
	l := create[string](s, list.NewConfig(types.Linked))
	if l == nil {
		return
	}
	defer release(s, l)

	insertSample(s, l)
	dump(s, l)

	equal := func(v string, param any) (types.Lookup, error) {
		printVerbose(s.out, "find_routine value=%q param=%v\n", v, param)
		if v == param {
			return types.Found, nil
		}
		return types.NotFound, nil
	}

	v, r, err := l.Find(equal, sampleData[2])
	s.ok("find", err)
	s.expect(r == types.Found && v == sampleData[2], "find %q: %s %q", sampleData[2], r, v)

	_, r, err = l.Find(equal, "missing string")
	s.ok("find", err)
	s.expect(r == types.NotFound, "find missing: %s", r)
}
