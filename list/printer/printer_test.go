package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/pkg/types"
)

func newIndexed(t *testing.T, eng *list.Engine) *list.List[string] {
	t.Helper()
	cfg := list.NewConfig(types.Indexed)
	cfg.Tag = "letters"
	cfg.GrowthIncrement = 4
	cfg.Engine = eng
	l, err := list.New[string](cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Free() })

	for _, v := range []string{"a", "b", "c"} {
		_, err := l.Insert(v)
		require.NoError(t, err)
	}
	require.NoError(t, l.Remove("b"))
	return l
}

func newAssoc(t *testing.T) *list.List[int] {
	t.Helper()
	l, err := list.New[int](list.NewConfig(types.Associative))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Free() })

	require.NoError(t, l.InsertWithKey([]byte("um"), 1))
	require.NoError(t, l.InsertWithKey([]byte{0xff, 0x00}, 2))
	return l
}

func TestPrintList_Text(t *testing.T) {
	l := newIndexed(t, nil)

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, DefaultOptions()))

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "[letters] indexed", lines[0])
	assert.Equal(t, "  Entries: 2, Capacity: 4, Fragmented: true", lines[1])
	assert.Contains(t, lines[2], "  Memory: ")
	assert.Equal(t, `  [0] = "a"`, lines[3])
	assert.Equal(t, "  [1] <hole>", lines[4])
	assert.Equal(t, `  [2] = "c"`, lines[5])
}

func TestPrintList_TextOptions(t *testing.T) {
	l := newIndexed(t, nil)

	opts := DefaultOptions()
	opts.ShowHoles = false
	opts.MaxEntries = 1
	opts.IndentSize = 4

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, opts))

	output := buf.String()
	assert.Contains(t, output, `    [0] = "a"`)
	assert.NotContains(t, output, "<hole>")
	assert.NotContains(t, output, `"c"`)
	assert.Contains(t, output, "    ... (2 entries total)")

	opts = DefaultOptions()
	opts.ShowEntries = false
	buf.Reset()
	require.NoError(t, PrintList(&buf, l, opts))
	assert.NotContains(t, buf.String(), `"a"`)
}

func TestPrintList_TextKeys(t *testing.T) {
	l := newAssoc(t)

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, DefaultOptions()))

	output := buf.String()
	assert.Contains(t, output, "[(untagged)] associative")
	assert.Contains(t, output, "[0] hex:ff00 = 2")
	assert.Contains(t, output, `[1] "um" = 1`)
	assert.NotContains(t, output, "Fragmented")
}

func TestPrintList_FormatValue(t *testing.T) {
	l := newAssoc(t)

	opts := DefaultOptions()
	opts.FormatValue = func(v any) string { return fmt.Sprintf("<%03d>", v) }

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, opts))
	assert.Contains(t, buf.String(), `[1] "um" = <001>`)

	buf.Reset()
	opts.Format = FormatJSON
	require.NoError(t, PrintList(&buf, l, opts))

	var doc listDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "<002>", doc.Items[0].Value)
}

func TestPrintList_JSON(t *testing.T) {
	l := newIndexed(t, nil)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, opts))

	var doc listDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "letters", doc.Tag)
	assert.Equal(t, "indexed", doc.Kind)
	assert.Equal(t, 2, doc.Entries)
	require.NotNil(t, doc.Fragmented)
	assert.True(t, *doc.Fragmented)
	assert.Equal(t, l.Footprint().Usage, doc.Footprint)
	require.Len(t, doc.Items, 3)
	assert.True(t, doc.Items[1].Hole)
	assert.Equal(t, "c", doc.Items[2].Value)
}

func TestPrintList_Msgpack(t *testing.T) {
	l := newAssoc(t)

	opts := DefaultOptions()
	opts.Format = FormatMsgpack

	var buf bytes.Buffer
	require.NoError(t, PrintList(&buf, l, opts))

	var doc map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "associative", doc["kind"])
	assert.NotContains(t, doc, "fragmented")
	items, ok := doc["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "ff00", first["key_hex"])
}

func TestPrintList_Freed(t *testing.T) {
	l, err := list.New[int](list.NewConfig(types.Linked))
	require.NoError(t, err)
	require.NoError(t, l.Free())

	var buf bytes.Buffer
	err = PrintList(&buf, l, DefaultOptions())
	assert.ErrorIs(t, err, types.ErrFreed)
	assert.Empty(t, buf.String())
}

func TestPrintSnapshot(t *testing.T) {
	eng := list.NewEngine(list.InitOptions{TrackAll: true})
	l := newIndexed(t, eng)

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, eng.Snapshot(), DefaultOptions()))

	output := buf.String()
	t.Logf("Snapshot output:\n%s", output)
	assert.Contains(t, output, "Lists: 1\n")
	assert.Contains(t, output, "letters")
	assert.Contains(t, output, l.ID().String())
	assert.Contains(t, output, " B used / ")
	assert.Contains(t, output, "  linked:      0 B used / 0 B reserved")

	opts := DefaultOptions()
	opts.Format = FormatJSON
	buf.Reset()
	require.NoError(t, PrintSnapshot(&buf, eng.Snapshot(), opts))

	var snap map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Contains(t, snap, "memory")
	entries := snap["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, l.ID().String(), entries[0].(map[string]any)["id"])
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "msgpack"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("reg")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
