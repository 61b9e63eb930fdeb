package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/listkit/list/registry"
	"github.com/joshuapare/listkit/pkg/types"
)

// printListText prints a list in human-readable text format.
func printListText(w io.Writer, doc listDoc, opts Options) error {
	indent := strings.Repeat(" ", opts.IndentSize)

	tag := doc.Tag
	if tag == "" {
		tag = "(untagged)"
	}
	fmt.Fprintf(w, "[%s] %s", tag, doc.Kind)
	if doc.ID != "" {
		fmt.Fprintf(w, " %s", doc.ID)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%sEntries: %d, Capacity: %d", indent, doc.Entries, doc.Capacity)
	if doc.Fragmented != nil {
		fmt.Fprintf(w, ", Fragmented: %t", *doc.Fragmented)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%sMemory: %s\n", indent, usageText(doc.Footprint))

	for _, it := range doc.Items {
		fmt.Fprintf(w, "%s[%d]", indent, it.Pos)
		switch {
		case it.Key != "":
			fmt.Fprintf(w, " %q", it.Key)
		case it.KeyHex != "":
			fmt.Fprintf(w, " hex:%s", it.KeyHex)
		}
		if it.Hole {
			fmt.Fprintln(w, " <hole>")
			continue
		}
		fmt.Fprintf(w, " = %s\n", valueText(it.Value))
	}
	if doc.Truncated {
		fmt.Fprintf(w, "%s... (%d entries total)\n", indent, doc.Entries)
	}

	return nil
}

// printSnapshotText prints the engine memory report.
func printSnapshotText(w io.Writer, snap registry.Snapshot, opts Options) error {
	indent := strings.Repeat(" ", opts.IndentSize)

	fmt.Fprintf(w, "Lists: %d\n", len(snap.Entries))
	fmt.Fprintf(w, "Memory: %s\n", usageText(types.Usage{Total: snap.Memory.Total, Used: snap.Memory.Used}))
	for _, k := range types.StoreKinds {
		u := snap.Memory.ByKind(k)
		fmt.Fprintf(w, "%s%-12s %s\n", indent, k.String()+":", usageText(u))
	}

	for _, e := range snap.Entries {
		tag := e.Tag
		if tag == "" {
			tag = "(untagged)"
		}
		fmt.Fprintf(w, "%s%-15s %-11s %s  %s\n", indent, tag, e.Footprint.Kind, usageText(e.Footprint.Usage), e.ID)
	}

	return nil
}

func usageText(u types.Usage) string {
	return fmt.Sprintf("%s used / %s reserved", humanize.IBytes(u.Used), humanize.IBytes(u.Total))
}

func valueText(v any) string {
	switch s := v.(type) {
	case formatted:
		return string(s)
	case string:
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
