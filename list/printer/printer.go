// Package printer renders lists and engine memory snapshots for humans and
// tools.
//
// Three formats are supported: an indented text report, JSON documents, and
// MessagePack documents carrying the same fields as the JSON form.
//
// Example:
//
//	opts := printer.DefaultOptions()
//	opts.MaxEntries = 10
//	printer.PrintList(os.Stdout, l, opts)
//	printer.PrintSnapshot(os.Stdout, list.Default().Snapshot(), opts)
package printer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/list/registry"
	"github.com/joshuapare/listkit/pkg/types"
)

const (
	DefaultIndentSize = 2
	DefaultMaxEntries = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a human-readable report.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"

	// FormatMsgpack outputs MessagePack.
	FormatMsgpack Format = "msgpack"
)

// ParseFormat resolves a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or msgpack): %w", s, types.ErrInvalidArgument)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies the output format.
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowEntries includes the entries of a list.
	// Default: true
	ShowEntries bool

	// ShowHoles includes removed, uncompacted slots of indexed lists.
	// Default: true
	ShowHoles bool

	// MaxEntries limits how many entries are printed (0 = unlimited).
	// Default: 0
	MaxEntries int

	// ScanFragmentation forces a full slot scan instead of the maintained
	// flag when reporting fragmentation.
	// Default: false
	ScanFragmentation bool

	// FormatValue, when set, renders each live value in place of the
	// default %v formatting. Its result is printed as-is in text format.
	// Default: nil
	FormatValue func(v any) string
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		IndentSize:  DefaultIndentSize,
		ShowEntries: true,
		ShowHoles:   true,
		MaxEntries:  DefaultMaxEntries,
	}
}

// listDoc is the document form of one list.
type listDoc struct {
	ID         string      `json:"id,omitempty" msgpack:"id,omitempty"`
	Tag        string      `json:"tag" msgpack:"tag"`
	Kind       string      `json:"kind" msgpack:"kind"`
	Entries    int         `json:"entries" msgpack:"entries"`
	Capacity   int         `json:"capacity" msgpack:"capacity"`
	Fragmented *bool       `json:"fragmented,omitempty" msgpack:"fragmented,omitempty"`
	Footprint  types.Usage `json:"footprint" msgpack:"footprint"`
	Items      []itemDoc   `json:"items,omitempty" msgpack:"items,omitempty"`
	Truncated  bool        `json:"truncated,omitempty" msgpack:"truncated,omitempty"`
}

// itemDoc is one position of a list. Keys that are not valid UTF-8 are
// carried in KeyHex instead of Key.
type itemDoc struct {
	Pos    int    `json:"pos" msgpack:"pos"`
	Key    string `json:"key,omitempty" msgpack:"key,omitempty"`
	KeyHex string `json:"key_hex,omitempty" msgpack:"key_hex,omitempty"`
	Hole   bool   `json:"hole,omitempty" msgpack:"hole,omitempty"`
	Value  any    `json:"value,omitempty" msgpack:"value,omitempty"`
}

// formatted marks a value already rendered by Options.FormatValue.
type formatted string

// PrintList writes l to w.
func PrintList[T comparable](w io.Writer, l *list.List[T], opts Options) error {
	doc, err := buildListDoc(l, opts)
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatMsgpack:
		return writeMsgpack(w, doc)
	case FormatText:
		return printListText(w, doc, opts)
	default:
		return printListText(w, doc, opts)
	}
}

// PrintSnapshot writes an engine memory snapshot to w.
func PrintSnapshot(w io.Writer, snap registry.Snapshot, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, snap)
	case FormatMsgpack:
		return writeMsgpack(w, snap)
	case FormatText:
		return printSnapshotText(w, snap, opts)
	default:
		return printSnapshotText(w, snap, opts)
	}
}

func buildListDoc[T comparable](l *list.List[T], opts Options) (listDoc, error) {
	n, err := l.EntryCount()
	if err != nil {
		return listDoc{}, err
	}

	doc := listDoc{
		Tag:       l.Tag(),
		Kind:      l.Kind().String(),
		Entries:   n,
		Capacity:  l.Cap(),
		Footprint: l.Footprint().Usage,
	}
	if id := l.ID(); id != uuid.Nil {
		doc.ID = id.String()
	}
	if l.Kind() == types.Indexed {
		frag, err := l.IsFragmented(opts.ScanFragmentation)
		if err != nil {
			return listDoc{}, err
		}
		doc.Fragmented = &frag
	}

	if !opts.ShowEntries {
		return doc, nil
	}
	err = l.Entries(func(e list.Entry[T]) bool {
		if e.Hole && !opts.ShowHoles {
			return true
		}
		if opts.MaxEntries > 0 && len(doc.Items) == opts.MaxEntries {
			doc.Truncated = true
			return false
		}
		item := itemDoc{Pos: e.Pos, Hole: e.Hole}
		switch {
		case e.Hole:
		case opts.FormatValue != nil:
			item.Value = formatted(opts.FormatValue(e.Value))
		default:
			item.Value = e.Value
		}
		if e.Key != nil {
			if utf8.Valid(e.Key) {
				item.Key = string(e.Key)
			} else {
				item.KeyHex = fmt.Sprintf("%x", e.Key)
			}
		}
		doc.Items = append(doc.Items, item)
		return true
	})
	return doc, err
}
