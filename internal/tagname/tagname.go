// Package tagname normalises the short diagnostic labels attached to lists.
//
// A tag is reduced to at most types.MaxTagLen visible characters. Input that
// is not valid UTF-8 is treated as Windows-1252, the usual encoding of labels
// produced by C callers. The result is NFC-normalised, control and other
// non-printing runes are dropped, and a combining sequence is never split.
package tagname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/listkit/pkg/types"
)

// Normalize returns the canonical form of tag.
func Normalize(tag string) string {
	if tag == "" {
		return ""
	}
	if !utf8.ValidString(tag) {
		if dec, err := charmap.Windows1252.NewDecoder().String(tag); err == nil {
			tag = dec
		} else {
			tag = strings.ToValidUTF8(tag, "")
		}
	}
	tag = norm.NFC.String(tag)

	var b strings.Builder
	b.Grow(len(tag))
	n := 0
	for len(tag) > 0 && n < types.MaxTagLen {
		// One segment is a starter plus its combining marks.
		end := norm.NFC.NextBoundaryInString(tag, true)
		if end <= 0 {
			end = len(tag)
		}
		seg := tag[:end]
		tag = tag[end:]

		r, _ := utf8.DecodeRuneInString(seg)
		if !unicode.IsPrint(r) {
			continue
		}
		b.WriteString(seg)
		n++
	}
	return b.String()
}

// Len returns the number of visible characters in a normalised tag.
func Len(tag string) int {
	n := 0
	for len(tag) > 0 {
		end := norm.NFC.NextBoundaryInString(tag, true)
		if end <= 0 {
			end = len(tag)
		}
		tag = tag[end:]
		n++
	}
	return n
}
