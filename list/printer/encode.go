package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/listkit/pkg/types"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeMsgpack(w io.Writer, v any) error {
	enc := msgpack.GetEncoder()
	enc.Reset(w)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

// Encode writes v as a JSON or MessagePack document. The text format has no
// document form.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatMsgpack:
		return writeMsgpack(w, v)
	}
	return fmt.Errorf("format %q has no document encoding: %w", f, types.ErrUnsupported)
}
