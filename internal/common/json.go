package common

import (
	"bytes"
	"encoding/json"
)

// marshalJSONIndent encodes without HTML escaping so Japanese text and
// URLs stay readable in the output.
func marshalJSONIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
