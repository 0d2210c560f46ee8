package util

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v without escaping <, > and &, so decoded question text is stored verbatim.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
