package mcpservice

import (
	"bytes"
	"encoding/json"
)

// marshalCompact encodes v on one line without HTML escaping.
func marshalCompact(v any) ([]byte, error) {
	return marshal(v, "")
}

// marshalPretty encodes v with two-space indentation without HTML escaping.
func marshalPretty(v any) ([]byte, error) {
	return marshal(v, "  ")
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
