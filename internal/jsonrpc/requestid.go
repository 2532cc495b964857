package jsonrpc

import (
	"bytes"
	"encoding/json"
)

var nullID = []byte("null")

// RequestID holds a request id exactly as it appeared on the wire. Any JSON
// value is accepted and echoed back byte-for-byte; an absent id is echoed as
// null.
type RequestID struct {
	raw json.RawMessage
}

// NewRequestID wraps raw JSON id bytes. Nil or empty input yields an absent id.
func NewRequestID(raw json.RawMessage) RequestID {
	if len(raw) == 0 {
		return RequestID{}
	}
	return RequestID{raw: append(json.RawMessage(nil), raw...)}
}

// String returns the raw JSON text of the id, or "" when absent.
func (id RequestID) String() string {
	return string(id.raw)
}

// IsNil reports whether the id is absent or JSON null.
func (id RequestID) IsNil() bool {
	return len(id.raw) == 0 || bytes.Equal(id.raw, nullID)
}

// MarshalJSON implements json.Marshaler
func (id RequestID) MarshalJSON() ([]byte, error) {
	if len(id.raw) == 0 {
		return nullID, nil
	}
	return id.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *RequestID) UnmarshalJSON(data []byte) error {
	id.raw = append(id.raw[:0], data...)
	return nil
}
