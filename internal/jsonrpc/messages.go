package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

// Request is an inbound JSON-RPC message reduced to the parts the server
// routes on. Version and shape are not enforced: any JSON value is accepted
// and a missing or non-string method becomes the empty method.
type Request struct {
	Method string
	Params json.RawMessage
	ID     RequestID
	// HasID reports whether an "id" member was present at all.
	HasID bool
}

// ParseRequest decodes one line of input. The only failure is input that is
// not JSON; callers answer it with ErrorCodeParseError.
func ParseRequest(data []byte) (*Request, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	req := &Request{}
	if _, ok := probe.(map[string]any); !ok {
		return req, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if raw, ok := fields["method"]; ok {
		var method string
		if err := json.Unmarshal(raw, &method); err == nil {
			req.Method = method
		}
	}
	if raw, ok := fields["id"]; ok {
		req.ID = NewRequestID(raw)
		req.HasID = true
	}
	if raw, ok := fields["params"]; ok && !bytes.Equal(bytes.TrimSpace(raw), nullID) {
		req.Params = raw
	}
	return req, nil
}

// Response represents a JSON-RPC response. Exactly one of Result or Error is set.
type Response struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	ID             RequestID       `json:"id"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
}

// NewResultResponse builds a successful JSON-RPC response object.
func NewResultResponse(id RequestID, result any) (*Response, error) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Result:         resultBytes,
		ID:             id,
	}, nil
}

// NewErrorResponse builds an error JSON-RPC response with the given code.
func NewErrorResponse(id RequestID, code ErrorCode, message string) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Error: &Error{
			Code:    code,
			Message: message,
		},
		ID: id,
	}
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
}

// Error implements the error interface so handlers can return protocol errors directly.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}
