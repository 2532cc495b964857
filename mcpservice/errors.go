package mcpservice

import (
	"errors"
	"fmt"

	"github.com/ggoodman/mycommandmcp/internal/jsonrpc"
)

// RequestError is a failure that maps to a specific JSON-RPC error code.
// Handlers return it for lookups and shape problems; any other error is
// reported as ErrorCodeServerError.
type RequestError struct {
	Code    jsonrpc.ErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func serverError(format string, args ...any) *RequestError {
	return &RequestError{Code: jsonrpc.ErrorCodeServerError, Message: fmt.Sprintf(format, args...)}
}

// toRequestError classifies err for the response envelope.
func toRequestError(err error) *RequestError {
	var rerr *RequestError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &RequestError{Code: jsonrpc.ErrorCodeServerError, Message: err.Error()}
}
