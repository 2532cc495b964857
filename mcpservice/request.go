package mcpservice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ggoodman/mycommandmcp/internal/jsonrpc"
	"github.com/ggoodman/mycommandmcp/mcp"
)

// Request is one recognized inbound message. The concrete type is decided
// once, from the method name, and carries only the parameters that method
// needs. The set of implementations is closed.
type Request interface {
	isRequest()
}

type (
	InitializeRequest            struct{}
	InitializedRequest           struct{}
	ListToolsRequest             struct{}
	ListPromptsRequest           struct{}
	ListResourcesRequest         struct{}
	ListResourceTemplatesRequest struct{}

	// NotificationRequest is any "notifications/" method. It is never answered.
	NotificationRequest struct{ Method string }

	// UnknownRequest is a method with no route, including the empty method.
	UnknownRequest struct{ Method string }

	// MalformedRequest is a known method whose params failed validation.
	MalformedRequest struct {
		Method string
		Err    *RequestError
	}
)

// CallToolRequest invokes a tool. Args and Input come from params.arguments;
// non-string values are treated as absent.
type CallToolRequest struct {
	Name  string
	Args  string
	Input *string
}

// GetPromptRequest looks up a prompt by name.
type GetPromptRequest struct {
	Name string
}

// ReadResourceRequest reads a resource by URI, with or without the file:// prefix.
type ReadResourceRequest struct {
	URI string
}

func (InitializeRequest) isRequest()            {}
func (InitializedRequest) isRequest()           {}
func (ListToolsRequest) isRequest()             {}
func (ListPromptsRequest) isRequest()           {}
func (ListResourcesRequest) isRequest()         {}
func (ListResourceTemplatesRequest) isRequest() {}
func (NotificationRequest) isRequest()          {}
func (UnknownRequest) isRequest()               {}
func (MalformedRequest) isRequest()             {}
func (CallToolRequest) isRequest()              {}
func (GetPromptRequest) isRequest()             {}
func (ReadResourceRequest) isRequest()          {}

// Call is a parsed line: the id to echo and the typed request.
type Call struct {
	ID      jsonrpc.RequestID
	Method  string
	Request Request
}

// ParseRequest turns one inbound line into a Call. The only error is input
// that is not JSON, reported as a parse-error RequestError.
func ParseRequest(line []byte) (*Call, error) {
	msg, err := jsonrpc.ParseRequest(line)
	if err != nil {
		return nil, &RequestError{Code: jsonrpc.ErrorCodeParseError, Message: "Parse error: " + err.Error()}
	}
	return &Call{ID: msg.ID, Method: msg.Method, Request: route(msg)}, nil
}

func route(msg *jsonrpc.Request) Request {
	if strings.HasPrefix(msg.Method, mcp.NotificationPrefix) {
		return NotificationRequest{Method: msg.Method}
	}

	switch mcp.Method(msg.Method) {
	case mcp.InitializeMethod:
		return InitializeRequest{}
	case mcp.InitializedMethod:
		return InitializedRequest{}
	case mcp.ToolsListMethod:
		return ListToolsRequest{}
	case mcp.PromptsListMethod:
		return ListPromptsRequest{}
	case mcp.ResourcesListMethod:
		return ListResourcesRequest{}
	case mcp.ResourcesTemplatesListMethod:
		return ListResourceTemplatesRequest{}
	case mcp.ToolsCallMethod:
		return parseCallTool(msg)
	case mcp.PromptsGetMethod:
		return parseGetPrompt(msg)
	case mcp.ResourcesReadMethod:
		return parseReadResource(msg)
	}
	return UnknownRequest{Method: msg.Method}
}

func parseCallTool(msg *jsonrpc.Request) Request {
	params, rerr := paramsObject(msg)
	if rerr != nil {
		return MalformedRequest{Method: msg.Method, Err: rerr}
	}
	name, ok := stringField(params, "name")
	if !ok {
		return MalformedRequest{Method: msg.Method, Err: serverError("Missing tool name in request")}
	}

	req := CallToolRequest{Name: name}
	var arguments map[string]json.RawMessage
	if raw, ok := params["arguments"]; ok && json.Unmarshal(raw, &arguments) == nil {
		if args, ok := stringField(arguments, "args"); ok {
			req.Args = args
		}
		if input, ok := stringField(arguments, "input"); ok {
			req.Input = &input
		}
	}
	return req
}

func parseGetPrompt(msg *jsonrpc.Request) Request {
	params, rerr := paramsObject(msg)
	if rerr != nil {
		return MalformedRequest{Method: msg.Method, Err: rerr}
	}
	name, ok := stringField(params, "name")
	if !ok {
		return MalformedRequest{Method: msg.Method, Err: serverError("Missing prompt name in request")}
	}
	return GetPromptRequest{Name: name}
}

func parseReadResource(msg *jsonrpc.Request) Request {
	params, rerr := paramsObject(msg)
	if rerr != nil {
		return MalformedRequest{Method: msg.Method, Err: rerr}
	}
	uri, ok := stringField(params, "uri")
	if !ok {
		return MalformedRequest{Method: msg.Method, Err: serverError("Missing resource uri in request")}
	}
	return ReadResourceRequest{URI: uri}
}

// paramsObject requires params to be a JSON object.
func paramsObject(msg *jsonrpc.Request) (map[string]json.RawMessage, *RequestError) {
	var params map[string]json.RawMessage
	if len(msg.Params) == 0 || json.Unmarshal(msg.Params, &params) != nil || params == nil {
		return nil, &RequestError{
			Code:    jsonrpc.ErrorCodeInvalidParams,
			Message: fmt.Sprintf("Missing params in %s request", msg.Method),
		}
	}
	return params, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
