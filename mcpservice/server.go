package mcpservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ggoodman/mycommandmcp/catalog"
	"github.com/ggoodman/mycommandmcp/internal/fetch"
	"github.com/ggoodman/mycommandmcp/internal/jsonrpc"
	"github.com/ggoodman/mycommandmcp/internal/logctx"
	"github.com/ggoodman/mycommandmcp/internal/metrics"
	"github.com/ggoodman/mycommandmcp/internal/runner"
	"github.com/ggoodman/mycommandmcp/mcp"
	"github.com/google/uuid"
)

// ServerName is reported in the initialize result.
const ServerName = "mycommandmcp"

// Option configures a Server.
type Option func(*Server)

// WithLogger overrides the logger. Records carry rpc and tool groups when
// the logger's handler is wrapped in logctx.Handler.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records dispatch outcomes and tool runs.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithHTTPClient overrides the client used to fetch remote resources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Server) { s.httpClient = c }
}

// Server answers protocol messages against a fixed catalog. Messages are
// handled one at a time; Handle is not meant to be called concurrently.
type Server struct {
	catalog    *catalog.Catalog
	runner     *runner.Runner
	fetcher    *fetch.Fetcher
	log        *slog.Logger
	metrics    *metrics.Metrics
	version    string
	httpClient *http.Client
}

// New builds a Server over cat.
func New(cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: cat,
		log:     slog.New(slog.DiscardHandler),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.runner = runner.New(cat, runner.WithLogger(s.log), runner.WithMetrics(s.metrics))
	s.fetcher = fetch.New(cat, fetch.WithLogger(s.log), fetch.WithHTTPClient(s.httpClient))
	return s
}

// Handle processes one inbound line. ok is false when no reply must be
// written, which is the case for notifications only.
func (s *Server) Handle(ctx context.Context, line []byte) (reply []byte, ok bool) {
	msg := &logctx.RPCMessage{TraceID: uuid.NewString(), Type: "request"}
	ctx = logctx.WithRPCMessage(ctx, msg)
	s.log.DebugContext(ctx, "rpc.received", slog.String("line", string(line)))

	call, err := ParseRequest(line)
	if err != nil {
		s.log.WarnContext(ctx, "rpc.parse.fail", slog.String("err", err.Error()))
		s.metrics.ObserveRequest("invalid", metrics.OutcomeError)
		return s.encodeError(ctx, jsonrpc.RequestID{}, toRequestError(err)), true
	}
	msg.Method = call.Method
	msg.ID = call.ID.String()

	if _, isNote := call.Request.(NotificationRequest); isNote {
		msg.Type = "notification"
		s.log.InfoContext(ctx, "rpc.notification")
		s.metrics.ObserveRequest("notification", metrics.OutcomeIgnored)
		return nil, false
	}

	label := call.Method
	if _, unknown := call.Request.(UnknownRequest); unknown {
		label = "unknown"
	}

	result, err := s.dispatch(ctx, call.Request)
	if err != nil {
		rerr := toRequestError(err)
		s.log.InfoContext(ctx, "rpc.error", slog.Int("code", int(rerr.Code)), slog.String("err", rerr.Message))
		s.metrics.ObserveRequest(label, metrics.OutcomeError)
		return s.encodeError(ctx, call.ID, rerr), true
	}

	resp, err := jsonrpc.NewResultResponse(call.ID, result)
	if err != nil {
		s.log.ErrorContext(ctx, "rpc.encode.fail", slog.String("err", err.Error()))
		s.metrics.ObserveRequest(label, metrics.OutcomeError)
		return s.encodeError(ctx, call.ID, &RequestError{Code: jsonrpc.ErrorCodeInternalError, Message: "Internal error"}), true
	}
	s.metrics.ObserveRequest(label, metrics.OutcomeOK)
	return s.encode(ctx, resp), true
}

// dispatch routes a request to its handler. A panic in a handler becomes an
// internal error for this request only.
func (s *Server) dispatch(ctx context.Context, req Request) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "rpc.panic", slog.Any("panic", r))
			result = nil
			err = &RequestError{Code: jsonrpc.ErrorCodeInternalError, Message: fmt.Sprintf("Internal error: %v", r)}
		}
	}()

	switch r := req.(type) {
	case InitializeRequest:
		return s.initialize(), nil
	case InitializedRequest:
		return mcp.EmptyResult{}, nil
	case ListToolsRequest:
		return s.listTools(), nil
	case CallToolRequest:
		return s.callTool(ctx, r)
	case ListPromptsRequest:
		return s.listPrompts(), nil
	case GetPromptRequest:
		return s.getPrompt(r)
	case ListResourcesRequest:
		return s.listResources(), nil
	case ReadResourceRequest:
		return s.readResource(ctx, r)
	case ListResourceTemplatesRequest:
		return &mcp.ListResourceTemplatesResult{ResourceTemplates: []mcp.ResourceTemplate{}}, nil
	case MalformedRequest:
		return nil, r.Err
	case UnknownRequest:
		return nil, &RequestError{Code: jsonrpc.ErrorCodeMethodNotFound, Message: "Method not found: " + r.Method}
	}
	return nil, errors.New("unhandled request type")
}

func (s *Server) initialize() *mcp.InitializeResult {
	return &mcp.InitializeResult{
		ProtocolVersion: mcp.LatestProtocolVersion,
		Capabilities: mcp.ServerCapabilities{
			Tools:     &struct{}{},
			Prompts:   &struct{}{},
			Resources: &struct{}{},
		},
		ServerInfo: mcp.ImplementationInfo{Name: ServerName, Version: s.version},
	}
}

func (s *Server) encodeError(ctx context.Context, id jsonrpc.RequestID, rerr *RequestError) []byte {
	return s.encode(ctx, jsonrpc.NewErrorResponse(id, rerr.Code, rerr.Message))
}

func (s *Server) encode(ctx context.Context, resp *jsonrpc.Response) []byte {
	out, err := marshalCompact(resp)
	if err != nil {
		// Only reachable if an error message itself cannot be encoded.
		s.log.ErrorContext(ctx, "rpc.encode.fail", slog.String("err", err.Error()))
		out = []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`)
	}
	s.log.DebugContext(ctx, "rpc.sending", slog.String("line", string(out)))
	return out
}
