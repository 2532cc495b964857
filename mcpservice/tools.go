package mcpservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ggoodman/mycommandmcp/internal/logctx"
	"github.com/ggoodman/mycommandmcp/internal/runner"
	"github.com/ggoodman/mycommandmcp/mcp"
	"github.com/invopop/jsonschema"
)

// toolArgs is the argument object every tool accepts.
type toolArgs struct {
	Args string `json:"args,omitempty" jsonschema:"description=Arguments for the command (optional)"`
}

// toolArgsWithInput is the argument object of tools that read stdin.
type toolArgsWithInput struct {
	Args  string `json:"args,omitempty" jsonschema:"description=Arguments for the command (optional)"`
	Input string `json:"input,omitempty" jsonschema:"description=Text input to send to the command's standard input"`
}

var (
	argsSchema      = reflectToMCPInputSchema[toolArgs]()
	argsInputSchema = reflectToMCPInputSchema[toolArgsWithInput]()
)

// reflectToMCPInputSchema reflects a Go struct into a mcp.ToolInputSchema.
func reflectToMCPInputSchema[A any]() mcp.ToolInputSchema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(new(A))

	props := make(map[string]mcp.SchemaProperty)
	if s != nil && s.Properties != nil {
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			props[el.Key] = mcp.SchemaProperty{Type: el.Value.Type, Description: el.Value.Description}
		}
	}
	var required []string
	if s != nil && len(s.Required) > 0 {
		required = append(required, s.Required...)
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func (s *Server) listTools() *mcp.ListToolsResult {
	tools := s.catalog.Tools()
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		schema := argsSchema
		if t.AcceptsInput {
			schema = argsInputSchema
		}
		out = append(out, mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return &mcp.ListToolsResult{Tools: out}
}

func (s *Server) callTool(ctx context.Context, req CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: req.Name})

	res, err := s.runner.Run(ctx, req.Name, req.Args, req.Input)
	if err != nil {
		if errors.Is(err, runner.ErrToolNotFound) {
			return nil, serverError("Tool '%s' not found", req.Name)
		}
		var spawnErr *runner.SpawnError
		if errors.As(err, &spawnErr) {
			return &mcp.CallToolResult{
				Content: []mcp.ContentBlock{mcp.NewTextContent(spawnErr.Error())},
				IsError: true,
			}, nil
		}
		return nil, err
	}
	return toolResult(res)
}

// toolResult renders a CommandResult. Tools with a declared content type
// produce an embedded resource with a data URI; all others produce a text
// block holding the result as indented JSON.
func toolResult(res *runner.CommandResult) (*mcp.CallToolResult, error) {
	if res.ContentType == nil {
		text, err := marshalPretty(res)
		if err != nil {
			return nil, fmt.Errorf("failed to encode command result: %w", err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.ContentBlock{mcp.NewTextContent(string(text))},
			IsError: res.Failed(),
		}, nil
	}

	ct := *res.ContentType
	emb := &mcp.EmbeddedResource{MimeType: ct}
	if res.IsBinary {
		emb.URI = "data:" + ct + ";base64," + res.Output
	} else {
		emb.URI = "data:" + ct
		output := res.Output
		emb.Text = &output
	}
	if res.ContentDisposition != nil {
		emb.ContentDisposition = *res.ContentDisposition
	}
	return &mcp.CallToolResult{
		Content: []mcp.ContentBlock{{Type: mcp.ContentTypeResource, Resource: emb}},
		IsError: res.Failed(),
	}, nil
}
