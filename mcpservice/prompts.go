package mcpservice

import "github.com/ggoodman/mycommandmcp/mcp"

func (s *Server) listPrompts() *mcp.ListPromptsResult {
	prompts := s.catalog.Prompts()
	out := make([]mcp.Prompt, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, mcp.Prompt{Name: p.Name, Description: p.Description})
	}
	return &mcp.ListPromptsResult{Prompts: out}
}

func (s *Server) getPrompt(req GetPromptRequest) (*mcp.GetPromptResult, error) {
	p, ok := s.catalog.Prompt(req.Name)
	if !ok {
		return nil, serverError("Prompt not found: %s", req.Name)
	}
	return &mcp.GetPromptResult{
		Name:        p.Name,
		Description: p.Description,
		Messages: []mcp.PromptMessage{{
			Role:    mcp.RoleUser,
			Content: mcp.NewTextContent(p.Text()),
		}},
	}, nil
}
