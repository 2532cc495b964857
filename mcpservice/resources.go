package mcpservice

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/ggoodman/mycommandmcp/internal/content"
	"github.com/ggoodman/mycommandmcp/internal/fetch"
	"github.com/ggoodman/mycommandmcp/mcp"
)

func (s *Server) listResources() *mcp.ListResourcesResult {
	resources := s.catalog.Resources()
	out := make([]mcp.Resource, 0, len(resources))
	for _, r := range resources {
		out = append(out, mcp.Resource{
			URI:         fetch.LocalURIPrefix + r.Name,
			Name:        r.Name,
			Description: r.Description,
			MimeType:    content.ListingMimeType(r.Path),
		})
	}
	return &mcp.ListResourcesResult{Resources: out}
}

// readResource echoes the URI exactly as the client sent it.
func (s *Server) readResource(ctx context.Context, req ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	f, err := s.fetcher.Fetch(ctx, req.URI)
	if err != nil {
		if errors.Is(err, fetch.ErrResourceNotFound) {
			return nil, serverError("Resource '%s' not found", fetch.ResourceName(req.URI))
		}
		s.log.WarnContext(ctx, "resource.read.fail", slog.String("err", err.Error()))
		return nil, serverError("%s", err.Error())
	}

	rc := mcp.ResourceContents{URI: req.URI, MimeType: f.MimeType}
	if f.IsBinary() {
		blob := base64.StdEncoding.EncodeToString(f.Data)
		rc.Blob = &blob
	} else {
		text := strings.ToValidUTF8(string(f.Data), "\uFFFD")
		rc.Text = &text
	}
	s.log.InfoContext(ctx, "resource.read.ok",
		slog.String("resource", f.Name),
		slog.Bool("binary", f.IsBinary()),
	)
	return &mcp.ReadResourceResult{Contents: []mcp.ResourceContents{rc}}, nil
}
