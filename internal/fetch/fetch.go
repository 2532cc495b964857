// Package fetch resolves configured resources to raw bytes, reading local
// files or issuing HTTP GETs, and reports the MIME type of what it got.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ggoodman/mycommandmcp/catalog"
	"github.com/ggoodman/mycommandmcp/internal/content"
	"github.com/ggoodman/mycommandmcp/internal/remote"
)

// LocalURIPrefix is stripped from resource URIs to recover the resource name.
const LocalURIPrefix = "file://"

var (
	// ErrResourceNotFound is returned when no resource has the requested name.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrFetchStatus is returned when a remote resource answers with a non-2xx status.
	ErrFetchStatus = remote.ErrStatus
)

// Fetched is the raw content of one resource.
type Fetched struct {
	Name     string
	Data     []byte
	MimeType string
}

// IsBinary applies the content classification rule to the fetched MIME type.
func (f *Fetched) IsBinary() bool {
	return content.IsBinary(f.MimeType)
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the client used for remote resources.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// Fetcher reads resources declared in a catalog.
type Fetcher struct {
	resources *catalog.Catalog
	client    *http.Client
	log       *slog.Logger
}

// New constructs a Fetcher over the resources of cat.
func New(cat *catalog.Catalog, opts ...Option) *Fetcher {
	f := &Fetcher{
		resources: cat,
		client:    http.DefaultClient,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ResourceName strips the local resource prefix from uri, if present.
func ResourceName(uri string) string {
	return strings.TrimPrefix(uri, LocalURIPrefix)
}

// Fetch resolves uri to the named resource and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*Fetched, error) {
	name := ResourceName(uri)
	res, ok := f.resources.Resource(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
	}

	f.log.InfoContext(ctx, "resource.fetch.start", slog.String("resource", name), slog.String("path", res.Path))

	if remote.IsURL(res.Path) {
		data, ctype, err := remote.Get(ctx, f.client, res.Path)
		if err != nil {
			return nil, err
		}
		mt := content.Essence(ctype)
		f.log.InfoContext(ctx, "resource.fetch.remote", slog.Int("bytes", len(data)), slog.String("mime_type", mt))
		return &Fetched{Name: name, Data: data, MimeType: mt}, nil
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource file %q: %w", res.Path, err)
	}
	mt := content.MimeTypeFromPath(res.Path)
	f.log.InfoContext(ctx, "resource.fetch.local", slog.Int("bytes", len(data)), slog.String("mime_type", mt))
	return &Fetched{Name: name, Data: data, MimeType: mt}, nil
}
