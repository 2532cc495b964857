package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/ggoodman/mycommandmcp/internal/remote"
	"gopkg.in/yaml.v3"
)

// Document is the YAML shape of a catalog file.
type Document struct {
	Tools           []Tool     `yaml:"tools"`
	Prompts         []Prompt   `yaml:"prompts"`
	Resources       []Resource `yaml:"resources"`
	ExternalConfigs []string   `yaml:"external_configs"`
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the client used for remote documents and prompt URLs.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(lg *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if lg != nil {
			l.log = lg
		}
	}
}

// Loader reads catalog documents and materializes prompt content.
type Loader struct {
	client *http.Client
	log    *slog.Logger
}

// NewLoader constructs a Loader with defaults and applies options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client: http.DefaultClient,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the catalog file at path using a default Loader.
func Load(ctx context.Context, path string) (*Catalog, error) {
	return NewLoader().Load(ctx, path)
}

// New builds a catalog from already-decoded entries using a default Loader.
func New(tools []Tool, prompts []Prompt, resources []Resource) (*Catalog, error) {
	return NewLoader().Build(context.Background(), tools, prompts, resources)
}

// Load reads the root document at path, merges every document listed under
// external_configs (each source once, in order) and builds the catalog.
// External documents are not expanded recursively.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	root, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration %q: %w", path, err)
	}

	tools, prompts, resources := root.Tools, root.Prompts, root.Resources

	seen := make(map[string]struct{}, len(root.ExternalConfigs))
	for _, source := range root.ExternalConfigs {
		if _, ok := seen[source]; ok {
			continue
		}
		seen[source] = struct{}{}

		l.log.InfoContext(ctx, "config.external.load", slog.String("source", source))
		ext, err := l.loadExternal(ctx, source)
		if err != nil {
			return nil, err
		}
		tools = append(tools, ext.Tools...)
		prompts = append(prompts, ext.Prompts...)
		resources = append(resources, ext.Resources...)
	}

	return l.Build(ctx, tools, prompts, resources)
}

// Build validates the entries, materializes prompt content from inline text,
// files or URLs, and returns the immutable catalog.
func (l *Loader) Build(ctx context.Context, tools []Tool, prompts []Prompt, resources []Resource) (*Catalog, error) {
	c, err := newCatalog(tools, prompts, resources)
	if err != nil {
		return nil, err
	}
	for i := range c.prompts {
		text, err := l.promptText(ctx, c.prompts[i])
		if err != nil {
			return nil, err
		}
		c.prompts[i].text = text
	}
	return c, nil
}

func (l *Loader) promptText(ctx context.Context, p Prompt) (string, error) {
	switch {
	case p.Content != nil:
		return *p.Content, nil
	case p.Path != nil:
		data, err := os.ReadFile(*p.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file %q for prompt %q: %w", *p.Path, p.Name, err)
		}
		return string(data), nil
	case p.URL != nil:
		data, _, err := remote.Get(ctx, l.client, *p.URL)
		if err != nil {
			return "", fmt.Errorf("prompt %q: %w", p.Name, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: prompt %q has no content source", ErrInvalidPrompt, p.Name)
}

func (l *Loader) loadExternal(ctx context.Context, source string) (*Document, error) {
	var data []byte
	if remote.IsURL(source) {
		body, _, err := remote.Get(ctx, l.client, source)
		if err != nil {
			return nil, err
		}
		data = body
	} else {
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", source, err)
		}
		data = body
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %q: %w", source, err)
	}
	return doc, nil
}

func decodeDocument(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &doc, nil
}
