// Package catalog loads the operator-declared tools, prompts and resources
// and exposes them as read-only lookup tables.
//
// A catalog is built once at startup from a YAML document (plus any external
// documents it references) and never changes afterwards. Names are unique per
// kind; a duplicate fails the load before any request is served.
//
// Example document:
//
//	tools:
//	  - name: list_files
//	    description: List a directory
//	    command: ls
//	    path: /tmp
//	    accepts_args: true
//	    accept_input: false
//	    default_args: "-l"
//	prompts:
//	  - name: greeting
//	    description: Say hello
//	    content: "Hello there"
//	resources:
//	  - name: notes
//	    description: Team notes
//	    path: /srv/notes.txt
//	external_configs:
//	  - https://example.com/more-tools.yaml
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when two entries of the same kind share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidPrompt is returned when a prompt does not declare exactly one content source.
	ErrInvalidPrompt = errors.New("invalid prompt")
	// ErrInvalidTool is returned when a tool is missing its name or command.
	ErrInvalidTool = errors.New("invalid tool")
)

// Tool describes an operator-configured system command.
type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Command is the executable name or path.
	Command string `yaml:"command"`
	// WorkingDirectory is the directory the process runs in.
	WorkingDirectory string `yaml:"path"`
	AcceptsArgs      bool   `yaml:"accepts_args"`
	AcceptsInput     bool   `yaml:"accept_input"`
	// DefaultArgs is a whitespace-delimited token list placed before caller args.
	DefaultArgs string `yaml:"default_args,omitempty"`
	// ContentType, when set, declares the MIME type of the command's stdout.
	ContentType        string `yaml:"content_type,omitempty"`
	ContentDisposition string `yaml:"content_disposition,omitempty"`
}

// Prompt is a named text snippet. Exactly one of Content, Path or URL is set
// in the document; Text holds the materialized content once loaded.
type Prompt struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Content     *string `yaml:"content,omitempty"`
	Path        *string `yaml:"path,omitempty"`
	URL         *string `yaml:"url,omitempty"`

	text string
}

// Text returns the prompt content resolved at load time.
func (p Prompt) Text() string { return p.text }

// Resource is a named file or http(s) URL.
type Resource struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Path        string `yaml:"path"`
}

// Catalog holds the three lookup tables. It is immutable after construction
// and safe for concurrent readers.
type Catalog struct {
	tools     []Tool
	prompts   []Prompt
	resources []Resource

	toolsByName     map[string]int
	promptsByName   map[string]int
	resourcesByName map[string]int
}

// Tool looks up a tool by exact name.
func (c *Catalog) Tool(name string) (Tool, bool) {
	if c == nil {
		return Tool{}, false
	}
	i, ok := c.toolsByName[name]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// Prompt looks up a prompt by exact name.
func (c *Catalog) Prompt(name string) (Prompt, bool) {
	if c == nil {
		return Prompt{}, false
	}
	i, ok := c.promptsByName[name]
	if !ok {
		return Prompt{}, false
	}
	return c.prompts[i], true
}

// Resource looks up a resource by exact name.
func (c *Catalog) Resource(name string) (Resource, bool) {
	if c == nil {
		return Resource{}, false
	}
	i, ok := c.resourcesByName[name]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

// Tools returns the tools in declaration order.
func (c *Catalog) Tools() []Tool {
	if c == nil {
		return nil
	}
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Prompts returns the prompts in declaration order.
func (c *Catalog) Prompts() []Prompt {
	if c == nil {
		return nil
	}
	out := make([]Prompt, len(c.prompts))
	copy(out, c.prompts)
	return out
}

// Resources returns the resources in declaration order.
func (c *Catalog) Resources() []Resource {
	if c == nil {
		return nil
	}
	out := make([]Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// newCatalog checks names and prompt sources and builds the indexes. Prompt
// text is not touched.
func newCatalog(tools []Tool, prompts []Prompt, resources []Resource) (*Catalog, error) {
	c := &Catalog{
		tools:           append([]Tool(nil), tools...),
		prompts:         append([]Prompt(nil), prompts...),
		resources:       append([]Resource(nil), resources...),
		toolsByName:     make(map[string]int, len(tools)),
		promptsByName:   make(map[string]int, len(prompts)),
		resourcesByName: make(map[string]int, len(resources)),
	}

	for i, t := range c.tools {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tool #%d has no name", ErrInvalidTool, i+1)
		}
		if t.Command == "" {
			return nil, fmt.Errorf("%w: tool %q has no command", ErrInvalidTool, t.Name)
		}
		if _, dup := c.toolsByName[t.Name]; dup {
			return nil, fmt.Errorf("%w: tool %q", ErrDuplicateName, t.Name)
		}
		c.toolsByName[t.Name] = i
	}

	for i, p := range c.prompts {
		if _, dup := c.promptsByName[p.Name]; dup {
			return nil, fmt.Errorf("%w: prompt %q", ErrDuplicateName, p.Name)
		}
		if err := validatePromptSource(p); err != nil {
			return nil, err
		}
		c.promptsByName[p.Name] = i
	}

	for i, r := range c.resources {
		if _, dup := c.resourcesByName[r.Name]; dup {
			return nil, fmt.Errorf("%w: resource %q", ErrDuplicateName, r.Name)
		}
		c.resourcesByName[r.Name] = i
	}

	return c, nil
}

func validatePromptSource(p Prompt) error {
	hasContent, hasPath, hasURL := p.Content != nil, p.Path != nil, p.URL != nil
	switch {
	case !hasContent && !hasPath && !hasURL:
		return fmt.Errorf("%w: prompt %q must have either 'content', 'path', or 'url' specified", ErrInvalidPrompt, p.Name)
	case hasContent && (hasPath || hasURL):
		return fmt.Errorf("%w: prompt %q cannot have both 'content' and 'path'/'url' specified", ErrInvalidPrompt, p.Name)
	case hasPath && hasURL:
		return fmt.Errorf("%w: prompt %q cannot have both 'path' and 'url' specified", ErrInvalidPrompt, p.Name)
	}
	return nil
}
