package mcp

import "encoding/json"

// Basic types
// Role indicates the role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content block discriminators.
const (
	ContentTypeText     = "text"
	ContentTypeResource = "resource"
)

// Capabilities
// ServerCapabilities advertises server features. The command server has no
// list-changed or subscription support, so each capability is an empty object.
type ServerCapabilities struct {
	Tools     *struct{} `json:"tools,omitempty"`
	Prompts   *struct{} `json:"prompts,omitempty"`
	Resources *struct{} `json:"resources,omitempty"`
}

// ImplementationInfo describes the implementation name and version.
type ImplementationInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Content types
// ContentBlock is a typed content part of a tool result or prompt message.
type ContentBlock struct {
	Type string `json:"type"`
	// For TextContent
	Text string `json:"text,omitzero"`
	// For EmbeddedResource
	Resource *EmbeddedResource `json:"resource,omitempty"`
}

// MarshalJSON always emits "text" on text blocks, even when empty.
func (c ContentBlock) MarshalJSON() ([]byte, error) {
	type plain ContentBlock
	if c.Type != ContentTypeText {
		return json.Marshal(plain(c))
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: c.Type, Text: c.Text})
}

// NewTextContent builds a text block.
func NewTextContent(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// EmbeddedResource is the payload of a "resource" content block produced by a
// tool that declares a content type. URI is a data URI; for binary output the
// payload is inside the URI, otherwise it is carried in Text.
type EmbeddedResource struct {
	URI                string  `json:"uri"`
	MimeType           string  `json:"mimeType"`
	Text               *string `json:"text,omitempty"`
	ContentDisposition string  `json:"contentDisposition,omitzero"`
}

// Tools
// Tool describes a callable tool and its input schema.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"inputSchema"`
}

// ToolInputSchema is a JSON-schema-like description of tool input.
type ToolInputSchema struct {
	Type                 string                    `json:"type"`
	Properties           map[string]SchemaProperty `json:"properties"`
	Required             []string                  `json:"required,omitempty"`
	AdditionalProperties bool                      `json:"additionalProperties,omitzero"`
}

// SchemaProperty is a simplified schema node used in tool schemas.
type SchemaProperty struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitzero"`
}

// Resources
// Resource represents an addressable resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ResourceTemplate describes a template for resource URIs.
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description,omitzero"`
	MimeType    string `json:"mimeType,omitzero"`
}

// ResourceContents is the value of a resource read. Exactly one of Text or
// Blob is set; Blob holds base64.
type ResourceContents struct {
	URI      string  `json:"uri"`
	MimeType string  `json:"mimeType"`
	Text     *string `json:"text,omitempty"`
	Blob     *string `json:"blob,omitempty"`
}

// Prompts
// Prompt describes a named prompt the server can provide.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PromptMessage is a message used in a prompt.
type PromptMessage struct {
	Role    Role         `json:"role"`
	Content ContentBlock `json:"content"`
}

// LatestProtocolVersion is the only protocol version the server advertises.
const LatestProtocolVersion = "2024-11-05"
