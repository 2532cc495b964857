//go:build integration

package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// startMCPClient launches the server with go run and connects an MCP client
// to it over stdio.
func startMCPClient(t *testing.T, configPath string) *mcp.ClientSession {
	t.Helper()

	cmd := exec.Command("go", "run", ".", "--config", configPath, "--log-level", "debug")
	cmd.Stderr = os.Stderr

	transport := &mcp.CommandTransport{Command: cmd}
	client := mcp.NewClient(&mcp.Implementation{Name: "integration-client", Version: "dev"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		t.Fatalf("connect MCP client: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("integration notes"), 0o600); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	cfg := filepath.Join(dir, "mycommand-tools.yaml")
	doc := `
tools:
  - name: say
    description: Echo words back
    command: echo
    path: ` + dir + `
    accepts_args: true
    accept_input: false
    default_args: hello
prompts:
  - name: greet
    description: Greeting
    content: Hello from the catalog
resources:
  - name: notes
    description: Notes
    path: ` + notes + `
`
	if err := os.WriteFile(cfg, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfg
}

func TestStdioServerWithSDKClient(t *testing.T) {
	session := startMCPClient(t, writeConfig(t))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "say" {
		t.Fatalf("tools: %+v", tools.Tools)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "say",
		Arguments: map[string]any{"args": "big world"},
	})
	if err != nil {
		t.Fatalf("call say: %v", err)
	}
	if result.IsError || len(result.Content) != 1 {
		t.Fatalf("call say: %+v", result)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("want text content, got %T", result.Content[0])
	}
	var cr struct {
		StatusCode int    `json:"status_code"`
		Output     string `json:"output"`
	}
	if err := json.Unmarshal([]byte(text.Text), &cr); err != nil {
		t.Fatalf("decode command result: %v", err)
	}
	if cr.StatusCode != 0 || strings.TrimSpace(cr.Output) != "hello big world" {
		t.Fatalf("command result: %+v", cr)
	}

	prompt, err := session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "greet"})
	if err != nil {
		t.Fatalf("get prompt: %v", err)
	}
	if msg, ok := prompt.Messages[0].Content.(*mcp.TextContent); !ok || msg.Text != "Hello from the catalog" {
		t.Fatalf("prompt: %+v", prompt.Messages[0].Content)
	}

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "file://notes"})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(res.Contents) != 1 || res.Contents[0].Text != "integration notes" || res.Contents[0].MIMEType != "text/plain" {
		t.Fatalf("resource: %+v", res.Contents)
	}

	if _, err := session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "missing"}); err == nil {
		t.Fatalf("want error for unknown prompt")
	}
}
