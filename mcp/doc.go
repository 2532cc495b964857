// Package mcp contains the protocol data types and constants exchanged by the
// command server. It mirrors the wire representation of the Model Context
// Protocol for the subset of methods the server answers: handshake, tools,
// prompts and resources.
//
// The package is free of transport and dispatch logic. The stdio loop and the
// mcpservice dispatcher import these types and serialize them inside JSON-RPC
// envelopes.
//
// # Method Names
//
// JSON-RPC method names are enumerated as Method constants (e.g.
// ToolsListMethod). Anything beginning with NotificationPrefix is a
// notification and is never answered.
//
// Example (tool result construction):
//
//	res := &mcp.CallToolResult{
//	    Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: "hello"}},
//	}
//
// # Compatibility
//
// LatestProtocolVersion is the single protocol date advertised during
// initialize. No version negotiation takes place.
package mcp
