// Package mcpservice answers MCP requests against a fixed catalog of
// operator-configured tools, prompts and resources.
//
// Each inbound line is parsed once into a typed Request (see ParseRequest)
// and then routed to its handler. Notifications produce no reply. Unknown
// tools, prompts and resources are JSON-RPC errors, while a tool that runs
// and fails (or cannot be started) is a normal result with isError set.
//
// Quick start:
//
//	cat, err := catalog.Load(ctx, "mycommand-tools.yaml")
//	if err != nil { ... }
//	srv := mcpservice.New(cat, mcpservice.WithLogger(logger))
//	reply, ok := srv.Handle(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
//	if ok {
//	    os.Stdout.Write(append(reply, '\n'))
//	}
//
// The stdio package drives Handle from a line-oriented stream.
package mcpservice
