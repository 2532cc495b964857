// Package stdio implements a minimal single-connection MCP transport over
// stdin/stdout. It is intended for servers launched as subprocesses by an MCP
// client.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 client
//	Concurrency      : one request at a time, in arrival order
//	Shutdown         : EOF on the input stream
//	Transport        : newline-delimited JSON-RPC
//
// Options allow supplying alternate io.Reader / io.Writer or a custom logger.
// Nothing but replies is ever written to the writer; logs belong elsewhere.
//
// Example:
//
//	srv := mcpservice.New(cat)
//	h := stdio.NewHandler(srv)
//	if err := h.Serve(context.Background()); err != nil { log.Fatal(err) }
package stdio
