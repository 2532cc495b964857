package stdio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Dispatcher answers one inbound line. ok=false means nothing is written.
type Dispatcher interface {
	Handle(ctx context.Context, line []byte) (reply []byte, ok bool)
}

// Handler is a single-connection stdio transport that reads newline-delimited
// JSON-RPC messages from an io.Reader and writes replies to an io.Writer. By
// default, it uses os.Stdin and os.Stdout.
//
// The handler is transport-only; it delegates all MCP semantics to the
// Dispatcher.
type Handler struct {
	srv Dispatcher
	r   io.Reader
	w   io.Writer
	l   *slog.Logger
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(srv Dispatcher, opts ...Option) *Handler {
	h := &Handler{
		srv: srv,
		r:   os.Stdin,
		w:   os.Stdout,
		l:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the read loop until EOF on the reader. Lines are handled strictly
// one after another: the next line is not read until the previous reply has
// been written and flushed. Blank lines are skipped.
//
// Serve returns nil on EOF, the read or write error otherwise, and ctx.Err()
// when the context is cancelled between lines.
func (h *Handler) Serve(ctx context.Context) error {
	br := bufio.NewReader(h.r)
	bw := bufio.NewWriter(h.w)

	h.l.InfoContext(ctx, "stdio.serve.start")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := br.ReadBytes('\n')
		if line := bytes.TrimSpace(raw); len(line) > 0 {
			if err := h.handleLine(ctx, bw, line); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				h.l.InfoContext(ctx, "stdio.serve.eof")
				return nil
			}
			h.l.ErrorContext(ctx, "stdio.read.fail", slog.String("err", readErr.Error()))
			return fmt.Errorf("failed to read from stdin: %w", readErr)
		}
	}
}

func (h *Handler) handleLine(ctx context.Context, bw *bufio.Writer, line []byte) error {
	reply, ok := h.srv.Handle(ctx, line)
	if !ok {
		return nil
	}
	if _, err := bw.Write(reply); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush reply: %w", err)
	}
	return nil
}
