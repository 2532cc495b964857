// Package runner executes catalog tools as operating system processes.
//
// Argument composition is deliberately simple: when a tool accepts
// arguments, its default_args and the caller's args are each split on
// whitespace and appended in that order. There is no quoting, so a single
// argument cannot contain whitespace. No shell is involved.
package runner

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/ggoodman/mycommandmcp/catalog"
	"github.com/ggoodman/mycommandmcp/internal/content"
	"github.com/ggoodman/mycommandmcp/internal/metrics"
)

// UnknownStatus is reported when the platform gives no exit code, for
// example when the process was killed by a signal.
const UnknownStatus = -1

// ErrToolNotFound is returned when no tool has the requested name.
var ErrToolNotFound = errors.New("tool not found")

// SpawnError reports that the process could not be started at all.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn command %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// CommandResult is the outcome of one tool run.
type CommandResult struct {
	StatusCode int `json:"status_code"`
	// Output is stdout as text, or base64 when IsBinary.
	Output string `json:"output"`
	// Error is stderr, always text.
	Error              string  `json:"error"`
	ContentType        *string `json:"content_type"`
	ContentDisposition *string `json:"content_disposition"`
	IsBinary           bool    `json:"is_binary"`
}

// Failed reports a non-zero exit.
func (r *CommandResult) Failed() bool { return r.StatusCode != 0 }

// Tokenize splits s on runs of whitespace. Quotes have no meaning.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records every run.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// Runner spawns the tools of a catalog.
type Runner struct {
	tools   *catalog.Catalog
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a Runner over the tools of cat.
func New(cat *catalog.Catalog, opts ...Option) *Runner {
	r := &Runner{
		tools: cat,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Args returns the argv (without the command) a run of tool would use.
func Args(tool catalog.Tool, args string) []string {
	if !tool.AcceptsArgs {
		return nil
	}
	argv := Tokenize(tool.DefaultArgs)
	return append(argv, Tokenize(args)...)
}

// Run executes the named tool and waits for it to exit. A non-zero exit is
// not an error; it is reported through CommandResult.StatusCode. input is
// only delivered when the tool accepts input, and stdin is closed after it.
func (r *Runner) Run(ctx context.Context, name string, args string, input *string) (*CommandResult, error) {
	tool, ok := r.tools.Tool(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	argv := Args(tool, args)
	cmd := exec.CommandContext(ctx, tool.Command, argv...)
	cmd.Dir = tool.WorkingDirectory

	if tool.AcceptsInput {
		var in string
		if input != nil {
			in = *input
		}
		cmd.Stdin = strings.NewReader(in)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.InfoContext(ctx, "tool.run.start",
		slog.String("command", tool.Command),
		slog.Any("argv", argv),
		slog.String("dir", tool.WorkingDirectory),
	)

	start := time.Now()
	status := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.metrics.ObserveToolRun(name, metrics.OutcomeSpawn, time.Since(start))
			r.log.ErrorContext(ctx, "tool.spawn.fail", slog.String("command", tool.Command), slog.String("err", err.Error()))
			return nil, &SpawnError{Command: tool.Command, Err: err}
		}
		status = exitErr.ExitCode()
	}
	elapsed := time.Since(start)

	outcome := metrics.OutcomeOK
	if status != 0 {
		outcome = metrics.OutcomeToolFail
	}
	r.metrics.ObserveToolRun(name, outcome, elapsed)
	r.log.InfoContext(ctx, "tool.run.done",
		slog.String("command", tool.Command),
		slog.Int("status", status),
		slog.Duration("elapsed", elapsed),
	)

	res := &CommandResult{
		StatusCode: status,
		Error:      strings.ToValidUTF8(stderr.String(), "\uFFFD"),
		IsBinary:   tool.ContentType != "" && content.IsBinary(tool.ContentType),
	}
	if res.IsBinary {
		res.Output = base64.StdEncoding.EncodeToString(stdout.Bytes())
	} else {
		res.Output = strings.ToValidUTF8(stdout.String(), "\uFFFD")
	}
	if tool.ContentType != "" {
		res.ContentType = &tool.ContentType
	}
	if tool.ContentDisposition != "" {
		res.ContentDisposition = &tool.ContentDisposition
	}
	return res, nil
}
