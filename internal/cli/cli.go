// Package cli wires the mycommandmcp process: flags and environment, the
// logger, the catalog, the optional ops listener and the stdio loop.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ggoodman/mycommandmcp/catalog"
	"github.com/ggoodman/mycommandmcp/internal/logging"
	"github.com/ggoodman/mycommandmcp/internal/metrics"
	"github.com/ggoodman/mycommandmcp/internal/ops"
	"github.com/ggoodman/mycommandmcp/mcpservice"
	"github.com/ggoodman/mycommandmcp/stdio"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0"

const (
	FlagConfig      = "config"
	FlagLogFile     = "log-file"
	FlagLogLevel    = "log-level"
	FlagMetricsAddr = "metrics-addr"
)

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand(func(ctx context.Context, s Settings) error {
		return Run(ctx, s, os.Stdin, os.Stdout, os.Stderr)
	}).ExecuteContext(context.Background())
}

// NewRootCommand builds the root command. run receives the merged settings.
func NewRootCommand(run func(ctx context.Context, s Settings) error) *cobra.Command {
	var flags Settings

	cmd := &cobra.Command{
		Use:   "mycommandmcp",
		Short: "MCP server exposing configured system commands, prompts and resources over stdio",
		Long: `mycommandmcp speaks the Model Context Protocol over stdin/stdout.

Tools, prompts and resources are declared in a YAML file (default
mycommand-tools.yaml in the working directory or the user configuration
directory). Logs go to stderr and, optionally, to a log file.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := SettingsFromEnv()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed(FlagConfig) {
				s.Config = flags.Config
			}
			if f.Changed(FlagLogFile) {
				s.LogFile = flags.LogFile
			}
			if f.Changed(FlagLogLevel) {
				s.LogLevel = flags.LogLevel
			}
			if f.Changed(FlagMetricsAddr) {
				s.MetricsAddr = flags.MetricsAddr
			}
			return run(cmd.Context(), s)
		},
	}

	cmd.Flags().StringVarP(&flags.Config, FlagConfig, "c", "", "path to the YAML catalog file")
	cmd.Flags().StringVarP(&flags.LogFile, FlagLogFile, "l", "", "append logs to this file as well as stderr")
	cmd.Flags().StringVar(&flags.LogLevel, FlagLogLevel, "info", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flags.MetricsAddr, FlagMetricsAddr, "", "serve /healthz and /metrics on this address (disabled when empty)")
	return cmd
}

// Run starts the server and blocks until stdin reaches EOF. Any failure
// before the loop starts (bad settings, unreadable or invalid catalog) is
// returned without serving a single request.
func Run(ctx context.Context, s Settings, stdin io.Reader, stdout, stderr io.Writer) error {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Options{LogFile: s.LogFile, Level: level, Stderr: stderr})
	if err != nil {
		return err
	}
	defer log.Close()

	log.InfoContext(ctx, "server.start", slog.String("version", Version))

	path, err := catalog.FindConfigFile(s.Config)
	if err != nil {
		log.ErrorContext(ctx, "config.find.fail", slog.String("err", err.Error()))
		return err
	}
	log.InfoContext(ctx, "config.file", slog.String("path", path))

	cat, err := catalog.NewLoader(catalog.WithLogger(log.Logger)).Load(ctx, path)
	if err != nil {
		log.ErrorContext(ctx, "config.load.fail", slog.String("err", err.Error()))
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logCatalog(ctx, log.Logger, cat)

	m := metrics.New()
	if s.MetricsAddr != "" {
		opsSrv := ops.New(s.MetricsAddr, m, log.Logger)
		if err := opsSrv.Start(); err != nil {
			return fmt.Errorf("failed to start ops listener: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = opsSrv.Shutdown(shutdownCtx)
		}()
	}

	srv := mcpservice.New(cat,
		mcpservice.WithLogger(log.Logger),
		mcpservice.WithMetrics(m),
		mcpservice.WithVersion(Version),
	)
	h := stdio.NewHandler(srv, stdio.WithIO(stdin, stdout), stdio.WithLogger(log.Logger))
	if err := h.Serve(ctx); err != nil {
		return err
	}
	log.InfoContext(ctx, "server.stop")
	return nil
}

func logCatalog(ctx context.Context, log *slog.Logger, cat *catalog.Catalog) {
	tools, prompts, resources := cat.Tools(), cat.Prompts(), cat.Resources()
	log.InfoContext(ctx, "catalog.loaded",
		slog.Int("tools", len(tools)),
		slog.Int("prompts", len(prompts)),
		slog.Int("resources", len(resources)),
	)
	for _, t := range tools {
		log.InfoContext(ctx, "catalog.tool",
			slog.String("name", t.Name),
			slog.String("command", t.Command),
			slog.String("path", t.WorkingDirectory),
			slog.Bool("accepts_args", t.AcceptsArgs),
			slog.Bool("accept_input", t.AcceptsInput),
			slog.String("content_type", t.ContentType),
		)
	}
	for _, p := range prompts {
		log.InfoContext(ctx, "catalog.prompt", slog.String("name", p.Name), slog.Int("bytes", len(p.Text())))
	}
	for _, r := range resources {
		log.InfoContext(ctx, "catalog.resource", slog.String("name", r.Name), slog.String("path", r.Path))
	}
}
