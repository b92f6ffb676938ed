// Package cli defines the command-line interface for blochctl.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// defaultTimeout bounds a single remote command run.
const defaultTimeout = 30 * time.Second

// Options stores global CLI options shared between commands.
type Options struct {
	// Server is the base URL of a running walk service. Empty means
	// local mode: gates are simulated in-process.
	Server string

	// Timeout bounds remote command execution.
	Timeout time.Duration
}

// ParseLevel converts a textual log level into a slog.Level.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger constructs a slog.Logger with a tint handler and level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level: level,
	})

	return slog.New(handler)
}

// Execute builds the root command, runs it with the provided args and
// logger, and returns any error.
func Execute(args []string, logger *slog.Logger, version string) error {
	if logger == nil {
		logger = NewLogger(os.Stderr, slog.LevelInfo)
	}

	rootOpts := &Options{
		Timeout: defaultTimeout,
	}

	rootCmd := newRootCommand(rootOpts, logger, version)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags
// and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blochctl",
		Short: "blochctl walks a qubit around the Bloch sphere",
		Long: "blochctl applies single-qubit gate sequences and reports the resulting " +
			"Bloch-sphere state. It simulates locally by default, or drives a running " +
			"walk service when --server is set.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := ParseLevel(cmd.Flag("log-level").Value.String())
			logger = NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "Base URL of a running walk service (empty simulates locally)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaultTimeout, "Timeout for remote commands")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newWalkCommand(opts),
		newGatesCommand(opts),
		newVersionCommand(version),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext returns the logger stored in the command context,
// or a default stderr logger when none is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return NewLogger(os.Stderr, slog.LevelInfo)
}
