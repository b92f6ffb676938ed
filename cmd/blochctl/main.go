// Package main is the entry point for the blochctl CLI binary.
package main

import (
	"log/slog"
	"os"

	"github.com/blochwalk/blochwalk/internal/cli"
)

// Version is the semantic version, injected via ldflags.
var Version = "dev"

func main() {
	logger := cli.NewLogger(os.Stderr, slog.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger, Version); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
