// Package main provides the entry point for the baton CLI.
package main

import (
	"context"
	"os"

	"github.com/crewlab/baton/internal/cli"
	"github.com/crewlab/baton/internal/signal"
)

// Build information set via ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background())
	defer stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info); err != nil {
		stop()
		os.Exit(cli.ExitCodeForError(err))
	}
}
