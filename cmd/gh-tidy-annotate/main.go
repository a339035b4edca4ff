package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/githubnext/gh-tidy-annotate/pkg/cli"
	"github.com/githubnext/gh-tidy-annotate/pkg/console"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

func main() {
	// Set version information in the CLI package
	cli.SetVersionInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewAnnotateCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		// The usage line was already printed on stdout
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
