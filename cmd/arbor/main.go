package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/internal/cli"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// Exit codes.
const (
	exitError       = 1
	exitUsage       = 2   // invalid flags, ids, formats or config
	exitInterrupted = 130 // SIGINT, by shell convention
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, cli.StyleError.Render("Error: "+arborerrors.UserMessage(err)))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if arborerrors.IsUsage(err) {
		return exitUsage
	}
	return exitError
}

func run(ctx context.Context) error {
	var (
		verbose   bool
		logFormat string
	)

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output: text, json, logfmt")

	// Apply logging flags before the command's own setup runs.
	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if err := c.SetLogFormat(logFormat); err != nil {
			return err
		}
		if setup != nil {
			return setup(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
