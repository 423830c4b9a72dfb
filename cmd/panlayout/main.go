// Command panlayout parses handpan notation and draws note layouts.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/internal/cli"
	"github.com/panforge/panlayout/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	os.Exit(exitCode(err))
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline, cache and HTTP events")

	// The root hook reads the level, so set it first.
	pre := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if pre == nil {
			return nil
		}
		return pre(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		if code := errors.GetCode(err); code != "" {
			c.Logger.Debug("failed", "code", code, "err", err)
		}
	}
	return err
}

// exitCode is 0 on success, 130 after an interrupt, 2 for input the user can
// fix, and 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPitchClass, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLayout, errors.ErrCodeParseFailure,
		errors.ErrCodePresetNotFound, errors.ErrCodeNotFound:
		return 2
	}
	return 1
}
