// Package main provides the tally CLI: it totals and ranks student scores
// from the built-in sample, a YAML/JSON file or stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/tally/internal/adapters/report"
	"github.com/okian/tally/internal/adapters/source"
	"github.com/okian/tally/internal/config"
	"github.com/okian/tally/internal/domain/model"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks bad flags or arguments.
var errUsage = errors.New("usage")

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "tally: %v\n", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to exitUserError for bad input and exitSysError
// for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, model.ErrInvalidRecord),
		errors.Is(err, source.ErrDecode),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, report.ErrUnknownFormat):
		return exitUserError
	default:
		return exitSysError
	}
}
