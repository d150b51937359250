package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return execute(newCommandContext(stderr), args, stdin, stdout)
}

// execute runs the command tree. Every failure, including a panic, ends as a
// single error object on stdout and exit status 1.
func execute(ctx *commandContext, args []string, stdin io.Reader, stdout io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorWithContext(ctx.loggerValue(), "unhandled panic in scraper", "scrape_panic",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())))
			writeError(stdout, fmt.Sprintf("unhandled error in scraper: %v", r))
			code = 1
		}
	}()

	cmd := newRootCommand(ctx)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(ctx.stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logging.ErrorWithContext(ctx.loggerValue(), "scrape failed", "scrape_failed",
			logging.Error(err),
			logging.String("error_class", services.Classify(err)))
		writeError(stdout, err.Error())
		return 1
	}
	return 0
}
