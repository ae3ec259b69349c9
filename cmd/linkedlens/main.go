package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rewired-gh/linkedlens/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = version
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		output.NewPrinter(output.PrinterOptions{}).FormatError(cliErr)
		stop()
		os.Exit(cliErr.ExitCode)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	stop()
	os.Exit(output.ExitGeneral)
}
