// Package main is the entry point for the stormview viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/stormview/internal/app"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, ok := parseArgs(os.Args[1:], os.Stderr)
	if !ok {
		return code
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stormview must be run in a terminal")
		return exitError
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		// Check if it's a normal quit using errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}

// parseArgs parses the command line. When ok is false the process should
// exit with code.
func parseArgs(args []string, stderr io.Writer) (opts app.Options, code int, ok bool) {
	fs := flag.NewFlagSet("stormview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "stormview - modal terminal text viewer\n\n")
		fmt.Fprintf(stderr, "Usage: stormview [file]\n\n")
		fmt.Fprintf(stderr, "Keys:\n")
		fmt.Fprintf(stderr, "  h j k l     move (normal mode)\n")
		fmt.Fprintf(stderr, "  arrows      move (insert mode)\n")
		fmt.Fprintf(stderr, "  i / Esc     enter / leave insert mode\n")
		fmt.Fprintf(stderr, "  q           quit\n")
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  STORMVIEW_CONFIG    config file (TOML or YAML)\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, exitOK, false
		}
		return opts, exitUsage, false
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected at most one file, got %d\n", fs.NArg())
		fs.Usage()
		return opts, exitUsage, false
	}

	return opts, exitOK, true
}
