package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "program terminated (signal %v)\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args[1:])
	cmd.SetIn(stdin)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "gitcat error: %v\n", err)
	// saves are atomic, so the previous file is intact
	if errors.Is(err, catalogue.ErrSave) {
		fmt.Fprintln(w, "the catalogue file was left unchanged")
	}
}
