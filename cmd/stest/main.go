package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/stest/stest/cli"
)

func main() {
	os.Exit(run())
}

// run executes stest and returns the exit code, so deferred cleanup runs
// before os.Exit.
func run() int {
	// Interrupts cancel the run; output already written stays written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
