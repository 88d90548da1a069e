package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/rowstream/internal/config"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result := execute(ctx, cfg)
	result.Print()
	return result.ExitCode
}
