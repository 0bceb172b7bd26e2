package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrclmr/genaudio/cmd/genaudio"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.ExecuteContext(ctx, version)
	stop()
	if err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
