package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
