package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"news-engine/bootstrap"
	"news-engine/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Run(ctx); err != nil {
		logger.Logger.Error("news engine exited with error", "err", err)
		os.Exit(1)
	}
}
