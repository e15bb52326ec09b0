package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("chat-agent failed", "err", err)
		os.Exit(1)
	}
}
