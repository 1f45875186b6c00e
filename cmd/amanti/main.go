package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/NethermindEth/amanti/pkg/amanti"
	"github.com/NethermindEth/amanti/pkg/amanti/debug"
	"github.com/NethermindEth/amanti/pkg/amanti/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !debug.IsDebugGin() {
		gin.SetMode(gin.ReleaseMode)
	}

	setupResult, err := setup.Setup(ctx)
	if err != nil {
		slog.Error("failed to setup", "error", err)
		os.Exit(1)
	}

	serverConfig, err := amanti.NewServerConfigFromSetupResult(setupResult)
	if err != nil {
		slog.Error("failed to create server config", "error", err)
		os.Exit(1)
	}

	server, err := amanti.NewServer(ctx, serverConfig)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
