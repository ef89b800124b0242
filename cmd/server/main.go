package main

import (
	"context"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobkit/internal/config"
	"github.com/honeycarbs/jobkit/internal/server"
	"github.com/honeycarbs/jobkit/pkg/logging"
	"github.com/honeycarbs/jobkit/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	app, cleanup, err := server.InitializeApp(initCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialize application", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		app,
	)

	logger.Info("server initialized and starting",
		"addr", app.Server.Addr(),
		"storage", cfg.Storage.Backend,
		"provider", cfg.Search.Provider,
	)

	if err := app.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
	} else {
		logger.Info("server stopped")
	}
}
