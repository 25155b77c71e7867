package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quillhub/cmd/app"
	"quillhub/internal/config"
	"quillhub/internal/logging"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info(ctx, "server started", "addr", a.Server.Addr, "database", cfg.DB.DbNAME)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info(shutdownCtx, "server stopped")
}
