package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quillhub/internal/config"
	"quillhub/internal/database"
	handlers "quillhub/internal/handler"
	"quillhub/internal/logging"
	"quillhub/internal/middleware"
	"quillhub/internal/repository"
	"quillhub/internal/service"
	"quillhub/internal/storage"
)

type App struct {
	DB       database.MethodsDB
	Services *service.Service
	Server   *http.Server
}

// New connects the database and object storage and assembles the HTTP server.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, err
	}
	if err := minioClient.EnsureBucket(ctx, cfg.MinIO.Region); err != nil {
		// uploads fail until the bucket exists; the rest of the API still works
		log.Warn(ctx, "object storage unavailable", "error", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)
	h := handlers.NewHandlers(services, cfg, db, log)

	handlerChain := middleware.Chain(
		h.Routes(),
		middleware.SessionMiddleware(services.Session, h.Cookie, log),
		middleware.CORSMiddleware,
		middleware.RecoverMiddleware(log),
		middleware.LoggingMiddleware(log),
	)

	return &App{
		DB:       db,
		Services: services,
		Server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
			Handler:           handlerChain,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Shutdown stops accepting requests, drains in-flight ones and closes the pool.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	return a.DB.CloseDB()
}
