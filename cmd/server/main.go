package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"qalam/internal/config"
	"qalam/internal/database"
	"qalam/internal/engine"
	"qalam/internal/handlers"
	"qalam/internal/middleware"
	"qalam/internal/router"
	"qalam/internal/storage"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	middleware.ConfigureJWT(cfg.Auth.JWTSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	images, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to initialize image storage", "error", err)
		os.Exit(1)
	}

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, db, images, metrics)

	server := handlers.NewServer(system, eng, db, images, metrics)
	r := router.New(server, cfg.AllowedOrigins, cfg.DefaultLocale)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting server", "addr", addr, "database", cfg.Database.Name)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
