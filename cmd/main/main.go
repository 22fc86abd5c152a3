package main

import (
	"context"
	"errors"
	"io/fs"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/app"
	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Msgf("godotenv.Load: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Msgf("cant initialize config: %v", err)
	}

	initLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Msgf("app.New: %v", err)
	}

	if err = a.Run(ctx); err != nil {
		log.Error().Msgf("app.Run: %v", err)
	}
}
