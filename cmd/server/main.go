package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if cfg.AdminUserName != "" && cfg.AdminPassword != "" {
		if err := db.EnsureUser(cfg.AdminUserName, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure admin user")
		}
	}

	r := router.SetupRouter(cfg.SessionSecret, cfg.UploadDir, cfg.UploadURLPath)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
