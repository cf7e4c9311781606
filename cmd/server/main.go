package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dhkim-dev/inkpress/blog/application"
	"github.com/dhkim-dev/inkpress/blog/persistence"
	"github.com/dhkim-dev/inkpress/internal/config"
	"github.com/dhkim-dev/inkpress/internal/middleware"
	"github.com/dhkim-dev/inkpress/internal/rest"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("Unknown log level")
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The highlighter is shared across all renders; construct it once here
	// and inject it rather than hiding it behind a global.
	highlighter := application.NewHighlighter()
	renderer := application.NewMarkdownRenderer(highlighter)

	postRepo, err := persistence.NewPostRepository(cfg.ContentDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ContentDir).Msg("Failed to open content directory")
	}

	postService := application.NewPostService(postRepo, renderer)

	r := gin.New()
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	rest.NewApi(r, postService, highlighter)

	srv := &http.Server{
		Addr:    cfg.ServerAddr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddr()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
