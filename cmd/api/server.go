package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-site-backend/internal/config"
	"school-site-backend/pkg/container"

	"github.com/rs/zerolog/log"
)

// Serve builds the dependency graph, starts the HTTP server and blocks
// until a shutdown signal arrives.
func Serve(cfg *config.Config) {
	appContainer, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer appContainer.Cleanup()

	router := SetupRouter(appContainer)

	srv := &http.Server{
		Addr:           ":" + appContainer.Config.App.Port,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().
			Str("port", appContainer.Config.App.Port).
			Str("environment", appContainer.Config.App.Environment).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
