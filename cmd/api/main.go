package main

import (
	"school-site-backend/internal/config"
	"school-site-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is for development; production uses real environment
	// variables.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Init(cfg.App.Environment, cfg.CMS.DebugLogging)

	Serve(cfg)
}
