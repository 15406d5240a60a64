package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/newsnexus/internal/api"
	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/logger"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: logOutput(cfg.LogFile),
		Pretty: !cfg.IsProduction(),
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().
		Str("env", cfg.Env).
		Str("site_url", cfg.SiteURL).
		Str("upstream", cfg.UpstreamBaseURL).
		Msg("Starting application...")

	services, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer func() {
		log.Info().Msg("Closing response cache...")
		if err := services.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing response cache")
		}
	}()

	handlers, err := api.NewHandlers(cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize handlers")
	}
	server := api.NewServer(cfg, handlers)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func logOutput(file string) string {
	if file == "" {
		return "stdout"
	}
	return file
}
