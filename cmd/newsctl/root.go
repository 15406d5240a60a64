package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/logger"
)

var flagLogLevel string

// newServices is replaced in tests.
var newServices = func(ctx context.Context, cfg *config.Config) (*app.Services, error) {
	return app.New(ctx, cfg)
}

var rootCmd = &cobra.Command{
	Use:           "newsctl",
	Short:         "Query the news feed and manage sitemaps",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Level: flagLogLevel, Output: "stderr", Pretty: true})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(sitemapCmd)
}

// withServices loads the configuration and runs fn against freshly built
// services, closing them afterwards.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, services *app.Services) error) error {
	cfg := config.Load()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	return fn(ctx, cfg, services)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
