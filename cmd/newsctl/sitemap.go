package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/config"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Inspect and publish the sitemap",
}

var sitemapIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Collect and print the article ids the sitemap lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, cfg *config.Config, services *app.Services) error {
			ids, err := services.IDs.IDs(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var sitemapPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the sitemap index and chunks into object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, cfg *config.Config, services *app.Services) error {
			result, err := services.Sitemap.Publish(ctx, services.Storage)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		})
	},
}

func init() {
	sitemapCmd.AddCommand(sitemapIDsCmd)
	sitemapCmd.AddCommand(sitemapPublishCmd)
}
