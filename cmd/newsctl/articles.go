package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/datetree"
	"github.com/bilgisen/newsnexus/internal/models"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Print the navigable date tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if raw, _ := cmd.Flags().GetString("today"); raw != "" {
			t, err := models.ParseIsoDate(raw, time.Local)
			if err != nil {
				return err
			}
			now = t
		}
		return printJSON(cmd.OutOrStdout(), datetree.Build(now))
	},
}

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List one page of articles for a date",
	Long: `List one page of articles for a date.

Examples:
  newsctl articles --date 2026-02-07
  newsctl articles --date 2026-02-07 --cursor 20 --size 10`,
	RunE: runArticles,
}

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticle,
}

func init() {
	datesCmd.Flags().String("today", "", "treat this YYYY-MM-DD date as today")

	articlesCmd.Flags().String("date", "", "date to list (YYYY-MM-DD, defaults to today)")
	articlesCmd.Flags().String("cursor", "", "cursor returned by a previous page")
	articlesCmd.Flags().Int("size", 0, "page size (defaults to PAGE_SIZE)")
}

func runArticles(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	cursor, _ := cmd.Flags().GetString("cursor")
	size, _ := cmd.Flags().GetInt("size")

	return withServices(cmd, func(ctx context.Context, cfg *config.Config, services *app.Services) error {
		if date == "" {
			date = models.Today(services.Now())
		}
		if !models.ValidIsoDate(date) {
			return fmt.Errorf("%w: %q", models.ErrInvalidDate, date)
		}
		if size <= 0 {
			size = cfg.PageSize
		}

		resp, err := services.Source.ListByDate(ctx, date, cursor, size)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func runArticle(cmd *cobra.Command, args []string) error {
	id, err := models.ParseArticleID(args[0])
	if err != nil {
		return err
	}

	return withServices(cmd, func(ctx context.Context, cfg *config.Config, services *app.Services) error {
		detail, err := services.Source.GetDetail(ctx, id)
		if err != nil {
			return err
		}

		sentiment := models.NormalizeSentiment(detail.Sentiment)
		return printJSON(cmd.OutOrStdout(), struct {
			*models.ArticleDetail
			NormalizedSentiment models.Sentiment `json:"normalizedSentiment"`
			SentimentLabel      string           `json:"sentimentLabel"`
		}{detail, sentiment, sentiment.Label()})
	})
}
