package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/middleware"
)

// NewServer creates the fiber app with the global middleware and every route.
func NewServer(cfg *config.Config, handlers *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "newsnexus",
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	SetupRoutes(app, handlers, cfg)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, cfg *config.Config) {
	app.Use(etag.New())

	// Pages
	app.Get("/", handlers.HomePage)
	app.Get("/news/:id", handlers.ArticlePage)

	// SEO artifacts
	app.Get("/robots.txt", handlers.RobotsTxt)
	app.Get("/sitemap.xml", handlers.SitemapIndex)
	app.Get("/sitemap/:file", handlers.SitemapChunk)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/dates", handlers.GetDates)

	articles := api.Group("/articles")
	{
		articles.Get("", middleware.ValidateQuery[ListQuery](), handlers.ListArticles)
		articles.Get("/:id", handlers.GetArticle)
	}

	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/sitemap/publish", handlers.PublishSitemap)
		admin.Post("/sitemap/invalidate", handlers.InvalidateSitemap)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
