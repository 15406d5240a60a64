package api

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/browse"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/datetree"
	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/middleware"
	"github.com/bilgisen/newsnexus/internal/models"
	"github.com/bilgisen/newsnexus/internal/render"
	"github.com/bilgisen/newsnexus/internal/seo"
)

const (
	// revalidateControl lets shared caches serve a page for five minutes and
	// a stale copy for a day while it refreshes.
	revalidateControl = "public, s-maxage=300, stale-while-revalidate=86400"
	xmlContentType    = "application/xml; charset=utf-8"

	maxListPages = 10
)

// ListQuery is the query string of GET /api/v1/articles.
type ListQuery struct {
	Date   string `query:"date" validate:"required,isodate"`
	Cursor string `query:"cursor" validate:"max=128"`
	Size   int    `query:"size" validate:"omitempty,min=1,max=100"`
}

// ArticleResponse is an article detail with its normalized sentiment.
type ArticleResponse struct {
	*models.ArticleDetail
	NormalizedSentiment models.Sentiment `json:"normalizedSentiment"`
	SentimentLabel      string           `json:"sentimentLabel"`
}

type Handlers struct {
	config   *config.Config
	services *app.Services
	pages    *render.Renderer
}

func NewHandlers(cfg *config.Config, services *app.Services) (*Handlers, error) {
	pages, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	return &Handlers{
		config:   cfg,
		services: services,
		pages:    pages,
	}, nil
}

func (h *Handlers) now() time.Time {
	if h.services.Now != nil {
		return h.services.Now()
	}
	return time.Now()
}

func (h *Handlers) newSession() *browse.Session {
	return browse.New(h.services.Source,
		browse.WithPageSize(h.config.PageSize),
		browse.WithClock(h.now),
	)
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status": "ok",
		"time":   h.now().Format(time.RFC3339),
	}
	if at, ok := h.services.IDs.FetchedAt(); ok {
		resp["sitemapCollectedAt"] = at.Format(time.RFC3339)
	}
	return c.JSON(resp)
}

// GetDates handles GET /api/v1/dates
func (h *Handlers) GetDates(c *fiber.Ctx) error {
	tree := datetree.Build(h.now())
	c.Set(fiber.HeaderCacheControl, revalidateControl)
	c.Set("X-Total-Count", strconv.Itoa(tree.DayCount()))
	return c.JSON(tree)
}

// ListArticles handles GET /api/v1/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	q := middleware.QueryParams[ListQuery](c)
	if q == nil {
		return fiber.ErrUnprocessableEntity
	}

	size := q.Size
	if size == 0 {
		size = h.config.PageSize
	}

	resp, err := h.services.Source.ListByDate(c.UserContext(), q.Date, q.Cursor, size)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	c.Set(fiber.HeaderCacheControl, revalidateControl)
	return c.JSON(resp)
}

// GetArticle handles GET /api/v1/articles/:id
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	id, err := models.ParseArticleID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	detail, err := h.services.Source.GetDetail(c.UserContext(), id)
	if errors.Is(err, feed.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	sentiment := models.NormalizeSentiment(detail.Sentiment)
	c.Set(fiber.HeaderCacheControl, revalidateControl)
	return c.JSON(ArticleResponse{
		ArticleDetail:       detail,
		NormalizedSentiment: sentiment,
		SentimentLabel:      sentiment.Label(),
	})
}

// HomePage handles GET / with optional ?date= and ?pages= for the list.
func (h *Handlers) HomePage(c *fiber.Ctx) error {
	now := h.now()
	today := models.Today(now)

	dates := datetree.Build(now)
	date := c.Query("date")
	if !models.ValidIsoDate(date) || !dates.Contains(date) {
		date = today
	}
	pages := c.QueryInt("pages", 1)
	if pages < 1 {
		pages = 1
	}
	if pages > maxListPages {
		pages = maxListPages
	}

	session := h.newSession()
	ctx := c.UserContext()
	log := logger.Component("api")

	loaded := 0
	if err := session.SelectDate(ctx, date); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("Failed to load article list")
	} else {
		loaded = 1
	}
	for loaded > 0 && loaded < pages && session.Snapshot().HasMore {
		if err := session.LoadMore(ctx); err != nil {
			log.Warn().Err(err).Str("date", date).Msg("Failed to load more articles")
			break
		}
		loaded++
	}

	meta := seo.Home(h.config.SiteURL)
	return h.html(c, fiber.StatusOK, func(buf *bytes.Buffer) error {
		return h.pages.Browse(buf, render.Page{
			Meta:  meta,
			State: session.Snapshot(),
			Dates: dates,
			Today: today,
			Pages: loaded,
		})
	})
}

// ArticlePage handles GET /news/:id
func (h *Handlers) ArticlePage(c *fiber.Ctx) error {
	raw := c.Params("id")
	log := logger.Component("api")

	id, err := models.ParseArticleID(raw)
	if err != nil {
		return h.notFoundPage(c, raw)
	}

	ctx := c.UserContext()
	detail, err := h.services.Source.GetDetail(ctx, id)
	if err != nil {
		if !errors.Is(err, feed.ErrNotFound) {
			log.Warn().Err(err).Int64("id", id).Msg("Failed to load article")
		}
		return h.notFoundPage(c, raw)
	}

	now := h.now()
	today := models.Today(now)
	selected, ok := models.NormalizeIsoDate(detail.PublishedDate)
	if !ok || !models.ValidIsoDate(selected) {
		selected = today
	}

	session := h.newSession()
	if err := session.SelectDate(ctx, selected); err != nil {
		log.Warn().Err(err).Str("date", selected).Msg("Failed to load article list")
	}
	session.Open(detail)

	structured := seo.StructuredData(h.config.SiteURL, detail, selected)
	return h.html(c, fiber.StatusOK, func(buf *bytes.Buffer) error {
		return h.pages.Browse(buf, render.Page{
			Meta:           seo.Article(h.config.SiteURL, detail),
			State:          session.Snapshot(),
			Dates:          datetree.Build(now),
			Today:          today,
			Pages:          1,
			StructuredData: &structured,
		})
	})
}

func (h *Handlers) notFoundPage(c *fiber.Ctx, raw string) error {
	return h.html(c, fiber.StatusNotFound, func(buf *bytes.Buffer) error {
		return h.pages.NotFound(buf, render.Page{Meta: seo.NotFound(h.config.SiteURL, raw)})
	})
}

func (h *Handlers) html(c *fiber.Ctx, status int, fill func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	if status == fiber.StatusOK {
		c.Set(fiber.HeaderCacheControl, revalidateControl)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// RobotsTxt handles GET /robots.txt
func (h *Handlers) RobotsTxt(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(seo.RobotsTxt(h.config.SiteURL))
}

// SitemapIndex handles GET /sitemap.xml
func (h *Handlers) SitemapIndex(c *fiber.Ctx) error {
	body, err := h.services.Sitemap.Index(c.UserContext())
	if err != nil {
		return err
	}
	return sendXML(c, body)
}

// SitemapChunk handles GET /sitemap/:file where file is "{n}.xml". Malformed
// or out-of-range chunk numbers get an empty url set.
func (h *Handlers) SitemapChunk(c *fiber.Ctx) error {
	file := c.Params("file")
	if !strings.HasSuffix(file, ".xml") {
		return fiber.ErrNotFound
	}

	n, err := strconv.Atoi(strings.TrimSuffix(file, ".xml"))
	if err != nil {
		n = -1
	}

	body, err := h.services.Sitemap.Chunk(c.UserContext(), n)
	if err != nil {
		return err
	}
	return sendXML(c, body)
}

func sendXML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, xmlContentType)
	c.Set(fiber.HeaderCacheControl, revalidateControl)
	return c.Send(body)
}

// PublishSitemap handles POST /api/v1/admin/sitemap/publish
func (h *Handlers) PublishSitemap(c *fiber.Ctx) error {
	result, err := h.services.Sitemap.Publish(c.UserContext(), h.services.Storage)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error publishing sitemap")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish sitemap",
		})
	}
	return c.JSON(result)
}

// InvalidateSitemap handles POST /api/v1/admin/sitemap/invalidate
func (h *Handlers) InvalidateSitemap(c *fiber.Ctx) error {
	h.services.IDs.Invalidate()
	if h.services.Cache != nil {
		if err := h.services.Cache.Clear(c.UserContext()); err != nil {
			logger.Get().Error().Err(err).Msg("Error clearing response cache")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to clear response cache",
			})
		}
	}
	logger.Get().Info().Msg("Sitemap id cache and response cache invalidated")
	return c.JSON(fiber.Map{"status": "invalidated"})
}
