package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsnexus/internal/app"
	"github.com/bilgisen/newsnexus/internal/cache"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/datetree"
	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/models"
	"github.com/bilgisen/newsnexus/internal/storage"
)

const (
	testSite     = "https://news.example.com"
	testAdminKey = "admin-key"
)

type testServer struct {
	app        *fiber.App
	storageDir string
	cache      *cache.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := config.FromEnv()
	cfg.SiteURL = testSite
	cfg.AdminAPIKey = testAdminKey
	cfg.PageSize = 20

	dir := t.TempDir()
	objects, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC) }
	store := cache.NewMemoryStore(16, time.Minute)
	services := app.NewServices(cfg, feed.NewMockSource(), store, objects, now)
	t.Cleanup(func() { _ = services.Close() })

	handlers, err := NewHandlers(cfg, services)
	require.NoError(t, err)

	return &testServer{app: NewServer(cfg, handlers), storageDir: dir, cache: store}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := s.app.Test(req, 5000)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (s *testServer) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/api/v1/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
}

func TestGetDates(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/api/v1/dates")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "574", resp.Header.Get("X-Total-Count"))

	var tree datetree.DateTree
	require.NoError(t, json.Unmarshal([]byte(body), &tree))
	require.NotEmpty(t, tree.Years)
	assert.Equal(t, 2026, tree.Years[0].Year)
	assert.Equal(t, 2, tree.Years[0].Months[0].Month)
	assert.Equal(t, "2026-02-07", tree.Years[0].Months[0].Days[0])
	assert.Equal(t, 2024, tree.Years[len(tree.Years)-1].Year)
}

func TestListArticles(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/api/v1/articles?date=2026-02-07&size=10")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, revalidateControl, resp.Header.Get(fiber.HeaderCacheControl))

	var list models.ArticleListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list.Items, 10)
	assert.True(t, list.HasNext)
	require.NotNil(t, list.NextCursor)
	assert.Equal(t, "10", *list.NextCursor)

	resp, body = s.get(t, "/api/v1/articles?date=2026-02-07&size=10&cursor=20")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list.Items, 6)
	assert.False(t, list.HasNext)
	assert.Nil(t, list.NextCursor)
}

func TestListArticlesRejectsMalformedQuery(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/v1/articles",
		"/api/v1/articles?date=20260207",
		"/api/v1/articles?date=2026-13-01",
		"/api/v1/articles?date=2026-02-07&size=500",
	} {
		resp, _ := s.get(t, target)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, target)
	}
}

func TestGetArticle(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/api/v1/articles/1738886400000003")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "2026-02-07 주요 기사 3", got["title"])
	assert.Equal(t, "2026-02-07", got["publishedDate"])
	assert.Equal(t, "NEGATIVE", got["normalizedSentiment"])
	assert.Equal(t, "부정", got["sentimentLabel"])

	for _, target := range []string{"/api/v1/articles/abc", "/api/v1/articles/0", "/api/v1/articles/999"} {
		resp, _ := s.get(t, target)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, target)
	}
}

func TestHomePage(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, body, "<title>오늘의 카카오뱅크</title>")
	assert.Contains(t, body, "2026-02-07 주요 기사 20")
	assert.NotContains(t, body, "2026-02-07 주요 기사 21<")
	assert.Contains(t, body, "pages=2")

	_, body = s.get(t, "/?date=2026-02-07&pages=2")
	assert.Contains(t, body, "2026-02-07 주요 기사 26")
	assert.NotContains(t, body, "더 보기")

	_, body = s.get(t, "/?date=2026-02-06")
	assert.Contains(t, body, "2026-02-06 경제 동향")
	assert.NotContains(t, body, "주요 기사")

	// Dates outside the navigable range fall back to today.
	for _, date := range []string{"2024-07-13", "2026-02-08", "2026-13-01"} {
		_, body = s.get(t, "/?date="+date)
		assert.Contains(t, body, "2026-02-07 주요 기사 1", date)
	}
}

func TestArticlePage(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/news/1738800000000001")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>2026-02-06 경제 동향 | 요약</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://news.example.com/news/1738800000000001">`)
	assert.Contains(t, body, `application/ld+json`)
	assert.Contains(t, body, `"datePublished":"2026-02-06"`)
	assert.Contains(t, body, `<a href="/news/1738800000000001" class="selected">`)
	assert.Contains(t, body, "2026-02-06 기술 트렌드")
	assert.Contains(t, body, "AI평가: 중립")
}

func TestArticlePageNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/news/abc", "/news/-1", "/news/42"} {
		resp, body := s.get(t, target)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, target)
		assert.Contains(t, body, `<meta name="robots" content="noindex, nofollow">`, target)
		assert.Contains(t, body, "기사를 찾을 수 없습니다", target)
	}
}

func TestRobotsTxt(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/robots.txt")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Sitemap: https://news.example.com/sitemap.xml")
}

func TestSitemapRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/sitemap.xml")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xmlContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, body, "<loc>https://news.example.com/sitemap/0.xml</loc>")
	assert.NotContains(t, body, "sitemap/1.xml")

	_, body = s.get(t, "/sitemap/0.xml")
	assert.Contains(t, body, "<loc>https://news.example.com/</loc>")
	assert.Contains(t, body, "<loc>https://news.example.com/news/1738886400000001</loc>")
	assert.Contains(t, body, "<loc>https://news.example.com/news/1759449600000001</loc>")
	assert.Equal(t, 31, strings.Count(body, "<url>"))

	for _, target := range []string{"/sitemap/3.xml", "/sitemap/x.xml"} {
		resp, body := s.get(t, target)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, target)
		assert.NotContains(t, body, "<url>", target)
		assert.Contains(t, body, "<urlset", target)
	}

	resp, _ = s.get(t, "/sitemap/0.txt")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminSitemapPublish(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/sitemap/publish", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sitemap/publish", nil)
	req.Header.Set("X-API-Key", testAdminKey)
	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"keys":["sitemap.xml","sitemap/0.xml"],"chunks":1}`, body)

	index, err := os.ReadFile(filepath.Join(s.storageDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "https://news.example.com/sitemap/0.xml")
	_, err = os.Stat(filepath.Join(s.storageDir, "sitemap", "0.xml"))
	assert.NoError(t, err)
}

func TestAdminSitemapInvalidate(t *testing.T) {
	s := newTestServer(t)

	_, _ = s.get(t, "/sitemap.xml")
	_, body := s.get(t, "/api/v1/health")
	assert.Contains(t, body, "sitemapCollectedAt")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sitemap/invalidate", nil)
	req.Header.Set("X-API-Key", testAdminKey)
	resp, _ := s.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body = s.get(t, "/api/v1/health")
	assert.NotContains(t, body, "sitemapCollectedAt")
}

func TestAdminSitemapInvalidateClearsResponseCache(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.cache.Set(context.Background(), "list:2026-02-07", []byte(`{"items":[]}`), 0))
	require.Equal(t, 1, s.cache.Len())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sitemap/invalidate", nil)
	req.Header.Set("X-API-Key", testAdminKey)
	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"invalidated"`)
	assert.Equal(t, 0, s.cache.Len())
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "newsnexus_sitemap_article_ids")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/nope")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, body)
}
