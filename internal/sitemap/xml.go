package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	XMLNS    string         `xml:"xmlns,attr"`
	Sitemaps []indexSitemap `xml:"sitemap"`
}

type indexSitemap struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// Builder renders the sitemap index and chunks from an IDCache.
type Builder struct {
	ids       *IDCache
	siteURL   string
	chunkSize int
	now       func() time.Time
}

// NewBuilder returns a Builder linking to pages under siteURL.
func NewBuilder(ids *IDCache, siteURL string, chunkSize int) *Builder {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &Builder{ids: ids, siteURL: siteURL, chunkSize: chunkSize, now: time.Now}
}

// ChunkCount returns ceil(total/chunkSize), at least 1.
func ChunkCount(total, chunkSize int) int {
	if chunkSize <= 0 || total <= 0 {
		return 1
	}
	return (total + chunkSize - 1) / chunkSize
}

// Chunks returns how many chunk sitemaps the index lists.
func (b *Builder) Chunks(ctx context.Context) (int, error) {
	ids, err := b.ids.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return ChunkCount(len(ids), b.chunkSize), nil
}

// ChunkPath is the site-relative path of chunk n.
func ChunkPath(n int) string {
	return fmt.Sprintf("/sitemap/%d.xml", n)
}

// Index renders the sitemap index document.
func (b *Builder) Index(ctx context.Context) ([]byte, error) {
	ids, err := b.ids.IDs(ctx)
	if err != nil {
		return nil, err
	}
	return b.renderIndex(ids)
}

// Chunk renders chunk n. Chunk 0 also lists the site root. A negative or
// out-of-range n yields an empty url set.
func (b *Builder) Chunk(ctx context.Context, n int) ([]byte, error) {
	ids, err := b.ids.IDs(ctx)
	if err != nil {
		return nil, err
	}
	return b.renderChunk(ids, n, b.now())
}

func (b *Builder) renderIndex(ids []int64) ([]byte, error) {
	n := ChunkCount(len(ids), b.chunkSize)
	doc := sitemapIndex{XMLNS: sitemapNS, Sitemaps: make([]indexSitemap, 0, n)}
	for i := 0; i < n; i++ {
		doc.Sitemaps = append(doc.Sitemaps, indexSitemap{Loc: b.siteURL + ChunkPath(i)})
	}
	return marshal(doc)
}

func (b *Builder) renderChunk(ids []int64, n int, now time.Time) ([]byte, error) {
	doc := urlSet{XMLNS: sitemapNS}
	if n < 0 || n >= ChunkCount(len(ids), b.chunkSize) {
		return marshal(doc)
	}

	lastMod := now.UTC().Format(time.RFC3339)
	if n == 0 {
		doc.URLs = append(doc.URLs, urlEntry{Loc: b.siteURL + "/", LastMod: lastMod, ChangeFreq: "hourly", Priority: 1})
	}

	start := n * b.chunkSize
	end := start + b.chunkSize
	if end > len(ids) {
		end = len(ids)
	}
	for _, id := range ids[start:end] {
		doc.URLs = append(doc.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/news/%d", b.siteURL, id),
			LastMod:    lastMod,
			ChangeFreq: "hourly",
			Priority:   0.7,
		})
	}
	return marshal(doc)
}

func marshal(doc any) ([]byte, error) {
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
