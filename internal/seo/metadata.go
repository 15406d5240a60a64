// Package seo builds page metadata, structured data and robots rules for the
// public article pages.
package seo

import (
	"fmt"
	"strings"

	"github.com/bilgisen/newsnexus/internal/models"
)

const (
	SiteName           = "오늘의 카카오뱅크"
	DefaultDescription = "오늘의 카카오뱅크 기사 요약 페이지"
	HomeDescription    = "NewsNexus article browser"
	NotFoundTitle      = "기사를 찾을 수 없습니다"

	OGImagePath   = "/og-kabang-summary.svg"
	OGImageWidth  = 1200
	OGImageHeight = 630

	maxDescriptionRunes = 160
)

// Image is an Open Graph image reference.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// Metadata is everything rendered into a page head.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	// Robots is empty for indexable pages.
	Robots string

	OGType   string
	OGImage  *Image
	Twitter  string
	Language string
}

// Indexable reports whether crawlers may index the page.
func (m Metadata) Indexable() bool {
	return m.Robots == ""
}

// Home is the metadata of the date listing page.
func Home(siteURL string) Metadata {
	return Metadata{
		Title:       SiteName,
		Description: HomeDescription,
		Canonical:   siteURL + "/",
		Language:    "ko",
	}
}

// ArticleURL is the canonical URL of an article page. rawID is used verbatim
// so unparseable ids still get a stable canonical.
func ArticleURL(siteURL, rawID string) string {
	return fmt.Sprintf("%s/news/%s", siteURL, rawID)
}

// Article is the metadata of an article detail page.
func Article(siteURL string, detail *models.ArticleDetail) Metadata {
	title := detail.Title + " | 요약"
	return Metadata{
		Title:       title,
		Description: Description(detail.Summary),
		Canonical:   ArticleURL(siteURL, fmt.Sprint(detail.ID)),
		OGType:      "article",
		OGImage: &Image{
			URL:    OGImagePath,
			Width:  OGImageWidth,
			Height: OGImageHeight,
			Alt:    SiteName,
		},
		Twitter:  "summary_large_image",
		Language: "ko",
	}
}

// NotFound is the metadata of a missing or malformed article page.
func NotFound(siteURL, rawID string) Metadata {
	return Metadata{
		Title:       NotFoundTitle,
		Description: DefaultDescription,
		Canonical:   ArticleURL(siteURL, rawID),
		Robots:      "noindex, nofollow",
		Language:    "ko",
	}
}

// Description flattens a summary into a single line of at most 160 runes.
// Literal "\n" sequences count as whitespace.
func Description(summary *string) string {
	if summary == nil {
		return DefaultDescription
	}

	normalized := strings.ReplaceAll(*summary, `\n`, " ")
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return DefaultDescription
	}

	runes := []rune(normalized)
	if len(runes) > maxDescriptionRunes {
		return string(runes[:maxDescriptionRunes])
	}
	return normalized
}
