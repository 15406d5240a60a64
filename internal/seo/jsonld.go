package seo

import (
	"encoding/json"
	"fmt"

	"github.com/bilgisen/newsnexus/internal/models"
)

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type articleEntity struct {
	Type          string       `json:"@type"`
	Headline      string       `json:"headline"`
	DatePublished string       `json:"datePublished"`
	DateModified  string       `json:"dateModified"`
	Author        organization `json:"author"`
	Publisher     organization `json:"publisher"`
	IsBasedOn     string       `json:"isBasedOn"`
	URL           string       `json:"url"`
}

// WebPage is the schema.org document embedded in article pages.
type WebPage struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	InLanguage  string        `json:"inLanguage"`
	MainEntity  articleEntity `json:"mainEntity"`
	IsBasedOn   string        `json:"isBasedOn"`
}

// StructuredData describes detail as a WebPage whose main entity is the
// article. selectedDate stands in for a missing publish date.
func StructuredData(siteURL string, detail *models.ArticleDetail, selectedDate models.IsoDate) WebPage {
	canonical := ArticleURL(siteURL, fmt.Sprint(detail.ID))
	name := detail.Title + " 요약"

	published := detail.PublishedDate
	if published == "" {
		published = selectedDate
	}
	org := organization{Type: "Organization", Name: SiteName}

	return WebPage{
		Context:     "https://schema.org",
		Type:        "WebPage",
		Name:        name,
		Description: Description(detail.Summary),
		URL:         canonical,
		InLanguage:  "ko",
		MainEntity: articleEntity{
			Type:          "Article",
			Headline:      name,
			DatePublished: published,
			DateModified:  published,
			Author:        org,
			Publisher:     org,
			IsBasedOn:     detail.Link,
			URL:           canonical,
		},
		IsBasedOn: detail.Link,
	}
}

// JSON encodes the document for a ld+json script tag.
func (p WebPage) JSON() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode structured data: %w", err)
	}
	return string(data), nil
}
