// Package render produces the server-rendered HTML pages of the article
// browser.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/bilgisen/newsnexus/internal/browse"
	"github.com/bilgisen/newsnexus/internal/datetree"
	"github.com/bilgisen/newsnexus/internal/models"
	"github.com/bilgisen/newsnexus/internal/seo"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data behind one rendered page.
type Page struct {
	Meta  seo.Metadata
	State browse.State
	Dates datetree.DateTree
	Today models.IsoDate
	// Pages is how many list pages State holds, used for the load-more link.
	Pages int
	// StructuredData is optional JSON-LD for the page head.
	StructuredData *seo.WebPage
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"sentiment": func(raw *string) models.Sentiment {
			return models.NormalizeSentiment(raw)
		},
		"summary":        SummaryHTML,
		"pendingSummary": func() (template.HTML, error) { return markdownHTML(PendingSummary) },
		"jsonld":         jsonLD,
		"next":           func(n int) int { return n + 1 },
		"inMonth":        inMonth,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{pages: tmpl}, nil
}

// Browse renders the list/detail page for a session state.
func (r *Renderer) Browse(w io.Writer, page Page) error {
	return r.execute(w, "browse.html", page)
}

// NotFound renders the missing-article page.
func (r *Renderer) NotFound(w io.Writer, page Page) error {
	return r.execute(w, "notfound.html", page)
}

func (r *Renderer) execute(w io.Writer, name string, page Page) error {
	if err := r.pages.ExecuteTemplate(w, name, page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// inMonth reports whether date falls in year and month. A zero month matches
// the whole year.
func inMonth(date models.IsoDate, year, month int) bool {
	prefix := fmt.Sprintf("%04d-", year)
	if month > 0 {
		prefix += fmt.Sprintf("%02d-", month)
	}
	return strings.HasPrefix(date, prefix)
}

// jsonLD encodes structured data for a script tag. encoding/json escapes
// <, > and &, so the output cannot close the tag.
func jsonLD(data *seo.WebPage) (template.JS, error) {
	if data == nil {
		return "", nil
	}
	raw, err := data.JSON()
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}
