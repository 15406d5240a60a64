package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// EmptySummary is shown for articles without a usable summary.
const EmptySummary = "요약 내용이 제공되지 않았습니다."

// PendingSummary is shown for articles that have no stable id yet.
const PendingSummary = "요약 준비중입니다."

var (
	bulletOnNewLine = regexp.MustCompile(`\n\s*-\s+`)
	leadingMarker   = regexp.MustCompile(`^\s*-\s*`)
	inlineMarker    = regexp.MustCompile(`\s+-\s+`)

	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// FormatSummary turns an upstream summary into markdown. Literal "\n"
// sequences become line breaks and a one-line "- a - b" list becomes one
// bullet per line. Other text is returned trimmed.
func FormatSummary(summary *string) string {
	if summary == nil {
		return ""
	}

	trimmed := strings.TrimSpace(strings.ReplaceAll(*summary, `\n`, "\n"))
	if trimmed == "" || !strings.HasPrefix(trimmed, "-") {
		return trimmed
	}
	if bulletOnNewLine.MatchString(trimmed) {
		return trimmed
	}

	var parts []string
	for _, part := range inlineMarker.Split(leadingMarker.ReplaceAllString(trimmed, ""), -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, "- "+part)
		}
	}
	if len(parts) <= 1 {
		return trimmed
	}
	return strings.Join(parts, "\n")
}

// SummaryText is FormatSummary with the empty-summary placeholder.
func SummaryText(summary *string) string {
	if text := FormatSummary(summary); text != "" {
		return text
	}
	return EmptySummary
}

// SummaryHTML renders the summary markdown and sanitizes the result.
func SummaryHTML(summary *string) (template.HTML, error) {
	return markdownHTML(SummaryText(summary))
}

func markdownHTML(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
