package seo

import (
	"fmt"
	"strings"
)

// RobotsTxt allows every crawler and points at the sitemap index.
func RobotsTxt(siteURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", siteURL)
	return b.String()
}
