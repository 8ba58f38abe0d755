// Package head rebuilds the document head deterministically from a whitelist
// of preserved elements. Fixed order: charset, title, viewport, description
// (only when originally present), stylesheet link. Everything else from the
// original head is discarded.
package head

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StylesheetHref is where the final HTML expects the externalized sheet,
// relative to the output directory.
const StylesheetHref = "styles/styles.css"

const (
	defaultTitle    = "Projeto"
	defaultViewport = "width=device-width, initial-scale=1.0"
)

// Rebuild replaces the head content of doc in place.
func Rebuild(doc *goquery.Document) {
	sel := doc.Find("head").First()

	title := strings.TrimSpace(sel.Find("title").First().Text())
	if title == "" {
		title = defaultTitle
	}
	viewport, hasViewport := sel.Find(`meta[name="viewport"]`).First().Attr("content")
	if !hasViewport || strings.TrimSpace(viewport) == "" {
		viewport = defaultViewport
	}
	description, hasDescription := sel.Find(`meta[name="description"]`).First().Attr("content")

	var b strings.Builder
	b.WriteString(`<meta charset="utf-8"/>`)
	b.WriteString("<title>" + html.EscapeString(title) + "</title>")
	b.WriteString(`<meta name="viewport" content="` + html.EscapeString(viewport) + `"/>`)
	if hasDescription {
		b.WriteString(`<meta name="description" content="` + html.EscapeString(description) + `"/>`)
	}
	b.WriteString(`<link rel="stylesheet" href="` + StylesheetHref + `"/>`)

	sel.SetHtml(b.String())
}
