// Package render turns the document tree back into text. Readable mode
// pretty-prints with indentation; minified mode serializes flat and then
// applies ordered text substitutions. Minification is a pure text pass over
// the serialized output, so literal text inside elements like <pre> is
// subject to the same collapsing; that gap is inherited, not accidental.
package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Readable renders doc with one level of indentation per tree depth.
func Readable(doc *goquery.Document) (string, error) {
	var b strings.Builder
	for _, root := range doc.Nodes {
		writeIndented(&b, root, 0)
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func writeIndented(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeIndented(b, c, depth)
		}
	case html.DoctypeNode:
		b.WriteString("<!DOCTYPE " + n.Data + ">\n")
	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(indent + html.EscapeString(text) + "\n")
		}
	case html.ElementNode:
		b.WriteString(indent + "<" + n.Data)
		for _, a := range n.Attr {
			b.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
		}
		if isVoid(n.Data) {
			b.WriteString("/>\n")
			return
		}
		b.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeIndented(b, c, depth+1)
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
}

func isVoid(tag string) bool {
	switch strings.ToLower(tag) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}

var (
	commentPattern  = regexp.MustCompile(`(?s)<!--.*?-->`)
	interTagSpace   = regexp.MustCompile(`>\s+<`)
	whitespaceRuns  = regexp.MustCompile(`\s{2,}`)
	newlines        = regexp.MustCompile(`\n+`)
	minifiedMarkers = []string{"HEADER", "MAIN", "FOOTER"}
)

// Minified renders doc flat and applies the substitution sequence. The order
// matters: comments first, then inter-tag whitespace, then whitespace-run
// collapsing before newline removal, then redundant type attributes.
func Minified(doc *goquery.Document) (string, error) {
	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	out = commentPattern.ReplaceAllStringFunc(out, func(m string) string {
		body := strings.TrimSuffix(strings.TrimPrefix(m, "<!--"), "-->")
		if hasMinifiedMarker(body) {
			return m
		}
		return ""
	})
	out = interTagSpace.ReplaceAllString(out, "><")
	out = whitespaceRuns.ReplaceAllString(out, " ")
	out = newlines.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, ` type="text/javascript"`, "")
	out = strings.ReplaceAll(out, ` type="text/css"`, "")
	return strings.TrimSpace(out), nil
}

// hasMinifiedMarker matches the minifier's narrower marker set: the comment
// body must start a structural marker after optional leading whitespace.
func hasMinifiedMarker(body string) bool {
	trimmed := strings.TrimLeft(body, " \t\n\r")
	for _, m := range minifiedMarkers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}
