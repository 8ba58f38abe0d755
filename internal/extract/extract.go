// Package extract isolates the main content of a page as an HTML fragment.
// Two engines run in sequence: a landmark-based walker over the parsed tree,
// then a readability fallback. First success wins; when both fail the caller
// gets absence, never an error.
package extract

import (
	"bytes"
	"errors"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// engine produces a content fragment or an error meaning "no usable output".
type engine interface {
	name() string
	extract(rawHTML string) (string, error)
}

// Extractor tries its engines in order.
type Extractor struct {
	engines []engine
}

// New returns an extractor with the default engine order: landmark walker
// first, readability second.
func New() *Extractor {
	return &Extractor{engines: []engine{landmarkEngine{}, readabilityEngine{}}}
}

// MainContent returns the extracted HTML fragment and true, or ("", false)
// when every engine failed. Engine failures are logged and swallowed;
// absence is a valid outcome for the caller to interpret.
func (e *Extractor) MainContent(rawHTML string) (string, bool) {
	for _, eng := range e.engines {
		frag, err := eng.extract(rawHTML)
		if err != nil || strings.TrimSpace(frag) == "" {
			log.Warn().Err(err).Str("engine", eng.name()).Msg("content extraction failed; trying next engine")
			continue
		}
		log.Info().Str("engine", eng.name()).Msg("main content extracted")
		return frag, true
	}
	return "", false
}

// landmarkEngine picks the first <main> or <article> landmark and renders it
// as a fragment, keeping tables and images but dropping comments and
// scripting nodes.
type landmarkEngine struct{}

func (landmarkEngine) name() string { return "landmark" }

func (landmarkEngine) extract(rawHTML string) (string, error) {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil || node == nil {
		return "", errors.New("unparseable input")
	}
	content := findFirst(node, "main")
	if content == nil {
		content = findFirst(node, "article")
	}
	if content == nil {
		return "", errors.New("no content landmark")
	}
	var b bytes.Buffer
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if err := renderClean(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

// renderClean renders n without comments, scripts or styles. Tables and
// images pass through untouched.
func renderClean(b *bytes.Buffer, n *html.Node) error {
	switch n.Type {
	case html.CommentNode:
		return nil
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return nil
	case html.ElementNode:
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "iframe":
			return nil
		}
		b.WriteString("<" + n.Data)
		for _, a := range n.Attr {
			b.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
		}
		if isVoidElement(name) {
			b.WriteString("/>")
			return nil
		}
		b.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := renderClean(b, c); err != nil {
				return err
			}
		}
		b.WriteString("</" + n.Data + ">")
		return nil
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := renderClean(b, c); err != nil {
				return err
			}
		}
		return nil
	}
}

func isVoidElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}

// readabilityEngine delegates to go-readability and returns the article
// summary fragment.
type readabilityEngine struct{}

func (readabilityEngine) name() string { return "readability" }

func (readabilityEngine) extract(rawHTML string) (string, error) {
	pageURL := &url.URL{Scheme: "file", Path: "/document.html"}
	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", errors.New("empty readability summary")
	}
	return article.Content, nil
}
