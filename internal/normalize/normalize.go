// Package normalize performs the structural cleanup pass: boilerplate
// comments, empty containers, inline scripts and non-essential meta tags are
// removed, and presentational tag aliases are rewritten to their semantic
// equivalents. Everything here is best effort with no failure case.
package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// structuralMarkers exempt a comment from removal. Matching is a
// case-sensitive substring check.
var structuralMarkers = []string{"HEADER", "MAIN", "FOOTER", "SECTION"}

// IsStructuralComment reports whether a comment's text carries one of the
// markers that denote layout boundaries.
func IsStructuralComment(text string) bool {
	for _, m := range structuralMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Apply mutates doc in place. The empty-node pruning is a single
// non-recursive pass: nodes that become empty only because their siblings
// were removed are not re-checked.
func Apply(doc *goquery.Document) {
	stripComments(doc)
	pruneEmpty(doc)
	dropInlineScripts(doc)
	filterMeta(doc)
	aliasTags(doc)
}

func stripComments(doc *goquery.Document) {
	for _, root := range doc.Nodes {
		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			for c := n.FirstChild; c != nil; {
				next := c.NextSibling
				if c.Type == html.CommentNode && !IsStructuralComment(c.Data) {
					n.RemoveChild(c)
				} else {
					walk(c)
				}
				c = next
			}
		}
		walk(root)
	}
}

func pruneEmpty(doc *goquery.Document) {
	doc.Find("div, span, p").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" && s.Children().Length() == 0 {
			s.Remove()
		}
	})
}

func dropInlineScripts(doc *goquery.Document) {
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("src"); !ok {
			s.Remove()
		}
	})
}

// filterMeta keeps charset declarations, viewport and description tags, and
// Open Graph properties; everything else goes.
func filterMeta(doc *goquery.Document) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("charset"); ok {
			return
		}
		if name, _ := s.Attr("name"); name == "viewport" || name == "description" {
			return
		}
		if prop, ok := s.Attr("property"); ok && strings.HasPrefix(prop, "og:") {
			return
		}
		s.Remove()
	})
}

func aliasTags(doc *goquery.Document) {
	rename := func(s *goquery.Selection, tag string) {
		for _, n := range s.Nodes {
			n.Data = tag
			n.DataAtom = atom.Lookup([]byte(tag))
		}
	}
	doc.Find("b").Each(func(_ int, s *goquery.Selection) { rename(s, "strong") })
	doc.Find("i").Each(func(_ int, s *goquery.Selection) { rename(s, "em") })
}
