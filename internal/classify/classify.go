// Package classify reclassifies generic div containers into semantic
// elements based on keywords found in their class list or id. The rule table
// is ordered and the first match wins, so a div hinting at several roles is
// renamed exactly once.
package classify

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

type rule struct {
	keywords []string
	tag      string
}

// table order is load-bearing: earlier rules shadow later ones.
var table = []rule{
	{[]string{"header", "top", "masthead"}, "header"},
	{[]string{"footer", "bottom"}, "footer"},
	{[]string{"main", "content", "primary"}, "main"},
	{[]string{"section", "block"}, "section"},
	{[]string{"nav", "menu", "navigation"}, "nav"},
	{[]string{"article", "post", "entry"}, "article"},
}

// Apply renames matching div elements in place. Non-div elements are never
// touched.
func Apply(doc *goquery.Document) {
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		if tag, ok := Classify(class, id); ok {
			for _, n := range s.Nodes {
				n.Data = tag
				n.DataAtom = atom.Lookup([]byte(tag))
			}
		}
	})
}

// Classify returns the semantic tag for the given class attribute and id, or
// false when no rule matches. Matching is case-insensitive substring search
// over the space-joined class list and the id.
func Classify(class, id string) (string, bool) {
	class = strings.ToLower(class)
	id = strings.ToLower(id)
	for _, r := range table {
		for _, kw := range r.keywords {
			if strings.Contains(class, kw) || strings.Contains(id, kw) {
				return r.tag, true
			}
		}
	}
	return "", false
}
