// Package styles hoists every style in the document into one external sheet:
// <style> blocks are drained, inline style attributes become synthetic
// classes, duplicate rules collapse, and images embedded in the CSS itself
// are rewritten to files.
package styles

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"htmlproc/internal/codec"
)

// Extract drains all <style> blocks (removing them from the tree) and all
// inline style attributes (removing the attribute) into a single stylesheet
// text. Identical inline declaration blocks share one synthesized class and
// emit their rule once; deduplication is by rule text.
func Extract(doc *goquery.Document) string {
	var combined []string
	seen := make(map[string]struct{})

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if txt := s.Text(); strings.TrimSpace(txt) != "" {
			combined = append(combined, txt)
		}
		s.Remove()
	})

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		styleText, _ := s.Attr("style")
		s.RemoveAttr("style")
		styleText = strings.TrimSpace(styleText)
		if styleText == "" {
			return
		}
		class := codec.StyleClass(styleText)
		s.AddClass(class)
		rule := "." + class + " {" + styleText + "}"
		if _, dup := seen[rule]; !dup {
			combined = append(combined, rule)
			seen[rule] = struct{}{}
		}
	})

	log.Info().Int("rules", len(combined)).Msg("stylesheet extracted")
	return strings.Join(combined, "\n")
}
