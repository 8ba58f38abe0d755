package styles

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/rs/zerolog/log"
)

// Optimize flattens the sheet: rules sharing an identical selector are
// merged with later declarations overwriting earlier ones for the same
// property, and one rule is emitted per unique selector in first-seen order.
// The merge is cascade-unaware on purpose. On any parse failure the original
// text is returned unchanged so a bad sheet never fails the pipeline.
func Optimize(cssText string) string {
	sheet, err := parser.Parse(cssText)
	if err != nil {
		log.Warn().Err(err).Msg("stylesheet parse failed; keeping original CSS")
		return cssText
	}

	type mergedRule struct {
		order  []string
		values map[string]*css.Declaration
	}
	var selectors []string
	merged := make(map[string]*mergedRule)

	for _, rule := range sheet.Rules {
		if rule.Kind != css.QualifiedRule {
			continue
		}
		sel := strings.TrimSpace(rule.Prelude)
		mr, ok := merged[sel]
		if !ok {
			mr = &mergedRule{values: make(map[string]*css.Declaration)}
			merged[sel] = mr
			selectors = append(selectors, sel)
		}
		for _, d := range rule.Declarations {
			if _, dup := mr.values[d.Property]; !dup {
				mr.order = append(mr.order, d.Property)
			}
			mr.values[d.Property] = d
		}
	}

	var b strings.Builder
	for i, sel := range selectors {
		if i > 0 {
			b.WriteString("\n")
		}
		mr := merged[sel]
		b.WriteString(sel + " {\n")
		for _, prop := range mr.order {
			d := mr.values[prop]
			b.WriteString("  " + d.Property + ": " + d.Value)
			if d.Important {
				b.WriteString(" !important")
			}
			b.WriteString(";\n")
		}
		b.WriteString("}")
	}
	log.Info().Int("selectors", len(selectors)).Msg("stylesheet optimized")
	return b.String()
}
