package styles

import (
	"regexp"

	"github.com/rs/zerolog/log"

	"htmlproc/internal/codec"
	"htmlproc/internal/images"
)

var (
	cssImagePattern   = regexp.MustCompile(`url\((data:image/[\w+]+;base64,[^)]+)\)`)
	cssDataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)
)

// ImageRewriter externalizes images embedded in CSS text.
type ImageRewriter struct {
	Saver *images.Saver
}

// Externalize persists every url(data:image/...) payload as a file and
// rewrites the reference to ../images/<name>, relative to where the sheet
// itself is written. A payload that fails to decode leaves the original
// url(...) untouched.
func (r *ImageRewriter) Externalize(cssText string) string {
	return cssImagePattern.ReplaceAllStringFunc(cssText, func(match string) string {
		dataURL := cssImagePattern.FindStringSubmatch(match)[1]
		m := cssDataURIPattern.FindStringSubmatch(dataURL)
		if m == nil {
			return match
		}
		data, err := codec.DecodeBase64(m[2])
		if err != nil {
			log.Warn().Err(err).Msg("undecodable CSS image payload; keeping data URI")
			return match
		}
		name := codec.ContentName("css_img", data, m[1])
		if err := r.Saver.Save(name, data); err != nil {
			log.Warn().Err(err).Msg("CSS image write failed; keeping data URI")
			return match
		}
		return `url("../images/` + name + `")`
	})
}
