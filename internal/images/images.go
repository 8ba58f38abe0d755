// Package images materializes image references as files on disk: data-URI
// payloads are decoded, remote URLs are downloaded under a byte budget, and
// the src attributes are rewritten to local relative paths. A failure on one
// image never touches its siblings.
package images

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"htmlproc/internal/codec"
	"htmlproc/internal/fetch"
)

const (
	// fallbackExt is used when a data-URI scheme or URL tail yields no extension.
	fallbackExt = "png"
	// maxExtLen truncates extensions derived from URL tails.
	maxExtLen = 4
)

var dataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)

// Saver writes content-addressed files into a single directory using a
// create-if-absent policy: an existing file of the same derived name is the
// same content, so EEXIST is success, and a concurrent duplicate write can
// never tear a file.
type Saver struct {
	Dir string
}

// Save writes data under name unless a file of that name already exists.
func (s *Saver) Save(name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

// Extractor rewrites img src references in a document.
type Extractor struct {
	Saver   *Saver
	Fetcher *fetch.Client
	// MaxParallel bounds concurrent remote downloads. Zero means 4.
	MaxParallel int
}

// Rewrite processes every img element: data URIs are decoded and persisted
// immediately; remote references are fetched concurrently, each one
// independent of the others. On any per-image failure the original src is
// left exactly as it was.
func (e *Extractor) Rewrite(ctx context.Context, doc *goquery.Document) {
	type remote struct {
		sel *goquery.Selection
		src string
	}
	var remotes []remote

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		switch {
		case src == "":
		case strings.HasPrefix(src, "data:image"):
			if name, ok := e.saveDataURI(src); ok {
				s.SetAttr("src", "images/"+name)
			}
		case strings.HasPrefix(src, "http"):
			remotes = append(remotes, remote{sel: s, src: src})
		}
	})

	if len(remotes) == 0 {
		return
	}
	limit := e.MaxParallel
	if limit <= 0 {
		limit = 4
	}
	// Each goroutine mutates only its own node and writes are
	// content-addressed, so concurrent fetches stay independent.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, r := range remotes {
		r := r
		g.Go(func() error {
			data, err := e.Fetcher.GetImage(gctx, r.src)
			if err != nil {
				log.Warn().Err(err).Str("url", r.src).Msg("image download rejected; keeping remote reference")
				return nil
			}
			name := codec.ContentName("img", data, extFromURL(r.src))
			if err := e.Saver.Save(name, data); err != nil {
				log.Warn().Err(err).Str("url", r.src).Msg("image write failed; keeping remote reference")
				return nil
			}
			r.sel.SetAttr("src", "images/"+name)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Extractor) saveDataURI(src string) (string, bool) {
	ext := fallbackExt
	payload := src
	if m := dataURIPattern.FindStringSubmatch(src); m != nil {
		ext = m[1]
		payload = m[2]
	} else if i := strings.Index(src, "base64,"); i >= 0 {
		payload = src[i+len("base64,"):]
	} else {
		log.Warn().Msg("malformed data URI; keeping inline reference")
		return "", false
	}
	data, err := codec.DecodeBase64(payload)
	if err != nil {
		log.Warn().Err(err).Msg("undecodable image payload; keeping inline reference")
		return "", false
	}
	name := codec.ContentName("img", data, ext)
	if err := e.Saver.Save(name, data); err != nil {
		log.Warn().Err(err).Msg("image write failed; keeping inline reference")
		return "", false
	}
	return name, true
}

// extFromURL derives an extension from the trailing path segment, stripped
// of its query string and truncated.
func extFromURL(rawURL string) string {
	tail := rawURL
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	if i := strings.Index(tail, "?"); i >= 0 {
		tail = tail[:i]
	}
	i := strings.LastIndex(tail, ".")
	if i < 0 || i == len(tail)-1 {
		return fallbackExt
	}
	ext := tail[i+1:]
	if len(ext) > maxExtLen {
		ext = ext[:maxExtLen]
	}
	return ext
}
