package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"htmlproc/internal/classify"
	"htmlproc/internal/extract"
	"htmlproc/internal/fetch"
	"htmlproc/internal/head"
	"htmlproc/internal/images"
	"htmlproc/internal/normalize"
	"htmlproc/internal/pipeline"
	"htmlproc/internal/render"
	"htmlproc/internal/styles"
)

// validateStage gates the run on basic input validity. Nothing is written
// before it passes.
type validateStage struct {
	cfg Config
}

func (s validateStage) Name() string { return "validate" }

func (s validateStage) Run(_ context.Context, pc *pipeline.Context) error {
	return ValidateInput(s.cfg, pc.InputPath)
}

// loadStage reads the input, decodes it to UTF-8 honoring any declared
// charset, and parses the tree. When main-content isolation is enabled the
// extracted fragment replaces the body before cleanup runs.
type loadStage struct {
	cfg       Config
	extractor *extract.Extractor
}

func (s loadStage) Name() string { return "load" }

func (s loadStage) Run(_ context.Context, pc *pipeline.Context) error {
	raw, err := os.ReadFile(pc.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	r, err := charset.NewReader(bytes.NewReader(raw), "text/html")
	if err != nil {
		return fmt.Errorf("detect charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	pc.RawHTML = string(raw)
	pc.Doc = doc

	if s.cfg.ExtractMain && s.extractor != nil {
		if frag, ok := s.extractor.MainContent(pc.RawHTML); ok {
			pc.Doc.Find("body").First().SetHtml(frag)
		}
	}
	return nil
}

// cleanStage runs the tree rewrites that later stages depend on: the style
// extractor must never see nodes the normalizer would have removed.
type cleanStage struct{}

func (cleanStage) Name() string { return "clean" }

func (cleanStage) Run(_ context.Context, pc *pipeline.Context) error {
	normalize.Apply(pc.Doc)
	classify.Apply(pc.Doc)
	head.Rebuild(pc.Doc)
	return nil
}

// resourceStage externalizes styles and images, creating the output
// directories on first use.
type resourceStage struct {
	layout  Layout
	saver   *images.Saver
	fetcher *fetch.Client
}

func (resourceStage) Name() string { return "extract-resources" }

func (s resourceStage) Run(ctx context.Context, pc *pipeline.Context) error {
	if err := s.layout.Ensure(); err != nil {
		return fmt.Errorf("create output dirs: %w", err)
	}
	css := styles.Extract(pc.Doc)
	rewriter := &styles.ImageRewriter{Saver: s.saver}
	pc.CSS = rewriter.Externalize(css)

	imgs := &images.Extractor{Saver: s.saver, Fetcher: s.fetcher}
	imgs.Rewrite(ctx, pc.Doc)
	return nil
}

// optimizeStage flattens the accumulated stylesheet.
type optimizeStage struct{}

func (optimizeStage) Name() string { return "optimize" }

func (optimizeStage) Run(_ context.Context, pc *pipeline.Context) error {
	pc.CSS = styles.Optimize(pc.CSS)
	return nil
}

// outputStage persists the stylesheet and the rendered document and fills
// the manifest.
type outputStage struct {
	cfg    Config
	layout Layout
}

func (outputStage) Name() string { return "output" }

func (s outputStage) Run(_ context.Context, pc *pipeline.Context) error {
	if err := os.WriteFile(s.layout.CSSFile, []byte(pc.CSS), 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}

	var out string
	var err error
	if strings.EqualFold(s.cfg.Mode, "minify") {
		out, err = render.Minified(pc.Doc)
	} else {
		out, err = render.Readable(pc.Doc)
	}
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := os.WriteFile(s.layout.HTMLFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	pc.Manifest = pipeline.Manifest{
		HTMLFile:  s.layout.HTMLFile,
		CSSFile:   s.layout.CSSFile,
		ImagesDir: s.layout.ImagesDir,
	}
	return nil
}
