// Package app assembles configuration and the fixed processing pipeline:
// validate, load, clean, extract resources, optimize, output.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"htmlproc/internal/extract"
	"htmlproc/internal/fetch"
	"htmlproc/internal/images"
	"htmlproc/internal/pipeline"
)

type App struct {
	cfg Config
}

func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run processes the configured input document and returns the output
// manifest. Any stage error aborts the run; per-resource failures inside the
// stages are logged and never surface here.
func (a *App) Run(ctx context.Context) (pipeline.Manifest, error) {
	layout := NewLayout(a.cfg.OutputDir)
	fetcher := &fetch.Client{
		UserAgent:         UserAgent,
		PerRequestTimeout: a.cfg.RequestTimeout,
		MaxBytes:          int64(a.cfg.MaxImageSizeMB) * 1024 * 1024,
	}
	saver := &images.Saver{Dir: layout.ImagesDir}

	p := pipeline.New(
		validateStage{cfg: a.cfg},
		loadStage{cfg: a.cfg, extractor: extract.New()},
		cleanStage{},
		resourceStage{layout: layout, saver: saver, fetcher: fetcher},
		optimizeStage{},
		outputStage{cfg: a.cfg, layout: layout},
	)

	pc := &pipeline.Context{InputPath: a.cfg.InputPath}
	if err := p.Execute(ctx, pc); err != nil {
		return pipeline.Manifest{}, err
	}
	log.Info().
		Str("html", pc.Manifest.HTMLFile).
		Str("css", pc.Manifest.CSSFile).
		Str("images", pc.Manifest.ImagesDir).
		Msg("processing complete")
	return pc.Manifest, nil
}
