// Package pipeline runs the fixed stage sequence over a single shared
// context. Stages execute strictly in order and the first failing stage
// aborts the run; each stage reads and overwrites specific context fields and
// later stages rely on the invariants earlier ones established.
package pipeline

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Context is the mutable record threaded through all stages. It is owned by
// exactly one stage at a time; no stage retains a reference after returning.
type Context struct {
	// InputPath is set by the caller before execution.
	InputPath string
	// RawHTML is populated by the load stage.
	RawHTML string
	// Doc is the parsed document tree, populated by the load stage and
	// mutated in place by cleaning and extraction.
	Doc *goquery.Document
	// CSS accumulates the externalized stylesheet text.
	CSS string
	// Manifest is written once by the output stage and read-only afterward.
	Manifest Manifest
}

// Manifest lists the paths produced by a successful run.
type Manifest struct {
	HTMLFile  string
	CSSFile   string
	ImagesDir string
}

// Stage is one unit of the processing sequence.
type Stage interface {
	Name() string
	Run(ctx context.Context, pc *Context) error
}

// Pipeline chains stages in the order given to New.
type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Execute runs every stage against pc, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, pc *Context) error {
	for i, st := range p.stages {
		log.Info().Int("step", i+1).Str("stage", st.Name()).Msg("stage start")
		if err := st.Run(ctx, pc); err != nil {
			return fmt.Errorf("stage %s: %w", st.Name(), err)
		}
	}
	return nil
}
