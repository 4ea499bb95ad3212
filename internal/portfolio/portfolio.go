// Package portfolio runs the generation pipeline: a content record is
// normalized, synthesized into project files, packed into a zip archive
// and optionally delivered.
//
// Each call is one independent unit of work. The only shared state is the
// synthesizer's template cache, which is safe for concurrent use.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/simonhull/firebird-suite/plume/internal/archive"
	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/delivery"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/metrics"
	"github.com/simonhull/firebird-suite/plume/internal/project"
	"github.com/simonhull/firebird-suite/plume/internal/synth"
	"github.com/simonhull/firebird-suite/plume/internal/templates"
)

// SourceFunc creates the proficiency source for one generation
type SourceFunc func() content.ProficiencySource

// Generator runs the pipeline
type Generator struct {
	library *templates.Library
	synth   *synth.Synthesizer
	builder *archive.Builder
	source  SourceFunc
	log     logger.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes skill levels reproducible: every generation uses a fresh
// source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.source = func() content.ProficiencySource {
			return content.NewSource(seed)
		}
	}
}

// WithProficiencySource sets the source factory used for skill levels
func WithProficiencySource(fn SourceFunc) Option {
	return func(g *Generator) {
		g.source = fn
	}
}

// WithTemplates replaces the built-in template library
func WithTemplates(lib *templates.Library) Option {
	return func(g *Generator) {
		g.library = lib
	}
}

// WithArchiveBuilder replaces the default archive builder
func WithArchiveBuilder(b *archive.Builder) Option {
	return func(g *Generator) {
		g.builder = b
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New creates a generator. Without options it uses the built-in templates
// and a randomly seeded source per generation.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: content.RandomSource,
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.builder == nil {
		g.builder = archive.NewBuilder()
	}
	g.synth = synth.New(g.library)
	return g
}

// With returns a copy of g with opts applied. The copy shares g's template
// cache unless WithTemplates replaces the library.
func (g *Generator) With(opts ...Option) *Generator {
	c := *g
	for _, opt := range opts {
		opt(&c)
	}
	if c.library != g.library {
		c.synth = synth.New(c.library)
	}
	return &c
}

// Result is a finished generation
type Result struct {
	Filename string
	Archive  *archive.Archive
	Files    *project.FileSet

	// Resume is the record's attachment, passed through untouched
	Resume *content.Attachment
}

// Synthesize normalizes rec and renders the project files without packing
// them. The record is assumed to be valid; see content.Validate.
func (g *Generator) Synthesize(rec *content.Record) (*project.FileSet, error) {
	if rec == nil {
		return nil, fmt.Errorf("no profile to generate from")
	}

	normalized := content.Normalize(rec, g.source())
	g.log.Debug("content normalized",
		logger.F("slug", normalized.Slug),
		logger.F("projects", len(normalized.Projects)),
		logger.F("skills", len(normalized.Tags)),
		logger.F("socials", len(normalized.Socials)),
	)

	files, err := g.synth.Synthesize(normalized)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Generate produces the archive for rec. Cancellation is honored up to the
// point where archive serialization starts; from then on the build runs to
// completion. Serialization failures are returned as
// *archive.SerializationError.
func (g *Generator) Generate(ctx context.Context, rec *content.Record) (res *Result, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveGeneration(time.Since(start), err)
	}()

	files, err := g.Synthesize(rec)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	arc, err := g.builder.Build(files)
	if err != nil {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}
	arc.Filename = delivery.Filename(rec.Name)
	metrics.ObserveArchive(arc.Size())

	g.log.Info("portfolio generated",
		logger.F("file", arc.Filename),
		logger.F("files", files.Len()),
		logger.F("bytes", arc.Size()),
		logger.F("duration", time.Since(start).String()),
	)

	return &Result{
		Filename: arc.Filename,
		Archive:  arc,
		Files:    files,
		Resume:   rec.Resume,
	}, nil
}

// Deliver generates the archive for rec and hands it to d. Delivery
// failures are returned as *delivery.DeliveryError together with the
// Result, so the same archive can be delivered again. Nothing is retried.
func (g *Generator) Deliver(ctx context.Context, rec *content.Record, d delivery.Deliverer) (*Result, error) {
	res, err := g.Generate(ctx, rec)
	if err != nil {
		return nil, err
	}

	if err := d.Deliver(ctx, res.Archive); err != nil {
		g.log.Error("delivery failed", logger.F("file", res.Filename), logger.F("error", err))
		return res, err
	}

	g.log.Debug("portfolio delivered", logger.F("file", res.Filename))
	return res, nil
}
