// Package site orchestrates the build pipeline: content discovery, metadata
// collection, hierarchy assembly, page rendering, and artifact generation.
package site

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"

	"github.com/hypersite/hypersite/internal/config"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/markdown"
	"github.com/hypersite/hypersite/internal/metrics"
	"github.com/hypersite/hypersite/internal/templates"
)

// Builder runs complete site builds from a loaded configuration. A Builder
// is reusable across builds; each Build call gets fresh state.
type Builder struct {
	cfg      *config.Config
	registry *templates.Registry
	compiler *markdown.Compiler
	recorder metrics.Recorder
	minifier *minify.M
}

// New creates a Builder for the given configuration.
func New(cfg *config.Config) *Builder {
	b := &Builder{
		cfg:      cfg,
		registry: templates.NewRegistry(),
		compiler: markdown.NewCompiler(markdown.Options{
			Highlight:      cfg.Markdown.Highlight,
			HighlightStyle: cfg.Markdown.HighlightStyle,
			Sanitize:       cfg.Markdown.Sanitize,
		}),
		recorder: metrics.NoopRecorder{},
	}

	if cfg.Output.Minify {
		m := minify.New()
		m.AddFunc("text/html", mhtml.Minify)
		b.minifier = m
	}
	return b
}

// SetRecorder installs a metrics recorder. Returns the builder for chaining.
func (b *Builder) SetRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// Build runs the full pipeline and returns the build report. The report is
// returned even when the build fails; err carries the aborting stage error.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport()
	state := newBuildState(b, report)

	slog.Info("build started",
		logfields.BuildID(report.BuildID),
		slog.String("version", report.Version),
		logfields.Path(b.cfg.Content.Dir))

	pipeline := []StageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StageLoadTemplates, stageLoadTemplates},
		{StageCopyAssets, stageCopyAssets},
		{StageScanContent, stageScanContent},
		{StageCollect, stageCollectMetadata},
		{StageValidate, stageValidateMetadata},
		{StageHierarchy, stageBuildHierarchy},
		{StageAggregate, stageAggregateIndexes},
		{StageRender, stageRenderPages},
		{StageListings, stageGenerateListings},
		{StageArtifacts, stageWriteArtifacts},
		{StageLinkCheck, stageCheckLinks},
	}

	err := runStages(ctx, state, pipeline)

	var stageErr *StageError
	canceled := errors.As(err, &stageErr) && stageErr.Kind == StageErrorCanceled
	report.finish()
	report.deriveOutcome(canceled)

	// The report is written even for failed builds so the failure is
	// inspectable afterwards.
	if perr := report.Persist(b.cfg.Output.Dir); perr != nil {
		slog.Warn("could not persist build report", logfields.Error(perr))
	}

	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))

	slog.Info("build finished",
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())),
		slog.Int("pages", report.PagesRendered),
		slog.Int("listings", report.ListingsRendered),
		slog.Int("warnings", len(report.Warnings)))

	return report, err
}
