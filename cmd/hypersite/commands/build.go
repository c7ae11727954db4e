package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hypersite/hypersite/internal/announce"
	"github.com/hypersite/hypersite/internal/config"
	"github.com/hypersite/hypersite/internal/ledger"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/metrics"
	"github.com/hypersite/hypersite/internal/site"
	"github.com/hypersite/hypersite/internal/version"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override the configured output directory"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Output.Dir = b.Output
	}

	version.GitCommit = version.ResolveCommit(".")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	builder := site.New(cfg)

	var registry *prometheus.Registry
	if cfg.Metrics.Textfile != "" {
		registry = prometheus.NewRegistry()
		builder.SetRecorder(metrics.NewPrometheusRecorder(registry))
	}

	report, buildErr := builder.Build(ctx)

	// Post-build sinks are best-effort: a full output tree beats a lost
	// metrics scrape or ledger row.
	if registry != nil {
		if err := metrics.WriteTextfile(registry, cfg.Metrics.Textfile); err != nil {
			slog.Warn("could not write metrics textfile", logfields.Error(err))
		}
	}
	if cfg.Ledger.Enabled {
		recordBuild(ctx, cfg, report)
	}
	if cfg.Announce.Enabled {
		announceBuild(ctx, cfg, report)
	}

	fmt.Fprint(os.Stdout, report.Summary())

	if buildErr != nil {
		return fmt.Errorf("build %s: %w", report.Outcome, buildErr)
	}
	return nil
}

// recordBuild appends the finished build to the local ledger.
func recordBuild(ctx context.Context, cfg *config.Config, report *site.BuildReport) {
	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		slog.Warn("could not open build ledger", logfields.Error(err))
		return
	}
	defer store.Close()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		slog.Warn("could not serialize build report for ledger", logfields.Error(err))
		return
	}

	entry := ledger.Entry{
		BuildID:    report.BuildID,
		StartedAt:  report.Start,
		FinishedAt: report.End,
		Outcome:    string(report.Outcome),
		Pages:      report.PagesRendered,
		Warnings:   len(report.Warnings),
		Report:     string(reportJSON),
	}
	if err := store.Append(ctx, entry); err != nil {
		slog.Warn("could not record build in ledger", logfields.Error(err))
		return
	}
	slog.Debug("build recorded in ledger", logfields.BuildID(report.BuildID))
}

// announceBuild publishes a build-completed event.
func announceBuild(ctx context.Context, cfg *config.Config, report *site.BuildReport) {
	pub, err := announce.NewPublisher(&cfg.Announce)
	if err != nil {
		slog.Warn("could not connect build announcer", logfields.Error(err))
		return
	}
	defer pub.Close()

	event := announce.Event{
		BuildID:    report.BuildID,
		Outcome:    string(report.Outcome),
		Pages:      report.PagesRendered,
		Warnings:   len(report.Warnings),
		DurationMS: report.Duration().Milliseconds(),
		BaseURL:    cfg.Site.BaseURL,
		Generator:  version.Generator(),
	}
	if err := pub.Publish(ctx, event); err != nil {
		slog.Warn("could not announce build", logfields.Error(err))
	}
}
