package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hypersite/hypersite/internal/version"
)

// BuildOutcome summarizes a whole build run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures everything observable about one build run. It is
// persisted next to the generated site as build-report.json.
type BuildReport struct {
	SchemaVersion int       `json:"schema_version"`
	BuildID       string    `json:"build_id"`
	Version       string    `json:"version"`
	Commit        string    `json:"commit,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`

	Outcome BuildOutcome `json:"outcome"`

	Documents        int `json:"documents"`
	PagesRendered    int `json:"pages_rendered"`
	ListingsRendered int `json:"listings_rendered"`
	SoftSkips        int `json:"soft_skips"`
	BrokenLinks      int `json:"broken_links"`

	// Stage durations in milliseconds, keyed by stage name.
	StageDurationsMS map[string]int64 `json:"stage_durations_ms"`

	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

const reportSchemaVersion = 1

func newBuildReport() *BuildReport {
	return &BuildReport{
		SchemaVersion:    reportSchemaVersion,
		BuildID:          uuid.NewString(),
		Version:          version.Version,
		Commit:           version.GitCommit,
		Start:            time.Now().UTC(),
		StageDurationsMS: make(map[string]int64),
	}
}

func (r *BuildReport) recordStage(name StageName, d time.Duration) {
	r.StageDurationsMS[string(name)] = d.Milliseconds()
}

func (r *BuildReport) addError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err.Error())
}

func (r *BuildReport) addWarning(err error) {
	if err == nil {
		return
	}
	r.Warnings = append(r.Warnings, err.Error())
}

func (r *BuildReport) addWarningf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// deriveOutcome classifies the run from the collected errors and warnings.
// Canceled runs keep their canceled outcome.
func (r *BuildReport) deriveOutcome(canceled bool) {
	switch {
	case canceled:
		r.Outcome = OutcomeCanceled
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *BuildReport) finish() {
	r.End = time.Now().UTC()
}

// Duration returns the wall-clock duration of the build.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary renders a short human-readable account of the run.
func (r *BuildReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build %s: %s in %s\n", r.BuildID, r.Outcome, r.Duration().Round(time.Millisecond))
	fmt.Fprintf(&b, "  documents: %d, rendered: %d pages + %d listings, skipped: %d\n",
		r.Documents, r.PagesRendered, r.ListingsRendered, r.SoftSkips)
	if r.BrokenLinks > 0 {
		fmt.Fprintf(&b, "  broken internal links: %d\n", r.BrokenLinks)
	}

	if len(r.StageDurationsMS) > 0 {
		names := make([]string, 0, len(r.StageDurationsMS))
		for name := range r.StageDurationsMS {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("  stages:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-20s %dms\n", name, r.StageDurationsMS[name])
		}
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  error: %s\n", e)
	}
	return b.String()
}

// Persist writes the report as JSON into dir, atomically via a temp file.
func (r *BuildReport) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal build report: %w", err)
	}
	data = append(data, '\n')

	target := filepath.Join(dir, "build-report.json")
	tmp := target + ".tmp"
	// #nosec G306 -- build reports are not secrets
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write build report: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("finalize build report: %w", err)
	}
	return nil
}
