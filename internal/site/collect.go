package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hypersite/hypersite/internal/frontmatter"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/page"
)

// stageCollectMetadata reads and parses every discovered document. Documents
// without frontmatter, or whose frontmatter fails to parse, are soft-skipped:
// a warning is recorded and the build continues without them. Metadata that
// parses but fails validation aborts the build.
func stageCollectMetadata(ctx context.Context, state *BuildState) error {
	for _, src := range state.Sources {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageCollect, err)
		}

		raw, err := os.ReadFile(src.FullPath)
		if err != nil {
			return newFatalStageError(StageCollect,
				fmt.Errorf("read document %s: %w", src.RelPath, err))
		}

		header, body, had, err := frontmatter.Split(raw)
		if err != nil {
			state.softSkip(src.RelPath, fmt.Sprintf("frontmatter is malformed: %v", err))
			continue
		}
		if !had {
			state.softSkip(src.RelPath, "document has no frontmatter")
			continue
		}

		fields, err := frontmatter.ParseFields(header)
		if err != nil {
			state.softSkip(src.RelPath, fmt.Sprintf("frontmatter is not valid YAML: %v", err))
			continue
		}

		meta, warnings, err := page.Normalize(src.RelPath, fields)
		if err != nil {
			return newFatalStageError(StageCollect, err)
		}
		for _, w := range warnings {
			state.Report.addWarningf("%s: %s", src.RelPath, w)
			slog.Warn("metadata warning", logfields.Document(src.RelPath), slog.String("detail", w))
		}

		state.Documents = append(state.Documents, Document{
			Meta:   meta,
			Body:   string(body),
			Fields: fields,
		})
	}

	slog.Info("documents collected",
		logfields.Count(len(state.Documents)),
		slog.Int("soft_skips", state.Report.SoftSkips))
	return nil
}

// softSkip records a document excluded from the build for a recoverable
// reason.
func (s *BuildState) softSkip(relPath, reason string) {
	s.Report.SoftSkips++
	s.Report.addWarningf("%s: %s (document skipped)", relPath, reason)
	s.recorder().AddSoftSkips(1)
	slog.Warn("document skipped", logfields.Document(relPath), slog.String("reason", reason))
}

// stageValidateMetadata enforces cross-document rules, currently short URI
// uniqueness.
func stageValidateMetadata(_ context.Context, state *BuildState) error {
	if err := page.ValidateSet(state.metas()); err != nil {
		return newFatalStageError(StageValidate, err)
	}
	return nil
}
