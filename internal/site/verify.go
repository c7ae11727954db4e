package site

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hypersite/hypersite/internal/linkcheck"
	"github.com/hypersite/hypersite/internal/logfields"
)

// stageCheckLinks verifies internal anchors across the rendered output.
// Broken links never fail the build; they surface as warnings and a counter
// in the report.
func stageCheckLinks(ctx context.Context, state *BuildState) error {
	if !state.Builder.cfg.LinkCheck.Enabled {
		return nil
	}

	checker := linkcheck.New(state.Builder.cfg.Output.Dir, state.Builder.cfg.Site.BasePath)
	broken, err := checker.Run(ctx)
	if err != nil {
		return newWarnStageError(StageLinkCheck, fmt.Errorf("link check did not complete: %w", err))
	}

	state.Report.BrokenLinks = len(broken)
	state.recorder().AddBrokenLinks(len(broken))
	for _, bl := range broken {
		state.Report.addWarningf("%s: broken internal link %q", bl.Page, bl.Href)
		slog.Warn("broken internal link",
			logfields.Path(bl.Page),
			slog.String("href", bl.Href))
	}
	return nil
}
