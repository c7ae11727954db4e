package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hypersite/hypersite/internal/logfields"
)

const markupExtension = ".md"

// stageScanContent walks the content directory and records every markup
// document. Hidden files and directories (dot-prefixed) are skipped, as is
// anything without the markup extension. The result is sorted by relative
// path so later stages behave deterministically regardless of filesystem
// ordering.
func stageScanContent(ctx context.Context, state *BuildState) error {
	contentDir := state.Builder.cfg.Content.Dir

	var sources []Source
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != contentDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), markupExtension) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		sources = append(sources, Source{
			RelPath:  filepath.ToSlash(rel),
			FullPath: path,
		})
		return nil
	})
	if err != nil {
		return newFatalStageError(StageScanContent,
			fmt.Errorf("scan content directory %s: %w", contentDir, err))
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].RelPath < sources[j].RelPath })

	state.Sources = sources
	state.Report.Documents = len(sources)
	slog.Info("content documents discovered",
		logfields.Path(contentDir),
		logfields.Count(len(sources)))
	return nil
}
