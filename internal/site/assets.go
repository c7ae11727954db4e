package site

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/page"
)

// stagePrepareOutput creates the output directory, optionally clearing a
// previous build first.
func stagePrepareOutput(_ context.Context, state *BuildState) error {
	dir := state.Builder.cfg.Output.Dir
	if state.Builder.cfg.Output.Clean {
		if err := os.RemoveAll(dir); err != nil {
			return newFatalStageError(StagePrepareOutput,
				fmt.Errorf("clean output directory %s: %w", dir, err))
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newFatalStageError(StagePrepareOutput,
			fmt.Errorf("create output directory %s: %w", dir, err))
	}
	return nil
}

// stageLoadTemplates populates the template registry: the embedded default
// first, then any templates from the configured directory. A user-provided
// default.html therefore replaces the embedded body.
func stageLoadTemplates(_ context.Context, state *BuildState) error {
	reg := state.Builder.registry
	reg.Register(page.DefaultTemplate, DefaultTemplateHTML)

	if err := reg.LoadDir(state.Builder.cfg.Content.TemplatesDir); err != nil {
		return newFatalStageError(StageLoadTemplates, err)
	}

	slog.Debug("templates loaded", slog.Any("names", reg.Names()))
	return nil
}

// stageCopyAssets mirrors the static directory into the output root and
// records stylesheet and script hrefs for the page head and footer. A
// missing static directory is not an error.
func stageCopyAssets(ctx context.Context, state *BuildState) error {
	staticDir := state.Builder.cfg.Content.StaticDir
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		slog.Debug("no static directory", logfields.Path(staticDir))
		return nil
	}

	basePath := state.Builder.cfg.Site.BasePath
	outputDir := state.Builder.cfg.Output.Dir
	copied := 0

	err := filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != staticDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if err := copyFile(path, filepath.Join(outputDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
		copied++

		switch strings.ToLower(filepath.Ext(rel)) {
		case ".css":
			state.CSS = append(state.CSS, basePath+"/"+rel)
		case ".js":
			state.JS = append(state.JS, basePath+"/"+rel)
		}
		return nil
	})
	if err != nil {
		return newFatalStageError(StageCopyAssets,
			fmt.Errorf("copy static assets from %s: %w", staticDir, err))
	}

	slog.Info("static assets copied",
		logfields.Count(copied),
		slog.Int("stylesheets", len(state.CSS)),
		slog.Int("scripts", len(state.JS)))
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
