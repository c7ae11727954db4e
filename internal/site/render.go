package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hypersite/hypersite/internal/hierarchy"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/markdown"
	"github.com/hypersite/hypersite/internal/page"
	"github.com/hypersite/hypersite/internal/templates"
	"github.com/hypersite/hypersite/internal/version"
)

// stageRenderPages compiles every document body to HTML and renders it
// through its template into the output tree. Any failure here is fatal; a
// page that cannot be rendered aborts the build rather than shipping a
// partial site.
func stageRenderPages(ctx context.Context, state *BuildState) error {
	for i := range state.Documents {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageRender, err)
		}

		doc := &state.Documents[i]
		if err := renderDocument(state, doc); err != nil {
			return newFatalStageError(StageRender, err)
		}
		state.Report.PagesRendered++
	}

	state.recorder().AddPagesRendered(state.Report.PagesRendered)
	slog.Info("pages rendered", logfields.Count(state.Report.PagesRendered))
	return nil
}

func renderDocument(state *BuildState, doc *Document) error {
	b := state.Builder
	meta := doc.Meta
	basePath := b.cfg.Site.BasePath

	node := state.Tree.Node(meta.ShortURI)
	var children []*hierarchy.Node
	if node != nil {
		children = node.Children
	}

	// Raw regions are masked first so neither the child-listing expansion nor
	// the markup compiler can touch them.
	masked, blocks := markdown.Protect(doc.Body)
	masked = expandChildren(masked, children, basePath, blocks)

	body, err := b.compiler.Convert(masked, blocks)
	if err != nil {
		return fmt.Errorf("compile %s: %w", meta.Document, err)
	}

	tctx := state.renderContext(meta, doc.Fields, body)
	out, err := b.registry.Render(meta.Template, &tctx)
	if err != nil {
		return fmt.Errorf("render %s: %w", meta.Document, err)
	}

	return state.writePage(OutputPath(meta.Document), out)
}

// renderContext assembles the per-page template context from page metadata
// and the aggregated site indexes.
func (s *BuildState) renderContext(meta page.Metadata, fields map[string]any, body string) templates.Context {
	cfg := s.Builder.cfg
	basePath := cfg.Site.BasePath
	pageURL := metaURL(basePath, meta)

	tctx := templates.Context{
		Title:       meta.Title,
		Description: meta.Description,
		Author:      meta.Author,
		Keywords:    meta.Keywords,
		PageType:    string(meta.Type),
		Category:    meta.Category,
		Date:        meta.Date,
		Body:        body,
		BasePath:    basePath,
		SiteLabels:  s.SiteLabels,
		CSS:         s.CSS,
		JS:          s.JS,
		Generator:   version.Generator(),
		Meta:        fields,
	}
	if tctx.Description == "" {
		tctx.Description = cfg.Site.Description
	}
	if tctx.Author == "" {
		tctx.Author = cfg.Site.Author
	}

	if meta.Category != "" {
		tctx.CategoryHref = s.categoryHref(Slugify(meta.Category))
	}
	for _, label := range meta.Labels {
		tctx.Labels = append(tctx.Labels, templates.LabelRef{
			Name: label,
			Href: s.labelListingHref(Slugify(label)),
		})
	}

	tctx.Nav = make([]templates.NavItem, len(s.Nav))
	copy(tctx.Nav, s.Nav)
	for i := range tctx.Nav {
		tctx.Nav[i].Active = isActivePath(pageURL, tctx.Nav[i].Href, basePath)
	}

	return tctx
}

// writePage writes rendered page HTML to its output path, minifying when
// configured.
func (s *BuildState) writePage(outputRel, content string) error {
	if s.Builder.minifier != nil {
		min, err := s.Builder.minifier.String("text/html", content)
		if err != nil {
			return fmt.Errorf("minify %s: %w", outputRel, err)
		}
		content = min
	}

	target := filepath.Join(s.Builder.cfg.Output.Dir, filepath.FromSlash(outputRel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", outputRel, err)
	}
	// #nosec G306 -- generated pages are public artifacts
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputRel, err)
	}
	return nil
}
