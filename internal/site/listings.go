package site

import (
	"context"
	"log/slog"
	"sort"

	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/page"
	"github.com/hypersite/hypersite/internal/templates"
	"github.com/hypersite/hypersite/internal/version"
)

// listingTemplate is used for generated label and category pages when the
// registry has it; otherwise the default template serves.
const listingTemplate = "listing"

// stageGenerateListings writes one aggregated listing page per label and per
// category that has at least two member pages. Single-member groups produce
// no page.
func stageGenerateListings(ctx context.Context, state *BuildState) error {
	if err := writeGroupListings(ctx, state, state.Labels, "label"); err != nil {
		return err
	}
	if err := writeGroupListings(ctx, state, state.Categories, "category"); err != nil {
		return err
	}
	slog.Info("listing pages generated", logfields.Count(state.Report.ListingsRendered))
	return nil
}

func writeGroupListings(ctx context.Context, state *BuildState, groups map[string]*group, kind string) error {
	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageListings, err)
		}

		g := groups[slug]
		if len(g.Members) < listingThreshold {
			continue
		}

		outputRel := kind + "/" + slug + "/index.html"
		tctx := state.listingContext(g, kind)

		name := page.DefaultTemplate
		if state.Builder.registry.Has(listingTemplate) {
			name = listingTemplate
		}
		out, err := state.Builder.registry.Render(name, &tctx)
		if err != nil {
			return newFatalStageError(StageListings, err)
		}
		if err := state.writePage(outputRel, out); err != nil {
			return newFatalStageError(StageListings, err)
		}

		state.Report.ListingsRendered++
		slog.Debug("listing page written",
			slog.String("kind", kind),
			logfields.Label(g.Name),
			logfields.Path(outputRel))
	}
	return nil
}

// listingContext builds the template context for a generated listing page.
func (s *BuildState) listingContext(g *group, kind string) templates.Context {
	cfg := s.Builder.cfg
	basePath := cfg.Site.BasePath
	pageURL := basePath + "/" + kind + "/" + g.Slug + "/"

	tctx := templates.Context{
		Title:       g.Name,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
		PageType:    "listing",
		Body:        listingHTML(g.Members),
		BasePath:    basePath,
		SiteLabels:  s.SiteLabels,
		CSS:         s.CSS,
		JS:          s.JS,
		Generator:   version.Generator(),
	}

	tctx.Nav = make([]templates.NavItem, len(s.Nav))
	copy(tctx.Nav, s.Nav)
	for i := range tctx.Nav {
		tctx.Nav[i].Active = isActivePath(pageURL, tctx.Nav[i].Href, basePath)
	}
	return tctx
}
