package site

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hypersite/hypersite/internal/hierarchy"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/page"
	"github.com/hypersite/hypersite/internal/templates"
)

// stageBuildHierarchy assembles the page tree from parent references. Orphan
// pages and parent cycles are fatal.
func stageBuildHierarchy(_ context.Context, state *BuildState) error {
	tree, err := hierarchy.Build(state.metas())
	if err != nil {
		return newFatalStageError(StageHierarchy, err)
	}
	state.Tree = tree
	return nil
}

// stageAggregateIndexes derives the cross-page indexes: top navigation,
// label and category groups, the site-wide label cloud, and the
// machine-readable page index.
func stageAggregateIndexes(_ context.Context, state *BuildState) error {
	basePath := state.Builder.cfg.Site.BasePath

	// Navigation: one item per root-parented page, in hierarchy order.
	for _, node := range state.Tree.Root.Children {
		state.Nav = append(state.Nav, templates.NavItem{
			Label: node.Page.Title,
			Href:  metaURL(basePath, node.Page),
			Order: node.Page.Order,
		})
	}

	// Label and category groups, keyed by slug so spellings that collapse to
	// the same slug share one listing.
	for i := range state.Documents {
		meta := state.Documents[i].Meta
		entry := indexEntry(basePath, meta)

		for _, label := range meta.Labels {
			addToGroup(state.Labels, label, entry)
		}
		if meta.Category != "" {
			addToGroup(state.Categories, meta.Category, entry)
		}

		state.PageIndex = append(state.PageIndex, entry)
	}

	sort.Slice(state.PageIndex, func(i, j int) bool {
		return state.PageIndex[i].URL < state.PageIndex[j].URL
	})
	for _, g := range state.Labels {
		sortMembers(g.Members)
	}
	for _, g := range state.Categories {
		sortMembers(g.Members)
	}

	// Site-wide label cloud, alphabetical. Hrefs resolve to the listing page
	// or, for single-member labels, straight to the member.
	slugs := make([]string, 0, len(state.Labels))
	for slug := range state.Labels {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool {
		return strings.ToLower(state.Labels[slugs[i]].Name) < strings.ToLower(state.Labels[slugs[j]].Name)
	})
	for _, slug := range slugs {
		state.SiteLabels = append(state.SiteLabels, templates.LabelRef{
			Name: state.Labels[slug].Name,
			Href: state.labelHref(slug),
		})
	}

	slog.Info("indexes aggregated",
		slog.Int("nav_items", len(state.Nav)),
		slog.Int("labels", len(state.Labels)),
		slog.Int("categories", len(state.Categories)),
		logfields.Count(len(state.PageIndex)))
	return nil
}

func addToGroup(groups map[string]*group, name string, entry IndexEntry) {
	slug := Slugify(name)
	if slug == "" {
		return
	}
	g, ok := groups[slug]
	if !ok {
		g = &group{Name: name, Slug: slug}
		groups[slug] = g
	}
	g.Members = append(g.Members, entry)
}

// sortMembers orders listing members newest first, undated members last in
// title order.
func sortMembers(members []IndexEntry) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		switch {
		case a.Date != "" && b.Date != "":
			if a.Date != b.Date {
				return a.Date > b.Date
			}
		case a.Date != "":
			return true
		case b.Date != "":
			return false
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

func indexEntry(basePath string, meta page.Metadata) IndexEntry {
	entry := IndexEntry{
		URL:         metaURL(basePath, meta),
		Title:       meta.Title,
		Description: meta.Description,
		Labels:      meta.Labels,
		Category:    meta.Category,
	}
	if meta.Date != nil {
		entry.Date = meta.Date.Format("2006-01-02")
	}
	return entry
}

// metaURL is the served URL of a document's generated page.
func metaURL(basePath string, meta page.Metadata) string {
	return PageURL(basePath, OutputPath(meta.Document))
}
