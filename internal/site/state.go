package site

import (
	"github.com/hypersite/hypersite/internal/hierarchy"
	"github.com/hypersite/hypersite/internal/metrics"
	"github.com/hypersite/hypersite/internal/page"
	"github.com/hypersite/hypersite/internal/templates"
)

// Source is a discovered content document, prior to parsing.
type Source struct {
	// RelPath is the path relative to the content directory, slash-separated.
	RelPath string
	// FullPath is the absolute (or content-dir joined) filesystem path.
	FullPath string
}

// Document is a parsed content document: normalized metadata, the markup
// body, and the raw frontmatter fields for template consumption.
type Document struct {
	Meta   page.Metadata
	Body   string
	Fields map[string]any
}

// IndexEntry is one record of the machine-readable page index. The JSON
// field set is a stable contract consumed by client-side routers.
type IndexEntry struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Category    string   `json:"category,omitempty"`
	Date        string   `json:"date,omitempty"`
}

// group collects the member pages of one label or category, keyed by slug so
// that names differing only in case or punctuation share a listing.
type group struct {
	// Name is the display form, taken from the first page that used it.
	Name    string
	Slug    string
	Members []IndexEntry
}

// BuildState is the shared mutable state threaded through the pipeline
// stages. Each stage reads what earlier stages produced and appends its own
// results.
type BuildState struct {
	Builder *Builder
	Report  *BuildReport

	// Discovery and parsing.
	Sources   []Source
	Documents []Document

	// Page graph.
	Tree *hierarchy.Tree

	// Aggregated indexes.
	Nav        []templates.NavItem
	SiteLabels []templates.LabelRef
	Labels     map[string]*group // by slug
	Categories map[string]*group // by slug
	PageIndex  []IndexEntry

	// Asset hrefs discovered under the static directory, base-path prefixed.
	CSS []string
	JS  []string
}

func newBuildState(b *Builder, report *BuildReport) *BuildState {
	return &BuildState{
		Builder:    b,
		Report:     report,
		Labels:     make(map[string]*group),
		Categories: make(map[string]*group),
	}
}

func (s *BuildState) recorder() metrics.Recorder {
	if s.Builder == nil || s.Builder.recorder == nil {
		return metrics.NoopRecorder{}
	}
	return s.Builder.recorder
}

// document returns the parsed document for a short URI, or nil.
func (s *BuildState) document(shortURI string) *Document {
	for i := range s.Documents {
		if s.Documents[i].Meta.ShortURI == shortURI {
			return &s.Documents[i]
		}
	}
	return nil
}

// metas returns the metadata records of all parsed documents.
func (s *BuildState) metas() []page.Metadata {
	out := make([]page.Metadata, len(s.Documents))
	for i := range s.Documents {
		out[i] = s.Documents[i].Meta
	}
	return out
}

// labelHref returns the href a label badge should point at: the listing page
// when one exists, otherwise the single member page.
func (s *BuildState) labelHref(slug string) string {
	g, ok := s.Labels[slug]
	if !ok {
		return ""
	}
	if len(g.Members) >= listingThreshold {
		return s.Builder.cfg.Site.BasePath + "/label/" + slug + "/"
	}
	if len(g.Members) == 1 {
		return g.Members[0].URL
	}
	return ""
}

// labelListingHref returns the listing href for a label, or "" when the
// label has no listing page. Used for a page's own badges, where linking a
// solo label back to the page itself would be pointless.
func (s *BuildState) labelListingHref(slug string) string {
	g, ok := s.Labels[slug]
	if !ok || len(g.Members) < listingThreshold {
		return ""
	}
	return s.Builder.cfg.Site.BasePath + "/label/" + slug + "/"
}

// categoryHref returns the listing href for a category, or "" when the
// category has no listing page.
func (s *BuildState) categoryHref(slug string) string {
	g, ok := s.Categories[slug]
	if !ok || len(g.Members) < listingThreshold {
		return ""
	}
	return s.Builder.cfg.Site.BasePath + "/category/" + slug + "/"
}

// listingThreshold is the minimum member count for a label or category to
// get a generated listing page.
const listingThreshold = 2
