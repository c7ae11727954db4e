// Package templates implements the tag-based template system: a registry of
// named template bodies and a resolver for {{tag}} placeholders and
// {{#if tag}} conditional blocks.
package templates

import "time"

// NavItem is one entry of the top-level navigation bar.
type NavItem struct {
	Label  string
	Href   string
	Active bool
	Order  int
}

// LabelRef points at a label or category: its display name and the URL it
// links to (a listing page, or the single member page for one-off labels).
type LabelRef struct {
	Name string
	Href string
}

// Context is the per-page bag of values the tag resolver draws from. It is
// assembled by the orchestrator for each document and never shared between
// pages. Hrefs in Nav, Labels, SiteLabels, CSS and JS arrive fully built
// (base path included) so resolution stays a pure string transform.
type Context struct {
	Title       string
	Description string
	Author      string
	Keywords    []string
	PageType    string
	Category    string
	// CategoryHref is empty when the category has no listing page.
	CategoryHref string
	Labels       []LabelRef
	// SiteLabels is the site-wide label set backing the label footer.
	SiteLabels []LabelRef
	Date       *time.Time
	// Body is the compiled article HTML.
	Body     string
	BasePath string
	Nav      []NavItem
	// CSS and JS list asset hrefs discovered under the static directory.
	CSS []string
	JS  []string
	// Generator names the producing tool, surfaced as a meta tag.
	Generator string
	// Meta carries the raw header fields for diagnostics.
	Meta map[string]any
}
