package site

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hypersite/hypersite/internal/hierarchy"
	"github.com/hypersite/hypersite/internal/markdown"
	"github.com/hypersite/hypersite/internal/page"
)

func childNode(doc, uri, title string, order int, date string) *hierarchy.Node {
	meta := page.Metadata{
		Document: doc,
		ShortURI: uri,
		Title:    title,
		Order:    order,
		Type:     page.TypePage,
	}
	if date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		meta.Date = &t
	}
	return &hierarchy.Node{Page: meta}
}

func TestParseSortMode(t *testing.T) {
	require.Equal(t, SortDateDesc, parseSortMode("sort: date-desc\n"))
	require.Equal(t, SortTitle, parseSortMode("  sort:title  \n"))
	require.Equal(t, SortOrder, parseSortMode(""))
	require.Equal(t, SortOrder, parseSortMode("sort: chronological-ish\n"))
	require.Equal(t, SortOrder, parseSortMode("something: else\n"))
}

func TestExpandChildrenReplacesDirectiveWithProtectedListing(t *testing.T) {
	children := []*hierarchy.Node{
		childNode("blog/one.md", "one", "First Post", 1, "2024-03-10"),
		childNode("blog/two.md", "two", "Second Post", 2, "2024-04-05"),
	}

	body := "Intro.\n\n```children\nsort: date-desc\n```\n\nOutro.\n"
	masked, blocks := markdown.Protect(body)
	expanded := expandChildren(masked, children, "", blocks)

	require.NotContains(t, expanded, "```children")
	require.Contains(t, expanded, "<!--hypersite:raw:0-->")

	restored := blocks.Restore(expanded)
	require.Contains(t, restored, `<ul class="page-listing">`)
	require.Contains(t, restored, `<a href="/blog/two/">Second Post</a>`)
	require.Contains(t, restored, `<a href="/blog/one/">First Post</a>`)
	// date-desc puts the newer post first
	require.Less(t,
		strings.Index(restored, "Second Post"),
		strings.Index(restored, "First Post"))
}

func TestExpandChildrenWithoutDirectiveLeavesBodyAlone(t *testing.T) {
	body := "Just text.\n"
	masked, blocks := markdown.Protect(body)
	require.Equal(t, body, expandChildren(masked, nil, "", blocks))
}

func TestExpandChildrenEmptyChildSetRemovesDirective(t *testing.T) {
	body := "Before.\n\n```children\n```\n\nAfter.\n"
	masked, blocks := markdown.Protect(body)
	expanded := expandChildren(masked, nil, "", blocks)

	restored := blocks.Restore(expanded)
	require.NotContains(t, restored, "children")
	require.NotContains(t, restored, "<ul")
}

func TestExpandChildrenInsideRawFenceIsNotExpanded(t *testing.T) {
	body := ":::raw\n```children\n```\n:::\n"
	masked, blocks := markdown.Protect(body)
	expanded := expandChildren(masked, nil, "", blocks)

	restored := blocks.Restore(expanded)
	require.Contains(t, restored, "```children")
}

func TestSortEntriesModes(t *testing.T) {
	base := []IndexEntry{
		{Title: "beta", Date: "2024-01-01"},
		{Title: "Alpha", Date: "2024-06-01"},
		{Title: "gamma"},
	}

	entries := append([]IndexEntry(nil), base...)
	sortEntries(entries, SortTitle)
	require.Equal(t, []string{"Alpha", "beta", "gamma"}, titles(entries))

	entries = append([]IndexEntry(nil), base...)
	sortEntries(entries, SortDateAsc)
	require.Equal(t, []string{"beta", "Alpha", "gamma"}, titles(entries))

	entries = append([]IndexEntry(nil), base...)
	sortEntries(entries, SortDateDesc)
	require.Equal(t, []string{"Alpha", "beta", "gamma"}, titles(entries))

	entries = append([]IndexEntry(nil), base...)
	sortEntries(entries, SortOrder)
	require.Equal(t, []string{"beta", "Alpha", "gamma"}, titles(entries))
}

func TestListingHTMLEscapesTextAndRendersDates(t *testing.T) {
	out := listingHTML([]IndexEntry{
		{URL: "/a/", Title: "Tom & Jerry", Description: "<cartoon>", Date: "2024-02-29"},
	})
	require.Contains(t, out, "Tom &amp; Jerry")
	require.Contains(t, out, "&lt;cartoon&gt;")
	require.Contains(t, out, `<time datetime="2024-02-29">February 29, 2024</time>`)
	require.NotContains(t, out, "<cartoon>")
}

func TestListingHTMLEmpty(t *testing.T) {
	require.Equal(t, "", listingHTML(nil))
}

func titles(entries []IndexEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}
