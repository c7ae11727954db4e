package site

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hypersite/hypersite/internal/hierarchy"
	"github.com/hypersite/hypersite/internal/markdown"
)

// childrenPattern matches the fenced child-listing directive:
//
//	```children
//	sort: date-desc
//	```
//
// The sort line is optional. The block must start at column zero.
var childrenPattern = regexp.MustCompile("(?ms)^```children[ \t]*\r?$\n(.*?)^```[ \t]*\r?$")

// Child-listing sort modes. Unknown or absent modes fall back to SortOrder.
const (
	SortOrder    = "order"
	SortTitle    = "title"
	SortDateAsc  = "date-asc"
	SortDateDesc = "date-desc"
)

// expandChildren replaces child-listing directives in a masked body with
// protected raw blocks holding the rendered listing. The listing HTML joins
// the protected set so the markup compiler never reinterprets it.
func expandChildren(masked string, children []*hierarchy.Node, basePath string, blocks *markdown.RawBlocks) string {
	return childrenPattern.ReplaceAllStringFunc(masked, func(match string) string {
		sub := childrenPattern.FindStringSubmatch(match)
		mode := parseSortMode(sub[1])

		entries := make([]IndexEntry, 0, len(children))
		for _, child := range children {
			entries = append(entries, indexEntry(basePath, child.Page))
		}
		sortEntries(entries, mode)

		return blocks.Add(listingHTML(entries))
	})
}

// parseSortMode extracts the sort mode from the directive body.
func parseSortMode(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "sort:")
		if !ok {
			continue
		}
		switch mode := strings.TrimSpace(rest); mode {
		case SortTitle, SortDateAsc, SortDateDesc, SortOrder:
			return mode
		}
	}
	return SortOrder
}

// sortEntries orders listing entries per the requested mode. SortOrder keeps
// the hierarchy's child order, which the entries already carry.
func sortEntries(entries []IndexEntry, mode string) {
	switch mode {
	case SortTitle:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
		})
	case SortDateAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return lessByDate(entries[i], entries[j], false)
		})
	case SortDateDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return lessByDate(entries[i], entries[j], true)
		})
	}
}

// lessByDate orders dated entries before undated ones. Ties break by title.
func lessByDate(a, b IndexEntry, desc bool) bool {
	switch {
	case a.Date != "" && b.Date != "":
		if a.Date == b.Date {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
		if desc {
			return a.Date > b.Date
		}
		return a.Date < b.Date
	case a.Date != "":
		return true
	case b.Date != "":
		return false
	default:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	}
}

// listingHTML renders entries as an unordered listing. Returns "" for an
// empty entry set so the enclosing directive disappears from the page.
func listingHTML(entries []IndexEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<ul class=\"page-listing\">\n")
	for _, e := range entries {
		b.WriteString("<li><a href=\"")
		b.WriteString(html.EscapeString(e.URL))
		b.WriteString("\">")
		b.WriteString(html.EscapeString(e.Title))
		b.WriteString("</a>")
		if e.Description != "" {
			fmt.Fprintf(&b, " <span class=\"listing-description\">%s</span>", html.EscapeString(e.Description))
		}
		if e.Date != "" {
			fmt.Fprintf(&b, " <time datetime=\"%s\">%s</time>", e.Date, displayDate(e.Date))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

// displayDate renders an ISO date in the long human form used elsewhere on
// pages.
func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}
