// Package markdown wraps the markdown-to-HTML compiler and the reversible
// preprocessing steps that run around it: raw-HTML fence protection and the
// hypermedia link rewrite.
package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Raw fences protect verbatim HTML from the markdown compiler. A line
// `:::raw` opens a fence, a line `:::` closes it. The fenced content is
// swapped for a comment placeholder before compilation and swapped back
// afterwards, so the compiler never escapes or re-wraps it.
const (
	rawFenceOpen  = ":::raw"
	rawFenceClose = ":::"
)

const placeholderFormat = "<!--hypersite:raw:%d-->"

var (
	placeholderPattern = regexp.MustCompile(`<!--hypersite:raw:(\d+)-->`)
	// A placeholder the compiler wrapped in an auto-inserted paragraph.
	wrappedPlaceholderPattern = regexp.MustCompile(`<p>\s*<!--hypersite:raw:(\d+)-->\s*</p>`)
)

// RawBlocks holds the protected fragments of a single document. The table is
// scoped to one preprocessing pass and discarded after Restore.
type RawBlocks struct {
	blocks []string
}

// Add stores a verbatim HTML fragment and returns the placeholder that
// stands in for it until Restore.
func (rb *RawBlocks) Add(content string) string {
	rb.blocks = append(rb.blocks, content)
	return fmt.Sprintf(placeholderFormat, len(rb.blocks)-1)
}

// Len reports the number of protected fragments.
func (rb *RawBlocks) Len() int {
	return len(rb.blocks)
}

// Protect extracts raw-HTML fences from body, replacing each with a
// placeholder registered in the returned table. An unterminated fence runs
// to the end of the document, mirroring how markdown treats unclosed code
// fences. Restore(Protect(body)) reproduces body except for the fence lines
// themselves.
func Protect(body string) (string, *RawBlocks) {
	blocks := &RawBlocks{}
	if !strings.Contains(body, rawFenceOpen) {
		return body, blocks
	}

	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") != rawFenceOpen {
			out = append(out, lines[i])
			continue
		}
		inner := make([]string, 0, 8)
		j := i + 1
		for ; j < len(lines); j++ {
			if strings.TrimRight(lines[j], " \t\r") == rawFenceClose {
				break
			}
			inner = append(inner, strings.TrimRight(lines[j], "\r"))
		}
		out = append(out, blocks.Add(strings.Join(inner, "\n")))
		i = j
	}
	return strings.Join(out, "\n"), blocks
}

// Restore replaces every placeholder in html with its stored fragment. A
// paragraph wrapper directly enclosing a placeholder is stripped first so
// block-level raw HTML does not end up nested inside <p>. Placeholders with
// no matching entry are left alone.
func (rb *RawBlocks) Restore(html string) string {
	if rb.Len() == 0 {
		return html
	}
	replace := func(match string) string {
		idx := placeholderPattern.FindStringSubmatch(match)
		n, err := strconv.Atoi(idx[1])
		if err != nil || n < 0 || n >= len(rb.blocks) {
			return match
		}
		return rb.blocks[n]
	}
	html = wrappedPlaceholderPattern.ReplaceAllStringFunc(html, replace)
	return placeholderPattern.ReplaceAllStringFunc(html, replace)
}
