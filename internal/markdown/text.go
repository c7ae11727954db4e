package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from an HTML fragment and returns the visible
// text. Script and style contents are dropped.
func PlainText(fragment string) string {
	tok := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := tok.TagName()
			if n := string(name); n == "script" || n == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if n := string(name); (n == "script" || n == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// WordCount counts whitespace-delimited words in the visible text of an
// HTML fragment.
func WordCount(fragment string) int {
	return len(strings.Fields(PlainText(fragment)))
}
