package markdown

import (
	"html"
	"regexp"
	"strings"
)

// Hypermedia links extend markdown link syntax with a trailing attribute
// block: [text](url){attrs}. The rewrite runs before markdown compilation
// because the compiler would otherwise drop or mis-render the block.
//
// The pattern captures an optional leading `!` so image syntax can be
// recognized and left untouched (RE2 has no lookbehind).
var hyperlinkPattern = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^()\s]*)\)\{([^{}]*)\}`)

// Attribute keys that denote an HTTP verb. A bare verb consumes the link URL
// into the matching hx- attribute; any verb other than get makes the element
// an interactive control.
var verbKeys = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"patch":  true,
	"delete": true,
}

// Shorthand keys mapped to their hx- forms.
var hxShorthand = map[string]string{
	"trigger":   "hx-trigger",
	"target":    "hx-target",
	"swap":      "hx-swap",
	"select":    "hx-select",
	"confirm":   "hx-confirm",
	"push-url":  "hx-push-url",
	"vals":      "hx-vals",
	"indicator": "hx-indicator",
	"boost":     "hx-boost",
}

var attrNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:-]*$`)

type hyperAttr struct {
	key      string
	value    string
	hasValue bool
}

// RewriteHypermedia rewrites every hypermedia link in body into an explicit
// HTML element. Links with a mutation verb (non-GET) or an explicit trigger
// become <button> elements; everything else becomes <a href> carrying the
// mapped attributes. Attribute order follows source order, attribute values
// are HTML-escaped, and the link text is left verbatim for the markdown
// compiler's inline pass.
func RewriteHypermedia(body string) string {
	return hyperlinkPattern.ReplaceAllStringFunc(body, func(match string) string {
		parts := hyperlinkPattern.FindStringSubmatch(match)
		if parts[1] == "!" {
			return match
		}
		return renderHyperElement(parts[2], parts[3], parseAttrList(parts[4]))
	})
}

func renderHyperElement(text, url string, attrs []hyperAttr) string {
	isControl := false
	hasVerb := false
	for _, a := range attrs {
		if verbKeys[a.key] {
			hasVerb = true
			if a.key != "get" {
				isControl = true
			}
		}
		if a.key == "trigger" || a.key == "hx-trigger" {
			isControl = true
		}
	}

	var b strings.Builder
	if isControl {
		b.WriteString("<button")
		if !hasVerb {
			writeAttr(&b, "hx-get", url)
		}
	} else {
		b.WriteString("<a")
		writeAttr(&b, "href", url)
	}

	for _, a := range attrs {
		name := a.key
		if mapped, ok := hxShorthand[name]; ok {
			name = mapped
		}
		switch {
		case verbKeys[a.key]:
			if a.hasValue {
				writeAttr(&b, "hx-"+a.key, a.value)
			} else {
				writeAttr(&b, "hx-"+a.key, url)
			}
		case a.hasValue:
			writeAttr(&b, name, a.value)
		default:
			writeBoolAttr(&b, name)
		}
	}

	if isControl {
		b.WriteString(">" + text + "</button>")
	} else {
		b.WriteString(">" + text + "</a>")
	}
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	if !attrNamePattern.MatchString(name) {
		return
	}
	b.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

func writeBoolAttr(b *strings.Builder, name string) {
	if !attrNamePattern.MatchString(name) {
		return
	}
	b.WriteString(" " + name)
}

// parseAttrList tokenizes a whitespace-separated attribute list. Tokens are
// either a bare key, key=value, or key="quoted value". An unterminated quote
// runs to the end of the list.
func parseAttrList(s string) []hyperAttr {
	attrs := make([]hyperAttr, 0, 4)
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		for i < len(s) && s[i] != '=' && !isSpace(s[i]) {
			i++
		}
		key := s[start:i]
		if i >= len(s) || isSpace(s[i]) {
			attrs = append(attrs, hyperAttr{key: key})
			continue
		}
		i++ // consume '='
		var value string
		if i < len(s) && s[i] == '"' {
			i++
			vstart := i
			for i < len(s) && s[i] != '"' {
				i++
			}
			value = s[vstart:i]
			if i < len(s) {
				i++ // consume closing quote
			}
		} else {
			vstart := i
			for i < len(s) && !isSpace(s[i]) {
				i++
			}
			value = s[vstart:i]
		}
		attrs = append(attrs, hyperAttr{key: key, value: value, hasValue: true})
	}
	return attrs
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
