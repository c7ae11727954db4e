// Package page defines the typed page-metadata record and its normalization
// from raw frontmatter fields.
package page

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hypersite/hypersite/internal/errors"
)

// Type is the typed enumeration of page kinds.
type Type string

const (
	TypePage    Type = "page"
	TypePost    Type = "post"
	TypeSection Type = "section"
)

// ParseType normalizes a raw type string. ok is false for unknown values.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypePage:
		return TypePage, true
	case TypePost:
		return TypePost, true
	case TypeSection:
		return TypeSection, true
	default:
		return "", false
	}
}

// RootParent is the sentinel parent value marking a page as a child of the
// synthetic hierarchy root.
const RootParent = "root"

// DefaultOrder is assigned when the Order field is absent or non-numeric.
const DefaultOrder = 999

// DefaultTemplate is the template name used when none is declared.
const DefaultTemplate = "default"

// Metadata is the validated, typed form of a document's header fields.
type Metadata struct {
	// Document is the source path relative to the content root. It is carried
	// for error reporting and output-path mapping, not parsed from the header.
	Document string

	ShortURI    string
	Title       string
	Type        Type
	Category    string
	Labels      []string
	Parent      string
	Order       int
	Author      string
	Date        *time.Time
	Description string
	Keywords    []string
	Template    string
}

var shortURIPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Recognized date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"January 2, 2006",
}

// Normalize validates and types raw frontmatter fields into a Metadata
// record. document names the source file for error messages. Field keys are
// matched case-insensitively with `-` and `_` treated as equivalent, so
// `Short-URI`, `short-uri` and `short_uri` all address the same field.
//
// Hard failures (missing/invalid Short-URI, invalid Type) return a fatal
// validation error. Soft field issues (an unparseable date) are reported as
// warnings with the field treated as absent.
func Normalize(document string, fields map[string]any) (Metadata, []string, error) {
	canon := canonicalize(fields)
	var warnings []string

	meta := Metadata{
		Document: document,
		Order:    DefaultOrder,
		Parent:   RootParent,
		Type:     TypePage,
		Template: DefaultTemplate,
	}

	shortURI := stringField(canon, "short-uri")
	switch {
	case shortURI == "":
		return meta, nil, errors.Validation(document, "Short-URI", "required field is missing")
	case shortURI == RootParent:
		return meta, nil, errors.Validation(document, "Short-URI", `"root" is reserved for the synthetic hierarchy root`)
	case !shortURIPattern.MatchString(shortURI):
		return meta, nil, errors.Validation(document, "Short-URI",
			fmt.Sprintf("%q contains characters outside [A-Za-z0-9_-]", shortURI))
	}
	meta.ShortURI = shortURI

	if raw := stringField(canon, "type"); raw != "" {
		t, ok := ParseType(raw)
		if !ok {
			return meta, nil, errors.Validation(document, "Type",
				fmt.Sprintf("%q is not one of page, post, section", raw))
		}
		meta.Type = t
	}

	meta.Title = stringField(canon, "title")
	if meta.Title == "" {
		meta.Title = DeriveTitle(document)
	}

	if parent := stringField(canon, "parent"); parent != "" {
		meta.Parent = parent
	}
	if v, ok := canon["order"]; ok {
		meta.Order = intOrDefault(v, DefaultOrder)
	}

	meta.Category = stringField(canon, "category")
	meta.Labels = listField(canon, "labels")
	meta.Author = stringField(canon, "author")
	meta.Description = stringField(canon, "description")
	meta.Keywords = listField(canon, "keywords")
	if tpl := stringField(canon, "template"); tpl != "" {
		meta.Template = tpl
	}

	if v, ok := canon["date"]; ok && v != nil {
		date, err := parseDate(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Date: %v; treating as absent", document, err))
		} else {
			meta.Date = &date
		}
	}

	return meta, warnings, nil
}

// ValidateSet enforces set-level invariants over all collected pages:
// ShortURI must be unique across the whole document set.
func ValidateSet(pages []Metadata) error {
	seen := make(map[string]string, len(pages))
	for _, p := range pages {
		if prev, dup := seen[p.ShortURI]; dup {
			return errors.Validation(p.Document, "Short-URI",
				fmt.Sprintf("%q already used by %s", p.ShortURI, prev))
		}
		seen[p.ShortURI] = p.Document
	}
	return nil
}

// DeriveTitle produces a display title from a document path when the header
// does not declare one: base name, separators to spaces, words capitalized.
func DeriveTitle(document string) string {
	base := document
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// canonicalize lowercases keys and folds `_` to `-`. Raw keys are visited in
// sorted order so colliding spellings resolve deterministically.
func canonicalize(fields map[string]any) map[string]any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	canon := make(map[string]any, len(fields))
	for _, k := range keys {
		ck := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), "_", "-")
		canon[ck] = fields[k]
	}
	return canon
}

func stringField(canon map[string]any, key string) string {
	v, ok := canon[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// listField accepts scalar-or-list values: a single string becomes a
// one-element list; list entries are stringified and blank entries dropped.
func listField(canon map[string]any, key string) []string {
	v, ok := canon[key]
	if !ok || v == nil {
		return nil
	}
	var raw []any
	switch t := v.(type) {
	case []any:
		raw = t
	default:
		raw = []any{t}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func intOrDefault(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return def
}

func parseDate(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), nil
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
