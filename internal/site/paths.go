package site

import (
	"path"
	"regexp"
	"strings"
)

// OutputPath maps a content-relative document path to its output path inside
// the output directory. Documents become directory-style pretty URLs:
//
//	about.md              -> about/index.html
//	blog/index.md         -> blog/index.html
//	blog/post.md          -> blog/post/index.html
//	blog/tutorials/index.md -> blog/tutorials/index.html
//
// The mapping is idempotent over its own output shape: stripping the
// extension of a produced path and applying the rule again yields the same
// path.
func OutputPath(relPath string) string {
	p := strings.TrimPrefix(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), "./")
	p = strings.TrimSuffix(p, path.Ext(p))
	if p == "index" || strings.HasSuffix(p, "/index") {
		return p + ".html"
	}
	return p + "/index.html"
}

// PageURL maps an output path to the served URL for that page, prefixed with
// the configured base path. Directory indexes are addressed by their
// directory with a trailing slash.
func PageURL(basePath, outputPath string) string {
	dir := path.Dir(outputPath)
	if dir == "." || dir == "/" {
		return basePath + "/"
	}
	return basePath + "/" + dir + "/"
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a label or category name into its URL slug: lowercase,
// with every run of characters outside [a-z0-9] collapsed into a single
// hyphen, and leading/trailing hyphens removed.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// isActivePath reports whether a navigation item should be marked active for
// the page being rendered. A page activates an item when the page URL equals
// the item href or lives in a sub-path of it. The root item only activates
// on exact match, and path comparison is segment-wise so /about-us does not
// activate an /about item.
func isActivePath(pageURL, itemHref, basePath string) bool {
	pageURL = strings.TrimSuffix(pageURL, "/")
	itemHref = strings.TrimSuffix(itemHref, "/")
	root := strings.TrimSuffix(basePath, "/")

	if pageURL == itemHref {
		return true
	}
	if itemHref == root {
		return false
	}
	return strings.HasPrefix(pageURL, itemHref+"/")
}
