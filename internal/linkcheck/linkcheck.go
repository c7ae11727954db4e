// Package linkcheck walks the generated output tree and verifies that
// internal links resolve to generated files. Results are reported as
// warnings; a broken link never fails a build.
package linkcheck

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// BrokenLink is one internal href that resolved to nothing.
type BrokenLink struct {
	// Page is the output-relative HTML file containing the link.
	Page string
	Href string
}

// Checker scans an output directory for broken internal links.
type Checker struct {
	outputDir string
	basePath  string
}

// New returns a Checker for outputDir. basePath is the configured URL
// prefix ("" or "/prefix"); root-relative links must live under it.
func New(outputDir, basePath string) *Checker {
	return &Checker{outputDir: outputDir, basePath: basePath}
}

// Run parses every generated HTML file and checks its internal hrefs.
func (c *Checker) Run(ctx context.Context) ([]BrokenLink, error) {
	var broken []BrokenLink

	err := filepath.WalkDir(c.outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(c.outputDir, p)
		if err != nil {
			return err
		}
		hrefs, err := extractHrefs(p)
		if err != nil {
			// Unparseable output is not this check's concern.
			return nil
		}
		for _, href := range hrefs {
			if !c.resolves(rel, href) {
				broken = append(broken, BrokenLink{Page: filepath.ToSlash(rel), Href: href})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return broken, nil
}

func extractHrefs(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var hrefs []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(doc)
	return hrefs, nil
}

// resolves reports whether href, found in the output-relative file page,
// points at something this build generated. External links always pass.
func (c *Checker) resolves(page, href string) bool {
	if isExternal(href) {
		return true
	}
	target, _, _ := strings.Cut(href, "#")
	target, _, _ = strings.Cut(target, "?")
	if target == "" {
		return true
	}

	var rel string
	if strings.HasPrefix(target, "/") {
		if c.basePath != "" {
			if target != c.basePath && !strings.HasPrefix(target, c.basePath+"/") {
				return false
			}
			target = strings.TrimPrefix(target, c.basePath)
		}
		rel = strings.TrimPrefix(path.Clean("/"+target), "/")
	} else {
		rel = path.Join(path.Dir(filepath.ToSlash(page)), target)
	}
	if rel == "" || rel == "." {
		rel = "index.html"
	}

	full := filepath.Join(c.outputDir, filepath.FromSlash(rel))
	if info, err := os.Stat(full); err == nil {
		if !info.IsDir() {
			return true
		}
		_, err := os.Stat(filepath.Join(full, "index.html"))
		return err == nil
	}
	_, err := os.Stat(filepath.Join(full, "index.html"))
	return err == nil
}

func isExternal(href string) bool {
	return strings.Contains(href, "://") ||
		strings.HasPrefix(href, "//") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:")
}
