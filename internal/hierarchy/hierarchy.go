// Package hierarchy assembles the flat page set into the site tree using
// each page's parent reference, and derives breadcrumbs from it.
package hierarchy

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hypersite/hypersite/internal/errors"
	"github.com/hypersite/hypersite/internal/page"
)

var (
	// ErrOrphanPage marks a parent reference that resolves to no page.
	ErrOrphanPage = stderrors.New("unresolved parent reference")
	// ErrCircularReference marks a cycle in the parent chain.
	ErrCircularReference = stderrors.New("circular parent reference")
)

// Node is one page in the site tree. Children are ordered by ascending
// Order, ties broken by case-insensitive title comparison.
type Node struct {
	Page     page.Metadata
	Children []*Node
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	ShortURI string
	Title    string
}

// Tree is the assembled hierarchy: a synthetic root plus an index for
// ShortURI lookup.
type Tree struct {
	Root  *Node
	index map[string]*Node
}

var titleCollator = collate.New(language.English, collate.IgnoreCase)

// Build assembles the tree from flat metadata. Every page must either name
// the root sentinel or an existing ShortURI as its parent; unresolved
// parents and parent cycles are fatal.
func Build(pages []page.Metadata) (*Tree, error) {
	root := &Node{Page: page.Metadata{ShortURI: page.RootParent}}
	index := make(map[string]*Node, len(pages))

	for _, p := range pages {
		if _, dup := index[p.ShortURI]; dup {
			return nil, errors.Validation(p.Document, "Short-URI", fmt.Sprintf("%q is not unique", p.ShortURI))
		}
		index[p.ShortURI] = &Node{Page: p}
	}

	for _, p := range pages {
		node := index[p.ShortURI]
		if p.Parent == page.RootParent {
			root.Children = append(root.Children, node)
			continue
		}
		parent, ok := index[p.Parent]
		if !ok {
			return nil, errors.Wrap(ErrOrphanPage, errors.CategoryHierarchy, errors.SeverityFatal,
				fmt.Sprintf("page %q (%s): parent %q does not resolve to any page", p.ShortURI, p.Document, p.Parent))
		}
		parent.Children = append(parent.Children, node)
	}

	if err := checkReachable(root, index); err != nil {
		return nil, err
	}

	sortChildren(root)
	return &Tree{Root: root, index: index}, nil
}

// checkReachable verifies every page is reachable from the root. Since all
// parent references resolved, an unreachable page can only sit on a parent
// cycle.
func checkReachable(root *Node, index map[string]*Node) error {
	reached := make(map[string]bool, len(index))
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			reached[c.Page.ShortURI] = true
			walk(c)
		}
	}
	walk(root)

	if len(reached) == len(index) {
		return nil
	}
	for uri, node := range index {
		if !reached[uri] {
			return errors.Wrap(ErrCircularReference, errors.CategoryHierarchy, errors.SeverityFatal,
				fmt.Sprintf("page %q (%s): %s", uri, node.Page.Document, cyclePath(node, index)))
		}
	}
	return nil
}

// cyclePath renders the parent chain from node until it repeats.
func cyclePath(node *Node, index map[string]*Node) string {
	seen := map[string]bool{}
	path := []string{}
	current := node
	for current != nil && !seen[current.Page.ShortURI] {
		seen[current.Page.ShortURI] = true
		path = append(path, current.Page.ShortURI)
		current = index[current.Page.Parent]
	}
	if current != nil {
		path = append(path, current.Page.ShortURI)
	}
	return "parent chain " + strings.Join(path, " -> ")
}

func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i].Page, n.Children[j].Page
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return titleCollator.CompareString(a.Title, b.Title) < 0
	})
	for _, c := range n.Children {
		sortChildren(c)
	}
}

// Node returns the tree node for a ShortURI, or nil when absent. The root
// sentinel resolves to the synthetic root.
func (t *Tree) Node(shortURI string) *Node {
	if shortURI == page.RootParent {
		return t.Root
	}
	return t.index[shortURI]
}

// Children returns the ordered children of a ShortURI, or nil when the page
// is unknown.
func (t *Tree) Children(shortURI string) []*Node {
	node := t.Node(shortURI)
	if node == nil {
		return nil
	}
	return node.Children
}

// Breadcrumbs returns the path of real pages from the top level down to
// shortURI, excluding the synthetic root. Unknown targets yield nil.
func (t *Tree) Breadcrumbs(shortURI string) []Crumb {
	node := t.index[shortURI]
	if node == nil {
		return nil
	}
	crumbs := []Crumb{}
	for node != nil && node.Page.ShortURI != page.RootParent {
		crumbs = append([]Crumb{{ShortURI: node.Page.ShortURI, Title: node.Page.Title}}, crumbs...)
		if node.Page.Parent == page.RootParent {
			break
		}
		node = t.index[node.Page.Parent]
	}
	return crumbs
}
