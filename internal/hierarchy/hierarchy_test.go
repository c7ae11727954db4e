package hierarchy

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypersite/hypersite/internal/page"
)

func meta(shortURI, parent, title string, order int) page.Metadata {
	return page.Metadata{
		Document: shortURI + ".md",
		ShortURI: shortURI,
		Parent:   parent,
		Title:    title,
		Order:    order,
	}
}

func TestBuildSingleRootContainsEveryPageOnce(t *testing.T) {
	pages := []page.Metadata{
		meta("home", "root", "Home", 1),
		meta("blog", "root", "Blog", 2),
		meta("first-post", "blog", "First Post", 1),
		meta("second-post", "blog", "Second Post", 2),
		meta("about", "root", "About", 3),
	}

	tree, err := Build(pages)
	require.NoError(t, err)
	require.Equal(t, page.RootParent, tree.Root.Page.ShortURI)

	counts := map[string]int{}
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			counts[c.Page.ShortURI]++
			walk(c)
		}
	}
	walk(tree.Root)

	require.Len(t, counts, len(pages))
	for _, p := range pages {
		require.Equal(t, 1, counts[p.ShortURI], "page %s should appear exactly once", p.ShortURI)
	}
}

func TestBuildOrdersChildrenByOrderThenTitle(t *testing.T) {
	pages := []page.Metadata{
		meta("zeta", "root", "zeta", 999),
		meta("alpha", "root", "Alpha", 999),
		meta("blog", "root", "Blog", 2),
		meta("home", "root", "Home", 1),
	}

	tree, err := Build(pages)
	require.NoError(t, err)

	got := make([]string, 0, len(tree.Root.Children))
	for _, c := range tree.Root.Children {
		got = append(got, c.Page.ShortURI)
	}
	// Explicit orders first; the 999 ties fall back to case-insensitive
	// title comparison, so Alpha sorts before zeta.
	require.Equal(t, []string{"home", "blog", "alpha", "zeta"}, got)
}

func TestBuildOrphanParentFails(t *testing.T) {
	pages := []page.Metadata{
		meta("home", "root", "Home", 1),
		meta("lost", "nowhere", "Lost", 2),
	}

	_, err := Build(pages)
	require.Error(t, err)
	require.True(t, stderrors.Is(err, ErrOrphanPage))
	require.Contains(t, err.Error(), `"lost"`)
	require.Contains(t, err.Error(), `"nowhere"`)
}

func TestBuildCycleFails(t *testing.T) {
	pages := []page.Metadata{
		meta("home", "root", "Home", 1),
		meta("a", "b", "A", 1),
		meta("b", "a", "B", 1),
	}

	_, err := Build(pages)
	require.Error(t, err)
	require.True(t, stderrors.Is(err, ErrCircularReference))
	require.Contains(t, err.Error(), "parent chain")
}

func TestBuildSelfParentFails(t *testing.T) {
	pages := []page.Metadata{meta("loop", "loop", "Loop", 1)}

	_, err := Build(pages)
	require.Error(t, err)
	require.True(t, stderrors.Is(err, ErrCircularReference))
}

func TestBuildDuplicateShortURIFails(t *testing.T) {
	pages := []page.Metadata{
		meta("home", "root", "Home", 1),
		meta("home", "root", "Other Home", 2),
	}

	_, err := Build(pages)
	require.Error(t, err)
}

func TestNodeAndChildrenLookup(t *testing.T) {
	pages := []page.Metadata{
		meta("blog", "root", "Blog", 1),
		meta("post", "blog", "Post", 1),
	}

	tree, err := Build(pages)
	require.NoError(t, err)

	require.NotNil(t, tree.Node("blog"))
	require.Nil(t, tree.Node("missing"))
	require.Equal(t, tree.Root, tree.Node(page.RootParent))

	children := tree.Children("blog")
	require.Len(t, children, 1)
	require.Equal(t, "post", children[0].Page.ShortURI)
	require.Nil(t, tree.Children("missing"))
}

func TestBreadcrumbsWalkRootToTarget(t *testing.T) {
	pages := []page.Metadata{
		meta("blog", "root", "Blog", 1),
		meta("tutorials", "blog", "Tutorials", 1),
		meta("go-intro", "tutorials", "Intro to Go", 1),
	}

	tree, err := Build(pages)
	require.NoError(t, err)

	crumbs := tree.Breadcrumbs("go-intro")
	require.Equal(t, []Crumb{
		{ShortURI: "blog", Title: "Blog"},
		{ShortURI: "tutorials", Title: "Tutorials"},
		{ShortURI: "go-intro", Title: "Intro to Go"},
	}, crumbs)

	require.Equal(t, []Crumb{{ShortURI: "blog", Title: "Blog"}}, tree.Breadcrumbs("blog"))
	require.Nil(t, tree.Breadcrumbs("missing"))
}
