package site

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hypersite/hypersite/internal/config"
	"github.com/hypersite/hypersite/internal/page"
)

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Title:       "Test Site",
			Description: "A test site",
			Author:      "Site Author",
		},
		Content: config.ContentConfig{Dir: "content", StaticDir: "static", TemplatesDir: "templates"},
		Output:  config.OutputConfig{Dir: "public"},
	}
}

func date(t *testing.T, iso string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return &parsed
}

// fixtureState builds the canonical four-page site used across the
// aggregation tests: home and blog at the root, two dated posts under blog.
func fixtureState(t *testing.T) *BuildState {
	t.Helper()
	b := New(testConfig())
	state := newBuildState(b, newBuildReport())

	state.Documents = []Document{
		{Meta: page.Metadata{
			Document: "index.md", ShortURI: "home", Title: "Home",
			Type: page.TypePage, Parent: page.RootParent, Order: 1, Template: page.DefaultTemplate,
		}},
		{Meta: page.Metadata{
			Document: "blog/index.md", ShortURI: "blog", Title: "Blog",
			Type: page.TypeSection, Parent: page.RootParent, Order: 2, Template: page.DefaultTemplate,
		}},
		{Meta: page.Metadata{
			Document: "blog/post-one.md", ShortURI: "post-one", Title: "Post One",
			Type: page.TypePost, Parent: "blog", Order: 1,
			Labels: []string{"Shared", "Solo"}, Category: "Tutorials",
			Date: date(t, "2024-03-10"), Description: "The first post",
			Template: page.DefaultTemplate,
		}},
		{Meta: page.Metadata{
			Document: "blog/post-two.md", ShortURI: "post-two", Title: "Post Two",
			Type: page.TypePost, Parent: "blog", Order: 2,
			Labels: []string{"shared"}, Category: "Tutorials",
			Date: date(t, "2024-04-05"),
			Template: page.DefaultTemplate,
		}},
	}

	ctx := context.Background()
	require.NoError(t, stageBuildHierarchy(ctx, state))
	require.NoError(t, stageAggregateIndexes(ctx, state))
	return state
}

func TestAggregateNavListsRootPagesInOrder(t *testing.T) {
	state := fixtureState(t)

	require.Len(t, state.Nav, 2)
	require.Equal(t, "Home", state.Nav[0].Label)
	require.Equal(t, "/", state.Nav[0].Href)
	require.Equal(t, "Blog", state.Nav[1].Label)
	require.Equal(t, "/blog/", state.Nav[1].Href)
}

func TestAggregateGroupsLabelsBySlug(t *testing.T) {
	state := fixtureState(t)

	shared, ok := state.Labels["shared"]
	require.True(t, ok)
	require.Equal(t, "Shared", shared.Name, "display name comes from first use")
	require.Len(t, shared.Members, 2)
	// members are newest first
	require.Equal(t, "Post Two", shared.Members[0].Title)
	require.Equal(t, "Post One", shared.Members[1].Title)

	solo, ok := state.Labels["solo"]
	require.True(t, ok)
	require.Len(t, solo.Members, 1)
}

func TestAggregateLabelHrefs(t *testing.T) {
	state := fixtureState(t)

	require.Equal(t, "/label/shared/", state.labelHref("shared"))
	require.Equal(t, "/blog/post-one/", state.labelHref("solo"), "solo labels point at their member page")
	require.Equal(t, "", state.labelListingHref("solo"), "solo labels have no listing page")
	require.Equal(t, "/label/shared/", state.labelListingHref("shared"))
	require.Equal(t, "", state.labelHref("missing"))
}

func TestAggregateCategoryHref(t *testing.T) {
	state := fixtureState(t)

	require.Equal(t, "/category/tutorials/", state.categoryHref("tutorials"))
	require.Equal(t, "", state.categoryHref("absent"))
}

func TestAggregateSiteLabelsAlphabetical(t *testing.T) {
	state := fixtureState(t)

	require.Len(t, state.SiteLabels, 2)
	require.Equal(t, "Shared", state.SiteLabels[0].Name)
	require.Equal(t, "/label/shared/", state.SiteLabels[0].Href)
	require.Equal(t, "Solo", state.SiteLabels[1].Name)
	require.Equal(t, "/blog/post-one/", state.SiteLabels[1].Href)
}

func TestAggregatePageIndexSortedByURL(t *testing.T) {
	state := fixtureState(t)

	require.Len(t, state.PageIndex, 4)
	var urls []string
	for _, e := range state.PageIndex {
		urls = append(urls, e.URL)
	}
	require.Equal(t, []string{"/", "/blog/", "/blog/post-one/", "/blog/post-two/"}, urls)

	postOne := state.PageIndex[2]
	require.Equal(t, "Post One", postOne.Title)
	require.Equal(t, "The first post", postOne.Description)
	require.Equal(t, []string{"Shared", "Solo"}, postOne.Labels)
	require.Equal(t, "Tutorials", postOne.Category)
	require.Equal(t, "2024-03-10", postOne.Date)
}

func TestAggregateRespectsBasePath(t *testing.T) {
	cfg := testConfig()
	cfg.Site.BasePath = "/docs"
	b := New(cfg)
	state := newBuildState(b, newBuildReport())
	state.Documents = []Document{
		{Meta: page.Metadata{
			Document: "index.md", ShortURI: "home", Title: "Home",
			Type: page.TypePage, Parent: page.RootParent, Order: 1, Template: page.DefaultTemplate,
		}},
	}

	ctx := context.Background()
	require.NoError(t, stageBuildHierarchy(ctx, state))
	require.NoError(t, stageAggregateIndexes(ctx, state))

	require.Equal(t, "/docs/", state.Nav[0].Href)
	require.Equal(t, "/docs/", state.PageIndex[0].URL)
}
