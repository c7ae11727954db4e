package site

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/page"
)

// Fixed artifact paths inside the output directory. page-index.json is an
// external contract consumed by the browser-side label router.
const (
	pageIndexFile = "page-index.json"
	sitemapFile   = "sitemap.xml"
	robotsFile    = "robots.txt"
)

// stageWriteArtifacts emits the machine-readable site artifacts: the page
// index, the sitemap, the robots directives, and (when enabled) the Atom
// feed of post pages.
func stageWriteArtifacts(ctx context.Context, state *BuildState) error {
	if err := ctx.Err(); err != nil {
		return newCanceledStageError(StageArtifacts, err)
	}

	if err := writePageIndex(state); err != nil {
		return newFatalStageError(StageArtifacts, err)
	}
	if err := writeSitemap(state); err != nil {
		return newFatalStageError(StageArtifacts, err)
	}
	if err := writeRobots(state); err != nil {
		return newFatalStageError(StageArtifacts, err)
	}
	if state.Builder.cfg.Feed.Enabled {
		if err := writeFeed(state); err != nil {
			return newFatalStageError(StageArtifacts, err)
		}
	}
	return nil
}

func writePageIndex(state *BuildState) error {
	data, err := json.MarshalIndent(state.PageIndex, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal page index: %w", err)
	}
	data = append(data, '\n')
	return writeArtifact(state, pageIndexFile, data)
}

// sitemapURLSet is the XML document shape of sitemap.xml.
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap emits one entry per rendered document page. Generated listing
// pages are deliberately absent: they are derived indexes, not content.
func writeSitemap(state *BuildState) error {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for i := range state.Documents {
		meta := state.Documents[i].Meta
		u := sitemapURL{Loc: state.absoluteURL(metaURL(state.Builder.cfg.Site.BasePath, meta))}
		if meta.Date != nil {
			u.LastMod = meta.Date.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	sort.Slice(set.URLs, func(i, j int) bool { return set.URLs[i].Loc < set.URLs[j].Loc })

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	data := append([]byte(xml.Header), body...)
	data = append(data, '\n')
	return writeArtifact(state, sitemapFile, data)
}

func writeRobots(state *BuildState) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", state.absoluteURL(state.Builder.cfg.Site.BasePath+"/"+sitemapFile))
	return writeArtifact(state, robotsFile, []byte(b.String()))
}

// writeFeed emits an Atom feed of dated post pages, newest first. Posts
// without a date are not syndicated.
func writeFeed(state *BuildState) error {
	cfg := state.Builder.cfg

	type datedPost struct {
		meta page.Metadata
		date time.Time
	}
	var posts []datedPost
	for i := range state.Documents {
		meta := state.Documents[i].Meta
		if meta.Type != page.TypePost || meta.Date == nil {
			continue
		}
		posts = append(posts, datedPost{meta: meta, date: *meta.Date})
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].date.Equal(posts[j].date) {
			return posts[i].date.After(posts[j].date)
		}
		return posts[i].meta.Title < posts[j].meta.Title
	})

	feed := &feeds.Feed{
		Title:       cfg.Site.Title,
		Link:        &feeds.Link{Href: state.absoluteURL(cfg.Site.BasePath + "/")},
		Description: cfg.Site.Description,
		Updated:     time.Now().UTC(),
	}
	if cfg.Site.Author != "" {
		feed.Author = &feeds.Author{Name: cfg.Site.Author}
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].date
	}

	for _, p := range posts {
		href := state.absoluteURL(metaURL(cfg.Site.BasePath, p.meta))
		item := &feeds.Item{
			Id:          href,
			Title:       p.meta.Title,
			Link:        &feeds.Link{Href: href},
			Description: p.meta.Description,
			Created:     p.date,
		}
		if p.meta.Author != "" {
			item.Author = &feeds.Author{Name: p.meta.Author}
		}
		feed.Items = append(feed.Items, item)
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return fmt.Errorf("render feed: %w", err)
	}
	return writeArtifact(state, cfg.Feed.Path, []byte(atom+"\n"))
}

// absoluteURL joins a root-relative URL with the configured site origin.
// Without a configured origin the URL stays root-relative.
func (s *BuildState) absoluteURL(rootRel string) string {
	base := s.Builder.cfg.Site.BaseURL
	if base == "" {
		return rootRel
	}
	return base + rootRel
}

func writeArtifact(state *BuildState, rel string, data []byte) error {
	target := filepath.Join(state.Builder.cfg.Output.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create artifact directory for %s: %w", rel, err)
	}
	// #nosec G306 -- generated artifacts are public
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", rel, err)
	}
	slog.Debug("artifact written", logfields.Path(rel), slog.Int("bytes", len(data)))
	return nil
}
