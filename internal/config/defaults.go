package config

import "strings"

// applyDefaults fills zero values with sensible defaults. All defaults are
// additive; explicit user values are never overwritten.
func (c *Config) applyDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = "static"
	}
	if c.Content.TemplatesDir == "" {
		c.Content.TemplatesDir = "templates"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "public"
	}
	if c.Markdown.HighlightStyle == "" {
		c.Markdown.HighlightStyle = "github"
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = ".hypersite/builds.db"
	}
	if c.Announce.Subject == "" {
		c.Announce.Subject = "hypersite.build.completed"
	}
	if c.Feed.Path == "" {
		c.Feed.Path = "feed.xml"
	}

	c.Site.BaseURL = strings.TrimSuffix(c.Site.BaseURL, "/")
	c.Site.BasePath = normalizeBasePath(c.Site.BasePath)
}

// normalizeBasePath canonicalizes a configured base path to "" or "/prefix"
// with no trailing slash, so URL joining stays mechanical everywhere else.
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
