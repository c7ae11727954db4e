package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Ledger    LedgerConfig    `yaml:"ledger,omitempty"`
	Announce  AnnounceConfig  `yaml:"announce,omitempty"`
	Feed      FeedConfig      `yaml:"feed,omitempty"`
	LinkCheck LinkCheckConfig `yaml:"link_check,omitempty"`
}

// SiteConfig holds site-wide presentation settings.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	// BaseURL is the absolute site origin used for sitemap and feed entries,
	// e.g. "https://example.com".
	BaseURL string `yaml:"base_url,omitempty"`
	// BasePath prefixes every generated URL when the site is served from a
	// sub-directory, e.g. "/docs". Threaded explicitly through the build;
	// leaf components never read it from the process environment.
	BasePath string `yaml:"base_path,omitempty"`
}

// ContentConfig locates the source tree.
type ContentConfig struct {
	Dir          string `yaml:"dir"`
	StaticDir    string `yaml:"static_dir,omitempty"`
	TemplatesDir string `yaml:"templates_dir,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Clean  bool   `yaml:"clean"` // Clean output directory before build
	Minify bool   `yaml:"minify,omitempty"`
}

// MarkdownConfig tunes the markup compiler adapter.
type MarkdownConfig struct {
	Sanitize       bool   `yaml:"sanitize,omitempty"`
	Highlight      bool   `yaml:"highlight,omitempty"`
	HighlightStyle string `yaml:"highlight_style,omitempty"`
}

// MetricsConfig controls optional build metrics export.
type MetricsConfig struct {
	// Textfile, when set, is the path the build writes gathered metrics to in
	// the Prometheus text exposition format (node-exporter textfile collector).
	Textfile string `yaml:"textfile,omitempty"`
}

// LedgerConfig controls the local build-history store.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// AnnounceConfig controls build-event publishing.
type AnnounceConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// FeedConfig controls the Atom feed of post pages.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// LinkCheckConfig controls post-render internal link verification.
type LinkCheckConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Load loads configuration from the specified file, layering .env files and
// HYPERSITE_* environment overrides on top.
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value shapes.
func (c *Config) Validate() error {
	if c.Site.Title == "" {
		return fmt.Errorf("site.title is required")
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Announce.Enabled && c.Announce.URL == "" {
		return fmt.Errorf("announce.url is required when announce.enabled is true")
	}
	return nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:       "My Site",
			Description: "A site compiled by hypersite",
			Author:      "Site Author",
			BaseURL:     "https://example.com",
		},
		Content: ContentConfig{
			Dir:          "content",
			StaticDir:    "static",
			TemplatesDir: "templates",
		},
		Output: OutputConfig{
			Dir:   "public",
			Clean: true,
		},
		Markdown: MarkdownConfig{
			Highlight:      true,
			HighlightStyle: "github",
		},
		Feed:      FeedConfig{Enabled: true},
		LinkCheck: LinkCheckConfig{Enabled: true},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	// #nosec G306 -- configuration files are not secrets
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
