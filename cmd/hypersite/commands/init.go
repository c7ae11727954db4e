package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hypersite/hypersite/internal/config"
	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/site"
)

// InitCmd implements the 'init' command: it writes an example configuration
// plus a minimal content tree so `hypersite build` works immediately.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

const initIndexMarkdown = `---
Short-URI: home
Title: Home
Order: 1
---
# Welcome

This site was scaffolded by hypersite. Edit ` + "`content/index.md`" + ` to get
started, then run:

` + "```" + `
hypersite build
` + "```" + `
`

const initStylesheet = `body {
  max-width: 46rem;
  margin: 0 auto;
  padding: 1rem;
  font-family: system-ui, sans-serif;
  line-height: 1.6;
}

.site-nav ul {
  display: flex;
  gap: 1rem;
  list-style: none;
  padding: 0;
}

.site-nav .active {
  font-weight: bold;
}

.label-badge,
.category-badge {
  display: inline-block;
  padding: 0.1rem 0.5rem;
  border-radius: 0.75rem;
  background: #eee;
  font-size: 0.85em;
}
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	slog.Info("configuration written", logfields.Path(root.Config))

	files := map[string]string{
		filepath.Join("content", "index.md"):       initIndexMarkdown,
		filepath.Join("templates", "default.html"): site.DefaultTemplateHTML,
		filepath.Join("static", "css", "site.css"): initStylesheet,
	}
	for path, content := range files {
		if err := writeScaffold(path, content, i.Force); err != nil {
			return err
		}
	}

	fmt.Println("Site scaffolded. Run 'hypersite build' to compile it.")
	return nil
}

func writeScaffold(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		slog.Info("file exists, skipping", logfields.Path(path))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	// #nosec G306 -- scaffold files are not secrets
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("file written", logfields.Path(path))
	return nil
}
