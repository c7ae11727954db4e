package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/hypersite/hypersite/internal/errors"
)

// Options configures a Compiler.
type Options struct {
	// Highlight enables fenced-code syntax highlighting.
	Highlight bool
	// HighlightStyle selects the chroma style; empty means "github".
	HighlightStyle string
	// Sanitize runs the compiled HTML through a sanitization policy before
	// raw blocks are restored, so protected fragments bypass it.
	Sanitize bool
}

// Compiler converts preprocessed markdown bodies to HTML.
type Compiler struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewCompiler builds a Compiler for the given options.
func NewCompiler(opts Options) *Compiler {
	extenders := []goldmark.Extender{extension.GFM, extension.Footnote}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" {
			style = "github"
		}
		extenders = append(extenders, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
		))
	}

	c := &Compiler{
		md: goldmark.New(
			goldmark.WithExtensions(extenders...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	if opts.Sanitize {
		c.policy = sanitizePolicy(opts.Highlight)
	}
	return c
}

// Convert compiles a protected body to final HTML: hypermedia links are
// rewritten, markdown is compiled, the result optionally sanitized, and the
// document's raw blocks restored last.
func (c *Compiler) Convert(masked string, blocks *RawBlocks) (string, error) {
	src := RewriteHypermedia(masked)

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryRender, errors.SeverityFatal, "markdown compilation failed")
	}

	out := buf.String()
	if c.policy != nil {
		out = c.policy.Sanitize(out)
	}
	return blocks.Restore(out), nil
}

// Compile runs the full reversible pipeline over an unprotected body.
func (c *Compiler) Compile(body string) (string, error) {
	masked, blocks := Protect(body)
	return c.Convert(masked, blocks)
}

// sanitizePolicy extends the stock UGC policy with what the pipeline relies
// on: comment passthrough (placeholders survive until Restore), the button
// element, and the closed hx- attribute set produced by the hypermedia
// rewrite. Highlighted code needs inline styles kept on span/pre/code.
func sanitizePolicy(highlight bool) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowComments()
	p.AllowElements("button")
	p.AllowAttrs(hxAttrNames()...).OnElements("a", "button", "form", "div", "span")
	p.AllowAttrs("class").OnElements("a", "button", "code", "pre", "span", "div")
	if highlight {
		p.AllowAttrs("style").OnElements("span", "pre", "code")
	}
	return p
}

func hxAttrNames() []string {
	names := make([]string, 0, len(verbKeys)+len(hxShorthand))
	for verb := range verbKeys {
		names = append(names, "hx-"+verb)
	}
	for _, mapped := range hxShorthand {
		names = append(names, mapped)
	}
	return names
}
