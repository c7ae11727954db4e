package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileBasicMarkdown(t *testing.T) {
	c := NewCompiler(Options{})
	out, err := c.Compile("# Hello World\n\nA paragraph.")
	require.NoError(t, err)
	require.Contains(t, out, `<h1 id="hello-world">Hello World</h1>`)
	require.Contains(t, out, "<p>A paragraph.</p>")
}

func TestCompileGFMAndFootnotes(t *testing.T) {
	c := NewCompiler(Options{})

	out, err := c.Compile("~~gone~~")
	require.NoError(t, err)
	require.Contains(t, out, "<del>gone</del>")

	out, err = c.Compile("Claim[^1]\n\n[^1]: source")
	require.NoError(t, err)
	require.Contains(t, out, "footnotes")
}

func TestCompileRawFenceSurvivesVerbatim(t *testing.T) {
	body := "Intro paragraph.\n\n:::raw\n<section class=\"hero\">\n  <h1>Raw & unescaped</h1>\n</section>\n:::\n\nOutro."

	c := NewCompiler(Options{})
	out, err := c.Compile(body)
	require.NoError(t, err)

	require.Contains(t, out, "<section class=\"hero\">\n  <h1>Raw & unescaped</h1>\n</section>")
	require.NotContains(t, out, "hypersite:raw")
	require.NotContains(t, out, "<p><section")
}

func TestCompileRewritesHypermediaLinks(t *testing.T) {
	c := NewCompiler(Options{})
	out, err := c.Compile("Click [Save](/api/save){post} to persist.")
	require.NoError(t, err)
	require.Contains(t, out, `<button hx-post="/api/save">Save</button>`)
}

func TestCompileHypermediaInsideRawFenceUntouched(t *testing.T) {
	body := ":::raw\n[not a link](/x){post}\n:::"
	c := NewCompiler(Options{})
	out, err := c.Compile(body)
	require.NoError(t, err)
	require.Contains(t, out, "[not a link](/x){post}")
	require.NotContains(t, out, "<button")
}

func TestCompileSanitizeStripsScriptsButKeepsRawBlocks(t *testing.T) {
	body := "Safe text.\n\n<script>alert(1)</script>\n\n:::raw\n<script>trusted()</script>\n:::"

	c := NewCompiler(Options{Sanitize: true})
	out, err := c.Compile(body)
	require.NoError(t, err)

	require.NotContains(t, out, "alert(1)")
	require.Contains(t, out, "<script>trusted()</script>")
}

func TestCompileSanitizeKeepsHypermediaAttributes(t *testing.T) {
	c := NewCompiler(Options{Sanitize: true})
	out, err := c.Compile("[Save](/api/save){post confirm=Sure}")
	require.NoError(t, err)
	require.Contains(t, out, `hx-post="/api/save"`)
	require.Contains(t, out, `hx-confirm="Sure"`)
	require.Contains(t, out, "<button")
}

func TestCompileHighlightUsesChroma(t *testing.T) {
	plain := NewCompiler(Options{})
	out, err := plain.Compile("```go\nfmt.Println(1)\n```")
	require.NoError(t, err)
	require.Contains(t, out, "language-go")

	hl := NewCompiler(Options{Highlight: true, HighlightStyle: "github"})
	out, err = hl.Compile("```go\nfmt.Println(1)\n```")
	require.NoError(t, err)
	require.Contains(t, out, "<pre")
	require.Contains(t, out, "Println")
	require.NotContains(t, out, "language-go")
}

func TestPlainTextStripsMarkup(t *testing.T) {
	got := strings.Fields(PlainText(`<p>Hello <b>big</b> world</p><script>var x;</script>`))
	require.Equal(t, []string{"Hello", "big", "world"}, got)
}

func TestWordCount(t *testing.T) {
	require.Equal(t, 0, WordCount(""))
	require.Equal(t, 2, WordCount("<p>two words</p>"))
	require.Equal(t, 3, WordCount("<ul><li>one</li><li>two three</li></ul>"))
}
