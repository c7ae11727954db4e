package templates

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/hypersite/hypersite/internal/markdown"
)

// Template grammar: {{name}} placeholders and non-nested
// {{#if name}}...{{/if}} conditional blocks. Conditionals are resolved
// first so their inner content may itself contain placeholders.
var (
	conditionalPattern = regexp.MustCompile(`(?s)\{\{#if\s+([^}\s]+)\}\}(.*?)\{\{/if\}\}`)
	placeholderPattern = regexp.MustCompile(`\{\{([^#/}\s][^}\s]*)\}\}`)
)

// dateLayout is the fixed human-readable page date format.
const dateLayout = "January 2, 2006"

// wordsPerMinute is the reading-speed assumption behind {{reading-time}}.
const wordsPerMinute = 200

// Process resolves a template against a context: conditional blocks first,
// then placeholders.
func Process(template string, ctx *Context) string {
	out := conditionalPattern.ReplaceAllStringFunc(template, func(m string) string {
		parts := conditionalPattern.FindStringSubmatch(m)
		if IsTruthy(parts[1], ctx) {
			return parts[2]
		}
		return ""
	})
	return placeholderPattern.ReplaceAllStringFunc(out, func(m string) string {
		return ResolveTag(placeholderPattern.FindStringSubmatch(m)[1], ctx)
	})
}

// IsTruthy reports whether a tag resolves to non-empty output. Unknown tags
// resolve to their literal form and are therefore truthy.
func IsTruthy(name string, ctx *Context) bool {
	return len(ResolveTag(name, ctx)) > 0
}

// ResolveTag maps a tag name to its derivation. The set of known tags is
// closed; unknown names pass through unchanged as the literal {{name}}.
func ResolveTag(name string, ctx *Context) string {
	switch name {
	case "head":
		return headBlock(ctx)
	case "nav":
		return navBlock(ctx)
	case "content":
		return ctx.Body
	case "article-header":
		return articleHeader(ctx)
	case "label-footer":
		return labelFooter(ctx)
	case "scripts":
		return scriptsBlock(ctx)
	case "title":
		return ctx.Title
	case "description":
		return ctx.Description
	case "keywords":
		return strings.Join(ctx.Keywords, ", ")
	case "author":
		return ctx.Author
	case "category":
		return ctx.Category
	case "base-path":
		return ctx.BasePath
	case "date":
		return formatDate(ctx)
	case "reading-time":
		return readingTime(ctx)
	case "category-badge":
		return categoryBadge(ctx)
	case "label-badges":
		return labelBadges(ctx)
	default:
		return "{{" + name + "}}"
	}
}

func formatDate(ctx *Context) string {
	if ctx.Date == nil {
		return ""
	}
	return ctx.Date.UTC().Format(dateLayout)
}

// readingTime estimates reading minutes from the visible words of the
// compiled body: words/200, rounded, never below one minute. An empty body
// yields the empty string so {{#if reading-time}} stays false for it.
func readingTime(ctx *Context) string {
	words := markdown.WordCount(ctx.Body)
	if words == 0 {
		return ""
	}
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func headBlock(ctx *Context) string {
	var b strings.Builder
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + html.EscapeString(ctx.Title) + "</title>\n")
	if ctx.Description != "" {
		b.WriteString(metaTag("description", ctx.Description))
	}
	if len(ctx.Keywords) > 0 {
		b.WriteString(metaTag("keywords", strings.Join(ctx.Keywords, ", ")))
	}
	if ctx.Author != "" {
		b.WriteString(metaTag("author", ctx.Author))
	}
	if ctx.Generator != "" {
		b.WriteString(metaTag("generator", ctx.Generator))
	}
	for _, href := range ctx.CSS {
		b.WriteString("<link rel=\"stylesheet\" href=\"" + html.EscapeString(href) + "\">\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func metaTag(name, content string) string {
	return "<meta name=\"" + name + "\" content=\"" + html.EscapeString(content) + "\">\n"
}

func navBlock(ctx *Context) string {
	if len(ctx.Nav) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<nav class=\"site-nav\">\n<ul>\n")
	for _, item := range ctx.Nav {
		class := ""
		if item.Active {
			class = " class=\"active\""
		}
		b.WriteString("<li><a href=\"" + html.EscapeString(item.Href) + "\"" + class + ">" +
			html.EscapeString(item.Label) + "</a></li>\n")
	}
	b.WriteString("</ul>\n</nav>")
	return b.String()
}

func scriptsBlock(ctx *Context) string {
	if len(ctx.JS) == 0 {
		return ""
	}
	tags := make([]string, 0, len(ctx.JS))
	for _, src := range ctx.JS {
		tags = append(tags, "<script src=\""+html.EscapeString(src)+"\"></script>")
	}
	return strings.Join(tags, "\n")
}

// articleHeader combines category badge, title, byline and label badges
// into the standard article heading block.
func articleHeader(ctx *Context) string {
	var b strings.Builder
	b.WriteString("<header class=\"article-header\">\n")
	if badge := categoryBadge(ctx); badge != "" {
		b.WriteString(badge + "\n")
	}
	b.WriteString("<h1>" + html.EscapeString(ctx.Title) + "</h1>\n")
	if byline := bylineParts(ctx); len(byline) > 0 {
		b.WriteString("<p class=\"byline\">" + strings.Join(byline, " · ") + "</p>\n")
	}
	if badges := labelBadges(ctx); badges != "" {
		b.WriteString(badges + "\n")
	}
	b.WriteString("</header>")
	return b.String()
}

func bylineParts(ctx *Context) []string {
	parts := make([]string, 0, 3)
	if ctx.Author != "" {
		parts = append(parts, "By "+html.EscapeString(ctx.Author))
	}
	if date := formatDate(ctx); date != "" {
		parts = append(parts, date)
	}
	if rt := readingTime(ctx); rt != "" {
		parts = append(parts, rt)
	}
	return parts
}

func categoryBadge(ctx *Context) string {
	if ctx.Category == "" {
		return ""
	}
	name := html.EscapeString(ctx.Category)
	if ctx.CategoryHref == "" {
		return "<span class=\"category-badge\">" + name + "</span>"
	}
	return "<a class=\"category-badge\" href=\"" + html.EscapeString(ctx.CategoryHref) + "\">" + name + "</a>"
}

func labelBadges(ctx *Context) string {
	if len(ctx.Labels) == 0 {
		return ""
	}
	badges := make([]string, 0, len(ctx.Labels))
	for _, label := range ctx.Labels {
		badges = append(badges, labelBadge(label, "label-badge"))
	}
	return "<div class=\"label-badges\">" + strings.Join(badges, " ") + "</div>"
}

func labelBadge(ref LabelRef, class string) string {
	name := html.EscapeString(ref.Name)
	if ref.Href == "" {
		return "<span class=\"" + class + "\">" + name + "</span>"
	}
	return "<a class=\"" + class + "\" href=\"" + html.EscapeString(ref.Href) + "\">" + name + "</a>"
}

// labelFooter renders the site-wide label cloud. It is empty when the site
// carries no labels, which is what {{#if label-footer}} keys off.
func labelFooter(ctx *Context) string {
	if len(ctx.SiteLabels) == 0 {
		return ""
	}
	badges := make([]string, 0, len(ctx.SiteLabels))
	for _, label := range ctx.SiteLabels {
		badges = append(badges, labelBadge(label, "label-badge"))
	}
	return "<footer class=\"label-footer\">\n<div class=\"label-cloud\">" +
		strings.Join(badges, " ") + "</div>\n</footer>"
}
