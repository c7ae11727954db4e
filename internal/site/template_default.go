package site

// DefaultTemplateHTML is the built-in page template, used whenever a site
// ships no templates directory or no default.html. It exercises the full tag
// vocabulary so a bare site still gets head metadata, navigation, article
// chrome, and the label footer. The init command writes it out as a starting
// point for customization.
const DefaultTemplateHTML = `<!DOCTYPE html>
<html lang="en">
{{head}}
<body>
{{nav}}
<main>
<article>
{{article-header}}
{{content}}
</article>
</main>
{{label-footer}}
{{scripts}}
</body>
</html>
`
