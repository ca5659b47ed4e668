// Package preview renders exported field notes as standalone HTML pages.
package preview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/fieldnotes/internal/note"
)

// pageTemplate wraps the converted note body in a minimal self-contained page.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 42rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.6; }
h1, h2 { font-family: Helvetica, Arial, sans-serif; }
hr { border: 0; border-top: 1px solid #ccc; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

// RenderHTML converts the note's Markdown document into a standalone HTML
// page. If Markdown conversion fails, the document is embedded as escaped
// plain text rather than failing the export.
func RenderHTML(n *note.FieldNote) ([]byte, error) {
	md := n.ToMarkdown()

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		body.Reset()
		body.WriteString("<pre>")
		body.WriteString(template.HTMLEscapeString(md))
		body.WriteString("</pre>")
	}

	var page bytes.Buffer
	data := pageData{
		Title: fmt.Sprintf("Field Note: %s", n.Location),
		Body:  template.HTML(body.String()),
	}
	if err := pageTemplate.Execute(&page, data); err != nil {
		return nil, err
	}
	return page.Bytes(), nil
}
