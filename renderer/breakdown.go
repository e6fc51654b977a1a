package renderer

import (
	"fmt"
	html "html/template"
	"strings"
	"text/template"
)

// breakdownMarkdownTemplate is the template for rendering a Breakdown report
// in Markdown. Markdown tables cannot merge cells, so covered cells are
// rendered empty, which reads the same once aligned.
const breakdownMarkdownTemplate = `# {{ .Title }}

{{ .Subtitle }}
{{- if .Errors }}

{{ range .Errors }}> warning: {{ . }}
{{ end }}
{{- end }}

|{{ range .Headers }} {{ . }} |{{ end }}
|{{ range .Headers }}---|{{ end }}
{{- range .Rows }}
|{{ range . }} {{ .Text }} |{{ end }}
{{- end }}
`

// breakdownHTMLTemplate is the template for rendering a Breakdown report as
// an HTML table with true merged cells. Covered cells (span zero) are not
// emitted at all.
const breakdownHTMLTemplate = `<h1>{{ .Title }}</h1>
<p>{{ .Subtitle }}</p>
{{- if .Errors }}
<ul class="errors">
{{- range .Errors }}
  <li>{{ . }}</li>
{{- end }}
</ul>
{{- end }}
<table>
  <thead>
    <tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
  </thead>
  <tbody>
{{- range .Rows }}
    <tr>{{ range . }}{{ if gt .Span 0 }}<td{{ if gt .Span 1 }} rowspan="{{ .Span }}"{{ end }}>{{ .Text }}</td>{{ end }}{{ end }}</tr>
{{- end }}
  </tbody>
</table>
`

// RenderBreakdown renders the Breakdown struct to a markdown string using a
// text/template.
func RenderBreakdown(b *Breakdown) string {
	return render("breakdown", breakdownMarkdownTemplate, b)
}

// RenderBreakdownHTML renders the Breakdown struct to an HTML table string.
// It goes through html/template so account names and patterns are escaped.
func RenderBreakdownHTML(b *Breakdown) string {
	tmpl := html.Must(html.New("breakdownHTML").Parse(breakdownHTMLTemplate))
	var sb strings.Builder
	if err := tmpl.Execute(&sb, b); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "breakdownHTML", err)
	}
	return sb.String()
}

func render(name, text string, data any) string {
	tmpl := template.Must(template.New(name).Parse(text))
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return sb.String()
}
