package render

import (
	"bytes"
	"html/template"
	"strings"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} {{.Number}}</title>
  <style>
    :root {
      --primary: {{color .Theme.Color}};
      --font: "{{font .Theme.Font}}";
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: var(--font), "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 794px; margin: 0 auto; }
    .title { color: var(--primary); font-size: 28px; font-weight: 700; margin-bottom: 16px; }
    .layout-banded .title, .layout-banded .block-issuer { background: var(--primary); color: #ffffff; padding: 12px; }
    .layout-centered .title { text-align: center; }
    .block { margin-bottom: 20px; }
    .align-left { text-align: left; }
    .align-center { text-align: center; }
    .align-right { text-align: right; }
    .block-title { font-size: 11px; letter-spacing: 0.04em; text-transform: uppercase; color: #6b7280; }
    .block-issuer .block-title { font-size: 18px; color: inherit; text-transform: none; }
    .block img { max-height: 56px; }
    .placeholder { color: #9ca3af; font-style: italic; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th { background: var(--primary); color: #ffffff; text-align: left; padding: 8px; font-size: 11px; text-transform: uppercase; }
    td { padding: 8px; border-bottom: 1px solid #e5e7eb; }
    .field { display: flex; justify-content: space-between; gap: 16px; }
    .block-totals .field:last-child { font-weight: 700; border-top: 2px solid var(--primary); padding-top: 4px; }
    .block-footer { border-top: 1px solid #e5e7eb; padding-top: 12px; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="invoice layout-{{.Theme.Layout}}">
    <div class="title">{{.Title}}{{if .Number}} #{{.Number}}{{end}}</div>
    {{range .Blocks}}
    <div class="block block-{{.Kind}} align-{{.Align}}">
      {{if .Image}}<img src="{{src .Image}}" alt="Company logo" />{{end}}
      {{if .Title}}<div class="block-title">{{.Title}}</div>{{end}}
      {{if .Columns}}
      <table>
        <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
        <tbody>
          {{range .Rows}}
          {{if .Placeholder}}
          <tr><td class="placeholder" colspan="4">{{index .Cells 0}}</td></tr>
          {{else}}
          <tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
          {{end}}
          {{end}}
        </tbody>
      </table>
      {{end}}
      {{range .Fields}}<div class="field"><span>{{.Label}}</span><span>{{.Value}}</span></div>{{end}}
      {{$placeholder := .Placeholder}}{{if not .Columns}}{{range .Lines}}<div{{if $placeholder}} class="placeholder"{{end}}>{{.}}</div>{{end}}{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

// HTMLEncoder renders a Document as a standalone HTML page for preview.
type HTMLEncoder struct {
	tpl *template.Template
}

// NewHTMLEncoder parses the page template once.
func NewHTMLEncoder() *HTMLEncoder {
	funcs := template.FuncMap{
		"color": func(c string) template.CSS {
			if s := sanitizeColor(c); s != "" {
				return template.CSS(s)
			}
			return template.CSS(FallbackColor)
		},
		"src": imageSource,
		"font": func(f string) string {
			if s := sanitizeFont(f); s != "" {
				return s
			}
			return FallbackFont
		},
	}
	return &HTMLEncoder{
		tpl: template.Must(template.New("document").Funcs(funcs).Parse(documentHTMLTemplate)),
	}
}

// Encode renders doc to HTML.
func (e *HTMLEncoder) Encode(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := e.tpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// imageSource lets data:image URIs from the logo fallback through html/template's URL filter.
func imageSource(ref string) template.URL {
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return template.URL(ref)
	}
	return ""
}
