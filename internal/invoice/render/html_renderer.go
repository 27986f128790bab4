package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{with (index .Pages 0).Blocks}}{{range .}}{{if eq .Kind "header"}}Invoice {{.InvoiceNumber}}{{end}}{{end}}{{end}}</title>
  <style>
    :root {
      --header-bg: {{.Palette.HeaderBackground}};
      --table-head-bg: {{.Palette.TableHeaderBackground}};
      --border: {{.Palette.BorderColor}};
      --accent: {{.Palette.AccentColor}};
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: {{if .Condensed}}16px{{else}}40px{{end}};
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 820px;
      margin: 0 auto;
      padding: {{if .Condensed}}24px{{else}}56px{{end}};
      border-radius: 4px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
    }
    .doc-header {
      display: flex;
      justify-content: space-between;
      background: var(--header-bg);
      color: #ffffff;
      padding: 20px 24px;
      border-radius: 4px;
      margin-bottom: 28px;
    }
    .doc-header h1 { margin: 0; font-size: {{if .Condensed}}16px{{else}}22px{{end}}; }
    .doc-header .meta { text-align: right; font-size: 13px; line-height: 1.6; }
    .note {
      border-left: 3px solid var(--accent);
      padding: 8px 12px;
      margin-bottom: 16px;
      font-size: 13px;
      background: #fafbfc;
    }
    .note .note-label { font-weight: 600; margin-right: 6px; }
    .sections { margin-bottom: 24px; }
    .sections-row { display: flex; gap: 24px; margin-bottom: 16px; }
    .section { flex: 1; }
    .section h3 {
      margin: 0 0 6px 0;
      font-size: 11px;
      text-transform: uppercase;
      letter-spacing: 0.3px;
      color: #8792a2;
    }
    .section .field { font-size: 13px; line-height: 1.5; }
    .section .field-label { color: #697386; margin-right: 4px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th {
      background: var(--table-head-bg);
      border-bottom: 1px solid var(--border);
      text-transform: uppercase;
      font-size: 11px;
      color: #4f5b76;
      padding: {{if .Condensed}}6px{{else}}10px{{end}} 8px;
      letter-spacing: 0.3px;
    }
    td {
      padding: {{if .Condensed}}6px{{else}}12px{{end}} 8px;
      border-bottom: 1px solid var(--border);
      font-size: 13px;
    }
    .align-left { text-align: left; }
    .align-center { text-align: center; }
    .align-right { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; margin-bottom: 24px; }
    .total-row { display: flex; justify-content: space-between; width: 280px; padding: 5px 0; font-size: 14px; }
    .total-row.emphasis {
      border-top: 1px solid var(--border);
      margin-top: 8px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
      color: var(--accent);
    }
    .signature { margin: 40px 0 24px 0; font-size: 13px; }
    .signature .sig-line { border-top: 1px solid #1a1f36; width: 320px; padding-top: 6px; margin-top: 36px; }
    .compliance {
      font-size: 12px;
      color: #4f5b76;
      border: 1px solid var(--border);
      padding: 12px;
      margin-bottom: 24px;
    }
    .footer {
      margin-top: 40px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid var(--border);
      padding-top: 16px;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    {{range (index .Pages 0).Blocks}}
      {{if eq .Kind "note"}}
        <div class="note">{{if .NoteLabel}}<span class="note-label">{{.NoteLabel}}:</span>{{end}}{{.NoteText}}</div>
      {{else if eq .Kind "header"}}
        <div class="doc-header">
          <div>
            <h1>{{.Title}}</h1>
            <div style="font-size:13px; margin-top:8px;">
              {{if .LogoURL}}<img src="{{.LogoURL}}" style="max-height:32px;" alt="{{.CompanyName}}">{{else}}{{.CompanyName}}{{end}}
              {{if .CompanyLine}}<br>{{.CompanyLine}}{{end}}
            </div>
          </div>
          <div class="meta">
            Invoice No. <strong>{{.InvoiceNumber}}</strong><br>
            Issued {{.IssuedAt}}<br>
            Due {{.DueAt}}{{if .PaymentTerms}}<br>Terms: {{.PaymentTerms}}{{end}}
          </div>
        </div>
      {{else if eq .Kind "sections"}}
        <div class="sections">
          {{if or .Left .Right}}
          <div class="sections-row">
            <div class="section-col" style="flex:1;">{{range .Left}}{{template "section" .}}{{end}}</div>
            <div class="section-col" style="flex:1;">{{range .Right}}{{template "section" .}}{{end}}</div>
          </div>
          {{end}}
          {{range .FullWidth}}<div class="sections-row"><div class="section">{{template "sectionInner" .}}</div></div>{{end}}
        </div>
      {{else if eq .Kind "table"}}
        <table>
          <thead>
            <tr>
              {{range .Columns}}<th class="align-{{.Align}}"{{if .Width}} style="width:{{.Width}}%;"{{end}}>{{.Label}}</th>{{end}}
            </tr>
          </thead>
          <tbody>
            {{$cols := .Columns}}
            {{range .Rows}}
            <tr>
              {{range $i, $cell := .}}<td class="align-{{(index $cols $i).Align}}">{{$cell}}</td>{{end}}
            </tr>
            {{end}}
          </tbody>
        </table>
      {{else if eq .Kind "totals"}}
        <div class="totals">
          {{range .Totals}}
          <div class="total-row{{if .Emphasis}} emphasis{{end}}">
            <span>{{.Label}}</span><span>{{.Value}}</span>
          </div>
          {{end}}
        </div>
      {{else if eq .Kind "signature"}}
        <div class="signature">
          {{if eq .SignatureStyle "block"}}
          <div>Received by:</div>
          <div class="sig-line">Signature / Date</div>
          <div class="sig-line">Print Name / Title</div>
          {{else}}
          <div class="sig-line">Received by (Signature / Date)</div>
          {{end}}
        </div>
      {{else if eq .Kind "compliance"}}
        <div class="compliance">{{.ComplianceText}}</div>
      {{end}}
    {{end}}
    {{if .FooterNotes}}
    <div class="footer">{{range .FooterNotes}}{{.}}<br>{{end}}</div>
    {{end}}
  </div>
</body>
</html>
{{define "section"}}<div class="section">{{template "sectionInner" .}}</div>{{end}}
{{define "sectionInner"}}<h3>{{.Title}}</h3>{{range .Fields}}<div class="field"><span class="field-label">{{.Label}}:</span>{{.Value}}</div>{{end}}{{end}}
`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// HTMLRenderer renders documents through a single html/template.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(documentHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(doc Document) (string, error) {
	doc.Palette.HeaderBackground = sanitizeColor(doc.Palette.HeaderBackground, "#1f2a44")
	doc.Palette.TableHeaderBackground = sanitizeColor(doc.Palette.TableHeaderBackground, "#eef1f6")
	doc.Palette.BorderColor = sanitizeColor(doc.Palette.BorderColor, "#d4d9e2")
	doc.Palette.AccentColor = sanitizeColor(doc.Palette.AccentColor, "#8b1e3f")

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}
