// Package proposal renders the downloadable proposal sheet.
package proposal

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"regexp"
	"strings"
	texttemplate "text/template"

	"github.com/bbzsolar/solar-roof-map/internal/config"
	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/pkg/format"
)

// Format selects the document encoding.
type Format string

const (
	FormatText Format = "txt"
	FormatHTML Format = "html"
)

// ParseFormat accepts "txt", "text" or "html"; empty means HTML.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "html":
		return FormatHTML, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported document format '%s', must be 'txt' or 'html'", value)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// Document is the rendered view of a proposal. All values are preformatted.
type Document struct {
	Company     string
	ProjectName string
	Client      string
	CreatedAt   string
	ExpiresAt   string
	Value       string
	ROI         string
	Panels      string
}

// NewDocument formats a proposal for rendering.
func NewDocument(p dashboard.Proposal, company config.Company) Document {
	roi := "indefinido"
	if p.ROI != nil {
		roi = format.Years(*p.ROI)
	}
	return Document{
		Company:     company.Name,
		ProjectName: p.ProjectName,
		Client:      p.Client,
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
		Value:       format.Currency(p.Value),
		ROI:         roi,
		Panels:      fmt.Sprintf("%d unidades", p.Panels),
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename returns the download name, e.g. "proposta-residência-silva.html".
func Filename(projectName string, f Format) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(projectName), "-")
	return "proposta-" + slug + "." + string(f)
}

const textLayout = `Proposta Solar
{{.ProjectName}}
{{if .Company}}{{.Company}}
{{end}}
Cliente:          {{.Client}}
Data de criação:  {{.CreatedAt}}
Validade até:     {{.ExpiresAt}}
Valor total:      {{.Value}}
ROI estimado:     {{.ROI}}
Painéis solares:  {{.Panels}}
`

const htmlLayout = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Proposta Solar - {{.ProjectName}}</title>
<style>
body { font-family: sans-serif; padding: 30px; }
h1 { font-size: 24px; margin-bottom: 10px; }
h2 { font-size: 16px; color: #666; margin-bottom: 20px; }
th { width: 120px; color: #666; text-align: left; font-weight: normal; }
</style>
</head>
<body>
<header>
<h1>Proposta Solar</h1>
<h2>{{.ProjectName}}</h2>
{{if .Company}}<p>{{.Company}}</p>{{end}}
</header>
<table>
<tr><th>Cliente:</th><td>{{.Client}}</td></tr>
<tr><th>Data de criação:</th><td>{{.CreatedAt}}</td></tr>
<tr><th>Validade até:</th><td>{{.ExpiresAt}}</td></tr>
<tr><th>Valor total:</th><td>{{.Value}}</td></tr>
<tr><th>ROI estimado:</th><td>{{.ROI}}</td></tr>
<tr><th>Painéis solares:</th><td>{{.Panels}}</td></tr>
</table>
</body>
</html>
`

var (
	textTemplate = texttemplate.Must(texttemplate.New("proposal.txt").Parse(textLayout))
	htmlTemplate = htmltemplate.Must(htmltemplate.New("proposal.html").Parse(htmlLayout))
)

// Render writes doc to w in the requested format.
func Render(w io.Writer, doc Document, f Format) error {
	var err error
	switch f {
	case FormatText:
		err = textTemplate.Execute(w, doc)
	case FormatHTML:
		err = htmlTemplate.Execute(w, doc)
	default:
		return fmt.Errorf("unsupported document format '%s'", f)
	}
	if err != nil {
		return fmt.Errorf("failed to render proposal: %w", err)
	}
	return nil
}
