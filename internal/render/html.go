package render

import (
	"bytes"
	"fmt"
	"html/template"

	"DropWatch/internal/domain/models"
	"DropWatch/pkg/util"
)

// sectionEmojis decorate the report's alert categories by section key.
var sectionEmojis = map[string]string{
	"3m_low":       "🔻",
	"6m_low":       "📉",
	"52w_low":      "🆘",
	"down_streak":  "📊",
	"daily_drop":   "⚠️",
	"52w_drawdown": "💀",
}

// HTMLRenderer renders an AlertReport as a self-contained HTML email body.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("report").Funcs(template.FuncMap{
		"pct":       formatPct,
		"quoteLink": quoteLink,
		"emoji":     sectionEmoji,
		"badge":     badgeTag,
		"date":      func(r *models.AlertReport) string { return r.AsOf.Format(util.DateLayout) },
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl}, nil
}

// Render produces the HTML document for one report.
func (r *HTMLRenderer) Render(report *models.AlertReport) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func formatPct(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *p)
}

func quoteLink(symbol string) string {
	return "https://finance.yahoo.com/quote/" + symbol
}

func sectionEmoji(key string) string {
	return sectionEmojis[key]
}

// badgeTag marks symbols appearing in multiple sections. Single-section
// entries stay unadorned.
func badgeTag(badge int) string {
	if badge < 2 {
		return ""
	}
	return fmt.Sprintf(" ⭐x%d", badge)
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 720px; margin: 0 auto;">
<h2>Daily Stock Alert Summary — {{date .}}</h2>
<p>Scanned {{.ScannedSymbols}} symbols ({{.SkippedSymbols}} skipped).</p>

{{if .MarketOverview}}
<h3>Market Overview</h3>
<ul>
{{range .MarketOverview}}<li><b>{{.Name}}</b>: {{pct .ChangePct}}</li>
{{end}}</ul>
{{end}}

{{if .RepeatOffenders}}
<h3>🔁 Repeat 5% Droppers</h3>
<ul>
{{range .RepeatOffenders}}<li><a href="{{quoteLink .Symbol}}">{{.Symbol}}</a> ({{.Sector}}) — {{.Count}} times this week</li>
{{end}}</ul>
{{end}}

{{if .SectorPressure}}
<h3>🏭 Sector Pressure</h3>
<ul>
{{range .SectorPressure}}<li><b>{{.Sector}}</b> — {{.Count}} alerts</li>
{{end}}</ul>
{{end}}

{{if .NoAlerts}}
<p>✅ No alerts today. Nothing moved enough to matter.</p>
{{else}}
{{range $section := .Sections}}
<h3>{{emoji $section.Key}} {{$section.Title}} ({{$section.Count}})</h3>
{{range $section.Sectors}}
<p><b>{{.Sector}}</b></p>
<ul>
{{range .Entries}}<li><a href="{{quoteLink .Symbol}}">{{.Symbol}}</a>{{badge .Badge}} — {{.Detail}}</li>
{{end}}</ul>
{{end}}
{{end}}
{{end}}

<hr>
<p style="color: #888; font-size: 12px;">Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>`
