package restapi

import (
	"html/template"
	"strings"

	"holo_vault_analyzer/internal/domain/entity"
)

const dashboardTemplateName = "dashboard"

var templateFuncs = template.FuncMap{
	"slug": func(s string) string { return strings.ReplaceAll(strings.ToLower(s), " ", "-") },
	"down": func(t entity.Trend) bool { return t == entity.TrendDown },
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .View.Title }}</title>
<style>
body { font-family: system-ui, sans-serif; background: #0b0f1a; color: #e6e9f2; margin: 0; padding: 24px; }
header, footer { display: flex; justify-content: space-between; align-items: center; }
h1 { margin: 0; background: linear-gradient(90deg, #7f5af0, #2cb67d); -webkit-background-clip: text; color: transparent; }
.muted { color: #94a1b2; }
.grid { display: grid; gap: 16px; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); margin: 16px 0 32px; }
.card { border: 1px solid #2e3650; border-radius: 12px; padding: 16px; background: rgba(127, 90, 240, 0.06); }
.value { font-size: 1.6em; font-weight: 700; }
.up { color: #2cb67d; } .down { color: #ef4565; }
table { border-collapse: collapse; width: 100%; } td, th { padding: 4px 8px; text-align: left; }
</style>
</head>
<body data-session="{{ .SessionID }}">
<header>
  <div>
    <h1>{{ .View.Title }}</h1>
    <p class="muted">{{ .View.Subtitle }}</p>
  </div>
  <div class="muted">{{ if .View.Connected }}Connected: {{ .View.WalletAddress }}{{ else }}Wallet not connected{{ end }}</div>
</header>

<h2>Portfolio Overview</h2>
<section class="grid">
{{ range .View.Metrics }}
  <div class="card">
    <div class="muted">{{ .Title }}{{ if .Encrypted }} &#128274;{{ end }}</div>
    {{ if .Loading }}<div class="value muted">Loading&hellip;</div>{{ else }}
    <div class="value">{{ .Value }}</div>
    <div class="{{ if down .Trend }}down{{ else }}up{{ end }}">{{ .ChangeText }}</div>{{ end }}
  </div>
{{ end }}
</section>

<h2>Analytics Dashboard</h2>
<section class="grid">
{{ range .View.Charts }}
  <div class="card" data-chart-type="{{ .Type }}">
    <h3>{{ .Title }}</h3>
    <table>
      <tr><th>Time</th><th>Value</th></tr>
      {{ range .Points }}<tr><td>{{ .Time }}</td><td>{{ .Value }}</td></tr>{{ end }}
    </table>
  </div>
{{ end }}
</section>

<h2>Your Liquidity Pools</h2>
<section class="grid">
{{ range .View.Pools }}
  <div class="card" data-pool-index="{{ .Index }}">
    <h3>{{ .Pool.Name }}</h3>
    <div class="muted">{{ .Pool.Pair }}</div>
    <table>
      <tr><td>TVL</td><td>{{ .Pool.TVL }}</td></tr>
      <tr><td>APR</td><td>{{ .Pool.APR }}</td></tr>
      <tr><td>24h Volume</td><td>{{ .Pool.Volume24h }}</td></tr>
    </table>
    <div class="privacy-{{ slug .PrivacyLevel }}">{{ .PrivacyLevel }}</div>
  </div>
{{ end }}
</section>

<footer class="muted">
  <div>{{ .View.Footer.FHEStatus }} &middot; {{ .View.Footer.LastSync }}</div>
  <div>{{ .View.Footer.PoweredBy }}</div>
</footer>
</body>
</html>
`
