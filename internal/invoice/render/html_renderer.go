package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

const previewHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>{{.L.pdfInvoice}} {{.Number}}</title>
  <style>
    :root {
      --primary: {{.Theme.PrimaryColor}};
      --font: {{.Theme.FontFamily}}, -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 30px;
      border-bottom: 1px solid #e3e8ee;
      padding-bottom: 20px;
    }
    .header-left h1 { margin: 0; font-size: 24px; font-weight: 700; }
    .header-left img { max-height: 48px; margin-bottom: 8px; }
    .header-right { text-align: right; }
    .header-right h2 {
      margin: 0;
      font-size: 26px;
      font-weight: 700;
      color: var(--primary);
      text-transform: uppercase;
    }
    .status-badge {
      display: inline-block;
      font-size: 11px;
      font-weight: 700;
      text-transform: uppercase;
      letter-spacing: 0.5px;
      padding: 3px 10px;
      border-radius: 10px;
      background: #eef1f6;
      color: #5b6b86;
    }
    .invoice-number { color: #8792a2; font-size: 13px; margin-top: 4px; }

    .meta-grid { display: flex; justify-content: space-between; margin-bottom: 40px; }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 14px; line-height: 1.5; }

    table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td { padding: 14px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; vertical-align: top; }
    .td-center { text-align: center; }
    .td-right { text-align: right; }

    .totals { width: 100%; display: flex; flex-direction: column; align-items: flex-end; }
    .total-row { display: flex; justify-content: space-between; width: 260px; padding: 6px 0; font-size: 14px; }
    .total-label { color: #697386; }
    .total-value { text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
    }

    .pay-link { font-size: 13px; color: #006aff; text-decoration: none; font-weight: 500; }
    .footer { margin-top: 50px; font-size: 13px; color: #697386; }
    .footer h4 { margin: 0 0 6px 0; font-size: 11px; text-transform: uppercase; color: #8792a2; }
    .signature img { max-height: 60px; }
    .signature { margin-top: 30px; border-top: 1px solid #1a1f36; display: inline-block; padding-top: 6px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div class="header-left">
        {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.CompanyName}}"><br>{{end}}
        <h1>{{.CompanyName}}</h1>
      </div>
      <div class="header-right">
        <span class="status-badge">{{.StatusLabel}}</span>
        <h2>{{.L.pdfInvoice}}</h2>
        <div class="invoice-number">#{{.Number}}</div>
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">{{.L.pdfBillTo}}</div>
        <div class="value">
          <strong>{{.ClientName}}</strong><br>
          {{if .ClientEmail}}{{.ClientEmail}}<br>{{end}}
          {{range .ClientInfoLines}}{{.}}<br>{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 160px;">
        <div class="label">{{.L.pdfDateIssued}}</div>
        <div class="value">{{.IssueDate}}</div>
      </div>
      <div class="col" style="flex: 0 0 160px;">
        <div class="label">{{.L.pdfDueDate}}</div>
        <div class="value">{{.DueDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">{{.L.pdfDescription}}</th>
          <th class="td-center">{{.L.pdfQuantity}}</th>
          <th class="td-right">{{.L.pdfUnitPrice}}</th>
          <th class="td-right">{{.L.pdfAmount}}</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-center">{{.Quantity}}</td>
          <td class="td-right">{{.Rate}}</td>
          <td class="td-right" style="font-weight: 500;">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">{{.L.pdfSubtotal}}</span>
        <span class="total-value">{{.Subtotal}}</span>
      </div>
      {{if .Discount}}
      <div class="total-row">
        <span class="total-label">{{.L.pdfDiscount}}</span>
        <span class="total-value">-{{.Discount}}</span>
      </div>
      {{end}}
      {{if .Tax}}
      <div class="total-row">
        <span class="total-label">{{.L.pdfTax}} ({{.TaxRate}}%)</span>
        <span class="total-value">{{.Tax}}</span>
      </div>
      {{end}}
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">{{.L.pdfTotal}}</span>
        <span class="total-value">{{.Total}}</span>
      </div>
    </div>

    {{if .PaymentLink}}
    <div class="footer">
      <a href="{{.PaymentLink}}" class="pay-link">{{.L.pdfPayOnline}} &rarr;</a>
    </div>
    {{end}}

    {{if .Notes}}
    <div class="footer">
      <h4>{{.L.pdfNotes}}</h4>
      {{.Notes}}
    </div>
    {{end}}

    {{if .SignatureURL}}
    <div class="footer signature">
      <h4>{{.L.pdfSignature}}</h4>
      <img src="{{.SignatureURL}}" alt="{{.L.pdfSignature}}">
    </div>
    {{end}}
  </div>
</body>
</html>
`

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// PreviewTheme styles the on-screen preview; values come from the
// document theme config and are sanitized before hitting the page.
type PreviewTheme struct {
	PrimaryColor string
	FontFamily   string
}

// PreviewItem is one pre-formatted table row.
type PreviewItem struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// PreviewInput is the fully-formatted view the template renders.
// Empty optional fields (Discount, Tax, PaymentLink, Notes, image
// URLs) suppress their sections.
type PreviewInput struct {
	Lang  string
	L     map[string]string
	Theme PreviewTheme

	CompanyName string
	LogoURL     template.URL
	StatusLabel string
	Number      string

	ClientName      string
	ClientEmail     string
	ClientInfoLines []string
	IssueDate       string
	DueDate         string

	Items []PreviewItem

	Subtotal string
	Discount string
	TaxRate  string
	Tax      string
	Total    string

	PaymentLink  string
	Notes        string
	SignatureURL template.URL
}

// HTMLRenderer produces the live preview document.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("preview").Parse(previewHTMLTemplate)),
	}
}

func (r *HTMLRenderer) Render(input PreviewInput) (string, error) {
	input.Theme.PrimaryColor = sanitizeColor(input.Theme.PrimaryColor)
	input.Theme.FontFamily = sanitizeFont(input.Theme.FontFamily)
	if input.CompanyName == "" {
		input.CompanyName = "Invoice"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#162239"
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return trimmed
	}
	return "Inter"
}
