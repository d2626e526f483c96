// Package render produces the server-rendered HTML view of an invoice, used
// by the print endpoint, the customer email body and the archive snapshot.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"facturo/internal/domain"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 24px;">
  <table style="width: 100%;"><tr>
    <td>
      <h2 style="margin: 0;">{{.Settings.CompanyName}}</h2>
      <p style="margin: 4px 0; color: #555; white-space: pre-line;">{{.Settings.CompanyTaxID}}
{{.Settings.CompanyAddress}}
{{.Settings.CompanyPhone}} {{.Settings.CompanyEmail}}</p>
    </td>
    <td style="text-align: right; vertical-align: top;">
      <h1 style="margin: 0;">{{.Title}}</h1>
      <p style="margin: 4px 0;">{{.Invoice.IssueDate.Format "2006-01-02"}}</p>
    </td>
  </tr></table>
  <hr style="border: none; border-top: 1px solid #ddd;">
  <p style="margin: 12px 0;">
    <strong>{{.Invoice.CustomerName}}</strong><br>
    {{if .Invoice.CustomerTaxID}}{{.Invoice.CustomerTaxID}}<br>{{end}}
    {{if .Invoice.CustomerAddress}}{{.Invoice.CustomerAddress}}<br>{{end}}
    {{if .Invoice.CustomerEmail}}{{.Invoice.CustomerEmail}}{{end}}
  </p>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="border-bottom: 2px solid #333; text-align: left;">
        <th style="padding: 6px;">Description</th>
        <th style="padding: 6px; text-align: right;">Qty</th>
        <th style="padding: 6px; text-align: right;">Unit Price</th>
        <th style="padding: 6px; text-align: right;">Discount %</th>
        <th style="padding: 6px; text-align: right;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 6px;">{{.Description}}</td>
        <td style="padding: 6px; text-align: right;">{{.Quantity.StringFixed 3}}</td>
        <td style="padding: 6px; text-align: right;">{{.UnitPrice.StringFixed 2}}</td>
        <td style="padding: 6px; text-align: right;">{{.DiscountPercent.StringFixed 2}}</td>
        <td style="padding: 6px; text-align: right;">{{.Total.StringFixed 2}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <table style="margin-left: auto; margin-top: 16px;">
    <tr><td style="padding: 4px 12px;">Subtotal</td><td style="text-align: right;">{{.Invoice.Subtotal.StringFixed 2}}</td></tr>
    <tr><td style="padding: 4px 12px;">Tax ({{.Invoice.TaxRate.StringFixed 2}}%)</td><td style="text-align: right;">{{.Invoice.TaxAmount.StringFixed 2}}</td></tr>
    <tr style="font-weight: bold; border-top: 2px solid #333;"><td style="padding: 4px 12px;">Total</td><td style="text-align: right;">{{.Invoice.Total.StringFixed 2}}</td></tr>
  </table>
  {{if .Settings.InvoiceFooter}}
  <hr style="border: none; border-top: 1px solid #ddd; margin-top: 24px;">
  <p style="color: #777; font-size: 12px; white-space: pre-line;">{{.Settings.InvoiceFooter}}</p>
  {{end}}
</body>
</html>`))

type invoicePage struct {
	Title    string
	Invoice  *domain.Invoice
	Lines    []domain.InvoiceLine
	Settings *domain.InvoicingSettings
}

// InvoiceHTML renders an invoice with its lines and the tenant settings.
func InvoiceHTML(invoice *domain.Invoice, lines []domain.InvoiceLine, settings *domain.InvoicingSettings) (string, error) {
	title := invoice.Number
	if title == "" {
		title = "DRAFT"
	}
	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, invoicePage{
		Title:    title,
		Invoice:  invoice,
		Lines:    lines,
		Settings: settings,
	})
	if err != nil {
		return "", fmt.Errorf("rendering invoice %s: %w", invoice.ID, err)
	}
	return buf.String(), nil
}
