package service

import (
	"html/template"
	"strings"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/i18n"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/format"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/layout"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/render"
)

var previewLabelKeys = []string{
	"pdfInvoice", "pdfBillTo", "pdfDateIssued", "pdfDueDate",
	"pdfDescription", "pdfQuantity", "pdfUnitPrice", "pdfAmount",
	"pdfSubtotal", "pdfDiscount", "pdfTax", "pdfTotal",
	"pdfPayOnline", "pdfNotes", "pdfSignature",
}

// previewInput assembles the fully-formatted view for the HTML
// preview. Optional sections stay empty so the template omits them:
// zero discount and tax rows, blank notes, an invalid payment link,
// or a missing image simply disappear from the preview.
func (s *Service) previewInput(inv domain.Invoice, tot domain.Totals, tr i18n.Translator) render.PreviewInput {
	labels := make(map[string]string, len(previewLabelKeys))
	for _, key := range previewLabelKeys {
		labels[key] = tr.T(key)
	}

	themeCfg := s.theme.Get()
	input := render.PreviewInput{
		Lang: inv.Language,
		L:    labels,
		Theme: render.PreviewTheme{
			PrimaryColor: themeCfg.PrimaryColor,
			FontFamily:   themeCfg.FontFamily,
		},

		CompanyName: inv.Company.Name,
		StatusLabel: tr.T(statusLabelKey(inv.Status)),
		Number:      inv.Number,

		ClientName:  inv.Client.Name,
		ClientEmail: inv.Client.Email,
		IssueDate:   format.Date(inv.IssueDate),
		DueDate:     format.Date(inv.DueDate),

		Subtotal: format.Currency(tot.Subtotal, inv.Currency),
		Total:    format.Currency(tot.Total, inv.Currency),
	}

	if info := strings.TrimSpace(inv.Client.Info); info != "" {
		input.ClientInfoLines = strings.Split(info, "\n")
	}

	for _, item := range inv.Items {
		input.Items = append(input.Items, render.PreviewItem{
			Description: item.Description,
			Quantity:    format.Quantity(item.Quantity),
			Rate:        format.Currency(item.Rate, inv.Currency),
			Amount:      format.Currency(item.Quantity*item.Rate, inv.Currency),
		})
	}

	if tot.Discount > 0 {
		input.Discount = format.Currency(tot.Discount, inv.Currency)
	}
	if tot.Tax > 0 {
		input.TaxRate = format.Quantity(inv.TaxRate)
		input.Tax = format.Currency(tot.Tax, inv.Currency)
	}

	if link := strings.TrimSpace(inv.PaymentLink); layout.IsAbsoluteURL(link) {
		input.PaymentLink = link
	}
	if strings.TrimSpace(inv.Notes) != "" {
		input.Notes = inv.Notes
	}
	input.LogoURL = template.URL(inv.Logo.DataURL())
	input.SignatureURL = template.URL(inv.Signature.DataURL())

	return input
}

func statusLabelKey(s domain.Status) string {
	switch s {
	case domain.StatusPaid:
		return "statusPaid"
	case domain.StatusUnpaid:
		return "statusUnpaid"
	case domain.StatusOverdue:
		return "statusOverdue"
	default:
		return "statusDraft"
	}
}
