package layout

import (
	"math"
	"net/url"
	"strings"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/i18n"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/format"
)

// Page geometry in millimeters (A4 portrait).
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 15.0

	tableStartY = 85.0
	tableHeadH  = 9.0
	tableRowH   = 8.0

	// The footer never floats above this Y on a short invoice.
	footerMinY = 240.0

	// Content must stay above the bottom margin; sections that
	// would cross it break to a new page instead.
	contentBottom = PageHeight - Margin
)

var (
	labelGray = RGB{R: 100, G: 100, B: 100}
	linkBlue  = RGB{R: 47, G: 128, B: 237}
)

// Theme carries the colors a document is drawn with. The table
// header fill comes from the configurable document theme.
type Theme struct {
	HeadFill RGB
}

// DefaultTheme is the dark slate used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{HeadFill: RGB{R: 22, G: 34, B: 57}}
}

// Engine lays out the printable document. It holds no state across
// invocations; Layout is a one-shot pure transform per export call.
type Engine struct {
	theme Theme
}

func NewEngine(theme Theme) *Engine {
	return &Engine{theme: theme}
}

// Layout emits the draw instructions for the invoice, top to bottom:
// header, billing block, items table, totals block, footer. The
// header and billing blocks sit at fixed offsets from the page top;
// every later section starts where the measured previous section
// ended, so the variable-height items table can never collide with
// the totals or footer. A table too tall for one page is split
// across pages with the header row repeated, and the totals and
// footer break to a fresh page rather than cross the bottom margin;
// all Y coordinates are relative to the current page. A logo or
// signature whose format cannot be determined is skipped with a
// warning instead of failing the export.
func (e *Engine) Layout(inv domain.Invoice, tot domain.Totals, tr i18n.Translator) Document {
	doc := Document{PageWidth: PageWidth, PageHeight: PageHeight}

	e.header(&doc, inv, tr)
	e.billing(&doc, inv, tr)
	tableEnd := e.itemsTable(&doc, inv, tr)
	totalsEnd := e.totalsBlock(&doc, inv, tot, tr, tableEnd)
	e.footer(&doc, inv, tr, totalsEnd)

	return doc
}

func (e *Engine) header(doc *Document, inv domain.Invoice, tr i18n.Translator) {
	if inv.Logo != nil {
		if renderableImage(inv.Logo) {
			doc.add(
				Image{X: Margin, Y: Margin, W: 30, H: 15, Blob: *inv.Logo},
				Text{X: Margin + 35, Y: Margin + 7, Value: inv.Company.Name, Style: TextStyle{Size: 18, Bold: true}},
			)
		} else {
			doc.warnf("logo skipped: unrecognized image format %q", inv.Logo.Format)
			doc.add(Text{X: Margin, Y: Margin + 7, Value: inv.Company.Name, Style: TextStyle{Size: 20, Bold: true}})
		}
	} else {
		doc.add(Text{X: Margin, Y: Margin + 7, Value: inv.Company.Name, Style: TextStyle{Size: 20, Bold: true}})
	}

	right := PageWidth - Margin
	doc.add(
		Text{X: right, Y: Margin, Value: strings.ToUpper(tr.T(statusKey(inv.Status))), Style: TextStyle{Size: 10, Bold: true, Align: AlignRight}},
		Text{X: right, Y: Margin + 10, Value: strings.ToUpper(tr.T("pdfInvoice")), Style: TextStyle{Size: 22, Bold: true, Align: AlignRight}},
		Text{X: right, Y: Margin + 17, Value: "#" + inv.Number, Style: TextStyle{Size: 10, Align: AlignRight}},
		Line{X1: Margin, Y1: Margin + 30, X2: right, Y2: Margin + 30},
	)
}

func (e *Engine) billing(doc *Document, inv domain.Invoice, tr i18n.Translator) {
	y := Margin + 40
	label := TextStyle{Size: 10, Bold: true, Color: labelGray}

	doc.add(
		Text{X: Margin, Y: y, Value: strings.ToUpper(tr.T("pdfBillTo")), Style: label},
		Text{X: PageWidth / 2, Y: y, Value: strings.ToUpper(tr.T("pdfDateIssued")), Style: label},
		Text{X: PageWidth / 1.5, Y: y, Value: strings.ToUpper(tr.T("pdfDueDate")), Style: label},
	)

	value := TextStyle{Size: 10}
	doc.add(Text{X: Margin, Y: y + 7, Value: inv.Client.Name, Style: value})
	if inv.Client.Email != "" {
		doc.add(Text{X: Margin, Y: y + 12, Value: inv.Client.Email, Style: value})
	}
	if inv.Client.Info != "" {
		for i, line := range strings.Split(inv.Client.Info, "\n") {
			doc.add(Text{X: Margin, Y: y + 17 + float64(i)*5, Value: line, Style: value})
		}
	}

	doc.add(
		Text{X: PageWidth / 2, Y: y + 7, Value: format.Date(inv.IssueDate), Style: value},
		Text{X: PageWidth / 1.5, Y: y + 7, Value: format.Date(inv.DueDate), Style: value},
	)
}

// itemsTable emits the table and returns the measured end Y of its
// last chunk, which seeds the totals block. Rows that do not fit
// above the bottom margin continue on a new page under a repeated
// header row. Row amounts are recomputed from quantity and rate here
// rather than taken from the cached totals, so a row stays correct
// even if the item mutated after totals were computed.
func (e *Engine) itemsTable(doc *Document, inv domain.Invoice, tr i18n.Translator) float64 {
	rows := make([][]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []string{
			item.Description,
			format.Quantity(item.Quantity),
			format.Currency(item.Rate, inv.Currency),
			format.Currency(item.Quantity*item.Rate, inv.Currency),
		})
	}

	head := []string{
		tr.T("pdfDescription"),
		tr.T("pdfQuantity"),
		tr.T("pdfUnitPrice"),
		tr.T("pdfAmount"),
	}
	cols := []Column{
		{Width: 90, Align: AlignLeft},
		{Width: 25, Align: AlignCenter},
		{Width: 32.5, Align: AlignRight},
		{Width: 32.5, Align: AlignRight},
	}

	startY := tableStartY
	for {
		capacity := int((contentBottom - startY - tableHeadH) / tableRowH)
		if capacity < 1 {
			capacity = 1
		}
		chunk := rows
		if len(chunk) > capacity {
			chunk = rows[:capacity]
		}

		table := Table{
			X:         Margin,
			StartY:    startY,
			HeadH:     tableHeadH,
			RowH:      tableRowH,
			Head:      head,
			Rows:      chunk,
			Cols:      cols,
			HeadFill:  e.theme.HeadFill,
			HeadColor: RGB{R: 255, G: 255, B: 255},
			FontSize:  9,
		}
		doc.add(table)

		rows = rows[len(chunk):]
		if len(rows) == 0 {
			return table.EndY()
		}
		doc.add(PageBreak{})
		startY = Margin
	}
}

func (e *Engine) totalsBlock(doc *Document, inv domain.Invoice, tot domain.Totals, tr i18n.Translator, tableEnd float64) float64 {
	labelX := PageWidth - 80
	valueX := PageWidth - 15
	y := tableEnd + 5

	// Tallest possible block: subtotal, discount, tax, rule, total.
	const totalsMaxH = 6 + 6 + 6 + 2 + 8
	if y+totalsMaxH > contentBottom {
		doc.add(PageBreak{})
		y = Margin
	}

	row := func(label, value string, bold bool) {
		step, size := 6.0, 10.0
		if bold {
			step, size = 8.0, 12.0
		}
		y += step
		style := TextStyle{Size: size, Bold: bold, Align: AlignRight}
		doc.add(
			Text{X: labelX, Y: y, Value: label, Style: style},
			Text{X: valueX, Y: y, Value: value, Style: style},
		)
	}

	row(tr.T("pdfSubtotal"), format.Currency(tot.Subtotal, inv.Currency), false)
	if tot.Discount > 0 {
		row(tr.T("pdfDiscount"), "-"+format.Currency(tot.Discount, inv.Currency), false)
	}
	if tot.Tax > 0 {
		row(tr.T("pdfTax")+" ("+format.Quantity(inv.TaxRate)+"%)", format.Currency(tot.Tax, inv.Currency), false)
	}

	y += 2
	doc.add(Line{X1: PageWidth - 85, Y1: y, X2: valueX, Y2: y})
	row(tr.T("pdfTotal"), format.Currency(tot.Total, inv.Currency), true)

	return y
}

// footer lays out the optional payment link, notes, and signature at
// the greater of the totals end plus a gap and a fixed minimum page
// offset, so a short invoice still anchors its footer low enough. A
// footer that would cross the bottom margin moves to a new page,
// where the floor no longer applies.
func (e *Engine) footer(doc *Document, inv domain.Invoice, tr i18n.Translator, totalsEnd float64) {
	var noteLines []string
	if strings.TrimSpace(inv.Notes) != "" {
		noteLines = wrapText(inv.Notes, PageWidth/2-Margin*2, 10)
	}

	height := 0.0
	if IsAbsoluteURL(inv.PaymentLink) {
		height += 10
	}
	block := 0.0
	if len(noteLines) > 0 {
		block = 5 + 5*float64(len(noteLines))
	}
	if inv.Signature != nil && block < 27 {
		block = 27
	}
	height += block

	y := math.Max(totalsEnd+20, footerMinY)
	if y+height > contentBottom {
		doc.add(PageBreak{})
		y = Margin
	}

	if IsAbsoluteURL(inv.PaymentLink) {
		doc.add(Text{
			X: Margin, Y: y,
			Value: tr.T("pdfPayOnline"),
			Style: TextStyle{Size: 11, Color: linkBlue, Link: inv.PaymentLink},
		})
		y += 10
	}

	if len(noteLines) > 0 {
		doc.add(Text{X: Margin, Y: y, Value: tr.T("pdfNotes"), Style: TextStyle{Size: 10, Bold: true}})
		for i, line := range noteLines {
			doc.add(Text{X: Margin, Y: y + 5 + float64(i)*5, Value: line, Style: TextStyle{Size: 10}})
		}
	}

	if inv.Signature != nil {
		if !renderableImage(inv.Signature) {
			doc.warnf("signature skipped: unrecognized image format %q", inv.Signature.Format)
			return
		}
		half := PageWidth / 2
		doc.add(
			Text{X: half, Y: y, Value: tr.T("pdfSignature"), Style: TextStyle{Size: 10, Bold: true}},
			Image{X: half, Y: y + 5, W: 50, H: 20, Blob: *inv.Signature},
			Line{X1: half, Y1: y + 27, X2: half + 60, Y2: y + 27},
		)
	}
}

func statusKey(s domain.Status) string {
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

// renderableImage reports whether the blob declares a raster format
// the rendering backends understand.
func renderableImage(img *domain.ImageAttachment) bool {
	if img == nil || len(img.Data) == 0 {
		return false
	}
	switch strings.ToLower(img.Format) {
	case "png", "jpg", "jpeg", "gif":
		return true
	default:
		return false
	}
}

// IsAbsoluteURL is parse-based link validation, not a prefix check:
// the value must parse as an absolute URL. Host-less schemes like
// mailto: are accepted.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.IsAbs()
}
