package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/layout"
)

const pdfFont = "Helvetica"

// PDFBackend executes a layout instruction sequence into a PDF
// document. One backend instance serves one export. A corrupt image
// blob is skipped with a log entry; the rest of the document still
// renders.
type PDFBackend struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	log *zap.Logger

	imageSeq int
}

func NewPDF(log *zap.Logger) *PDFBackend {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pagination is explicit via PageBreak instructions; gofpdf's
	// auto break would scatter overflowing table rows instead.
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &PDFBackend{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		log: log.Named("render.pdf"),
	}
}

func (b *PDFBackend) ContentType() string { return "application/pdf" }

func (b *PDFBackend) Execute(doc layout.Document) error {
	for _, ins := range doc.Instructions {
		switch v := ins.(type) {
		case layout.Text:
			b.text(v)
		case layout.Line:
			b.pdf.SetDrawColor(0, 0, 0)
			b.pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
		case layout.Image:
			b.image(v)
		case layout.Table:
			b.table(v)
		case layout.PageBreak:
			b.pdf.AddPage()
		default:
			return fmt.Errorf("unknown instruction %T", ins)
		}
	}
	if b.pdf.Err() {
		return fmt.Errorf("pdf rendering: %w", b.pdf.Error())
	}
	return nil
}

func (b *PDFBackend) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *PDFBackend) text(t layout.Text) {
	b.setFont(t.Style)
	b.pdf.SetTextColor(int(t.Style.Color.R), int(t.Style.Color.G), int(t.Style.Color.B))

	value := b.tr(t.Value)
	width := b.pdf.GetStringWidth(value)
	x := t.X
	switch t.Style.Align {
	case layout.AlignRight:
		x -= width
	case layout.AlignCenter:
		x -= width / 2
	}
	b.pdf.Text(x, t.Y, value)

	if t.Style.Link != "" {
		// Clickable box around the rendered run.
		h := t.Style.Size * 0.3528
		b.pdf.LinkString(x, t.Y-h, width, h*1.3, t.Style.Link)
	}
}

func (b *PDFBackend) image(img layout.Image) {
	format, ok := decodableFormat(img.Blob.Data)
	if !ok {
		b.log.Warn("skipping undecodable image",
			zap.String("declared_format", img.Blob.Format),
			zap.Int("bytes", len(img.Blob.Data)))
		return
	}

	b.imageSeq++
	name := fmt.Sprintf("img-%d", b.imageSeq)
	opts := gofpdf.ImageOptions{ImageType: format}
	b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Blob.Data))
	if b.pdf.Err() {
		// Registration failures must not poison the whole document.
		b.log.Warn("image registration failed", zap.Error(b.pdf.Error()))
		b.pdf.ClearError()
		return
	}
	b.pdf.ImageOptions(name, img.X, img.Y, img.W, img.H, false, opts, 0, "")
}

func (b *PDFBackend) table(t layout.Table) {
	b.pdf.SetXY(t.X, t.StartY)
	b.pdf.SetFont(pdfFont, "B", t.FontSize)
	b.pdf.SetFillColor(int(t.HeadFill.R), int(t.HeadFill.G), int(t.HeadFill.B))
	b.pdf.SetTextColor(int(t.HeadColor.R), int(t.HeadColor.G), int(t.HeadColor.B))
	for i, label := range t.Head {
		b.pdf.CellFormat(t.Cols[i].Width, t.HeadH, b.tr(label), "", 0, cellAlign(t.Cols[i].Align), true, 0, "")
	}

	b.pdf.SetFont(pdfFont, "", t.FontSize)
	b.pdf.SetTextColor(0, 0, 0)
	for r, row := range t.Rows {
		y := t.StartY + t.HeadH + float64(r)*t.RowH
		b.pdf.SetXY(t.X, y)
		striped := r%2 == 1
		b.pdf.SetFillColor(240, 242, 246)
		for c, cell := range row {
			b.pdf.CellFormat(t.Cols[c].Width, t.RowH, b.tr(cell), "", 0, cellAlign(t.Cols[c].Align), striped, 0, "")
		}
	}
}

func (b *PDFBackend) setFont(style layout.TextStyle) {
	weight := ""
	if style.Bold {
		weight = "B"
	}
	size := style.Size
	if size == 0 {
		size = 10
	}
	b.pdf.SetFont(pdfFont, weight, size)
}

func cellAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "CM"
	case layout.AlignRight:
		return "RM"
	default:
		return "LM"
	}
}

// decodableFormat sniffs the actual image encoding; the declared
// data-URL format is advisory and sometimes lies.
func decodableFormat(data []byte) (string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	switch strings.ToLower(format) {
	case "png":
		return "PNG", true
	case "jpeg":
		return "JPG", true
	case "gif":
		return "GIF", true
	default:
		return "", false
	}
}
