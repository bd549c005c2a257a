package sink

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/skomura/medlabel/pkg/fonts"
	"github.com/skomura/medlabel/pkg/label/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	font  fonts.Font
	title string
}

// WithPDFFont sets the resolved rendering font. Without it the document
// uses the Helvetica fallback and CJK text will render garbled.
func WithPDFFont(f fonts.Font) PDFOption {
	return func(r *pdfRenderer) { r.font = f }
}

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// RenderPDF renders the pages as one multi-page PDF document, one fixed
// 29×52mm page per composed label. Fonts that cannot be embedded (.ttc
// collections, or the degraded fallback) drop to the built-in Helvetica.
func RenderPDF(pages []layout.Page, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{
		font:  fonts.Font{Name: fonts.FallbackName, Degraded: true},
		title: "服薬ラベル",
	}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(r.title, true)

	fontName := fonts.FallbackName
	if r.font.Embeddable() {
		pdf.AddUTF8Font(r.font.Name, "", r.font.Path)
		fontName = r.font.Name
	}

	for _, page := range pages {
		pdf.AddPage()
		drawPDFPage(pdf, fontName, page)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPDFPage draws one page's ops, flipping the layout engine's
// bottom-left y-up coordinates into fpdf's top-left y-down space.
func drawPDFPage(pdf *fpdf.Fpdf, fontName string, page layout.Page) {
	h := page.Height
	for _, op := range page.Ops {
		switch op := op.(type) {
		case layout.Rect:
			cr, cg, cb := op.Fill.RGB()
			pdf.SetFillColor(cr, cg, cb)
			pdf.Rect(op.X, h-(op.Y+op.H), op.W, op.H, "F")
		case layout.Text:
			cr, cg, cb := op.Color.RGB()
			pdf.SetTextColor(cr, cg, cb)
			pdf.SetFont(fontName, "", op.Size)
			w := pdf.GetStringWidth(op.Value)
			pdf.Text(op.X-w/2, h-op.Y, op.Value)
		case layout.Line:
			cr, cg, cb := op.Color.RGB()
			pdf.SetDrawColor(cr, cg, cb)
			pdf.SetLineWidth(op.Width * layout.MMPerPt)
			pdf.Line(op.X1, h-op.Y1, op.X2, h-op.Y2)
		case layout.Underline:
			pdf.SetFont(fontName, "", op.Size)
			w := pdf.GetStringWidth(op.Value)
			cr, cg, cb := op.Color.RGB()
			pdf.SetDrawColor(cr, cg, cb)
			pdf.SetLineWidth(op.Width * layout.MMPerPt)
			pdf.Line(op.CenterX-w/2, h-op.Y, op.CenterX+w/2, h-op.Y)
		}
	}
}
