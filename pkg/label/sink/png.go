package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/skomura/medlabel/pkg/fonts"
	"github.com/skomura/medlabel/pkg/label/layout"
)

// DefaultDPI is the preview raster resolution.
const DefaultDPI = 300.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	font fonts.Font
	dpi  float64
}

// WithPNGFont sets the resolved rendering font. Without it glyphs come
// from the raster context's built-in face and CJK text will not display.
func WithPNGFont(f fonts.Font) PNGOption {
	return func(r *pngRenderer) { r.font = f }
}

// WithDPI sets the raster resolution (default 300).
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// RenderPNG rasterizes a single composed page, for previewing a label
// before committing a full batch to the printer.
func RenderPNG(page layout.Page, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}

	k := r.dpi / 25.4 // px per mm
	dc := gg.NewContext(int(page.Width*k+0.5), int(page.Height*k+0.5))

	setFace := func(sizePt float64) {
		if r.font.Path == "" {
			return // degraded mode: keep the context's default face
		}
		// LoadFontFace failure leaves the previous face in place, which
		// matches the degraded-mode contract.
		_ = dc.LoadFontFace(r.font.Path, sizePt*r.dpi/72)
	}

	h := page.Height
	for _, op := range page.Ops {
		switch op := op.(type) {
		case layout.Rect:
			cr, cg, cb := op.Fill.RGB()
			dc.SetRGB255(cr, cg, cb)
			dc.DrawRectangle(op.X*k, (h-(op.Y+op.H))*k, op.W*k, op.H*k)
			dc.Fill()
		case layout.Text:
			setFace(op.Size)
			cr, cg, cb := op.Color.RGB()
			dc.SetRGB255(cr, cg, cb)
			dc.DrawStringAnchored(op.Value, op.X*k, (h-op.Y)*k, 0.5, 0)
		case layout.Line:
			cr, cg, cb := op.Color.RGB()
			dc.SetRGB255(cr, cg, cb)
			dc.SetLineWidth(op.Width * layout.MMPerPt * k)
			dc.DrawLine(op.X1*k, (h-op.Y1)*k, op.X2*k, (h-op.Y2)*k)
			dc.Stroke()
		case layout.Underline:
			setFace(op.Size)
			w, _ := dc.MeasureString(op.Value)
			cr, cg, cb := op.Color.RGB()
			dc.SetRGB255(cr, cg, cb)
			dc.SetLineWidth(op.Width * layout.MMPerPt * k)
			y := (h - op.Y) * k
			dc.DrawLine(op.CenterX*k-w/2, y, op.CenterX*k+w/2, y)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
