package layout

// Color identifies one of the fixed drawing colors.
type Color int

// Drawing colors. The weekday rule only ever needs these four.
const (
	Black Color = iota
	White
	Red
	Blue
)

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "black"
	}
}

// RGB returns the color's 8-bit RGB components.
func (c Color) RGB() (r, g, b int) {
	switch c {
	case White:
		return 255, 255, 255
	case Red:
		return 255, 0, 0
	case Blue:
		return 0, 0, 255
	default:
		return 0, 0, 0
	}
}

// Op is one drawing primitive. Ops are drawn in slice order.
type Op interface {
	op()
}

// Text draws a string centered horizontally at X with its baseline at Y.
type Text struct {
	Value string
	X, Y  float64 // mm
	Size  float64 // pt
	Color Color
}

// Line draws a stroked segment.
type Line struct {
	X1, Y1 float64 // mm
	X2, Y2 float64 // mm
	Width  float64 // pt
	Color  Color
}

// Rect draws a filled rectangle anchored at its bottom-left corner.
type Rect struct {
	X, Y, W, H float64 // mm
	Fill       Color
}

// Underline draws a horizontal rule spanning the rendered width of Value
// at font size Size, centered under CenterX. The width depends on font
// metrics, so the measurement is deferred to the sink.
type Underline struct {
	Value   string
	Size    float64 // pt, measurement size
	CenterX float64 // mm
	Y       float64 // mm
	Width   float64 // pt, stroke width
	Color   Color
}

func (Text) op()      {}
func (Line) op()      {}
func (Rect) op()      {}
func (Underline) op() {}

// Page is one composed label of fixed physical size.
type Page struct {
	Width  float64 // mm
	Height float64 // mm
	Ops    []Op
}

// Texts returns the page's text ops in draw order.
func (p Page) Texts() []Text {
	var out []Text
	for _, op := range p.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}
