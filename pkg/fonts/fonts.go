// Package fonts resolves a CJK-capable font for label rendering.
//
// Resolution happens once during initialization and the result is
// injected into the render sinks; nothing in this package mutates global
// state. A fixed list of well-known file paths is checked first, then a
// system-wide lookup of known family names. When nothing suitable turns
// up the sinks fall back to Helvetica: the run still succeeds, but
// Japanese text will render garbled. That is a documented degraded mode,
// not an error.
package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
)

// FallbackName is the Latin-only font used when no CJK font is found.
const FallbackName = "Helvetica"

// labelFontName is the logical name sinks register the resolved font as.
const labelFontName = "LabelFont"

// SearchPaths are checked in order before any system lookup. The list
// covers the usual Noto/Takao install locations on Linux plus the stock
// Japanese fonts on macOS and Windows.
var SearchPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
	"/usr/share/fonts/truetype/takao-gothic/TakaoPGothic.ttf",
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:/Windows/Fonts/msgothic.ttc",
	"C:/Windows/Fonts/meiryo.ttc",
}

// families are the family names tried via system font lookup when none
// of the fixed paths exist.
var families = []string{
	"NotoSansCJKjp-Regular",
	"NotoSansCJK-Regular",
	"NotoSansJP-Regular",
	"TakaoPGothic",
	"IPAGothic",
	"Arial Unicode",
}

// Font is a resolved rendering font.
type Font struct {
	Name string // logical name for sink registration
	Path string // font file path; empty in degraded mode
	// Degraded marks the Helvetica fallback: rendering proceeds but CJK
	// glyphs will not display correctly.
	Degraded bool
}

// Embeddable reports whether the font file can be embedded in a PDF.
// TrueType collections (.ttc) cannot; standalone .ttf/.otf files can.
func (f Font) Embeddable() bool {
	if f.Degraded || f.Path == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// Resolve finds a rendering font. A non-empty override wins if the file
// exists; otherwise the fixed search list is scanned, then the system
// font directories. Resolve never fails — absence degrades to the
// Helvetica fallback.
func Resolve(override string) Font {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return Font{Name: labelFontName, Path: override}
		}
	}
	for _, path := range SearchPaths {
		if _, err := os.Stat(path); err == nil {
			return Font{Name: labelFontName, Path: path}
		}
	}
	for _, family := range families {
		if path, err := findfont.Find(family + ".ttf"); err == nil {
			return Font{Name: labelFontName, Path: path}
		}
	}
	return Font{Name: FallbackName, Degraded: true}
}
