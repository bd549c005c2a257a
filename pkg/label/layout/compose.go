package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/skomura/medlabel/pkg/label"
)

// Fixed page geometry and placement constants. Distances are mm unless
// noted; font and stroke sizes are pt. The underline drop is a literal
// 10pt from the original layout, not a normalized mm value.
const (
	PageWidth  = 29.0
	PageHeight = 52.0

	facilitySize = 8.0
	facilityDrop = 4.0

	nameDrop      = 6.0
	nameSizeLarge = 13.0
	nameSizeSmall = 11.0
	nameMaxRunes  = 6

	ruleInset       = 2.0
	ruleGap         = 1.0
	ruleGapWithDate = 2.0

	dateSize    = 23.0
	dateDrop    = 11.0
	weekdaySize = 13.0
	weekdayDrop = 19.0

	boxBottom  = 1.5
	boxReserve = 24.0

	underlineDropPt = 10.0
	strokeWidth     = 0.5

	// MMPerPt converts point-denominated offsets into page millimeters.
	MMPerPt = 25.4 / 72.0
)

// NameFontSize returns the patient-name font size in points. Names over
// six characters drop to the smaller size; length is in runes, not bytes.
func NameFontSize(name string) float64 {
	if utf8.RuneCountInString(name) <= nameMaxRunes {
		return nameSizeLarge
	}
	return nameSizeSmall
}

// TimingFontSize returns the timing-text font size in points, chosen by
// the rune length of the display text (post-localization).
func TimingFontSize(display string) float64 {
	switch n := utf8.RuneCountInString(display); {
	case n <= 3:
		return 26
	case n <= 5:
		return 20
	case n <= 7:
		return 16
	default:
		return 14
	}
}

// WeekdayColor returns the display color for a Monday-first weekday
// index: Sunday red, Saturday blue, everything else black. The same rule
// applies anywhere a date or weekday is shown, including the calendar.
func WeekdayColor(idx int) Color {
	switch idx {
	case label.WeekdaySunday:
		return Red
	case label.WeekdaySaturday:
		return Blue
	default:
		return Black
	}
}

// Compose renders one request into a page of drawing primitives.
//
// A vertical cursor starts at the top edge and advances downward through
// the facility line, the name line, and the separator rule. The date
// block hangs off the rule at fixed offsets, and the timing text is
// centered in whatever vertical box remains above the bottom margin.
func Compose(req label.Request) Page {
	const w, h = PageWidth, PageHeight
	cx := w / 2

	ops := []Op{
		// Fresh white background; also resets any color state in sinks
		// that persist fills across pages.
		Rect{X: 0, Y: 0, W: w, H: h, Fill: White},
	}

	cursor := h
	if req.ShowFacility && req.Facility != "" {
		cursor -= facilityDrop
		ops = append(ops, Text{Value: req.Facility, X: cx, Y: cursor, Size: facilitySize, Color: Black})
	}

	cursor -= nameDrop
	ops = append(ops, Text{
		Value: fmt.Sprintf("%s 様", req.PatientName),
		X:     cx,
		Y:     cursor,
		Size:  NameFontSize(req.PatientName),
		Color: Black,
	})

	lineY := cursor - ruleGap
	if req.ShowDate {
		lineY = cursor - ruleGapWithDate
	}
	ops = append(ops, Line{X1: ruleInset, Y1: lineY, X2: w - ruleInset, Y2: lineY, Width: strokeWidth, Color: Black})

	boxTop := lineY
	if req.ShowDate {
		weekday := label.WeekdayIndex(req.Date)
		color := WeekdayColor(weekday)
		ops = append(ops,
			Text{
				Value: fmt.Sprintf("%d/%d", req.Date.Month(), req.Date.Day()),
				X:     cx,
				Y:     lineY - dateDrop,
				Size:  dateSize,
				Color: color,
			},
			Text{
				Value: fmt.Sprintf("(%s)", label.Weekdays[weekday]),
				X:     cx,
				Y:     lineY - weekdayDrop,
				Size:  weekdaySize,
				Color: color,
			},
		)
		boxTop = lineY - boxReserve
	}

	display := label.DisplayText(req.Timing, req.UseLocalizedScript)
	size := TimingFontSize(display)
	boxCenterY := (boxTop + boxBottom) / 2

	ops = append(ops,
		Text{Value: display, X: cx, Y: boxCenterY, Size: size, Color: Black},
		Underline{
			Value:   display,
			Size:    size,
			CenterX: cx,
			Y:       boxCenterY - underlineDropPt*MMPerPt,
			Width:   strokeWidth,
			Color:   Black,
		},
	)

	return Page{Width: w, Height: h, Ops: ops}
}
