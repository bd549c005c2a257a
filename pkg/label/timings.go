package label

import "strings"

// Timing is one entry of the standard dosing vocabulary.
type Timing struct {
	Name    string
	Default bool // checked by default in the original form
}

// StandardTimings is the fixed dosing vocabulary, in form order.
// The three after-meal timings are the usual prescription and default on.
var StandardTimings = []Timing{
	{Name: "朝食前"},
	{Name: "昼食前"},
	{Name: "夕食前"},
	{Name: "就寝前"},
	{Name: "朝食後", Default: true},
	{Name: "昼食後", Default: true},
	{Name: "夕食後", Default: true},
	{Name: "起床時"},
}

// DefaultTimings returns the names of the default-on standard timings.
func DefaultTimings() []string {
	var names []string
	for _, t := range StandardTimings {
		if t.Default {
			names = append(names, t.Name)
		}
	}
	return names
}

// IsStandardTiming reports whether name is in the standard vocabulary.
func IsStandardTiming(name string) bool {
	for _, t := range StandardTimings {
		if t.Name == name {
			return true
		}
	}
	return false
}

// kanaTimings maps each standard timing to its simplified kana form used
// by the localized-script display mode. New vocabulary goes here, not in
// the layout engine.
var kanaTimings = map[string]string{
	"朝食後": "あさ",
	"昼食後": "ひる",
	"夕食後": "ゆう",
	"朝食前": "あさ前",
	"昼食前": "ひる前",
	"夕食前": "ゆう前",
	"就寝前": "ねるまえ",
	"起床時": "おきぬけ",
}

// DisplayText returns the text to draw for a timing. With localized
// script enabled, mapped timings render in their kana form; anything
// without an entry passes through unchanged.
func DisplayText(timing string, localized bool) string {
	if localized {
		if kana, ok := kanaTimings[timing]; ok {
			return kana
		}
	}
	return timing
}

// SplitCustom splits a free-text custom-timing entry on ASCII and
// full-width commas, trimming whitespace and discarding empty entries.
func SplitCustom(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、' || r == '，'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
