package label

import (
	"fmt"
	"time"
)

// Weekdays are the weekday labels in Monday-first order, matching the
// layout of Japanese calendars.
var Weekdays = [7]string{"月", "火", "水", "木", "金", "土", "日"}

// Monday-first weekday indexes.
const (
	WeekdaySaturday = 5
	WeekdaySunday   = 6
)

// WeekdayIndex returns the Monday-first weekday index (月=0 … 日=6).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FormatDate renders a date as "2024/01/07 (日)" for CLI display.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%02d/%02d (%s)", t.Year(), t.Month(), t.Day(), Weekdays[WeekdayIndex(t)])
}
