package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skomura/medlabel/pkg/errors"
	"github.com/skomura/medlabel/pkg/label"
)

// newCalendarCmd creates the calendar command, a terminal stand-in for
// the date-picker popup: a Monday-first month grid with the same weekday
// coloring as the labels (Saturday blue, Sunday red).
func newCalendarCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month calendar for picking a start date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if len(args) == 1 {
				t, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidDate, "invalid month %q (expected YYYY-MM)", args[0])
				}
				start = t
			}
			for i := 0; i < months; i++ {
				fmt.Print(renderMonth(start.Year(), start.Month(), time.Now()))
				if i < months-1 {
					fmt.Println()
				}
				start = start.AddDate(0, 1, 0)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 1, "number of months to show")

	return cmd
}

// weekdayStyle returns the terminal style for a Monday-first weekday
// column, mirroring the label color rule.
func weekdayStyle(idx int) func(...string) string {
	switch idx {
	case label.WeekdaySunday:
		return styleSunday.Render
	case label.WeekdaySaturday:
		return styleSatur.Render
	default:
		return styleWeekday.Render
	}
}

// renderMonth renders one Monday-first month grid. Today is highlighted
// when it falls inside the month.
func renderMonth(year int, month time.Month, today time.Time) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("%d年 %d月", year, month)))
	b.WriteString("\n")
	for i, wd := range label.Weekdays {
		b.WriteString(weekdayStyle(i)(fmt.Sprintf("%3s", wd)))
	}
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	col := 0
	for ; col < label.WeekdayIndex(first); col++ {
		b.WriteString("   ")
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%3d", day)
		if year == today.Year() && month == today.Month() && day == today.Day() {
			cell = " " + styleToday.Render(fmt.Sprintf("%2d", day))
		} else {
			cell = weekdayStyle(col)(cell)
		}
		b.WriteString(cell)
		if col = (col + 1) % 7; col == 0 {
			b.WriteString("\n")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
