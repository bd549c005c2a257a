package label

import (
	"time"

	"github.com/skomura/medlabel/pkg/errors"
)

// PrintJob is the fully-resolved set of parameters for one label batch.
// It is constructed transiently from user input, expanded into per-page
// requests, and discarded once the output document is finalized.
type PrintJob struct {
	Facility           string
	PatientName        string
	PatientNameReading string
	StartDate          time.Time
	DayCount           int
	Timings            []string

	// GroupByDay selects the page order: false produces all days for the
	// first timing, then all days for the next (one strip per timing);
	// true produces all timings for day 0, then day 1 (one set per day).
	GroupByDay bool

	UseLocalizedScript bool
	ShowDate           bool
	ShowFacility       bool
}

// Request carries one page's worth of input to the layout engine.
// Immutable per page; Expand constructs a fresh value for each page.
type Request struct {
	Facility           string
	PatientName        string
	PatientNameReading string // carried for future use, never drawn
	Date               time.Time
	Timing             string
	UseLocalizedScript bool
	ShowDate           bool
	ShowFacility       bool
}

// Validate checks the preconditions the rendering core assumes.
// The core itself never re-checks these.
func (j PrintJob) Validate() error {
	if j.PatientName == "" {
		return errors.New(errors.ErrCodeInvalidName, "patient name is required")
	}
	if j.DayCount < 1 {
		return errors.New(errors.ErrCodeInvalidDays, "day count must be at least 1, got %d", j.DayCount)
	}
	if len(j.Timings) == 0 {
		return errors.New(errors.ErrCodeInvalidTiming, "at least one timing is required")
	}
	seen := make(map[string]bool, len(j.Timings))
	for _, t := range j.Timings {
		if t == "" {
			return errors.New(errors.ErrCodeInvalidTiming, "timings must be non-empty")
		}
		if seen[t] {
			return errors.New(errors.ErrCodeInvalidTiming, "duplicate timing %q", t)
		}
		seen[t] = true
	}
	return nil
}

// PageCount returns the number of pages Expand will produce.
func (j PrintJob) PageCount() int {
	return j.DayCount * len(j.Timings)
}

// Expand enumerates the job's (date, timing) pairs in page order.
//
// Both orderings walk the same dayCount × len(timings) grid; GroupByDay
// only decides which index varies fastest, so the two modes emit the
// same multiset of pages.
func (j PrintJob) Expand() []Request {
	nd, nt := j.DayCount, len(j.Timings)
	reqs := make([]Request, 0, nd*nt)
	for i := 0; i < nd*nt; i++ {
		var day, timing int
		if j.GroupByDay {
			day, timing = i/nt, i%nt
		} else {
			timing, day = i/nd, i%nd
		}
		reqs = append(reqs, Request{
			Facility:           j.Facility,
			PatientName:        j.PatientName,
			PatientNameReading: j.PatientNameReading,
			Date:               j.StartDate.AddDate(0, 0, day),
			Timing:             j.Timings[timing],
			UseLocalizedScript: j.UseLocalizedScript,
			ShowDate:           j.ShowDate,
			ShowFacility:       j.ShowFacility,
		})
	}
	return reqs
}
