package label

import (
	"testing"
	"time"

	"github.com/skomura/medlabel/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func validJob() PrintJob {
	return PrintJob{
		PatientName: "田中",
		StartDate:   date(2024, time.January, 1),
		DayCount:    2,
		Timings:     []string{"朝食後", "就寝前"},
		ShowDate:    true,
	}
}

func TestPrintJobValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PrintJob)
		wantCode errors.Code
	}{
		{"valid", func(j *PrintJob) {}, ""},
		{"empty name", func(j *PrintJob) { j.PatientName = "" }, errors.ErrCodeInvalidName},
		{"zero days", func(j *PrintJob) { j.DayCount = 0 }, errors.ErrCodeInvalidDays},
		{"negative days", func(j *PrintJob) { j.DayCount = -3 }, errors.ErrCodeInvalidDays},
		{"no timings", func(j *PrintJob) { j.Timings = nil }, errors.ErrCodeInvalidTiming},
		{"empty timing", func(j *PrintJob) { j.Timings = []string{"朝食後", ""} }, errors.ErrCodeInvalidTiming},
		{"duplicate timing", func(j *PrintJob) { j.Timings = []string{"朝食後", "朝食後"} }, errors.ErrCodeInvalidTiming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(&job)
			err := job.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestPrintJobPageCount(t *testing.T) {
	tests := []struct {
		days    int
		timings int
		want    int
	}{
		{1, 1, 1},
		{2, 2, 4},
		{7, 3, 21},
		{365, 8, 2920},
	}

	for _, tt := range tests {
		job := validJob()
		job.DayCount = tt.days
		job.Timings = job.Timings[:0]
		for i := 0; i < tt.timings; i++ {
			job.Timings = append(job.Timings, StandardTimings[i].Name)
		}
		if got := job.PageCount(); got != tt.want {
			t.Errorf("PageCount(%d days, %d timings) = %d, want %d", tt.days, tt.timings, got, tt.want)
		}
		if got := len(job.Expand()); got != tt.want {
			t.Errorf("len(Expand()) = %d, want %d", got, tt.want)
		}
	}
}

func TestExpandGroupByTiming(t *testing.T) {
	// The default order prints one full strip per timing: all days for
	// 朝食後, then all days for 就寝前.
	job := validJob()
	reqs := job.Expand()

	want := []struct {
		day    int
		timing string
	}{
		{0, "朝食後"},
		{1, "朝食後"},
		{0, "就寝前"},
		{1, "就寝前"},
	}
	if len(reqs) != len(want) {
		t.Fatalf("len(reqs) = %d, want %d", len(reqs), len(want))
	}
	for i, w := range want {
		wantDate := job.StartDate.AddDate(0, 0, w.day)
		if !reqs[i].Date.Equal(wantDate) || reqs[i].Timing != w.timing {
			t.Errorf("reqs[%d] = (%s, %s), want (%s, %s)",
				i, reqs[i].Date.Format("01/02"), reqs[i].Timing, wantDate.Format("01/02"), w.timing)
		}
	}
}

func TestExpandGroupByDay(t *testing.T) {
	job := validJob()
	job.GroupByDay = true
	reqs := job.Expand()

	want := []struct {
		day    int
		timing string
	}{
		{0, "朝食後"},
		{0, "就寝前"},
		{1, "朝食後"},
		{1, "就寝前"},
	}
	for i, w := range want {
		wantDate := job.StartDate.AddDate(0, 0, w.day)
		if !reqs[i].Date.Equal(wantDate) || reqs[i].Timing != w.timing {
			t.Errorf("reqs[%d] = (%s, %s), want (%s, %s)",
				i, reqs[i].Date.Format("01/02"), reqs[i].Timing, wantDate.Format("01/02"), w.timing)
		}
	}
}

func TestExpandOrderingsSameMultiset(t *testing.T) {
	byTiming := validJob()
	byDay := validJob()
	byDay.GroupByDay = true

	count := func(reqs []Request) map[string]int {
		m := make(map[string]int)
		for _, r := range reqs {
			m[r.Date.Format("2006-01-02")+"|"+r.Timing]++
		}
		return m
	}

	a, b := count(byTiming.Expand()), count(byDay.Expand())
	if len(a) != len(b) {
		t.Fatalf("page multisets differ in size: %d vs %d", len(a), len(b))
	}
	for k, n := range a {
		if b[k] != n {
			t.Errorf("page %s: by-timing count %d, by-day count %d", k, n, b[k])
		}
	}
}

func TestExpandCrossesMonthBoundary(t *testing.T) {
	job := validJob()
	job.StartDate = date(2024, time.January, 31)
	job.DayCount = 2
	job.Timings = []string{"朝食後"}

	reqs := job.Expand()
	if got := reqs[1].Date; got.Month() != time.February || got.Day() != 1 {
		t.Errorf("second page date = %s, want 2024-02-01", got.Format("2006-01-02"))
	}
}

func TestExpandCrossesYearBoundary(t *testing.T) {
	job := validJob()
	job.StartDate = date(2023, time.December, 31)
	job.DayCount = 2
	job.Timings = []string{"朝食後"}

	reqs := job.Expand()
	if got := reqs[1].Date; got.Year() != 2024 || got.Month() != time.January || got.Day() != 1 {
		t.Errorf("second page date = %s, want 2024-01-01", got.Format("2006-01-02"))
	}
}

func TestExpandCopiesSharedFields(t *testing.T) {
	job := validJob()
	job.Facility = "ひまわり苑"
	job.PatientNameReading = "たなか"
	job.UseLocalizedScript = true
	job.ShowFacility = true

	for i, req := range job.Expand() {
		if req.Facility != job.Facility || req.PatientName != job.PatientName ||
			req.PatientNameReading != job.PatientNameReading ||
			req.UseLocalizedScript != job.UseLocalizedScript ||
			req.ShowDate != job.ShowDate || req.ShowFacility != job.ShowFacility {
			t.Errorf("reqs[%d] does not carry the job's shared fields: %+v", i, req)
		}
	}
}
