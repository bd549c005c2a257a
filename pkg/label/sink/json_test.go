package sink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/skomura/medlabel/pkg/label"
	"github.com/skomura/medlabel/pkg/label/layout"
)

func composePages(t *testing.T, job label.PrintJob) []layout.Page {
	t.Helper()
	reqs := job.Expand()
	pages := make([]layout.Page, len(reqs))
	for i, req := range reqs {
		pages[i] = layout.Compose(req)
	}
	return pages
}

func testJob() label.PrintJob {
	return label.PrintJob{
		Facility:     "ひまわり苑",
		PatientName:  "田中",
		StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		DayCount:     2,
		Timings:      []string{"朝食後", "就寝前"},
		ShowDate:     true,
		ShowFacility: true,
	}
}

func TestRenderJSON(t *testing.T) {
	pages := composePages(t, testJob())

	data, err := RenderJSON(pages, WithJSONRunID("run-123"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var doc struct {
		RunID     string  `json:"run_id"`
		Width     float64 `json:"width"`
		Height    float64 `json:"height"`
		PageCount int     `json:"page_count"`
		Pages     []struct {
			Index int `json:"index"`
			Ops   []struct {
				Kind  string  `json:"kind"`
				Value string  `json:"value"`
				Y     float64 `json:"y"`
				Color string  `json:"color"`
			} `json:"ops"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.RunID != "run-123" {
		t.Errorf("run_id = %q, want run-123", doc.RunID)
	}
	if doc.Width != 29 || doc.Height != 52 {
		t.Errorf("page size = %vx%v, want 29x52", doc.Width, doc.Height)
	}
	if doc.PageCount != 4 || len(doc.Pages) != 4 {
		t.Fatalf("page_count = %d with %d pages, want 4", doc.PageCount, len(doc.Pages))
	}

	// Default ordering groups by timing: both 朝食後 days first.
	wantTimings := []string{"朝食後", "朝食後", "就寝前", "就寝前"}
	for i, page := range doc.Pages {
		if page.Index != i {
			t.Errorf("pages[%d].index = %d", i, page.Index)
		}
		found := false
		for _, op := range page.Ops {
			if op.Kind == "text" && op.Value == wantTimings[i] {
				found = true
			}
		}
		if !found {
			t.Errorf("page %d: timing text %q not found", i, wantTimings[i])
		}
	}

	// Every op kind the layout engine emits survives the flattening.
	kinds := make(map[string]bool)
	for _, op := range doc.Pages[0].Ops {
		kinds[op.Kind] = true
	}
	for _, kind := range []string{"rect", "text", "line", "underline"} {
		if !kinds[kind] {
			t.Errorf("page 0 has no %q op", kind)
		}
	}
}

func TestRenderJSONSundayColor(t *testing.T) {
	job := testJob()
	job.StartDate = time.Date(2024, time.January, 7, 0, 0, 0, 0, time.Local)
	job.DayCount = 1
	job.Timings = []string{"朝食後"}
	pages := composePages(t, job)

	data, err := RenderJSON(pages)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var doc struct {
		Pages []struct {
			Ops []struct {
				Kind  string `json:"kind"`
				Value string `json:"value"`
				Color string `json:"color"`
			} `json:"ops"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	for _, op := range doc.Pages[0].Ops {
		if op.Kind == "text" && op.Value == "(日)" {
			if op.Color != "red" {
				t.Errorf("(日) color = %q, want red", op.Color)
			}
			return
		}
	}
	t.Error("no (日) weekday text on page")
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(nil)
	if err != nil {
		t.Fatalf("RenderJSON(nil) error: %v", err)
	}
	var doc struct {
		PageCount int `json:"page_count"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.PageCount != 0 {
		t.Errorf("page_count = %d, want 0", doc.PageCount)
	}
}
