package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skomura/medlabel/pkg/errors"
	"github.com/skomura/medlabel/pkg/label"
)

func testJob() label.PrintJob {
	return label.PrintJob{
		PatientName: "田中",
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		DayCount:    2,
		Timings:     []string{"朝食後", "就寝前"},
		ShowDate:    true,
	}
}

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Options)
		wantCode errors.Code
	}{
		{"valid", func(o *Options) {}, ""},
		{"defaults day count", func(o *Options) { o.Job.DayCount = 0 }, ""},
		{"defaults formats", func(o *Options) { o.Formats = nil }, ""},
		{"empty name", func(o *Options) { o.Job.PatientName = "" }, errors.ErrCodeInvalidName},
		{"bad format", func(o *Options) { o.Formats = []string{"docx"} }, errors.ErrCodeInvalidFormat},
		{"negative preview page", func(o *Options) { o.PreviewPage = -1 }, errors.ErrCodeInvalidInput},
		{"preview page past end", func(o *Options) { o.PreviewPage = 4 }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Job: testJob(), Formats: []string{FormatPDF}}
			tt.mutate(&opts)
			err := opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAndSetDefaultsFillsDefaults(t *testing.T) {
	opts := Options{Job: testJob()}
	opts.Job.DayCount = 0
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Job.DayCount != DefaultDayCount {
		t.Errorf("DayCount = %d, want %d", opts.Job.DayCount, DefaultDayCount)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", opts.Formats)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatPDF, FormatPNG, FormatJSON} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", format, err)
		}
	}
	if err := ValidateFormat("docx"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(docx) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestExecuteJSON(t *testing.T) {
	result, err := quietRunner().Execute(context.Background(), Options{
		Job:     testJob(),
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.RunID == "" {
		t.Error("result has no run ID")
	}
	if result.Stats.PageCount != 4 || len(result.Pages) != 4 {
		t.Errorf("page count = %d (%d pages), want 4", result.Stats.PageCount, len(result.Pages))
	}

	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("no json artifact")
	}
	var doc struct {
		RunID     string `json:"run_id"`
		PageCount int    `json:"page_count"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json artifact is not valid JSON: %v", err)
	}
	if doc.RunID != result.RunID {
		t.Errorf("artifact run_id = %q, want %q", doc.RunID, result.RunID)
	}
	if doc.PageCount != 4 {
		t.Errorf("artifact page_count = %d, want 4", doc.PageCount)
	}
}

func TestExecuteMultipleFormats(t *testing.T) {
	result, err := quietRunner().Execute(context.Background(), Options{
		Job:     testJob(),
		Formats: []string{FormatPDF, FormatPNG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !bytes.HasPrefix(result.Artifacts[FormatPDF], []byte("%PDF-")) {
		t.Error("pdf artifact has no PDF header")
	}
	if !bytes.HasPrefix(result.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG header")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact is empty")
	}
}

func TestExecuteInvalidJob(t *testing.T) {
	job := testJob()
	job.Timings = nil
	_, err := quietRunner().Execute(context.Background(), Options{Job: job})
	if !errors.Is(err, errors.ErrCodeInvalidTiming) {
		t.Errorf("Execute() = %v, want %s", err, errors.ErrCodeInvalidTiming)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Execute(ctx, Options{Job: testJob(), Formats: []string{FormatJSON}})
	if err == nil {
		t.Fatal("Execute() with cancelled context returned nil error")
	}
}
