// Package pipeline provides the core label-generation pipeline.
//
// This package implements the expand → compose → render flow between the
// CLI and the rendering sinks. Centralizing it keeps validation,
// font resolution, and per-stage logging in one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Expand: enumerate the job's (date, timing) pairs in page order
//  2. Compose: run the layout engine once per pair
//  3. Render: encode the composed pages in the requested formats
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Job:     job,
//	    Formats: []string{pipeline.FormatPDF},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	pdf := result.Artifacts[pipeline.FormatPDF]
package pipeline

import (
	"time"

	"github.com/skomura/medlabel/pkg/errors"
	"github.com/skomura/medlabel/pkg/fonts"
	"github.com/skomura/medlabel/pkg/label"
	"github.com/skomura/medlabel/pkg/label/layout"
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// DefaultDayCount is the usual prescription length used when the caller
// leaves the day count unset.
const DefaultDayCount = 7

// Options contains all configuration for one pipeline run.
type Options struct {
	// Job is the fully-resolved print job.
	Job label.PrintJob

	// Formats selects the outputs to render (default: pdf).
	Formats []string

	// FontPath overrides font resolution; empty means search the fixed
	// list and the system font directories.
	FontPath string

	// PreviewPage is the page index rasterized by the png format.
	PreviewPage int

	// DPI is the png raster resolution (default sink.DefaultDPI).
	DPI float64

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// The precondition checks for the rendering core happen here, before
// the core ever runs.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Job.DayCount == 0 {
		o.Job.DayCount = DefaultDayCount
	}
	if err := o.Job.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PreviewPage < 0 || o.PreviewPage >= o.Job.PageCount() {
		return errors.New(errors.ErrCodeInvalidInput,
			"preview page %d out of range (job has %d pages)", o.PreviewPage, o.Job.PageCount())
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: pdf, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and the JSON artifact.
	RunID string

	// Font is the resolved rendering font; Font.Degraded marks the
	// Helvetica fallback.
	Font fonts.Font

	// Pages are the composed layouts, in page order.
	Pages []layout.Page

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount   int
	ComposeTime time.Duration
	RenderTime  time.Duration
}
