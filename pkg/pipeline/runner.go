package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/skomura/medlabel/pkg/fonts"
	"github.com/skomura/medlabel/pkg/label/layout"
	"github.com/skomura/medlabel/pkg/label/sink"
)

// Runner executes the label pipeline. It is stateless apart from its
// logger; one Runner can serve any number of independent runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete expand → compose → render pipeline.
//
// The run is a pure single-pass transform: it either returns a finished
// result or an error, never a partial document. Font absence is not an
// error; the result carries the degraded flag and a warning is logged.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID)

	result.Font = fonts.Resolve(opts.FontPath)
	if result.Font.Degraded {
		logger.Warn("no CJK font found; falling back to Helvetica, Japanese text will render incorrectly")
	} else {
		logger.Debug("resolved font", "path", result.Font.Path)
	}

	composeStart := time.Now()
	requests := opts.Job.Expand()
	result.Pages = make([]layout.Page, len(requests))
	for i, req := range requests {
		result.Pages[i] = layout.Compose(req)
	}
	result.Stats.PageCount = len(result.Pages)
	result.Stats.ComposeTime = time.Since(composeStart)

	logger.Info("composed pages",
		"pages", result.Stats.PageCount,
		"days", opts.Job.DayCount,
		"timings", len(opts.Job.Timings),
		"duration", result.Stats.ComposeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.render(format, opts, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) render(format string, opts Options, result *Result) ([]byte, error) {
	switch format {
	case FormatPDF:
		return sink.RenderPDF(result.Pages, sink.WithPDFFont(result.Font))
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGFont(result.Font)}
		if opts.DPI > 0 {
			pngOpts = append(pngOpts, sink.WithDPI(opts.DPI))
		}
		return sink.RenderPNG(result.Pages[opts.PreviewPage], pngOpts...)
	case FormatJSON:
		return sink.RenderJSON(result.Pages, sink.WithJSONRunID(result.RunID))
	}
	// ValidateAndSetDefaults rejects unknown formats before we get here.
	return nil, fmt.Errorf("unknown format %q", format)
}
