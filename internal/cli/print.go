package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skomura/medlabel/pkg/errors"
	"github.com/skomura/medlabel/pkg/label"
	"github.com/skomura/medlabel/pkg/patients"
	"github.com/skomura/medlabel/pkg/pipeline"
)

// printOpts holds the command-line flags for the print command.
type printOpts struct {
	patient    string // saved record to load
	name       string // patient name (overrides record)
	reading    string // name reading, informational
	facility   string // facility name
	start      string // start date, YYYY-MM-DD or YYYY/MM/DD
	days       int    // number of days
	timings    string // comma-separated standard timings
	custom     string // free-text custom timings
	byDay      bool   // group pages by day instead of by timing
	kana       bool   // localized-script timing text
	noDate     bool   // omit the date block
	noFacility bool   // omit the facility line
	output     string // output file (single format) or base path
	formats    []string
	page       int     // page index for png preview
	dpi        float64 // png resolution
	font       string  // font file override
	open       bool    // open the document when done
}

// newPrintCmd creates the print command, the tool's main entry point:
// it resolves a print job from flags, config, and the saved patient
// list, runs the pipeline, and writes the output document.
func newPrintCmd() *cobra.Command {
	var formatsStr string
	opts := printOpts{days: -1}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Generate a medication label document",
		Long: `Print expands a dosing schedule into one 29×52mm page per (day, timing)
pair and writes a multi-page PDF.

The patient can come from flags (--name) or from the saved list
(--patient). Run interactively without either to pick from the list.`,
		Example: `  medlabel print --name 田中 --timing 朝食後,就寝前 --days 7
  medlabel print --patient 田中 --start 2024-01-01 --by-day --kana
  medlabel print --name 山田 --custom "疼痛時, 頓服" --format pdf,json -o labels`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runPrint(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.patient, "patient", "p", "", "load a saved patient record by name")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "patient name")
	cmd.Flags().StringVar(&opts.reading, "reading", "", "patient name reading (kana)")
	cmd.Flags().StringVar(&opts.facility, "facility", "", "facility name")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "start date (default today)")
	cmd.Flags().IntVarP(&opts.days, "days", "d", -1, "number of days (default 7)")
	cmd.Flags().StringVarP(&opts.timings, "timing", "t", "", "standard timings, comma-separated")
	cmd.Flags().StringVar(&opts.custom, "custom", "", "custom timings, comma-separated free text")
	cmd.Flags().BoolVar(&opts.byDay, "by-day", false, "group pages by day (one set per day) instead of by timing")
	cmd.Flags().BoolVar(&opts.kana, "kana", false, "print timings in kana instead of kanji")
	cmd.Flags().BoolVar(&opts.noDate, "no-date", false, "omit the date block")
	cmd.Flags().BoolVar(&opts.noFacility, "no-facility", false, "omit the facility line")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "page index for the png preview")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "png raster resolution")
	cmd.Flags().StringVar(&opts.font, "font", "", "font file override")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the document when done")

	return cmd
}

func runPrint(ctx context.Context, opts *printOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	job, err := resolveJob(opts, cfg)
	if err != nil {
		return err
	}

	fontPath := opts.font
	if fontPath == "" {
		fontPath = cfg.FontPath
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Job:         job,
		Formats:     opts.formats,
		FontPath:    fontPath,
		PreviewPage: opts.page,
		DPI:         opts.dpi,
	})
	if err != nil {
		return err
	}
	if result.Font.Degraded {
		printWarning("no Japanese font found; text will render incorrectly")
	}

	var primary string
	for _, format := range opts.formats {
		path, err := outputPath(opts.output, cfg.OutputDir, job, format, len(opts.formats) > 1)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		if primary == "" {
			primary = path
		}
		printSuccess("Wrote %s", path)
	}
	printDetail("%s から %d日分 × %d回", label.FormatDate(job.StartDate), job.DayCount, len(job.Timings))
	prog.done(fmt.Sprintf("Generated %d pages", result.Stats.PageCount))

	if opts.open && primary != "" {
		if err := openFile(primary); err != nil {
			printWarning("could not open %s: %v", primary, err)
		}
	}
	return nil
}

// resolveJob merges flags, the loaded record, and config defaults into a
// validated print job. Flags beat the record, the record beats config.
func resolveJob(opts *printOpts, cfg Config) (label.PrintJob, error) {
	var rec patients.Record
	if opts.patient != "" {
		store, err := patients.NewStore(cfg.RecordsPath)
		if err != nil {
			return label.PrintJob{}, err
		}
		if rec, err = store.Get(opts.patient); err != nil {
			return label.PrintJob{}, err
		}
	} else if opts.name == "" {
		picked, err := pickPatient(cfg.RecordsPath)
		if err != nil {
			return label.PrintJob{}, err
		}
		rec = picked
	}

	name := opts.name
	if name == "" {
		name = rec.Name
	}
	reading := opts.reading
	if reading == "" {
		reading = rec.NameReading
	}
	facility := opts.facility
	if facility == "" {
		facility = rec.Facility
	}
	if facility == "" {
		facility = cfg.Facility
	}

	timings, err := resolveTimings(opts, rec)
	if err != nil {
		return label.PrintJob{}, err
	}

	start, err := parseStartDate(opts.start)
	if err != nil {
		return label.PrintJob{}, err
	}

	days := opts.days
	if days < 0 {
		days = cfg.Days
	}
	if days <= 0 {
		days = pipeline.DefaultDayCount
	}

	job := label.PrintJob{
		Facility:           facility,
		PatientName:        name,
		PatientNameReading: reading,
		StartDate:          start,
		DayCount:           days,
		Timings:            timings,
		GroupByDay:         opts.byDay,
		UseLocalizedScript: opts.kana,
		ShowDate:           !opts.noDate,
		ShowFacility:       !opts.noFacility,
	}
	return job, job.Validate()
}

// resolveTimings builds the ordered timing list: explicit flags win,
// then the record's saved selection, then the standard defaults.
// Duplicates are dropped, keeping first occurrence order.
func resolveTimings(opts *printOpts, rec patients.Record) ([]string, error) {
	var timings []string
	for _, t := range strings.Split(opts.timings, ",") {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if !label.IsStandardTiming(t) {
			return nil, errors.New(errors.ErrCodeInvalidTiming,
				"unknown timing %q (use --custom for free-text timings)", t)
		}
		timings = append(timings, t)
	}
	timings = append(timings, label.SplitCustom(opts.custom)...)

	if len(timings) == 0 {
		timings = append(timings, rec.Timings...)
		timings = append(timings, label.SplitCustom(rec.CustomTiming)...)
	}
	if len(timings) == 0 {
		timings = label.DefaultTimings()
	}

	return dedupe(timings), nil
}

// dedupe drops repeated timings, keeping first occurrence order.
func dedupe(timings []string) []string {
	seen := make(map[string]bool, len(timings))
	out := timings[:0]
	for _, t := range timings {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// parseStartDate parses the --start flag. Empty means today.
func parseStartDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate,
		"invalid start date %q (expected YYYY-MM-DD)", s)
}

// outputPath decides where one artifact lands. With --output set it is
// used directly (single format) or as a base path (multiple formats);
// otherwise a fresh file is created under the configured output
// directory, falling back to the system temp directory the way the
// original one-shot flow did.
func outputPath(output, outputDir string, job label.PrintJob, format string, multi bool) (string, error) {
	if output != "" {
		if multi || !strings.Contains(filepath.Base(output), ".") {
			return output + "." + format, nil
		}
		return output, nil
	}
	dir := outputDir
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, fmt.Sprintf("%s-%s-*.%s", appName, job.StartDate.Format("20060102"), format))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output file")
	}
	path := f.Name()
	f.Close()
	return path, nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["pdf"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	return strings.Split(s, ",")
}
