// Package label defines the medication-label domain model.
//
// A [PrintJob] captures everything needed to produce one batch of labels
// for a patient: identity, date range, dosing timings, and display
// toggles. [PrintJob.Expand] turns a job into the ordered sequence of
// per-page [Request] values that the layout engine consumes, one page per
// (date, timing) pair.
//
// The package also carries the standard dosing-timing vocabulary, the
// kana substitution table used by the localized-script display mode, and
// the weekday helpers shared by the layout engine and the CLI calendar.
package label
