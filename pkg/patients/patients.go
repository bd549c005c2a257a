// Package patients manages the persisted patient-record list.
//
// Records live as a single JSON array at a fixed per-user location
// (~/.medication_labels.json by default). Export and import use exactly
// the same schema, so an exported file round-trips without loss. The
// rendering core never touches this store; the CLI resolves a record
// into a fully-specified print job before the pipeline runs.
package patients

import (
	"sort"
	"strings"
)

// Record is one saved patient.
//
// The JSON field names are the on-disk schema and must not change:
// exported files are exchanged between installations.
type Record struct {
	Name         string   `json:"name"`
	NameReading  string   `json:"nameReading"`
	Facility     string   `json:"facility"`
	Timings      []string `json:"timings"`
	CustomTiming string   `json:"customTiming"`
	Comment      string   `json:"comment"`
}

// sortKey orders records by reading when present, name otherwise, so the
// list reads in kana order even when names are kanji.
func (r Record) sortKey() string {
	if r.NameReading != "" {
		return r.NameReading
	}
	return r.Name
}

// Label returns the record's display label: "name (facility)" or just
// the name when no facility is set.
func (r Record) Label() string {
	if r.Facility != "" {
		return r.Name + " (" + r.Facility + ")"
	}
	return r.Name
}

// Sort orders records in place by reading/name.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.Compare(records[i].sortKey(), records[j].sortKey()) < 0
	})
}
