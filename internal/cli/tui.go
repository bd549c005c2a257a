package cli

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skomura/medlabel/pkg/errors"
	"github.com/skomura/medlabel/pkg/patients"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// patientListModel - Interactive patient selection
// =============================================================================

// patientListModel is the bubbletea model for picking a saved patient
// when print runs without --name or --patient.
type patientListModel struct {
	records  []patients.Record
	cursor   int
	selected *patients.Record
	height   int
	offset   int
}

func newPatientListModel(records []patients.Record) patientListModel {
	return patientListModel{records: records, height: 15}
}

func (m patientListModel) Init() tea.Cmd {
	return nil
}

func (m patientListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			rec := m.records[m.cursor]
			m.selected = &rec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m patientListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Patient"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.records) {
		end = len(m.records)
	}
	for i := m.offset; i < end; i++ {
		r := m.records[i]
		line := r.Label()
		if r.NameReading != "" {
			line += "  " + listDimStyle.Render(r.NameReading)
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickPatient runs the interactive picker over the saved list. Outside a
// terminal, or with nothing saved, it fails the same way an empty --name
// would.
func pickPatient(recordsPath string) (patients.Record, error) {
	store, err := patients.NewStore(recordsPath)
	if err != nil {
		return patients.Record{}, err
	}
	records, err := store.List()
	if err != nil {
		return patients.Record{}, err
	}
	if len(records) == 0 || !isTerminal(os.Stdin) {
		return patients.Record{}, errors.New(errors.ErrCodeInvalidName,
			"patient name is required (use --name or --patient)")
	}

	model, err := tea.NewProgram(newPatientListModel(records)).Run()
	if err != nil {
		return patients.Record{}, errors.Wrap(errors.ErrCodeInternal, err, "patient picker")
	}
	m := model.(patientListModel)
	if m.selected == nil {
		return patients.Record{}, errors.New(errors.ErrCodeInvalidName, "no patient selected")
	}
	return *m.selected, nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
