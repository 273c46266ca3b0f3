package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateConfirm
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	tracker *tracker.Service

	state      importState
	filePicker filepicker.Model
	path       string
	form       *huh.Form
	distribute *bool
	spinner    spinner.Model

	skipped list.Model
	status  string
	err     error
}

func NewImportModel(svc *tracker.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		tracker:    svc,
		filePicker: fp,
		distribute: new(bool),
		spinner:    s,
	}
}

func (m ImportModel) Title() string { return "Import Loans" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateConfirm:
		return "Navigate form | Esc: pick another file"
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: import another file"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.err = nil
		m.status = importStatus(msg.summary)
		m.skipped = newSkippedList(msg.summary.Skipped)

		return m, nil
	}

	switch m.state {
	case importStateConfirm:
		return m.updateConfirm(msg)
	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case importStateResult:
		if m.err != nil {
			return m, nil
		}

		var cmd tea.Cmd
		m.skipped, cmd = m.skipped.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m.enterConfirm(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateConfirm, importStateResult:
		m.state = importStateFilePick
		m.form = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStateImporting:
		return m, nil
	}

	return m, Back
}

// enterConfirm asks whether the new loans should be dealt out right away.
// Imports are refused outright while there is nobody to collect them.
func (m ImportModel) enterConfirm(path string) (tea.Model, tea.Cmd) {
	m.path = path

	if len(agent.Collectors(m.tracker.Snapshot().Agents)) == 0 {
		m.state = importStateResult
		m.err = fmt.Errorf("add at least one collection agent before importing loans")
		m.status = "Error: " + m.err.Error()

		return m, nil
	}

	*m.distribute = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Import %s", filepath.Base(path))).
				Description("Distribute the new loans and the unassigned pool across the collectors?").
				Affirmative("Distribute").
				Negative("Leave unassigned").
				Value(m.distribute),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = importStateConfirm

	return m, m.form.Init()
}

func (m ImportModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.status = fmt.Sprintf("Importing from %s...", m.path)

	return m, tea.Batch(m.spinner.Tick, m.importCmd(m.path, *m.distribute))
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a loan sheet to import (.csv, .xlsx):\n\n%s", m.filePicker.View()),
		)
	case importStateConfirm:
		return lipgloss.NewStyle().Padding(1).Render(panelStyle.Render(m.form.View()))
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " " + m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	content := successStyle.Render(m.status)
	if len(m.skipped.Items()) > 0 {
		content += "\n\n" + m.skipped.View()
	}

	return style.Render(content + "\n\n(Esc to import another file)")
}

func importStatus(s *tracker.ImportSummary) string {
	status := fmt.Sprintf("%d loans imported, %d rows skipped.", s.Imported, len(s.Skipped))

	switch {
	case s.Imported == 0:
		status += " Nothing was added."
	case s.Distributed:
		status += " Loans distributed across the collectors."
	default:
		status += " Loans left in the unassigned pool."
	}

	return status
}

// Messages

type importResultMsg struct {
	summary *tracker.ImportSummary
	err     error
}

func (m ImportModel) importCmd(path string, distribute bool) tea.Cmd {
	return func() tea.Msg {
		format, err := importer.FormatFromFilename(path)
		if err != nil {
			return importResultMsg{err: err}
		}

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		summary, err := m.tracker.ImportFile(ctx, format, f, distribute)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{summary: summary}
	}
}

// Skipped row list

type skippedItem struct {
	row loansheet.SkippedRow
}

func (i skippedItem) Title() string       { return fmt.Sprintf("Row %d", i.row.Row) }
func (i skippedItem) Description() string { return i.row.Reason }
func (i skippedItem) FilterValue() string { return i.row.Reason }

type skippedDelegate struct{}

func (d skippedDelegate) Height() int                             { return 1 }
func (d skippedDelegate) Spacing() int                            { return 0 }
func (d skippedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d skippedDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(skippedItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%-8s %s", cursor, item.Title(), faintStyle.Render(item.Description()))
}

func newSkippedList(rows []loansheet.SkippedRow) list.Model {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = skippedItem{row: r}
	}

	l := list.New(items, skippedDelegate{}, 70, min(len(rows), 10)+4)
	l.Title = "Skipped Rows"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
