package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/collecta/internal/export"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStatePath exportState = iota
	exportStateExporting
	exportStateResult
)

type exportFields struct {
	path    string
	publish bool
}

type ExportModel struct {
	CommonModel
	tracker       *tracker.Service
	exportService *export.Service

	state   exportState
	err     error
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *tracker.Service, exportSvc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		tracker:       svc,
		exportService: exportSvc,
		fields:        &exportFields{path: "./exports"},
		spinner:       s,
	}
	m.form = m.buildPathForm()

	return m
}

func (m ExportModel) Title() string { return "Export Loans" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.path, m.fields.publish))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		if result.err != nil {
			m.err = result.err
		}
		m.summary = result.body
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}
	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("path").
			Title("Output Path").
			Description("Directory will be created if it doesn't exist").
			Placeholder("./exports").
			Value(&m.fields.path),
	}

	if m.exportService.PublishEnabled() {
		fields = append(fields, huh.NewConfirm().
			Key("publish").
			Title("Also upload to object storage?").
			Description("A temporary download link is printed when done").
			Value(&m.fields.publish))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building the loan workbook...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(dir string, publish bool) tea.Cmd {
	st := m.tracker.Snapshot()

	return func() tea.Msg {
		data, err := m.exportService.Workbook(st.Loans, st.Agents)
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := m.exportService.SaveToDir(dir, data)
		if err != nil {
			return exportResultMsg{err: err}
		}

		body := fmt.Sprintf("Saved %d loans to %s\n\n%s", len(st.Loans), path,
			export.Summary(loan.Performance(st.Loans, st.Agents)))

		if !publish {
			return exportResultMsg{body: body}
		}

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		url, err := m.exportService.Publish(ctx, data)
		if err != nil {
			return exportResultMsg{body: body, err: err}
		}

		return exportResultMsg{body: body + "\nDownload link: " + url}
	}
}
