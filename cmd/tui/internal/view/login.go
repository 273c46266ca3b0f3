package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type loginFields struct {
	username string
}

type LoginModel struct {
	CommonModel
	tracker *tracker.Service

	form   *huh.Form
	fields *loginFields
	err    error
}

func NewLoginModel(svc *tracker.Service) LoginModel {
	m := LoginModel{tracker: svc, fields: &loginFields{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: login | Ctrl+C: quit" }

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Placeholder("admin").
				Value(&m.fields.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		if res.err != nil {
			m.err = res.err
			m.fields.username = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Agent: res.agent} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.loginCmd(m.fields.username)
}

func (m LoginModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Collecta"),
		faintStyle.Render("Loan collection tracker"),
		"",
		m.form.View(),
	)

	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render(m.err.Error()))
	}

	return lipgloss.NewStyle().Padding(2).Render(panelStyle.Render(content))
}
