package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type agentsState int

const (
	agentsStateBrowse agentsState = iota
	agentsStateAdd
	agentsStateDelete
)

type agentFields struct {
	name      string
	username  string
	confirmed bool
}

type AgentsModel struct {
	CommonModel
	tracker *tracker.Service

	state  agentsState
	table  table.Model
	agents []agent.Agent
	form   *huh.Form
	fields *agentFields
	target agent.Agent

	status string
	err    error
}

func NewAgentsModel(svc *tracker.Service) AgentsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Username", Width: 16},
			{Title: "Role", Width: 12},
			{Title: "Loans", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := AgentsModel{tracker: svc, table: t, fields: &agentFields{}}
	m.refresh()

	return m
}

func (m AgentsModel) Title() string { return "Manage Agents" }

func (m AgentsModel) ShortHelp() string {
	if m.state != agentsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add agent | x: delete agent"
}

func (m AgentsModel) Init() tea.Cmd {
	return nil
}

func (m AgentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(actionDoneMsg); ok {
		m.state = agentsStateBrowse
		m.form = nil
		m.table.Focus()
		m.status, m.err = done.status, done.err
		m.refresh()

		return m, nil
	}

	if m.state == agentsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m AgentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			*m.fields = agentFields{}
			m.form = m.buildAddForm()
			m.state = agentsStateAdd
			m.table.Blur()

			return m, m.form.Init()
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.agents) {
				return m, nil
			}

			m.target = m.agents[idx]
			if m.target.IsAdmin {
				m.status, m.err = "", fmt.Errorf("administrators cannot be deleted")
				return m, nil
			}

			*m.fields = agentFields{}
			m.form = m.buildDeleteForm()
			m.state = agentsStateDelete
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AgentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.cancel()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case agentsStateAdd:
		name, username := m.fields.name, m.fields.username

		return m, actionCmd("Agent "+strings.TrimSpace(name)+" added.", func(ctx context.Context) error {
			_, err := m.tracker.AddAgent(ctx, name, username)
			return err
		})
	case agentsStateDelete:
		if !m.fields.confirmed {
			return m.cancel()
		}

		id, name := m.target.ID, m.target.Name

		return m, actionCmd("Agent "+name+" deleted; their loans are back in the pool.", func(ctx context.Context) error {
			return m.tracker.DeleteAgent(ctx, id)
		})
	}

	return m, nil
}

func (m AgentsModel) cancel() (tea.Model, tea.Cmd) {
	m.state = agentsStateBrowse
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m AgentsModel) buildAddForm() *huh.Form {
	required := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", label)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Full Name").
				Value(&m.fields.name).
				Validate(required("name")),

			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.fields.username).
				Validate(func(s string) error {
					if err := required("username")(s); err != nil {
						return err
					}

					if _, ok := agent.FindByUsername(m.tracker.Snapshot().Agents, s); ok {
						return fmt.Errorf("username %q is taken", strings.TrimSpace(s))
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m AgentsModel) buildDeleteForm() *huh.Form {
	assigned := len(loan.AssignedTo(m.tracker.Snapshot().Loans, m.target.ID))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", m.target.Name)).
				Description(fmt.Sprintf("%d assigned loans will return to the unassigned pool.", assigned)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirmed),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *AgentsModel) refresh() {
	st := m.tracker.Snapshot()
	m.agents = st.Agents

	rows := make([]table.Row, 0, len(m.agents))
	for _, a := range m.agents {
		role := "Collector"
		if a.IsAdmin {
			role = "Admin"
		}

		rows = append(rows, table.Row{
			a.Name,
			a.Username,
			role,
			strconv.Itoa(len(loan.AssignedTo(st.Loans, a.ID))),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m AgentsModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(activeStyle(m.Title())),
		tableView,
	)

	if m.state != agentsStateBrowse && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(50).Render(m.form.View()))
	}

	switch {
	case m.err != nil:
		content = errorStyle.Render("Error: "+m.err.Error()) + "\n" + content
	case m.status != "":
		content = successStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
