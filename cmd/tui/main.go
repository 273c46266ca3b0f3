package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/app"
	"github.com/MrJamesThe3rd/collecta/internal/config"
	"github.com/MrJamesThe3rd/collecta/internal/export"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type model struct {
	tracker       *tracker.Service
	exportService *export.Service

	user        *agent.Agent
	currentView View
	status      string

	loginView       view.LoginModel
	listView        view.ListModel
	importView      view.ImportModel
	agentsView      view.AgentsModel
	performanceView view.PerformanceModel
	exportView      view.ExportModel
}

type View int

const (
	ViewLogin       View = 0
	ViewMenu        View = 1
	ViewLoans       View = 2
	ViewImport      View = 3
	ViewAgents      View = 4
	ViewPerformance View = 5
	ViewExport      View = 6
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
)

func initialModel(a *app.App) model {
	m := model{
		tracker:       a.Tracker,
		exportService: a.Export,
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(a.Tracker),
	}

	// The persisted current user resumes the previous session.
	if u := a.Tracker.Snapshot().CurrentUser; u != nil {
		m.user = u
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.user = &msg.Agent
		m.currentView = ViewMenu
		m.status = ""

		return m, nil
	case view.LoggedOutMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.Err)
			return m, nil
		}

		m.user = nil
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.tracker)

		return m, m.loginView.Init()
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewLoans:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewAgents:
		var newModel tea.Model
		newModel, cmd = m.agentsView.Update(msg)
		m.agentsView = newModel.(view.AgentsModel)
	case ViewPerformance:
		var newModel tea.Model
		newModel, cmd = m.performanceView.Update(msg)
		m.performanceView = newModel.(view.PerformanceModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		return m, view.LogoutCmd(m.tracker)
	case "1":
		m.currentView = ViewLoans
		m.listView = view.NewListModel(m.tracker, *m.user)

		return m, m.listView.Init()
	}

	if !m.user.IsAdmin {
		return m, nil
	}

	switch msg.String() {
	case "2":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.tracker)

		return m, m.importView.Init()
	case "3":
		m.currentView = ViewAgents
		m.agentsView = view.NewAgentsModel(m.tracker)

		return m, m.agentsView.Init()
	case "4":
		m.currentView = ViewPerformance
		m.performanceView = view.NewPerformanceModel(m.tracker)

		return m, m.performanceView.Init()
	case "5":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.tracker, m.exportService)

		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewLoans:
		current = m.listView
	case ViewImport:
		current = m.importView
	case ViewAgents:
		current = m.agentsView
	case ViewPerformance:
		current = m.performanceView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		current.View(),
		helpStyle.Render(current.ShortHelp()),
	)
}

func (m model) menuView() string {
	st := m.tracker.Snapshot()

	header := titleStyle.Render("Collecta") + "\n" +
		fmt.Sprintf("Logged in as %s (%s)", m.user.Name, m.user.Username)

	var body string

	if m.user.IsAdmin {
		body = fmt.Sprintf("%d loans | %d unassigned outstanding | %d agents\n\n",
			len(st.Loans), loan.UnassignedOutstanding(st.Loans), len(agent.Collectors(st.Agents))) +
			"1. All Loans\n" +
			"2. Import Loans\n" +
			"3. Manage Agents\n" +
			"4. Agent Performance\n" +
			"5. Export Loans\n"
	} else {
		mine := loan.AssignedTo(st.Loans, m.user.ID)

		outstanding := decimal.Zero
		open := 0

		for _, l := range mine {
			if l.Outstanding() {
				open++
				outstanding = outstanding.Add(l.OutstandingBalance)
			}
		}

		body = fmt.Sprintf("%d loans assigned | %d outstanding | %s to collect\n\n",
			len(mine), open, view.FormatMoney(outstanding)) +
			"1. My Loans\n"
	}

	content := header + "\n\n" + body + "\nl. Logout\nq. Quit"
	if m.status != "" {
		content += "\n\n" + m.status
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := tea.LogToFile("collecta-tui.log", "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()})))

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start application", "error", err)
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	p := tea.NewProgram(initialModel(application), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
