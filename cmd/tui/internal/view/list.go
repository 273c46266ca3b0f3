package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateSearch
	listStateConfirm
	listStateDetail
)

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmDistribute
)

type ListModel struct {
	CommonModel
	tracker *tracker.Service
	user    agent.Agent

	state  listState
	table  table.Model
	loans  []loan.Loan
	search textinput.Model
	detail LoanModel

	form      *huh.Form
	confirmed *bool
	pending   confirmAction
	target    loan.Loan

	status string
	err    error
}

func NewListModel(svc *tracker.Service, user agent.Agent) ListModel {
	columns := []table.Column{
		{Title: "Account", Width: 12},
		{Title: "Client", Width: 24},
		{Title: "Phone", Width: 12},
		{Title: "Product", Width: 22},
		{Title: "Outstanding", Width: 14},
		{Title: "Status", Width: 12},
		{Title: "Past Due", Width: 11},
	}

	if user.IsAdmin {
		columns = append(columns, table.Column{Title: "Agent", Width: 18})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	search := textinput.New()
	search.Placeholder = "client, account or phone"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := ListModel{
		tracker:   svc,
		user:      user,
		table:     t,
		search:    search,
		confirmed: new(bool),
	}
	m.refresh()

	return m
}

func (m ListModel) Title() string {
	if m.user.IsAdmin {
		return "All Loans"
	}

	return "My Loans"
}

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateSearch:
		return "Enter: apply | Esc: clear"
	case listStateConfirm:
		return "Navigate form | Esc: cancel"
	case listStateDetail:
		return m.detail.ShortHelp()
	}

	help := "Esc: back | Enter: open | /: search | r: refresh"
	if m.user.IsAdmin {
		help += " | d: distribute unassigned | x: delete"
	}

	return help
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailClosedMsg:
		m.state = listStateBrowse
		m.table.Focus()
		m.refresh()

		return m, nil

	case actionDoneMsg:
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		m.setResult(msg.status, msg.err)
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
	}

	switch m.state {
	case listStateSearch:
		return m.updateSearch(msg)
	case listStateConfirm:
		return m.updateConfirm(msg)
	case listStateDetail:
		detail, cmd := m.detail.Update(msg)
		m.detail = detail.(LoanModel)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.status, m.err = "", nil
			m.refresh()

			return m, nil
		case "/":
			m.state = listStateSearch
			m.table.Blur()
			cmd := m.search.Focus()

			return m, cmd
		case "enter":
			l, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.detail = NewLoanModel(m.tracker, m.user, l)
			m.state = listStateDetail
			m.table.Blur()

			return m, m.detail.Init()
		case "x":
			if !m.user.IsAdmin {
				break
			}

			l, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.target = l

			return m.enterConfirm(confirmDelete,
				fmt.Sprintf("Delete loan %s (%s)?", l.AccountNumber, l.Client))
		case "d":
			if !m.user.IsAdmin {
				break
			}

			n := loan.UnassignedOutstanding(m.tracker.Snapshot().Loans)
			if n == 0 {
				m.setResult("There are no unassigned outstanding loans.", nil)
				return m, nil
			}

			return m.enterConfirm(confirmDistribute,
				fmt.Sprintf("Distribute %d unassigned loans across the collectors?", n))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.search.Blur()
			m.state = listStateBrowse
			m.table.Focus()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m ListModel) enterConfirm(action confirmAction, title string) (tea.Model, tea.Cmd) {
	*m.confirmed = false
	m.pending = action
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(m.confirmed),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = listStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.cancelConfirm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirmed {
		return m.cancelConfirm()
	}

	switch m.pending {
	case confirmDelete:
		id, account := m.target.ID, m.target.AccountNumber

		return m, actionCmd("Loan "+account+" deleted.", func(ctx context.Context) error {
			return m.tracker.DeleteLoan(ctx, id)
		})
	case confirmDistribute:
		return m, actionCmd("Unassigned loans distributed.", m.tracker.DistributeUnassigned)
	}

	return m, nil
}

func (m ListModel) cancelConfirm() (tea.Model, tea.Cmd) {
	m.state = listStateBrowse
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m ListModel) selected() (loan.Loan, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.loans) {
		return loan.Loan{}, false
	}

	return m.loans[idx], true
}

func (m *ListModel) setResult(status string, err error) {
	m.status, m.err = status, err
	if err != nil {
		m.status = ""
	}
}

func (m *ListModel) refresh() {
	st := m.tracker.Snapshot()
	m.loans = loan.Search(st.VisibleLoans(m.user), m.search.Value())

	rows := make([]table.Row, 0, len(m.loans))
	for _, l := range m.loans {
		row := table.Row{
			l.AccountNumber,
			l.Client,
			l.PhoneNumber,
			l.Product,
			FormatMoney(l.OutstandingBalance),
			string(l.Status),
			FormatDate(l.PassDueDate),
		}

		if m.user.IsAdmin {
			name := "Unassigned"
			if a, ok := st.Agent(l.AssignedAgentID); ok {
				name = a.Name
			}

			row = append(row, name)
		}

		rows = append(rows, row)
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m ListModel) View() string {
	if m.state == listStateDetail {
		return m.detail.View()
	}

	header := fmt.Sprintf("%s | %d loans", activeStyle(m.Title()), len(m.loans))
	if m.user.IsAdmin {
		n := loan.UnassignedOutstanding(m.tracker.Snapshot().Loans)
		header += fmt.Sprintf(" | %d unassigned", n)
	}

	searchLine := m.search.View()
	if m.state != listStateSearch && m.search.Value() == "" {
		searchLine = faintStyle.Render("Press / to search")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		searchLine,
		tableView,
	)

	if m.state == listStateConfirm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(54).Render(m.form.View()))
	}

	switch {
	case m.err != nil:
		content = errorStyle.Render("Error: "+m.err.Error()) + "\n" + content
	case m.status != "":
		content = successStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
