package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

const barWidth = 40

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

type PerformanceModel struct {
	CommonModel
	tracker *tracker.Service

	table  table.Model
	shares []loan.Share
	totals loan.AgentPerformance
}

func NewPerformanceModel(svc *tracker.Service) PerformanceModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Agent", Width: 20},
			{Title: "Assigned", Width: 9},
			{Title: "Original", Width: 14},
			{Title: "Payments", Width: 9},
			{Title: "Collected", Width: 14},
			{Title: "Paid Off", Width: 9},
			{Title: "Open", Width: 6},
			{Title: "Outstanding", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	m := PerformanceModel{tracker: svc, table: t}
	m.refresh()

	return m
}

func (m PerformanceModel) Title() string     { return "Agent Performance" }
func (m PerformanceModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m PerformanceModel) Init() tea.Cmd {
	return nil
}

func (m PerformanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *PerformanceModel) refresh() {
	st := m.tracker.Snapshot()
	perf := loan.Performance(st.Loans, st.Agents)

	m.totals = loan.AgentPerformance{
		Name:             "Total",
		OriginalAssigned: decimal.Zero,
		Collected:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	rows := make([]table.Row, 0, len(perf))
	for _, p := range perf {
		rows = append(rows, performanceRow(p))

		m.totals.AssignedCount += p.AssignedCount
		m.totals.OriginalAssigned = m.totals.OriginalAssigned.Add(p.OriginalAssigned)
		m.totals.PaymentsCount += p.PaymentsCount
		m.totals.Collected = m.totals.Collected.Add(p.Collected)
		m.totals.PaidOffCount += p.PaidOffCount
		m.totals.OutstandingCount += p.OutstandingCount
		m.totals.TotalOutstanding = m.totals.TotalOutstanding.Add(p.TotalOutstanding)
	}

	m.table.SetRows(rows)
	m.shares = loan.PortfolioShare(perf)
}

func performanceRow(p loan.AgentPerformance) table.Row {
	return table.Row{
		p.Name,
		strconv.Itoa(p.AssignedCount),
		FormatMoney(p.OriginalAssigned),
		strconv.Itoa(p.PaymentsCount),
		FormatMoney(p.Collected),
		strconv.Itoa(p.PaidOffCount),
		strconv.Itoa(p.OutstandingCount),
		FormatMoney(p.TotalOutstanding),
	}
}

func (m PerformanceModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	totals := faintStyle.Render(fmt.Sprintf(
		"Totals: %d loans assigned | %s collected over %d payments | %s outstanding",
		m.totals.AssignedCount,
		FormatMoney(m.totals.Collected),
		m.totals.PaymentsCount,
		FormatMoney(m.totals.TotalOutstanding),
	))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(activeStyle(m.Title())),
		tableView,
		totals,
		"",
		headingStyle.Render("Portfolio Snapshot"),
		renderShares(m.shares),
	))
}

// renderShares draws one horizontal bar per agent, scaled to the largest
// outstanding book.
func renderShares(shares []loan.Share) string {
	if len(shares) == 0 {
		return faintStyle.Render("No collection agents yet.")
	}

	nameWidth := 0
	for _, s := range shares {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}

	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		filled := int(s.Percent / 100 * barWidth)
		if filled == 0 && s.Outstanding.IsPositive() {
			filled = 1
		}

		bar := barStyle.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("%-*s %s %s", nameWidth, s.Name, bar, FormatMoney(s.Outstanding)))
	}

	return strings.Join(lines, "\n")
}
