package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type loanState int

const (
	loanStateView loanState = iota
	loanStatePayment
	loanStateRemark
	loanStateNote
)

// maxLogEntries bounds the communication entries shown next to the details.
const maxLogEntries = 8

// detailClosedMsg returns control from the loan detail to the loan list.
type detailClosedMsg struct{}

// loanFields holds the form bindings. It lives behind a pointer so that the
// huh fields keep writing to the same place as the model is copied around.
type loanFields struct {
	amount   string
	remark   string
	commType loan.CommType
	notes    string
}

type LoanModel struct {
	CommonModel
	tracker *tracker.Service
	user    agent.Agent

	state  loanState
	loan   loan.Loan
	form   *huh.Form
	fields *loanFields

	status string
	err    error
}

func NewLoanModel(svc *tracker.Service, user agent.Agent, l loan.Loan) LoanModel {
	return LoanModel{
		tracker: svc,
		user:    user,
		loan:    l,
		fields:  &loanFields{commType: loan.CommCall},
	}
}

func (m LoanModel) Title() string { return "Loan " + m.loan.AccountNumber }

func (m LoanModel) ShortHelp() string {
	if m.state != loanStateView {
		return "Navigate form | Esc: cancel"
	}

	help := "Esc: back | r: remark | n: log communication"
	if m.loan.Outstanding() {
		help += " | p: record payment"
	}

	return help
}

func (m LoanModel) Init() tea.Cmd {
	return nil
}

func (m LoanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(loanSavedMsg); ok {
		m.state = loanStateView
		m.form = nil

		if saved.err != nil {
			m.err = saved.err
			m.status = ""

			return m, nil
		}

		m.loan = saved.loan
		m.err = nil
		m.status = saved.status

		return m, nil
	}

	if m.state == loanStateView {
		return m.updateView(msg)
	}

	return m.updateForm(msg)
}

func (m LoanModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return detailClosedMsg{} }
	case "p":
		if !m.loan.Outstanding() {
			m.status = "This loan is already paid off."
			return m, nil
		}

		m.fields.amount = ""
		m.form = m.buildPaymentForm()
		m.state = loanStatePayment

		return m, m.form.Init()
	case "r":
		m.fields.remark = m.loan.Remark
		m.form = m.buildRemarkForm()
		m.state = loanStateRemark

		return m, m.form.Init()
	case "n":
		m.fields.commType = loan.CommCall
		m.fields.notes = ""
		m.form = m.buildNoteForm()
		m.state = loanStateNote

		return m, m.form.Init()
	}

	return m, nil
}

func (m LoanModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loanStateView
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case loanStatePayment:
		amount, err := decimal.NewFromString(strings.TrimSpace(m.fields.amount))
		if err != nil {
			m.state = loanStateView
			m.err = err

			return m, nil
		}

		return m, paymentCmd(m.tracker, m.user.ID, m.loan.ID, amount)
	case loanStateRemark:
		return m, remarkCmd(m.tracker, m.user.ID, m.loan.ID, m.fields.remark)
	case loanStateNote:
		return m, communicationCmd(m.tracker, m.user.ID, m.loan.ID, m.fields.commType, m.fields.notes)
	}

	return m, nil
}

func (m LoanModel) buildPaymentForm() *huh.Form {
	balance := m.loan.OutstandingBalance

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Payment Amount").
				Description("Outstanding: " + FormatMoney(balance)).
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					amount, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return errors.New("enter a valid amount")
					}

					if amount.Sign() <= 0 {
						return loan.ErrInvalidAmount
					}

					if amount.GreaterThan(balance) {
						return loan.ErrAmountExceedsBalance
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoanModel) buildRemarkForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("remark").
				Title("Remark").
				CharLimit(500).
				Value(&m.fields.remark),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoanModel) buildNoteForm() *huh.Form {
	options := make([]huh.Option[loan.CommType], 0, len(loan.CommTypes))
	for _, t := range loan.CommTypes {
		options = append(options, huh.NewOption(string(t), t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[loan.CommType]().
				Key("type").
				Title("Type").
				Options(options...).
				Value(&m.fields.commType),

			huh.NewText().
				Key("notes").
				Title("Notes").
				CharLimit(1000).
				Value(&m.fields.notes).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return loan.ErrEmptyNotes
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoanModel) View() string {
	l := m.loan

	agentName := "Unassigned"
	if a, ok := m.tracker.Snapshot().Agent(l.AssignedAgentID); ok {
		agentName = a.Name
	}

	term := "-"
	if l.Term != nil {
		term = fmt.Sprintf("%d months", *l.Term)
	}

	details := strings.Join([]string{
		headingStyle.Render(l.Client),
		faintStyle.Render(l.AccountNumber + " | " + l.Product),
		"",
		fmt.Sprintf("Branch:            %s", l.Branch),
		fmt.Sprintf("Phone:             %s", l.PhoneNumber),
		fmt.Sprintf("Agent:             %s", agentName),
		fmt.Sprintf("Status:            %s", m.renderStatus()),
		"",
		fmt.Sprintf("Original Amount:   %s", FormatMoney(l.OriginalAmount)),
		fmt.Sprintf("Total Liability:   %s", FormatNullMoney(l.TotalLiab)),
		fmt.Sprintf("Repayment Amount:  %s", FormatNullMoney(l.RepaymentAmount)),
		fmt.Sprintf("Outstanding:       %s", FormatMoney(l.OutstandingBalance)),
		fmt.Sprintf("Interest Repaid:   %s", FormatNullMoney(l.InterestRepaid)),
		fmt.Sprintf("Interest Due:      %s", FormatNullMoney(l.InterestOutstanding)),
		"",
		fmt.Sprintf("Term:              %s", term),
		fmt.Sprintf("Start Date:        %s", FormatDate(l.StartDate)),
		fmt.Sprintf("Matured On:        %s", FormatDate(l.MaturedOn)),
		fmt.Sprintf("Expected Repaid:   %s", FormatDate(l.ExpectedRepaymentDate)),
		fmt.Sprintf("Past Due Date:     %s", FormatDate(l.PassDueDate)),
		"",
		"Remark: " + orDash(l.Remark),
	}, "\n")

	left := panelStyle.Width(56).Render(details)

	var right string
	if m.state != loanStateView && m.form != nil {
		right = panelStyle.Width(50).Render(m.formTitle() + "\n\n" + m.form.View())
	} else {
		right = panelStyle.Width(50).Render(m.renderHistory())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	switch {
	case m.err != nil:
		content = errorStyle.Render("Error: "+m.err.Error()) + "\n" + content
	case m.status != "":
		content = successStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LoanModel) formTitle() string {
	switch m.state {
	case loanStatePayment:
		return headingStyle.Render("Record Payment")
	case loanStateRemark:
		return headingStyle.Render("Update Remark")
	case loanStateNote:
		return headingStyle.Render("Log Communication")
	}

	return ""
}

func (m LoanModel) renderStatus() string {
	if m.loan.Outstanding() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(string(m.loan.Status))
	}

	return successStyle.Render(string(m.loan.Status))
}

func (m LoanModel) renderHistory() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Payments"))
	b.WriteString("\n")

	if len(m.loan.PaymentHistory) == 0 {
		b.WriteString(faintStyle.Render("No payments recorded."))
		b.WriteString("\n")
	}

	for _, p := range m.loan.PaymentHistory {
		fmt.Fprintf(&b, "%s  %s\n", FormatDate(p.Date), FormatMoney(p.Amount))
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Communication Log"))
	b.WriteString("\n")

	if len(m.loan.CommunicationHistory) == 0 {
		b.WriteString(faintStyle.Render("No communication logged."))
	}

	for i, c := range m.loan.CommunicationHistory {
		if i == maxLogEntries {
			fmt.Fprintf(&b, "%s", faintStyle.Render(fmt.Sprintf("... %d older entries", len(m.loan.CommunicationHistory)-i)))
			break
		}

		fmt.Fprintf(&b, "%s %s by %s\n  %s\n",
			FormatDate(c.Date), activeStyle(string(c.Type)), c.AgentName, c.Notes)
	}

	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}

	return s
}
