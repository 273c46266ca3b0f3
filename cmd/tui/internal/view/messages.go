package view

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type loginResultMsg struct {
	agent agent.Agent
	err   error
}

func (m LoginModel) loginCmd(username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		a, err := m.tracker.Login(ctx, username)
		return loginResultMsg{agent: a, err: err}
	}
}

// LogoutCmd clears the persisted session.
func LogoutCmd(svc *tracker.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return LoggedOutMsg{Err: svc.Logout(ctx)}
	}
}

// loanSavedMsg reports the outcome of any mutation issued from a loan screen.
type loanSavedMsg struct {
	loan   loan.Loan
	status string
	err    error
}

func loanCmd(status string, fn func(ctx context.Context) (loan.Loan, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		l, err := fn(ctx)
		return loanSavedMsg{loan: l, status: status, err: err}
	}
}

func paymentCmd(svc *tracker.Service, actorID, loanID string, amount decimal.Decimal) tea.Cmd {
	return loanCmd("Payment of "+FormatMoney(amount)+" recorded.", func(ctx context.Context) (loan.Loan, error) {
		return svc.RecordPayment(ctx, actorID, loanID, amount)
	})
}

func remarkCmd(svc *tracker.Service, actorID, loanID, remark string) tea.Cmd {
	return loanCmd("Remark updated.", func(ctx context.Context) (loan.Loan, error) {
		return svc.UpdateRemark(ctx, actorID, loanID, remark)
	})
}

func communicationCmd(svc *tracker.Service, actorID, loanID string, typ loan.CommType, notes string) tea.Cmd {
	return loanCmd("Communication logged.", func(ctx context.Context) (loan.Loan, error) {
		return svc.AddCommunication(ctx, actorID, loanID, typ, notes)
	})
}

// actionDoneMsg reports the outcome of a mutation that has no single result.
type actionDoneMsg struct {
	status string
	err    error
}

func actionCmd(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return actionDoneMsg{status: status, err: fn(ctx)}
	}
}
