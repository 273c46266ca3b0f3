package view

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/docstore"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/state"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
	"github.com/MrJamesThe3rd/collecta/internal/tracker/store"
)

func newTracker(t *testing.T) *tracker.Service {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }

	svc := tracker.NewService(store.New(docstore.NewMemory()), importer.NewService(clock), tracker.WithClock(clock))
	require.NoError(t, svc.Load(context.Background()))

	return svc
}

func seedAgent(t *testing.T, svc *tracker.Service, id string) agent.Agent {
	t.Helper()

	a, ok := svc.Snapshot().Agent(id)
	require.True(t, ok)

	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ListModel, msg tea.Msg) (ListModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	lm, ok := next.(ListModel)
	require.True(t, ok)

	return lm, cmd
}

func TestListModel_Visibility(t *testing.T) {
	svc := newTracker(t)

	admin := NewListModel(svc, seedAgent(t, svc, state.SeedAdminID))
	assert.Len(t, admin.loans, 5)
	assert.Equal(t, "All Loans", admin.Title())

	john := NewListModel(svc, seedAgent(t, svc, state.SeedJohnID))
	assert.Equal(t, "My Loans", john.Title())
	require.NotEmpty(t, john.loans)

	for _, l := range john.loans {
		assert.Equal(t, state.SeedJohnID, l.AssignedAgentID)
	}
}

func TestListModel_Search(t *testing.T) {
	svc := newTracker(t)
	m := NewListModel(svc, seedAgent(t, svc, state.SeedAdminID))

	m, _ = update(t, m, key("/"))
	assert.Equal(t, listStateSearch, m.state)

	m.search.SetValue("ln003")
	m, _ = update(t, m, key("enter"))

	assert.Equal(t, listStateBrowse, m.state)
	require.Len(t, m.loans, 1)
	assert.Equal(t, "LN003", m.loans[0].AccountNumber)

	m, _ = update(t, m, key("/"))
	m, _ = update(t, m, key("esc"))

	assert.Empty(t, m.search.Value())
	assert.Len(t, m.loans, 5)
}

func TestListModel_OpenAndCloseDetail(t *testing.T) {
	svc := newTracker(t)
	m := NewListModel(svc, seedAgent(t, svc, state.SeedJohnID))

	m, _ = update(t, m, key("enter"))
	require.Equal(t, listStateDetail, m.state)
	assert.Equal(t, m.loans[0].ID, m.detail.loan.ID)

	_, cmd := m.detail.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.IsType(t, detailClosedMsg{}, cmd())

	m, _ = update(t, m, detailClosedMsg{})
	assert.Equal(t, listStateBrowse, m.state)
}

func TestListModel_AdminActions(t *testing.T) {
	svc := newTracker(t)

	t.Run("Collector Cannot Delete", func(t *testing.T) {
		m := NewListModel(svc, seedAgent(t, svc, state.SeedJohnID))

		m, _ = update(t, m, key("x"))
		assert.Equal(t, listStateBrowse, m.state)

		m, _ = update(t, m, key("d"))
		assert.Equal(t, listStateBrowse, m.state)
	})

	t.Run("Distribute Asks For Confirmation", func(t *testing.T) {
		m := NewListModel(svc, seedAgent(t, svc, state.SeedAdminID))

		m, _ = update(t, m, key("d"))
		assert.Equal(t, listStateConfirm, m.state)
		assert.Equal(t, confirmDistribute, m.pending)

		m, _ = update(t, m, key("esc"))
		assert.Equal(t, listStateBrowse, m.state)
	})

	t.Run("Action Result Refreshes", func(t *testing.T) {
		m := NewListModel(svc, seedAgent(t, svc, state.SeedAdminID))

		m, _ = update(t, m, actionDoneMsg{err: errors.New("boom")})
		assert.EqualError(t, m.err, "boom")
		assert.Empty(t, m.status)

		require.NoError(t, svc.DeleteLoan(context.Background(), m.loans[0].ID))

		m, _ = update(t, m, actionDoneMsg{status: "Loan deleted."})
		assert.NoError(t, m.err)
		assert.Equal(t, "Loan deleted.", m.status)
		assert.Len(t, m.loans, 4)
	})
}

func TestLoanModel_SavedResult(t *testing.T) {
	svc := newTracker(t)
	john := seedAgent(t, svc, state.SeedJohnID)

	l, ok := svc.Snapshot().Loan("00000000-0000-0000-0000-000000000101")
	require.True(t, ok)

	m := NewLoanModel(svc, john, l)
	assert.Contains(t, m.ShortHelp(), "p: record payment")

	paid := l
	paid.Status = loan.StatusPaidOff

	next, _ := m.Update(loanSavedMsg{loan: paid, status: "Payment recorded."})
	m = next.(LoanModel)

	assert.Equal(t, "Payment recorded.", m.status)
	assert.NotContains(t, m.ShortHelp(), "p: record payment")

	next, _ = m.Update(key("p"))
	m = next.(LoanModel)
	assert.Equal(t, loanStateView, m.state)
	assert.Equal(t, "This loan is already paid off.", m.status)

	next, _ = m.Update(loanSavedMsg{err: loan.ErrAmountExceedsBalance})
	m = next.(LoanModel)
	assert.ErrorIs(t, m.err, loan.ErrAmountExceedsBalance)
	assert.Equal(t, loan.StatusPaidOff, m.loan.Status)
}

func TestRenderShares(t *testing.T) {
	assert.Contains(t, renderShares(nil), "No collection agents")

	svc := newTracker(t)
	st := svc.Snapshot()

	out := renderShares(loan.PortfolioShare(loan.Performance(st.Loans, st.Agents)))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, out, "John Collector")
	assert.Contains(t, out, "Sarah Field")
}

func TestImportStatus(t *testing.T) {
	assert.Equal(t, "0 loans imported, 2 rows skipped. Nothing was added.",
		importStatus(&tracker.ImportSummary{Skipped: make([]loansheet.SkippedRow, 2)}))
}
