package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

func TestPerformance(t *testing.T) {
	loans := []loan.Loan{
		{
			ID: "1", AssignedAgentID: "a1", Status: loan.StatusOutstanding,
			OriginalAmount: dec("5000"), OutstandingBalance: dec("2000"),
			PaymentHistory: []loan.Payment{{Amount: dec("1000")}, {Amount: dec("2000")}},
		},
		{
			ID: "2", AssignedAgentID: "a1", Status: loan.StatusPaidOff,
			OriginalAmount: dec("1000"), OutstandingBalance: dec("0"),
			PaymentHistory: []loan.Payment{{Amount: dec("1000")}},
		},
		{
			ID: "3", AssignedAgentID: "", Status: loan.StatusOutstanding,
			OriginalAmount: dec("700"), OutstandingBalance: dec("700"),
		},
	}

	got := loan.Performance(loans, roster)
	require.Len(t, got, 2)

	john := got[0]
	assert.Equal(t, "a1", john.AgentID)
	assert.Equal(t, 2, john.AssignedCount)
	assert.True(t, john.OriginalAssigned.Equal(dec("6000")))
	assert.Equal(t, 3, john.PaymentsCount)
	assert.True(t, john.Collected.Equal(dec("4000")))
	assert.Equal(t, 1, john.PaidOffCount)
	assert.Equal(t, 1, john.OutstandingCount)
	assert.True(t, john.TotalOutstanding.Equal(dec("2000")))

	sarah := got[1]
	assert.Zero(t, sarah.AssignedCount)
	assert.True(t, sarah.TotalOutstanding.IsZero())

	shares := loan.PortfolioShare(got)
	require.Len(t, shares, 2)
	assert.InDelta(t, 100.0, shares[0].Percent, 0.001)
	assert.InDelta(t, 0.0, shares[1].Percent, 0.001)
}

func TestPortfolioShare_NothingOutstanding(t *testing.T) {
	shares := loan.PortfolioShare(loan.Performance(nil, roster))

	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.Zero(t, s.Percent)
	}
}
