package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

var roster = []agent.Agent{
	{ID: "admin", Name: "Admin User", Username: "admin", IsAdmin: true},
	{ID: "a1", Name: "John Collector", Username: "johnc"},
	{ID: "a2", Name: "Sarah Field", Username: "sarahf"},
}

func outstanding(id, agentID string) loan.Loan {
	return loan.Loan{ID: id, Status: loan.StatusOutstanding, AssignedAgentID: agentID, OutstandingBalance: dec("10")}
}

func ids(loans []loan.Loan) []string {
	out := make([]string, len(loans))
	for i, l := range loans {
		out[i] = l.ID
	}

	return out
}

func assignments(loans []loan.Loan) map[string]string {
	out := make(map[string]string, len(loans))
	for _, l := range loans {
		out[l.ID] = l.AssignedAgentID
	}

	return out
}

func TestDistribute(t *testing.T) {
	type args struct {
		newLoans []loan.Loan
		existing []loan.Loan
		roster   []agent.Agent
	}

	type testCase struct {
		name            string
		args            args
		wantIDs         []string
		wantAssignments map[string]string
	}

	paid := loan.Loan{ID: "paid", Status: loan.StatusPaidOff}

	tests := []testCase{
		{
			name: "Round Robin Over New Loans",
			args: args{
				newLoans: []loan.Loan{outstanding("n1", ""), outstanding("n2", ""), outstanding("n3", "")},
				roster:   roster,
			},
			wantIDs:         []string{"n1", "n2", "n3"},
			wantAssignments: map[string]string{"n1": "a1", "n2": "a2", "n3": "a1"},
		},
		{
			name: "Existing Pool Comes First",
			args: args{
				newLoans: []loan.Loan{outstanding("n1", "")},
				existing: []loan.Loan{outstanding("e1", ""), outstanding("e2", "a2"), paid, outstanding("e3", "")},
				roster:   roster,
			},
			wantIDs: []string{"e2", "paid", "e1", "e3", "n1"},
			wantAssignments: map[string]string{
				"e2": "a2", "paid": "", "e1": "a1", "e3": "a2", "n1": "a1",
			},
		},
		{
			name: "No Collectors",
			args: args{
				newLoans: []loan.Loan{outstanding("n1", "")},
				existing: []loan.Loan{outstanding("e1", "")},
				roster:   roster[:1],
			},
			wantIDs:         []string{"e1", "n1"},
			wantAssignments: map[string]string{"e1": "", "n1": ""},
		},
		{
			name: "Empty Pool",
			args: args{
				existing: []loan.Loan{outstanding("e1", "a1"), paid},
				roster:   roster,
			},
			wantIDs:         []string{"e1", "paid"},
			wantAssignments: map[string]string{"e1": "a1", "paid": ""},
		},
		{
			name: "Single Collector Takes Everything",
			args: args{
				newLoans: []loan.Loan{outstanding("n1", ""), outstanding("n2", "")},
				existing: []loan.Loan{outstanding("e1", "")},
				roster:   roster[:2],
			},
			wantIDs:         []string{"e1", "n1", "n2"},
			wantAssignments: map[string]string{"e1": "a1", "n1": "a1", "n2": "a1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loan.Distribute(tt.args.newLoans, tt.args.existing, tt.args.roster)

			assert.Equal(t, tt.wantIDs, ids(got))
			assert.Equal(t, tt.wantAssignments, assignments(got))
		})
	}
}

func TestDistribute_DoesNotMutateInputs(t *testing.T) {
	newLoans := []loan.Loan{outstanding("n1", "")}
	existing := []loan.Loan{outstanding("e1", "")}

	_ = loan.Distribute(newLoans, existing, roster)

	assert.Empty(t, newLoans[0].AssignedAgentID)
	assert.Empty(t, existing[0].AssignedAgentID)
}

func TestDistribute_Idempotent(t *testing.T) {
	first := loan.Distribute([]loan.Loan{outstanding("n1", ""), outstanding("n2", "")}, nil, roster)
	second := loan.Distribute(nil, first, roster)

	assert.Equal(t, first, second)
}

func TestDistribute_BalancedLoad(t *testing.T) {
	var newLoans []loan.Loan
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		newLoans = append(newLoans, outstanding(id, ""))
	}

	got := loan.Distribute(newLoans, nil, roster)

	counts := map[string]int{}
	for _, l := range got {
		counts[l.AssignedAgentID]++
	}

	assert.Equal(t, 4, counts["a1"])
	assert.Equal(t, 3, counts["a2"])
	assert.Zero(t, counts["admin"])
}

func TestUnassignedOutstanding(t *testing.T) {
	loans := []loan.Loan{
		outstanding("e1", ""),
		outstanding("e2", "a1"),
		{ID: "paid", Status: loan.StatusPaidOff},
	}

	assert.Equal(t, 1, loan.UnassignedOutstanding(loans))
}
