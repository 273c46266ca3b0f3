package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

func TestNewCommunication(t *testing.T) {
	today := date(t, "2024-06-01")

	entry := loan.NewCommunication(loan.CommCall, "  Promised to pay Friday ", &roster[1], today, "c1")
	assert.Equal(t, "c1", entry.ID)
	assert.Equal(t, "a1", entry.AgentID)
	assert.Equal(t, "John Collector", entry.AgentName)
	assert.Equal(t, "Promised to pay Friday", entry.Notes)
	assert.Equal(t, "2024-06-01", entry.Date.String())

	orphan := loan.NewCommunication(loan.CommSMS, "reminder", nil, today, "c2")
	assert.Equal(t, loan.UnknownAgent, orphan.AgentName)
	assert.Empty(t, orphan.AgentID)
}

func TestAddCommunication(t *testing.T) {
	today := date(t, "2024-06-01")
	l := outstanding("l1", "a1")

	type testCase struct {
		name    string
		entry   loan.CommunicationLogEntry
		wantErr error
	}

	tests := []testCase{
		{name: "Blank Notes", entry: loan.NewCommunication(loan.CommCall, "   ", &roster[1], today, "c1"), wantErr: loan.ErrEmptyNotes},
		{name: "Unknown Type", entry: loan.NewCommunication("Fax", "sent", &roster[1], today, "c1"), wantErr: loan.ErrInvalidCommType},
		{name: "Valid", entry: loan.NewCommunication(loan.CommVisit, "visited", &roster[1], today, "c1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loan.AddCommunication(l, tt.entry)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got.CommunicationHistory)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.CommunicationHistory, 1)
		})
	}
}

func TestAddCommunication_NewestFirst(t *testing.T) {
	today := date(t, "2024-06-01")
	l := outstanding("l1", "a1")

	l, err := loan.AddCommunication(l, loan.NewCommunication(loan.CommCall, "first", &roster[1], today, "c1"))
	require.NoError(t, err)

	l, err = loan.AddCommunication(l, loan.NewCommunication(loan.CommEmail, "second", &roster[2], today, "c2"))
	require.NoError(t, err)

	require.Len(t, l.CommunicationHistory, 2)
	assert.Equal(t, "c2", l.CommunicationHistory[0].ID)
	assert.Equal(t, "c1", l.CommunicationHistory[1].ID)
}

func TestUnassign(t *testing.T) {
	loans := []loan.Loan{outstanding("l1", "a1"), outstanding("l2", "a2"), outstanding("l3", "a1")}

	got := loan.Unassign(loans, "a1")

	assert.Equal(t, map[string]string{"l1": "", "l2": "a2", "l3": ""}, assignments(got))
	assert.Equal(t, "a1", loans[0].AssignedAgentID)
}

func TestSearch(t *testing.T) {
	loans := []loan.Loan{
		{ID: "1", Client: "Alice Wonderland", AccountNumber: "LN001", PhoneNumber: "555-0101"},
		{ID: "2", Client: "Bob The Builder", AccountNumber: "LN002", PhoneNumber: "555-0202"},
		{ID: "3", AccountNumber: "XY-77"},
	}

	type testCase struct {
		name string
		term string
		want []string
	}

	tests := []testCase{
		{name: "Blank", term: "  ", want: []string{"1", "2", "3"}},
		{name: "Client Case Insensitive", term: "aLiCe", want: []string{"1"}},
		{name: "Account Number", term: "ln00", want: []string{"1", "2"}},
		{name: "Phone", term: "0202", want: []string{"2"}},
		{name: "No Match", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(loan.Search(loans, tt.term)))
		})
	}
}

func TestUpdateRemark(t *testing.T) {
	l := loan.UpdateRemark(outstanding("l1", ""), "call back Monday")
	assert.Equal(t, "call back Monday", l.Remark)
}
