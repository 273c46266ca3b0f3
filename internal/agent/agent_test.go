package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
)

var roster = []agent.Agent{
	{ID: "1", Name: "Admin User", Username: "admin", IsAdmin: true},
	{ID: "2", Name: "John Collector", Username: "johnc"},
	{ID: "3", Name: "Sarah Field", Username: "sarahf"},
}

func TestFindByUsername(t *testing.T) {
	type testCase struct {
		name     string
		username string
		wantID   string
		wantOK   bool
	}

	tests := []testCase{
		{name: "Exact", username: "johnc", wantID: "2", wantOK: true},
		{name: "Mixed Case", username: "JohnC", wantID: "2", wantOK: true},
		{name: "Surrounding Space", username: "  sarahf ", wantID: "3", wantOK: true},
		{name: "Unknown", username: "nobody", wantOK: false},
		{name: "Empty", username: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := agent.FindByUsername(roster, tt.username)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCollectors(t *testing.T) {
	got := agent.Collectors(roster)

	assert.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Empty(t, agent.Collectors(roster[:1]))
}
