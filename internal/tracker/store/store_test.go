package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/collecta/internal/docstore"
	"github.com/MrJamesThe3rd/collecta/internal/state"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
	"github.com/MrJamesThe3rd/collecta/internal/tracker/store"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(docstore.NewMemory())

	seed := state.Seed()

	require.NoError(t, s.SaveAgents(ctx, seed.Agents))
	require.NoError(t, s.SaveLoans(ctx, seed.Loans))
	require.NoError(t, s.SaveCurrentUser(ctx, seed.Agents[1]))

	agents, err := s.LoadAgents(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Agents, agents)

	loans, err := s.LoadLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, len(seed.Loans))

	for i := range loans {
		assert.Equal(t, seed.Loans[i].ID, loans[i].ID)
		assert.True(t, seed.Loans[i].OutstandingBalance.Equal(loans[i].OutstandingBalance))
		assert.Equal(t, seed.Loans[i].PassDueDate, loans[i].PassDueDate)
		assert.Equal(t, seed.Loans[i].CommunicationHistory, loans[i].CommunicationHistory)
		assert.Equal(t, seed.Loans[i].AssignedAgentID, loans[i].AssignedAgentID)
	}

	user, err := s.LoadCurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "johnc", user.Username)

	require.NoError(t, s.ClearCurrentUser(ctx))

	_, err = s.LoadCurrentUser(ctx)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	backend := docstore.NewMemory()
	s := store.New(backend)

	_, err := s.LoadAgents(ctx)
	require.ErrorIs(t, err, tracker.ErrNotFound)

	require.NoError(t, backend.Put(ctx, store.KeyAgents, []byte(`{not json`)))
	_, err = s.LoadAgents(ctx)
	require.ErrorIs(t, err, tracker.ErrMalformed)

	require.NoError(t, backend.Put(ctx, store.KeyLoans, []byte(`null`)))
	_, err = s.LoadLoans(ctx)
	require.ErrorIs(t, err, tracker.ErrMalformed)
}

func TestStore_ReadsBrowserSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := docstore.NewMemory()

	loans := `[{
		"id": "l1", "accountNumber": "LN009", "product": "Small Enterprise",
		"originalAmount": 1200, "outstandingBalance": 700.5,
		"startDate": "2024-01-15", "maturedOn": "2024-05-15", "passDueDate": null,
		"status": "Outstanding", "assignedAgentId": null,
		"paymentHistory": [{"amount": 499.5, "date": "2024-02-01"}]
	}]`

	require.NoError(t, backend.Put(ctx, store.KeyLoans, []byte(loans)))

	got, err := store.New(backend).LoadLoans(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "700.5", got[0].OutstandingBalance.String())
	assert.Equal(t, "2024-05-15", got[0].MaturedOn.String())
	assert.False(t, got[0].Assigned())
	assert.Nil(t, got[0].CommunicationHistory)
	assert.Equal(t, "499.5", got[0].PaymentHistory[0].Amount.String())
}
