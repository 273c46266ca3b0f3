package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/docstore"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

// Document keys. They match the keys the browser build kept in local storage,
// so an exported snapshot can be loaded as is.
const (
	KeyAgents      = "agents"
	KeyLoans       = "loans"
	KeyCurrentUser = "loggedInUser"
)

// Store implements tracker.Repository as JSON documents on a docstore backend.
type Store struct {
	backend docstore.Backend
}

func New(backend docstore.Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) LoadAgents(ctx context.Context) ([]agent.Agent, error) {
	var agents []agent.Agent
	if err := s.load(ctx, KeyAgents, &agents); err != nil {
		return nil, err
	}

	if agents == nil {
		return nil, fmt.Errorf("%w: %s is null", tracker.ErrMalformed, KeyAgents)
	}

	return agents, nil
}

func (s *Store) SaveAgents(ctx context.Context, agents []agent.Agent) error {
	return s.save(ctx, KeyAgents, agents)
}

func (s *Store) LoadLoans(ctx context.Context) ([]loan.Loan, error) {
	var loans []loan.Loan
	if err := s.load(ctx, KeyLoans, &loans); err != nil {
		return nil, err
	}

	if loans == nil {
		return nil, fmt.Errorf("%w: %s is null", tracker.ErrMalformed, KeyLoans)
	}

	return loans, nil
}

func (s *Store) SaveLoans(ctx context.Context, loans []loan.Loan) error {
	return s.save(ctx, KeyLoans, loans)
}

func (s *Store) LoadCurrentUser(ctx context.Context) (*agent.Agent, error) {
	var user *agent.Agent
	if err := s.load(ctx, KeyCurrentUser, &user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Store) SaveCurrentUser(ctx context.Context, user agent.Agent) error {
	return s.save(ctx, KeyCurrentUser, user)
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if err := s.backend.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("delete %s: %w", KeyCurrentUser, err)
	}

	return nil
}

func (s *Store) load(ctx context.Context, key string, dst any) error {
	body, err := s.backend.Get(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return tracker.ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", tracker.ErrMalformed, key, err)
	}

	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.backend.Put(ctx, key, body); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}
