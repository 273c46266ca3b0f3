// Package tracker owns the live application state: it loads the persisted
// documents, applies actions and saves whatever an action changed.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/calendar"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/state"
)

var (
	// ErrNotFound marks a document that has never been saved.
	ErrNotFound = errors.New("document not found")
	// ErrMalformed marks a document that exists but cannot be decoded.
	ErrMalformed = errors.New("malformed document")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tracker
type Repository interface {
	LoadAgents(ctx context.Context) ([]agent.Agent, error)
	SaveAgents(ctx context.Context, agents []agent.Agent) error

	LoadLoans(ctx context.Context) ([]loan.Loan, error)
	SaveLoans(ctx context.Context, loans []loan.Loan) error

	LoadCurrentUser(ctx context.Context) (*agent.Agent, error)
	SaveCurrentUser(ctx context.Context, user agent.Agent) error
	ClearCurrentUser(ctx context.Context) error
}

// ImportSummary describes the outcome of a spreadsheet upload.
type ImportSummary struct {
	Imported    int                    `json:"imported"`
	Skipped     []loansheet.SkippedRow `json:"skipped"`
	Distributed bool                   `json:"distributed"`
}

type Service struct {
	repo     Repository
	importer *importer.Service
	clock    func() time.Time
	newID    func() string

	mu    sync.Mutex
	state state.State
}

type Option func(*Service)

// WithClock overrides the source of today's date.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator overrides how new loan, agent and log ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(repo Repository, imp *importer.Service, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		importer: imp,
		clock:    time.Now,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads the persisted documents. Missing or unreadable roster and
// loan documents fall back to the seed data, which is saved straight away.
// A stored current user survives only if the roster still knows them.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents, err := s.repo.LoadAgents(ctx)
	if err != nil {
		if !isRecoverable(err) {
			return fmt.Errorf("load agents: %w", err)
		}

		slog.Warn("agents document unavailable, using seed data", "error", err)

		agents = state.SeedAgents()
		if err := s.repo.SaveAgents(ctx, agents); err != nil {
			return fmt.Errorf("save seed agents: %w", err)
		}
	}

	loans, err := s.repo.LoadLoans(ctx)
	if err != nil {
		if !isRecoverable(err) {
			return fmt.Errorf("load loans: %w", err)
		}

		slog.Warn("loans document unavailable, using seed data", "error", err)

		loans = state.SeedLoans()
		if err := s.repo.SaveLoans(ctx, loans); err != nil {
			return fmt.Errorf("save seed loans: %w", err)
		}
	}

	for i := range loans {
		if loans[i].PaymentHistory == nil {
			loans[i].PaymentHistory = []loan.Payment{}
		}

		if loans[i].CommunicationHistory == nil {
			loans[i].CommunicationHistory = []loan.CommunicationLogEntry{}
		}
	}

	current, err := s.repo.LoadCurrentUser(ctx)
	if err != nil {
		if !isRecoverable(err) {
			return fmt.Errorf("load current user: %w", err)
		}

		current = nil
	}

	if current != nil {
		known, ok := agent.FindByID(agents, current.ID)
		if !ok || known.Username != current.Username {
			slog.Info("discarding stale session", "agent_id", current.ID)

			current = nil
		} else {
			current = &known
		}
	}

	s.state = state.State{Agents: agents, Loans: loans, CurrentUser: current}

	return nil
}

func isRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformed)
}

// Snapshot returns the current state. Callers must treat it as read-only.
func (s *Service) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Dispatch applies an action and saves every document it changed. When a
// save fails the in-memory state has still moved on; the next successful
// save of that document catches the store up.
func (s *Service) Dispatch(ctx context.Context, action state.Action) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := state.Env{Today: calendar.Today(s.clock), NewID: s.newID}

	next, changes, err := state.Reduce(s.state, action, env)
	if err != nil {
		return s.state, err
	}

	s.state = next

	if err := s.persist(ctx, changes); err != nil {
		return s.state, err
	}

	return s.state, nil
}

func (s *Service) persist(ctx context.Context, changes state.Changes) error {
	if changes.Agents {
		if err := s.repo.SaveAgents(ctx, s.state.Agents); err != nil {
			return fmt.Errorf("save agents: %w", err)
		}
	}

	if changes.Loans {
		if err := s.repo.SaveLoans(ctx, s.state.Loans); err != nil {
			return fmt.Errorf("save loans: %w", err)
		}
	}

	if changes.CurrentUser {
		if s.state.CurrentUser == nil {
			if err := s.repo.ClearCurrentUser(ctx); err != nil {
				return fmt.Errorf("clear current user: %w", err)
			}

			return nil
		}

		if err := s.repo.SaveCurrentUser(ctx, *s.state.CurrentUser); err != nil {
			return fmt.Errorf("save current user: %w", err)
		}
	}

	return nil
}

// Authenticate resolves a username against the roster without touching the
// persisted session.
func (s *Service) Authenticate(username string) (agent.Agent, error) {
	a, ok := agent.FindByUsername(s.Snapshot().Agents, username)
	if !ok {
		return agent.Agent{}, state.ErrUnknownUser
	}

	return a, nil
}

func (s *Service) Login(ctx context.Context, username string) (agent.Agent, error) {
	st, err := s.Dispatch(ctx, state.Login{Username: username})
	if err != nil {
		return agent.Agent{}, err
	}

	return *st.CurrentUser, nil
}

func (s *Service) Logout(ctx context.Context) error {
	_, err := s.Dispatch(ctx, state.Logout{})
	return err
}

// RecordPayment acts on behalf of actorID, who must be an admin or the loan's
// assigned agent when the change is applied. UpdateRemark and
// AddCommunication check the actor the same way.
func (s *Service) RecordPayment(ctx context.Context, actorID, loanID string, amount decimal.Decimal) (loan.Loan, error) {
	return s.dispatchLoan(ctx, loanID, state.RecordPayment{LoanID: loanID, Amount: amount, ActorID: actorID})
}

func (s *Service) UpdateRemark(ctx context.Context, actorID, loanID, remark string) (loan.Loan, error) {
	return s.dispatchLoan(ctx, loanID, state.UpdateRemark{LoanID: loanID, Remark: remark, ActorID: actorID})
}

// AddCommunication logs the entry under actorID's name.
func (s *Service) AddCommunication(ctx context.Context, actorID, loanID string, typ loan.CommType, notes string) (loan.Loan, error) {
	return s.dispatchLoan(ctx, loanID, state.AddCommunication{
		LoanID:   loanID,
		Type:     typ,
		Notes:    notes,
		AuthorID: actorID,
		ActorID:  actorID,
	})
}

func (s *Service) dispatchLoan(ctx context.Context, loanID string, action state.Action) (loan.Loan, error) {
	st, err := s.Dispatch(ctx, action)
	if err != nil {
		return loan.Loan{}, err
	}

	l, _ := st.Loan(loanID)

	return l, nil
}

func (s *Service) DeleteLoan(ctx context.Context, loanID string) error {
	_, err := s.Dispatch(ctx, state.DeleteLoan{LoanID: loanID})
	return err
}

func (s *Service) DistributeUnassigned(ctx context.Context) error {
	_, err := s.Dispatch(ctx, state.DistributeUnassigned{})
	return err
}

func (s *Service) AddAgent(ctx context.Context, name, username string) (agent.Agent, error) {
	st, err := s.Dispatch(ctx, state.AddAgent{Name: name, Username: username})
	if err != nil {
		return agent.Agent{}, err
	}

	return st.Agents[len(st.Agents)-1], nil
}

func (s *Service) DeleteAgent(ctx context.Context, agentID string) error {
	_, err := s.Dispatch(ctx, state.DeleteAgent{AgentID: agentID})
	return err
}

// ImportFile parses an uploaded loan sheet and adds its loans, dealing the
// unassigned pool out to the collectors when distribute is set. A sheet
// without a single valid loan leaves the state untouched.
func (s *Service) ImportFile(ctx context.Context, format importer.Format, r io.Reader, distribute bool) (*ImportSummary, error) {
	res, err := s.importer.Import(format, r)
	if err != nil {
		return nil, fmt.Errorf("import loans: %w", err)
	}

	summary := &ImportSummary{Imported: len(res.Loans), Skipped: res.Skipped}

	if len(res.Loans) == 0 {
		return summary, nil
	}

	if _, err := s.Dispatch(ctx, state.ImportLoans{Loans: res.Loans, Distribute: distribute}); err != nil {
		return nil, err
	}

	summary.Distributed = distribute

	slog.Info("imported loans", "imported", summary.Imported, "skipped", len(summary.Skipped), "distributed", distribute)

	return summary, nil
}
