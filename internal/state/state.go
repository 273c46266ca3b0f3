// Package state holds the whole application state and the pure transitions
// applied to it. Every change goes through Reduce.
package state

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/calendar"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

var (
	ErrUnknownUser   = errors.New("unknown username")
	ErrNoCollectors  = errors.New("no collection agents available for distribution")
	ErrInvalidAgent  = errors.New("agent name and username are required")
	ErrAdminDelete   = errors.New("admin agents cannot be deleted")
	ErrLoanNotFound  = errors.New("loan not found")
	ErrAgentNotFound = errors.New("agent not found")
)

// State is everything the tracker persists. CurrentUser is nil when nobody
// is logged in.
type State struct {
	Agents      []agent.Agent
	Loans       []loan.Loan
	CurrentUser *agent.Agent
}

// Changes reports which persisted documents an action touched.
type Changes struct {
	Agents      bool
	Loans       bool
	CurrentUser bool
}

func (c Changes) Any() bool {
	return c.Agents || c.Loans || c.CurrentUser
}

// Env supplies the impure inputs of a transition.
type Env struct {
	Today calendar.Date
	NewID func() string
}

// DefaultEnv reads the date from the wall clock and mints random UUIDs.
func DefaultEnv() Env {
	return NewEnv(time.Now)
}

func NewEnv(clock func() time.Time) Env {
	return Env{Today: calendar.Today(clock), NewID: uuid.NewString}
}

// Action is a single state transition.
type Action interface {
	apply(s State, env Env) (State, Changes, error)
}

// Reduce applies a to s. On error the returned state is s unchanged.
func Reduce(s State, a Action, env Env) (State, Changes, error) {
	if env.NewID == nil {
		env.NewID = uuid.NewString
	}

	next, changes, err := a.apply(s, env)
	if err != nil {
		return s, Changes{}, err
	}

	return next, changes, nil
}

// Agent returns the roster entry with the given id.
func (s State) Agent(id string) (agent.Agent, bool) {
	return agent.FindByID(s.Agents, id)
}

// Loan returns the loan with the given id.
func (s State) Loan(id string) (loan.Loan, bool) {
	if i := loan.Index(s.Loans, id); i >= 0 {
		return s.Loans[i], true
	}

	return loan.Loan{}, false
}

// VisibleLoans is the portfolio the given agent works: everything for an
// admin, the agent's own loans otherwise.
func (s State) VisibleLoans(a agent.Agent) []loan.Loan {
	if a.IsAdmin {
		return s.Loans
	}

	return loan.AssignedTo(s.Loans, a.ID)
}
