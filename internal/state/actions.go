package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

type Login struct {
	Username string
}

func (a Login) apply(s State, _ Env) (State, Changes, error) {
	user, ok := agent.FindByUsername(s.Agents, a.Username)
	if !ok {
		return s, Changes{}, fmt.Errorf("%w: %q", ErrUnknownUser, strings.TrimSpace(a.Username))
	}

	s.CurrentUser = &user

	return s, Changes{CurrentUser: true}, nil
}

type Logout struct{}

func (Logout) apply(s State, _ Env) (State, Changes, error) {
	s.CurrentUser = nil
	return s, Changes{CurrentUser: true}, nil
}

// ImportLoans adds freshly parsed loans. With Distribute set the whole
// unassigned pool, old and new, is dealt out to the collectors.
type ImportLoans struct {
	Loans      []loan.Loan
	Distribute bool
}

func (a ImportLoans) apply(s State, _ Env) (State, Changes, error) {
	if !a.Distribute {
		s.Loans = slices.Concat(s.Loans, a.Loans)
		return s, Changes{Loans: true}, nil
	}

	if len(agent.Collectors(s.Agents)) == 0 {
		return s, Changes{}, ErrNoCollectors
	}

	s.Loans = loan.Distribute(a.Loans, s.Loans, s.Agents)

	return s, Changes{Loans: true}, nil
}

type DistributeUnassigned struct{}

func (DistributeUnassigned) apply(s State, env Env) (State, Changes, error) {
	return ImportLoans{Distribute: true}.apply(s, env)
}

// RecordPayment applies a payment dated today. Like the other loan actions it
// takes an optional ActorID: when set, only an admin or the loan's assigned
// agent may change the loan, and anyone else gets ErrLoanNotFound.
type RecordPayment struct {
	LoanID  string
	Amount  decimal.Decimal
	ActorID string
}

func (a RecordPayment) apply(s State, env Env) (State, Changes, error) {
	return updateLoan(s, a.LoanID, a.ActorID, func(l loan.Loan) (loan.Loan, error) {
		return loan.RecordPayment(l, a.Amount, env.Today)
	})
}

type UpdateRemark struct {
	LoanID  string
	Remark  string
	ActorID string
}

func (a UpdateRemark) apply(s State, _ Env) (State, Changes, error) {
	return updateLoan(s, a.LoanID, a.ActorID, func(l loan.Loan) (loan.Loan, error) {
		return loan.UpdateRemark(l, a.Remark), nil
	})
}

// AddCommunication logs a contact on a loan. The author's current name is
// copied into the entry; authors missing from the roster are logged as
// unknown.
type AddCommunication struct {
	LoanID   string
	Type     loan.CommType
	Notes    string
	AuthorID string
	ActorID  string
}

func (a AddCommunication) apply(s State, env Env) (State, Changes, error) {
	var author *agent.Agent
	if found, ok := s.Agent(a.AuthorID); ok {
		author = &found
	}

	entry := loan.NewCommunication(a.Type, a.Notes, author, env.Today, env.NewID())
	if author == nil {
		entry.AgentID = a.AuthorID
	}

	return updateLoan(s, a.LoanID, a.ActorID, func(l loan.Loan) (loan.Loan, error) {
		return loan.AddCommunication(l, entry)
	})
}

type AddAgent struct {
	Name     string
	Username string
}

func (a AddAgent) apply(s State, env Env) (State, Changes, error) {
	name := strings.TrimSpace(a.Name)
	username := strings.TrimSpace(a.Username)

	if name == "" || username == "" {
		return s, Changes{}, ErrInvalidAgent
	}

	s.Agents = append(slices.Clone(s.Agents), agent.Agent{
		ID:       env.NewID(),
		Name:     name,
		Username: username,
	})

	return s, Changes{Agents: true}, nil
}

// DeleteAgent removes a collector from the roster and returns their loans
// to the unassigned pool.
type DeleteAgent struct {
	AgentID string
}

func (a DeleteAgent) apply(s State, _ Env) (State, Changes, error) {
	target, ok := s.Agent(a.AgentID)
	if !ok {
		return s, Changes{}, ErrAgentNotFound
	}

	if target.IsAdmin {
		return s, Changes{}, ErrAdminDelete
	}

	s.Agents = slices.DeleteFunc(slices.Clone(s.Agents), func(ag agent.Agent) bool {
		return ag.ID == a.AgentID
	})
	s.Loans = loan.Unassign(s.Loans, a.AgentID)

	return s, Changes{Agents: true, Loans: true}, nil
}

type DeleteLoan struct {
	LoanID string
}

func (a DeleteLoan) apply(s State, _ Env) (State, Changes, error) {
	i := loan.Index(s.Loans, a.LoanID)
	if i < 0 {
		return s, Changes{}, ErrLoanNotFound
	}

	s.Loans = slices.Delete(slices.Clone(s.Loans), i, i+1)

	return s, Changes{Loans: true}, nil
}

func updateLoan(s State, id, actorID string, fn func(loan.Loan) (loan.Loan, error)) (State, Changes, error) {
	i := loan.Index(s.Loans, id)
	if i < 0 || !s.mayWork(actorID, s.Loans[i]) {
		return s, Changes{}, ErrLoanNotFound
	}

	updated, err := fn(s.Loans[i])
	if err != nil {
		return s, Changes{}, err
	}

	s.Loans = slices.Clone(s.Loans)
	s.Loans[i] = updated

	return s, Changes{Loans: true}, nil
}

func (s State) mayWork(actorID string, l loan.Loan) bool {
	if actorID == "" {
		return true
	}

	actor, ok := s.Agent(actorID)
	if !ok {
		return false
	}

	return actor.IsAdmin || l.AssignedAgentID == actor.ID
}
