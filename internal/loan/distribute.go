package loan

import (
	"slices"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
)

// Distribute deals the unassigned pool out to the collectors on roster in
// round-robin order. The pool is every unassigned outstanding loan in
// existing, in order, followed by newLoans. Loans outside the pool keep
// their position at the head of the result.
//
// With no collectors the loans are returned concatenated and untouched.
func Distribute(newLoans, existing []Loan, roster []agent.Agent) []Loan {
	collectors := agent.Collectors(roster)
	if len(collectors) == 0 {
		return slices.Concat(existing, newLoans)
	}

	kept := make([]Loan, 0, len(existing))
	pool := make([]Loan, 0, len(existing)+len(newLoans))

	for _, l := range existing {
		if l.Assigned() || !l.Outstanding() {
			kept = append(kept, l)
			continue
		}

		pool = append(pool, l)
	}

	pool = append(pool, newLoans...)

	if len(pool) == 0 {
		return slices.Clone(existing)
	}

	for i := range pool {
		pool[i].AssignedAgentID = collectors[i%len(collectors)].ID
	}

	return append(kept, pool...)
}

// UnassignedOutstanding counts the loans waiting in the distribution pool.
func UnassignedOutstanding(loans []Loan) int {
	n := 0

	for _, l := range loans {
		if !l.Assigned() && l.Outstanding() {
			n++
		}
	}

	return n
}
