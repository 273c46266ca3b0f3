package loan

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
)

// AgentPerformance aggregates the portfolio held by one collector.
type AgentPerformance struct {
	AgentID          string          `json:"agentId"`
	Name             string          `json:"name"`
	AssignedCount    int             `json:"assignedLoansCount"`
	OriginalAssigned decimal.Decimal `json:"totalOriginalAssignedAmount"`
	PaymentsCount    int             `json:"paymentsCollectedCount"`
	Collected        decimal.Decimal `json:"totalAmountCollected"`
	PaidOffCount     int             `json:"paidOffLoansCount"`
	OutstandingCount int             `json:"outstandingLoansCount"`
	TotalOutstanding decimal.Decimal `json:"totalOutstandingAmount"`
}

// Share is one bar of the portfolio snapshot: an agent's outstanding total
// as a percentage of the largest outstanding total.
type Share struct {
	AgentID     string          `json:"agentId"`
	Name        string          `json:"name"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Percent     float64         `json:"percent"`
}

// Performance reports on every non-admin agent in roster order.
func Performance(loans []Loan, agents []agent.Agent) []AgentPerformance {
	collectors := agent.Collectors(agents)
	out := make([]AgentPerformance, 0, len(collectors))

	for _, a := range collectors {
		p := AgentPerformance{
			AgentID:          a.ID,
			Name:             a.Name,
			OriginalAssigned: decimal.Zero,
			Collected:        decimal.Zero,
			TotalOutstanding: decimal.Zero,
		}

		for _, l := range AssignedTo(loans, a.ID) {
			p.AssignedCount++
			p.OriginalAssigned = p.OriginalAssigned.Add(l.OriginalAmount)
			p.PaymentsCount += len(l.PaymentHistory)
			p.Collected = p.Collected.Add(l.Collected())
			p.TotalOutstanding = p.TotalOutstanding.Add(l.OutstandingBalance)

			switch l.Status {
			case StatusPaidOff:
				p.PaidOffCount++
			case StatusOutstanding:
				p.OutstandingCount++
			}
		}

		out = append(out, p)
	}

	return out
}

// PortfolioShare scales each agent's outstanding total against the largest.
// When nobody has anything outstanding every share is zero.
func PortfolioShare(perf []AgentPerformance) []Share {
	peak := decimal.Zero
	for _, p := range perf {
		peak = decimal.Max(peak, p.TotalOutstanding)
	}

	out := make([]Share, 0, len(perf))

	for _, p := range perf {
		s := Share{AgentID: p.AgentID, Name: p.Name, Outstanding: p.TotalOutstanding}

		if peak.Sign() > 0 {
			s.Percent = p.TotalOutstanding.Div(peak).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		out = append(out, s)
	}

	return out
}
