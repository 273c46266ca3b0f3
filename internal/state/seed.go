package state

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/calendar"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

const (
	SeedAdminID = "00000000-0000-0000-0000-000000000001"
	SeedJohnID  = "00000000-0000-0000-0000-000000000002"
	SeedSarahID = "00000000-0000-0000-0000-000000000003"
)

// SeedAgents is the roster used when nothing has been persisted yet.
func SeedAgents() []agent.Agent {
	return []agent.Agent{
		{ID: SeedAdminID, Name: "Admin User", Username: "admin", IsAdmin: true},
		{ID: SeedJohnID, Name: "John Collector", Username: "johnc"},
		{ID: SeedSarahID, Name: "Sarah Field", Username: "sarahf"},
	}
}

// SeedLoans is a small demo portfolio covering every loan state.
func SeedLoans() []loan.Loan {
	return []loan.Loan{
		{
			ID:                    "00000000-0000-0000-0000-000000000101",
			Client:                "Alice Wonderland",
			Branch:                "Main Street Branch",
			AccountNumber:         "LN001",
			PhoneNumber:           "555-0101",
			Product:               "Small Enterprise",
			OriginalAmount:        money(5000),
			TotalLiab:             nullMoney(5500),
			StartDate:             day("2024-01-15"),
			MaturedOn:             day("2024-05-15"),
			ExpectedRepaymentDate: day("2024-05-15"),
			RepaymentAmount:       nullMoney(5500),
			Remark:                "Client is responsive. Follow up on payment plan.",
			InterestRepaid:        nullMoney(100),
			OutstandingBalance:    money(2000),
			InterestOutstanding:   nullMoney(50),
			Status:                loan.StatusOutstanding,
			AssignedAgentID:       SeedJohnID,
			PaymentHistory: []loan.Payment{
				{Amount: money(1000), Date: day("2024-02-15")},
				{Amount: money(1000), Date: day("2024-03-15")},
				{Amount: money(1000), Date: day("2024-04-15")},
			},
			CommunicationHistory: []loan.CommunicationLogEntry{
				{
					ID:        "00000000-0000-0000-0000-000000000201",
					Date:      day("2024-04-22"),
					Type:      loan.CommSMS,
					Notes:     "Sent reminder SMS about upcoming payment.",
					AgentID:   SeedJohnID,
					AgentName: "John Collector",
				},
				{
					ID:        "00000000-0000-0000-0000-000000000202",
					Date:      day("2024-04-20"),
					Type:      loan.CommCall,
					Notes:     "Called client, discussed payment plan. Client agreed to pay $500 next week.",
					AgentID:   SeedJohnID,
					AgentName: "John Collector",
				},
			},
			Term: new(4),
		},
		{
			ID:                    "00000000-0000-0000-0000-000000000102",
			Client:                "Bob The Builder",
			Branch:                "Downtown Office",
			AccountNumber:         "LN002",
			PhoneNumber:           "555-0202",
			Product:               "Lease Financing",
			OriginalAmount:        money(25000),
			TotalLiab:             nullMoney(28000),
			StartDate:             day("2022-06-01"),
			MaturedOn:             day("2024-12-01"),
			ExpectedRepaymentDate: day("2024-12-01"),
			RepaymentAmount:       nullMoney(28000),
			Remark:                "Paid off ahead of schedule.",
			InterestRepaid:        nullMoney(3000),
			OutstandingBalance:    money(0),
			InterestOutstanding:   nullMoney(0),
			Status:                loan.StatusPaidOff,
			AssignedAgentID:       SeedSarahID,
			PaymentHistory: []loan.Payment{
				{Amount: money(10000), Date: day("2023-01-01")},
				{Amount: money(10000), Date: day("2023-07-01")},
				{Amount: money(5000), Date: day("2024-01-01")},
			},
			CommunicationHistory: []loan.CommunicationLogEntry{},
			Term:                 new(30),
		},
		{
			ID:                    "00000000-0000-0000-0000-000000000103",
			Client:                "Charlie Brown",
			Branch:                "Westside Center",
			AccountNumber:         "LN003",
			PhoneNumber:           "555-0303",
			Product:               "Commercial Product One",
			OriginalAmount:        money(15000),
			TotalLiab:             nullMoney(17000),
			StartDate:             day("2023-11-01"),
			MaturedOn:             day("2025-05-01"),
			ExpectedRepaymentDate: day("2025-05-01"),
			RepaymentAmount:       nullMoney(17000),
			Remark:                "New client, monitor closely.",
			InterestRepaid:        nullMoney(0),
			OutstandingBalance:    money(15000),
			InterestOutstanding:   nullMoney(2000),
			Status:                loan.StatusOutstanding,
			PaymentHistory:        []loan.Payment{},
			CommunicationHistory:  []loan.CommunicationLogEntry{},
			Term:                  new(18),
		},
		{
			ID:                    "00000000-0000-0000-0000-000000000104",
			Client:                "Diana Prince",
			Branch:                "Metropolis HQ",
			AccountNumber:         "LN004",
			PhoneNumber:           "555-0404",
			Product:               "Small Enterprise",
			OriginalAmount:        money(7000),
			TotalLiab:             nullMoney(7700),
			StartDate:             day("2023-12-01"),
			MaturedOn:             day("2024-04-01"),
			ExpectedRepaymentDate: day("2024-04-01"),
			RepaymentAmount:       nullMoney(7700),
			Remark:                "Payment overdue. Follow up required.",
			PassDueDate:           day("2024-04-01"),
			InterestRepaid:        nullMoney(0),
			OutstandingBalance:    money(7000),
			InterestOutstanding:   nullMoney(700),
			Status:                loan.StatusOutstanding,
			AssignedAgentID:       SeedJohnID,
			PaymentHistory:        []loan.Payment{},
			CommunicationHistory:  []loan.CommunicationLogEntry{},
			Term:                  new(4),
		},
		{
			ID:                    "00000000-0000-0000-0000-000000000105",
			Client:                "Edward Scissorhands",
			Branch:                "Suburban Outlet",
			AccountNumber:         "LN005",
			PhoneNumber:           "555-0505",
			Product:               "Medium Enterprise Capital Expenditure",
			OriginalAmount:        money(50000),
			TotalLiab:             nullMoney(58000),
			StartDate:             day("2024-03-01"),
			MaturedOn:             day("2026-09-01"),
			ExpectedRepaymentDate: day("2026-09-01"),
			RepaymentAmount:       nullMoney(58000),
			InterestRepaid:        nullMoney(0),
			OutstandingBalance:    money(50000),
			InterestOutstanding:   nullMoney(8000),
			Status:                loan.StatusOutstanding,
			PaymentHistory:        []loan.Payment{},
			CommunicationHistory:  []loan.CommunicationLogEntry{},
			Term:                  new(30),
		},
	}
}

// Seed is the initial state of a fresh installation.
func Seed() State {
	return State{Agents: SeedAgents(), Loans: SeedLoans()}
}

func money(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func nullMoney(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

func day(s string) calendar.Date {
	d, err := calendar.Parse(s)
	if err != nil {
		panic(err)
	}

	return d
}
