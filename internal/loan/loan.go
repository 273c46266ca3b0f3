package loan

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/calendar"
)

// Status is the repayment state of a loan, derived from its balance.
type Status string

const (
	StatusOutstanding Status = "Outstanding"
	StatusPaidOff     Status = "Paid Off"
)

// CommType is the channel a collection contact went through.
type CommType string

const (
	CommCall  CommType = "Call"
	CommEmail CommType = "Email"
	CommVisit CommType = "Visit"
	CommSMS   CommType = "SMS"
	CommOther CommType = "Other"
)

// CommTypes lists the accepted channels in display order.
var CommTypes = []CommType{CommCall, CommEmail, CommVisit, CommSMS, CommOther}

func (t CommType) Valid() bool {
	for _, c := range CommTypes {
		if c == t {
			return true
		}
	}

	return false
}

// Payment is a single repayment applied to a loan.
type Payment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   calendar.Date   `json:"date"`
}

// CommunicationLogEntry records one contact with the client. AgentName is a
// snapshot of the author's name at the time of writing.
type CommunicationLogEntry struct {
	ID        string        `json:"id"`
	Date      calendar.Date `json:"date"`
	Type      CommType      `json:"type"`
	Notes     string        `json:"notes"`
	AgentID   string        `json:"agentId"`
	AgentName string        `json:"agentName"`
}

// Loan is one debt obligation under collection. An empty AssignedAgentID
// means the loan is in the unassigned pool.
type Loan struct {
	ID                    string                  `json:"id"`
	AccountNumber         string                  `json:"accountNumber"`
	Client                string                  `json:"client,omitempty"`
	Branch                string                  `json:"branch,omitempty"`
	PhoneNumber           string                  `json:"phoneNumber,omitempty"`
	Product               string                  `json:"product"`
	OriginalAmount        decimal.Decimal         `json:"originalAmount"`
	TotalLiab             decimal.NullDecimal     `json:"totalLiab"`
	RepaymentAmount       decimal.NullDecimal     `json:"repaymentAmount"`
	InterestRepaid        decimal.NullDecimal     `json:"interestRepaid"`
	InterestOutstanding   decimal.NullDecimal     `json:"interestOutstanding"`
	StartDate             calendar.Date           `json:"startDate"`
	MaturedOn             calendar.Date           `json:"maturedOn"`
	ExpectedRepaymentDate calendar.Date           `json:"expectedRepaymentDate"`
	PassDueDate           calendar.Date           `json:"passDueDate"`
	Remark                string                  `json:"remark,omitempty"`
	Status                Status                  `json:"status"`
	OutstandingBalance    decimal.Decimal         `json:"outstandingBalance"`
	AssignedAgentID       string                  `json:"assignedAgentId"`
	PaymentHistory        []Payment               `json:"paymentHistory"`
	CommunicationHistory  []CommunicationLogEntry `json:"communicationHistory"`
	Term                  *int                    `json:"term,omitempty"`
}

func (l Loan) Assigned() bool {
	return l.AssignedAgentID != ""
}

func (l Loan) Outstanding() bool {
	return l.Status == StatusOutstanding
}

// Collected sums every payment recorded against the loan.
func (l Loan) Collected() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.PaymentHistory {
		total = total.Add(p.Amount)
	}

	return total
}

// StatusFor derives the status a loan with the given balance must have.
func StatusFor(balance decimal.Decimal) Status {
	if balance.Sign() <= 0 {
		return StatusPaidOff
	}

	return StatusOutstanding
}

// Index returns the position of the loan with the given id, or -1.
func Index(loans []Loan, id string) int {
	for i, l := range loans {
		if l.ID == id {
			return i
		}
	}

	return -1
}
