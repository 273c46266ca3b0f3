package loan

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/calendar"
)

var (
	ErrInvalidAmount        = errors.New("payment amount must be greater than zero")
	ErrAmountExceedsBalance = errors.New("payment amount exceeds outstanding balance")
)

// RecordPayment applies a payment made on today and returns the updated loan.
// The input loan is left untouched, also when the payment is rejected.
func RecordPayment(l Loan, amount decimal.Decimal, today calendar.Date) (Loan, error) {
	if amount.Sign() <= 0 {
		return l, ErrInvalidAmount
	}

	if amount.GreaterThan(l.OutstandingBalance) {
		return l, ErrAmountExceedsBalance
	}

	balance := decimal.Max(decimal.Zero, l.OutstandingBalance.Sub(amount))

	l.OutstandingBalance = balance
	l.PaymentHistory = append(slices.Clone(l.PaymentHistory), Payment{Amount: amount, Date: today})
	l.Status = StatusFor(balance)
	l.PassDueDate = pastDueAfterPayment(l, today)

	return l, nil
}

func pastDueAfterPayment(l Loan, today calendar.Date) calendar.Date {
	if l.OutstandingBalance.Sign() <= 0 || l.ExpectedRepaymentDate.IsZero() {
		return calendar.Date{}
	}

	if !today.After(l.ExpectedRepaymentDate) {
		return calendar.Date{}
	}

	if l.PassDueDate.IsZero() {
		return l.ExpectedRepaymentDate
	}

	return l.PassDueDate
}

// PastDue reports the past-due marker for a freshly imported loan: the
// expected repayment date once it has passed with a balance still owed.
func PastDue(balance decimal.Decimal, expected, today calendar.Date) calendar.Date {
	if balance.Sign() <= 0 || expected.IsZero() || !today.After(expected) {
		return calendar.Date{}
	}

	return expected
}
