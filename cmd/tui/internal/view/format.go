package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/calendar"
)

const storeTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}

	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var out []byte
	for i := range len(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}

		out = append(out, intPart[i])
	}

	return sign + string(out) + frac
}

// FormatNullMoney renders an optional amount, "-" when absent.
func FormatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	return FormatMoney(d.Decimal)
}

// FormatDate renders a date as YYYY-MM-DD, "-" when unknown.
func FormatDate(d calendar.Date) string {
	if d.IsZero() {
		return "-"
	}

	return d.String()
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
