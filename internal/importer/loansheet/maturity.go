package loansheet

import (
	"strings"

	"github.com/MrJamesThe3rd/collecta/internal/calendar"
)

// maturityMonths is the tenor of each product with a fixed term.
var maturityMonths = map[string]int{
	"small enterprise":                      4,
	"medium enterprise capital expenditure": 30,
	"lease financing":                       30,
	"commercial product one":                18,
}

// maturity derives the maturity date from the start date and product.
// Products without a fixed tenor have no maturity date.
func maturity(product string, start calendar.Date) calendar.Date {
	if start.IsZero() {
		return calendar.Date{}
	}

	months, ok := maturityMonths[strings.ToLower(strings.TrimSpace(product))]
	if !ok {
		return calendar.Date{}
	}

	return start.AddMonths(months)
}
