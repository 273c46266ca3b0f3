package loansheet

import (
	"strings"
	"unicode"

	"github.com/MrJamesThe3rd/collecta/internal/sheet"
)

// field identifies the loan attribute a column feeds.
type field int

const (
	fieldUnknown field = iota
	fieldAccountNumber
	fieldProduct
	fieldOriginalAmount
	fieldTerm
	fieldStartDate
	fieldClient
	fieldBranch
	fieldPhoneNumber
	fieldTotalLiab
	fieldRepaymentAmount
	fieldExpectedRepaymentDate
	fieldRemark
	fieldInterestRepaid
	fieldInterestOutstanding
)

// headerFields maps normalized header text to the field it feeds.
var headerFields = map[string]field{
	"loanaccountnumber":       fieldAccountNumber,
	"accountnumber":           fieldAccountNumber,
	"product":                 fieldProduct,
	"originalamount":          fieldOriginalAmount,
	"loanamount":              fieldOriginalAmount,
	"term":                    fieldTerm,
	"startdate":               fieldStartDate,
	"disburseddate":           fieldStartDate,
	"client":                  fieldClient,
	"branch":                  fieldBranch,
	"phonenumber":             fieldPhoneNumber,
	"totalliab":               fieldTotalLiab,
	"totalliability":          fieldTotalLiab,
	"repaymentamount":         fieldRepaymentAmount,
	"expectedrepaymentamount": fieldRepaymentAmount,
	"repaymentdate":           fieldExpectedRepaymentDate,
	"expectedrepaymentdate":   fieldExpectedRepaymentDate,
	"remark":                  fieldRemark,
	"interestrepaid":          fieldInterestRepaid,
	"interestoutstanding":     fieldInterestOutstanding,
}

// normalizeHeader lower-cases a header and strips every whitespace rune,
// so "Loan Account Number" and "loanaccountnumber" are the same column.
func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

// columnFields resolves every header cell to its field. Unknown headers map
// to fieldUnknown and are ignored while reading rows.
func columnFields(header sheet.Row) []field {
	fields := make([]field, len(header))

	for i, c := range header {
		fields[i] = headerFields[normalizeHeader(c.String())]
	}

	return fields
}
