// Package loansheet turns the rows of a loan portfolio spreadsheet into
// loans ready for collection.
package loansheet

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/calendar"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/sheet"
)

var ErrNoHeader = errors.New("sheet has no header row")

const (
	reasonMissingAccount = "missing account number"
	reasonInvalidAmount  = "original amount missing or not positive"
)

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// SkippedRow reports a data row that did not become a loan.
// Row is the 1-based row number in the sheet, the header being row 1.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Result struct {
	Loans   []loan.Loan  `json:"loans"`
	Skipped []SkippedRow `json:"skipped"`
}

// Parser reads loan portfolio sheets. The first row is always the header;
// columns are matched by name so their order does not matter.
type Parser struct {
	clock func() time.Time
	newID func() string
}

// NewParser returns a parser that judges past-due dates against clock.
// A nil clock uses time.Now.
func NewParser(clock func() time.Time) *Parser {
	if clock == nil {
		clock = time.Now
	}

	return &Parser{clock: clock, newID: uuid.NewString}
}

func (p *Parser) Parse(rows []sheet.Row) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	fields := columnFields(rows[0])
	today := calendar.Today(p.clock)

	res := &Result{Loans: []loan.Loan{}, Skipped: []SkippedRow{}}

	for i, row := range rows[1:] {
		if row.Blank() {
			continue
		}

		rowNum := i + 2

		l, reason := p.parseRow(fields, row, today)
		if reason != "" {
			slog.Warn("skipping invalid loan row", "row", rowNum, "reason", reason)
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: reason})

			continue
		}

		res.Loans = append(res.Loans, l)
	}

	return res, nil
}

// parseRow builds a loan from one data row. A non-empty reason means the
// row was rejected.
func (p *Parser) parseRow(fields []field, row sheet.Row, today calendar.Date) (loan.Loan, string) {
	l := loan.Loan{
		ID:                   p.newID(),
		Status:               loan.StatusOutstanding,
		PaymentHistory:       []loan.Payment{},
		CommunicationHistory: []loan.CommunicationLogEntry{},
	}

	var original decimal.NullDecimal

	for idx, f := range fields {
		c := row.At(idx)
		if c.IsEmpty() || f == fieldUnknown {
			continue
		}

		switch f {
		case fieldAccountNumber:
			l.AccountNumber = c.String()
		case fieldProduct:
			l.Product = c.String()
		case fieldOriginalAmount:
			original = parseAmount(c)
		case fieldTerm:
			l.Term = parseTerm(c)
		case fieldStartDate:
			l.StartDate, _ = calendar.Normalize(c)
		case fieldClient:
			l.Client = c.String()
		case fieldBranch:
			l.Branch = c.String()
		case fieldPhoneNumber:
			l.PhoneNumber = c.String()
		case fieldTotalLiab:
			l.TotalLiab = parseAmount(c)
		case fieldRepaymentAmount:
			l.RepaymentAmount = parseAmount(c)
			if !l.RepaymentAmount.Valid {
				l.RepaymentAmount = decimal.NewNullDecimal(decimal.Zero)
			}
		case fieldExpectedRepaymentDate:
			l.ExpectedRepaymentDate, _ = calendar.Normalize(c)
		case fieldRemark:
			l.Remark = c.String()
		case fieldInterestRepaid:
			l.InterestRepaid = parseAmount(c)
		case fieldInterestOutstanding:
			l.InterestOutstanding = parseAmount(c)
		}
	}

	if l.AccountNumber == "" {
		return loan.Loan{}, reasonMissingAccount
	}

	if !original.Valid || original.Decimal.Sign() <= 0 {
		return loan.Loan{}, reasonInvalidAmount
	}

	l.OriginalAmount = original.Decimal
	l.OutstandingBalance = original.Decimal
	l.MaturedOn = maturity(l.Product, l.StartDate)
	l.PassDueDate = loan.PastDue(l.OutstandingBalance, l.ExpectedRepaymentDate, today)

	return l, ""
}

// parseAmount reads a money cell. Text may carry thousands separators,
// spaces and a leading dollar sign.
func parseAmount(c sheet.Cell) decimal.NullDecimal {
	s := strings.ReplaceAll(c.String(), ",", "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(s, "$")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

// parseTerm reads the leading integer of a term cell, e.g. "12 months".
func parseTerm(c sheet.Cell) *int {
	if c.Kind == sheet.KindNumber {
		return new(int(c.Number))
	}

	m := leadingInt.FindString(c.String())
	if m == "" {
		return nil
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}

	return &n
}

// String renders the skipped-row summary shown to the importer.
func (r *Result) String() string {
	return fmt.Sprintf("%d loans imported, %d rows skipped", len(r.Loans), len(r.Skipped))
}
