// Package calendar holds the civil date type used across loans and the
// normalizer that turns spreadsheet input into it.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical textual form of a Date.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a civil date with no time of day or zone. The zero value is the
// null date and marshals to JSON null.
type Date struct {
	t time.Time
}

// New builds a date from civil fields. It reports false when the fields do
// not name a real day, e.g. February 30.
func New(year int, month time.Month, day int) (Date, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}

	return Date{t: t}, true
}

// FromTime takes the civil fields of t in its own location.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}

	y, m, d := t.Date()

	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current civil date according to clock. A nil clock uses time.Now.
func Today(clock func() time.Time) Date {
	if clock == nil {
		clock = time.Now
	}

	return FromTime(clock())
}

// Parse is the strict inverse of String.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return Date{t: t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// AddDays shifts the date by n days.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}

	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths shifts the date by n calendar months. Day overflow rolls into
// the following month the way time.AddDate does.
func (d Date) AddMonths(n int) Date {
	if d.IsZero() {
		return d
	}

	return Date{t: d.t.AddDate(0, n, 0)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format(Layout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*d = Date{}
		return nil
	}

	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}

	return d.UnmarshalText(b[1 : len(b)-1])
}
