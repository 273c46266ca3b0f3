package calendar

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/MrJamesThe3rd/collecta/internal/sheet"
)

const (
	// maxSerial bounds the numeric range treated as a spreadsheet date serial.
	maxSerial = 60000
	// leapBugSerial is 1900-02-29, a day that exists only in spreadsheet serials.
	leapBugSerial = 60
)

var (
	serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

	dayMonYear = regexp.MustCompile(`(?i)^(\d{1,2})-(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)-(\d{2}|\d{4})$`)
	isoDate    = regexp.MustCompile(`^(\d{4})[-/](\d{2})[-/](\d{2})$`)
	usDate     = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)

	monthAbbr = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
)

// Normalize turns a spreadsheet cell into a civil date. It never fails: any
// value it cannot read confidently yields false, which callers store as null.
// Numeric cells are only ever read as day serials.
func Normalize(c sheet.Cell) (Date, bool) {
	switch c.Kind {
	case sheet.KindEmpty:
		return Date{}, false
	case sheet.KindNumber:
		return fromSerial(c.Number)
	}

	return NormalizeString(c.Text)
}

// NormalizeString applies the textual rules of Normalize.
func NormalizeString(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}

	if m := dayMonYear.FindStringSubmatch(s); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year = expandYear(year)
		}

		return New(year, monthAbbr[strings.ToLower(m[2])], atoi(m[1]))
	}

	if m := isoDate.FindStringSubmatch(s); m != nil {
		return New(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}

	if m := usDate.FindStringSubmatch(s); m != nil {
		return New(atoi(m[3]), time.Month(atoi(m[1])), atoi(m[2]))
	}

	// Long digit runs are IDs or epoch stamps, not dates.
	if len(s) > 8 && allDigits(s) {
		return Date{}, false
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() <= 1900 {
		return Date{}, false
	}

	return FromTime(t), true
}

// fromSerial converts a spreadsheet day serial, where serial 1 is 1900-01-01
// and serial 60 is the nonexistent 1900-02-29.
func fromSerial(f float64) (Date, bool) {
	if math.IsNaN(f) || f <= 0 || f >= maxSerial {
		return Date{}, false
	}

	days := int(math.Floor(f))

	switch {
	case days == 0, days == leapBugSerial:
		return Date{}, false
	case days < leapBugSerial:
		days++
	}

	return Date{t: serialEpoch.AddDate(0, 0, days)}, true
}

func expandYear(yy int) int {
	if yy < 50 {
		return 2000 + yy
	}

	return 1900 + yy
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
