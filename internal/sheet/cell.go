package sheet

import (
	"strconv"
	"strings"
)

// Kind tags the value held by a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Cell is a single spreadsheet value as it arrives from the decoder.
// Text always holds the trimmed raw value; Number is only meaningful for KindNumber.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
}

// Text builds a text cell. Blank input yields an empty cell.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}

	return Cell{Kind: KindText, Text: s}
}

// Number builds a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: KindNumber, Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

// numberFromRaw keeps the raw text of a numeric cell so that values like
// account numbers are not reformatted on the way through.
func numberFromRaw(raw string) Cell {
	raw = strings.TrimSpace(raw)

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Text(raw)
	}

	return Cell{Kind: KindNumber, Text: raw, Number: f}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

func (c Cell) String() string {
	return c.Text
}

// Row is an ordered sequence of cells.
type Row []Cell

// At returns the cell at idx, or an empty cell when the row is too short.
func (r Row) At(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return Cell{}
	}

	return r[idx]
}

// Blank reports whether every cell in the row is empty.
func (r Row) Blank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}

	return true
}
