package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV decodes a delimited text export into rows. The separator is
// sniffed from the first line so both comma and semicolon exports work.
// Cells that parse as numbers become numeric cells that keep their raw
// text, so day serials and amounts read the same as from a workbook.
func ReadCSV(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	data, err := toUTF8(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		row := make(Row, len(rec))
		for i, v := range rec {
			row[i] = numberFromRaw(v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func sniffSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}
