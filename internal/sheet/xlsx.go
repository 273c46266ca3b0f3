package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX decodes the first worksheet of an Office Open XML workbook.
// Raw cell values are used so that date cells arrive as their numeric serial
// instead of a locale-formatted string.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	name := sheets[0]

	records, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	rows := make([]Row, 0, len(records))

	for rowIdx, rec := range records {
		row := make(Row, len(rec))

		for colIdx, v := range rec {
			if v == "" {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}

			typ, err := f.GetCellType(name, cell)
			if err != nil {
				return nil, fmt.Errorf("cell type %s: %w", cell, err)
			}

			row[colIdx] = classify(typ, v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// classify maps a workbook cell to the tagged union. Cells without an
// explicit type attribute are numeric per the file format.
func classify(typ excelize.CellType, v string) Cell {
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return numberFromRaw(v)
	}

	return Text(v)
}
