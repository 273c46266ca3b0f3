package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
	"github.com/MrJamesThe3rd/collecta/internal/sheet"
)

type Service struct {
	decoders map[Format]Decoder
	parser   *loansheet.Parser
}

// NewService wires the CSV and XLSX decoders to a loan sheet parser that
// reads the current date from clock.
func NewService(clock func() time.Time) *Service {
	return &Service{
		decoders: map[Format]Decoder{
			FormatCSV:  DecoderFunc(sheet.ReadCSV),
			FormatXLSX: DecoderFunc(sheet.ReadXLSX),
		},
		parser: loansheet.NewParser(clock),
	}
}

func (s *Service) Import(format Format, r io.Reader) (*loansheet.Result, error) {
	dec, ok := s.decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	rows, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrUnreadable, format, err)
	}

	res, err := s.parser.Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("parse loans: %w", err)
	}

	return res, nil
}
