package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/collecta/internal/sheet"
)

// Format is the container a loan sheet arrives in.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrUnreadable marks upload bytes the decoder could not read as a spreadsheet.
	ErrUnreadable = errors.New("unreadable spreadsheet")
)

// Decoder turns a spreadsheet file into rows of cells.
type Decoder interface {
	Decode(r io.Reader) ([]sheet.Row, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(r io.Reader) ([]sheet.Row, error)

func (f DecoderFunc) Decode(r io.Reader) ([]sheet.Row, error) {
	return f(r)
}

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}
