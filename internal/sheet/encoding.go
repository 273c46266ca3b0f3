package sheet

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sniffLen bounds how much of the file the charset detector looks at.
const sniffLen = 4096

// toUTF8 decodes a text export into UTF-8. Spreadsheet tools on Windows still
// write CSV as UTF-16 or Windows-1252, so the encoding is detected from the
// byte order mark first, then validity, then chardet, falling back to Windows-1252.
func toUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], nil
	}

	var dec encoding.Encoding

	switch {
	case bytes.HasPrefix(data, bomUTF16LE):
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(data, bomUTF16BE):
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case utf8.Valid(data):
		return data, nil
	default:
		dec = detectLegacy(data)
	}

	out, _, err := transform.Bytes(dec.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}

	return out, nil
}

func detectLegacy(data []byte) encoding.Encoding {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9
	case "ISO-8859-15":
		return charmap.ISO8859_15
	}

	return charmap.Windows1252
}
