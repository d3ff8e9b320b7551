// Package encoding normalizes uploaded files to UTF-8. Phone-booking logs
// arrive as spreadsheet exports saved on whatever machine the office uses,
// so the charset is anyone's guess.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type bom struct {
	prefix  []byte
	decoder *encoding.Decoder
}

// A nil decoder means the BOM is stripped and the rest passed through.
var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}},
	{prefix: []byte{0xFF, 0xFE}, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()},
	{prefix: []byte{0xFE, 0xFF}, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()},
}

// NewUTF8Reader wraps r so its content reads as UTF-8: a BOM decides
// directly, valid UTF-8 passes through, otherwise chardet guesses and
// Windows-1250 is the fallback (Central European, the office default).
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, nil
		}

		return transform.NewReader(br, b.decoder), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, guessDecoder(buf)), nil
}

func guessDecoder(buf []byte) *encoding.Decoder {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "ISO-8859-1", "windows-1252":
			return charmap.Windows1252.NewDecoder()
		case "ISO-8859-2", "windows-1250":
			return charmap.Windows1250.NewDecoder()
		}
	}

	return charmap.Windows1250.NewDecoder()
}
