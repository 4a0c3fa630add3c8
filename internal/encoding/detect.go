package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is enough bytes for BOM detection and charset heuristics.
const peekSize = 2048

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8, whatever the
// payload's original encoding. Backups and CSV files come from
// spreadsheets and editors that love UTF-16 BOMs and legacy Latin
// charsets, so detection goes: BOM, then a UTF-8 validity check, then
// a chardet heuristic, then a Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if decoded, ok := decodeBOM(br, buf); ok {
		return decoded, nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return decodeLegacy(br, buf), nil
}

// decodeBOM handles byte-order-marked input. The UTF-8 BOM is
// stripped; UTF-16 is decoded.
func decodeBOM(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// decodeLegacy picks a single-byte decoder via chardet, defaulting to
// Windows-1252 (a superset of ISO-8859-1, and the most common reality
// for "Latin-1" files).
func decodeLegacy(br *bufio.Reader, buf []byte) io.Reader {
	decoder := charmap.Windows1252.NewDecoder()

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		switch result.Charset {
		case "ISO-8859-9":
			decoder = charmap.ISO8859_9.NewDecoder()
		case "ISO-8859-15":
			decoder = charmap.ISO8859_15.NewDecoder()
		}
	}

	return transform.NewReader(br, decoder)
}
