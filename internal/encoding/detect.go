// Package encoding exposes imported files as UTF-8 readers, sniffing the
// source charset when the file does not declare one.
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

const sniffLen = 2048

// DecodeReader wraps r in a reader that yields UTF-8.
//
// The charset is resolved in order: byte-order mark, UTF-8 validity of the
// sniffed prefix, chardet heuristic, Windows-1252 fallback. Spreadsheet
// exports on Windows are the reason for the fallback.
func DecodeReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	prefix, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing charset: %w", err)
	}

	if decoded, ok := decodeBOM(br, prefix); ok {
		return decoded, nil
	}

	if utf8.Valid(prefix) {
		return br, nil
	}

	best, err := chardet.NewTextDetector().DetectBest(prefix)
	if err == nil {
		switch best.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

func decodeBOM(br *bufio.Reader, prefix []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(prefix, []byte{0xEF, 0xBB, 0xBF}):
		// UTF-8 BOM carries no information, drop it.
		_, _ = br.Discard(3)
		return br, true
	case bytes.HasPrefix(prefix, []byte{0xFF, 0xFE}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), true
	case bytes.HasPrefix(prefix, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), true
	}

	return nil, false
}
