// Package tabular reads and writes the flat files around the cleaning
// pipeline: delimited text in a configurable encoding, and xlsx workbooks.
package tabular

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported text encodings.
const (
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows1252"
	EncodingUTF8        = "utf8"
)

// Encodings lists the accepted encoding names.
var Encodings = []string{EncodingLatin1, EncodingWindows1252, EncodingUTF8}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// canonicalEncoding maps a configured name, accepting common aliases, to one
// of the Encoding* constants.
func canonicalEncoding(name string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "latin1", "iso88591", "":
		return EncodingLatin1, nil
	case "windows1252", "cp1252":
		return EncodingWindows1252, nil
	case "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want one of %s)", name, strings.Join(Encodings, ", "))
	}
}

func lookupEncoding(name string) (encoding.Encoding, string, error) {
	canon, err := canonicalEncoding(name)
	if err != nil {
		return nil, "", err
	}
	switch canon {
	case EncodingWindows1252:
		return charmap.Windows1252, canon, nil
	case EncodingUTF8:
		return unicode.UTF8, canon, nil
	default:
		return charmap.ISO8859_1, canon, nil
	}
}

// DecodeReader wraps r so it yields UTF-8 text. A leading UTF-8 BOM is
// dropped whatever the declared encoding; for utf8 input invalid byte
// sequences become U+FFFD.
func DecodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, _, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// EncodeWriter wraps w so UTF-8 text written to it is stored in the named
// encoding. Runes the target cannot represent are replaced. The returned
// writer must be closed to flush; closing does not close w.
func EncodeWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, canon, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if canon == EncodingUTF8 {
		return nopWriteCloser{w}, nil
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
