// Package textenc maps encoding labels used in schemas to golang.org/x/text
// encoders and turns strings into terminated byte sequences.
package textenc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/joshuapare/blockkit/internal/format"
)

// DefaultLabel is the encoding used for plain Bytes fields.
const DefaultLabel = "utf-8"

// ErrUnknownEncoding is returned by Lookup for labels it does not know.
var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

var byLabel = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-32le":     utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf-32be":     utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"shift_jis":    japanese.ShiftJIS,
	"sjis":         japanese.ShiftJIS,
}

// Lookup returns the encoding registered for label. Labels are matched
// case-insensitively.
func Lookup(label string) (encoding.Encoding, error) {
	enc, ok := byLabel[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// Labels returns every label Lookup accepts.
func Labels() []string {
	out := make([]string, 0, len(byLabel))
	for l := range byLabel {
		out = append(out, l)
	}
	return out
}

// Encode converts s with enc and appends format.Terminator.
// A nil enc means UTF-8.
//
// Example:
//
//	Encode(nil, "Hi") -> []byte{'H', 'i', 0x00}
//	Encode(utf16le, "Hi") -> []byte{'H', 0x00, 'i', 0x00, 0x00}
func Encode(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == nil || enc == unicode.UTF8 {
		out := make([]byte, 0, len(s)+format.TerminatorSize)
		out = append(out, s...)
		return append(out, format.Terminator), nil
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return append(encoded, format.Terminator), nil
}
