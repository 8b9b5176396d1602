// Package textenc repairs strings that a transport decoded with the wrong
// character set.
package textenc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Latin1 is the single-byte charset multipart clients commonly get decoded as.
var Latin1 encoding.Encoding = charmap.ISO8859_1

// Reinterpret re-encodes s with the charset it was wrongly decoded as and
// reads the resulting bytes back as UTF-8.
//
// The second return value reports whether a repair happened. When s cannot be
// represented in decodedAs (it already holds multi-byte runes) or the bytes
// are not valid UTF-8, s is returned unchanged.
func Reinterpret(s string, decodedAs encoding.Encoding) (string, bool) {
	raw, err := decodedAs.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return s, false
	}
	if !utf8.Valid(raw) {
		return s, false
	}
	repaired := string(raw)
	return repaired, repaired != s
}

// RepairFilename applies the Latin-1 to UTF-8 reinterpretation used for
// uploaded file names.
func RepairFilename(name string) string {
	repaired, _ := Reinterpret(name, Latin1)
	return repaired
}
