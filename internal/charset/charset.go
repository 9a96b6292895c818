// Package charset converts request text between the character sets a QR
// payload may be requested in.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Canonical charset names.
const (
	UTF8   = "UTF-8"
	Latin1 = "ISO-8859-1"
)

// Canonical maps a charset label to its canonical name. Unknown labels are
// returned upper-cased.
func Canonical(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "UTF-8", "UTF8":
		return UTF8
	case "ISO-8859-1", "ISO8859-1", "ISO_8859-1", "LATIN1", "LATIN-1":
		return Latin1
	}
	return n
}

// Supported reports whether name is a charset the service accepts.
func Supported(name string) bool {
	switch Canonical(name) {
	case UTF8, Latin1:
		return true
	}
	return false
}

// Convert maps text, given in the source charset, to the characters it
// denotes in the target charset. The result is always a Go string. When
// either side is ISO-8859-1 every rune of the result is in [0,255]:
// ISO-8859-1 input is decoded byte by byte to the code point of the same
// value, and UTF-8 characters outside that range are replaced by '?'.
//
// Pairs other than UTF-8 and ISO-8859-1 are returned unchanged.
func Convert(text, source, target string) string {
	src, dst := Canonical(source), Canonical(target)
	switch {
	case src == Latin1 && (dst == Latin1 || dst == UTF8):
		return fromLatin1(text)
	case src == UTF8 && dst == Latin1:
		return toLatin1(text)
	}
	return text
}

func fromLatin1(text string) string {
	s, err := charmap.ISO8859_1.NewDecoder().String(text)
	if err != nil {
		// Every byte is a valid Latin-1 character, so this is unreachable.
		return text
	}
	return s
}

func toLatin1(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r == utf8.RuneError && size <= 1 || r > 0xff {
			sb.WriteByte('?')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Encode returns the payload bytes for text in the target charset: Latin-1
// bytes for ISO-8859-1 and UTF-8 bytes for everything else.
func Encode(text, target string) []byte {
	if Canonical(target) != Latin1 {
		return []byte(text)
	}
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
