package qrmatrix

import (
	"fmt"
	"strings"
)

// Level is a QR error correction level.
type Level byte

// From least to most tolerant of damage.
const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// ParseLevel parses one of L, M, Q or H (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", byte(l))
}

// Provider produces the module matrix for a payload.
// Implementations report unencodable payloads as *errors.EncodingError.
type Provider interface {
	Encode(payload []byte, level Level) (*Matrix, error)
	Name() string
}

// Provider names accepted by New.
const (
	Skip2  = "skip2"
	Yeqown = "yeqown"
)

// New returns the provider registered under name.
func New(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Skip2:
		return NewSkip2(), nil
	case Yeqown:
		return NewYeqown(), nil
	}
	return nil, fmt.Errorf("unknown QR encoder %q (want %s or %s)", name, Skip2, Yeqown)
}
