// Package params validates raw request fields and normalizes them into a
// typed QR rendering request.
package params

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cristianadrielbraun/qrapi/internal/charset"
	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
	"github.com/cristianadrielbraun/qrapi/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrapi/internal/render"
)

// Request field names.
const (
	FieldData          = "data"
	FieldSize          = "size"
	FieldCharsetSource = "charset-source"
	FieldCharsetTarget = "charset-target"
	FieldECC           = "ecc"
	FieldColor         = "color"
	FieldBgColor       = "bgcolor"
	FieldMargin        = "margin"
	FieldQuietZone     = "qzone"
	FieldFormat        = "format"
)

// Fields lists every field the normalizer reads.
var Fields = []string{
	FieldData, FieldSize, FieldCharsetSource, FieldCharsetTarget, FieldECC,
	FieldColor, FieldBgColor, FieldMargin, FieldQuietZone, FieldFormat,
}

// Limits and defaults.
const (
	DefaultMaxDataLength = 900
	DefaultSize          = 200
	DefaultMargin        = 1
	MinSize              = 10
	MaxRasterSize        = 1000
	MaxVectorSize        = 1000000
	MaxMargin            = 50
	MaxQuietZone         = 100
)

var (
	defaultForeground = color.RGBA{A: 0xff}
	defaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Request is a validated QR rendering request.
type Request struct {
	Data          string
	SourceCharset string
	TargetCharset string
	Payload       []byte
	Level         qrmatrix.Level
	Render        render.Config
}

// Key returns a stable identifier of everything that affects the output.
func (r *Request) Key() string {
	parts := []any{
		hex.EncodeToString(r.Payload),
		r.Level.String(),
		r.Render.Size,
		r.Render.Margin,
		r.Render.QuietZone,
		FormatColor(r.Render.Foreground),
		FormatColor(r.Render.Background),
		string(r.Render.Format),
	}
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return "qr:" + hex.EncodeToString(sum[:16])
}

// Normalizer turns raw string fields into a Request.
type Normalizer struct {
	MaxDataLength int
}

// NewNormalizer returns a Normalizer accepting up to maxData characters of
// data; zero or less selects DefaultMaxDataLength.
func NewNormalizer(maxData int) *Normalizer {
	if maxData <= 0 {
		maxData = DefaultMaxDataLength
	}
	return &Normalizer{MaxDataLength: maxData}
}

// Normalize validates raw and returns the request it describes. Missing or
// empty optional fields take their defaults. The first invalid field aborts
// with an *errors.ParameterError.
func (n *Normalizer) Normalize(raw map[string]string) (*Request, error) {
	get := func(field string) string { return strings.TrimSpace(raw[field]) }

	format := render.FormatPNG
	if v := get(FieldFormat); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			return nil, apperrors.Parameter(FieldFormat, "must be one of png, svg, jpg, gif")
		}
		format = f
	}

	data := raw[FieldData]
	if data == "" {
		return nil, apperrors.Parameter(FieldData, "is required")
	}
	if l := dataLength(data, get(FieldCharsetSource)); l > n.MaxDataLength {
		return nil, apperrors.Parameter(FieldData, "is %d characters long, maximum is %d", l, n.MaxDataLength)
	}

	size, err := parseSize(get(FieldSize), format)
	if err != nil {
		return nil, err
	}

	src, err := parseCharset(FieldCharsetSource, get(FieldCharsetSource))
	if err != nil {
		return nil, err
	}
	dst, err := parseCharset(FieldCharsetTarget, get(FieldCharsetTarget))
	if err != nil {
		return nil, err
	}

	level := qrmatrix.LevelL
	if v := get(FieldECC); v != "" {
		if level, err = qrmatrix.ParseLevel(v); err != nil {
			return nil, apperrors.Parameter(FieldECC, "must be one of L, M, Q, H")
		}
	}

	fg, err := parseColorField(FieldColor, get(FieldColor), defaultForeground)
	if err != nil {
		return nil, err
	}
	bg, err := parseColorField(FieldBgColor, get(FieldBgColor), defaultBackground)
	if err != nil {
		return nil, err
	}

	margin, err := parseRange(FieldMargin, get(FieldMargin), DefaultMargin, 0, MaxMargin)
	if err != nil {
		return nil, err
	}
	qzone, err := parseRange(FieldQuietZone, get(FieldQuietZone), 0, 0, MaxQuietZone)
	if err != nil {
		return nil, err
	}

	text := charset.Convert(data, src, dst)
	return &Request{
		Data:          data,
		SourceCharset: src,
		TargetCharset: dst,
		Payload:       charset.Encode(text, dst),
		Level:         level,
		Render: render.Config{
			Size:       size,
			Margin:     margin,
			QuietZone:  qzone,
			Foreground: fg,
			Background: bg,
			Format:     format,
		},
	}, nil
}

// dataLength counts characters of data in its declared charset. Latin-1
// input has one character per byte.
func dataLength(data, source string) int {
	if charset.Canonical(source) == charset.Latin1 {
		return len(data)
	}
	return utf8.RuneCountInString(data)
}

// parseSize accepts "WxH" with W == H, or a single number.
func parseSize(v string, format render.Format) (int, error) {
	maxSize := MaxRasterSize
	if format.Vector() {
		maxSize = MaxVectorSize
	}
	if v == "" {
		return DefaultSize, nil
	}

	w, h := v, v
	if i := strings.IndexAny(v, "xX"); i >= 0 {
		w, h = v[:i], v[i+1:]
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return 0, apperrors.Parameter(FieldSize, "%q is not of the form WIDTHxHEIGHT", v)
	}
	if width != height {
		return 0, apperrors.Parameter(FieldSize, "QR codes are square, got %dx%d", width, height)
	}
	if width < MinSize || width > maxSize {
		return 0, apperrors.Parameter(FieldSize, "must be between %d and %d pixels for %s", MinSize, maxSize, format)
	}
	return width, nil
}

func parseCharset(field, v string) (string, error) {
	if v == "" {
		return charset.UTF8, nil
	}
	if !charset.Supported(v) {
		return "", apperrors.Parameter(field, "must be %s or %s", charset.UTF8, charset.Latin1)
	}
	return charset.Canonical(v), nil
}

func parseColorField(field, v string, def color.RGBA) (color.RGBA, error) {
	if v == "" {
		return def, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return color.RGBA{}, apperrors.Parameter(field, "%v", err)
	}
	return c, nil
}

func parseRange(field, v string, def, lo, hi int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.Parameter(field, "%q is not a number", v)
	}
	if n < lo || n > hi {
		return 0, apperrors.Parameter(field, "must be between %d and %d", lo, hi)
	}
	return n, nil
}
