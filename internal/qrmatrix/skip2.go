package qrmatrix

import (
	"github.com/skip2/go-qrcode"

	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
)

var skip2Levels = map[Level]qrcode.RecoveryLevel{
	LevelL: qrcode.Low,
	LevelM: qrcode.Medium,
	LevelQ: qrcode.High,
	LevelH: qrcode.Highest,
}

// Skip2Provider encodes symbols with github.com/skip2/go-qrcode.
type Skip2Provider struct{}

// NewSkip2 creates a provider backed by skip2/go-qrcode.
func NewSkip2() *Skip2Provider { return &Skip2Provider{} }

// Name returns the provider name.
func (p *Skip2Provider) Name() string { return Skip2 }

// Encode builds the symbol without the library's own quiet zone; the
// renderer adds quiet zone modules itself.
func (p *Skip2Provider) Encode(payload []byte, level Level) (*Matrix, error) {
	rl, ok := skip2Levels[level]
	if !ok {
		return nil, &apperrors.EncodingError{Message: "unsupported error correction level " + level.String()}
	}

	q, err := qrcode.New(string(payload), rl)
	if err != nil {
		return nil, &apperrors.EncodingError{Message: "level " + level.String(), Err: err}
	}
	q.DisableBorder = true

	return FromBitmap(q.Bitmap())
}
