package qrmatrix

import (
	"fmt"

	"github.com/yeqown/go-qrcode/v2"

	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
)

var yeqownLevels = map[Level]qrcode.EncodeOption{
	LevelL: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
	LevelM: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
	LevelQ: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
	LevelH: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
}

// YeqownProvider encodes symbols with github.com/yeqown/go-qrcode/v2.
type YeqownProvider struct{}

// NewYeqown creates a provider backed by yeqown/go-qrcode.
func NewYeqown() *YeqownProvider { return &YeqownProvider{} }

// Name returns the provider name.
func (p *YeqownProvider) Name() string { return Yeqown }

// Encode forces byte mode so that Latin-1 payloads keep their byte values.
func (p *YeqownProvider) Encode(payload []byte, level Level) (*Matrix, error) {
	opt, ok := yeqownLevels[level]
	if !ok {
		return nil, &apperrors.EncodingError{Message: "unsupported error correction level " + level.String()}
	}

	qrc, err := qrcode.NewWith(string(payload), opt, qrcode.WithEncodingMode(qrcode.EncModeByte))
	if err != nil {
		return nil, &apperrors.EncodingError{Message: "level " + level.String(), Err: err}
	}

	w := &matrixCapture{}
	if err := qrc.Save(w); err != nil {
		return nil, apperrors.Internal("capture module matrix", err)
	}
	if w.bitmap == nil {
		return nil, apperrors.Internal("capture module matrix", fmt.Errorf("encoder produced no matrix"))
	}
	return FromBitmap(w.bitmap)
}

// matrixCapture implements qrcode.Writer and keeps the symbol as a bitmap
// instead of drawing it.
type matrixCapture struct {
	bitmap [][]bool
}

func (w *matrixCapture) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	bitmap := make([][]bool, n)
	for i := range bitmap {
		bitmap[i] = make([]bool, n)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if y < n && x < n {
			bitmap[y][x] = v.IsSet()
		}
	})
	w.bitmap = bitmap
	return nil
}

func (w *matrixCapture) Close() error { return nil }
