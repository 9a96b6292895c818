package render

import (
	"bytes"
	"fmt"
	"image/png"

	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
)

// MimeSVG is the content type of vector output.
const MimeSVG = "image/svg+xml"

// Option configures a Renderer.
type Option func(*Renderer)

// WithEncoder sets the raster encoder used for format f.
func WithEncoder(f Format, e Encoder) Option {
	return func(r *Renderer) { r.encoders[f] = e }
}

// WithPNGCompression sets the PNG compression level.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(r *Renderer) { r.encoders[FormatPNG] = PNGEncoder{Compression: level} }
}

// Renderer dispatches a rendering to the raster or vector path and encodes
// the result. It holds no per-request state and is safe for concurrent use.
type Renderer struct {
	encoders map[Format]Encoder
}

// NewRenderer returns a Renderer with PNG, JPEG and GIF encoders.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{encoders: map[Format]Encoder{
		FormatPNG:  PNGEncoder{Compression: png.DefaultCompression},
		FormatJPEG: JPEGEncoder{Quality: 92},
		FormatGIF:  GIFEncoder{},
	}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MimeType returns the content type Render produces for f.
func (r *Renderer) MimeType(f Format) string {
	if f.Vector() {
		return MimeSVG
	}
	if enc, ok := r.encoders[f]; ok {
		return enc.MimeType()
	}
	return "application/octet-stream"
}

// Render draws m with cfg and returns the encoded bytes and their MIME type.
// Rendering itself cannot fail; only a raster encoder error is returned, as
// an *errors.InternalError.
func (r *Renderer) Render(m Modules, cfg Config) ([]byte, string, error) {
	if cfg.Format.Vector() {
		return RenderVector(m, cfg).SVG(), MimeSVG, nil
	}

	enc, ok := r.encoders[cfg.Format]
	if !ok {
		return nil, "", apperrors.Internal("render", fmt.Errorf("no encoder for format %q", cfg.Format))
	}

	img := RenderRaster(m, cfg)
	var buf bytes.Buffer
	buf.Grow(len(img.Pix) / 8)
	if err := enc.Encode(&buf, img); err != nil {
		return nil, "", apperrors.Internal(string(cfg.Format)+" encode", err)
	}
	return buf.Bytes(), enc.MimeType(), nil
}
