package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
)

// Encoder compresses a finished raster into an image byte stream.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	MimeType() string
}

// PNGEncoder writes PNG images.
type PNGEncoder struct {
	Compression png.CompressionLevel
}

func (e PNGEncoder) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: e.Compression}
	return enc.Encode(w, img)
}

func (e PNGEncoder) MimeType() string { return "image/png" }

// JPEGEncoder writes JPEG images.
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) Encode(w io.Writer, img image.Image) error {
	q := e.Quality
	if q <= 0 {
		q = 92
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
}

func (e JPEGEncoder) MimeType() string { return "image/jpeg" }

// GIFEncoder writes GIF images with a palette built from the exact colors
// of the raster, so foreground and background survive unchanged.
type GIFEncoder struct{}

func (e GIFEncoder) Encode(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, &gif.Options{
		NumColors: 256,
		Quantizer: exactQuantizer{},
		Drawer:    draw.Src,
	})
}

func (e GIFEncoder) MimeType() string { return "image/gif" }

// exactQuantizer collects the distinct colors of m up to cap(p).
type exactQuantizer struct{}

func (exactQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	seen := make(map[color.RGBA]bool)
	add := func(c color.RGBA) bool {
		if seen[c] {
			return true
		}
		if len(p) == cap(p) {
			return false
		}
		seen[c] = true
		p = append(p, c)
		return true
	}

	if rgba, ok := m.(*image.RGBA); ok {
		pix := rgba.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			if !add(color.RGBA{pix[i], pix[i+1], pix[i+2], pix[i+3]}) {
				break
			}
		}
	} else {
		b := m.Bounds()
	scan:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if !add(color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)) {
					break scan
				}
			}
		}
	}
	if len(p) == 0 {
		p = append(p, color.RGBA{A: 0xff})
	}
	return p
}
