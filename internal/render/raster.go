package render

import (
	"image"
	"image/color"
)

// RenderRaster draws m onto a cfg.Size x cfg.Size opaque RGBA canvas.
// Every pixel is background unless a dark module covers it; module squares
// reaching past the canvas edge are clipped.
func RenderRaster(m Modules, cfg Config) *image.RGBA {
	size := max(0, cfg.Size)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if size == 0 {
		return img
	}

	bg := opaque(cfg.Background)
	fg := opaque(cfg.Foreground)
	fillRGBA(img.Pix, bg)

	g := ComputeGeometry(m.Size(), cfg)
	bounds := img.Bounds()

	// One foreground row wide enough for any clipped module span.
	span := make([]byte, 4*min(g.ModuleSizePx, size))
	fillRGBA(span, fg)

	n := m.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !m.Dark(row, col) {
				continue
			}
			r := g.ModuleRect(row, col).Intersect(bounds)
			if r.Empty() {
				continue
			}
			w := 4 * r.Dx()
			for y := r.Min.Y; y < r.Max.Y; y++ {
				off := img.PixOffset(r.Min.X, y)
				copy(img.Pix[off:off+w], span[:w])
			}
		}
	}
	return img
}

// fillRGBA fills buf, a whole number of RGBA pixels, with c.
func fillRGBA(buf []byte, c color.RGBA) {
	if len(buf) < 4 {
		return
	}
	buf[0], buf[1], buf[2], buf[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
