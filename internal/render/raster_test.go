package render

import (
	"image/color"
	"testing"
)

// pattern is a square test matrix; '#' marks a dark module.
type pattern []string

func (p pattern) Size() int { return len(p) }

func (p pattern) Dark(row, col int) bool {
	return row >= 0 && row < len(p) && col >= 0 && col < len(p[row]) && p[row][col] == '#'
}

// checker returns an n x n matrix with a checkerboard of dark modules and a
// fully dark first row.
func checker(n int) pattern {
	p := make(pattern, n)
	for r := range p {
		line := make([]byte, n)
		for c := range line {
			if r == 0 || (r+c)%2 == 0 {
				line[c] = '#'
			} else {
				line[c] = '.'
			}
		}
		p[r] = string(line)
	}
	return p
}

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	navy  = color.RGBA{B: 128, A: 255}
)

// expectedPixel computes the color of (x, y) from the geometry alone.
func expectedPixel(m Modules, cfg Config, x, y int) color.RGBA {
	g := ComputeGeometry(m.Size(), cfg)
	dx, dy := x-g.OffsetPx, y-g.OffsetPx
	if dx >= 0 && dy >= 0 && m.Dark(dy/g.ModuleSizePx, dx/g.ModuleSizePx) {
		return cfg.Foreground
	}
	return cfg.Background
}

func TestRenderRaster_EveryPixel(t *testing.T) {
	tests := []struct {
		name string
		m    Modules
		cfg  Config
	}{
		{"200px margin 1", checker(21), Config{Size: 200, Margin: 1, Foreground: red, Background: white}},
		{"quiet zone and slack", checker(25), Config{Size: 317, Margin: 3, QuietZone: 4, Foreground: navy, Background: white}},
		{"overflowing tiny canvas", checker(21), Config{Size: 10, Margin: 1, QuietZone: 4, Foreground: red, Background: white}},
		{"margin swallows canvas", checker(21), Config{Size: 12, Margin: 6, Foreground: red, Background: navy}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := RenderRaster(tt.m, tt.cfg)

			if got, want := len(img.Pix), tt.cfg.Size*tt.cfg.Size*4; got != want {
				t.Fatalf("len(Pix) = %d, want %d", got, want)
			}
			if b := img.Bounds(); b.Dx() != tt.cfg.Size || b.Dy() != tt.cfg.Size {
				t.Fatalf("Bounds() = %v, want %dx%d", b, tt.cfg.Size, tt.cfg.Size)
			}
			for y := 0; y < tt.cfg.Size; y++ {
				for x := 0; x < tt.cfg.Size; x++ {
					want := expectedPixel(tt.m, tt.cfg, x, y)
					if got := img.RGBAAt(x, y); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRenderRaster_ModuleOrigin(t *testing.T) {
	m := checker(21)
	cfg := Config{Size: 200, Margin: 1, Foreground: red, Background: white}
	img := RenderRaster(m, cfg)

	// module (0,0) covers x,y in [5,14)
	for _, p := range [][2]int{{5, 5}, {13, 13}, {5, 13}} {
		if got := img.RGBAAt(p[0], p[1]); got != red {
			t.Errorf("pixel %v = %v, want foreground", p, got)
		}
	}
	for _, p := range [][2]int{{4, 5}, {5, 4}, {0, 0}, {199, 199}} {
		if got := img.RGBAAt(p[0], p[1]); got != white {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestRenderRaster_OpaqueAlpha(t *testing.T) {
	cfg := Config{Size: 64, Margin: 2, QuietZone: 1,
		Foreground: color.RGBA{R: 10}, Background: color.RGBA{G: 20}}
	img := RenderRaster(checker(21), cfg)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("alpha at byte %d = %d, want 255", i, img.Pix[i])
		}
	}
}

func TestRenderRaster_CanvasSizeInvariant(t *testing.T) {
	for _, n := range []int{21, 29, 41} {
		for size := 1; size <= 130; size += 3 {
			for qz := 0; qz <= 8; qz += 4 {
				cfg := Config{Size: size, Margin: 1, QuietZone: qz, Foreground: red, Background: white}
				img := RenderRaster(checker(n), cfg)
				if len(img.Pix) != size*size*4 {
					t.Fatalf("n=%d size=%d qz=%d: len(Pix) = %d", n, size, qz, len(img.Pix))
				}
			}
		}
	}
}

func TestRenderRaster_ZeroSize(t *testing.T) {
	img := RenderRaster(checker(21), Config{Size: 0})
	if len(img.Pix) != 0 {
		t.Errorf("len(Pix) = %d, want 0", len(img.Pix))
	}
}
