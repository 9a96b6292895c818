package render

import (
	"bytes"
	"encoding/xml"
	"image"
	"io"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/cristianadrielbraun/qrapi/internal/qrmatrix"
)

func TestRenderVector_Instructions(t *testing.T) {
	m := checker(21)
	cfg := Config{Size: 200, Margin: 1, Foreground: red, Background: white}
	doc := RenderVector(m, cfg)

	if doc.Size != 200 {
		t.Fatalf("Size = %d, want 200", doc.Size)
	}
	if got, want := doc.Rects[0], (Rect{W: 200, H: 200, Fill: white}); got != want {
		t.Fatalf("first rect = %+v, want background %+v", got, want)
	}

	g := ComputeGeometry(m.Size(), cfg)
	i := 1
	for row := 0; row < m.Size(); row++ {
		for col := 0; col < m.Size(); col++ {
			if !m.Dark(row, col) {
				continue
			}
			if i >= len(doc.Rects) {
				t.Fatalf("ran out of rects at module (%d,%d)", row, col)
			}
			r := doc.Rects[i]
			if r.Bounds() != g.ModuleRect(row, col) || r.Fill != red {
				t.Fatalf("rect %d = %+v, want module (%d,%d) at %v", i, r, row, col, g.ModuleRect(row, col))
			}
			i++
		}
	}
	if i != len(doc.Rects) {
		t.Errorf("got %d rects, want %d", len(doc.Rects), i)
	}
}

func TestRenderVector_MatchesRasterGeometry(t *testing.T) {
	cfgs := []Config{
		{Size: 200, Margin: 1},
		{Size: 317, Margin: 3, QuietZone: 4},
		{Size: 10, Margin: 1, QuietZone: 4},
		{Size: 1000000, Margin: 50, QuietZone: 100},
	}
	m := checker(25)
	for _, cfg := range cfgs {
		cfg.Foreground, cfg.Background = navy, white
		doc := RenderVector(m, cfg)
		first := doc.Rects[1] // module (0,0) is dark in checker
		g := ComputeGeometry(m.Size(), cfg)
		if first.X != g.OffsetPx || first.Y != g.OffsetPx || first.W != g.ModuleSizePx || first.H != g.ModuleSizePx {
			t.Errorf("size %d: module (0,0) rect = %+v, geometry %+v", cfg.Size, first, g)
		}
	}
}

func TestDocument_SVG(t *testing.T) {
	doc := RenderVector(pattern{"#.", ".#"}, Config{Size: 4, Foreground: red, Background: white})
	svg := string(doc.SVG())

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`width="4" height="4" viewBox="0 0 4 4"`,
		`<rect x="0" y="0" width="4" height="4" fill="#ffffff"/>`,
		`<rect x="0" y="0" width="2" height="2" fill="#ff0000"/>`,
		`<rect x="2" y="2" width="2" height="2" fill="#ff0000"/>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q:\n%s", want, svg)
		}
	}
	if strings.Count(svg, "<rect") != 3 {
		t.Errorf("SVG has %d rects, want 3", strings.Count(svg, "<rect"))
	}

	// must be well-formed XML
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("SVG is not well-formed: %v", err)
		}
	}
}

// TestParity_SVGRasterizedMatchesRaster rasterizes the SVG output and
// compares the centre pixel of every module with the direct raster.
func TestParity_SVGRasterizedMatchesRaster(t *testing.T) {
	m, err := qrmatrix.NewSkip2().Encode([]byte("https://example.com/parity"), qrmatrix.LevelM)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	cfgs := []Config{
		{Size: 200, Margin: 1},
		{Size: 256, Margin: 7, QuietZone: 2},
		{Size: 151, Margin: 0, QuietZone: 4},
	}
	for _, cfg := range cfgs {
		cfg.Foreground, cfg.Background = navy, white
		raster := RenderRaster(m, cfg)
		vector := rasterizeSVG(t, RenderVector(m, cfg).SVG(), cfg.Size)

		g := ComputeGeometry(m.Size(), cfg)
		if g.ModuleSizePx < 3 {
			t.Fatalf("size %d: module size %d too small for centre sampling", cfg.Size, g.ModuleSizePx)
		}
		for row := 0; row < m.Size(); row++ {
			for col := 0; col < m.Size(); col++ {
				r := g.ModuleRect(row, col)
				cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
				want := raster.RGBAAt(cx, cy)
				got := vector.RGBAAt(cx, cy)
				if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) {
					t.Fatalf("size %d module (%d,%d): svg pixel %v, raster pixel %v", cfg.Size, row, col, got, want)
				}
			}
		}
	}
}

func rasterizeSVG(t *testing.T, svg []byte, size int) *image.RGBA {
	t.Helper()
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		t.Fatalf("ReadIconStream() error = %v", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}
