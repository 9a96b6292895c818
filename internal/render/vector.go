package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Rect is a filled axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H int
	Fill       color.RGBA
}

// Bounds returns r as an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Document is a vector rendering: a background rectangle covering the
// canvas followed by one rectangle per dark module in row-major order.
type Document struct {
	Size  int
	Rects []Rect
}

// RenderVector lays out m exactly as RenderRaster does, as rectangles.
// Rectangles are not clipped; the SVG viewport does that.
func RenderVector(m Modules, cfg Config) Document {
	size := max(0, cfg.Size)
	g := ComputeGeometry(m.Size(), cfg)
	fg := opaque(cfg.Foreground)

	doc := Document{Size: size}
	doc.Rects = append(doc.Rects, Rect{W: size, H: size, Fill: opaque(cfg.Background)})

	n := m.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !m.Dark(row, col) {
				continue
			}
			r := g.ModuleRect(row, col)
			doc.Rects = append(doc.Rects, Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy(), Fill: fg})
		}
	}
	return doc
}

// WriteSVG serializes the document as a standalone UTF-8 SVG file.
func (d Document) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		d.Size, d.Size, d.Size, d.Size)
	for _, r := range d.Rects {
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			r.X, r.Y, r.W, r.H, hexColor(r.Fill))
	}
	buf.WriteString("</svg>\n")
	_, err := buf.WriteTo(w)
	return err
}

// SVG returns the serialized document.
func (d Document) SVG() []byte {
	var buf bytes.Buffer
	_ = d.WriteSVG(&buf)
	return buf.Bytes()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
