package render

import "image"

// Geometry is the pixel layout of a symbol on the canvas.
type Geometry struct {
	Canvas       int // side of the output canvas, always Config.Size
	ModuleCount  int
	TotalModules int // ModuleCount plus the quiet zone on both sides
	AvailablePx  int
	ModuleSizePx int
	ContentPx    int
	LeftoverPx   int
	OffsetPx     int // top-left pixel of module (0,0), both axes
}

// ComputeGeometry lays out moduleCount modules on cfg's canvas.
//
// Module size is floored to whole pixels and never drops below one, so a
// canvas too small for the symbol overflows instead of failing. Slack left
// by the flooring is split around the content and becomes background.
func ComputeGeometry(moduleCount int, cfg Config) Geometry {
	g := Geometry{
		Canvas:       cfg.Size,
		ModuleCount:  moduleCount,
		TotalModules: moduleCount + 2*cfg.QuietZone,
	}
	g.AvailablePx = max(0, cfg.Size-2*cfg.Margin)
	g.ModuleSizePx = 1
	if g.TotalModules > 0 {
		g.ModuleSizePx = max(1, g.AvailablePx/g.TotalModules)
	}
	g.ContentPx = g.ModuleSizePx * g.TotalModules
	g.LeftoverPx = max(0, g.AvailablePx-g.ContentPx)
	g.OffsetPx = cfg.Margin + g.LeftoverPx/2 + cfg.QuietZone*g.ModuleSizePx
	return g
}

// ModuleRect returns the unclipped pixel square of module (row, col).
func (g Geometry) ModuleRect(row, col int) image.Rectangle {
	x := g.OffsetPx + col*g.ModuleSizePx
	y := g.OffsetPx + row*g.ModuleSizePx
	return image.Rect(x, y, x+g.ModuleSizePx, y+g.ModuleSizePx)
}

// Bounds returns the canvas rectangle.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Canvas, g.Canvas)
}
