// Package render maps a QR module matrix onto a square raster or vector
// canvas and serializes the result.
//
// Both output paths share ComputeGeometry, so a module occupies exactly the
// same pixel square in the PNG and in the SVG rendering of a request.
package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Modules is the read-only view of a QR module matrix the renderer needs.
type Modules interface {
	Size() int
	Dark(row, col int) bool
}

// Format selects the output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
)

// ParseFormat parses an output format name. "jpg" is accepted for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Vector reports whether the format is rendered as a vector document.
func (f Format) Vector() bool { return f == FormatSVG }

// Config describes one rendering. Size is the side of the square canvas in
// pixels, Margin is in pixels and QuietZone in modules.
type Config struct {
	Size       int
	Margin     int
	QuietZone  int
	Foreground color.RGBA
	Background color.RGBA
	Format     Format
}
