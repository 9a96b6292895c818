// Package qrmatrix turns payload bytes into QR module matrices by delegating
// the symbol encoding to a third-party QR library.
package qrmatrix

import (
	"fmt"
	"strings"
)

// Matrix is an immutable square grid of QR modules. A true module is dark.
type Matrix struct {
	size int
	bits []bool
}

// FromBitmap copies a row-major bitmap into a Matrix.
// The bitmap must be square and non-empty.
func FromBitmap(bitmap [][]bool) (*Matrix, error) {
	n := len(bitmap)
	if n == 0 {
		return nil, fmt.Errorf("empty module bitmap")
	}
	m := &Matrix{size: n, bits: make([]bool, n*n)}
	for row, line := range bitmap {
		if len(line) != n {
			return nil, fmt.Errorf("module bitmap row %d has %d columns, want %d", row, len(line), n)
		}
		copy(m.bits[row*n:], line)
	}
	return m, nil
}

// Size returns the number of modules on a side.
func (m *Matrix) Size() int { return m.size }

// Dark reports whether the module at (row, col) is dark.
// Coordinates outside the symbol are light.
func (m *Matrix) Dark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.bits[row*m.size+col]
}

// String renders the matrix with '#' for dark and '.' for light modules,
// one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.Grow(m.size * (m.size + 1))
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if m.Dark(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
