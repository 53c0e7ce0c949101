package player

import (
	"image"
	"math"
)

// Pixel is a BGRA pixel.
type Pixel [4]uint8

// Matrix is a row-major grid of pixels, rows top to bottom.
type Matrix [][]Pixel

// Width returns the number of columns in m.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows in m.
func (m Matrix) Height() int { return len(m) }

// Image returns m as an RGBA image.
func (m Matrix) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for y, row := range m {
		for x, p := range row {
			i := img.PixOffset(x, y)
			img.Pix[i] = p[2]
			img.Pix[i+1] = p[1]
			img.Pix[i+2] = p[0]
			img.Pix[i+3] = p[3]
		}
	}
	return img
}

// Resample returns a width×height nearest neighbour sampling of c. If
// either dimension is zero, an empty matrix is returned. Negative
// dimensions must be rejected by the caller.
func Resample(c *Canvas, width, height int) Matrix {
	if width <= 0 || height <= 0 {
		return Matrix{}
	}
	scaleX := float64(c.Width) / float64(width)
	scaleY := float64(c.Height) / float64(height)

	m := make(Matrix, height)
	for y := range m {
		row := make([]Pixel, width)
		srcY := clamp(int(math.Floor(float64(y)*scaleY)), c.Height)
		for x := range row {
			srcX := clamp(int(math.Floor(float64(x)*scaleX)), c.Width)
			row[x] = c.At(srcX, srcY)
		}
		m[y] = row
	}
	return m
}

// clamp guards against float rounding taking v to n.
func clamp(v, n int) int {
	if v >= n {
		return n - 1
	}
	return v
}
