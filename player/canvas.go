package player

import "github.com/matt-g-everett/ledgif/source"

// Canvas is the full resolution image built up from the frames of an
// animation. Pixels are stored in BGRA order.
type Canvas struct {
	Width, Height int
	Pix           []uint8
}

// NewCanvas returns a fully transparent canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) Pixel {
	i := (y*c.Width + x) * 4
	return Pixel{c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3]}
}

// Set sets the pixel at (x, y).
func (c *Canvas) Set(x, y int, p Pixel) {
	i := (y*c.Width + x) * 4
	copy(c.Pix[i:i+4], p[:])
}

// Compose merges the frame's update rectangle into the canvas. Source
// pixels with zero alpha carry no information and leave the canvas as it
// was. Other pixels replace the canvas pixel with their red and blue
// channels swapped.
//
// Parts of the rectangle that fall outside the canvas are clipped. Frame
// data beyond the end of f.Pix is ignored.
func (c *Canvas) Compose(f source.Frame) {
	src := 0
	for y := f.Y; y < f.Y+f.Height; y++ {
		for x := f.X; x < f.X+f.Width; x++ {
			if src+4 > len(f.Pix) {
				return
			}
			r, g, b, a := f.Pix[src], f.Pix[src+1], f.Pix[src+2], f.Pix[src+3]
			src += 4
			if a == 0 || x < 0 || y < 0 || x >= c.Width || y >= c.Height {
				continue
			}
			i := (y*c.Width + x) * 4
			c.Pix[i] = b
			c.Pix[i+1] = g
			c.Pix[i+2] = r
			c.Pix[i+3] = a
		}
	}
}
