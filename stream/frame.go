package stream

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledgif/player"
)

// Frame is a matrix of BGRA pixels to display on a matrix device.
type Frame struct {
	pixels player.Matrix
}

// NewFrame creates a new Frame showing m.
func NewFrame(m player.Matrix) *Frame {
	return &Frame{pixels: m}
}

// Matrix returns the pixels of the frame.
func (f *Frame) Matrix() player.Matrix {
	return f.pixels
}

func toColor(p player.Pixel) colorful.Color {
	return colorful.Color{R: float64(p[2]) / 255, G: float64(p[1]) / 255, B: float64(p[0]) / 255}
}

func fromColor(c colorful.Color, alpha uint8) player.Pixel {
	r, g, b := c.Clamped().RGB255()
	return player.Pixel{b, g, r, alpha}
}

// InterpolateFrame blends f towards f2 in RGB space. A transitionPoint of 0
// gives f and 1 gives f2. Frames of different sizes are not blended and f2
// is returned.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	if f.pixels.Width() != f2.pixels.Width() || f.pixels.Height() != f2.pixels.Height() {
		return f2
	}
	t := math.Max(0, math.Min(1, transitionPoint))
	out := make(player.Matrix, len(f.pixels))
	for y, row := range f.pixels {
		out[y] = make([]player.Pixel, len(row))
		for x, p1 := range row {
			p2 := f2.pixels[y][x]
			a := uint8(math.Round(float64(p1[3]) + t*(float64(p2[3])-float64(p1[3]))))
			out[y][x] = fromColor(toColor(p1).BlendRgb(toColor(p2), t), a)
		}
	}
	return NewFrame(out)
}

// Dim returns a copy of f with its brightness scaled by gain.
func (f *Frame) Dim(gain float64) *Frame {
	if gain >= 1 {
		return f
	}
	gain = math.Max(0, gain)
	var black colorful.Color
	out := make(player.Matrix, len(f.pixels))
	for y, row := range f.pixels {
		out[y] = make([]player.Pixel, len(row))
		for x, p := range row {
			out[y][x] = fromColor(black.BlendRgb(toColor(p), gain), p[3])
		}
	}
	return NewFrame(out)
}

// MarshalBinary converts a Frame into binary data: the little endian
// uint16 width and height followed by the BGRA pixels in row-major order.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	w, h := f.pixels.Width(), f.pixels.Height()
	data = make([]byte, 4, (w*h*4)+4)
	binary.LittleEndian.PutUint16(data, uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))
	for _, row := range f.pixels {
		for _, p := range row {
			data = append(data, p[:]...)
		}
	}

	return data, nil
}

// MarshalJSON converts a Frame into nested arrays of rows, columns and
// BGRA pixels.
func (f *Frame) MarshalJSON() ([]byte, error) {
	if f.pixels == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.pixels)
}
