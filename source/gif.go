package source

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

// ReadPeeker is an io.Reader that can also peek n bytes ahead.
type ReadPeeker interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// AsReadPeeker converts an io.Reader to a ReadPeeker.
func AsReadPeeker(r io.Reader) ReadPeeker {
	if r, ok := r.(ReadPeeker); ok {
		return r
	}
	return bufio.NewReader(r)
}

// IsGIF returns whether the data held by r is a GIF image.
func IsGIF(r ReadPeeker) bool {
	const magic = "GIF8?a"
	b, err := r.Peek(len(magic))
	if err != nil || len(b) != len(magic) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// Load reads the GIF file at path.
func Load(path string) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := DecodeGIF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeGIF decodes all frames of the GIF held in r.
//
// Palette entries are resolved to RGBA, so a frame's transparent index
// decodes to pixels with zero alpha. The canvas takes the size of the
// logical screen, or the union of the frame bounds if the screen is empty.
func DecodeGIF(r io.Reader) (*Animation, error) {
	rp := AsReadPeeker(r)
	if !IsGIF(rp) {
		return nil, fmt.Errorf("not a gif image")
	}
	g, err := gif.DecodeAll(rp)
	if err != nil {
		return nil, err
	}
	if len(g.Image) != len(g.Delay) && g.Delay != nil {
		return nil, fmt.Errorf("mismatched image count and delay count: %d != %d", len(g.Image), len(g.Delay))
	}

	a := &Animation{
		Width:  g.Config.Width,
		Height: g.Config.Height,
		Frames: make([]Frame, len(g.Image)),
	}
	var union image.Rectangle
	for i, img := range g.Image {
		b := img.Bounds()
		union = union.Union(b)
		f := Frame{
			X:      b.Min.X,
			Y:      b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
			Pix:    make([]uint8, 0, b.Dx()*b.Dy()*4),
		}
		if g.Delay != nil {
			f.Delay = g.Delay[i]
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				f.Pix = append(f.Pix, c.R, c.G, c.B, c.A)
			}
		}
		a.Frames[i] = f
	}
	if a.Width == 0 || a.Height == 0 {
		a.Width = union.Max.X
		a.Height = union.Max.Y
	}
	return a, nil
}
