// Package source loads animated images into the in-memory form consumed by
// the player.
package source

// Frame is one update of an animation. It only describes the rectangle
// that changes; everything outside it is unchanged from the previous frame.
type Frame struct {
	// X and Y are the top-left of the update rectangle on the canvas.
	X, Y int
	// Width and Height are the size of the update rectangle.
	Width, Height int
	// Pix holds the rectangle's non-premultiplied RGBA pixels in row-major
	// order, 4 bytes per pixel.
	Pix []uint8
	// Delay is the display time in hundredths of a second. Zero means the
	// frame has no declared delay.
	Delay int
}

// Animation is an ordered sequence of frames drawn onto a canvas of fixed
// size. An Animation must not be modified after it has been handed to a
// player.
type Animation struct {
	Width, Height int
	Frames        []Frame
}
