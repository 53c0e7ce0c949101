// Package player renders a looping animation onto a pixel matrix of any
// size.
//
// A Player holds a full resolution canvas that accumulates the partial
// updates described by each frame. On every render call the player
// decides from the wall clock whether the current frame has been shown for
// its delay, composes it into the canvas if so, and then samples the canvas
// down to the requested size.
package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/matt-g-everett/ledgif/source"
)

// Player renders an animation. It is safe for concurrent use.
type Player struct {
	now func() time.Time

	// mu guards everything below. Composition and
	// resampling happen in the same critical section
	// so a render never sees a partly composed frame.
	mu       sync.Mutex
	src      *source.Animation
	canvas   *Canvas
	schedule Schedule
}

// Option configures a Player.
type Option func(*Player)

// WithClock sets the time source used to schedule frames. The default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Player) {
		p.now = now
	}
}

// New returns a Player that has been set up with src.
func New(src *source.Animation, opts ...Option) (*Player, error) {
	p := &Player{now: time.Now}
	for _, o := range opts {
		o(p)
	}
	err := p.Setup(src)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Setup resets the player to the first frame of src with a transparent
// canvas. It may be called again at any time to restart or to replace the
// animation. On error the player's state is left unchanged.
func (p *Player) Setup(src *source.Animation) error {
	if src == nil || len(src.Frames) == 0 {
		return fmt.Errorf("%w: animation has no frames", ErrInitialization)
	}
	if src.Width <= 0 || src.Height <= 0 {
		return fmt.Errorf("%w: animation has empty canvas %dx%d", ErrInitialization, src.Width, src.Height)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
	p.canvas = NewCanvas(src.Width, src.Height)
	p.schedule.Reset(len(src.Frames), p.clock())
	return nil
}

// clock returns the current time, using time.Now for a Player that was not
// created by New.
func (p *Player) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// Render advances the animation if the current frame's delay has passed
// and returns the canvas sampled to width×height. A zero dimension gives
// an empty matrix. The animation advances by at most one frame per call.
func (p *Player) Render(width, height int) (Matrix, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == nil {
		return nil, fmt.Errorf("%w: player not set up", ErrInitialization)
	}
	p.step(p.clock())
	return Resample(p.canvas, width, height), nil
}

// Update renders at the dimensions held under the "width" and "height" keys
// of cfg.
func (p *Player) Update(cfg Lookup) (Matrix, error) {
	width, height, err := Dimensions(cfg)
	if err != nil {
		return nil, err
	}
	return p.Render(width, height)
}

// step composes the current frame into the canvas and moves to the next
// frame if the current frame is due. The frame being left is composed so
// the canvas holds every frame up to and including it.
func (p *Player) step(now time.Time) {
	f := p.src.Frames[p.schedule.Current()]
	if !p.schedule.Due(now, f.Delay) {
		return
	}
	p.canvas.Compose(f)
	p.schedule.Advance(now)
}

// FrameIndex returns the index of the frame that will be composed next.
func (p *Player) FrameIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.schedule.Index
}
