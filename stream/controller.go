package stream

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fogleman/ease"

	"github.com/matt-g-everett/ledgif/player"
)

// Controller that manages a playlist of animations. Each animation is shown
// for the animation time, cross-fading into the next over the final
// transition time.
type Controller struct {
	width, height int
	animationMs   int64
	transitionMs  int64

	mu         sync.Mutex
	animations []Animation
	current    int
	startMs    int64
	started    bool
}

// NewController creates an instance of a Controller rendering at
// width×height.
func NewController(animations []Animation, width, height int, animationTime, transitionTime time.Duration) (*Controller, error) {
	if len(animations) == 0 {
		return nil, errors.New("no animations")
	}
	if transitionTime > animationTime {
		transitionTime = animationTime
	}
	c := &Controller{
		animations:   animations,
		width:        width,
		height:       height,
		animationMs:  animationTime.Milliseconds(),
		transitionMs: transitionTime.Milliseconds(),
	}
	return c, nil
}

// Current returns the index of the animation being shown.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CalculateFrame renders the frame to show at runtimeMs.
func (c *Controller) CalculateFrame(runtimeMs int64) (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		c.startMs = runtimeMs
		c.started = true
	}
	if len(c.animations) == 1 || c.animationMs <= 0 {
		m, err := c.animations[c.current].Render(c.width, c.height)
		if err != nil {
			return nil, err
		}
		return NewFrame(m), nil
	}

	elapsed := runtimeMs - c.startMs
	next := (c.current + 1) % len(c.animations)
	if elapsed >= c.animationMs {
		log.Printf("Switching to animation %d", next)
		c.current = next
		c.startMs = runtimeMs
		elapsed = 0
	}

	m, err := c.animations[c.current].Render(c.width, c.height)
	if err != nil {
		return nil, err
	}
	f := NewFrame(m)
	fadeStart := c.animationMs - c.transitionMs
	if elapsed < fadeStart || c.transitionMs <= 0 {
		return f, nil
	}

	m2, err := c.animations[next].Render(c.width, c.height)
	if err != nil {
		return nil, err
	}
	t := ease.InOutQuad(float64(elapsed-fadeStart) / float64(c.transitionMs))
	return f.InterpolateFrame(NewFrame(m2), t), nil
}

// Render renders the current animation at width×height.
func (c *Controller) Render(width, height int) (player.Matrix, error) {
	c.mu.Lock()
	a := c.animations[c.current]
	c.mu.Unlock()
	return a.Render(width, height)
}
