package stream

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matt-g-everett/ledgif/player"
)

// fill is an Animation that always renders a single colour.
type fill player.Pixel

func (f fill) Render(width, height int) (player.Matrix, error) {
	return uniform(width, height, player.Pixel(f)), nil
}

// broken is an Animation that always fails.
type broken struct{}

func (broken) Render(width, height int) (player.Matrix, error) {
	return nil, errors.New("broken")
}

var (
	red   = fill{0, 0, 200, 255}
	black = fill{0, 0, 0, 255}
)

func TestNewControllerEmpty(t *testing.T) {
	_, err := NewController(nil, 1, 1, time.Second, 0)
	if err == nil {
		t.Error("expected error for empty playlist")
	}
}

func TestControllerCycle(t *testing.T) {
	c, err := NewController([]Animation{red, black}, 2, 1, time.Second, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps := []struct {
		runtimeMs int64
		want      player.Pixel
		current   int
	}{
		{runtimeMs: 10, want: player.Pixel(red), current: 0},
		{runtimeMs: 500, want: player.Pixel(red), current: 0},
		{runtimeMs: 910, want: player.Pixel{0, 0, 100, 255}, current: 0},
		{runtimeMs: 1010, want: player.Pixel(black), current: 1},
		{runtimeMs: 2010, want: player.Pixel(red), current: 0},
	}
	for _, step := range steps {
		f, err := c.CalculateFrame(step.runtimeMs)
		if err != nil {
			t.Fatalf("unexpected error at %dms: %v", step.runtimeMs, err)
		}
		want := uniform(2, 1, step.want)
		if !cmp.Equal(want, f.Matrix()) {
			t.Errorf("unexpected frame at %dms:\n--- want:\n+++ got:\n%s", step.runtimeMs, cmp.Diff(want, f.Matrix()))
		}
		if got := c.Current(); got != step.current {
			t.Errorf("unexpected current animation at %dms: got:%d want:%d", step.runtimeMs, got, step.current)
		}
	}
}

func TestControllerSingle(t *testing.T) {
	c, err := NewController([]Animation{red}, 1, 1, time.Second, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ms := range []int64{0, 5000, 10000} {
		f, err := c.CalculateFrame(ms)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.Matrix()[0][0]; got != player.Pixel(red) {
			t.Errorf("unexpected pixel at %dms: got:%v want:%v", ms, got, player.Pixel(red))
		}
	}
}

func TestControllerError(t *testing.T) {
	c, err := NewController([]Animation{broken{}}, 1, 1, time.Second, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.CalculateFrame(0)
	if err == nil {
		t.Error("expected render error")
	}
}

func TestControllerRender(t *testing.T) {
	c, err := NewController([]Animation{red, black}, 1, 1, time.Second, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := c.Render(3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uniform(3, 2, player.Pixel(red))
	if !cmp.Equal(want, m) {
		t.Errorf("unexpected matrix:\n--- want:\n+++ got:\n%s", cmp.Diff(want, m))
	}
}
