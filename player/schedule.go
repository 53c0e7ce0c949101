package player

import "time"

// Schedule tracks which frame is showing and when it was reached.
type Schedule struct {
	// Index is the frame waiting to be composed.
	Index int
	// Count is the number of frames in the animation.
	Count int
	// Last is the time of the last advance.
	Last time.Time
}

// Reset rewinds the schedule to the first frame of an animation with
// count frames.
func (s *Schedule) Reset(count int, now time.Time) {
	*s = Schedule{Count: count, Last: now}
}

// Current returns the index of the current frame, wrapping an out of range
// index back to the first frame.
func (s *Schedule) Current() int {
	if s.Index < 0 || s.Index >= s.Count {
		s.Index = 0
	}
	return s.Index
}

// Due returns whether a frame with the given delay in hundredths of a
// second has been shown long enough at now. Frames without a delay are
// always due.
func (s *Schedule) Due(now time.Time, delay int) bool {
	if delay < 0 {
		delay = 0
	}
	required := time.Duration(delay) * 10 * time.Millisecond
	return now.Sub(s.Last) >= required
}

// Advance moves to the next frame, wrapping at the end of the animation,
// and marks now as the time of the advance.
func (s *Schedule) Advance(now time.Time) {
	s.Last = now
	s.Index = (s.Current() + 1) % s.Count
}
