// Package util holds easing helpers shared by the streamer.
package util

import (
	"github.com/fogleman/ease"
)

// FadeInLut returns length gains eased from 0 up to 1 with InOutQuad. The
// last entry is always 1. A length below 1 gives a single full gain.
func FadeInLut(length int) []float64 {
	if length < 1 {
		return []float64{1}
	}
	lut := make([]float64, length)
	for i := range lut {
		lut[i] = ease.InOutQuad(float64(i+1) / float64(length))
	}
	return lut
}
