// pkg/anim/reveal.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package anim

import (
	"time"

	"github.com/skyviz/arctrails/pkg/math"
)

// Reveal reports how many points of a path's geometry are currently
// visible, given the path's admission time and the reveal rate in points
// per millisecond. Before the start time nothing is visible; afterwards the
// first point appears immediately and one more point is revealed every
// 1/rate milliseconds, so a path of N points fully reveals after exactly
// (N-1)/rate ms. finished is true once every point is visible; an empty
// coordinate list is already finished and is never drawn.
func Reveal(coords []math.Point2LL, start, now time.Time, rate float32) (n int, finished bool) {
	if len(coords) == 0 {
		return 0, true
	}
	if now.Before(start) {
		return 0, false
	}

	elapsedMs := float32(now.Sub(start)) / float32(time.Millisecond)
	n = math.Clamp(1+int(math.Floor(elapsedMs*rate)), 0, len(coords))
	return n, n == len(coords)
}
