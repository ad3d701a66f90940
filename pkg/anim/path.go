// pkg/anim/path.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package anim

import (
	"time"

	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/renderer"
)

// Path is one continuous drawable line segment of a flight's great-circle
// route; a single flight decomposes into multiple Paths when its arc
// crosses the antimeridian. Coords is immutable after creation; only Start
// and Finished mutate, and Finished only transitions false to true.
type Path struct {
	Coords   []math.Point2LL
	Start    time.Time
	Finished bool
	Color    renderer.RGB
}

func NewPath(coords []math.Point2LL, color renderer.RGB) *Path {
	return &Path{Coords: coords, Color: color}
}

// NewGroup wraps the coordinate lists produced for a single flight (one or
// more, split at the antimeridian) into the set of Paths that animate
// sequentially for that flight.
func NewGroup(pieces [][]math.Point2LL, color renderer.RGB) []*Path {
	var group []*Path
	for _, coords := range pieces {
		group = append(group, NewPath(coords, color))
	}
	return group
}

// Registry holds the admitted paths, partitioned into the ones still
// animating and the ones that have fully revealed. Only the active set is
// visited in the per-frame loop; settled paths are drawn from a pre-baked
// command buffer.
type Registry struct {
	active  []*Path
	settled []*Path
}

func (r *Registry) Add(paths []*Path) {
	r.active = append(r.active, paths...)
}

// Settle moves the i'th active path into the settled set. The active slice
// is compacted in place; callers iterating it must account for the removal.
func (r *Registry) Settle(i int) {
	p := r.active[i]
	p.Finished = true
	r.active = append(r.active[:i], r.active[i+1:]...)
	r.settled = append(r.settled, p)
}

func (r *Registry) Active() []*Path  { return r.active }
func (r *Registry) Settled() []*Path { return r.settled }
