// pkg/anim/controller.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package anim

import (
	"time"

	"github.com/skyviz/arctrails/pkg/log"
	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/renderer"
)

// View carries the per-frame state the controller needs from the host map
// view: where the view is centered (longitude is unbounded; the viewer may
// have panned across the antimeridian any number of times) and the current
// resolution, used to size markers so they keep a constant screen size.
type View struct {
	CenterLongitude float32
	DegreesPerPixel [2]float32
	DPIScale        float32
}

// WorldOffset gives the integer number of world-widths between the view
// center and the prime meridian.
func (v View) WorldOffset() int {
	return int(math.Floor(v.CenterLongitude / 360))
}

// Controller owns the path registry and the staggered loader and runs one
// animation step per display frame. All mutation happens on the frame
// callback chain, so the controller is single-threaded and lock-free.
type Controller struct {
	reg    Registry
	loader Loader
	lg     *log.Logger

	// Settled paths are baked into a command buffer once and replayed
	// each frame; it is rebuilt when a path settles or when the view
	// crosses a world-wrap boundary.
	settled       renderer.CommandBuffer
	settledOffset int
	settledDirty  bool

	LineWidth    float32
	MarkerRadius float32 // pixels
}

func NewController(rate float32, interGroupDelay time.Duration, lg *log.Logger) *Controller {
	return &Controller{
		loader:       Loader{InterGroupDelay: interGroupDelay, Rate: rate},
		lg:           lg,
		settledDirty: true,
		LineWidth:    2,
		MarkerRadius: 4,
	}
}

// Schedule queues the given path groups for staggered admission starting
// at the given time. It may be called again later (e.g. for a dataset
// reload); newly scheduled groups stagger from their own start time.
func (c *Controller) Schedule(groups [][]*Path, start time.Time) {
	c.loader.Schedule(groups, start)
}

// ActivePaths returns the number of paths currently animating.
func (c *Controller) ActivePaths() int { return len(c.reg.active) }

// SettledPaths returns the number of paths that have fully revealed.
func (c *Controller) SettledPaths() int { return len(c.reg.settled) }

type revealDraw struct {
	p *Path
	n int
}

// Tick runs one animation frame: admits due path groups, advances each
// active path's reveal state, and emits draw commands into cb. Geometry is
// emitted in lat-long space; the caller has already loaded the viewing
// matrices. Every path is drawn twice, translated by WorldOffset and
// WorldOffset+1 world-widths, so it remains visible immediately after the
// viewer pans across a wrap boundary.
func (c *Controller) Tick(now time.Time, view View, cb *renderer.CommandBuffer) {
	if n := c.loader.Admit(now, &c.reg); n > 0 {
		c.lg.Debugf("admitted %d paths; %d groups pending", n, c.loader.Pending())
	}

	k := view.WorldOffset()

	// Advance reveal state first so that a path finishing this frame is
	// drawn from the settled layer rather than disappearing for a frame.
	var draws []revealDraw
	for i := 0; i < len(c.reg.active); {
		p := c.reg.active[i]
		n, finished := Reveal(p.Coords, p.Start, now, c.loader.Rate)
		if finished {
			c.reg.Settle(i)
			c.settledDirty = true
			continue
		}
		if n > 0 {
			draws = append(draws, revealDraw{p: p, n: n})
		}
		i++
	}

	scale := view.DPIScale
	if scale == 0 {
		scale = 1
	}
	cb.LineWidth(c.LineWidth, scale)

	// Settled layer first, underneath the animating paths.
	if c.settledDirty || k != c.settledOffset {
		c.bakeSettled(k)
	}
	if len(c.settled.Buf) > 0 {
		cb.Call(c.settled)
	}

	// One line-strip draw per unfinished path per world copy.
	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)
	td := renderer.GetColoredTrianglesDrawBuilder()
	defer renderer.ReturnColoredTrianglesDrawBuilder(td)
	pd := renderer.GetPointsDrawBuilder()
	defer renderer.ReturnPointsDrawBuilder(pd)

	// Markers smaller than a couple of line widths aren't worth
	// tessellating into circles; draw those as single points.
	usePoints := c.MarkerRadius < 2*c.LineWidth

	rx := c.MarkerRadius * view.DegreesPerPixel[0]
	ry := c.MarkerRadius * view.DegreesPerPixel[1]

	for _, d := range draws {
		cb.SetRGB(d.p.Color)
		for off := k; off <= k+1; off++ {
			pts := translateLL(d.p.Coords, d.n, 360*float32(off))
			ld.AddLineStrip(pts)
			ld.GenerateCommands(cb)
			ld.Reset()

			// Transient start and end markers at the prefix extremes;
			// rebuilt every frame, never retained.
			if usePoints {
				pd.AddPoint(pts[0], d.p.Color.Scale(0.6))
				pd.AddPoint(pts[len(pts)-1], d.p.Color)
			} else {
				td.AddCircle(pts[0], rx, ry, 16, d.p.Color.Scale(0.6))
				td.AddCircle(pts[len(pts)-1], rx, ry, 16, d.p.Color)
			}
		}
	}

	if usePoints && len(draws) > 0 {
		cb.PointSize(2*c.MarkerRadius, scale)
	}
	pd.GenerateCommands(cb)
	td.GenerateCommands(cb)
}

// bakeSettled rebuilds the static layer that draws the fully revealed
// paths, translated into the k and k+1 world copies.
func (c *Controller) bakeSettled(k int) {
	c.settled.Reset()
	c.settledOffset = k
	c.settledDirty = false

	if len(c.reg.settled) == 0 {
		return
	}

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)
	for _, p := range c.reg.settled {
		for off := k; off <= k+1; off++ {
			ld.AddLineStrip(p.Color, translateLL(p.Coords, len(p.Coords), 360*float32(off)))
		}
	}
	ld.GenerateCommands(&c.settled)
}

func translateLL(coords []math.Point2LL, n int, dlon float32) [][2]float32 {
	pts := make([][2]float32, n)
	for i := 0; i < n; i++ {
		pts[i] = [2]float32{coords[i][0] + dlon, coords[i][1]}
	}
	return pts
}
