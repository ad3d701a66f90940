// pkg/anim/anim_test.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package anim

import (
	gomath "math"
	"testing"
	"time"

	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/renderer"
)

func makeCoords(n int) []math.Point2LL {
	coords := make([]math.Point2LL, n)
	for i := range coords {
		coords[i] = math.Point2LL{-73 + float32(i)/10, 40 + float32(i)/20}
	}
	return coords
}

func TestRevealMonotonicAndSticky(t *testing.T) {
	coords := makeCoords(41)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	const rate = 0.02

	prev := 0
	finishedAt := time.Time{}
	for ms := -500; ms <= 4000; ms += 37 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		n, finished := Reveal(coords, start, now, rate)
		if n < prev {
			t.Errorf("visible count decreased at %d ms: %d -> %d", ms, prev, n)
		}
		if finished && finishedAt.IsZero() {
			finishedAt = now
		}
		if !finishedAt.IsZero() && !finished {
			t.Errorf("path un-finished at %d ms", ms)
		}
		prev = n
	}
	if finishedAt.IsZero() {
		t.Errorf("path never finished")
	}
}

func TestRevealBeforeStart(t *testing.T) {
	coords := makeCoords(11)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, ms := range []int{-1, -10, -10000} {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		n, finished := Reveal(coords, start, now, 0.02)
		if n != 0 {
			t.Errorf("%d ms before start: got %d visible points, expected 0", -ms, n)
		}
		if finished {
			t.Errorf("%d ms before start: reported finished", -ms)
		}
	}
}

func TestRevealRateBoundary(t *testing.T) {
	// At 0.02 points/ms a 101-point path takes (101-1)/0.02 = 5000 ms.
	coords := makeCoords(101)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		ms       int
		n        int
		finished bool
	}{
		{0, 1, false},
		{50, 2, false},
		{2500, 51, false},
		{4999, 100, false},
		{5000, 101, true},
		{10000, 101, true},
	} {
		now := start.Add(time.Duration(tc.ms) * time.Millisecond)
		n, finished := Reveal(coords, start, now, 0.02)
		if n != tc.n || finished != tc.finished {
			t.Errorf("elapsed %d ms: got (%d, %v), expected (%d, %v)",
				tc.ms, n, finished, tc.n, tc.finished)
		}
	}
}

func TestRevealEmptyCoords(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n, finished := Reveal(nil, start, start.Add(-time.Second), 0.02)
	if n != 0 || !finished {
		t.Errorf("empty coords: got (%d, %v), expected (0, true)", n, finished)
	}
}

func TestLoaderSequentialStarts(t *testing.T) {
	// Two sub-paths of one flight play back to back: the second starts
	// exactly when the first finishes, (51-1)/0.02 = 2500 ms later.
	group := NewGroup([][]math.Point2LL{makeCoords(51), makeCoords(31)}, renderer.RGB{R: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	l := Loader{InterGroupDelay: 150 * time.Millisecond, Rate: 0.02}
	l.Schedule([][]*Path{group}, start)

	if got := group[0].Start; !got.Equal(start) {
		t.Errorf("first sub-path start: got %v, expected %v", got, start)
	}
	want := start.Add(2500 * time.Millisecond)
	if got := group[1].Start; !got.Equal(want) {
		t.Errorf("second sub-path start: got %v, expected %v", got, want)
	}
}

func TestLoaderGroupSpacing(t *testing.T) {
	groups := [][]*Path{
		NewGroup([][]math.Point2LL{makeCoords(11)}, renderer.RGB{R: 1}),
		{}, // empty group is a no-op but still consumes a slot
		NewGroup([][]math.Point2LL{makeCoords(21)}, renderer.RGB{G: 1}),
	}
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	l := Loader{InterGroupDelay: 150 * time.Millisecond, Rate: 0.02}
	l.Schedule(groups, start)

	if l.Pending() != 2 {
		t.Fatalf("got %d pending groups, expected 2", l.Pending())
	}
	want := start.Add(300 * time.Millisecond)
	if got := groups[2][0].Start; !got.Equal(want) {
		t.Errorf("third group start: got %v, expected %v", got, want)
	}

	// Nothing is admitted before its due time.
	var reg Registry
	if n := l.Admit(start.Add(299*time.Millisecond), &reg); n != 1 {
		t.Errorf("admitted %d paths at 299 ms, expected 1", n)
	}
	if n := l.Admit(start.Add(300*time.Millisecond), &reg); n != 1 {
		t.Errorf("admitted %d paths at 300 ms, expected 1", n)
	}
	if l.Pending() != 0 {
		t.Errorf("%d groups still pending after all due", l.Pending())
	}
}

///////////////////////////////////////////////////////////////////////////
// Controller tests decode the generated CommandBuffer directly.

type cbCommand struct {
	cmd  uint32
	args []uint32
}

func scanCommands(t *testing.T, buf []uint32) []cbCommand {
	t.Helper()
	var cmds []cbCommand
	for i := 0; i < len(buf); {
		cmd := buf[i]
		i++
		var n int
		switch cmd {
		case renderer.RendererLoadProjectionMatrix, renderer.RendererLoadModelViewMatrix:
			n = 16
		case renderer.RendererClearRGBA, renderer.RendererScissor, renderer.RendererViewport,
			renderer.RendererSetRGBA:
			n = 4
		case renderer.RendererFloatBuffer, renderer.RendererIntBuffer, renderer.RendererRawBuffer:
			n = 1 + int(buf[i])
		case renderer.RendererEnableTexture, renderer.RendererLineWidth, renderer.RendererPointSize,
			renderer.RendererCallBuffer:
			n = 1
		case renderer.RendererVertexArray, renderer.RendererRGB32Array, renderer.RendererRGB8Array,
			renderer.RendererTexCoordArray:
			n = 3
		case renderer.RendererDrawLines, renderer.RendererDrawPoints, renderer.RendererDrawTriangles:
			n = 2
		case renderer.RendererBlend, renderer.RendererDisableBlend, renderer.RendererDisableTexture,
			renderer.RendererDisableVertexArray, renderer.RendererDisableColorArray,
			renderer.RendererDisableTexCoordArray, renderer.RendererResetState:
			n = 0
		default:
			t.Fatalf("unknown command %d at offset %d", cmd, i-1)
		}
		cmds = append(cmds, cbCommand{cmd: cmd, args: buf[i : i+n]})
		i += n
	}
	return cmds
}

func countCommands(t *testing.T, buf []uint32, cmd uint32) int {
	t.Helper()
	n := 0
	for _, c := range scanCommands(t, buf) {
		if c.cmd == cmd {
			n++
		}
	}
	return n
}

func testView(centerLon float32) View {
	return View{
		CenterLongitude: centerLon,
		DegreesPerPixel: [2]float32{0.1, 0.1},
		DPIScale:        1,
	}
}

func TestControllerWorldWrapDraws(t *testing.T) {
	// An unfinished path is drawn exactly twice per frame, translated by
	// k and k+1 world-widths.
	coords := makeCoords(101)
	group := NewGroup([][]math.Point2LL{coords}, renderer.RGB{R: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		centerLon float32
		k         int
	}{
		{0, 0},
		{370, 1},
		{-10, -1},
		{725, 2},
	} {
		c := NewController(0.02, 150*time.Millisecond, nil)
		c.Schedule([][]*Path{group}, start)

		cb := renderer.GetCommandBuffer()
		c.Tick(start.Add(time.Second), testView(tc.centerLon), cb)

		// Collect the first vertex of the strip behind each line draw.
		var firstLons []float32
		var lastVertexOffset uint32
		nLineDraws := 0
		for _, cmd := range scanCommands(t, cb.Buf) {
			switch cmd.cmd {
			case renderer.RendererVertexArray:
				lastVertexOffset = cmd.args[0]
			case renderer.RendererDrawLines:
				nLineDraws++
				firstLons = append(firstLons,
					gomath.Float32frombits(cb.Buf[lastVertexOffset/4]))
			}
		}

		if nLineDraws != 2 {
			t.Errorf("center %g: got %d line draws per path, expected 2",
				tc.centerLon, nLineDraws)
		}
		for i, lon := range firstLons {
			want := coords[0].Longitude() + 360*float32(tc.k+i)
			if lon != want {
				t.Errorf("center %g draw %d: first vertex longitude %g, expected %g",
					tc.centerLon, i, lon, want)
			}
		}
		renderer.ReturnCommandBuffer(cb)
	}
}

func TestControllerFinishedNoDraw(t *testing.T) {
	// Once a path has fully revealed, the animating pass stops drawing
	// it; it only renders via the baked settled layer.
	group := NewGroup([][]math.Point2LL{makeCoords(11)}, renderer.RGB{B: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewController(0.02, 150*time.Millisecond, nil)
	c.Schedule([][]*Path{group}, start)

	// (11-1)/0.02 = 500 ms to finish; tick well past that.
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	c.Tick(start.Add(2*time.Second), testView(0), cb)

	if !group[0].Finished {
		t.Fatalf("path not marked finished")
	}
	if c.ActivePaths() != 0 || c.SettledPaths() != 1 {
		t.Errorf("got %d active / %d settled paths, expected 0 / 1",
			c.ActivePaths(), c.SettledPaths())
	}
	if n := countCommands(t, cb.Buf, renderer.RendererDrawLines); n != 0 {
		t.Errorf("animating pass issued %d line draws for a finished path", n)
	}
	if n := countCommands(t, cb.Buf, renderer.RendererCallBuffer); n != 1 {
		t.Errorf("got %d settled-layer calls, expected 1", n)
	}

	// The settled layer draws the full path in both world copies, batched
	// into a single draw: 2 * (11-1) segments = 40 indices.
	nLines := 0
	for _, cmd := range scanCommands(t, c.settled.Buf) {
		if cmd.cmd == renderer.RendererDrawLines {
			nLines++
			if cmd.args[1] != 40 {
				t.Errorf("settled draw has %d indices, expected 40", cmd.args[1])
			}
		}
	}
	if nLines != 1 {
		t.Errorf("settled layer has %d line draws, expected 1", nLines)
	}
}

func TestControllerSettledRebakeOnWrap(t *testing.T) {
	group := NewGroup([][]math.Point2LL{makeCoords(11)}, renderer.RGB{G: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewController(0.02, 150*time.Millisecond, nil)
	c.Schedule([][]*Path{group}, start)

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	c.Tick(start.Add(2*time.Second), testView(0), cb)
	if c.settledOffset != 0 {
		t.Fatalf("settled layer baked for offset %d, expected 0", c.settledOffset)
	}

	// Panning across the wrap boundary must rebake the settled layer for
	// the new world copy.
	cb.Reset()
	c.Tick(start.Add(3*time.Second), testView(400), cb)
	if c.settledOffset != 1 {
		t.Errorf("settled layer baked for offset %d after pan, expected 1", c.settledOffset)
	}
}

func TestControllerAdmissionTiming(t *testing.T) {
	groups := [][]*Path{
		NewGroup([][]math.Point2LL{makeCoords(11)}, renderer.RGB{R: 1}),
		NewGroup([][]math.Point2LL{makeCoords(11)}, renderer.RGB{G: 1}),
	}
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewController(0.02, 150*time.Millisecond, nil)
	c.Schedule(groups, start)

	// Before the schedule start nothing is admitted and nothing draws.
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	c.Tick(start.Add(-time.Second), testView(0), cb)
	if c.ActivePaths() != 0 {
		t.Errorf("%d paths active before schedule start", c.ActivePaths())
	}
	if n := countCommands(t, cb.Buf, renderer.RendererDrawLines); n != 0 {
		t.Errorf("%d line draws before schedule start", n)
	}

	// Between the two groups' due times only the first is admitted.
	cb.Reset()
	c.Tick(start.Add(100*time.Millisecond), testView(0), cb)
	if c.ActivePaths() != 1 {
		t.Errorf("got %d active paths at 100 ms, expected 1", c.ActivePaths())
	}

	cb.Reset()
	c.Tick(start.Add(200*time.Millisecond), testView(0), cb)
	if c.ActivePaths() != 2 {
		t.Errorf("got %d active paths at 200 ms, expected 2", c.ActivePaths())
	}
}

func TestControllerMarkers(t *testing.T) {
	// Transient start/end markers are drawn each frame for animating
	// paths: 2 circles per world copy, 16 triangles each.
	group := NewGroup([][]math.Point2LL{makeCoords(101)}, renderer.RGB{R: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewController(0.02, 150*time.Millisecond, nil)
	c.Schedule([][]*Path{group}, start)

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	c.Tick(start.Add(time.Second), testView(0), cb)

	for _, cmd := range scanCommands(t, cb.Buf) {
		if cmd.cmd == renderer.RendererDrawTriangles {
			if want := uint32(4 * 16 * 3); cmd.args[1] != want {
				t.Errorf("marker draw has %d indices, expected %d", cmd.args[1], want)
			}
			return
		}
	}
	t.Errorf("no marker triangles drawn for an animating path")
}

func TestControllerSmallMarkersDrawAsPoints(t *testing.T) {
	// Markers smaller than the trail lines skip circle tessellation and
	// are drawn as single points.
	group := NewGroup([][]math.Point2LL{makeCoords(101)}, renderer.RGB{R: 1})
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewController(0.02, 150*time.Millisecond, nil)
	c.MarkerRadius = 1
	c.Schedule([][]*Path{group}, start)

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	c.Tick(start.Add(time.Second), testView(0), cb)

	if n := countCommands(t, cb.Buf, renderer.RendererDrawTriangles); n != 0 {
		t.Errorf("small markers tessellated into %d triangle draws", n)
	}
	if n := countCommands(t, cb.Buf, renderer.RendererPointSize); n != 1 {
		t.Errorf("got %d point size commands, expected 1", n)
	}
	for _, cmd := range scanCommands(t, cb.Buf) {
		if cmd.cmd == renderer.RendererDrawPoints {
			// Start and end markers in each of the two world copies.
			if cmd.args[1] != 4 {
				t.Errorf("point marker draw has %d indices, expected 4", cmd.args[1])
			}
			return
		}
	}
	t.Errorf("no point markers drawn for an animating path")
}
