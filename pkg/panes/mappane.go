// pkg/panes/mappane.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"time"

	"github.com/skyviz/arctrails/pkg/anim"
	"github.com/skyviz/arctrails/pkg/log"
	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/platform"
	"github.com/skyviz/arctrails/pkg/renderer"

	"github.com/AllenDang/cimgui-go/imgui"
)

const (
	DefaultVerticalSpan    = 120
	DefaultRevealRate      = 0.02 // points per millisecond
	DefaultInterGroupDelay = 150 * time.Millisecond
	DefaultArcSegments     = 100
)

var defaultCenter = math.Point2LL{0, 25}

// Colors assigned to successive flights, round robin.
var flightPalette = []renderer.RGB{
	renderer.RGBFromHex(0xe6194b),
	renderer.RGBFromHex(0x3cb44b),
	renderer.RGBFromHex(0xffe119),
	renderer.RGBFromHex(0x4363d8),
	renderer.RGBFromHex(0xf58231),
	renderer.RGBFromHex(0x911eb4),
	renderer.RGBFromHex(0x46f0f0),
	renderer.RGBFromHex(0xf032e6),
	renderer.RGBFromHex(0xbcf60c),
	renderer.RGBFromHex(0xfabebe),
}

var graticuleColor = renderer.RGBFromUInt8(64, 64, 72)

// MapPane draws the animated flight-trail map: an equirectangular world
// view with a graticule backdrop, the animating great-circle trails, and a
// click-to-inspect coordinate popup. The exported fields are saved in the
// config file.
type MapPane struct {
	Center       math.Point2LL `json:"center"`
	VerticalSpan float32       `json:"vertical_span"`
	RevealRate   float32       `json:"reveal_rate"`
	ArcSegments  int           `json:"arc_segments"`

	controller *anim.Controller
	lg         *log.Logger

	// Left-button drag pans the map; a press-release without movement is
	// a click that opens the coordinate popup.
	dragging bool

	popup struct {
		show   bool
		loc    math.Point2LL
		winPos [2]float32
	}
}

func NewMapPane() *MapPane {
	return &MapPane{
		Center:       defaultCenter,
		VerticalSpan: DefaultVerticalSpan,
		RevealRate:   DefaultRevealRate,
		ArcSegments:  DefaultArcSegments,
	}
}

func (mp *MapPane) Name() string { return "map" }

func (mp *MapPane) Activate(r renderer.Renderer, p platform.Platform, lg *log.Logger) {
	mp.lg = lg
	if mp.VerticalSpan == 0 {
		mp.VerticalSpan = DefaultVerticalSpan
	}
	if mp.RevealRate == 0 {
		mp.RevealRate = DefaultRevealRate
	}
	if mp.ArcSegments == 0 {
		mp.ArcSegments = DefaultArcSegments
	}
	mp.controller = anim.NewController(mp.RevealRate, DefaultInterGroupDelay, lg)
}

// LoadFlights computes the great-circle arcs for the given flight endpoint
// pairs and schedules their staggered animation starting at the given
// time.
func (mp *MapPane) LoadFlights(flights [][2]math.Point2LL, start time.Time) {
	var groups [][]*anim.Path
	for i, f := range flights {
		pieces := math.GreatCircle(f[0], f[1], mp.ArcSegments)
		color := flightPalette[i%len(flightPalette)]
		groups = append(groups, anim.NewGroup(pieces, color))
	}
	mp.controller.Schedule(groups, start)
	mp.lg.Infof("scheduled %d flights for animation", len(flights))
}

func (mp *MapPane) Draw(ctx *Context, cb *renderer.CommandBuffer) {
	if mp.controller == nil {
		return
	}

	transforms := GetMapTransforms(ctx.PaneExtent, mp.Center, mp.VerticalSpan)
	mp.processInput(ctx, &transforms)
	// Input may have panned or zoomed the view.
	transforms = GetMapTransforms(ctx.PaneExtent, mp.Center, mp.VerticalSpan)

	transforms.LoadLatLongViewingMatrices(cb)
	mp.drawGraticule(ctx, cb)

	view := anim.View{
		CenterLongitude: mp.Center.Longitude(),
		DegreesPerPixel: transforms.DegreesPerPixel(),
		DPIScale:        ctx.DPIScale,
	}
	mp.controller.Tick(ctx.Now, view, cb)

	mp.drawPopup(ctx, &transforms)
}

// processInput handles pan, zoom, and the click that opens the coordinate
// popup. Any map movement dismisses an open popup.
func (mp *MapPane) processInput(ctx *Context, transforms *MapTransforms) {
	moved := false

	if ctx.Mouse != nil {
		if ctx.Mouse.Dragging[platform.MouseButtonPrimary] {
			mp.dragging = true
			delta := transforms.LatLongFromWindowV(ctx.Mouse.DragDelta)
			mp.Center = math.Sub2f(mp.Center, delta)
			moved = true
		} else if ctx.Mouse.Released[platform.MouseButtonPrimary] {
			if !mp.dragging {
				mp.popup.show = true
				mp.popup.loc = transforms.LatLongFromWindowP(ctx.Mouse.Pos)
				ds := ctx.Platform.DisplaySize()
				full := math.Extent2DFromPoints([][2]float32{{0, 0}, ds})
				mp.popup.winPos = ctx.WindowFromPaneP(ctx.Mouse.Pos, full)
			}
			mp.dragging = false
		}

		if wy := ctx.Mouse.Wheel[1]; wy != 0 {
			// Zoom about the mouse cursor so the point under it stays put.
			mouseLL := transforms.LatLongFromWindowP(ctx.Mouse.Pos)
			scale := math.Pow(1.25, wy)
			mp.VerticalSpan = math.Clamp(mp.VerticalSpan*scale, 1, 180)

			zoomed := GetMapTransforms(ctx.PaneExtent, mp.Center, mp.VerticalSpan)
			newLL := zoomed.LatLongFromWindowP(ctx.Mouse.Pos)
			mp.Center = math.Add2f(mp.Center, math.Sub2f(mouseLL, newLL))
			moved = true
		}
	}

	if k := ctx.Keyboard; k != nil {
		step := mp.VerticalSpan / 8
		if k.WasPressed(imgui.KeyLeftArrow) {
			mp.Center[0] -= step
			moved = true
		}
		if k.WasPressed(imgui.KeyRightArrow) {
			mp.Center[0] += step
			moved = true
		}
		if k.WasPressed(imgui.KeyDownArrow) {
			mp.Center[1] -= step
			moved = true
		}
		if k.WasPressed(imgui.KeyUpArrow) {
			mp.Center[1] += step
			moved = true
		}
		if k.WasPressed(imgui.KeyMinus) {
			mp.VerticalSpan = math.Clamp(mp.VerticalSpan*1.25, 1, 180)
			moved = true
		}
		if k.WasPressed(imgui.KeyEqual) {
			mp.VerticalSpan = math.Clamp(mp.VerticalSpan/1.25, 1, 180)
			moved = true
		}
		if k.WasPressed(imgui.KeyHome) {
			mp.Center = defaultCenter
			mp.VerticalSpan = DefaultVerticalSpan
			moved = true
		}
		if k.WasPressed(imgui.KeyEscape) {
			mp.popup.show = false
		}
	}

	// Keep the visible latitude range on the globe. Longitude is left
	// unbounded; world wrapping handles it.
	maxLat := math.Max(90-mp.VerticalSpan/2, 0)
	mp.Center[1] = math.Clamp(mp.Center[1], -maxLat, maxLat)

	if moved {
		mp.popup.show = false
	}
}

// drawGraticule draws 30 degree meridians and parallels as the map
// backdrop, once for each of the two visible world copies.
func (mp *MapPane) drawGraticule(ctx *Context, cb *renderer.CommandBuffer) {
	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)

	k := int(math.Floor(mp.Center.Longitude() / 360))
	for off := k; off <= k+1; off++ {
		dlon := 360 * float32(off)
		for lon := float32(-180); lon <= 180; lon += 30 {
			ld.AddLine([2]float32{dlon + lon, -90}, [2]float32{dlon + lon, 90})
		}
		for lat := float32(-90); lat <= 90; lat += 30 {
			ld.AddLine([2]float32{dlon - 180, lat}, [2]float32{dlon + 180, lat})
		}
	}

	cb.LineWidth(1, ctx.DPIScale)
	cb.SetRGB(graticuleColor)
	ld.GenerateCommands(cb)
}

func (mp *MapPane) drawPopup(ctx *Context, transforms *MapTransforms) {
	if !mp.popup.show {
		return
	}

	imgui.SetNextWindowPosV(imgui.Vec2{X: mp.popup.winPos[0], Y: mp.popup.winPos[1]},
		imgui.CondAppearing, imgui.Vec2{})
	show := mp.popup.show
	imgui.BeginV("Position", &show,
		imgui.WindowFlagsNoResize|imgui.WindowFlagsAlwaysAutoResize|
			imgui.WindowFlagsNoCollapse|imgui.WindowFlagsNoSavedSettings)
	imgui.Text(mp.popup.loc.DDString())
	imgui.Text(mp.popup.loc.DMSString())
	imgui.End()
	mp.popup.show = show
}
