// cmd/arctrails/main.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// arctrails animates great-circle flight trails on an interactive world
// map: each flight's route is progressively revealed, the map can be panned
// and zoomed without bound across the antimeridian, and clicking the map
// reports the coordinates under the cursor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/skyviz/arctrails/pkg/log"
	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/panes"
	"github.com/skyviz/arctrails/pkg/platform"
	"github.com/skyviz/arctrails/pkg/renderer"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/apenwarr/fixconsole"
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	flightsFile = flag.String("flights", "", "animate the flights in the given JSON file rather than the built-in set")
)

var backgroundColor = renderer.RGBFromUInt8(10, 14, 26)

func init() {
	// OpenGL and GLFW require that their calls come from the main thread.
	runtime.LockOSThread()
}

func imguiInit() *imgui.Context {
	context := imgui.CreateContext()
	imgui.CurrentIO().SetIniFilename("")

	style := imgui.CurrentStyle()
	style.SetWindowRounding(4.)
	style.SetPopupRounding(4.)

	return context
}

func main() {
	flag.Parse()

	// If started from the windows command prompt, put stdout/stderr back.
	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to fix console: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)
	lg.Info("Starting arctrails")

	flights, err := LoadFlights(*flightsFile, lg)
	if err != nil {
		ShowFatalErrorDialog(lg, "Unable to load flights: %v", err)
	}

	_ = imguiInit()

	config, configErr := LoadOrMakeDefaultConfig(lg)
	if configErr != nil {
		ShowErrorDialog(lg, "Saved configuration file is corrupt; discarding it. (%v)", configErr)
	}

	plat, err := platform.New(&config.Config, lg)
	if err != nil {
		ShowFatalErrorDialog(lg, "Unable to create application window: %v", err)
	}
	imgui.CurrentPlatformIO().SetClipboardHandler(plat.GetClipboard())

	render, err := renderer.NewOpenGL2Renderer(lg)
	if err != nil {
		ShowFatalErrorDialog(lg, "Unable to initialize OpenGL: %v", err)
	}
	renderer.FontsInit(render)

	mapPane := config.MapPane
	mapPane.Activate(render, plat, lg)
	mapPane.LoadFlights(flights, time.Now())

	frames := 0
	for {
		plat.ProcessEvents()
		plat.NewFrame()
		imgui.NewFrame()

		// The map fills the whole window.
		paneExtent := math.Extent2DFromPoints([][2]float32{{0, 0}, plat.DisplaySize()})
		ctx := panes.Context{
			PaneExtent: paneExtent,
			Platform:   plat,
			Renderer:   render,
			Keyboard:   plat.GetKeyboard(),
			Now:        time.Now(),
			DPIScale:   plat.DPIScale(),
			Lg:         lg,
		}
		ctx.InitializeMouse(paneExtent, plat)

		if ctx.Keyboard.WasPressed(imgui.KeyF11) {
			plat.EnableFullScreen(!plat.IsFullScreen())
		}

		cb := renderer.GetCommandBuffer()
		cb.ClearRGB(backgroundColor)
		cb.SetDrawBounds(paneExtent, plat.DPIScale())
		mapPane.Draw(&ctx, cb)
		stats := render.RenderCommandBuffer(cb)
		renderer.ReturnCommandBuffer(cb)

		// Finalize and submit the imgui draw lists.
		imgui.Render()
		icb := renderer.GetCommandBuffer()
		renderer.GenerateImguiCommandBuffer(icb, plat.DisplaySize(), plat.FramebufferSize(), lg)
		stats.Merge(render.RenderCommandBuffer(icb))
		renderer.ReturnCommandBuffer(icb)

		plat.PostRender()

		// Periodically log rendering stats, offset so that startup frames
		// aren't the ones sampled.
		frames++
		if frames%18000 == 9000 {
			lg.Info("Rendering stats", slog.Any("render", stats))
		}

		if plat.ShouldStop() {
			break
		}
	}

	config.SaveIfChanged(plat, lg)
	plat.Dispose()
	lg.Info("Exiting")
}
