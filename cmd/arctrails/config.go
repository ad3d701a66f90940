// cmd/arctrails/config.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyviz/arctrails/pkg/log"
	"github.com/skyviz/arctrails/pkg/panes"
	"github.com/skyviz/arctrails/pkg/platform"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/brunoga/deep"
)

// Version history
// 1: initial release
const configVersion = 1

// Config holds the state arctrails saves across sessions: window placement,
// the imgui layout, and the map view.
type Config struct {
	platform.Config

	Version       int
	ImGuiSettings string

	MapPane *panes.MapPane
}

var defaultConfig = Config{
	Config: platform.Config{
		InitialWindowPosition: [2]int{100, 100},
	},
	Version: configVersion,
}

func getDefaultConfig() *Config {
	c := deep.MustCopy(defaultConfig)
	c.MapPane = panes.NewMapPane()
	return &c
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config directory: %v", err)
		dir = "."
	}

	dir = filepath.Join(dir, "ArcTrails")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "config.json")
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(lg *log.Logger) error {
	lg.Infof("Saving config to: %s", configFilePath(lg))
	f, err := os.Create(configFilePath(lg))
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// SaveIfChanged snapshots the current window placement and imgui layout
// into the config and writes it out, though only if it differs from what is
// already on disk.
func (c *Config) SaveIfChanged(plat platform.Platform, lg *log.Logger) bool {
	c.ImGuiSettings = imgui.SaveIniSettingsToMemory()
	c.InitialWindowSize = plat.WindowSize()
	c.InitialWindowPosition = plat.WindowPosition()

	fn := configFilePath(lg)
	onDisk, err := os.ReadFile(fn)
	if err == nil {
		var b strings.Builder
		if err := c.Encode(&b); err == nil && b.String() == string(onDisk) {
			return false
		}
	}

	if err := c.Save(lg); err != nil {
		ShowErrorDialog(lg, "Error saving configuration file: %v", err)
	}

	return true
}

func LoadOrMakeDefaultConfig(lg *log.Logger) (config *Config, configErr error) {
	fn := configFilePath(lg)
	lg.Infof("Loading config from: %s", fn)

	config = getDefaultConfig()
	if contents, err := os.ReadFile(fn); err == nil {
		d := json.NewDecoder(bytes.NewReader(contents))

		config = &Config{}
		if err := d.Decode(config); err != nil {
			configErr = err
			config = getDefaultConfig()
		}

		if config.Version < configVersion {
			// Start the view state over after incompatible changes.
			config.MapPane = nil
		}
		config.Version = configVersion

		if config.MapPane == nil {
			config.MapPane = panes.NewMapPane()
		}
	}

	if config.ImGuiSettings != "" {
		imgui.LoadIniSettingsFromMemory(config.ImGuiSettings)
	}

	return
}
