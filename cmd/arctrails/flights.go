// cmd/arctrails/flights.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/skyviz/arctrails/pkg/log"
	"github.com/skyviz/arctrails/pkg/math"
	"github.com/skyviz/arctrails/pkg/util"
)

//go:embed flights.json
var defaultFlightsJSON []byte

// flightSpec is one animated flight in the input file: origin and
// destination given as [latitude, longitude] pairs in degrees.
type flightSpec struct {
	Name string     `json:"name"`
	From [2]float32 `json:"from"`
	To   [2]float32 `json:"to"`
}

// LoadFlights returns the endpoint pairs of the flights to animate, either
// from the JSON file at the given path or from the built-in set if the path
// is empty.
func LoadFlights(path string, lg *log.Logger) ([][2]math.Point2LL, error) {
	contents := defaultFlightsJSON
	if path != "" {
		var err error
		contents, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	var specs []flightSpec
	if err := json.Unmarshal(contents, &specs); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no flights found")
	}

	for _, s := range specs {
		for _, lat := range []float32{s.From[0], s.To[0]} {
			if lat < -90 || lat > 90 {
				return nil, fmt.Errorf("%s: latitude %g out of range", s.Name, lat)
			}
		}
	}

	// The file gives latitude first; Point2LL stores longitude first.
	flights := util.MapSlice(specs, func(s flightSpec) [2]math.Point2LL {
		return [2]math.Point2LL{{s.From[1], s.From[0]}, {s.To[1], s.To[0]}}
	})

	lg.Infof("Loaded %d flights", len(flights))
	return flights, nil
}
