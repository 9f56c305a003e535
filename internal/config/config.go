/*
 * config.go, part of molviz.
 *
 * Copyright 2025 The molviz authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config holds the viewer's YAML configuration: camera behavior,
//snapshot rendering and the external driver hookup. Files are layered over
//the defaults, so a config file only needs the keys it changes.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/molviz/molviz/camera"
	"github.com/molviz/molviz/driver"
	"github.com/molviz/molviz/render"
)

type Config struct {
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Viewer ViewerConfig `yaml:"viewer"`
	Driver DriverConfig `yaml:"driver"`
}

//CameraConfig mirrors the orbit controller's tunables.
type CameraConfig struct {
	Distance          float64 `yaml:"distance"`
	Pitch             float64 `yaml:"pitch"`
	RotateSensitivity float64 `yaml:"rotate_sensitivity"`
	PanSpeed          float64 `yaml:"pan_speed"`
	ZoomSpeed         float64 `yaml:"zoom_speed"`
	MinDistance       float64 `yaml:"min_distance"`
	MaxDistance       float64 `yaml:"max_distance"`
}

//RenderConfig controls static snapshots.
type RenderConfig struct {
	WidthCm    float64 `yaml:"width_cm"`
	HeightCm   float64 `yaml:"height_cm"`
	Scale      float64 `yaml:"scale"`
	Background string  `yaml:"background"` //hex, "#rrggbb"
}

//ViewerConfig controls the terminal viewer.
type ViewerConfig struct {
	FPS      int  `yaml:"fps"`
	ShowHelp bool `yaml:"show_help"`
}

//DriverConfig configures the external-driver engine.
type DriverConfig struct {
	Options string `yaml:"options"`
}

//DefaultConfig returns the configuration the viewer runs with when no file
//and no flags say otherwise.
func DefaultConfig() *Config {
	return &Config{
		Camera: CameraConfig{
			Distance:          camera.DefaultDistance,
			Pitch:             camera.DefaultPitch,
			RotateSensitivity: camera.DefaultRotateSensitivity,
			PanSpeed:          camera.DefaultPanSpeed,
			ZoomSpeed:         camera.DefaultZoomSpeed,
			MinDistance:       camera.DefaultMinDistance,
			MaxDistance:       camera.DefaultMaxDistance,
		},
		Render: RenderConfig{
			WidthCm:    15,
			HeightCm:   15,
			Scale:      render.DefaultScale,
			Background: "#1a1a26",
		},
		Viewer: ViewerConfig{
			FPS:      30,
			ShowHelp: true,
		},
		Driver: DriverConfig{
			Options: driver.DefaultOptionString,
		},
	}
}

//Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Save writes the configuration to path, YAML-encoded.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
