/*
 * config_test.go, part of molviz.
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

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(Te *testing.T) {
	cfg := DefaultConfig()
	if cfg.Camera.Distance != 15.0 || cfg.Camera.Pitch != -0.3 {
		Te.Errorf("camera defaults %+v", cfg.Camera)
	}
	if cfg.Render.Scale != 0.4 || cfg.Render.Background != "#1a1a26" {
		Te.Errorf("render defaults %+v", cfg.Render)
	}
	if cfg.Viewer.FPS != 30 {
		Te.Errorf("viewer defaults %+v", cfg.Viewer)
	}
}

func TestSaveLoadRoundTrip(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "molviz.yaml")
	cfg := DefaultConfig()
	cfg.Camera.Distance = 42
	cfg.Driver.Options = "-port 9999"
	if err := cfg.Save(path); err != nil {
		Te.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		Te.Errorf("round trip changed the config:\n%+v\n%+v", got, cfg)
	}
}

//A partial file only overrides the keys it names.
func TestLoadPartial(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "partial.yaml")
	partial := "camera:\n  distance: 30\nviewer:\n  fps: 10\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		Te.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		Te.Fatal(err)
	}
	if cfg.Camera.Distance != 30 || cfg.Viewer.FPS != 10 {
		Te.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Camera.PanSpeed != 5.0 || cfg.Render.Scale != 0.4 {
		Te.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissing(Te *testing.T) {
	if _, err := Load(filepath.Join(Te.TempDir(), "nope.yaml")); err == nil {
		Te.Error("loading a missing file did not fail")
	}
}

func TestLoadGarbage(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "garbage.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		Te.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		Te.Error("loading garbage did not fail")
	}
}
