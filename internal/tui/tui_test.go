/*
 * tui_test.go, part of molviz.
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

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	mol "github.com/molviz/molviz"
)

func frames(Te *testing.T, inputs ...string) []*mol.Molecule {
	Te.Helper()
	out := make([]*mol.Molecule, 0, len(inputs))
	for _, v := range inputs {
		m, err := mol.XYZReadString(v)
		if err != nil {
			Te.Fatal(err)
		}
		out = append(out, m)
	}
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(Te *testing.T, m Model, s string) Model {
	Te.Helper()
	nm, _ := m.Update(key(s))
	return nm.(Model)
}

func TestNewDefaults(Te *testing.T) {
	m := New(frames(Te, "1\none atom\nO 0.0 0.0 0.0\n"), nil, Options{})
	if m.opts.FPS != 30 {
		Te.Errorf("fps %d, want 30", m.opts.FPS)
	}
	if m.opts.Scale != 0.4 {
		Te.Errorf("scale %f, want 0.4", m.opts.Scale)
	}
	if m.cam == nil {
		Te.Fatal("no camera was created")
	}
	if m.playing {
		Te.Error("a plain file viewer should start paused")
	}
}

func TestFrameKeys(Te *testing.T) {
	m := New(frames(Te,
		"1\na\nO 0.0 0.0 0.0\n",
		"1\nb\nO 0.5 0.0 0.0\n",
		"1\nc\nO 1.0 0.0 0.0\n"), nil, Options{})
	m = press(Te, m, "n")
	if m.frame != 1 || m.current().Comment != "b" {
		Te.Errorf("after n: frame %d %q", m.frame, m.current().Comment)
	}
	m = press(Te, m, "p")
	m = press(Te, m, "p")
	if m.frame != 2 || m.current().Comment != "c" {
		Te.Errorf("p should wrap: frame %d %q", m.frame, m.current().Comment)
	}
}

func TestPlayToggleAndTick(Te *testing.T) {
	m := New(frames(Te, "1\na\nO 0 0 0\n", "1\nb\nO 1 0 0\n"), nil, Options{})
	m = press(Te, m, " ")
	if !m.playing {
		Te.Fatal("space did not start playback")
	}
	nm, cmd := m.Update(tickMsg(time.Now()))
	m = nm.(Model)
	if m.frame != 1 {
		Te.Errorf("tick did not advance the frame: %d", m.frame)
	}
	if cmd == nil {
		Te.Error("tick did not reschedule itself")
	}
	m = press(Te, m, " ")
	nm, _ = m.Update(tickMsg(time.Now()))
	if nm.(Model).frame != 1 {
		Te.Error("paused viewer advanced anyway")
	}
}

func TestQuitKey(Te *testing.T) {
	m := New(frames(Te, "1\na\nO 0 0 0\n"), nil, Options{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		Te.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		Te.Errorf("q produced %T, want tea.QuitMsg", cmd())
	}
}

func TestRotateKeysMoveCamera(Te *testing.T) {
	m := New(frames(Te, "1\na\nO 0 0 0\n"), nil, Options{})
	before := m.cam.Position()
	m = press(Te, m, "l")
	if m.cam.Position() == before {
		Te.Error("rotation key left the camera in place")
	}
	d := m.cam.Distance
	m = press(Te, m, "+")
	if m.cam.Distance >= d {
		Te.Error("+ did not zoom in")
	}
}

//The a key pans the target toward the camera's left, d toward its right.
func TestPanKeys(Te *testing.T) {
	m := New(frames(Te, "1\na\nO 0 0 0\n"), nil, Options{})
	m = press(Te, m, "a")
	if m.cam.Target.X >= 0 {
		Te.Errorf("after a: target %v, want it moved toward -X", m.cam.Target)
	}
	m = press(Te, m, "d")
	m = press(Te, m, "d")
	if m.cam.Target.X <= 0 {
		Te.Errorf("after d d: target %v, want it moved toward +X", m.cam.Target)
	}
}

func TestCanvas(Te *testing.T) {
	m := New(frames(Te, "1\ncentered oxygen\nO 0.0 0.0 0.0\n"), nil, Options{})
	grid := m.Canvas(41, 21)
	center := grid[10][20]
	if center.ch == ' ' {
		Te.Fatal("centered atom left the center cell blank")
	}
	if center.color != "#ff3333" {
		Te.Errorf("center cell color %q, want the oxygen red", center.color)
	}
	empty := New(frames(Te, "0\nnothing\n"), nil, Options{})
	for _, row := range empty.Canvas(10, 5) {
		for _, c := range row {
			if c.ch != ' ' {
				Te.Error("empty molecule painted something")
			}
		}
	}
}

func TestViewText(Te *testing.T) {
	m := New(frames(Te, "3\na water to look at\nO 0.0 0.0 0.117176\nH 0.0 0.7572 -0.468706\nH 0.0 -0.7572 -0.468706\n"), nil, Options{ShowHelp: true})
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := nm.(Model).View()
	if !strings.Contains(view, "H2O") {
		Te.Error("view does not show the formula")
	}
	if !strings.Contains(view, "a water to look at") {
		Te.Error("view does not show the comment")
	}
	if !strings.Contains(view, "rotate") {
		Te.Error("view does not show the key help")
	}
}

type fakeSource struct{ m *mol.Molecule }

func (f *fakeSource) Molecule() *mol.Molecule { return f.m }

func TestLiveSource(Te *testing.T) {
	fs := frames(Te, "1\nfile frame\nO 0 0 0\n")
	live, err := mol.XYZReadString("1\nlive frame\nO 9 9 9\n")
	if err != nil {
		Te.Fatal(err)
	}
	m := New(fs, nil, Options{Source: &fakeSource{m: live}})
	if !m.playing {
		Te.Error("a live viewer should start playing")
	}
	nm, _ := m.Update(tickMsg(time.Now()))
	m = nm.(Model)
	if m.current().Comment != "live frame" {
		Te.Errorf("current frame %q, want the live one", m.current().Comment)
	}
}
