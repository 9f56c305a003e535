/*
 * tui.go, part of molviz.
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

//Package tui is the terminal molecule viewer: a bubbletea program that
//paints CPK-colored atom spheres on a rune canvas, orbiting them with the
//same camera the snapshot renderer uses. It plays trajectories and can
//follow a live molecule pushed over the driver interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mol "github.com/molviz/molviz"
	"github.com/molviz/molviz/camera"
	"github.com/molviz/molviz/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

//Source delivers a fresh molecule per tick, letting an external driver
//animate the viewer. driver.Engine satisfies it.
type Source interface {
	Molecule() *mol.Molecule
}

//Options tunes the viewer. The zero value gets sensible defaults from New.
type Options struct {
	FPS      int
	Scale    float64
	ShowHelp bool
	Source   Source
}

//Model is the bubbletea model for the viewer. Build one with New.
type Model struct {
	frames  []*mol.Molecule
	frame   int
	live    *mol.Molecule
	cam     *camera.Controller
	opts    Options
	playing bool
	width   int
	height  int
}

//rotateStep is the per-keypress rotation input, in the camera's input
//units. With the default sensitivity it comes to 0.1 rad.
const rotateStep = 20

//panStep is the per-keypress pan time step, in seconds of PanSpeed.
const panStep = 0.1

//New builds a viewer over at least one frame. The camera may be nil, in
//which case one is created framing the first molecule.
func New(frames []*mol.Molecule, cam *camera.Controller, opts Options) Model {
	if cam == nil {
		cam = camera.New()
		if len(frames) > 0 {
			cam.LookAt(frames[0])
		}
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Scale <= 0 {
		opts.Scale = render.DefaultScale
	}
	return Model{
		frames:  frames,
		cam:     cam,
		opts:    opts,
		playing: opts.Source != nil,
		width:   80,
		height:  24,
	}
}

//Run drives the viewer to completion on the caller's terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.opts.Source != nil {
			m.live = m.opts.Source.Molecule()
		}
		if m.playing && len(m.frames) > 1 {
			m.frame = (m.frame + 1) % len(m.frames)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.cam.Rotate(-rotateStep, 0)
	case "right", "l":
		m.cam.Rotate(rotateStep, 0)
	case "up", "k":
		m.cam.Rotate(0, -rotateStep)
	case "down", "j":
		m.cam.Rotate(0, rotateStep)
	case "a":
		m.cam.Pan(-1, 0, panStep)
	case "d":
		m.cam.Pan(1, 0, panStep)
	case "w":
		m.cam.Pan(0, 1, panStep)
	case "s":
		m.cam.Pan(0, -1, panStep)
	case "+", "=":
		m.cam.Zoom(1)
	case "-", "_":
		m.cam.Zoom(-1)
	case "n":
		m.frame = (m.frame + 1) % len(m.frames)
	case "p":
		m.frame = (m.frame - 1 + len(m.frames)) % len(m.frames)
	case " ":
		m.playing = !m.playing
	case "r":
		m.cam.LookAt(m.current())
	case "?":
		m.opts.ShowHelp = !m.opts.ShowHelp
	}
	return m, nil
}

//current returns the molecule on screen: the live one when a driver is
//attached, the selected trajectory frame otherwise.
func (m Model) current() *mol.Molecule {
	if m.live != nil {
		return m.live
	}
	return m.frames[m.frame]
}

type cell struct {
	ch    rune
	color string //lipgloss color, "" for uncolored
}

//Canvas projects the current molecule and paints it on a cw by ch cell
//grid, far atoms first. Terminal cells are about twice as tall as wide, so
//the horizontal axis is stretched by two.
func (m Model) Canvas(cw, ch int) [][]cell {
	grid := make([][]cell, ch)
	for i := range grid {
		grid[i] = make([]cell, cw)
		for j := range grid[i] {
			grid[i][j] = cell{ch: ' '}
		}
	}
	spheres := render.Project(m.current(), m.cam, m.opts.Scale)
	lo, hi := render.Frame(spheres)
	span := hi - lo
	for _, s := range spheres {
		hex := fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
		col := (s.X - lo) / span * float64(cw-1)
		row := (hi - s.Y) / span * float64(ch-1)
		rCols := s.R / span * float64(cw) / 2
		if rCols < 0.5 {
			rCols = 0.5
		}
		ir := int(rCols + 0.5)
		for dy := -ir; dy <= ir; dy++ {
			for dx := -ir; dx <= ir; dx++ {
				//disk test with the 2:1 cell aspect folded in
				if float64(dx*dx+4*dy*dy) > rCols*rCols {
					continue
				}
				x, y := int(col+0.5)+dx, int(row+0.5)+dy
				if x < 0 || x >= cw || y < 0 || y >= ch {
					continue
				}
				glyph := '█'
				if dx == 0 && dy == 0 && ir <= 1 {
					glyph = '●'
				}
				grid[y][x] = cell{ch: glyph, color: hex}
			}
		}
	}
	return grid
}

func (m Model) View() string {
	cw := m.width - 4
	ch := m.height - 6
	if cw < 40 {
		cw = 40
	}
	if ch < 10 {
		ch = 10
	}
	cur := m.current()

	var b strings.Builder
	state := dim.Render("paused")
	if m.playing {
		state = yellow.Render("playing")
	}
	frameInfo := ""
	if len(m.frames) > 1 {
		frameInfo = dim.Render(fmt.Sprintf("  frame %d/%d", m.frame+1, len(m.frames)))
	}
	if m.live != nil {
		frameInfo = yellow.Render("  live")
	}
	b.WriteString(fmt.Sprintf("\n  %s %s%s  %s\n",
		cyan.Render(cur.Formula()),
		white.Render(fmt.Sprintf("%d atoms", cur.Len())),
		frameInfo, state))
	b.WriteString("  " + dimmer.Render(strings.TrimSpace(cur.Comment)) + "\n")

	styles := make(map[string]lipgloss.Style)
	for _, row := range m.Canvas(cw, ch) {
		b.WriteString("  ")
		//group runs of one color into one render call
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				st, ok := styles[runColor]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(runColor))
					styles[runColor] = st
				}
				b.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.color != runColor {
				flush()
				runColor = c.color
			}
			run.WriteRune(c.ch)
		}
		flush()
		b.WriteString("\n")
	}

	if m.opts.ShowHelp {
		b.WriteString(dim.Render("  ←↓↑→/hjkl rotate  wasd pan  +/- zoom  n/p frame  space play  r reframe  q quit") + "\n")
	}
	return b.String()
}
