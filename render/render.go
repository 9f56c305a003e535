/*
 * render.go, part of molviz.
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

//Package render turns molecules into pictures: each atom becomes a sphere
//with its CPK color and a size proportional to its van der Waals radius,
//projected through an orbit camera. The projected spheres can be drawn to
//PNG/SVG/PDF snapshots through gonum/plot, or consumed directly by other
//frontends such as the terminal viewer.
package render

import (
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	mol "github.com/molviz/molviz"
	"github.com/molviz/molviz/camera"
)

//DefaultScale is the fraction of the van der Waals radius used for the
//sphere size. Full radii overlap badly for bonded atoms.
const DefaultScale = 0.4

//nearPlane is the depth below which atoms are culled instead of projected.
const nearPlane = 0.1

//Sphere is one atom after projection: screen position and radius in
//camera-plane units at unit depth, plus the display attributes looked up
//from the element tables.
type Sphere struct {
	X, Y    float64
	Depth   float64
	R       float64
	Element string
	Color   color.RGBA
}

//Options controls the snapshot size and look.
type Options struct {
	Width, Height vg.Length
	Scale         float64
	Background    color.Color
}

//DefaultOptions returns square 15cm snapshots with the viewer's dark
//background.
func DefaultOptions() Options {
	return Options{
		Width:      15 * vg.Centimeter,
		Height:     15 * vg.Centimeter,
		Scale:      DefaultScale,
		Background: color.RGBA{R: 26, G: 26, B: 38, A: 255},
	}
}

//Project maps every atom of m through the camera and returns the visible
//spheres sorted far to near, ready to paint back to front. Atoms closer
//than the near plane are dropped. scale is the sphere size as a fraction of
//the van der Waals radius, normally DefaultScale.
func Project(m *mol.Molecule, cam *camera.Controller, scale float64) []Sphere {
	n := m.Len()
	if n == 0 {
		return nil
	}
	right, up, forward := cam.Basis()
	eye := cam.Position()
	centered := mat.NewDense(n, 3, nil)
	for i, v := range m.Atoms {
		centered.Set(i, 0, v.X-eye.X)
		centered.Set(i, 1, v.Y-eye.Y)
		centered.Set(i, 2, v.Z-eye.Z)
	}
	//columns are the camera axes, so row i of the product is the atom in
	//camera space
	basis := mat.NewDense(3, 3, []float64{
		right.X, up.X, forward.X,
		right.Y, up.Y, forward.Y,
		right.Z, up.Z, forward.Z,
	})
	var view mat.Dense
	view.Mul(centered, basis)
	spheres := make([]Sphere, 0, n)
	for i, v := range m.Atoms {
		depth := view.At(i, 2)
		if depth < nearPlane {
			continue
		}
		spheres = append(spheres, Sphere{
			X:       view.At(i, 0) / depth,
			Y:       view.At(i, 1) / depth,
			Depth:   depth,
			R:       mol.VdwRadius(v.Element) * scale / depth,
			Element: v.Element,
			Color:   mol.CPKColor(v.Element),
		})
	}
	sort.Slice(spheres, func(i, j int) bool { return spheres[i].Depth > spheres[j].Depth })
	return spheres
}

//Frame returns a square window enclosing all the spheres, sphere radii
//included, with a small margin. Empty input gets the unit window.
func Frame(spheres []Sphere) (min, max float64) {
	if len(spheres) == 0 {
		return -1, 1
	}
	lo, hi := spheres[0].X, spheres[0].X
	for _, s := range spheres {
		for _, v := range []float64{s.X - s.R, s.X + s.R, s.Y - s.R, s.Y + s.R} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	margin := 0.05 * span
	return lo - margin, hi + margin
}

//Plot projects m through cam and builds a gonum plot of the result, one
//circle glyph per atom, painter's order, axes hidden and the XYZ comment as
//the title.
func Plot(m *mol.Molecule, cam *camera.Controller, opts Options) (*plot.Plot, error) {
	spheres := Project(m, cam, opts.Scale)
	p := plot.New()
	p.Title.Text = m.Comment
	p.HideAxes()
	if opts.Background != nil {
		p.BackgroundColor = opts.Background
	}
	lo, hi := Frame(spheres)
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	for _, s := range spheres {
		sc, err := plotter.NewScatter(plotter.XYs{{X: s.X, Y: s.Y}})
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  s.Color,
			Radius: vg.Length(s.R/(hi-lo)) * opts.Width,
			Shape:  draw.CircleGlyph{},
		}
		p.Add(sc)
	}
	return p, nil
}

//Snapshot renders m to w in the given image format ("png", "svg", "pdf",
//and the other formats gonum/plot writes).
func Snapshot(m *mol.Molecule, cam *camera.Controller, opts Options, w io.Writer, format string) error {
	p, err := Plot(m, cam, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

//SnapshotFile renders m to the named file, picking the format from the
//extension.
func SnapshotFile(m *mol.Molecule, cam *camera.Controller, opts Options, name string) error {
	p, err := Plot(m, cam, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, name)
}
