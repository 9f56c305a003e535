/*
 * camera.go, part of molviz.
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

//Package camera implements the orbit camera used by the molecule viewers.
//It is pure geometry: callers feed it input deltas and read back a position
//and orientation, so the same controller drives the terminal viewer, the
//plot snapshots and any future display backend.
package camera

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	mol "github.com/molviz/molviz"
)

//Defaults for a freshly created Controller. The camera starts 15 length
//units from the target, tilted slightly downward.
const (
	DefaultDistance          = 15.0
	DefaultPitch             = -0.3 //rad, about the X axis
	DefaultRotateSensitivity = 0.005
	DefaultPanSpeed          = 5.0
	DefaultZoomSpeed         = 1.0
	DefaultMinDistance       = 2.0
	DefaultMaxDistance       = 100.0
)

//Controller is an orbit camera: it circles a target point at a given
//distance, with the orientation kept as a unit quaternion. The zero value is
//not useful, build one with New.
type Controller struct {
	Target            r3.Vec
	Distance          float64
	Rotation          r3.Rotation
	RotateSensitivity float64
	PanSpeed          float64
	ZoomSpeed         float64
	MinDistance       float64
	MaxDistance       float64
}

//New returns a Controller with the default orbit parameters, looking at the
//origin.
func New() *Controller {
	return &Controller{
		Distance:          DefaultDistance,
		Rotation:          r3.NewRotation(DefaultPitch, r3.Vec{X: 1}),
		RotateSensitivity: DefaultRotateSensitivity,
		PanSpeed:          DefaultPanSpeed,
		ZoomSpeed:         DefaultZoomSpeed,
		MinDistance:       DefaultMinDistance,
		MaxDistance:       DefaultMaxDistance,
	}
}

//normalize guards against drift: composing many small rotations slowly
//denormalizes the quaternion, which skews the projection.
func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

//Rotate orbits the camera: dx yaws about the camera-local Y axis, dy pitches
//about the camera-local X axis, both scaled by RotateSensitivity. Positive dx
//and dy correspond to dragging right and down. Composing on the right keeps
//both axes in the camera frame, so a yaw from a tilted camera traces a tilted
//circle instead of a constant-height one.
func (C *Controller) Rotate(dx, dy float64) {
	yaw := quat.Number(r3.NewRotation(-dx*C.RotateSensitivity, r3.Vec{Y: 1}))
	pitch := quat.Number(r3.NewRotation(-dy*C.RotateSensitivity, r3.Vec{X: 1}))
	C.Rotation = r3.Rotation(normalize(quat.Mul(quat.Number(C.Rotation), quat.Mul(pitch, yaw))))
}

//Pan slides the target point across the camera's right/up plane: positive dx
//moves it along the camera's right vector, positive dy along up. dt is the
//time step in seconds, so holding a pan key moves at PanSpeed units per
//second regardless of the caller's tick rate.
func (C *Controller) Pan(dx, dy, dt float64) {
	right, up, _ := C.Basis()
	step := C.PanSpeed * dt
	C.Target = r3.Add(C.Target, r3.Add(r3.Scale(dx*step, right), r3.Scale(dy*step, up)))
}

//Zoom moves the camera toward (positive delta) or away from the target,
//clamping the distance to [MinDistance, MaxDistance].
func (C *Controller) Zoom(delta float64) {
	C.Distance = C.clamp(C.Distance - delta*C.ZoomSpeed)
}

func (C *Controller) clamp(d float64) float64 {
	if d < C.MinDistance {
		return C.MinDistance
	}
	if d > C.MaxDistance {
		return C.MaxDistance
	}
	return d
}

//Position returns the camera location in world coordinates: Distance units
//behind the target along the rotated Z axis.
func (C *Controller) Position() r3.Vec {
	return r3.Add(C.Target, C.Rotation.Rotate(r3.Vec{Z: C.Distance}))
}

//Basis returns the camera's right, up and forward unit vectors in world
//coordinates. Forward points from the camera toward the target.
func (C *Controller) Basis() (right, up, forward r3.Vec) {
	right = C.Rotation.Rotate(r3.Vec{X: 1})
	up = C.Rotation.Rotate(r3.Vec{Y: 1})
	forward = C.Rotation.Rotate(r3.Vec{Z: -1})
	return right, up, forward
}

//View maps a world point into camera space: x along right, y along up, z the
//depth in front of the camera. Points with z <= 0 are behind the camera.
func (C *Controller) View(p r3.Vec) r3.Vec {
	right, up, forward := C.Basis()
	v := r3.Sub(p, C.Position())
	return r3.Vec{X: r3.Dot(v, right), Y: r3.Dot(v, up), Z: r3.Dot(v, forward)}
}

//LookAt recenters the orbit on the molecule's centroid and backs the camera
//off far enough to keep the whole molecule in frame. Small molecules are
//framed from the default distance rather than zoomed onto.
func (C *Controller) LookAt(m *mol.Molecule) {
	C.Target = m.Center()
	d := 2.5 * m.BoundingRadius()
	if d < DefaultDistance {
		d = DefaultDistance
	}
	C.Distance = C.clamp(d)
}
