/*
 * camera_test.go, part of molviz.
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

package camera

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	mol "github.com/molviz/molviz"
)

func vecNear(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

func TestDefaults(Te *testing.T) {
	c := New()
	if c.Distance != 15.0 || c.RotateSensitivity != 0.005 || c.PanSpeed != 5.0 || c.ZoomSpeed != 1.0 {
		Te.Errorf("unexpected defaults: %+v", c)
	}
	//distance 15 tilted -0.3 rad about X puts the camera above and behind
	want := r3.Vec{X: 0, Y: 15 * math.Sin(0.3), Z: 15 * math.Cos(0.3)}
	if p := c.Position(); !vecNear(p, want, 1e-12) {
		Te.Errorf("default position %v, want %v", p, want)
	}
	fmt.Println("default camera position:", c.Position())
}

//The target always projects to the center of the view, at a depth equal to
//the orbit distance.
func TestViewOfTarget(Te *testing.T) {
	c := New()
	c.Target = r3.Vec{X: 3, Y: -2, Z: 7}
	v := c.View(c.Target)
	if !vecNear(v, r3.Vec{Z: c.Distance}, 1e-12) {
		Te.Errorf("target viewed at %v, want (0,0,%f)", v, c.Distance)
	}
	c.Rotate(123, -45)
	c.Zoom(3)
	v = c.View(c.Target)
	if !vecNear(v, r3.Vec{Z: c.Distance}, 1e-12) {
		Te.Errorf("after moving, target viewed at %v, want (0,0,%f)", v, c.Distance)
	}
}

//Orbiting must neither change the camera-target distance nor denormalize
//the orientation quaternion.
func TestRotateKeepsDistance(Te *testing.T) {
	c := New()
	for i := 0; i < 5000; i++ {
		c.Rotate(float64(i%17)-8, float64(i%11)-5)
	}
	d := r3.Norm(r3.Sub(c.Position(), c.Target))
	if !scalar.EqualWithinAbs(d, c.Distance, 1e-9) {
		Te.Errorf("distance drifted to %f, want %f", d, c.Distance)
	}
	if n := quat.Abs(quat.Number(c.Rotation)); !scalar.EqualWithinAbs(n, 1, 1e-9) {
		Te.Errorf("rotation norm drifted to %f", n)
	}
}

func TestRotateYaw(Te *testing.T) {
	c := New()
	c.Rotation = r3.NewRotation(0, r3.Vec{X: 1}) //identity, looking down -Z
	c.Rotate(math.Pi/2/c.RotateSensitivity, 0)   //a quarter turn right
	want := r3.Vec{X: -15, Y: 0, Z: 0}
	if p := c.Position(); !vecNear(p, want, 1e-9) {
		Te.Errorf("position after quarter yaw %v, want %v", p, want)
	}
}

//Yawing uses the camera's own Y axis. From the default tilted start, a
//quarter turn must carry the camera down onto the X axis along the tilted
//circle, not around a constant-height ring about the world Y axis.
func TestYawFromTiltedStart(Te *testing.T) {
	c := New()
	c.Rotate(-math.Pi/2/c.RotateSensitivity, 0)
	want := r3.Vec{X: 15, Y: 0, Z: 0}
	if p := c.Position(); !vecNear(p, want, 1e-9) {
		Te.Errorf("position after quarter yaw %v, want %v", p, want)
	}
	//and a further quarter turn reaches the mirror of the start point
	c.Rotate(-math.Pi/2/c.RotateSensitivity, 0)
	want = r3.Vec{X: 0, Y: -15 * math.Sin(0.3), Z: -15 * math.Cos(0.3)}
	if p := c.Position(); !vecNear(p, want, 1e-9) {
		Te.Errorf("position after half yaw %v, want %v", p, want)
	}
}

func TestZoomClamp(Te *testing.T) {
	c := New()
	c.Zoom(1000)
	if c.Distance != c.MinDistance {
		Te.Errorf("distance %f, want the minimum %f", c.Distance, c.MinDistance)
	}
	c.Zoom(-1000)
	if c.Distance != c.MaxDistance {
		Te.Errorf("distance %f, want the maximum %f", c.Distance, c.MaxDistance)
	}
	c.Distance = 10
	c.Zoom(2.5)
	if c.Distance != 7.5 {
		Te.Errorf("distance %f, want 7.5", c.Distance)
	}
}

func TestPan(Te *testing.T) {
	c := New()
	c.Rotation = r3.NewRotation(0, r3.Vec{X: 1}) //identity
	c.Pan(1, 0, 0.1)
	if !vecNear(c.Target, r3.Vec{X: 0.5}, 1e-12) {
		Te.Errorf("target after rightward pan %v, want (0.5,0,0)", c.Target)
	}
	c.Pan(0, 1, 0.2)
	if !vecNear(c.Target, r3.Vec{X: 0.5, Y: 1}, 1e-12) {
		Te.Errorf("target after upward pan %v, want (0.5,1,0)", c.Target)
	}
	c.Pan(-1, 0, 0.1)
	if !vecNear(c.Target, r3.Vec{X: 0, Y: 1}, 1e-12) {
		Te.Errorf("target after leftward pan %v, want (0,1,0)", c.Target)
	}
}

func TestLookAt(Te *testing.T) {
	water, err := mol.XYZReadString("3\nwater\nO 0.0 0.0 0.117176\nH 0.0 0.7572 -0.468706\nH 0.0 -0.7572 -0.468706\n")
	if err != nil {
		Te.Fatal(err)
	}
	c := New()
	c.LookAt(water)
	if !vecNear(c.Target, water.Center(), 1e-12) {
		Te.Errorf("target %v, want the centroid %v", c.Target, water.Center())
	}
	if c.Distance != DefaultDistance {
		Te.Errorf("small molecule framed from %f, want the default %f", c.Distance, DefaultDistance)
	}
	long, err := mol.XYZReadString("2\nstretched\nC 0.0 0.0 0.0\nC 0.0 0.0 60.0\n")
	if err != nil {
		Te.Fatal(err)
	}
	c.LookAt(long)
	if !scalar.EqualWithinAbs(c.Distance, 75, 1e-12) {
		Te.Errorf("distance %f, want 2.5 times the bounding radius", c.Distance)
	}
	huge, err := mol.XYZReadString("2\nvery stretched\nC 0.0 0.0 0.0\nC 0.0 0.0 200.0\n")
	if err != nil {
		Te.Fatal(err)
	}
	c.LookAt(huge)
	if c.Distance != DefaultMaxDistance {
		Te.Errorf("distance %f, want the maximum %f", c.Distance, DefaultMaxDistance)
	}
}
