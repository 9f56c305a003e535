/*
 * mol.go, part of molviz.
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

package mol

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Atom is one atom read from an XYZ file: the element label exactly as it
//appeared, and the three Cartesian coordinates in the units of the file.
//Atoms compare with ==. The readers never modify an Atom after handing it
//out.
type Atom struct {
	Element string
	X, Y, Z float64
}

//Pos returns the position of the atom as a vector.
func (A Atom) Pos() r3.Vec {
	return r3.Vec{X: A.X, Y: A.Y, Z: A.Z}
}

//Molecule is the successful result of parsing one XYZ block: the atoms in
//file order (the index of an atom is its identity for every consumer in this
//repository) and the comment line, verbatim. A Molecule built by the readers
//always satisfies len(Atoms) == the count its header declared, and is never
//mutated by this package afterward; consumers that want to change one work
//on a Copy.
type Molecule struct {
	Atoms   []Atom
	Comment string
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	atoms := make([]Atom, len(M.Atoms))
	copy(atoms, M.Atoms)
	return &Molecule{Atoms: atoms, Comment: M.Comment}
}

//Positions returns the atom positions as a slice of vectors, in atom order.
func (M *Molecule) Positions() []r3.Vec {
	pos := make([]r3.Vec, len(M.Atoms))
	for i, v := range M.Atoms {
		pos[i] = v.Pos()
	}
	return pos
}

//Coords returns the coordinates as a len(Atoms)x3 matrix, one row per atom,
//or nil for a molecule with no atoms. The matrix is a fresh copy, so callers
//may transform it in place.
func (M *Molecule) Coords() *mat.Dense {
	if len(M.Atoms) == 0 {
		return nil
	}
	data := make([]float64, 0, 3*len(M.Atoms))
	for _, v := range M.Atoms {
		data = append(data, v.X, v.Y, v.Z)
	}
	return mat.NewDense(len(M.Atoms), 3, data)
}

//Center returns the geometric centroid of the molecule, or the zero vector
//for an empty molecule. The viewer centers its orbit on this point.
func (M *Molecule) Center() r3.Vec {
	if len(M.Atoms) == 0 {
		return r3.Vec{}
	}
	var c r3.Vec
	for _, v := range M.Atoms {
		c = r3.Add(c, v.Pos())
	}
	return r3.Scale(1/float64(len(M.Atoms)), c)
}

//BoundingRadius returns the largest distance from the centroid to any atom
//center. Zero for molecules with less than two atoms.
func (M *Molecule) BoundingRadius() float64 {
	c := M.Center()
	max := 0.0
	for _, v := range M.Atoms {
		if d := r3.Norm(r3.Sub(v.Pos(), c)); d > max {
			max = d
		}
	}
	return max
}

//Rgyr returns the (unweighted) radius of gyration about the centroid.
func (M *Molecule) Rgyr() float64 {
	if len(M.Atoms) == 0 {
		return 0
	}
	c := M.Center()
	sum := 0.0
	for _, v := range M.Atoms {
		sum += r3.Norm2(r3.Sub(v.Pos(), c))
	}
	return math.Sqrt(sum / float64(len(M.Atoms)))
}

//Formula returns the molecular formula in Hill order: carbon first, then
//hydrogen, then everything else alphabetically; without carbon, everything
//alphabetically. Symbols are normalized ("FE" and "fe" both count as Fe),
//and non-element labels such as dummy atoms are tallied under their
//normalized spelling.
func (M *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, v := range M.Atoms {
		counts[titleSymbol(v.Element)]++
	}
	symbols := make([]string, 0, len(counts))
	for k := range counts {
		symbols = append(symbols, k)
	}
	sort.Strings(symbols)
	if counts["C"] > 0 {
		hill := make([]string, 0, len(symbols))
		hill = append(hill, "C")
		if counts["H"] > 0 {
			hill = append(hill, "H")
		}
		for _, v := range symbols {
			if v != "C" && v != "H" {
				hill = append(hill, v)
			}
		}
		symbols = hill
	}
	var b strings.Builder
	for _, v := range symbols {
		b.WriteString(v)
		if counts[v] > 1 {
			fmt.Fprintf(&b, "%d", counts[v])
		}
	}
	return b.String()
}
