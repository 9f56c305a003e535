/*
 * doc.go, part of molviz.
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

/*Package mol is the core of the molviz molecule viewer: a strict reader for
the XYZ molecular coordinate format, plus the element data and geometric
helpers its consumers need.


	**Capabilities**


    Reads XYZ files from any stream or string, plain or gzip/zstd
	compressed, including multi-frame (trajectory) XYZ.

    Validates strictly. The declared atom count must match the atom lines
	present, element labels may not look like numbers, and every coordinate
	must parse to a finite float64; NaN and infinity are rejected in any
	spelling. Failures come back as a *ParseError carrying the failure kind,
	the 1-indexed line, and the expected/found counts, so callers branch on
	structure instead of message text.

    Element tables: van der Waals radii, CPK display colors, atomic masses
	and atomic numbers, with sane defaults for unknown labels.

    Molecule helpers: centroid, bounding radius, radius of gyration, Hill
	formula, and bridges to gonum (a row-per-atom coordinate matrix and
	r3 position vectors).

The orbit camera lives in the camera subpackage, sphere-per-atom snapshot
rendering in render, and the engine side of MDI-style driver coupling in
driver; the molviz command ties them together.

Parsing always buffers the whole input first, never performs I/O of its own
beyond the stream it is handed, and never returns a partial molecule: a
Molecule either satisfies every invariant above or does not exist. Molecules
are not mutated by this package after they are returned.*/
package mol
