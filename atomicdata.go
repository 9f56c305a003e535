/*
 * atomicdata.go, part of molviz.
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
	"image/color"
	"strings"
	"unicode"
)

//Element data for display and driver coupling. Only the common
//"bio-elements" plus a few frequent metals are covered; the accessor
//functions fall back to neutral defaults so an unknown label never breaks
//rendering. Keys are upper case, lookups are case-insensitive.

//A map for assigning van der Waals radii, in Å, to elements.
//Values from Bondi, 1964 (DOI:10.1021/j100785a001), metals from
//Batsanov, 2001 (DOI:10.1023/A:1011625728803).
var symbolVdwRad = map[string]float64{
	"H":  1.20,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"S":  1.80,
	"P":  1.80,
	"F":  1.47,
	"CL": 1.75,
	"BR": 1.85,
	"I":  1.98,
	"FE": 2.00,
	"CA": 2.31,
	"MG": 1.73,
	"ZN": 1.39,
}

//DefaultVdwRad is the radius used for elements missing from the table.
const DefaultVdwRad = 1.50

//A map for assigning CPK display colors to elements.
var symbolCPK = map[string]color.RGBA{
	"H":  {255, 255, 255, 255}, //white
	"C":  {77, 77, 77, 255},    //dark gray
	"N":  {51, 51, 255, 255},   //blue
	"O":  {255, 51, 51, 255},   //red
	"S":  {255, 255, 51, 255},  //yellow
	"P":  {255, 128, 0, 255},   //orange
	"F":  {51, 255, 51, 255},   //green
	"CL": {51, 255, 51, 255},   //green
	"BR": {153, 26, 26, 255},   //dark red
	"I":  {102, 0, 179, 255},   //purple
	"FE": {230, 128, 0, 255},   //orange
	"CA": {51, 204, 51, 255},   //green
	"MG": {0, 128, 0, 255},     //dark green
	"ZN": {128, 128, 153, 255}, //slate gray
}

//DefaultCPK is the color used for elements missing from the table.
var DefaultCPK = color.RGBA{255, 128, 255, 255} //pink

//A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"S":  32.06,
	"P":  30.97,
	"F":  18.998,
	"CL": 35.45,
	"BR": 79.904,
	"I":  126.90,
	"FE": 55.84,
	"CA": 40.08,
	"MG": 24.30,
	"ZN": 65.38,
}

//A map for assigning atomic numbers to elements.
var symbolNumber = map[string]int{
	"H":  1,
	"C":  6,
	"N":  7,
	"O":  8,
	"S":  16,
	"P":  15,
	"F":  9,
	"CL": 17,
	"BR": 35,
	"I":  53,
	"FE": 26,
	"CA": 20,
	"MG": 12,
	"ZN": 30,
}

//VdwRadius returns the van der Waals radius for the element with the given
//symbol, in Å, or DefaultVdwRad if the symbol is not in the table.
func VdwRadius(symbol string) float64 {
	if r, ok := symbolVdwRad[strings.ToUpper(symbol)]; ok {
		return r
	}
	return DefaultVdwRad
}

//CPKColor returns the CPK display color for the element with the given
//symbol, or DefaultCPK if the symbol is not in the table.
func CPKColor(symbol string) color.RGBA {
	if c, ok := symbolCPK[strings.ToUpper(symbol)]; ok {
		return c
	}
	return DefaultCPK
}

//AtomicMass returns the mass for the element with the given symbol and
//whether the symbol was known.
func AtomicMass(symbol string) (float64, bool) {
	m, ok := symbolMass[strings.ToUpper(symbol)]
	return m, ok
}

//AtomicNumber returns the atomic number for the element with the given
//symbol, or 0 if the symbol is not in the table.
func AtomicNumber(symbol string) int {
	return symbolNumber[strings.ToUpper(symbol)]
}

//titleSymbol normalizes an element label to the conventional spelling:
//first rune upper case, the rest lower case ("fe" and "FE" become "Fe").
func titleSymbol(symbol string) string {
	if symbol == "" {
		return symbol
	}
	r := []rune(symbol)
	r[0] = unicode.ToUpper(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
