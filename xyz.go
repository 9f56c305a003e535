/*
 * xyz.go, part of molviz.
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
	"io"
	"math"
	"strconv"
	"strings"
)

//XYZRead reads a single molecule in XYZ format from r. The whole stream is
//buffered before any validation happens, so r is always consumed to EOF.
//The format is: an atom count line, a free-form comment line, then exactly
//count atom lines of the form "ELEMENT X Y Z"; fields after the fourth are
//ignored. Trailing blank lines are tolerated, trailing non-blank lines are
//an error. On failure the returned error is a *ParseError locating the
//problem; no partial molecule is ever returned. XYZRead performs no I/O
//other than reading r, and identical input always produces an identical
//result, so it is safe to call concurrently on independent inputs.
func XYZRead(r io.Reader) (*Molecule, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseLines(splitLines(string(buf)))
}

//XYZReadString is XYZRead for text already in memory.
func XYZReadString(s string) (*Molecule, error) {
	return parseLines(splitLines(s))
}

//splitLines breaks s into lines. The final line ending is optional, and a
//carriage return before a line feed is removed, so DOS files parse the same
//as Unix ones.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, v := range lines {
		lines[i] = strings.TrimSuffix(v, "\r")
	}
	return lines
}

//parseLines parses lines as one complete XYZ input: a single block plus an
//arbitrary number of trailing blank lines. Non-blank lines left over after
//the declared atom count are counted as surplus atoms.
func parseLines(lines []string) (*Molecule, error) {
	m, consumed, err := parseBlock(lines)
	if err != nil {
		return nil, err
	}
	extra := 0
	for _, v := range lines[consumed:] {
		if strings.TrimSpace(v) != "" {
			extra++
		}
	}
	if extra > 0 {
		return nil, &ParseError{Kind: ErrAtomCountMismatch, Expected: m.Len(), Actual: m.Len() + extra}
	}
	return m, nil
}

//parseBlock parses one XYZ block (count, comment, atom lines) from the start
//of lines and reports how many lines it consumed. It does not look past the
//last atom line, which is what lets the trajectory reader call it in a loop.
//Diagnostic line numbers are 1-indexed relative to lines[0].
func parseBlock(lines []string) (*Molecule, int, error) {
	if len(lines) == 0 || allBlank(lines) {
		return nil, 0, &ParseError{Kind: ErrEmptyFile}
	}
	header := strings.TrimSpace(lines[0])
	if header == "" {
		return nil, 0, &ParseError{Kind: ErrEmptyFile}
	}
	//An exact integer token is required. A float would truncate silently,
	//so a decimal point is rejected before the numeric parse gets a say.
	if strings.Contains(header, ".") {
		return nil, 0, &ParseError{Kind: ErrInvalidAtomCount, Detail: fmt.Sprintf("'%s' is not an integer", header)}
	}
	n, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return nil, 0, &ParseError{Kind: ErrInvalidAtomCount, Detail: fmt.Sprintf("'%s' is not a valid integer", header)}
	}
	if n < 0 {
		return nil, 0, &ParseError{Kind: ErrInvalidAtomCount, Detail: fmt.Sprintf("'%s' is negative", header)}
	}
	expected := int(n)
	if len(lines) < 2 {
		return nil, 0, &ParseError{Kind: ErrMissingCommentLine}
	}
	comment := lines[1] //verbatim, comments are free text
	hint := expected
	if m := len(lines) - 2; hint > m {
		hint = m //there can never be more atoms than lines
	}
	atoms := make([]Atom, 0, hint)
	for i := 0; i < expected; i++ {
		if 2+i >= len(lines) {
			return nil, 0, &ParseError{Kind: ErrAtomCountMismatch, Expected: expected, Actual: i}
		}
		atom, err := parseAtomLine(lines[2+i], i+3)
		if err != nil {
			return nil, 0, err
		}
		atoms = append(atoms, atom)
	}
	return &Molecule{Atoms: atoms, Comment: comment}, 2 + expected, nil
}

func allBlank(lines []string) bool {
	for _, v := range lines {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

//parseAtomLine parses "ELEMENT X Y Z [extra...]" where fields are separated
//by runs of whitespace. num is the 1-indexed physical line for diagnostics.
func parseAtomLine(line string, num int) (Atom, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Atom{}, &ParseError{Kind: ErrInvalidAtomLine, Line: num, Detail: "empty line in atom section"}
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 4 {
		return Atom{}, &ParseError{Kind: ErrInvalidAtomLine, Line: num, Detail: fmt.Sprintf("expected at least 4 fields, found %d", len(fields))}
	}
	symbol := fields[0]
	//An element label never starts like a number. This catches shifted or
	//malformed lines where a coordinate landed in the element column, at
	//the cost of also rejecting leading-sign isotope/charge annotations,
	//which this format does not admit.
	switch c := symbol[0]; {
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		return Atom{}, &ParseError{Kind: ErrInvalidAtomLine, Line: num, Detail: fmt.Sprintf("element symbol '%s' appears to be a number", symbol)}
	}
	x, err := parseCoordinate(fields[1], num)
	if err != nil {
		return Atom{}, err
	}
	y, err := parseCoordinate(fields[2], num)
	if err != nil {
		return Atom{}, err
	}
	z, err := parseCoordinate(fields[3], num)
	if err != nil {
		return Atom{}, err
	}
	return Atom{Element: symbol, X: x, Y: y, Z: z}, nil
}

//parseCoordinate parses one coordinate field. The textual NaN/Inf spellings
//are refused before the numeric parse, and the parsed value is re-checked
//afterwards for any spelling the blacklist did not anticipate (e.g.
//"Infinity", which ParseFloat accepts).
func parseCoordinate(field string, num int) (float64, error) {
	switch strings.ToLower(field) {
	case "nan", "inf", "-inf", "+inf":
		return 0, &ParseError{Kind: ErrInvalidCoordinate, Line: num, Detail: fmt.Sprintf("'%s' is not a valid coordinate (NaN/Inf not allowed)", field)}
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, &ParseError{Kind: ErrInvalidCoordinate, Line: num, Detail: fmt.Sprintf("'%s' is not a valid number", field)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Kind: ErrInvalidCoordinate, Line: num, Detail: fmt.Sprintf("'%s' resulted in NaN or Infinity", field)}
	}
	return v, nil
}
