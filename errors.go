/*
 * errors.go, part of molviz.
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

import "fmt"

//Error is the interface for errors that all the packages in this library
//implement. Decorate adds the given string to the error's decoration slice,
//which records the call trail, and returns the resulting slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

//errDecorate adds the caller to the decoration trail of err, if err
//implements the Error interface. Otherwise it returns err unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//ErrKind labels each class of XYZ parse failure. The set is closed: a failed
//parse always reports exactly one of these kinds.
type ErrKind int

const (
	//ErrEmptyFile: the input has no lines, or every line is blank.
	ErrEmptyFile ErrKind = iota + 1
	//ErrInvalidAtomCount: the header line is not a non-negative integer
	//(non-numeric, fractional, or negative).
	ErrInvalidAtomCount
	//ErrMissingCommentLine: the input has fewer than two lines.
	ErrMissingCommentLine
	//ErrInvalidAtomLine: an atom line is blank, has fewer than 4 fields,
	//or its element field looks like a number.
	ErrInvalidAtomLine
	//ErrInvalidCoordinate: a coordinate field is not a number, or parses
	//to NaN or infinity.
	ErrInvalidCoordinate
	//ErrAtomCountMismatch: fewer or more non-blank atom lines are present
	//than the header declared.
	ErrAtomCountMismatch
)

func (k ErrKind) String() string {
	switch k {
	case ErrEmptyFile:
		return "EmptyFile"
	case ErrInvalidAtomCount:
		return "InvalidAtomCount"
	case ErrMissingCommentLine:
		return "MissingCommentLine"
	case ErrInvalidAtomLine:
		return "InvalidAtomLine"
	case ErrInvalidCoordinate:
		return "InvalidCoordinate"
	case ErrAtomCountMismatch:
		return "AtomCountMismatch"
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

//ParseError is the error returned by the XYZ readers. Kind is always set.
//Line is the 1-indexed physical line the error refers to, or 0 when the
//error concerns the whole input. Expected and Actual are only meaningful for
//ErrAtomCountMismatch. Detail is free-form diagnostic text: callers should
//branch on Kind and the structured fields, never on the wording.
type ParseError struct {
	Kind     ErrKind
	Line     int
	Detail   string
	Expected int
	Actual   int
	deco     []string
}

func (err *ParseError) Error() string {
	switch err.Kind {
	case ErrEmptyFile:
		return "empty file"
	case ErrInvalidAtomCount:
		return fmt.Sprintf("invalid atom count: %s", err.Detail)
	case ErrMissingCommentLine:
		return "missing comment line"
	case ErrInvalidAtomLine:
		return fmt.Sprintf("invalid atom line at line %d: %s", err.Line, err.Detail)
	case ErrInvalidCoordinate:
		return fmt.Sprintf("invalid coordinate at line %d: %s", err.Line, err.Detail)
	case ErrAtomCountMismatch:
		return fmt.Sprintf("atom count mismatch: expected %d atoms, found %d", err.Expected, err.Actual)
	}
	return fmt.Sprintf("unknown parse error: %s", err.Detail)
}

//Decorate adds new information to the error, returning the updated
//decoration trail.
func (err *ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
