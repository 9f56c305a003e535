/*
 * xyzfile.go, part of molviz.
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
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//openXYZ opens name for reading, transparently decompressing gzip and zstd
//files by extension. The second return value is the underlying file when it
//is wrapped by a decompressor and must be closed separately, or nil.
func openXYZ(name string) (io.ReadCloser, *os.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return g, f, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return z.IOReadCloser(), f, nil
	}
	return f, nil, nil
}

//XYZFileRead reads a single molecule from the XYZ file name. Files ending in
//.gz or .zst are decompressed on the fly. Everything else works as in
//XYZRead; parse errors keep their *ParseError type under the decoration.
func XYZFileRead(name string) (*Molecule, error) {
	r, f, err := openXYZ(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if f != nil {
		defer f.Close()
	}
	m, err := XYZRead(r)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+name)
	}
	return m, nil
}

//XYZTrajRead reads a multi-frame (trajectory) XYZ stream: concatenated XYZ
//blocks, optionally separated by blank lines. Every block is validated with
//the same rules as XYZRead, and any failure aborts the whole read. Each
//returned molecule is independent, so trailing frames can be dropped or
//reordered freely. Diagnostic line numbers are absolute within the stream.
//An input with no blocks at all yields ErrEmptyFile.
func XYZTrajRead(r io.Reader) ([]*Molecule, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(buf))
	var mols []*Molecule
	offset := 0
	for offset < len(lines) {
		if strings.TrimSpace(lines[offset]) == "" {
			offset++
			continue
		}
		m, consumed, err := parseBlock(lines[offset:])
		if err != nil {
			if e, ok := err.(*ParseError); ok && e.Line > 0 {
				e.Line += offset
			}
			return nil, err
		}
		mols = append(mols, m)
		offset += consumed
	}
	if len(mols) == 0 {
		return nil, &ParseError{Kind: ErrEmptyFile}
	}
	return mols, nil
}

//XYZTrajFileRead is XYZTrajRead on a file, decompressing .gz and .zst as
//XYZFileRead does.
func XYZTrajFileRead(name string) ([]*Molecule, error) {
	r, f, err := openXYZ(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if f != nil {
		defer f.Close()
	}
	mols, err := XYZTrajRead(r)
	if err != nil {
		return nil, errDecorate(err, "XYZTrajFileRead "+name)
	}
	return mols, nil
}
