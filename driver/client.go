/*
 * client.go, part of molviz.
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

package driver

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
)

//Driver is the driver side of the interface, used by Go programs (and the
//package's own tests) to steer an engine: request its name and structure,
//then push coordinate updates as a simulation produces them.
type Driver struct {
	conn   io.ReadWriter
	natoms int
}

//NewDriver wraps an established connection. Any stream works, including
//in-process pipes.
func NewDriver(conn io.ReadWriter) *Driver {
	return &Driver{conn: conn, natoms: -1}
}

//Listen waits for a single engine to connect on the given port and returns
//the driver end of the conversation. The listener is closed once the
//engine is in.
func Listen(port int) (*Driver, error) {
	l, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}
	defer l.Close()
	conn, err := l.Accept()
	if err != nil {
		return nil, err
	}
	return NewDriver(conn), nil
}

//SendCommand writes one wire command. The data-carrying helpers below are
//normally more convenient.
func (D *Driver) SendCommand(cmd string) error {
	return WriteCommand(D.conn, cmd)
}

//Name asks the engine for its name.
func (D *Driver) Name() (string, error) {
	if err := D.SendCommand(CmdName); err != nil {
		return "", err
	}
	return readName(D.conn)
}

//NAtoms asks the engine how many atoms it holds. The answer is cached and
//used to size the array transfers.
func (D *Driver) NAtoms() (int, error) {
	if err := D.SendCommand(CmdNAtoms); err != nil {
		return 0, err
	}
	var n int32
	if err := binary.Read(D.conn, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	D.natoms = int(n)
	return D.natoms, nil
}

func (D *Driver) ensureNAtoms() (int, error) {
	if D.natoms >= 0 {
		return D.natoms, nil
	}
	return D.NAtoms()
}

//Elements pulls the atomic numbers, 0 standing for labels the engine could
//not assign.
func (D *Driver) Elements() ([]int, error) {
	n, err := D.ensureNAtoms()
	if err != nil {
		return nil, err
	}
	if err := D.SendCommand(CmdElements); err != nil {
		return nil, err
	}
	z := make([]int32, n)
	if err := binary.Read(D.conn, binary.LittleEndian, z); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, v := range z {
		out[i] = int(v)
	}
	return out, nil
}

//Masses pulls the atomic masses, 0 standing for unknown labels.
func (D *Driver) Masses() ([]float64, error) {
	n, err := D.ensureNAtoms()
	if err != nil {
		return nil, err
	}
	if err := D.SendCommand(CmdMasses); err != nil {
		return nil, err
	}
	masses := make([]float64, n)
	if err := binary.Read(D.conn, binary.LittleEndian, masses); err != nil {
		return nil, err
	}
	return masses, nil
}

//Coords pulls the current coordinates, x0 y0 z0 x1 y1 z1 ... in the units
//of the file the engine was loaded from.
func (D *Driver) Coords() ([]float64, error) {
	n, err := D.ensureNAtoms()
	if err != nil {
		return nil, err
	}
	if err := D.SendCommand(CmdRecvCoords); err != nil {
		return nil, err
	}
	xyz := make([]float64, 3*n)
	if err := binary.Read(D.conn, binary.LittleEndian, xyz); err != nil {
		return nil, err
	}
	return xyz, nil
}

//SetCoords pushes new coordinates into the engine, same layout and units
//as Coords.
func (D *Driver) SetCoords(xyz []float64) error {
	n, err := D.ensureNAtoms()
	if err != nil {
		return err
	}
	if len(xyz) != 3*n {
		return &Error{
			message: fmt.Sprintf("got %d coordinates for %d atoms, want %d", len(xyz), n, 3*n),
			command: CmdSendCoords,
		}
	}
	if err := D.SendCommand(CmdSendCoords); err != nil {
		return err
	}
	return binary.Write(D.conn, binary.LittleEndian, xyz)
}

//Exit tells the engine to shut down and closes the connection if it can be
//closed.
func (D *Driver) Exit() error {
	if err := D.SendCommand(CmdExit); err != nil {
		return err
	}
	if c, ok := D.conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
