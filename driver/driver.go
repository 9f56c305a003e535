/*
 * driver.go, part of molviz.
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

//Package driver couples a molecule viewer to an external computational
//driver (an MD or QM code) over a socket, in the style of the MolSSI
//driver interface: the engine connects out to the driver, which then
//steers it with fixed-width commands, pulling structure data and pushing
//fresh coordinates as the simulation advances.
//
//Commands are CommandLength-byte NUL-padded ASCII strings. Numeric
//payloads are little-endian int32 or float64 arrays with no framing, the
//lengths being implied by the atom count.
package driver

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"

	mol "github.com/molviz/molviz"
)

//Wire format sizes, in bytes.
const (
	CommandLength = 12
	NameLength    = 255
)

//The command set. Directions are from the driver's point of view: "<" pulls
//data out of the engine, ">" pushes data into it.
const (
	CmdName       = "<NAME"
	CmdNAtoms     = "<NATOMS"
	CmdElements   = "<ELEMENTS"
	CmdMasses     = "<MASSES"
	CmdRecvCoords = "<COORDS"
	CmdSendCoords = ">COORDS"
	CmdExit       = "EXIT"
)

//DefaultPort is the port drivers conventionally listen on.
const DefaultPort = 8021

//DefaultOptionString is the option string a bare engine starts with.
const DefaultOptionString = "-role ENGINE -name molviz -method TCP -port 8021 -hostname localhost"

//Error is the error type for the driver interface. It records which engine
//and which command went wrong, besides the usual decoration trail.
type Error struct {
	message  string
	engine   string
	command  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.command == "" {
		return fmt.Sprintf("%s (engine %s)", err.message, err.engine)
	}
	return fmt.Sprintf("%s (engine %s, command %q)", err.message, err.engine, err.command)
}

//Decorate appends dec to the decoration trail and returns the trail. An
//empty dec just returns the trail.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Engine returns the name of the engine the error came from.
func (err *Error) Engine() string { return err.engine }

//Command returns the offending wire command, if any.
func (err *Error) Command() string { return err.command }

//Critical returns whether the connection is unusable after this error.
func (err *Error) Critical() bool { return err.critical }

//Options is the startup configuration for an engine, matching the
//conventional "-role ENGINE -name x -method TCP -port n -hostname h"
//option string.
type Options struct {
	Role     string
	Name     string
	Method   string
	Port     int
	Hostname string
}

//DefaultOptions returns the options encoded in DefaultOptionString.
func DefaultOptions() *Options {
	return &Options{Role: "ENGINE", Name: "molviz", Method: "TCP", Port: DefaultPort, Hostname: "localhost"}
}

//Addr returns the driver address to dial, host:port.
func (O *Options) Addr() string {
	return net.JoinHostPort(O.Hostname, strconv.Itoa(O.Port))
}

//ParseOptions parses an option string such as DefaultOptionString on top of
//the defaults. Unknown flags, missing values and non-TCP methods are
//errors.
func ParseOptions(s string) (*Options, error) {
	o := DefaultOptions()
	fields := strings.Fields(s)
	for i := 0; i < len(fields); i += 2 {
		if !strings.HasPrefix(fields[i], "-") || i+1 >= len(fields) {
			return nil, &Error{message: "malformed option string: " + s, critical: true}
		}
		val := fields[i+1]
		switch strings.TrimPrefix(fields[i], "-") {
		case "role":
			o.Role = val
		case "name":
			o.Name = val
		case "method":
			o.Method = val
		case "port":
			p, err := strconv.Atoi(val)
			if err != nil {
				return nil, &Error{message: "option -port wants a number, got " + val, critical: true}
			}
			o.Port = p
		case "hostname":
			o.Hostname = val
		default:
			return nil, &Error{message: "unknown option " + fields[i], critical: true}
		}
	}
	if o.Method != "TCP" {
		return nil, &Error{message: "unsupported method " + o.Method + ", only TCP works", critical: true}
	}
	if o.Role != "ENGINE" {
		return nil, &Error{message: "unsupported role " + o.Role + ", only ENGINE works", critical: true}
	}
	return o, nil
}

//WriteCommand writes cmd NUL-padded to CommandLength bytes.
func WriteCommand(w io.Writer, cmd string) error {
	if len(cmd) > CommandLength {
		return &Error{message: "command longer than the wire format allows", command: cmd, critical: true}
	}
	buf := make([]byte, CommandLength)
	copy(buf, cmd)
	_, err := w.Write(buf)
	return err
}

//ReadCommand reads one CommandLength-byte command and strips the padding.
func ReadCommand(r io.Reader) (string, error) {
	buf := make([]byte, CommandLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\x00 "), nil
}

func writeName(w io.Writer, name string) error {
	buf := make([]byte, NameLength)
	copy(buf, name)
	_, err := w.Write(buf)
	return err
}

func readName(r io.Reader) (string, error) {
	buf := make([]byte, NameLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\x00 "), nil
}

//Engine is the engine side of the interface: it holds a molecule and
//answers a driver's commands, swapping in fresh coordinates as the driver
//pushes them. The held molecule is never mutated in place, so a snapshot
//obtained from Molecule stays valid while the driver advances the
//simulation behind it.
type Engine struct {
	opts *Options
	conn net.Conn
	mu   sync.RWMutex
	mol  *mol.Molecule
}

//NewEngine wraps m in an engine configured by opts. A nil opts means
//DefaultOptions.
func NewEngine(m *mol.Molecule, opts *Options) *Engine {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Engine{opts: opts, mol: m}
}

//Molecule returns the engine's current structure. Safe to call while the
//engine serves a driver.
func (E *Engine) Molecule() *mol.Molecule {
	E.mu.RLock()
	defer E.mu.RUnlock()
	return E.mol
}

func (E *Engine) setMolecule(m *mol.Molecule) {
	E.mu.Lock()
	E.mol = m
	E.mu.Unlock()
}

//Connect dials the driver at the address from the options.
func (E *Engine) Connect() error {
	conn, err := net.Dial("tcp", E.opts.Addr())
	if err != nil {
		return err
	}
	E.conn = conn
	log.Printf("molviz/driver: engine %s connected to %s", E.opts.Name, E.opts.Addr())
	return nil
}

//Run connects to the driver and serves commands until EXIT or a wire
//failure.
func (E *Engine) Run() error {
	if E.conn == nil {
		if err := E.Connect(); err != nil {
			return err
		}
	}
	defer E.conn.Close()
	return E.Serve(E.conn)
}

//Serve answers commands on conn until EXIT. conn can be any stream, which
//keeps the engine testable over in-process pipes.
func (E *Engine) Serve(conn io.ReadWriter) error {
	for {
		cmd, err := ReadCommand(conn)
		if err != nil {
			return errDecorate(err, "Serve "+E.opts.Name)
		}
		switch cmd {
		case CmdName:
			err = writeName(conn, E.opts.Name)
		case CmdNAtoms:
			err = binary.Write(conn, binary.LittleEndian, int32(E.Molecule().Len()))
		case CmdElements:
			err = E.sendElements(conn)
		case CmdMasses:
			err = E.sendMasses(conn)
		case CmdRecvCoords:
			err = E.sendCoords(conn)
		case CmdSendCoords:
			err = E.recvCoords(conn)
		case CmdExit:
			return nil
		default:
			err = &Error{message: "unknown command", engine: E.opts.Name, command: cmd, critical: true}
		}
		if err != nil {
			return errDecorate(err, "Serve "+E.opts.Name)
		}
	}
}

func (E *Engine) sendElements(w io.Writer) error {
	m := E.Molecule()
	z := make([]int32, m.Len())
	for i, v := range m.Atoms {
		z[i] = int32(mol.AtomicNumber(v.Element))
	}
	return binary.Write(w, binary.LittleEndian, z)
}

func (E *Engine) sendMasses(w io.Writer) error {
	m := E.Molecule()
	masses := make([]float64, m.Len())
	for i, v := range m.Atoms {
		mass, ok := mol.AtomicMass(v.Element)
		if !ok {
			log.Printf("molviz/driver: no mass for element %q, sending 0", v.Element)
		}
		masses[i] = mass
	}
	return binary.Write(w, binary.LittleEndian, masses)
}

func (E *Engine) sendCoords(w io.Writer) error {
	m := E.Molecule()
	xyz := make([]float64, 0, 3*m.Len())
	for _, v := range m.Atoms {
		xyz = append(xyz, v.X, v.Y, v.Z)
	}
	return binary.Write(w, binary.LittleEndian, xyz)
}

//recvCoords swaps a fresh copy of the molecule in, so molecules already
//handed out keep their coordinates.
func (E *Engine) recvCoords(r io.Reader) error {
	m := E.Molecule()
	xyz := make([]float64, 3*m.Len())
	if err := binary.Read(r, binary.LittleEndian, xyz); err != nil {
		return err
	}
	fresh := m.Copy()
	for i := range fresh.Atoms {
		fresh.Atoms[i].X = xyz[3*i]
		fresh.Atoms[i].Y = xyz[3*i+1]
		fresh.Atoms[i].Z = xyz[3*i+2]
	}
	E.setMolecule(fresh)
	return nil
}

//errDecorate mirrors the decoration helper of the root package for the
//driver's own Error type.
func errDecorate(err error, caller string) error {
	type decorator interface {
		Decorate(string) []string
	}
	if d, ok := err.(decorator); ok {
		d.Decorate(caller)
	}
	return err
}
