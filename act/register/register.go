// This file is part of actcore.
//
// actcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// actcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with actcore.  If not, see <https://www.gnu.org/licenses/>.

// Package register implements the fixed-width packed BCD/hex register used
// throughout the ACT processor: a sequence of nibbles addressed by a
// first..last window ("field"), with arithmetic, shift, copy, exchange and
// comparison operations that all act only within that window.
package register

import (
	"fmt"
	"strings"
)

// NumNibbles is N, the fixed width of every Register in this family.
const NumNibbles = 14

// Identity tags a Register with the architectural slot it occupies: negative
// values name the eight fixed registers, non-negative values index a data
// memory slot.
type Identity int

// The eight named architectural registers.
const (
	A Identity = -(iota + 1)
	B
	C
	Y
	Z
	T
	M
	N
)

// DataRegister returns the Identity for data memory slot i.
func DataRegister(i int) Identity {
	return Identity(i)
}

// IsDataRegister reports whether id names a data memory slot rather than one
// of the eight named architectural registers.
func (id Identity) IsDataRegister() bool {
	return id >= 0
}

func (id Identity) String() string {
	switch id {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case T:
		return "T"
	case M:
		return "M"
	case N:
		return "N"
	default:
		return fmt.Sprintf("ram[%d]", int(id))
	}
}

// Register is a fixed sequence of NumNibbles 4-bit values. Every nibble is
// always within 0..base for whatever base the owning Processor is currently
// using; this package never clamps a nibble itself, it relies on every
// mutating operation below already producing a value in range.
type Register struct {
	nibbles [NumNibbles]uint8
	id      Identity
}

// New creates a zeroed Register with the given Identity.
func New(id Identity) *Register {
	return &Register{id: id}
}

// Identity returns the Register's architectural identity.
func (r *Register) Identity() Identity {
	return r.id
}

// Nibble returns the value at nibble index i (0 is least significant).
func (r *Register) Nibble(i int) uint8 {
	return r.nibbles[i]
}

// SetNibble sets the value at nibble index i.
func (r *Register) SetNibble(i int, v uint8) {
	r.nibbles[i] = v
}

// Clear zeroes every nibble.
func (r *Register) Clear() {
	r.nibbles = [NumNibbles]uint8{}
}

// String renders the register as a sequence of hex digits, most significant
// nibble first, regardless of the register's current base.
func (r *Register) String() string {
	var b strings.Builder
	for i := NumNibbles - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%X", r.nibbles[i])
	}
	return b.String()
}

// Field is an inclusive nibble window [First..Last] selecting the slice of a
// Register that a field-scoped operation acts on.
type Field struct {
	First, Last int
}

// Single returns the one-nibble field at index i, used by P-indexed
// operations.
func Single(i int) Field {
	return Field{First: i, Last: i}
}
