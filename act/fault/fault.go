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

// Package fault defines the two fatal conditions the processor can surface
// to its host: a decoder fault (an opcode outside the documented set, or a
// P-family field modifier with p out of range) and an address fault (a
// computed memory address outside the ROM window). Both carry the state the
// host needs to decide whether to resume, in the manner of the curated
// package's normalised errors.
package fault

import "github.com/hcalc-project/actcore/curated"

// Decoder reports an opcode that is not in the documented instruction set,
// or a P-family field modifier selected while p is out of register range.
// Decoder faults do not corrupt processor state; the host may inspect and
// resume (typically via reset) if it chooses.
type Decoder struct {
	Bank   int
	PC     int
	Opcode uint16
}

// Error formats the fault with curated.Errorf. A host that wraps this fault
// in its own curated.Errorf whose pattern also begins "decoder fault: " gets
// one "decoder fault" part in the message, not two.
func (d *Decoder) Error() string {
	return curated.Errorf("decoder fault: bank %d, pc %#02x, opcode %#03x", d.Bank, d.PC, d.Opcode).Error()
}

// Address reports a computed memory address that exceeds the ROM window
// (address >= banks * ROM_SIZE).
type Address struct {
	Address int
}

func (a *Address) Error() string {
	return curated.Errorf("address fault: address %#04x out of range", a.Address).Error()
}
