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

package processor

import (
	"fmt"

	"github.com/hcalc-project/actcore/act/fault"
	"github.com/hcalc-project/actcore/act/rom"
)

// instruction classes, opcode bits 0-1.
const (
	classSpecial = iota
	classJSB
	classArithmetic
	classLongBranch
)

// Tick fetches the instruction at (RomBank, PC), executes it, and advances
// PC exactly once, whatever the instruction did. It returns a *fault.Decoder
// for any opcode this implementation does not recognise, or a *fault.Address
// if the fetch itself falls outside the ROM image; state is left unmodified
// by a fetch fault and "does not touch carry" otherwise for a decode fault,
// matching the specification's fault-handling notes.
func (p *Processor) Tick() error {
	word, err := p.rom.Fetch(p.RomBank, p.PC)
	if err != nil {
		return err
	}
	p.currentWord = word
	p.currentBank, p.currentPC = p.RomBank, p.PC

	switch int(word) & 0x3 {
	case classArithmetic:
		fieldCode := int(word>>2) & 0x7
		opcode := int(word>>5) & 0x1F
		f, ok := fieldFor(fieldCode, p.P)
		if !ok {
			return p.decoderFault(word)
		}
		p.First, p.Last = f.First, f.Last
		if !p.execArithmetic(opcode, f) {
			return p.decoderFault(word)
		}
		p.trace(fmt.Sprintf("arithmetic op=%#02x field=%#01x", opcode, fieldCode))

	case classJSB:
		target := int(word>>2) & 0xFF
		p.execJSB(target)
		p.trace(fmt.Sprintf("jsb %#02x", target))

	case classLongBranch:
		subclass := int(word>>2) & 0x3
		target := int(word>>2) & 0xFF
		if subclass != 0x3 {
			return p.decoderFault(word)
		}
		p.execIfNCGoto(target)
		p.trace(fmt.Sprintf("if nc goto %#02x", target))

	case classSpecial:
		group := int(word>>2) & 0x3
		payload := int(word>>4) & 0x3F
		if !p.execSpecial(group, payload) {
			return p.decoderFault(word)
		}
		p.trace(fmt.Sprintf("special group=%d payload=%#02x", group, payload))
	}

	p.advance()
	return nil
}

func (p *Processor) decoderFault(word uint16) error {
	return &fault.Decoder{Bank: p.RomBank, PC: p.PC, Opcode: word}
}

// advance is the universal per-tick bookkeeping every instruction class
// shares: pc moves to the next word within the current bank, and the carry
// produced by this instruction becomes next instruction's prev-carry.
func (p *Processor) advance() {
	p.PC = (p.PC + 1) % rom.WordsPerBank
	p.Flags.PrevCarry = p.Flags.Carry
	p.Flags.Carry = false
}
