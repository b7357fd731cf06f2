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

import "github.com/hcalc-project/actcore/act/register"

// whole is the field window used by the Special class's register-moving
// opcodes, which have no field-modifier bits of their own to select a
// narrower window.
var whole = register.Field{First: 0, Last: register.NumNibbles - 1}

// Group 0 payloads (bits 4-9 of a Special-class instruction with group 0).
const (
	g0Nop = iota
	g0KeysToRomAddress
	g0Binary
	g0Decimal
	g0PIncrement
	g0PDecrement
	g0Return
	g0CToDataAddress
	g0ClearDataRegisters
	g0Woodstock
	g0SelectRomBase = 0x10 // .. + 0xF, n = payload & 0xF
)

// Group 1/3 op-within-group selectors (bits 0-1 of the payload, instruction
// word bits 4-5).
const (
	g1SetS = iota
	g1IfEqS
	g1IfPEqN
	g1DelayedSelectRom
)

const (
	g3ClearS = iota
	g3IfEqS0
	g3IfPNeN
	g3PSetN
)

// Group 2 payloads when bit 9 (the top payload bit) is clear; n-indexed
// "load n" uses bit 9 set instead (see execGroup2).
const (
	g2ClearRegisters = iota
	g2ClearS
	g2ToggleDisplay
	g2DisplayOff
	g2M1ExchC
	g2M1ToC
	g2M2ExchC
	g2M2ToC
	g2StackToA
	g2DownRotate
	g2YToA
	g2CToStack
	g2Decimal
	g2FToA
	g2FExchA
)

// keyDispatchAddress computes the ROM address the "keys -> rom address"
// opcode jumps to: the current page of pc (its low 8 bits masked off),
// plus keycode-1. It is kept as its own pure function, independently
// tested, because it is exercised from two places - the opcode table here,
// and (eventually) a host's own key-event plumbing, which will want to
// predict a keypress's target address without stepping the processor.
func keyDispatchAddress(pc, keycode int) int {
	return (pc &^ 0xFF) | ((keycode - 1) & 0xFF)
}

// execSpecial dispatches a Special-class instruction (opcode low 2 bits
// 00) given its group (bits 2-3) and 6-bit payload (bits 4-9). ok is false
// for any payload this family's decoder does not recognise.
func (p *Processor) execSpecial(group, payload int) (ok bool) {
	switch group {
	case 0:
		return p.execGroup0(payload)
	case 1:
		return p.execGroup1(payload)
	case 2:
		return p.execGroup2(payload)
	case 3:
		return p.execGroup3(payload)
	default:
		return false
	}
}

func (p *Processor) execGroup0(payload int) bool {
	if payload >= g0SelectRomBase && payload <= g0SelectRomBase+0xF {
		p.RomBank = payload & 0xF
		return true
	}
	switch payload {
	case g0Nop:
	case g0KeysToRomAddress:
		p.PC = keyDispatchAddress(p.PC, p.Keycode)
	case g0Binary:
		p.Base = BaseHex
	case g0Decimal:
		p.Base = BaseDecimal
	case g0PIncrement:
		p.P = (p.P + 1) % (register.NumNibbles + 1)
	case g0PDecrement:
		p.P = (p.P - 1 + register.NumNibbles + 1) % (register.NumNibbles + 1)
	case g0Return:
		p.PC = p.pop()
	case g0CToDataAddress:
		p.Address = int(p.C().Nibble(1))<<4 | int(p.C().Nibble(0))
	case g0ClearDataRegisters:
		for _, r := range p.ram {
			r.Clear()
		}
	case g0Woodstock:
		// model ping; semantic no-op
	default:
		return false
	}
	return true
}

// execGroup1 places n at payload bits 2-5 (instruction word bits 6-9), per
// the specification's "P-set/P-test table indexed by opcode bits 6-9".
// The remaining two low bits pick which of the four group-1 opcodes this
// is.
func (p *Processor) execGroup1(payload int) bool {
	op := payload & 0x3
	n := (payload >> 2) & 0xF
	switch op {
	case g1SetS:
		p.Status[n] = true
	case g1IfEqS:
		p.Flags.Carry = !p.Status[n]
	case g1IfPEqN:
		p.Flags.Carry = p.P != pTestTable[n]
	case g1DelayedSelectRom:
		p.DelayedBank = n
		p.Flags.DelayedROM = true
	default:
		return false
	}
	return true
}

func (p *Processor) execGroup2(payload int) bool {
	if payload&0x20 != 0 {
		n := uint8(payload & 0xF)
		p.C().SetNibble(p.P, n)
		p.P = (p.P - 1 + register.NumNibbles) % register.NumNibbles
		return true
	}
	switch payload {
	case g2ClearRegisters:
		p.A().Clear()
		p.B().Clear()
		p.C().Clear()
	case g2ClearS:
		for i := range p.Status {
			if !isSticky(i) {
				p.Status[i] = false
			}
		}
	case g2ToggleDisplay:
		p.Flags.DisplayEnable = !p.Flags.DisplayEnable
	case g2DisplayOff:
		p.Flags.DisplayEnable = false
	case g2M1ExchC:
		register.Exchange(p.M(), p.C(), whole)
	case g2M1ToC:
		register.Copy(p.C(), p.M(), whole)
	case g2M2ExchC:
		register.Exchange(p.N(), p.C(), whole)
	case g2M2ToC:
		register.Copy(p.C(), p.N(), whole)
	case g2StackToA:
		register.Copy(p.A(), p.Y(), whole)
		register.Copy(p.Y(), p.Z(), whole)
		register.Copy(p.Z(), p.T(), whole)
	case g2DownRotate:
		tmp := register.New(register.T)
		register.Copy(tmp, p.T(), whole)
		register.Copy(p.T(), p.Z(), whole)
		register.Copy(p.Z(), p.Y(), whole)
		register.Copy(p.Y(), p.C(), whole)
		register.Copy(p.C(), tmp, whole)
	case g2YToA:
		register.Copy(p.A(), p.Y(), whole)
	case g2CToStack:
		register.Copy(p.T(), p.Z(), whole)
		register.Copy(p.Z(), p.Y(), whole)
		register.Copy(p.Y(), p.C(), whole)
	case g2Decimal:
		p.Base = BaseDecimal
	case g2FToA:
		p.A().SetNibble(0, p.F)
	case g2FExchA:
		lo := p.A().Nibble(0)
		p.A().SetNibble(0, p.F)
		p.F = lo
	default:
		return false
	}
	return true
}

// execGroup3 mirrors execGroup1's n/op placement.
func (p *Processor) execGroup3(payload int) bool {
	op := payload & 0x3
	n := (payload >> 2) & 0xF
	switch op {
	case g3ClearS:
		if n == 15 && p.Keydown {
			break
		}
		if n == 5 {
			break
		}
		p.Status[n] = false
	case g3IfEqS0:
		p.Flags.Carry = p.Status[n]
	case g3IfPNeN:
		p.Flags.Carry = p.P == pTestTable[n]
	case g3PSetN:
		p.P = pSetTable[n]
	default:
		return false
	}
	return true
}
