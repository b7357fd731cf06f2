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

// The 32 arithmetic opcodes (bits 5-9 of an arithmetic-class instruction).
// Their assignment to the 5-bit opcode space is this implementation's own
// decision, not dictated bit-for-bit by any ROM evidence; see DESIGN.md.
const (
	opZeroA = iota
	opZeroB
	opZeroC
	opExchAB
	opExchAC
	opExchBC
	opCopyAB // a -> b
	opCopyBC // b -> c
	opCopyCA // c -> a
	opAddAB  // a+b -> a
	opAddAC  // a+c -> a
	opAddCC  // c+c -> c
	opAddCA  // a+c -> c
	opIncA   // a+1 -> a
	opIncC   // c+1 -> c
	opSubAB  // a-b -> a
	opSubCA  // a-c -> c
	opDecA   // a-1 -> a
	opDecC   // c-1 -> c
	opNegC   // 0-c -> c
	opNegDecC
	opTestBZero
	opTestCZero
	opTestAGECField
	opTestAGEBField
	opTestANonZero
	opTestCNonZero
	opSubAC // a-c -> a
	opShiftRightA
	opShiftRightB
	opShiftRightC
	opShiftLeftA
	numArithmeticOpcodes
)

// execArithmetic runs opcode over the field window already resolved by the
// decoder, mutating processor state. Copy and Exchange leave CARRY exactly
// as they found it, per the register operations section's "does not touch
// carry"; every other opcode sets CARRY to whatever it produces, which the
// tick loop's universal PC-advance then latches into PREV_CARRY.
func (p *Processor) execArithmetic(opcode int, f register.Field) (ok bool) {
	base := uint8(p.Base)

	switch opcode {
	case opZeroA:
		register.Copy(p.A(), nil, f)
	case opZeroB:
		register.Copy(p.B(), nil, f)
	case opZeroC:
		register.Copy(p.C(), nil, f)
	case opExchAB:
		register.Exchange(p.A(), p.B(), f)
	case opExchAC:
		register.Exchange(p.A(), p.C(), f)
	case opExchBC:
		register.Exchange(p.B(), p.C(), f)
	case opCopyAB:
		register.Copy(p.B(), p.A(), f)
	case opCopyBC:
		register.Copy(p.C(), p.B(), f)
	case opCopyCA:
		register.Copy(p.A(), p.C(), f)
	case opAddAB:
		p.Flags.Carry = register.Add(p.A(), p.A(), p.B(), f, false, base)
	case opAddAC:
		p.Flags.Carry = register.Add(p.A(), p.A(), p.C(), f, false, base)
	case opAddCC:
		p.Flags.Carry = register.Add(p.C(), p.C(), p.C(), f, false, base)
	case opAddCA:
		p.Flags.Carry = register.Add(p.C(), p.A(), p.C(), f, false, base)
	case opIncA:
		p.Flags.Carry = register.Increment(p.A(), p.A(), f, base)
	case opIncC:
		p.Flags.Carry = register.Increment(p.C(), p.C(), f, base)
	case opSubAB:
		p.Flags.Carry = register.Subtract(p.A(), p.A(), p.B(), f, false, base)
	case opSubCA:
		p.Flags.Carry = register.Subtract(p.C(), p.A(), p.C(), f, false, base)
	case opDecA:
		p.Flags.Carry = register.Subtract(p.A(), p.A(), nil, f, true, base)
	case opDecC:
		p.Flags.Carry = register.Subtract(p.C(), p.C(), nil, f, true, base)
	case opNegC:
		p.Flags.Carry = register.Subtract(p.C(), nil, p.C(), f, false, base)
	case opNegDecC:
		p.Flags.Carry = register.Subtract(p.C(), nil, p.C(), f, true, base)
	case opTestBZero:
		p.Flags.Carry = register.TestEq(p.B(), p.zero, f)
	case opTestCZero:
		p.Flags.Carry = register.TestEq(p.C(), p.zero, f)
	case opTestAGECField:
		p.Flags.Carry = register.Subtract(nil, p.A(), p.C(), f, false, base)
	case opTestAGEBField:
		p.Flags.Carry = register.Subtract(nil, p.A(), p.B(), f, false, base)
	case opTestANonZero:
		p.Flags.Carry = register.TestNe(p.A(), p.zero, f)
	case opTestCNonZero:
		p.Flags.Carry = register.TestNe(p.C(), p.zero, f)
	case opSubAC:
		p.Flags.Carry = register.Subtract(p.A(), p.A(), p.C(), f, false, base)
	case opShiftRightA:
		register.ShiftRight(p.A(), f)
		p.Flags.Carry = false
	case opShiftRightB:
		register.ShiftRight(p.B(), f)
		p.Flags.Carry = false
	case opShiftRightC:
		register.ShiftRight(p.C(), f)
		p.Flags.Carry = false
	case opShiftLeftA:
		register.ShiftLeft(p.A(), f)
		p.Flags.Carry = false
	default:
		return false
	}
	return true
}
