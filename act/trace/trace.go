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

// Package trace defines the structured record behind the processor's
// optional trace output. The specification only names the formatted
// string a trace line takes; this package gives that string an
// underlying struct, the way the teacher's StepResult stands behind its
// own disassembly line, so a host can consume decoded fields directly
// instead of re-parsing the formatted text.
package trace

import "fmt"

// Step is one decoded-and-executed instruction, as handed to a
// host-supplied trace sink. It carries no semantic effect of its own.
type Step struct {
	// Bank and PC are where the instruction was fetched from.
	Bank, PC int

	// Word is the raw 10-bit instruction word (held in a 16-bit cell).
	Word uint16

	// Mnemonic is the decoder's rendering of the instruction, including
	// any decoded operand (field code, opcode, branch target, and so
	// on); it is not a fixed enum, since the opcode space is large and
	// the exact wording is only ever read by a human or a log file.
	Mnemonic string
}

// String renders Step in the specification's fixed trace format:
// "<bank>-<pc4> <word4>  <mnemonic>".
func (s Step) String() string {
	return fmt.Sprintf("%d-%04x %04x  %s", s.Bank, s.PC, s.Word, s.Mnemonic)
}
