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

// Package processor implements the ACT decoder/executor: the single-step
// function that fetches one 10-bit instruction, decodes it into one of the
// four primary classes, executes its semantic effect against Processor
// state, and advances the program counter.
package processor

import (
	"github.com/hcalc-project/actcore/act/register"
	"github.com/hcalc-project/actcore/act/rom"
	"github.com/hcalc-project/actcore/act/trace"
	"github.com/hcalc-project/actcore/logger"
)

// StackSize is the number of return addresses the subroutine stack holds
// before sp wraps.
const StackSize = 4

// BaseDecimal and BaseHex are the two legal values of Processor.Base.
const (
	BaseDecimal = 10
	BaseHex     = 16
)

// named register indices into Processor.reg, matching register.Identity's
// architectural constants.
const (
	regA = iota
	regB
	regC
	regY
	regZ
	regT
	regM
	regN
	numNamedRegisters
)

// Processor is the complete machine state of one ACT processor instance.
// It owns its register file and data memory inline (see the specification's
// design notes on avoiding the original's pointer-based register
// ownership); the ROM is borrowed read-only.
type Processor struct {
	rom *rom.ROM

	// the eight named architectural registers, A/B/C/Y/Z/T/M/N
	reg [numNamedRegisters]*register.Register

	// data memory: ram[0..memoryCount-1]
	ram []*register.Register

	// zero is an always-zero register used as the implicit comparator for
	// the "if x[f] = 0" / "if x[f] != 0" family of arithmetic tests.
	zero *register.Register

	// subroutine return-address stack, a ring buffer of pc values
	stack [StackSize]int
	sp    int

	// pc is the bank-relative instruction address actually fetched next;
	// RomBank tracks which bank it is relative to.
	PC          int
	RomBank     int
	DelayedBank int

	// P is the pointer register selecting a single-nibble field; F is the
	// one-nibble F register.
	P int
	F uint8

	// First/Last mirror the field window the decoder most recently set,
	// kept for introspection and tracing; every operation is invoked with
	// an explicit register.Field rather than reading these back.
	First, Last int

	Base int

	Status [16]bool
	Flags  Flags

	Keycode int
	Keydown bool

	// Address is the memory-address latch loaded from C's low byte by
	// "c -> data address".
	Address int

	// currentWord, currentBank and currentPC are the instruction word most
	// recently fetched by Tick and where it was fetched from, kept only so
	// trace() can format them without threading them through every
	// decode/execute call.
	currentWord uint16
	currentBank int
	currentPC   int

	// LastStep is the most recent trace record produced while tracing was
	// enabled. It is the structured form of the line written to the
	// logger; a host wanting programmatic access to trace data (rather
	// than parsing the formatted string) reads this after each Tick.
	LastStep trace.Step
}

// New constructs a fresh Processor over rom, with memoryCount data
// registers. It takes no separate bank count: the processor runs over
// whatever banks rom holds (rom.Banks()).
func New(r *rom.ROM, memoryCount int) *Processor {
	p := &Processor{
		rom: r,
		ram: make([]*register.Register, memoryCount),
	}
	p.reg[regA] = register.New(register.A)
	p.reg[regB] = register.New(register.B)
	p.reg[regC] = register.New(register.C)
	p.reg[regY] = register.New(register.Y)
	p.reg[regZ] = register.New(register.Z)
	p.reg[regT] = register.New(register.T)
	p.reg[regM] = register.New(register.M)
	p.reg[regN] = register.New(register.N)
	for i := range p.ram {
		p.ram[i] = register.New(register.DataRegister(i))
	}
	p.zero = register.New(register.N)
	p.Reset()
	return p
}

// Reset reinitialises all state: every register zeroed, status and flags
// cleared except status[3] and status[5], Mode set to Run, Base set to
// decimal, pc set to zero.
func (p *Processor) Reset() {
	for _, r := range p.reg {
		r.Clear()
	}
	for _, r := range p.ram {
		r.Clear()
	}
	p.stack = [StackSize]int{}
	p.sp = 0
	p.PC = 0
	p.RomBank = 0
	p.DelayedBank = 0
	p.P = register.NumNibbles - 1
	p.F = 0
	p.First, p.Last = 0, 0
	p.Base = BaseDecimal
	p.Status = [16]bool{}
	p.Status[3] = true
	p.Status[5] = true
	p.Flags = Flags{Mode: true}
	p.Keycode = 0
	p.Keydown = false
	p.Address = 0
}

// A returns the A register.
func (p *Processor) A() *register.Register { return p.reg[regA] }

// B returns the B register.
func (p *Processor) B() *register.Register { return p.reg[regB] }

// C returns the C register.
func (p *Processor) C() *register.Register { return p.reg[regC] }

// Y returns the Y register.
func (p *Processor) Y() *register.Register { return p.reg[regY] }

// Z returns the Z register.
func (p *Processor) Z() *register.Register { return p.reg[regZ] }

// T returns the T register.
func (p *Processor) T() *register.Register { return p.reg[regT] }

// M returns the M register.
func (p *Processor) M() *register.Register { return p.reg[regM] }

// N returns the N register.
func (p *Processor) N() *register.Register { return p.reg[regN] }

// Ram returns data memory slot i.
func (p *Processor) Ram(i int) *register.Register { return p.ram[i] }

// MemoryCount returns the number of data memory slots.
func (p *Processor) MemoryCount() int { return len(p.ram) }

// SP returns the current stack pointer.
func (p *Processor) SP() int { return p.sp }

// push stores pc onto the return-address stack, growing sp modulo
// StackSize (it "wraps" rather than faulting, by original hardware design).
func (p *Processor) push(pc int) {
	p.stack[p.sp] = pc
	p.sp = (p.sp + 1) % StackSize
}

// pop retrieves the most recently pushed return address. An unmatched
// "return" pops whatever is left in the slot sp-1 wraps to; this is
// intentional, hardware-accurate behaviour, not a bug.
func (p *Processor) pop() int {
	p.sp = (p.sp - 1 + StackSize) % StackSize
	return p.stack[p.sp]
}

// SetKey latches keycode and keydown, as set_key(processor, keycode, down)
// in the specification's host interface.
func (p *Processor) SetKey(keycode int, down bool) {
	p.Keycode = keycode
	p.Keydown = down
}

// SetTrace toggles trace output, as set_trace(processor, bool).
func (p *Processor) SetTrace(enabled bool) {
	p.Flags.Trace = enabled
}

func (p *Processor) trace(mnemonic string) {
	if !p.Flags.Trace {
		return
	}
	p.LastStep = trace.Step{Bank: p.currentBank, PC: p.currentPC, Word: p.currentWord, Mnemonic: mnemonic}
	logger.Log("processor", p.LastStep)
}
