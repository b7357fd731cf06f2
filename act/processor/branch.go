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

// spliceLow replaces pc's low byte with target-1 mod 256, so that the tick
// loop's universal +1 advance lands exactly on target. The high bits of pc
// (the current 256-word page within the bank) are left untouched, matching
// the short jump/branch's 8-bit reach.
func spliceLow(pc, target int) int {
	return (pc &^ 0xFF) | ((target - 1) & 0xFF)
}

// commitDelayedBank applies a pending "delayed select rom n", if one is
// outstanding. It is called only from the control-transfer instructions
// (jsb, and a taken if-nc-goto), per the deferred bank-switch rule. The
// commit sets RomBank to the pending bank and keeps only pc's low byte, so
// any page bits the current pc carried do not survive into the new bank.
func (p *Processor) commitDelayedBank() {
	if !p.Flags.DelayedROM {
		return
	}
	p.RomBank = p.DelayedBank
	p.PC &= 0xFF
	p.Flags.DelayedROM = false
}

// execJSB implements the short jump-subroutine: push the return address
// (pc in its post-increment form, i.e. this jsb's own address, which the
// universal advance turns into the word after it once "return" pops it
// back), splice the target into pc's low byte, and commit any pending
// delayed bank switch.
func (p *Processor) execJSB(target int) {
	p.push(p.PC)
	p.PC = spliceLow(p.PC, target)
	p.commitDelayedBank()
}

// execIfNCGoto implements the long-branch class's one documented subclass:
// branch to target when PREV_CARRY is clear. An untaken branch leaves pc
// alone for the universal advance to step past, and leaves any pending
// delayed bank switch outstanding for the next control transfer to commit.
func (p *Processor) execIfNCGoto(target int) {
	if p.Flags.PrevCarry {
		return
	}
	p.PC = spliceLow(p.PC, target)
	p.commitDelayedBank()
}
