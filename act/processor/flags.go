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

import "strings"

// Flags holds the processor's named single-bit state, as distinct from the
// 16 general-purpose status bits in Status. Run/Stop is named Mode here to
// match the specification's terminology.
type Flags struct {
	Mode          bool // true = Run, false = Stop
	Carry         bool
	PrevCarry     bool
	DelayedROM    bool
	DisplayEnable bool
	Timer         bool
	Trace         bool
}

func (f Flags) String() string {
	s := strings.Builder{}
	bit := func(set bool, r rune) {
		if set {
			s.WriteRune(r)
		} else {
			s.WriteRune('-')
		}
	}
	bit(f.Mode, 'M')
	bit(f.Carry, 'C')
	bit(f.PrevCarry, 'P')
	bit(f.DelayedROM, 'D')
	bit(f.DisplayEnable, 'L')
	bit(f.Timer, 'T')
	bit(f.Trace, 'X')
	return s.String()
}
