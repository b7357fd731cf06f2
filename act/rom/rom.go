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

// Package rom is the flat, read-only, indexable store of 10-bit words the
// processor fetches instructions from. It is supplied by the host and
// borrowed read-only for the processor's lifetime; this package owns no
// mutable state of its own.
package rom

import "github.com/hcalc-project/actcore/act/fault"

// WordsPerBank is ROM_SIZE: the number of addressable words in a single
// bank's window.
const WordsPerBank = 4096

// ROM is a flat sequence of 10-bit words (held in 16-bit cells, only the low
// 10 bits significant) organised as banks x WordsPerBank. A host typically
// constructs one from a mask-ROM image; this module never mutates it.
type ROM struct {
	banks int
	words []uint16
}

// New creates a ROM with the given number of banks, all words zeroed. A
// host will usually prefer NewFromImage to load a real mask-ROM dump.
func New(banks int) *ROM {
	return &ROM{
		banks: banks,
		words: make([]uint16, banks*WordsPerBank),
	}
}

// NewFromImage wraps an existing flat word slice as a ROM. len(image) must
// be an exact multiple of WordsPerBank; the bank count is derived from it.
func NewFromImage(image []uint16) *ROM {
	banks := len(image) / WordsPerBank
	words := make([]uint16, banks*WordsPerBank)
	copy(words, image)
	return &ROM{banks: banks, words: words}
}

// Banks returns the number of banks in the image.
func (r *ROM) Banks() int {
	return r.banks
}

// Fetch returns the 10-bit word at (bank, pc). pc is a local offset within
// the bank's WordsPerBank window. Out-of-range bank or pc values produce an
// *fault.Address rather than panicking, since a runaway bank switch is the
// kind of thing the decoder is required to report to the host rather than
// crash on (see the specification's error handling section).
func (r *ROM) Fetch(bank, pc int) (uint16, error) {
	if bank < 0 || bank >= r.banks || pc < 0 || pc >= WordsPerBank {
		return 0, &fault.Address{Address: bank*WordsPerBank + pc}
	}
	return r.words[bank*WordsPerBank+pc] & 0x3FF, nil
}

// Load overwrites the word at (bank, pc), for hosts building a ROM image
// incrementally (e.g. test fixtures) rather than loading it in one shot via
// NewFromImage.
func (r *ROM) Load(bank, pc int, word uint16) error {
	if bank < 0 || bank >= r.banks || pc < 0 || pc >= WordsPerBank {
		return &fault.Address{Address: bank*WordsPerBank + pc}
	}
	r.words[bank*WordsPerBank+pc] = word & 0x3FF
	return nil
}
