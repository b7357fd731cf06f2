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
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/hcalc-project/actcore/act/register"
)

//go:embed "tables.json"
var tablesJSON []byte

type fieldModifierDefinition struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

type tableDefinitions struct {
	PSetTable        []int                      `json:"pSetTable"`
	PTestTable       []int                      `json:"pTestTable"`
	StickyStatusBits []int                      `json:"stickyStatusBits"`
	FieldModifiers   []fieldModifierDefinition `json:"fieldModifiers"`
}

// fieldModifier describes one of the eight arithmetic field windows from
// the instruction encoding table. first/last of -1 mean "substitute p",
// resolved at decode time by fieldFor below.
type fieldModifier struct {
	name        string
	first, last int
}

const (
	fieldP = iota
	fieldWP
	fieldXS
	fieldX
	fieldS
	fieldM
	fieldW
	fieldMS
	numFieldModifiers
)

var (
	// pSetTable is the permuted 16-entry table used by "p := n" (Special
	// Group 3); indexed by the opcode's n operand.
	pSetTable [16]int

	// pTestTable is the permuted 16-entry table used by "if p = n" and
	// "if p != n" (Special Groups 1 and 3); indexed by the opcode's n
	// operand.
	pTestTable [16]int

	// stickyStatusBits are preserved by "clear s" and by "0 -> s(n)"
	// while a key is held down.
	stickyStatusBits [4]int

	fieldModifiers [numFieldModifiers]fieldModifier
)

func init() {
	var defs tableDefinitions
	if err := json.Unmarshal(tablesJSON, &defs); err != nil {
		panic(fmt.Sprintf("processor instruction tables: %s", err.Error()))
	}

	if len(defs.PSetTable) != 16 || len(defs.PTestTable) != 16 {
		panic("processor instruction tables: P-set/P-test tables must have 16 entries")
	}
	copy(pSetTable[:], defs.PSetTable)
	copy(pTestTable[:], defs.PTestTable)

	if len(defs.StickyStatusBits) != 4 {
		panic("processor instruction tables: sticky status bits must have 4 entries")
	}
	copy(stickyStatusBits[:], defs.StickyStatusBits)

	if len(defs.FieldModifiers) != numFieldModifiers {
		panic("processor instruction tables: field modifier table must have 8 entries")
	}
	for _, d := range defs.FieldModifiers {
		if d.Code < 0 || d.Code >= numFieldModifiers {
			panic(fmt.Sprintf("processor instruction tables: field modifier code out of range (%d)", d.Code))
		}
		fieldModifiers[d.Code] = fieldModifier{name: d.Name, first: d.First, last: d.Last}
	}
}

func isSticky(bit int) bool {
	for _, b := range stickyStatusBits {
		if b == bit {
			return true
		}
	}
	return false
}

// fieldFor resolves a field modifier code (bits 2-4 of an arithmetic
// opcode) into a concrete register.Field, given the processor's current p.
// P and WP windows depend on p directly; ok is false if p is out of range,
// signalling the decoder fault described in the specification's field
// modifier section.
func fieldFor(code int, p int) (f register.Field, ok bool) {
	fm := fieldModifiers[code]
	switch code {
	case fieldP:
		if p < 0 || p >= register.NumNibbles {
			return register.Field{}, false
		}
		return register.Single(p), true
	case fieldWP:
		if p < 0 || p >= register.NumNibbles {
			return register.Field{}, false
		}
		return register.Field{First: 0, Last: p}, true
	default:
		return register.Field{First: fm.first, Last: fm.last}, true
	}
}
