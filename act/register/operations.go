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

package register

// Copy sets dst's field to src's field, nibble by nibble. If src is nil, the
// field is zeroed instead. Copy never touches carry.
func Copy(dst, src *Register, f Field) {
	for i := f.First; i <= f.Last; i++ {
		if src == nil {
			dst.SetNibble(i, 0)
			continue
		}
		dst.SetNibble(i, src.Nibble(i))
	}
}

// Exchange swaps a's and b's fields, nibble by nibble.
func Exchange(a, b *Register, f Field) {
	for i := f.First; i <= f.Last; i++ {
		av := a.Nibble(i)
		a.SetNibble(i, b.Nibble(i))
		b.SetNibble(i, av)
	}
}

// addNibble adds a single pair of nibbles plus an incoming carry, wrapping
// at base the way the original BCD/hex adder does.
func addNibble(a, b uint8, carry bool, base uint8) (uint8, bool) {
	r := a + b
	if carry {
		r++
	}
	if r >= base {
		r -= base
		return r, true
	}
	return r, false
}

// subNibble subtracts a single pair of nibbles plus an incoming borrow,
// wrapping at base the way the original BCD/hex subtracter does.
func subNibble(a, b int, carry bool, base uint8) (int, bool) {
	r := a - b
	if carry {
		r--
	}
	if r < 0 {
		r += int(base)
		return r, true
	}
	return r, false
}

// Add computes dst := a + b + carry over f, nibble by nibble from least to
// most significant, wrapping each nibble at base and propagating carry into
// the next. b may be nil, treated as zero (this is how Increment is built).
// dst may be nil: the sum is discarded but carry is still produced, which is
// how the "if a >= c" family of comparisons is implemented.
func Add(dst, a, b *Register, f Field, carryIn bool, base uint8) bool {
	carry := carryIn
	for i := f.First; i <= f.Last; i++ {
		var bv uint8
		if b != nil {
			bv = b.Nibble(i)
		}
		var sum uint8
		sum, carry = addNibble(a.Nibble(i), bv, carry, base)
		if dst != nil {
			dst.SetNibble(i, sum)
		}
	}
	return carry
}

// Increment is Add with carry pre-set and b absent.
func Increment(dst, a *Register, f Field, base uint8) bool {
	return Add(dst, a, nil, f, true, base)
}

// Subtract computes dst := a - b - carry over f, nibble by nibble. a may be
// nil, treated as zero (this is how negation, "0 - c -> c", is built). dst
// may be nil to discard the result while still producing carry.
func Subtract(dst, a, b *Register, f Field, carryIn bool, base uint8) bool {
	carry := carryIn
	for i := f.First; i <= f.Last; i++ {
		var av int
		if a != nil {
			av = int(a.Nibble(i))
		}
		var diff int
		diff, carry = subNibble(av, int(b.Nibble(i)), carry, base)
		if dst != nil {
			dst.SetNibble(i, uint8(diff))
		}
	}
	return carry
}

// ShiftRight shifts r's field one nibble towards the least significant end;
// the vacated most significant nibble of the field becomes zero. Clearing
// CARRY afterwards is the caller's responsibility (it is processor state,
// not register state).
func ShiftRight(r *Register, f Field) {
	for i := f.First; i < f.Last; i++ {
		r.SetNibble(i, r.Nibble(i+1))
	}
	r.SetNibble(f.Last, 0)
}

// ShiftLeft shifts r's field one nibble towards the most significant end;
// the vacated least significant nibble of the field becomes zero. Clearing
// CARRY and PREV_CARRY afterwards is the caller's responsibility.
func ShiftLeft(r *Register, f Field) {
	for i := f.Last; i > f.First; i-- {
		r.SetNibble(i, r.Nibble(i-1))
	}
	r.SetNibble(f.First, 0)
}

func fieldEqual(a, b *Register, f Field) bool {
	for i := f.First; i <= f.Last; i++ {
		if a.Nibble(i) != b.Nibble(i) {
			return false
		}
	}
	return true
}

// TestEq compares a and b over f and returns the carry value the instruction
// leaves behind: 0 (false) if every nibble in the field is equal, 1 (true)
// otherwise. Carry set means the following branch is skipped.
func TestEq(a, b *Register, f Field) bool {
	return !fieldEqual(a, b, f)
}

// TestNe is TestEq with the opposite polarity: carry is 0 (false) when the
// fields differ, and 1 (true) when they are equal.
func TestNe(a, b *Register, f Field) bool {
	return fieldEqual(a, b, f)
}
