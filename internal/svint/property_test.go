// Copyright 2026 The Grh Authors
// This file is part of Grh.
//
// Grh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Grh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Grh. If not, see <http://www.gnu.org/licenses/>.

package svint

import (
	"testing"

	"pgregory.net/rapid"
)

// TestNotIsInvolutive checks Not(Not(v)) == v for any known value across a
// spread of widths, the same invariant the bitwise-complement law gives
// the teacher's own property-based checks on integer-like types.
func TestNotIsInvolutive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 64).Draw(rt, "width")
		raw := rapid.Uint64().Draw(rt, "raw")
		v := FromUint64(width, false, raw)

		require := func(cond bool, msg string) {
			if !cond {
				rt.Fatal(msg)
			}
		}
		twice := Not(Not(v))
		require(twice.KnownUint64() == v.KnownUint64(), "Not(Not(v)) != v")
	})
}

// TestXnorMatchesNotXorForKnownOperands exercises the Xnor/Not(Xor(..))
// identity the redundant-elimination pass relies on to recognize Xnor,
// over a wide sample of known-bit operand pairs.
func TestXnorMatchesNotXorForKnownOperands(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 64).Draw(rt, "width")
		a := FromUint64(width, false, rapid.Uint64().Draw(rt, "a"))
		b := FromUint64(width, false, rapid.Uint64().Draw(rt, "b"))

		got := Xnor(a, b).KnownUint64()
		want := Not(Xor(a, b)).KnownUint64()
		if got != want {
			rt.Fatalf("Xnor(%d,%d) = %d, want %d", a.KnownUint64(), b.KnownUint64(), got, want)
		}
	})
}

// TestAddCommutes checks a+b == b+a modulo width, an invariant constant
// folding depends on when it reorders operands during simplification.
func TestAddCommutes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 64).Draw(rt, "width")
		a := FromUint64(width, false, rapid.Uint64().Draw(rt, "a"))
		b := FromUint64(width, false, rapid.Uint64().Draw(rt, "b"))

		if Add(a, b).KnownUint64() != Add(b, a).KnownUint64() {
			rt.Fatal("Add is not commutative")
		}
	})
}
