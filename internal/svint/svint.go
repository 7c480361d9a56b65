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

// Package svint implements an arbitrary-width, 4-state (0/1/X/Z) integer
// algebra matching SystemVerilog's SVInt semantics, used exclusively by the
// constant-folding pass to evaluate operations whose operands are all
// known constants.
//
// Add and Mul on fully known values up to 256 bits go through
// github.com/holiman/uint256 for speed; every other operation, wider
// values, and any value carrying unknown bits use math/big. Both paths
// are kept behind the same SVInt type so callers never see the
// distinction.
package svint

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

const fastWidth = 256

// SVInt is an immutable width- and sign-annotated 4-state integer.
type SVInt struct {
	width   int
	signed  bool
	bits    *big.Int // known-bit pattern, meaningless where unknown==1
	unknown *big.Int // 1 bit set means that position is X or Z
	zmask   *big.Int // subset of unknown marking Z rather than X
}

func mask(width int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

func newRaw(width int, signed bool, bits, unknown, zmask *big.Int) SVInt {
	m := mask(width)
	return SVInt{
		width:   width,
		signed:  signed,
		bits:    new(big.Int).And(bits, m),
		unknown: new(big.Int).And(unknown, m),
		zmask:   new(big.Int).And(zmask, m),
	}
}

// Zero returns the all-zero value of the given width.
func Zero(width int, signed bool) SVInt {
	return newRaw(width, signed, big.NewInt(0), big.NewInt(0), big.NewInt(0))
}

// AllX returns the fully-unknown (X) value of the given width.
func AllX(width int, signed bool) SVInt {
	return newRaw(width, signed, big.NewInt(0), mask(width), big.NewInt(0))
}

// FromUint64 builds a known, non-negative value truncated to width bits.
func FromUint64(width int, signed bool, v uint64) SVInt {
	return newRaw(width, signed, new(big.Int).SetUint64(v), big.NewInt(0), big.NewInt(0))
}

// FromBigInt builds a known value from an arbitrary (possibly negative,
// two's-complement-interpreted when signed) big.Int, truncated to width.
func FromBigInt(width int, signed bool, v *big.Int) SVInt {
	b := new(big.Int).Set(v)
	if b.Sign() < 0 {
		b.Add(b, new(big.Int).Lsh(big.NewInt(1), uint(width+1)))
	}
	return newRaw(width, signed, b, big.NewInt(0), big.NewInt(0))
}

func (v SVInt) Width() int       { return v.width }
func (v SVInt) Signed() bool     { return v.signed }
func (v SVInt) HasUnknown() bool { return v.unknown.Sign() != 0 }

// IsAllUnknown reports whether every bit of v is X or Z.
func (v SVInt) IsAllUnknown() bool {
	return new(big.Int).Xor(v.unknown, mask(v.width)).Sign() == 0
}

// Known returns the big.Int value of v interpreted per its signedness.
// Only meaningful when !v.HasUnknown().
func (v SVInt) Known() *big.Int {
	r := new(big.Int).Set(v.bits)
	if v.signed {
		top := new(big.Int).Lsh(big.NewInt(1), uint(v.width-1))
		if r.Cmp(top) >= 0 {
			r.Sub(r, new(big.Int).Lsh(big.NewInt(1), uint(v.width)))
		}
	}
	return r
}

// KnownUint64 returns the unsigned truncated uint64 view of a known value.
func (v SVInt) KnownUint64() uint64 {
	return v.bits.Uint64()
}

func (v SVInt) asUint256() (uint256.Int, bool) {
	if v.width > fastWidth || v.HasUnknown() {
		return uint256.Int{}, false
	}
	var u uint256.Int
	u.SetFromBig(v.bits)
	return u, true
}

// ---- literal parsing ----

// ParseLiteral parses a SystemVerilog sized literal of the form
// "<width>'[s]<base><digits>" (e.g. "4'h3", "1'bx", "8'sd-1", "3'b1x0")
// or a bare decimal integer, which is treated as a 32-bit signed literal
// per SystemVerilog's unsized-literal default.
func ParseLiteral(lit string) (SVInt, error) {
	lit = strings.TrimSpace(lit)
	if lit == "" {
		return SVInt{}, fmt.Errorf("svint: empty literal")
	}
	tickIdx := strings.IndexByte(lit, '\'')
	if tickIdx < 0 {
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return SVInt{}, fmt.Errorf("svint: invalid unsized literal %q: %w", lit, err)
		}
		return FromBigInt(32, true, big.NewInt(n)), nil
	}
	widthStr := lit[:tickIdx]
	rest := lit[tickIdx+1:]
	width := 32
	if widthStr != "" {
		w, err := strconv.Atoi(widthStr)
		if err != nil || w <= 0 {
			return SVInt{}, fmt.Errorf("svint: invalid width in literal %q", lit)
		}
		width = w
	}
	signed := false
	if len(rest) > 0 && rest[0] == 's' {
		signed = true
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return SVInt{}, fmt.Errorf("svint: missing base in literal %q", lit)
	}
	base := rest[0]
	digits := rest[1:]
	var bitsPerDigit int
	var parseDigit func(byte) (val uint8, unk bool, isZ bool, ok bool)
	switch base {
	case 'b', 'B':
		bitsPerDigit = 1
		parseDigit = parseBinDigit
	case 'o', 'O':
		bitsPerDigit = 3
		parseDigit = parseOctDigit
	case 'h', 'H':
		bitsPerDigit = 4
		parseDigit = parseHexDigit
	case 'd', 'D':
		return parseDecimalLiteral(width, signed, digits)
	default:
		return SVInt{}, fmt.Errorf("svint: unknown base %q in literal %q", string(base), lit)
	}
	bitsVal := big.NewInt(0)
	unk := big.NewInt(0)
	zm := big.NewInt(0)
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			continue
		}
		val, isUnk, isZ, ok := parseDigit(c)
		if !ok {
			return SVInt{}, fmt.Errorf("svint: invalid digit %q for base %q in literal %q", string(c), string(base), lit)
		}
		bitsVal.Lsh(bitsVal, uint(bitsPerDigit))
		unk.Lsh(unk, uint(bitsPerDigit))
		zm.Lsh(zm, uint(bitsPerDigit))
		if isUnk {
			digitMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitsPerDigit)), big.NewInt(1))
			unk.Or(unk, digitMask)
			if isZ {
				zm.Or(zm, digitMask)
			}
		} else {
			bitsVal.Or(bitsVal, big.NewInt(int64(val)))
		}
	}
	r := newRaw(width, signed, bitsVal, unk, zm)
	if signed && !r.HasUnknown() {
		r = signExtendKnown(r)
	}
	return r, nil
}

func signExtendKnown(v SVInt) SVInt {
	return FromBigInt(v.width, v.signed, v.Known())
}

func parseDecimalLiteral(width int, signed bool, digits string) (SVInt, error) {
	d := strings.ToLower(strings.TrimSpace(digits))
	switch d {
	case "x":
		return AllX(width, signed), nil
	case "z", "?":
		r := AllX(width, signed)
		r.zmask = new(big.Int).Set(r.unknown)
		return r, nil
	}
	n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), 10)
	if !ok {
		return SVInt{}, fmt.Errorf("svint: invalid decimal literal %q", digits)
	}
	return FromBigInt(width, signed, n), nil
}

func parseBinDigit(c byte) (uint8, bool, bool, bool) {
	switch c {
	case '0':
		return 0, false, false, true
	case '1':
		return 1, false, false, true
	case 'x', 'X':
		return 0, true, false, true
	case 'z', 'Z', '?':
		return 0, true, true, true
	}
	return 0, false, false, false
}

func parseOctDigit(c byte) (uint8, bool, bool, bool) {
	if c >= '0' && c <= '7' {
		return c - '0', false, false, true
	}
	switch c {
	case 'x', 'X':
		return 0, true, false, true
	case 'z', 'Z', '?':
		return 0, true, true, true
	}
	return 0, false, false, false
}

func parseHexDigit(c byte) (uint8, bool, bool, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', false, false, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, false, false, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, false, false, true
	}
	switch c {
	case 'x', 'X':
		return 0, true, false, true
	case 'z', 'Z', '?':
		return 0, true, true, true
	}
	return 0, false, false, false
}

// HexLiteral renders v in the canonical "<width>'[s]h<digits>" form used as
// the constant pool's dedupe key. Unknown nibbles render as 'x' (Z is not
// distinguished from X in the canonical pooled form, matching how folded
// results collapse Z to X in arithmetic contexts).
func (v SVInt) HexLiteral() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d'", v.width)
	if v.signed {
		sb.WriteByte('s')
	}
	sb.WriteByte('h')
	nibbles := (v.width + 3) / 4
	for i := nibbles - 1; i >= 0; i-- {
		shift := uint(i * 4)
		unkNibble := new(big.Int).Rsh(v.unknown, shift)
		unkNibble.And(unkNibble, big.NewInt(0xF))
		if unkNibble.Sign() != 0 {
			sb.WriteByte('x')
			continue
		}
		bNibble := new(big.Int).Rsh(v.bits, shift)
		bNibble.And(bNibble, big.NewInt(0xF))
		sb.WriteString(strconv.FormatInt(bNibble.Int64(), 16))
	}
	return sb.String()
}

// PoolKey is the (width, signedness, literal) tuple used to dedupe constants.
func (v SVInt) PoolKey() string {
	return fmt.Sprintf("%d|%v|%s", v.width, v.signed, v.HexLiteral())
}

// ---- bitwise / reductions ----

func bitwise(a, b SVInt, f func(x, y *big.Int) *big.Int, combineUnknown bool) SVInt {
	w := a.width
	bits := f(a.bits, b.bits)
	var unk *big.Int
	if combineUnknown {
		unk = new(big.Int).Or(a.unknown, b.unknown)
	} else {
		unk = new(big.Int).Or(a.unknown, b.unknown)
	}
	return newRaw(w, a.signed, bits, unk, big.NewInt(0))
}

func And(a, b SVInt) SVInt {
	// A 0 bit dominates X per SV 4-state AND table; approximate conservatively
	// by only clearing "unknown" where either side is a known 0.
	w := a.width
	bits := new(big.Int).And(a.bits, b.bits)
	unk := new(big.Int).Or(a.unknown, b.unknown)
	for i := 0; i < w; i++ {
		aKnown0 := a.unknown.Bit(i) == 0 && a.bits.Bit(i) == 0
		bKnown0 := b.unknown.Bit(i) == 0 && b.bits.Bit(i) == 0
		if aKnown0 || bKnown0 {
			unk.SetBit(unk, i, 0)
			bits.SetBit(bits, i, 0)
		}
	}
	return newRaw(w, a.signed, bits, unk, big.NewInt(0))
}

func Or(a, b SVInt) SVInt {
	w := a.width
	bits := new(big.Int).Or(a.bits, b.bits)
	unk := new(big.Int).Or(a.unknown, b.unknown)
	for i := 0; i < w; i++ {
		aKnown1 := a.unknown.Bit(i) == 0 && a.bits.Bit(i) == 1
		bKnown1 := b.unknown.Bit(i) == 0 && b.bits.Bit(i) == 1
		if aKnown1 || bKnown1 {
			unk.SetBit(unk, i, 0)
			bits.SetBit(bits, i, 1)
		}
	}
	return newRaw(w, a.signed, bits, unk, big.NewInt(0))
}

func Xor(a, b SVInt) SVInt {
	return bitwise(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Xor(x, y) }, true)
}

func Not(a SVInt) SVInt {
	bits := new(big.Int).Not(a.bits)
	return newRaw(a.width, a.signed, bits, new(big.Int).Set(a.unknown), big.NewInt(0))
}

// Xnor is the bitwise complement of Xor, sharing its unknown propagation
// (any unknown operand bit makes the result bit unknown).
func Xnor(a, b SVInt) SVInt {
	return Not(Xor(a, b))
}

func reduce(a SVInt, f func(acc, bit, unk int) (int, int)) SVInt {
	accKnown, accUnk := 1, 0
	for i := 0; i < a.width; i++ {
		bit := int(a.bits.Bit(i))
		unk := int(a.unknown.Bit(i))
		accKnown, accUnk = f(accKnown, bit, unk)
		_ = unk
	}
	return newRaw(1, false, big.NewInt(int64(accKnown)), big.NewInt(int64(accUnk)), big.NewInt(0))
}

func ReduceAnd(a SVInt) SVInt {
	if a.unknown.Sign() != 0 {
		for i := 0; i < a.width; i++ {
			if a.unknown.Bit(i) == 0 && a.bits.Bit(i) == 0 {
				return Zero(1, false)
			}
		}
		return AllX(1, false)
	}
	for i := 0; i < a.width; i++ {
		if a.bits.Bit(i) == 0 {
			return Zero(1, false)
		}
	}
	return FromUint64(1, false, 1)
}

func ReduceOr(a SVInt) SVInt {
	if a.unknown.Sign() != 0 {
		for i := 0; i < a.width; i++ {
			if a.unknown.Bit(i) == 0 && a.bits.Bit(i) == 1 {
				return FromUint64(1, false, 1)
			}
		}
		return AllX(1, false)
	}
	for i := 0; i < a.width; i++ {
		if a.bits.Bit(i) == 1 {
			return FromUint64(1, false, 1)
		}
	}
	return Zero(1, false)
}

func ReduceXor(a SVInt) SVInt {
	if a.unknown.Sign() != 0 {
		return AllX(1, false)
	}
	parity := 0
	for i := 0; i < a.width; i++ {
		parity ^= int(a.bits.Bit(i))
	}
	return FromUint64(1, false, uint64(parity))
}

func ReduceNand(a SVInt) SVInt { return Not1(ReduceAnd(a)) }
func ReduceNor(a SVInt) SVInt  { return Not1(ReduceOr(a)) }
func ReduceXnor(a SVInt) SVInt { return Not1(ReduceXor(a)) }

func Not1(a SVInt) SVInt {
	if a.HasUnknown() {
		return AllX(1, false)
	}
	if a.bits.Sign() == 0 {
		return FromUint64(1, false, 1)
	}
	return Zero(1, false)
}

// ---- arithmetic ----

func arith2(a, b SVInt, f func(x, y *big.Int) *big.Int) SVInt {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	r := f(a.Known(), b.Known())
	return FromBigInt(a.width, a.signed, r)
}

func Add(a, b SVInt) SVInt {
	if fa, fb, ok := tryFast2(a, b); ok {
		var out uint256.Int
		out.Add(&fa, &fb)
		return fromUint256(a.width, a.signed, &out)
	}
	return arith2(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) })
}

func Sub(a, b SVInt) SVInt {
	return arith2(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) })
}

func Mul(a, b SVInt) SVInt {
	if fa, fb, ok := tryFast2(a, b); ok {
		var out uint256.Int
		out.Mul(&fa, &fb)
		return fromUint256(a.width, a.signed, &out)
	}
	return arith2(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) })
}

func tryFast2(a, b SVInt) (uint256.Int, uint256.Int, bool) {
	fa, ok1 := a.asUint256()
	if !ok1 {
		return uint256.Int{}, uint256.Int{}, false
	}
	fb, ok2 := b.asUint256()
	if !ok2 {
		return uint256.Int{}, uint256.Int{}, false
	}
	return fa, fb, true
}

func fromUint256(width int, signed bool, u *uint256.Int) SVInt {
	return FromBigInt(width, signed, u.ToBig())
}

// Div implements SystemVerilog division: division by zero yields all-X.
func Div(a, b SVInt) SVInt {
	if a.HasUnknown() || b.HasUnknown() || b.Known().Sign() == 0 {
		return AllX(a.width, a.signed)
	}
	return FromBigInt(a.width, a.signed, new(big.Int).Quo(a.Known(), b.Known()))
}

// Mod implements SystemVerilog modulo: modulo by zero yields all-X.
func Mod(a, b SVInt) SVInt {
	if a.HasUnknown() || b.HasUnknown() || b.Known().Sign() == 0 {
		return AllX(a.width, a.signed)
	}
	return FromBigInt(a.width, a.signed, new(big.Int).Rem(a.Known(), b.Known()))
}

func Neg(a SVInt) SVInt {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	return FromBigInt(a.width, a.signed, new(big.Int).Neg(a.Known()))
}

// ---- shifts ----

func Shl(a SVInt, shift uint64) SVInt {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	return FromBigInt(a.width, a.signed, new(big.Int).Lsh(a.bits, uint(shift)))
}

func LShr(a SVInt, shift uint64) SVInt {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	unsigned := new(big.Int).And(a.bits, mask(a.width))
	return FromBigInt(a.width, a.signed, new(big.Int).Rsh(unsigned, uint(shift)))
}

func AShr(a SVInt, shift uint64) SVInt {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	return FromBigInt(a.width, a.signed, new(big.Int).Rsh(a.Known(), uint(shift)))
}

// ---- comparisons ----

func eqBits(a, b SVInt) (equal bool, unknown bool) {
	if a.HasUnknown() || b.HasUnknown() {
		return false, true
	}
	return a.bits.Cmp(b.bits) == 0, false
}

func boolBit(known bool, unknown bool) SVInt {
	if unknown {
		return AllX(1, false)
	}
	if known {
		return FromUint64(1, false, 1)
	}
	return Zero(1, false)
}

func Eq(a, b SVInt) SVInt {
	eq, unk := eqBits(a, b)
	return boolBit(eq, unk)
}

func Ne(a, b SVInt) SVInt {
	eq, unk := eqBits(a, b)
	return boolBit(!eq, unk)
}

// CaseEq implements === (4-state exact equality, including X/Z positions);
// never returns unknown.
func CaseEq(a, b SVInt) SVInt {
	if a.width != b.width {
		return Zero(1, false)
	}
	same := a.bits.Cmp(b.bits) == 0 && a.unknown.Cmp(b.unknown) == 0 && a.zmask.Cmp(b.zmask) == 0
	return boolBit(same, false)
}

func CaseNe(a, b SVInt) SVInt {
	r := CaseEq(a, b)
	return boolBit(r.bits.Sign() == 0, false)
}

// WildcardEq implements ==? : bit positions unknown in either operand match
// unconditionally; all other positions must compare equal.
func WildcardEq(a, b SVInt) SVInt {
	if a.width != b.width {
		return Zero(1, false)
	}
	for i := 0; i < a.width; i++ {
		if a.unknown.Bit(i) == 1 || b.unknown.Bit(i) == 1 {
			continue
		}
		if a.bits.Bit(i) != b.bits.Bit(i) {
			return Zero(1, false)
		}
	}
	return FromUint64(1, false, 1)
}

func WildcardNe(a, b SVInt) SVInt {
	r := WildcardEq(a, b)
	return boolBit(r.bits.Sign() == 0, false)
}

func cmp(a, b SVInt, signed bool) (lt, eq bool, unk bool) {
	if a.HasUnknown() || b.HasUnknown() {
		return false, false, true
	}
	var av, bv *big.Int
	if signed {
		av, bv = a.Known(), b.Known()
	} else {
		av = new(big.Int).And(a.bits, mask(a.width))
		bv = new(big.Int).And(b.bits, mask(b.width))
	}
	c := av.Cmp(bv)
	return c < 0, c == 0, false
}

func ULt(a, b SVInt) SVInt { lt, _, unk := cmp(a, b, false); return boolBit(lt, unk) }
func ULe(a, b SVInt) SVInt { lt, eq, unk := cmp(a, b, false); return boolBit(lt || eq, unk) }
func UGt(a, b SVInt) SVInt { lt, eq, unk := cmp(a, b, false); return boolBit(!lt && !eq, unk) }
func UGe(a, b SVInt) SVInt { lt, _, unk := cmp(a, b, false); return boolBit(!lt, unk) }
func SLt(a, b SVInt) SVInt { lt, _, unk := cmp(a, b, true); return boolBit(lt, unk) }
func SLe(a, b SVInt) SVInt { lt, eq, unk := cmp(a, b, true); return boolBit(lt || eq, unk) }
func SGt(a, b SVInt) SVInt { lt, eq, unk := cmp(a, b, true); return boolBit(!lt && !eq, unk) }
func SGe(a, b SVInt) SVInt { lt, _, unk := cmp(a, b, true); return boolBit(!lt, unk) }

// UMax returns the all-ones value of the given width (the maximum
// unsigned value representable), used by the unsigned-comparison
// simplification fold.
func UMax(width int) SVInt {
	return newRaw(width, false, mask(width), big.NewInt(0), big.NewInt(0))
}

// ---- structural ops ----

// Concat joins parts MSB-first: parts[0] occupies the highest bits.
func Concat(parts ...SVInt) SVInt {
	width := 0
	for _, p := range parts {
		width += p.width
	}
	bits := big.NewInt(0)
	unk := big.NewInt(0)
	zm := big.NewInt(0)
	shift := 0
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		bits.Or(bits, new(big.Int).Lsh(p.bits, uint(shift)))
		unk.Or(unk, new(big.Int).Lsh(p.unknown, uint(shift)))
		zm.Or(zm, new(big.Int).Lsh(p.zmask, uint(shift)))
		shift += p.width
	}
	return newRaw(width, false, bits, unk, zm)
}

// Replicate repeats v n times (n must be positive).
func Replicate(n int, v SVInt) SVInt {
	if n <= 0 {
		return AllX(v.width, v.signed)
	}
	parts := make([]SVInt, n)
	for i := range parts {
		parts[i] = v
	}
	return Concat(parts...)
}

// Slice extracts bits [low,high] inclusive (low<=high, both within width).
func Slice(v SVInt, low, high int) SVInt {
	w := high - low + 1
	bits := new(big.Int).Rsh(v.bits, uint(low))
	unk := new(big.Int).Rsh(v.unknown, uint(low))
	zm := new(big.Int).Rsh(v.zmask, uint(low))
	return newRaw(w, false, bits, unk, zm)
}

// Mux implements the conditional operator: an unknown condition yields
// an all-X result of a's width.
func Mux(cond SVInt, a, b SVInt) SVInt {
	if cond.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	if cond.bits.Sign() != 0 {
		return a
	}
	return b
}

// Resize sign- or zero-extends (per signed) or truncates v to newWidth.
func Resize(v SVInt, newWidth int, signed bool) SVInt {
	if v.HasUnknown() {
		if newWidth <= v.width {
			return newRaw(newWidth, signed, v.bits, v.unknown, v.zmask)
		}
		// Zero-extend for unsigned; for signed, extend with X if the top
		// bit is itself unknown, else sign-extend the known top bit.
		extra := newWidth - v.width
		extBits := big.NewInt(0)
		extUnk := big.NewInt(0)
		if signed {
			topUnk := v.unknown.Bit(v.width - 1)
			if topUnk == 1 {
				extUnk = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(extra)), big.NewInt(1))
			} else if v.bits.Bit(v.width-1) == 1 {
				extBits = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(extra)), big.NewInt(1))
			}
		}
		bits := new(big.Int).Or(v.bits, new(big.Int).Lsh(extBits, uint(v.width)))
		unk := new(big.Int).Or(v.unknown, new(big.Int).Lsh(extUnk, uint(v.width)))
		return newRaw(newWidth, signed, bits, unk, v.zmask)
	}
	return FromBigInt(newWidth, signed, v.Known())
}

// Clog2 returns ceil(log2(v)); Clog2(0) and Clog2(1) are both 0 per
// SystemVerilog's $clog2 definition.
func Clog2(v uint64) int {
	if v <= 1 {
		return 0
	}
	n := 0
	x := v - 1
	for x > 0 {
		x >>= 1
		n++
	}
	return n
}
