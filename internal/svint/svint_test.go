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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func bigFromInt(n int64) *big.Int { return big.NewInt(n) }

func TestFromUint64RoundTrips(t *testing.T) {
	v := FromUint64(8, false, 200)
	require.False(t, v.HasUnknown())
	require.Equal(t, uint64(200), v.KnownUint64())
	require.Equal(t, 8, v.Width())
}

func TestAddWrapsAtWidth(t *testing.T) {
	a := FromUint64(8, false, 250)
	b := FromUint64(8, false, 10)
	sum := Add(a, b)
	require.Equal(t, uint64(4), sum.KnownUint64())
}

func TestSubUnderflowWraps(t *testing.T) {
	a := FromUint64(8, false, 1)
	b := FromUint64(8, false, 2)
	diff := Sub(a, b)
	require.Equal(t, uint64(255), diff.KnownUint64())
}

func TestMulTruncatesToWidth(t *testing.T) {
	a := FromUint64(8, false, 16)
	b := FromUint64(8, false, 16)
	product := Mul(a, b)
	require.Equal(t, uint64(0), product.KnownUint64())
}

func TestDivAndModByUnknownProduceUnknown(t *testing.T) {
	a := FromUint64(8, false, 10)
	x := AllX(8, false)
	require.True(t, Div(a, x).HasUnknown())
	require.True(t, Mod(a, x).HasUnknown())
}

func TestXnorIsComplementOfXor(t *testing.T) {
	a := FromUint64(4, false, 0b1010)
	b := FromUint64(4, false, 0b0110)
	xnor := Xnor(a, b)
	require.Equal(t, Not(Xor(a, b)).KnownUint64(), xnor.KnownUint64())
	require.Equal(t, uint64(0b0011), xnor.KnownUint64())
}

func TestXnorPropagatesUnknownLikeXor(t *testing.T) {
	a := FromUint64(4, false, 0b0101)
	b := AllX(4, false)
	require.True(t, Xnor(a, b).HasUnknown())
	require.True(t, Xor(a, b).HasUnknown())
}

func TestReduceAndOr(t *testing.T) {
	allOnes := FromUint64(4, false, 0b1111)
	require.Equal(t, uint64(1), ReduceAnd(allOnes).KnownUint64())
	require.Equal(t, uint64(1), ReduceOr(allOnes).KnownUint64())

	mixed := FromUint64(4, false, 0b1000)
	require.Equal(t, uint64(0), ReduceAnd(mixed).KnownUint64())
	require.Equal(t, uint64(1), ReduceOr(mixed).KnownUint64())
}

func TestShiftsAndSignExtension(t *testing.T) {
	neg1 := FromBigInt(8, true, bigFromInt(-1))
	require.Equal(t, uint64(0xff), neg1.KnownUint64())

	ashr := AShr(neg1, 4)
	require.Equal(t, uint64(0xff), ashr.KnownUint64())

	lshr := LShr(neg1, 4)
	require.Equal(t, uint64(0x0f), lshr.KnownUint64())
}

func TestUnsignedVsSignedComparison(t *testing.T) {
	neg1 := FromBigInt(8, true, bigFromInt(-1))
	one := FromUint64(8, true, 1)

	require.Equal(t, uint64(1), ULt(one, neg1).KnownUint64())
	require.Equal(t, uint64(1), SLt(neg1, one).KnownUint64())
}

func TestConcatOrdersMSBFirst(t *testing.T) {
	hi := FromUint64(4, false, 0xA)
	lo := FromUint64(4, false, 0xB)
	c := Concat(hi, lo)
	require.Equal(t, 8, c.Width())
	require.Equal(t, uint64(0xAB), c.KnownUint64())
}

func TestSliceExtractsBitRange(t *testing.T) {
	v := FromUint64(8, false, 0xAB)
	s := Slice(v, 0, 3)
	require.Equal(t, 4, s.Width())
	require.Equal(t, uint64(0xB), s.KnownUint64())
}

func TestReplicateRepeatsValue(t *testing.T) {
	v := FromUint64(2, false, 0b10)
	r := Replicate(3, v)
	require.Equal(t, 6, r.Width())
	require.Equal(t, uint64(0b101010), r.KnownUint64())
}

func TestMuxSelectsOperandByCondition(t *testing.T) {
	a := FromUint64(4, false, 1)
	b := FromUint64(4, false, 2)
	require.Equal(t, uint64(1), Mux(FromUint64(1, false, 1), a, b).KnownUint64())
	require.Equal(t, uint64(2), Mux(FromUint64(1, false, 0), a, b).KnownUint64())
	require.True(t, Mux(AllX(1, false), a, b).HasUnknown())
}

func TestClog2(t *testing.T) {
	cases := map[uint64]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4}
	for in, want := range cases {
		require.Equal(t, want, Clog2(in), "Clog2(%d)", in)
	}
}

func TestParseLiteralSizedBases(t *testing.T) {
	v, err := ParseLiteral("8'hFF")
	require.NoError(t, err)
	require.Equal(t, 8, v.Width())
	require.Equal(t, uint64(0xFF), v.KnownUint64())

	v, err = ParseLiteral("4'b1x0z")
	require.NoError(t, err)
	require.True(t, v.HasUnknown())

	v, err = ParseLiteral("42")
	require.NoError(t, err)
	require.Equal(t, 32, v.Width())
	require.True(t, v.Signed())
}

func TestParseLiteralRejectsGarbage(t *testing.T) {
	_, err := ParseLiteral("")
	require.Error(t, err)
	_, err = ParseLiteral("8'qFF")
	require.Error(t, err)
}

func TestResizeZeroAndSignExtends(t *testing.T) {
	u := FromUint64(4, false, 0b1010)
	wide := Resize(u, 8, false)
	require.Equal(t, uint64(0b1010), wide.KnownUint64())

	neg1 := FromBigInt(4, true, bigFromInt(-1))
	wideSigned := Resize(neg1, 8, true)
	require.Equal(t, uint64(0xff), wideSigned.KnownUint64())
}
