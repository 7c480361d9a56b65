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

package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsoluteDifference(t *testing.T) {
	require.Equal(t, uint64(5), AbsoluteDifference(10, 5))
	require.Equal(t, uint64(5), AbsoluteDifference(5, 10))
	require.Equal(t, uint64(0), AbsoluteDifference(7, 7))
}

func TestSafeAdd(t *testing.T) {
	sum, overflow := SafeAdd(1, 2)
	require.False(t, overflow)
	require.Equal(t, uint64(3), sum)

	_, overflow = SafeAdd(math.MaxUint64, 1)
	require.True(t, overflow)
}

func TestSafeMul(t *testing.T) {
	product, overflow := SafeMul(6, 7)
	require.False(t, overflow)
	require.Equal(t, uint64(42), product)

	_, overflow = SafeMul(math.MaxUint64, 2)
	require.True(t, overflow)
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 3, CeilDiv(7, 3))
	require.Equal(t, 2, CeilDiv(6, 3))
	require.Equal(t, 0, CeilDiv(6, 0))
}
