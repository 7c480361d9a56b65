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

package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/grh/internal/grherrors"
)

func TestCreateValueRejectsNonPositiveWidth(t *testing.T) {
	g := NewGraph("m")
	_, err := g.CreateValue("a", 0, false, TypeLogic)
	require.ErrorIs(t, err, grherrors.ErrWidthNotPositive)
}

func TestCreateValueRejectsDuplicateSymbol(t *testing.T) {
	g := NewGraph("m")
	_, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	_, err = g.CreateValue("a", 2, false, TypeLogic)
	require.ErrorIs(t, err, grherrors.ErrDuplicateSymbol)
}

func TestAddResultEnforcesSingleDriver(t *testing.T) {
	g := NewGraph("m")
	y, err := g.CreateValue("y", 1, false, TypeLogic)
	require.NoError(t, err)
	op1, err := g.CreateOperation(OpNot, "op1")
	require.NoError(t, err)
	op2, err := g.CreateOperation(OpNot, "op2")
	require.NoError(t, err)

	require.NoError(t, g.AddResult(op1, y))
	err = g.AddResult(op2, y)
	require.ErrorIs(t, err, grherrors.ErrDoubleDriver)
}

func TestAddOperandTracksUseList(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	op, err := g.CreateOperation(OpNot, "op0")
	require.NoError(t, err)

	require.NoError(t, g.AddOperand(op, a))
	require.Equal(t, 1, g.ValueUseCount(a))
	require.Equal(t, []ValueUser{{Op: op, Index: 0}}, g.ValueUsers(a))
}

func TestReplaceAllUsesRewritesOperandsAndOutputPort(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	b, err := g.CreateValue("b", 1, false, TypeLogic)
	require.NoError(t, err)
	y, err := g.CreateValue("y", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", a))

	op, err := g.CreateOperation(OpNot, "op0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))

	require.NoError(t, g.ReplaceAllUses(a, b))
	require.Equal(t, b, g.OpOperand(op, 0))
	require.Equal(t, 0, g.ValueUseCount(a))
	require.Equal(t, 1, g.ValueUseCount(b))

	bound, ok := g.OutputPortValue(g.Lookup("y"))
	require.True(t, ok)
	require.Equal(t, b, bound)
	_ = y
}

func TestEraseOpFailsWithRemainingUsers(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	y, err := g.CreateValue("y", 1, false, TypeLogic)
	require.NoError(t, err)
	op, err := g.CreateOperation(OpNot, "op0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddResult(op, y))

	consumer, err := g.CreateOperation(OpNot, "op1")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(consumer, y))

	err = g.EraseOp(op)
	require.ErrorIs(t, err, grherrors.ErrEraseOpHasUsers)
}

func TestEraseOpUncheckedClearsDefiningOpForReuse(t *testing.T) {
	g := NewGraph("m")
	y, err := g.CreateValue("y", 1, false, TypeLogic)
	require.NoError(t, err)
	op1, err := g.CreateOperation(OpNot, "op1")
	require.NoError(t, err)
	require.NoError(t, g.AddResult(op1, y))

	g.EraseOpUnchecked(op1)
	require.Equal(t, InvalidOperationID, g.ValueDefiningOp(y))

	op2, err := g.CreateOperation(OpNot, "op2")
	require.NoError(t, err)
	require.NoError(t, g.AddResult(op2, y))
	require.Equal(t, op2, g.ValueDefiningOp(y))
}

func TestBindInputAndOutputPortsConflict(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	err = g.BindOutputPort("a", a)
	require.ErrorIs(t, err, grherrors.ErrPortRoleConflict)
}

func TestCheckInvariantsCatchesDuplicateSymbolAcrossValueAndOp(t *testing.T) {
	g := NewGraph("m")
	x, err := g.CreateValue("x", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.CheckInvariants())

	// The mutation API refuses a shared symbol, so force one directly.
	op, err := g.CreateOperation(OpNot, "op0")
	require.NoError(t, err)
	g.ops[op].sym = g.ValueSymbol(x)
	require.ErrorIs(t, g.CheckInvariants(), grherrors.ErrDuplicateSymbol)
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 4, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	op, err := g.CreateOperation(OpNot, "op0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))

	clone := g.Clone("m2")
	require.Equal(t, "m2", clone.Name())
	require.Equal(t, g.ValueWidth(a), clone.ValueWidth(a))

	// Mutating the clone must not affect the source.
	b, err := clone.CreateValue("b", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, clone.AddOperand(op, b))
	require.Equal(t, 1, g.OpOperandCount(op))
	require.Equal(t, 2, clone.OpOperandCount(op))
}

func TestEraseValueRejectsPortBound(t *testing.T) {
	g := NewGraph("m")
	a, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	err = g.EraseValue(a)
	require.ErrorIs(t, err, grherrors.ErrEraseIsPort)
}

func TestValuesAndOperationsSkipErased(t *testing.T) {
	g := NewGraph("m")
	_, err := g.CreateValue("a", 1, false, TypeLogic)
	require.NoError(t, err)
	b, err := g.CreateValue("b", 1, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.EraseValue(b))

	require.Len(t, g.Values(), 1)
}
