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

package dce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
)

func newCtx(t *testing.T, g *ir.Graph) *pass.Context {
	t.Helper()
	nl := ir.NewNetlist()
	require.NoError(t, nl.AddGraph(g))
	return &pass.Context{Netlist: nl, Diagnostics: pass.NewDiagnostics()}
}

func TestDceErasesUnusedChain(t *testing.T) {
	g := ir.NewGraph("m")
	a, err := g.CreateValue("a", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))

	mid, err := g.CreateValue("mid", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	op1, err := g.CreateOperation(ir.OpNot, "op1")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op1, a))
	require.NoError(t, g.AddResult(op1, mid))

	dead, err := g.CreateValue("dead", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	op2, err := g.CreateOperation(ir.OpNot, "op2")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op2, mid))
	require.NoError(t, g.AddResult(op2, dead))

	ctx := newCtx(t, g)
	res := New().Run(ctx)
	require.True(t, res.Changed)

	require.False(t, g.ValueDefiningOp(dead).Valid())
	require.False(t, g.ValueDefiningOp(mid).Valid())
}

func TestDceKeepsOutputPortChain(t *testing.T) {
	g := ir.NewGraph("m")
	a, err := g.CreateValue("a", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))

	y, err := g.CreateValue("y", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))
	op, err := g.CreateOperation(ir.OpNot, "op0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddResult(op, y))

	ctx := newCtx(t, g)
	res := New().Run(ctx)
	require.False(t, res.Changed)
	require.Equal(t, op, g.ValueDefiningOp(y))
}

func TestDceNeverErasesSideEffectingOps(t *testing.T) {
	g := ir.NewGraph("m")
	y, err := g.CreateValue("y", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	op, err := g.CreateOperation(ir.OpAssert, "assert0")
	require.NoError(t, err)
	require.NoError(t, g.AddResult(op, y))

	ctx := newCtx(t, g)
	res := New().Run(ctx)
	require.False(t, res.Changed)
	require.True(t, g.ValueDefiningOp(y).Valid())
}

func TestDceSweepsOrphanValueWithNoDefiningOp(t *testing.T) {
	g := ir.NewGraph("m")
	_, err := g.CreateValue("orphan", 1, false, ir.TypeLogic)
	require.NoError(t, err)

	ctx := newCtx(t, g)
	res := New().Run(ctx)
	require.True(t, res.Changed)
	require.Empty(t, g.Values())
}

func TestDceKeepsDeclaredSymbolEvenWhenUnused(t *testing.T) {
	g := ir.NewGraph("m")
	_, err := g.CreateValue("kept", 1, false, ir.TypeLogic)
	require.NoError(t, err)
	g.Declare(g.Lookup("kept"))

	ctx := newCtx(t, g)
	res := New().Run(ctx)
	require.False(t, res.Changed)
	require.Len(t, g.Values(), 1)
}
