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

package fold

import (
	"fmt"
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

func mkConstant(t *testing.T, g *ir.Graph, sym string, width int, hex string) ir.ValueID {
	t.Helper()
	result, err := g.CreateValue(sym+"_v", width, false, ir.TypeLogic)
	require.NoError(t, err)
	op, err := g.CreateOperation(ir.OpConstant, sym)
	require.NoError(t, err)
	require.NoError(t, g.AddResult(op, result))
	lit := fmt.Sprintf("%d'h%s", width, hex)
	require.NoError(t, g.SetAttrByName(op, "constValue", ir.StringAttr(lit)))
	return result
}

func TestFoldAddOfTwoConstants(t *testing.T) {
	g := ir.NewGraph("m")
	a := mkConstant(t, g, "c0", 8, "05")
	b := mkConstant(t, g, "c1", 8, "03")
	y, err := g.CreateValue("y", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))

	op, err := g.CreateOperation(ir.OpAdd, "add0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddOperand(op, b))
	require.NoError(t, g.AddResult(op, y))

	ctx := newCtx(t, g)
	res := New(DefaultOptions()).Run(ctx)
	require.False(t, res.Failed)
	require.True(t, res.Changed)

	def := g.ValueDefiningOp(y)
	require.True(t, def.Valid())
	require.Equal(t, ir.OpConstant, g.OpKind(def))
	attr, ok := g.GetAttrByName(def, "constValue")
	require.True(t, ok)
	require.Equal(t, "8'h08", attr.String())
}

func TestFoldNeverRewritesInputValue(t *testing.T) {
	g := ir.NewGraph("m")
	a, err := g.CreateValue("a", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	b := mkConstant(t, g, "c0", 4, "0")

	y, err := g.CreateValue("y", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	op, err := g.CreateOperation(ir.OpAnd, "and0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddOperand(op, b))
	require.NoError(t, g.AddResult(op, y))

	ctx := newCtx(t, g)
	New(DefaultOptions()).Run(ctx)

	// a carries an unresolved operand (not a pooled constant), so the And
	// can never fold even though one side is known.
	require.Equal(t, op, g.ValueDefiningOp(y))
}

func TestFoldDedupsEqualConstants(t *testing.T) {
	g := ir.NewGraph("m")
	a := mkConstant(t, g, "c0", 8, "07")
	b := mkConstant(t, g, "c1", 8, "07")
	y1, err := g.CreateValue("y1", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y1", y1))
	op1, err := g.CreateOperation(ir.OpAssign, "assign0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op1, a))
	require.NoError(t, g.AddResult(op1, y1))

	y2, err := g.CreateValue("y2", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y2", y2))
	op2, err := g.CreateOperation(ir.OpAssign, "assign1")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op2, b))
	require.NoError(t, g.AddResult(op2, y2))

	ctx := newCtx(t, g)
	res := New(DefaultOptions()).Run(ctx)
	require.True(t, res.Changed)
	require.Equal(t, g.OpOperand(op1, 0), g.OpOperand(op2, 0))
}

func TestFoldSkipsDivisionByZeroUnderDefaultMode(t *testing.T) {
	g := ir.NewGraph("m")
	num := mkConstant(t, g, "c0", 8, "0A")
	zero := mkConstant(t, g, "c1", 8, "00")
	y, err := g.CreateValue("y", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))

	op, err := g.CreateOperation(ir.OpDiv, "div0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, num))
	require.NoError(t, g.AddOperand(op, zero))
	require.NoError(t, g.AddResult(op, y))

	ctx := newCtx(t, g)
	res := New(DefaultOptions()).Run(ctx)
	require.False(t, res.Failed)

	// DefaultOptions leaves AllowXPropagation false, so a result that
	// carries unknown bits must never be materialized as a Constant.
	require.Equal(t, op, g.ValueDefiningOp(y))
}

func TestFoldAllowsDivisionByZeroUnderXPropagationMode(t *testing.T) {
	g := ir.NewGraph("m")
	num := mkConstant(t, g, "c0", 8, "0A")
	zero := mkConstant(t, g, "c1", 8, "00")
	y, err := g.CreateValue("y", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))

	op, err := g.CreateOperation(ir.OpDiv, "div0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, num))
	require.NoError(t, g.AddOperand(op, zero))
	require.NoError(t, g.AddResult(op, y))

	opts := DefaultOptions()
	opts.AllowXPropagation = true
	ctx := newCtx(t, g)
	res := New(opts).Run(ctx)
	require.False(t, res.Failed)
	require.True(t, res.Changed)

	def := g.ValueDefiningOp(y)
	require.Equal(t, ir.OpConstant, g.OpKind(def))

	sawWarning := false
	for _, item := range ctx.Diagnostics.Items() {
		if item.Kind == pass.DiagWarning {
			sawWarning = true
		}
	}
	require.True(t, sawWarning)
}

func TestIsProtectedPlainOutputIsNotProtected(t *testing.T) {
	g := ir.NewGraph("m")
	y, err := g.CreateValue("y", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))
	op, err := g.CreateOperation(ir.OpAdd, "add0")
	require.NoError(t, err)
	require.NoError(t, g.AddResult(op, y))

	require.False(t, isProtected(g, y))
}

func TestIsProtectedOutputAliasingInputThroughAssign(t *testing.T) {
	g := ir.NewGraph("m")
	a, err := g.CreateValue("a", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))

	y, err := g.CreateValue("y", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))
	op, err := g.CreateOperation(ir.OpAssign, "assign0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddResult(op, y))

	require.True(t, isProtected(g, y))
}

func TestFoldErasesDeadConstants(t *testing.T) {
	g := ir.NewGraph("m")
	mkConstant(t, g, "c0", 4, "3")

	ctx := newCtx(t, g)
	res := New(DefaultOptions()).Run(ctx)
	require.True(t, res.Changed)

	for _, op := range g.Operations() {
		require.NotEqual(t, ir.OpConstant, g.OpKind(op))
	}
}
