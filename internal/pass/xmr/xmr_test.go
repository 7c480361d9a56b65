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

package xmr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
)

func newCtx(t *testing.T, graphs ...*ir.Graph) *pass.Context {
	t.Helper()
	nl := ir.NewNetlist()
	for _, g := range graphs {
		require.NoError(t, nl.AddGraph(g))
	}
	return &pass.Context{Netlist: nl, Diagnostics: pass.NewDiagnostics()}
}

func mkInstance(t *testing.T, parent *ir.Graph, instSym, moduleName string) ir.OperationID {
	t.Helper()
	instOp, err := parent.CreateOperation(ir.OpInstance, instSym)
	require.NoError(t, err)
	require.NoError(t, parent.SetAttrByName(instOp, "moduleName", ir.StringAttr(moduleName)))
	return instOp
}

func TestResolveReadManufacturesOutputPortAndInstanceResult(t *testing.T) {
	child := ir.NewGraph("child")
	sig, err := child.CreateValue("sig", 4, false, ir.TypeLogic)
	require.NoError(t, err)

	top := ir.NewGraph("top")
	instOp := mkInstance(t, top, "u_child", "child")

	xmrOp, err := top.CreateOperation(ir.OpXMRRead, "rd0")
	require.NoError(t, err)
	require.NoError(t, top.SetAttrByName(xmrOp, "path", ir.StringAttr("u_child.sig")))
	resVal, err := top.CreateValue("rd0_result", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, top.AddResult(xmrOp, resVal))

	ctx := newCtx(t, child, top)
	res := New().Run(ctx)
	require.False(t, res.Failed)
	require.True(t, res.Changed)

	_, isOutput := child.OutputPortFor(sig)
	require.True(t, isOutput)
	require.Equal(t, 1, top.OpResultCount(instOp))

	for _, op := range top.Operations() {
		require.NotEqual(t, ir.OpXMRRead, top.OpKind(op))
	}
}

func TestResolveWriteManufacturesInputPortAndForcesDriver(t *testing.T) {
	child := ir.NewGraph("child")
	target, err := child.CreateValue("sig", 4, false, ir.TypeLogic)
	require.NoError(t, err)

	top := ir.NewGraph("top")
	instOp := mkInstance(t, top, "u_child", "child")
	// The generated write port name is deterministic for short remaining
	// paths ("__xmr_w_" + joined segments); declaring it up front lets
	// padInputs recognize this instance as already wired.
	require.NoError(t, top.SetAttrByName(instOp, "inputPortName", ir.StringArrayAttr([]string{"__xmr_w_sig"})))
	driver, err := top.CreateValue("driver", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, top.BindInputPort("driver", driver))

	xmrOp, err := top.CreateOperation(ir.OpXMRWrite, "wr0")
	require.NoError(t, err)
	require.NoError(t, top.SetAttrByName(xmrOp, "path", ir.StringAttr("u_child.sig")))
	require.NoError(t, top.AddOperand(xmrOp, driver))

	ctx := newCtx(t, child, top)
	res := New().Run(ctx)
	require.False(t, res.Failed)
	require.True(t, res.Changed)

	require.Equal(t, 1, top.OpOperandCount(instOp))
	require.Len(t, child.InputPorts(), 1)

	// The original "sig" value no longer carries the driving Assign: a
	// freshly minted value takes over as the one that's actually wired,
	// per forceSingleDriver's documented replace-don't-rename behavior.
	require.False(t, child.ValueDefiningOp(target).Valid())

	for _, op := range top.Operations() {
		require.NotEqual(t, ir.OpXMRWrite, top.OpKind(op))
	}
}

func TestResolveReadOfRegisterSynthesizesReadPort(t *testing.T) {
	child := ir.NewGraph("child")
	regVal, err := child.CreateValue("q", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	regOp, err := child.CreateOperation(ir.OpRegister, "r0")
	require.NoError(t, err)
	require.NoError(t, child.AddResult(regOp, regVal))

	top := ir.NewGraph("top")
	mkInstance(t, top, "u_child", "child")

	xmrOp, err := top.CreateOperation(ir.OpXMRRead, "rd0")
	require.NoError(t, err)
	require.NoError(t, top.SetAttrByName(xmrOp, "path", ir.StringAttr("u_child.r0")))
	resVal, err := top.CreateValue("rd0_result", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, top.AddResult(xmrOp, resVal))

	ctx := newCtx(t, child, top)
	res := New().Run(ctx)
	require.False(t, res.Failed)
	require.True(t, res.Changed)

	foundReadPort := false
	for _, op := range child.Operations() {
		if child.OpKind(op) == ir.OpRegisterReadPort {
			foundReadPort = true
		}
	}
	require.True(t, foundReadPort)
}

func TestResolveReadReportsUnknownInstance(t *testing.T) {
	top := ir.NewGraph("top")
	xmrOp, err := top.CreateOperation(ir.OpXMRRead, "rd0")
	require.NoError(t, err)
	require.NoError(t, top.SetAttrByName(xmrOp, "path", ir.StringAttr("missing.sig")))
	resVal, err := top.CreateValue("rd0_result", 4, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, top.AddResult(xmrOp, resVal))

	ctx := newCtx(t, top)
	res := New().Run(ctx)
	require.False(t, res.Changed)
	require.False(t, res.Failed)
	require.NotEmpty(t, ctx.Diagnostics.Items())
}
