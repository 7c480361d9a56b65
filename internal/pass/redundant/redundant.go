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

// Package redundant cleans up the residual shapes constant folding
// leaves behind: a Concat wrapping a single operand, an Assign chain
// feeding another Assign, and a Not over a Xor recognized as the
// dedicated Xnor op. It runs after pass/fold and before pass/dce.
package redundant

import (
	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
)

const passID = "redundant-elim"

// Pass is the redundant-shape cleanup transformation.
type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) ID() string   { return passID }
func (p *Pass) Name() string { return "Redundant Elimination" }
func (p *Pass) Description() string {
	return "collapses single-operand Concat, Assign-of-Assign chains, and Not(Xor) into Xnor"
}

type stats struct {
	graphs, changedGraphs                          int
	concatsCollapsed, assignsCollapsed, xnorsFound int
}

func (p *Pass) Run(ctx *pass.Context) pass.PassResult {
	st := stats{}
	anyChanged := false

	_ = ctx.ForEachGraph(func(g *ir.Graph) error {
		st.graphs++
		if runGraph(g, &st) {
			st.changedGraphs++
			anyChanged = true
		}
		return nil
	})

	if ctx.Logger != nil {
		ctx.Logger.Debugf("redundant", "graphs=%d changedGraphs=%d concatsCollapsed=%d assignsCollapsed=%d xnorsFound=%d",
			st.graphs, st.changedGraphs, st.concatsCollapsed, st.assignsCollapsed, st.xnorsFound)
	}

	return pass.PassResult{Changed: anyChanged}
}

func isPortBound(g *ir.Graph, v ir.ValueID) bool {
	if g.ValueIsInput(v) || g.ValueIsOutput(v) {
		return true
	}
	in, out, oe := g.ValueInoutRoles(v)
	return in || out || oe
}

func runGraph(g *ir.Graph, st *stats) bool {
	changed := false
	// Each rule can expose a new instance of another (an Assign collapse
	// can turn a Concat-of-Assign into a Concat-of-one's operand chain
	// fold already flattened), so iterate the three rules to a fixpoint
	// bounded by a small constant rather than assume a single pass
	// suffices.
	for iter := 0; iter < 8; iter++ {
		iterChanged := false
		if collapseSingleConcat(g, st) {
			iterChanged = true
		}
		if collapseAssignChains(g, st) {
			iterChanged = true
		}
		if recognizeXnor(g, st) {
			iterChanged = true
		}
		if !iterChanged {
			break
		}
		changed = changed || iterChanged
	}
	return changed
}

// collapseSingleConcat rewrites a Concat with exactly one operand into
// an Assign of that operand, the residual shape left when fold reduces
// a multi-part Concat down to one surviving part.
func collapseSingleConcat(g *ir.Graph, st *stats) bool {
	changed := false
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpConcat {
			continue
		}
		if g.OpOperandCount(op) != 1 || g.OpResultCount(op) != 1 {
			continue
		}
		if err := rewriteAsAssign(g, op); err != nil {
			continue
		}
		st.concatsCollapsed++
		changed = true
	}
	return changed
}

// collapseAssignChains replaces an Assign-of-Assign chain's outer
// result with the inner Assign's operand directly, provided widths and
// signedness agree across the chain so the replacement stays
// value-identical.
func collapseAssignChains(g *ir.Graph, st *stats) bool {
	changed := false
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpAssign {
			continue
		}
		if g.OpOperandCount(op) != 1 || g.OpResultCount(op) != 1 {
			continue
		}
		mid := g.OpOperand(op, 0)
		innerOp := g.ValueDefiningOp(mid)
		if !innerOp.Valid() || g.OpKind(innerOp) != ir.OpAssign {
			continue
		}
		if g.OpOperandCount(innerOp) != 1 {
			continue
		}
		result := g.OpResult(op, 0)
		innerSrc := g.OpOperand(innerOp, 0)
		if g.ValueWidth(innerSrc) != g.ValueWidth(result) || g.ValueSigned(innerSrc) != g.ValueSigned(result) {
			continue
		}
		if isPortBound(g, result) {
			// Keep the outer Assign so the port binding stays intact,
			// but still skip the now-redundant middle hop.
			if err := g.ReplaceAllUses(mid, innerSrc); err != nil {
				continue
			}
			st.assignsCollapsed++
			changed = true
			continue
		}
		if err := g.ReplaceAllUses(result, innerSrc); err != nil {
			continue
		}
		g.EraseOpUnchecked(op)
		st.assignsCollapsed++
		changed = true
	}
	return changed
}

// recognizeXnor rewrites Not(Xor(a, b)) into the dedicated Xnor op
// when the Xor's result has no other users, so the intermediate value
// can be dropped along with it.
func recognizeXnor(g *ir.Graph, st *stats) bool {
	changed := false
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpNot {
			continue
		}
		if g.OpOperandCount(op) != 1 || g.OpResultCount(op) != 1 {
			continue
		}
		xorVal := g.OpOperand(op, 0)
		xorOp := g.ValueDefiningOp(xorVal)
		if !xorOp.Valid() || g.OpKind(xorOp) != ir.OpXor {
			continue
		}
		if g.OpOperandCount(xorOp) != 2 || g.OpResultCount(xorOp) != 1 {
			continue
		}
		if g.ValueUseCount(xorVal) != 1 {
			continue
		}
		if isPortBound(g, xorVal) {
			continue
		}
		a, b := g.OpOperand(xorOp, 0), g.OpOperand(xorOp, 1)
		notResult := g.OpResult(op, 0)

		sym := g.MintInternalOpSym()
		xnorOp, err := g.CreateOperation(ir.OpXnor, g.Text(sym))
		if err != nil {
			continue
		}
		g.EraseOpUnchecked(op)
		g.EraseOpUnchecked(xorOp)
		if err := g.AddOperand(xnorOp, a); err != nil {
			continue
		}
		if err := g.AddOperand(xnorOp, b); err != nil {
			continue
		}
		if err := g.AddResult(xnorOp, notResult); err != nil {
			continue
		}
		st.xnorsFound++
		changed = true
	}
	return changed
}

// rewriteAsAssign replaces op's result binding with a freshly minted
// Assign op carrying the same operand and result, then erases op.
func rewriteAsAssign(g *ir.Graph, op ir.OperationID) error {
	operand := g.OpOperand(op, 0)
	result := g.OpResult(op, 0)

	sym := g.MintInternalOpSym()
	assignOp, err := g.CreateOperation(ir.OpAssign, g.Text(sym))
	if err != nil {
		return err
	}
	g.EraseOpUnchecked(op)
	if err := g.AddOperand(assignOp, operand); err != nil {
		return err
	}
	if err := g.AddResult(assignOp, result); err != nil {
		return err
	}
	return nil
}
