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

// Package fold implements constant folding: reduce operations whose
// every operand is a known constant into a single Constant operation,
// per graph, to a fixpoint bounded by MaxIterations.
package fold

import (
	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
	"github.com/erigontech/grh/internal/svint"
)

const passID = "const-fold"

// Options configures a single Pass run.
type Options struct {
	MaxIterations     int
	AllowXPropagation bool
}

// DefaultOptions matches the spec's stated defaults.
func DefaultOptions() Options {
	return Options{MaxIterations: 8, AllowXPropagation: false}
}

// Pass is the constant-folding transformation.
type Pass struct {
	Options Options
}

// New builds a fold Pass with o applied over DefaultOptions' zero gaps
// (MaxIterations <= 0 is replaced with the default).
func New(o Options) *Pass {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultOptions().MaxIterations
	}
	return &Pass{Options: o}
}

func (p *Pass) ID() string   { return passID }
func (p *Pass) Name() string { return "Constant Fold" }
func (p *Pass) Description() string {
	return "folds operations over known constants into pooled Constant ops"
}

// stats mirrors the "Statistics (logged at debug)" list.
type stats struct {
	graphs, changedGraphs                     int
	foldedOps, dedupedConsts, sliceSimplified int
	deadConsts, unsignedCmp, opsErased        int
}

func (p *Pass) Run(ctx *pass.Context) pass.PassResult {
	st := stats{}
	failed := false
	anyChanged := false

	_ = ctx.ForEachGraph(func(g *ir.Graph) error {
		st.graphs++
		changed := p.runGraph(ctx, g, &st)
		if changed {
			st.changedGraphs++
			anyChanged = true
		}
		return nil
	})

	if ctx.Logger != nil {
		ctx.Logger.Debugf("fold", "graphs=%d changedGraphs=%d foldedOps=%d dedupedConsts=%d sliceSimplified=%d deadConsts=%d unsignedCmp=%d opsErased=%d",
			st.graphs, st.changedGraphs, st.foldedOps, st.dedupedConsts, st.sliceSimplified, st.deadConsts, st.unsignedCmp, st.opsErased)
	}

	return pass.PassResult{Changed: anyChanged, Failed: failed}
}

// constPool dedupes Constant values within a single graph for a single
// pass run (§5 "shared-resource policy": per-graph, pass-run-scoped).
type constPool struct {
	byKey map[string]ir.ValueID
}

func newConstPool() *constPool { return &constPool{byKey: make(map[string]ir.ValueID)} }

// createConstant mints a fresh (value, op) pair of kind Constant for v,
// or returns the pool's existing value for an equal (width, signedness,
// literal) key.
func createConstant(g *ir.Graph, pool *constPool, v svint.SVInt, st *stats) (ir.ValueID, bool, error) {
	key := v.PoolKey()
	if existing, ok := pool.byKey[key]; ok {
		st.dedupedConsts++
		return existing, false, nil
	}
	valSym := g.MintInternalValueSym()
	valID, err := g.CreateValue(g.Text(valSym), v.Width(), v.Signed(), ir.TypeLogic)
	if err != nil {
		return ir.InvalidValueID, false, err
	}
	opSym := g.MintInternalOpSym()
	opID, err := g.CreateOperation(ir.OpConstant, g.Text(opSym))
	if err != nil {
		return ir.InvalidValueID, false, err
	}
	if err := g.AddResult(opID, valID); err != nil {
		return ir.InvalidValueID, false, err
	}
	if err := g.SetAttrByName(opID, "constValue", ir.StringAttr(v.HexLiteral())); err != nil {
		return ir.InvalidValueID, false, err
	}
	pool.byKey[key] = valID
	return valID, true, nil
}

func (p *Pass) runGraph(ctx *pass.Context, g *ir.Graph, st *stats) bool {
	changed := false
	pool := newConstPool()
	consts := make(map[ir.ValueID]svint.SVInt)

	// Phase 1: seed from existing Constant ops, deduping via the pool.
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpConstant {
			continue
		}
		attr, ok := g.GetAttrByName(op, "constValue")
		if !ok || attr.Kind() != ir.AttrString {
			ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "Constant op missing constValue literal")
			continue
		}
		if g.OpResultCount(op) != 1 {
			continue
		}
		result := g.OpResult(op, 0)
		v, err := svint.ParseLiteral(attr.String())
		if err != nil {
			ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "bad constant literal: "+err.Error())
			continue
		}
		if g.ValueSigned(result) {
			v = svint.FromBigInt(v.Width(), true, v.Known())
		}
		key := v.PoolKey()
		if existing, ok := pool.byKey[key]; ok && existing != result && !isPortBound(g, result) {
			if err := g.ReplaceAllUses(result, existing); err == nil {
				st.dedupedConsts++
				changed = true
				continue
			}
		}
		pool.byKey[key] = result
		consts[result] = v
	}

	// Phase 2: iterative fold to a fixpoint.
	for iter := 0; iter < p.Options.MaxIterations; iter++ {
		iterChanged := false
		var toErase []ir.OperationID

		for _, op := range g.Operations() {
			kind := g.OpKind(op)
			if !foldableKind(g, op, kind) {
				continue
			}
			if g.OpResultCount(op) != 1 {
				continue
			}
			result := g.OpResult(op, 0)
			if g.ValueType(result) != ir.TypeLogic {
				continue
			}
			if isProtected(g, result) {
				continue
			}
			operandVals, ok := resolveOperands(g, op, consts)
			if !ok {
				continue
			}
			hasUnknown := false
			for _, v := range operandVals {
				if v.HasUnknown() {
					hasUnknown = true
					break
				}
			}
			if hasUnknown && !p.Options.AllowXPropagation {
				continue
			}

			folded, err := evalOp(g, op, kind, operandVals)
			if err != nil {
				ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), err.Error())
				continue
			}
			if folded.HasUnknown() {
				if !p.Options.AllowXPropagation {
					continue
				}
				ctx.Diagnostics.Warning(passID, g.Text(g.OpSymbol(op)), "fold result carries unknown bits")
			}

			newVal, minted, err := createConstant(g, pool, folded, st)
			if err != nil {
				ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "failed to create folded constant: "+err.Error())
				continue
			}
			if minted {
				consts[newVal] = folded
			}
			if err := g.ReplaceAllUses(result, newVal); err != nil {
				ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "replace-all-uses failed: "+err.Error())
				continue
			}
			toErase = append(toErase, op)
			st.foldedOps++
			iterChanged = true
		}

		for _, op := range toErase {
			g.EraseOpUnchecked(op)
			st.opsErased++
		}
		if iterChanged {
			changed = true
		} else {
			break
		}
	}

	// Phase 3: slice-of-concat simplification.
	if simplifySliceOfConcat(g, st) {
		changed = true
	}

	// Phase 4: dead-constant elimination.
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpConstant {
			continue
		}
		if g.OpResultCount(op) != 1 {
			continue
		}
		result := g.OpResult(op, 0)
		if isPortBound(g, result) || g.ValueUseCount(result) > 0 {
			continue
		}
		g.EraseOpUnchecked(op)
		if err := g.EraseValue(result); err == nil {
			st.deadConsts++
			st.opsErased++
			changed = true
		}
	}

	// Phase 5: unsigned-comparison simplification.
	if simplifyUnsignedCompare(g, consts, pool, st) {
		changed = true
	}

	return changed
}

func isPortBound(g *ir.Graph, v ir.ValueID) bool {
	if g.ValueIsInput(v) || g.ValueIsOutput(v) {
		return true
	}
	in, out, oe := g.ValueInoutRoles(v)
	return in || out || oe
}

// isProtected reports whether v must never be rewritten by fold: an
// input, an inout net, or an output bound to a value that is itself a
// direct assign-through alias of an input. A plain output, with no such
// aliasing, is fair game: folding a pure op feeding it into a Constant
// is exactly what the pass is for.
func isProtected(g *ir.Graph, v ir.ValueID) bool {
	if g.ValueIsInput(v) {
		return true
	}
	if in, out, oe := g.ValueInoutRoles(v); in || out || oe {
		return true
	}
	if !g.ValueIsOutput(v) {
		return false
	}
	return aliasesInput(g, v)
}

// aliasesInput reports whether v's defining op is a plain Assign whose
// sole operand is, directly or through a chain of further plain
// Assigns, an input value.
func aliasesInput(g *ir.Graph, v ir.ValueID) bool {
	seen := make(map[ir.ValueID]bool)
	for {
		if seen[v] {
			return false
		}
		seen[v] = true
		defOp := g.ValueDefiningOp(v)
		if !defOp.Valid() || g.OpKind(defOp) != ir.OpAssign || g.OpOperandCount(defOp) != 1 {
			return false
		}
		operand := g.OpOperand(defOp, 0)
		if g.ValueIsInput(operand) {
			return true
		}
		v = operand
	}
}

func foldableKind(g *ir.Graph, op ir.OperationID, kind ir.OperationKind) bool {
	if ir.IsFoldable(kind) {
		return true
	}
	if kind != ir.OpSystemFunction {
		return false
	}
	nameAttr, ok := g.GetAttrByName(op, "systemFunctionName")
	if !ok || nameAttr.Kind() != ir.AttrString || nameAttr.String() != "clog2" {
		return false
	}
	if se, ok := g.GetAttrByName(op, "hasSideEffects"); ok && se.Kind() == ir.AttrBool && se.Bool() {
		return false
	}
	return true
}

func resolveOperands(g *ir.Graph, op ir.OperationID, consts map[ir.ValueID]svint.SVInt) ([]svint.SVInt, bool) {
	operands := g.OpOperands(op)
	out := make([]svint.SVInt, len(operands))
	for i, v := range operands {
		cv, ok := consts[v]
		if !ok {
			return nil, false
		}
		out[i] = cv
	}
	return out, true
}
