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

// Package dce implements dead-code elimination: a reverse-use worklist
// that erases side-effect-free operations whose every result has gone
// unused, then sweeps any value left orphaned behind.
package dce

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
)

const passID = "dce"

// Pass is the dead-code elimination transformation. It carries no
// options: the kill predicate is fixed by the side-effect taxonomy and
// the declared/port keep list.
type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) ID() string   { return passID }
func (p *Pass) Name() string { return "Dead Code Elimination" }
func (p *Pass) Description() string {
	return "erases side-effect-free ops whose results are entirely unused"
}

type stats struct {
	graphs, changedGraphs, opsErased, orphanValuesErased int
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
		ctx.Logger.Debugf("dce", "graphs=%d changedGraphs=%d opsErased=%d orphanValuesErased=%d",
			st.graphs, st.changedGraphs, st.opsErased, st.orphanValuesErased)
	}

	return pass.PassResult{Changed: anyChanged}
}

// keepable reports whether v may never be collected regardless of use
// count: a port, or a front-end-declared symbol.
func keepable(g *ir.Graph, v ir.ValueID) bool {
	if g.ValueIsInput(v) || g.ValueIsOutput(v) {
		return true
	}
	if in, out, oe := g.ValueInoutRoles(v); in || out || oe {
		return true
	}
	return g.IsDeclared(g.ValueSymbol(v))
}

// killable reports whether op is currently eligible for removal: it has
// at least one result, is not side-effecting, and every result is
// neither kept nor used.
func killable(g *ir.Graph, op ir.OperationID) bool {
	if g.OpResultCount(op) == 0 {
		return false
	}
	if ir.IsSideEffecting(g.OpKind(op)) {
		return false
	}
	for _, r := range g.OpResults(op) {
		if keepable(g, r) || g.ValueUseCount(r) > 0 {
			return false
		}
	}
	return true
}

func runGraph(g *ir.Graph, st *stats) bool {
	changed := false

	var worklist []ir.OperationID
	queued := roaring.New()
	for _, op := range g.Operations() {
		if killable(g, op) {
			worklist = append(worklist, op)
			queued.Add(uint32(op))
		}
	}

	for len(worklist) > 0 {
		op := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		queued.Remove(uint32(op))

		if !killable(g, op) {
			continue
		}

		operands := g.OpOperands(op)
		g.EraseOpUnchecked(op)
		st.opsErased++
		changed = true

		for _, v := range operands {
			if g.ValueUseCount(v) != 0 {
				continue
			}
			defOp := g.ValueDefiningOp(v)
			if !defOp.Valid() || queued.Contains(uint32(defOp)) {
				continue
			}
			if killable(g, defOp) {
				worklist = append(worklist, defOp)
				queued.Add(uint32(defOp))
			}
		}
	}

	// Sweep orphan values: no users, no defining op, not kept.
	for _, v := range g.Values() {
		if g.ValueUseCount(v) != 0 {
			continue
		}
		if g.ValueDefiningOp(v).Valid() {
			continue
		}
		if keepable(g, v) {
			continue
		}
		g.EraseValueUnchecked(v)
		st.orphanValuesErased++
		changed = true
	}

	return changed
}
