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

// Package meminit is a read-only lint: it validates that the
// initKind/initFile/initHasStart/initHasFinish/initStart/initFinish
// attribute arrays a Memory operation carries are internally
// consistent, and that operations sharing a symbol (front-end lowering
// may split one declared memory across several always-blocks) agree on
// their init attributes. It never mutates the graph.
package meminit

import (
	"fmt"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/numeric"
	"github.com/erigontech/grh/internal/pass"
)

const passID = "memory-init-check"

// Pass is the memory-initialization consistency check.
type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) ID() string          { return passID }
func (p *Pass) Name() string        { return "Memory Init Check" }
func (p *Pass) Description() string { return "validates kMemory init attribute consistency" }

// initInfo is the parsed, length-normalized view of one Memory
// operation's init attributes.
type initInfo struct {
	kinds     []string
	files     []string
	hasStart  []bool
	hasFinish []bool
	starts    []int64
	finishes  []int64
}

func (a initInfo) equals(b initInfo) bool {
	return stringsEqual(a.kinds, b.kinds) &&
		stringsEqual(a.files, b.files) &&
		boolsEqual(a.hasStart, b.hasStart) &&
		boolsEqual(a.hasFinish, b.hasFinish) &&
		int64sEqual(a.starts, b.starts) &&
		int64sEqual(a.finishes, b.finishes)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int64sEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasAnyInitAttrs(g *ir.Graph, op ir.OperationID) bool {
	for _, key := range []string{"initKind", "initFile", "initHasStart", "initHasFinish", "initStart", "initFinish"} {
		if _, ok := g.GetAttrByName(op, key); ok {
			return true
		}
	}
	return false
}

func stringArrayAttr(g *ir.Graph, op ir.OperationID, key string) []string {
	if a, ok := g.GetAttrByName(op, key); ok && a.Kind() == ir.AttrStringArray {
		return a.StringArray()
	}
	return nil
}

func boolArrayAttr(g *ir.Graph, op ir.OperationID, key string, count int) []bool {
	if a, ok := g.GetAttrByName(op, key); ok && a.Kind() == ir.AttrBoolArray {
		return a.BoolArray()
	}
	return make([]bool, count)
}

func intArrayAttr(g *ir.Graph, op ir.OperationID, key string, count int) []int64 {
	if a, ok := g.GetAttrByName(op, key); ok && a.Kind() == ir.AttrIntArray {
		return a.IntArray()
	}
	return make([]int64, count)
}

func (p *Pass) Run(ctx *pass.Context) pass.PassResult {
	failed := false

	_ = ctx.ForEachGraph(func(g *ir.Graph) error {
		initBySymbol := make(map[string]initInfo)

		for _, op := range g.Operations() {
			if g.OpKind(op) != ir.OpMemory {
				continue
			}
			if !hasAnyInitAttrs(g, op) {
				continue
			}

			symbol := g.Text(g.OpSymbol(op))
			kinds := stringArrayAttr(g, op, "initKind")
			files := stringArrayAttr(g, op, "initFile")
			count := len(kinds)
			if len(files) > count {
				count = len(files)
			}
			if count == 0 {
				ctx.Diagnostics.Warning(passID, symbol, "kMemory init attributes are incomplete (missing initKind/initFile)")
				continue
			}
			if len(kinds) != len(files) {
				ctx.Diagnostics.Error(passID, symbol, "kMemory initKind/initFile size mismatch")
				failed = true
				continue
			}

			hasStart := boolArrayAttr(g, op, "initHasStart", count)
			hasFinish := boolArrayAttr(g, op, "initHasFinish", count)
			starts := intArrayAttr(g, op, "initStart", count)
			finishes := intArrayAttr(g, op, "initFinish", count)

			if len(hasStart) != count {
				ctx.Diagnostics.Error(passID, symbol, "kMemory initHasStart size mismatch")
				failed = true
				continue
			}
			if len(hasFinish) != count {
				ctx.Diagnostics.Error(passID, symbol, "kMemory initHasFinish size mismatch")
				failed = true
				continue
			}
			if len(starts) != count {
				ctx.Diagnostics.Error(passID, symbol, "kMemory initStart size mismatch")
				failed = true
				continue
			}
			if len(finishes) != count {
				ctx.Diagnostics.Error(passID, symbol, "kMemory initFinish size mismatch")
				failed = true
				continue
			}

			for i := 0; i < count; i++ {
				if !hasStart[i] || !hasFinish[i] || finishes[i] >= starts[i] {
					continue
				}
				width := numeric.AbsoluteDifference(uint64(starts[i]), uint64(finishes[i]))
				ctx.Diagnostics.Warning(passID, symbol,
					fmt.Sprintf("kMemory init range %d has finish before start (range width %d)", i, width))
			}

			info := initInfo{kinds: kinds, files: files, hasStart: hasStart, hasFinish: hasFinish, starts: starts, finishes: finishes}
			existing, ok := initBySymbol[symbol]
			if !ok {
				initBySymbol[symbol] = info
				continue
			}
			if !existing.equals(info) {
				ctx.Diagnostics.Error(passID, symbol, "kMemory init attributes differ for merged memory '"+symbol+"'")
				failed = true
			}
		}
		return nil
	})

	return pass.PassResult{Changed: false, Failed: failed}
}
