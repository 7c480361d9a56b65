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

// Package pass is the transformation pipeline: a Pass interface, the
// mutable context handed to each run, a diagnostics sink, and the
// PassManager that sequences a pipeline over a netlist.
//
// The scheduling model is strictly single-threaded and non-cooperative
// (§5 of the design notes): a pass runs to completion or reports
// failure, there is no suspension point inside a pass, and the
// PassManager never spawns goroutines for pass execution itself.
package pass

import (
	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/pkg/grhlog"
)

// PassResult is what a single Pass.Run reports back to the manager.
type PassResult struct {
	Changed   bool
	Failed    bool
	Artifacts []string
}

// Context is the mutable state handed to every pass run. Passes never
// hold a Context field on themselves — it is threaded through Run as an
// explicit argument so a Pass value stays reusable across pipelines.
type Context struct {
	Netlist     *ir.Netlist
	Diagnostics *Diagnostics
	Logger      *grhlog.Logger
	Verbose     bool

	// CurrentGraph and EntryName are set by the PassManager's iteration
	// helpers (Context.ForEachGraph) for passes that process one graph
	// at a time; a pass operating netlist-wide may ignore them.
	CurrentGraph *ir.Graph
	EntryName    string
}

// ForEachGraph visits every graph in the netlist, in insertion order,
// setting CurrentGraph/EntryName for the duration of each call to fn —
// the ordering guarantee §5 requires of per-graph passes.
func (c *Context) ForEachGraph(fn func(g *ir.Graph) error) error {
	for _, name := range c.Netlist.GraphNames() {
		g, ok := c.Netlist.FindGraph(name)
		if !ok {
			continue
		}
		c.CurrentGraph = g
		c.EntryName = name
		if err := fn(g); err != nil {
			return err
		}
	}
	c.CurrentGraph = nil
	c.EntryName = ""
	return nil
}

// Pass is the capability set every transformation implements: a stable
// id, a display name, an optional one-line description, and Run. A
// Pass is owned by the PassManager in an ordered slice, never by value
// embedding a Context.
type Pass interface {
	ID() string
	Name() string
	Description() string
	Run(ctx *Context) PassResult
}
