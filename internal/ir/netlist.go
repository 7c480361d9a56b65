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
	"github.com/pkg/errors"

	"github.com/erigontech/grh/internal/grherrors"
)

// Netlist is a named collection of graphs sharing a namespace: a
// name->graph map (insertion order preserved), a table of aliases
// (alternative lookup keys that do not own the graph), and an ordered
// list of "top" graphs.
type Netlist struct {
	order   []string
	graphs  map[string]*Graph
	aliases map[string]string // alias -> primary name
	tops    []string
	topSet  map[string]bool
}

func NewNetlist() *Netlist {
	return &Netlist{
		graphs:  make(map[string]*Graph),
		aliases: make(map[string]string),
		topSet:  make(map[string]bool),
	}
}

// AddGraph registers g under its own name. Fails if the name is already
// taken by a graph or an alias.
func (n *Netlist) AddGraph(g *Graph) error {
	if _, exists := n.graphs[g.Name()]; exists {
		return errors.Wrapf(grherrors.ErrDuplicateGraph, "graph %q", g.Name())
	}
	if _, exists := n.aliases[g.Name()]; exists {
		return errors.Wrapf(grherrors.ErrDuplicateGraph, "graph %q", g.Name())
	}
	n.graphs[g.Name()] = g
	n.order = append(n.order, g.Name())
	return nil
}

// FindGraph consults the primary map, then aliases.
func (n *Netlist) FindGraph(name string) (*Graph, bool) {
	if g, ok := n.graphs[name]; ok {
		return g, true
	}
	if primary, ok := n.aliases[name]; ok {
		g, ok := n.graphs[primary]
		return g, ok
	}
	return nil, false
}

// AddAlias registers alt as an alternative lookup key for the graph
// currently named primary. The alias does not own the graph: removing
// the primary graph does not remove the alias entry's dangling target
// automatically (callers are expected to keep this consistent).
func (n *Netlist) AddAlias(alt, primary string) error {
	if _, ok := n.graphs[primary]; !ok {
		return errors.Wrapf(grherrors.ErrUnknownGraph, "graph %q", primary)
	}
	if _, exists := n.graphs[alt]; exists {
		return errors.Wrapf(grherrors.ErrDuplicateGraph, "alias %q", alt)
	}
	n.aliases[alt] = primary
	return nil
}

// MarkAsTop adds name to the ordered top-graphs list. Fails on an unknown
// name; idempotent for a name already marked top.
func (n *Netlist) MarkAsTop(name string) error {
	if _, ok := n.graphs[name]; !ok {
		return errors.Wrapf(grherrors.ErrUnknownGraph, "graph %q", name)
	}
	if n.topSet[name] {
		return nil
	}
	n.topSet[name] = true
	n.tops = append(n.tops, name)
	return nil
}

func (n *Netlist) IsTop(name string) bool { return n.topSet[name] }

func (n *Netlist) Tops() []string { return append([]string(nil), n.tops...) }

// GraphNames returns graph names in insertion order.
func (n *Netlist) GraphNames() []string { return append([]string(nil), n.order...) }

// Aliases returns a copy of the alias -> primary-name table.
func (n *Netlist) Aliases() map[string]string {
	out := make(map[string]string, len(n.aliases))
	for k, v := range n.aliases {
		out[k] = v
	}
	return out
}

func (n *Netlist) Graphs() []*Graph {
	out := make([]*Graph, len(n.order))
	for i, name := range n.order {
		out[i] = n.graphs[name]
	}
	return out
}

// CloneGraph deep-copies the graph registered as srcName into a new graph
// registered as dstName. Top-marking and aliases are not propagated
// (§3.7, §4.3).
func (n *Netlist) CloneGraph(srcName, dstName string) (*Graph, error) {
	src, ok := n.graphs[srcName]
	if !ok {
		return nil, errors.Wrapf(grherrors.ErrUnknownGraph, "graph %q", srcName)
	}
	if _, exists := n.graphs[dstName]; exists {
		return nil, errors.Wrapf(grherrors.ErrDuplicateGraph, "graph %q", dstName)
	}
	cloned := src.Clone(dstName)
	if err := n.AddGraph(cloned); err != nil {
		return nil, err
	}
	return cloned, nil
}
