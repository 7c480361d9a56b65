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

// Package ir is the public, read-only surface emitters consume (§6.2 of
// the design notes): a GraphView borrows from a graph built and mutated
// through the internal mutation API. GraphView's accessors never mutate
// the graph; the one exported route to mutation is Underlying, which
// hands back the internal/ir graph with its invariant-checked API.
package ir

import (
	internalir "github.com/erigontech/grh/internal/ir"
)

type (
	SymbolID       = internalir.SymbolID
	ValueID        = internalir.ValueID
	OperationID    = internalir.OperationID
	OperationKind  = internalir.OperationKind
	ValueType      = internalir.ValueType
	AttributeValue = internalir.AttributeValue
	AttrKind       = internalir.AttrKind
	SrcLoc         = internalir.SrcLoc
	InoutTriple    = internalir.InoutTriple
	ValueUser      = internalir.ValueUser
)

// AttrKV is an ordered attribute key/value pair as exposed to emitters.
type AttrKV struct {
	Key   string
	Value AttributeValue
}

// GraphView is an immutable borrow of a *internalir.Graph.
type GraphView struct {
	g *internalir.Graph
}

// NewGraphView wraps g for read-only consumption.
func NewGraphView(g *internalir.Graph) GraphView { return GraphView{g: g} }

func (v GraphView) Name() string { return v.g.Name() }

func (v GraphView) ValueIDs() []ValueID         { return v.g.Values() }
func (v GraphView) OperationIDs() []OperationID { return v.g.Operations() }

func (v GraphView) ValueSymbol(id ValueID) string  { return v.g.Text(v.g.ValueSymbol(id)) }
func (v GraphView) ValueWidth(id ValueID) int      { return v.g.ValueWidth(id) }
func (v GraphView) ValueSigned(id ValueID) bool    { return v.g.ValueSigned(id) }
func (v GraphView) ValueType(id ValueID) ValueType { return v.g.ValueType(id) }
func (v GraphView) ValueIsInput(id ValueID) bool   { return v.g.ValueIsInput(id) }
func (v GraphView) ValueIsOutput(id ValueID) bool  { return v.g.ValueIsOutput(id) }
func (v GraphView) ValueInoutRoles(id ValueID) (in, out, oe bool) {
	return v.g.ValueInoutRoles(id)
}
func (v GraphView) ValueDefiningOp(id ValueID) OperationID { return v.g.ValueDefiningOp(id) }
func (v GraphView) ValueUsers(id ValueID) []ValueUser      { return v.g.ValueUsers(id) }
func (v GraphView) ValueSrcLoc(id ValueID) *SrcLoc         { return v.g.ValueSrcLoc(id) }
func (v GraphView) ValueIsDeclared(id ValueID) bool {
	return v.g.IsDeclared(v.g.ValueSymbol(id))
}

func (v GraphView) OpSymbol(id OperationID) string      { return v.g.Text(v.g.OpSymbol(id)) }
func (v GraphView) OpKind(id OperationID) OperationKind { return v.g.OpKind(id) }
func (v GraphView) OpOperands(id OperationID) []ValueID { return v.g.OpOperands(id) }
func (v GraphView) OpResults(id OperationID) []ValueID  { return v.g.OpResults(id) }
func (v GraphView) OpSrcLoc(id OperationID) *SrcLoc     { return v.g.OpSrcLoc(id) }

func (v GraphView) OpAttributes(id OperationID) []AttrKV {
	keys := v.g.AttrKeys(id)
	out := make([]AttrKV, 0, len(keys))
	for _, k := range keys {
		val, _ := v.g.GetAttr(id, k)
		out = append(out, AttrKV{Key: v.g.Text(k), Value: val})
	}
	return out
}

// PortMaps describes a graph's named terminals.
type PortMaps struct {
	Input  map[string]ValueID
	Output map[string]ValueID
	Inout  map[string]InoutTriple
}

func (v GraphView) Ports() PortMaps {
	pm := PortMaps{
		Input:  make(map[string]ValueID),
		Output: make(map[string]ValueID),
		Inout:  make(map[string]InoutTriple),
	}
	for _, sym := range v.g.InputPorts() {
		val, _ := v.g.InputPortValue(sym)
		pm.Input[v.g.Text(sym)] = val
	}
	for _, sym := range v.g.OutputPorts() {
		val, _ := v.g.OutputPortValue(sym)
		pm.Output[v.g.Text(sym)] = val
	}
	for _, sym := range v.g.InoutPorts() {
		val, _ := v.g.InoutPortValue(sym)
		pm.Inout[v.g.Text(sym)] = val
	}
	return pm
}

// PortOrder returns port names (input, output, inout) in insertion order,
// for emitters that need deterministic iteration rather than a map.
func (v GraphView) PortOrder() (input, output, inout []string) {
	for _, sym := range v.g.InputPorts() {
		input = append(input, v.g.Text(sym))
	}
	for _, sym := range v.g.OutputPorts() {
		output = append(output, v.g.Text(sym))
	}
	for _, sym := range v.g.InoutPorts() {
		inout = append(inout, v.g.Text(sym))
	}
	return
}

// Underlying exposes the wrapped graph with its full mutation API. It is
// exported, so any holder of a GraphView, inside or outside this module,
// can reach that API through it.
func (v GraphView) Underlying() *internalir.Graph { return v.g }
