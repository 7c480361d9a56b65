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

// Package dotdump renders a GraphView as a Graphviz document for
// developers inspecting a pass's before/after state. It is purely
// additive: never imported by the codec or by any pass.
package dotdump

import (
	"fmt"
	"strconv"

	"github.com/emicklei/dot"

	grhir "github.com/erigontech/grh/pkg/ir"
)

// Render builds a directed Graphviz document for v: one node per
// operation (labeled with its kind and symbol) plus one node per
// value the graph declares, with def-use edges drawn value -> op for
// each operand and op -> value for each result.
func Render(v grhir.GraphView) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	g.Attr("label", v.Name())

	valueNodes := make(map[grhir.ValueID]dot.Node, len(v.ValueIDs()))
	for _, id := range v.ValueIDs() {
		n := g.Node(valueNodeID(id))
		n.Attr("shape", "ellipse")
		n.Attr("label", valueLabel(v, id))
		valueNodes[id] = n
	}

	for _, id := range v.OperationIDs() {
		opNode := g.Node(opNodeID(id))
		opNode.Attr("shape", "box")
		opNode.Attr("label", opLabel(v, id))

		for _, operand := range v.OpOperands(id) {
			g.Edge(valueNodes[operand], opNode)
		}
		for _, result := range v.OpResults(id) {
			g.Edge(opNode, valueNodes[result])
		}
	}

	return g.String()
}

func valueNodeID(id grhir.ValueID) string  { return "v" + strconv.FormatInt(int64(id), 10) }
func opNodeID(id grhir.OperationID) string { return "o" + strconv.FormatInt(int64(id), 10) }

func valueLabel(v grhir.GraphView, id grhir.ValueID) string {
	sign := ""
	if v.ValueSigned(id) {
		sign = "s"
	}
	return fmt.Sprintf("%s\\n[%d%s]", v.ValueSymbol(id), v.ValueWidth(id), sign)
}

func opLabel(v grhir.GraphView, id grhir.OperationID) string {
	return fmt.Sprintf("%s\\n%s", v.OpKind(id).String(), v.OpSymbol(id))
}
