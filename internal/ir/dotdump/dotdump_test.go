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

package dotdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/grh/internal/ir"
	grhir "github.com/erigontech/grh/pkg/ir"
)

func TestRenderIncludesNodesAndEdges(t *testing.T) {
	g := ir.NewGraph("adder")
	a, err := g.CreateValue("a", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	b, err := g.CreateValue("b", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	y, err := g.CreateValue("y", 8, false, ir.TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	require.NoError(t, g.BindInputPort("b", b))
	require.NoError(t, g.BindOutputPort("y", y))

	op, err := g.CreateOperation(ir.OpAdd, "add0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddOperand(op, b))
	require.NoError(t, g.AddResult(op, y))

	out := Render(grhir.NewGraphView(g))
	require.True(t, strings.Contains(out, "digraph"))
	require.Contains(t, out, "add0")
	require.Contains(t, out, "Add")
	require.Contains(t, out, "adder")
	require.Contains(t, out, "->")
}
