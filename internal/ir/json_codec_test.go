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
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
)

// graphShape is a flat, exported-field snapshot of everything a JSON
// round trip must preserve. Graph itself carries unexported arena and
// symbol-table state that reflection-based comparison can't usefully
// diff, so tests compare shapes instead of graphs directly.
type graphShape struct {
	Name    string
	Values  []valueShape
	Ops     []opShape
	Inputs  []string
	Outputs []string
}

type valueShape struct {
	Symbol string
	Width  int
	Signed bool
	Type   string
}

type opShape struct {
	Symbol   string
	Kind     string
	Operands []string
	Results  []string
	Attrs    map[string]string
}

func snapshot(g *Graph) graphShape {
	s := graphShape{Name: g.Name()}
	for _, v := range g.Values() {
		s.Values = append(s.Values, valueShape{
			Symbol: g.Text(g.ValueSymbol(v)),
			Width:  g.ValueWidth(v),
			Signed: g.ValueSigned(v),
			Type:   g.ValueType(v).String(),
		})
	}
	for _, op := range g.Operations() {
		os := opShape{
			Symbol: g.Text(g.OpSymbol(op)),
			Kind:   g.OpKind(op).String(),
			Attrs:  make(map[string]string),
		}
		for _, operand := range g.OpOperands(op) {
			os.Operands = append(os.Operands, g.Text(g.ValueSymbol(operand)))
		}
		for _, result := range g.OpResults(op) {
			os.Results = append(os.Results, g.Text(g.ValueSymbol(result)))
		}
		for _, keySym := range g.AttrKeys(op) {
			key := g.Text(keySym)
			attr, _ := g.GetAttrByName(op, key)
			os.Attrs[key] = attr.String()
		}
		s.Ops = append(s.Ops, os)
	}
	for _, sym := range g.InputPorts() {
		s.Inputs = append(s.Inputs, g.Text(sym))
	}
	for _, sym := range g.OutputPorts() {
		s.Outputs = append(s.Outputs, g.Text(sym))
	}
	return s
}

func buildSampleGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph("adder")
	a, err := g.CreateValue("a", 8, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("a", a))
	b, err := g.CreateValue("b", 8, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindInputPort("b", b))
	y, err := g.CreateValue("y", 8, false, TypeLogic)
	require.NoError(t, err)
	require.NoError(t, g.BindOutputPort("y", y))

	op, err := g.CreateOperation(OpAdd, "add0")
	require.NoError(t, err)
	require.NoError(t, g.AddOperand(op, a))
	require.NoError(t, g.AddOperand(op, b))
	require.NoError(t, g.AddResult(op, y))
	require.NoError(t, g.SetAttrByName(op, "note", StringAttr("sample")))
	return g
}

func TestEncodeDecodeGraphRoundTrips(t *testing.T) {
	g := buildSampleGraph(t)
	want := snapshot(g)

	for _, mode := range []PrintMode{Compact, Pretty, PrettyCompact} {
		data := EncodeGraph(g, mode)
		decoded, err := DecodeGraph(data)
		require.NoError(t, err)
		require.NoError(t, decoded.CheckInvariants())

		got := snapshot(decoded)
		if diff := deep.Equal(want, got); diff != nil {
			t.Fatalf("round trip under mode %v changed graph shape: %v", mode, diff)
		}
	}
}

func TestEncodeGraphIsByteStableAcrossRuns(t *testing.T) {
	g := buildSampleGraph(t)
	first := EncodeGraph(g, PrettyCompact)
	second := EncodeGraph(g, PrettyCompact)
	require.Equal(t, first, second)
}

func TestEncodeDecodeNetlistPreservesTopsAndAliases(t *testing.T) {
	g := buildSampleGraph(t)
	nl := NewNetlist()
	require.NoError(t, nl.AddGraph(g))
	require.NoError(t, nl.MarkAsTop("adder"))
	require.NoError(t, nl.AddAlias("adder_alias", "adder"))

	data := EncodeNetlist(nl, Compact)
	decoded, err := DecodeNetlist(data)
	require.NoError(t, err)

	require.True(t, decoded.IsTop("adder"))
	require.Equal(t, nl.Aliases(), decoded.Aliases())

	g2, ok := decoded.FindGraph("adder")
	require.True(t, ok)
	if diff := deep.Equal(snapshot(g), snapshot(g2)); diff != nil {
		t.Fatalf("netlist round trip changed graph shape: %v", diff)
	}
}

func TestDecodeGraphRejectsInvalidDocument(t *testing.T) {
	_, err := DecodeGraph([]byte("not json"))
	require.Error(t, err)
}
