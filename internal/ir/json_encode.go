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

func srcLocNode(loc *SrcLoc) (jnode, bool) {
	if loc == nil {
		return jnode{}, false
	}
	return jobjv(
		jf("file", jstr(loc.File)),
		jf("line", jintv(int64(loc.Line))),
		jf("col", jintv(int64(loc.Col))),
	), true
}

func attrValueNode(a AttributeValue) jnode {
	fields := []jfield{jf("k", jstr(a.Kind().KindTag()))}
	switch a.Kind() {
	case AttrBool:
		fields = append(fields, jf("v", jboolv(a.Bool())))
	case AttrInt:
		fields = append(fields, jf("v", jintv(a.Int())))
	case AttrDouble:
		fields = append(fields, jf("v", jfloatv(a.Double())))
	case AttrString:
		fields = append(fields, jf("v", jstr(a.String())))
	case AttrBoolArray:
		items := make([]jnode, len(a.BoolArray()))
		for i, v := range a.BoolArray() {
			items[i] = jboolv(v)
		}
		fields = append(fields, jf("vs", jarrv(items...)))
	case AttrIntArray:
		items := make([]jnode, len(a.IntArray()))
		for i, v := range a.IntArray() {
			items[i] = jintv(v)
		}
		fields = append(fields, jf("vs", jarrv(items...)))
	case AttrDoubleArray:
		items := make([]jnode, len(a.DoubleArray()))
		for i, v := range a.DoubleArray() {
			items[i] = jfloatv(v)
		}
		fields = append(fields, jf("vs", jarrv(items...)))
	case AttrStringArray:
		items := make([]jnode, len(a.StringArray()))
		for i, v := range a.StringArray() {
			items[i] = jstr(v)
		}
		fields = append(fields, jf("vs", jarrv(items...)))
	}
	return jobjv(fields...)
}

func attrMapNode(g *Graph, op OperationID) jnode {
	names := make(map[string]AttributeValue)
	for _, key := range g.AttrKeys(op) {
		val, _ := g.GetAttr(op, key)
		names[g.Text(key)] = val
	}
	keys := sortedKeys(names)
	fields := make([]jfield, len(keys))
	for i, k := range keys {
		fields[i] = jf(k, attrValueNode(names[k]))
	}
	return jobjv(fields...)
}

func valueNode(g *Graph, v ValueID) jnode {
	in, out, oe := g.ValueInoutRoles(v)
	fields := []jfield{
		jf("sym", jstr(g.Text(g.ValueSymbol(v)))),
		jf("width", jintv(int64(g.ValueWidth(v)))),
		jf("signed", jboolv(g.ValueSigned(v))),
		jf("ty", jstr(g.ValueType(v).String())),
		jf("isInput", jboolv(g.ValueIsInput(v))),
		jf("isOutput", jboolv(g.ValueIsOutput(v))),
		jf("isInout", jboolv(in || out || oe)),
	}
	if def := g.ValueDefiningOp(v); def.Valid() {
		fields = append(fields, jf("def", jstr(g.Text(g.OpSymbol(def)))))
	}
	users := g.ValueUsers(v)
	userItems := make([]jnode, len(users))
	for i, u := range users {
		userItems[i] = jobjv(
			jf("op", jstr(g.Text(g.OpSymbol(u.Op)))),
			jf("i", jintv(int64(u.Index))),
		)
	}
	fields = append(fields, jf("users", jarrv(userItems...)))
	if loc, ok := srcLocNode(g.ValueSrcLoc(v)); ok {
		fields = append(fields, jf("srcLoc", loc))
	}
	return jobjv(fields...)
}

func opNode(g *Graph, op OperationID) jnode {
	operands := g.OpOperands(op)
	operandSyms := make([]string, len(operands))
	for i, v := range operands {
		operandSyms[i] = g.Text(g.ValueSymbol(v))
	}
	results := g.OpResults(op)
	resultSyms := make([]string, len(results))
	for i, v := range results {
		resultSyms[i] = g.Text(g.ValueSymbol(v))
	}
	fields := []jfield{
		jf("sym", jstr(g.Text(g.OpSymbol(op)))),
		jf("kind", jstr(g.OpKind(op).String())),
		jf("in", jstrarr(operandSyms)),
		jf("out", jstrarr(resultSyms)),
		jf("attrs", attrMapNode(g, op)),
	}
	if loc, ok := srcLocNode(g.OpSrcLoc(op)); ok {
		fields = append(fields, jf("srcLoc", loc))
	}
	return jobjv(fields...)
}

func portsNode(g *Graph) jnode {
	in := make(map[string]string)
	for _, sym := range g.InputPorts() {
		v, _ := g.InputPortValue(sym)
		in[g.Text(sym)] = g.Text(g.ValueSymbol(v))
	}
	out := make(map[string]string)
	for _, sym := range g.OutputPorts() {
		v, _ := g.OutputPortValue(sym)
		out[g.Text(sym)] = g.Text(g.ValueSymbol(v))
	}
	inout := make(map[string]InoutTriple)
	for _, sym := range g.InoutPorts() {
		t, _ := g.InoutPortValue(sym)
		inout[g.Text(sym)] = t
	}

	inKeys := sortedKeys(in)
	inFields := make([]jfield, len(inKeys))
	for i, k := range inKeys {
		inFields[i] = jf(k, jstr(in[k]))
	}
	outKeys := sortedKeys(out)
	outFields := make([]jfield, len(outKeys))
	for i, k := range outKeys {
		outFields[i] = jf(k, jstr(out[k]))
	}
	inoutKeys := sortedKeys(inout)
	inoutFields := make([]jfield, len(inoutKeys))
	for i, k := range inoutKeys {
		t := inout[k]
		inoutFields[i] = jf(k, jobjv(
			jf("in", jstr(g.Text(g.ValueSymbol(t.In)))),
			jf("out", jstr(g.Text(g.ValueSymbol(t.Out)))),
			jf("oe", jstr(g.Text(g.ValueSymbol(t.OE)))),
		))
	}

	return jobjv(
		jf("in", jobjv(inFields...)),
		jf("out", jobjv(outFields...)),
		jf("inout", jobjv(inoutFields...)),
	)
}

func graphNode(g *Graph) jnode {
	values := g.Values()
	valItems := make([]jnode, len(values))
	for i, v := range values {
		valItems[i] = valueNode(g, v)
	}
	ops := g.Operations()
	opItems := make([]jnode, len(ops))
	for i, op := range ops {
		opItems[i] = opNode(g, op)
	}
	declaredSyms := make([]string, 0, len(g.DeclaredSymbols()))
	for _, sym := range g.DeclaredSymbols() {
		declaredSyms = append(declaredSyms, g.Text(sym))
	}
	sortStrings(declaredSyms)

	return jobjv(
		jf("name", jstr(g.Name())),
		jf("vals", jarrv(valItems...)),
		jf("ports", portsNode(g)),
		jf("ops", jarrv(opItems...)),
		jf("declared", jstrarr(declaredSyms)),
	)
}

func netlistNode(nl *Netlist) jnode {
	graphs := nl.Graphs()
	graphItems := make([]jnode, len(graphs))
	for i, g := range graphs {
		graphItems[i] = graphNode(g)
	}
	aliases := nl.Aliases()
	aliasKeys := sortedKeys(aliases)
	aliasFields := make([]jfield, len(aliasKeys))
	for i, k := range aliasKeys {
		aliasFields[i] = jf(k, jstr(aliases[k]))
	}
	return jobjv(
		jf("graphs", jarrv(graphItems...)),
		jf("tops", jstrarr(nl.Tops())),
		jf("aliases", jobjv(aliasFields...)),
	)
}
