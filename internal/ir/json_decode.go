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
	goccyjson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/erigontech/grh/internal/grherrors"
)

type wireSrcLoc struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

type wireUser struct {
	Op string `json:"op"`
	I  int    `json:"i"`
}

type wireValue struct {
	Sym      string      `json:"sym"`
	Width    int         `json:"width"`
	Signed   bool        `json:"signed"`
	Ty       string      `json:"ty"`
	IsInput  bool        `json:"isInput"`
	IsOutput bool        `json:"isOutput"`
	IsInout  bool        `json:"isInout"`
	Def      *string     `json:"def,omitempty"`
	Users    []wireUser  `json:"users"`
	SrcLoc   *wireSrcLoc `json:"srcLoc,omitempty"`
}

type wireAttrValue struct {
	K  string                 `json:"k"`
	V  goccyjson.RawMessage   `json:"v,omitempty"`
	VS []goccyjson.RawMessage `json:"vs,omitempty"`
}

type wireOp struct {
	Sym    string                   `json:"sym"`
	Kind   string                   `json:"kind"`
	In     []string                 `json:"in"`
	Out    []string                 `json:"out"`
	Attrs  map[string]wireAttrValue `json:"attrs"`
	SrcLoc *wireSrcLoc              `json:"srcLoc,omitempty"`
}

type wireInout struct {
	In  string `json:"in"`
	Out string `json:"out"`
	OE  string `json:"oe"`
}

type wirePorts struct {
	In    map[string]string    `json:"in"`
	Out   map[string]string    `json:"out"`
	Inout map[string]wireInout `json:"inout"`
}

type wireGraph struct {
	Name     string      `json:"name"`
	Vals     []wireValue `json:"vals"`
	Ports    wirePorts   `json:"ports"`
	Ops      []wireOp    `json:"ops"`
	Declared []string    `json:"declared"`
}

type wireNetlist struct {
	Graphs  []wireGraph       `json:"graphs"`
	Tops    []string          `json:"tops"`
	Aliases map[string]string `json:"aliases"`
}

// isRawScalar reports whether raw holds a JSON scalar (string, number,
// bool, null) rather than an object or array. A nested container inside
// an attribute array is rejected: attributes only ever carry homogeneous
// flat arrays (§3.4).
func isRawScalar(raw goccyjson.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[', '{':
			return false
		default:
			return true
		}
	}
	return true
}

func decodeAttrValue(name string, w wireAttrValue) (AttributeValue, error) {
	kind, ok := AttrKindFromTag(w.K)
	if !ok {
		return AttributeValue{}, errors.Wrapf(grherrors.ErrUnknownAttrKind, "attribute %q kind %q", name, w.K)
	}
	switch kind {
	case AttrBool:
		var v bool
		if err := goccyjson.Unmarshal(w.V, &v); err != nil {
			return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
		}
		return BoolAttr(v), nil
	case AttrInt:
		var v int64
		if err := goccyjson.Unmarshal(w.V, &v); err != nil {
			return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
		}
		return IntAttr(v), nil
	case AttrDouble:
		var v float64
		if err := goccyjson.Unmarshal(w.V, &v); err != nil {
			return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
		}
		return DoubleAttr(v), nil
	case AttrString:
		var v string
		if err := goccyjson.Unmarshal(w.V, &v); err != nil {
			return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
		}
		return StringAttr(v), nil
	case AttrBoolArray:
		out := make([]bool, len(w.VS))
		for i, raw := range w.VS {
			if !isRawScalar(raw) {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrNestedAttrArray, "attribute %q element %d", name, i)
			}
			if err := goccyjson.Unmarshal(raw, &out[i]); err != nil {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
			}
		}
		return BoolArrayAttr(out), nil
	case AttrIntArray:
		out := make([]int64, len(w.VS))
		for i, raw := range w.VS {
			if !isRawScalar(raw) {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrNestedAttrArray, "attribute %q element %d", name, i)
			}
			if err := goccyjson.Unmarshal(raw, &out[i]); err != nil {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
			}
		}
		return IntArrayAttr(out), nil
	case AttrDoubleArray:
		out := make([]float64, len(w.VS))
		for i, raw := range w.VS {
			if !isRawScalar(raw) {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrNestedAttrArray, "attribute %q element %d", name, i)
			}
			if err := goccyjson.Unmarshal(raw, &out[i]); err != nil {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
			}
		}
		return DoubleArrayAttr(out), nil
	case AttrStringArray:
		out := make([]string, len(w.VS))
		for i, raw := range w.VS {
			if !isRawScalar(raw) {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrNestedAttrArray, "attribute %q element %d", name, i)
			}
			if err := goccyjson.Unmarshal(raw, &out[i]); err != nil {
				return AttributeValue{}, errors.Wrapf(grherrors.ErrInvalidDocument, "attribute %q: %v", name, err)
			}
		}
		return StringArrayAttr(out), nil
	}
	return AttributeValue{}, errors.Wrapf(grherrors.ErrUnknownAttrKind, "attribute %q kind %q", name, w.K)
}

func toSrcLoc(w *wireSrcLoc) *SrcLoc {
	if w == nil {
		return nil
	}
	return &SrcLoc{File: w.File, Line: w.Line, Col: w.Col}
}

// buildGraph replays a wireGraph through the ordinary mutation API so
// that every call re-checks the same invariants live construction does,
// then runs CheckInvariants as a final sweep (catches the invariants
// that only make sense once the whole graph exists, like dangling
// use-list entries across operations built out of textual order).
func buildGraph(w wireGraph) (*Graph, error) {
	g := NewGraph(w.Name)

	valueBySym := make(map[string]ValueID, len(w.Vals))
	for _, wv := range w.Vals {
		ty, ok := ValueTypeFromString(wv.Ty)
		if !ok {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: unknown type %q", wv.Sym, wv.Ty)
		}
		id, err := g.CreateValue(wv.Sym, wv.Width, wv.Signed, ty)
		if err != nil {
			return nil, err
		}
		valueBySym[wv.Sym] = id
		g.SetValueSrcLoc(id, toSrcLoc(wv.SrcLoc))
	}

	opBySym := make(map[string]OperationID, len(w.Ops))
	for _, wo := range w.Ops {
		kind, ok := KindFromString(wo.Kind)
		if !ok {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "operation %q: unknown kind %q", wo.Sym, wo.Kind)
		}
		id, err := g.CreateOperation(kind, wo.Sym)
		if err != nil {
			return nil, err
		}
		opBySym[wo.Sym] = id
	}

	for _, wo := range w.Ops {
		op := opBySym[wo.Sym]
		for _, sym := range wo.In {
			v, ok := valueBySym[sym]
			if !ok {
				return nil, errors.Wrapf(grherrors.ErrDanglingReference, "operation %q operand %q", wo.Sym, sym)
			}
			if err := g.AddOperand(op, v); err != nil {
				return nil, err
			}
		}
		for _, sym := range wo.Out {
			v, ok := valueBySym[sym]
			if !ok {
				return nil, errors.Wrapf(grherrors.ErrDanglingReference, "operation %q result %q", wo.Sym, sym)
			}
			if err := g.AddResult(op, v); err != nil {
				return nil, err
			}
		}
		for _, name := range sortedKeys(wo.Attrs) {
			av, err := decodeAttrValue(name, wo.Attrs[name])
			if err != nil {
				return nil, err
			}
			if err := g.SetAttrByName(op, name, av); err != nil {
				return nil, err
			}
		}
		g.SetOpSrcLoc(op, toSrcLoc(wo.SrcLoc))
	}

	for _, name := range sortedKeys(w.Ports.In) {
		v, ok := valueBySym[w.Ports.In[name]]
		if !ok {
			return nil, errors.Wrapf(grherrors.ErrDanglingReference, "input port %q", name)
		}
		if err := g.BindInputPort(name, v); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(w.Ports.Out) {
		v, ok := valueBySym[w.Ports.Out[name]]
		if !ok {
			return nil, errors.Wrapf(grherrors.ErrDanglingReference, "output port %q", name)
		}
		if err := g.BindOutputPort(name, v); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(w.Ports.Inout) {
		t := w.Ports.Inout[name]
		in, ok1 := valueBySym[t.In]
		out, ok2 := valueBySym[t.Out]
		oe, ok3 := valueBySym[t.OE]
		if !ok1 || !ok2 || !ok3 {
			return nil, errors.Wrapf(grherrors.ErrDanglingReference, "inout port %q", name)
		}
		if err := g.BindInoutPort(name, in, out, oe); err != nil {
			return nil, err
		}
	}

	for _, sym := range w.Declared {
		v, ok := valueBySym[sym]
		if !ok {
			return nil, errors.Wrapf(grherrors.ErrDanglingReference, "declared symbol %q", sym)
		}
		g.Declare(g.ValueSymbol(v))
	}

	for _, wv := range w.Vals {
		v := valueBySym[wv.Sym]
		actualUsers := g.ValueUsers(v)
		if len(wv.Users) != len(actualUsers) {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: users list does not match operand references", wv.Sym)
		}
		for _, u := range wv.Users {
			op, ok := opBySym[u.Op]
			if !ok {
				return nil, errors.Wrapf(grherrors.ErrDanglingReference, "value %q user %q", wv.Sym, u.Op)
			}
			found := false
			for _, au := range actualUsers {
				if au.Op == op && au.Index == u.I {
					found = true
					break
				}
			}
			if !found {
				return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: declared user %s[%d] not found among operands", wv.Sym, u.Op, u.I)
			}
		}
		if wv.IsInput != g.ValueIsInput(v) {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: isInput flag does not match port bindings", wv.Sym)
		}
		if wv.IsOutput != g.ValueIsOutput(v) {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: isOutput flag does not match port bindings", wv.Sym)
		}
		in, out, oe := g.ValueInoutRoles(v)
		if wv.IsInout != (in || out || oe) {
			return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: isInout flag does not match port bindings", wv.Sym)
		}
		if wv.Def != nil {
			def := g.ValueDefiningOp(v)
			if !def.Valid() || g.Text(g.OpSymbol(def)) != *wv.Def {
				return nil, errors.Wrapf(grherrors.ErrInvalidDocument, "value %q: def does not match recorded defining operation", wv.Sym)
			}
		}
	}

	if err := g.CheckInvariants(); err != nil {
		return nil, errors.Wrapf(err, "graph %q", w.Name)
	}
	return g, nil
}
