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

import "math"

// AttrKind discriminates the closed sum type an AttributeValue holds.
type AttrKind uint8

const (
	AttrBool AttrKind = iota
	AttrInt
	AttrDouble
	AttrString
	AttrBoolArray
	AttrIntArray
	AttrDoubleArray
	AttrStringArray
)

// KindTag returns the wire-format tag used by the JSON codec.
func (k AttrKind) KindTag() string {
	switch k {
	case AttrBool:
		return "bool"
	case AttrInt:
		return "int"
	case AttrDouble:
		return "double"
	case AttrString:
		return "string"
	case AttrBoolArray:
		return "bool[]"
	case AttrIntArray:
		return "int[]"
	case AttrDoubleArray:
		return "double[]"
	case AttrStringArray:
		return "string[]"
	default:
		return "?"
	}
}

// AttrKindFromTag inverts KindTag, reporting ok=false for an unrecognized
// tag (§4.4 Parse: "unknown attribute kinds" must be rejected).
func AttrKindFromTag(tag string) (AttrKind, bool) {
	switch tag {
	case "bool":
		return AttrBool, true
	case "int":
		return AttrInt, true
	case "double":
		return AttrDouble, true
	case "string":
		return AttrString, true
	case "bool[]":
		return AttrBoolArray, true
	case "int[]":
		return AttrIntArray, true
	case "double[]":
		return AttrDoubleArray, true
	case "string[]":
		return AttrStringArray, true
	default:
		return 0, false
	}
}

// AttributeValue is a closed tagged union over bool, i64, f64, string and
// homogeneous arrays of each.
type AttributeValue struct {
	kind      AttrKind
	b         bool
	i         int64
	f         float64
	s         string
	boolArr   []bool
	intArr    []int64
	doubleArr []float64
	stringArr []string
}

func BoolAttr(v bool) AttributeValue      { return AttributeValue{kind: AttrBool, b: v} }
func IntAttr(v int64) AttributeValue      { return AttributeValue{kind: AttrInt, i: v} }
func DoubleAttr(v float64) AttributeValue { return AttributeValue{kind: AttrDouble, f: v} }
func StringAttr(v string) AttributeValue  { return AttributeValue{kind: AttrString, s: v} }

func BoolArrayAttr(v []bool) AttributeValue {
	return AttributeValue{kind: AttrBoolArray, boolArr: append([]bool(nil), v...)}
}
func IntArrayAttr(v []int64) AttributeValue {
	return AttributeValue{kind: AttrIntArray, intArr: append([]int64(nil), v...)}
}
func DoubleArrayAttr(v []float64) AttributeValue {
	return AttributeValue{kind: AttrDoubleArray, doubleArr: append([]float64(nil), v...)}
}
func StringArrayAttr(v []string) AttributeValue {
	return AttributeValue{kind: AttrStringArray, stringArr: append([]string(nil), v...)}
}

func (a AttributeValue) Kind() AttrKind         { return a.kind }
func (a AttributeValue) Bool() bool             { return a.b }
func (a AttributeValue) Int() int64             { return a.i }
func (a AttributeValue) Double() float64        { return a.f }
func (a AttributeValue) String() string         { return a.s }
func (a AttributeValue) BoolArray() []bool      { return a.boolArr }
func (a AttributeValue) IntArray() []int64      { return a.intArr }
func (a AttributeValue) DoubleArray() []float64 { return a.doubleArr }
func (a AttributeValue) StringArray() []string  { return a.stringArr }

// IsJSONSerializable reports whether every f64 this attribute carries is
// finite. Non-finite values (NaN, +/-Inf) fail this predicate scalar or
// array alike (§3.4).
func (a AttributeValue) IsJSONSerializable() bool {
	switch a.kind {
	case AttrDouble:
		return !math.IsNaN(a.f) && !math.IsInf(a.f, 0)
	case AttrDoubleArray:
		for _, v := range a.doubleArr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// AttrMap is an ordered (insertion-order) symbol -> AttributeValue map.
type AttrMap struct {
	order []SymbolID
	vals  map[SymbolID]AttributeValue
}

func newAttrMap() AttrMap {
	return AttrMap{vals: make(map[SymbolID]AttributeValue)}
}

// Set stores key->val, preserving first-insertion order on repeated sets.
func (m *AttrMap) Set(key SymbolID, val AttributeValue) {
	if m.vals == nil {
		m.vals = make(map[SymbolID]AttributeValue)
	}
	if _, exists := m.vals[key]; !exists {
		m.order = append(m.order, key)
	}
	m.vals[key] = val
}

func (m AttrMap) Get(key SymbolID) (AttributeValue, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m AttrMap) Keys() []SymbolID {
	return append([]SymbolID(nil), m.order...)
}

func (m AttrMap) Len() int { return len(m.order) }
