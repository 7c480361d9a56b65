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

import "bytes"

type jkind uint8

const (
	jkString jkind = iota
	jkRaw          // pre-formatted number/bool/null literal
	jkObject
	jkArray
)

// jnode is a minimal ordered JSON value tree. Objects keep their fields
// in the order the caller supplied them, which is always either
// insertion order (vals, ops, declared) or a pre-sorted lexicographic
// order (ports, attrs) computed by the caller before building the node.
type jnode struct {
	kind jkind
	str  string // jkString: unescaped string content; jkRaw: literal text
	obj  []jfield
	arr  []jnode
}

type jfield struct {
	key string
	val jnode
}

func jstr(s string) jnode        { return jnode{kind: jkString, str: s} }
func jintv(i int64) jnode        { return jnode{kind: jkRaw, str: jsonInt(i)} }
func jfloatv(f float64) jnode    { return jnode{kind: jkRaw, str: jsonFloat(f)} }
func jboolv(b bool) jnode        { return jnode{kind: jkRaw, str: jsonBool(b)} }
func jnullv() jnode              { return jnode{kind: jkRaw, str: "null"} }
func jarrv(items ...jnode) jnode { return jnode{kind: jkArray, arr: items} }

func jobjv(fields ...jfield) jnode { return jnode{kind: jkObject, obj: fields} }
func jf(key string, val jnode) jfield {
	return jfield{key: key, val: val}
}

func jstrarr(items []string) jnode {
	out := make([]jnode, len(items))
	for i, s := range items {
		out[i] = jstr(s)
	}
	return jarrv(out...)
}

func isScalar(n jnode) bool { return n.kind == jkString || n.kind == jkRaw }

func writeNode(buf *bytes.Buffer, n jnode, mode PrintMode, depth int) {
	switch n.kind {
	case jkString:
		buf.WriteString(jsonString(n.str))
	case jkRaw:
		buf.WriteString(n.str)
	case jkObject:
		writeObject(buf, n.obj, mode, depth)
	case jkArray:
		writeArray(buf, n.arr, mode, depth)
	}
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func writeObject(buf *bytes.Buffer, fields []jfield, mode PrintMode, depth int) {
	if len(fields) == 0 {
		buf.WriteString("{}")
		return
	}
	inline := mode == Compact || (mode == PrettyCompact && isLeafFields(fields))
	if inline {
		buf.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(jsonString(f.key))
			buf.WriteByte(':')
			writeNode(buf, f.val, mode, depth)
		}
		buf.WriteByte('}')
		return
	}
	buf.WriteString("{\n")
	for i, f := range fields {
		indent(buf, depth+1)
		buf.WriteString(jsonString(f.key))
		buf.WriteString(": ")
		writeNode(buf, f.val, mode, depth+1)
		if i < len(fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte('}')
}

func isLeafFields(fields []jfield) bool {
	for _, f := range fields {
		if !isScalar(f.val) {
			return false
		}
	}
	return true
}

func writeArray(buf *bytes.Buffer, items []jnode, mode PrintMode, depth int) {
	if len(items) == 0 {
		buf.WriteString("[]")
		return
	}
	inline := mode == Compact || (mode == PrettyCompact && isLeafItems(items))
	if inline {
		buf.WriteByte('[')
		for i, e := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNode(buf, e, mode, depth)
		}
		buf.WriteByte(']')
		return
	}
	buf.WriteString("[\n")
	for i, e := range items {
		indent(buf, depth+1)
		writeNode(buf, e, mode, depth+1)
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte(']')
}

func isLeafItems(items []jnode) bool {
	for _, e := range items {
		if !isScalar(e) {
			return false
		}
	}
	return true
}
