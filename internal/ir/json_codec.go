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
//
// This file, json_node.go, json_encode.go and json_decode.go together
// are the graph store's wire format: a deterministic writer over
// github.com/json-iterator/go's low-level stream primitives, and a
// strict reader over github.com/goccy/go-json that re-establishes every
// structural invariant before handing back a graph.
//
// Byte-reproducibility matters here more than raw throughput: two
// encodes of the same netlist must agree byte for byte regardless of Go
// map iteration order, so every map-shaped section (ports, attributes)
// is sorted by key before it is written, and the same sorted order is
// re-applied on decode so a decode-then-encode round trip is also
// byte-stable.

package ir

import (
	"bytes"
	"sort"

	goccyjson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/erigontech/grh/internal/grherrors"
)

// PrintMode selects the codec's output formatting. It never changes the
// logical content, only whitespace.
type PrintMode int

const (
	// Compact emits the smallest possible document: no insignificant
	// whitespace anywhere.
	Compact PrintMode = iota
	// Pretty indents every nested object and array, one field per line,
	// regardless of how small its contents are.
	Pretty
	// PrettyCompact indents like Pretty but collapses any object or
	// array whose direct children are all scalars onto a single line,
	// which keeps small leaf records like {"file":"a.sv","line":1,"col":2}
	// compact while still breaking up the top-level arrays of values and
	// ops (a value record holds a "users" array, so it is expanded).
	PrettyCompact
)

var streamCfg = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonString escapes s exactly as the standard library would, using
// jsoniter's stream writer for the primitive rather than hand-rolling
// escaping rules.
func jsonString(s string) string {
	buf := &bytes.Buffer{}
	stream := jsoniter.NewStream(streamCfg, buf, 32)
	stream.WriteString(s)
	stream.Flush()
	return buf.String()
}

func jsonInt(i int64) string {
	buf := &bytes.Buffer{}
	stream := jsoniter.NewStream(streamCfg, buf, 32)
	stream.WriteInt64(i)
	stream.Flush()
	return buf.String()
}

func jsonFloat(f float64) string {
	buf := &bytes.Buffer{}
	stream := jsoniter.NewStream(streamCfg, buf, 32)
	stream.WriteFloat64(f)
	stream.Flush()
	return buf.String()
}

func jsonBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// EncodeGraph renders a single graph to its wire document.
func EncodeGraph(g *Graph, mode PrintMode) []byte {
	n := graphNode(g)
	buf := &bytes.Buffer{}
	writeNode(buf, n, mode, 0)
	return buf.Bytes()
}

// EncodeNetlist renders an entire netlist (graphs, tops, aliases) to its
// wire document.
func EncodeNetlist(nl *Netlist, mode PrintMode) []byte {
	n := netlistNode(nl)
	buf := &bytes.Buffer{}
	writeNode(buf, n, mode, 0)
	return buf.Bytes()
}

// DecodeGraph parses a single-graph document, re-establishing every
// structural invariant via Graph.CheckInvariants before returning.
func DecodeGraph(data []byte) (*Graph, error) {
	var w wireGraph
	dec := goccyjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(grherrors.ErrInvalidDocument, err.Error())
	}
	return buildGraph(w)
}

// DecodeNetlist parses a netlist document.
func DecodeNetlist(data []byte) (*Netlist, error) {
	var w wireNetlist
	dec := goccyjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(grherrors.ErrInvalidDocument, err.Error())
	}
	nl := NewNetlist()
	for _, wg := range w.Graphs {
		g, err := buildGraph(wg)
		if err != nil {
			return nil, err
		}
		if err := nl.AddGraph(g); err != nil {
			return nil, err
		}
	}
	for alias, primary := range w.Aliases {
		if err := nl.AddAlias(alias, primary); err != nil {
			return nil, err
		}
	}
	for _, top := range w.Tops {
		if err := nl.MarkAsTop(top); err != nil {
			return nil, err
		}
	}
	return nl, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortStrings(s []string) { sort.Strings(s) }
