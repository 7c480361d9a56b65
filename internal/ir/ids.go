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

// Package ir holds the mutable graph store: the symbol table, attribute
// model, value/operation arenas, the netlist, and their invariants. Only
// the read-only GraphView (view.go) and wire types are re-exported from
// pkg/ir; everything else is a deliberately internal mutation surface.
package ir

import "fmt"

// SymbolID is a dense per-graph interned-string handle.
type SymbolID int32

// InvalidSymbolID is the reserved sentinel for "no symbol".
const InvalidSymbolID SymbolID = -1

func (s SymbolID) Valid() bool { return s >= 0 }

// ValueID is a dense, non-reusable index into a graph's value arena.
type ValueID int32

const InvalidValueID ValueID = -1

func (v ValueID) Valid() bool { return v >= 0 }

// OperationID is a dense, non-reusable index into a graph's operation arena.
type OperationID int32

const InvalidOperationID OperationID = -1

func (o OperationID) Valid() bool { return o >= 0 }

// GraphID is a dense, non-reusable index into a netlist's graph arena.
type GraphID int32

const InvalidGraphID GraphID = -1

func (g GraphID) Valid() bool { return g >= 0 }

// ValueUser records one use site: operand index i of operation Op reads
// the value this entry is attached to.
type ValueUser struct {
	Op    OperationID
	Index int
}

func (u ValueUser) String() string {
	return fmt.Sprintf("op%d[%d]", u.Op, u.Index)
}
