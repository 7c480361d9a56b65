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

// Package grherrors declares the closed set of sentinel errors the graph
// store, netlist, and JSON codec can fail with. Callers match on these
// with errors.Is rather than on formatted strings.
package grherrors

import "errors"

var (
	ErrWidthNotPositive    = errors.New("grh: value width must be positive")
	ErrDuplicateSymbol     = errors.New("grh: symbol already exists in this scope")
	ErrUnknownSymbol       = errors.New("grh: symbol not found")
	ErrInvalidID           = errors.New("grh: invalid id")
	ErrCrossGraphEdge      = errors.New("grh: operand or result belongs to a different graph")
	ErrDoubleDriver        = errors.New("grh: value already has a defining operation")
	ErrEraseHasUsers       = errors.New("grh: cannot erase value with remaining users")
	ErrEraseIsResult       = errors.New("grh: cannot erase value that is an operation result")
	ErrEraseIsPort         = errors.New("grh: cannot erase value bound to a port")
	ErrEraseOpHasUsers     = errors.New("grh: cannot erase operation whose results still have users")
	ErrEraseOpBoundToPort  = errors.New("grh: cannot erase operation with a port-bound result")
	ErrNonSerializableAttr = errors.New("grh: attribute value is not JSON-serializable")
	ErrUnknownAttrKind     = errors.New("grh: unrecognized attribute kind tag")
	ErrNestedAttrArray     = errors.New("grh: attribute arrays may not contain nested containers")
	ErrDuplicatePortName   = errors.New("grh: port name already bound in this class")
	ErrUnknownPort         = errors.New("grh: no port with that name")
	ErrPortRoleConflict    = errors.New("grh: value cannot hold conflicting port roles")
	ErrMissingAttribute    = errors.New("grh: required attribute is missing")
	ErrInvalidAttribute    = errors.New("grh: attribute value has an invalid shape for this operation kind")
	ErrUnknownGraph        = errors.New("grh: no graph with that symbol")
	ErrDuplicateGraph      = errors.New("grh: graph symbol already registered in this netlist")
	ErrDanglingReference   = errors.New("grh: reference to an unknown value or operation symbol")
	ErrInvalidDocument     = errors.New("grh: malformed JSON document")
	ErrOperandCountInvalid = errors.New("grh: operand count invalid for this operation kind")
	ErrResultCountInvalid  = errors.New("grh: result count invalid for this operation kind")
)
