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
	"github.com/pkg/errors"

	"github.com/erigontech/grh/internal/grherrors"
)

// ValidateStructure enforces the kind-specific structural rules of §3.6
// item 9. It is called by CreateOperation's callers at the point an
// operation is considered "complete" (fold/xmr/dce call it defensively
// before relying on an attribute) and unconditionally by the JSON codec's
// parse path.
func ValidateStructure(g *Graph, op OperationID) error {
	kind := g.OpKind(op)
	switch kind {
	case OpConstant:
		if g.OpResultCount(op) != 1 {
			return errors.Wrap(grherrors.ErrResultCountInvalid, "Constant must have exactly one result")
		}
		if _, ok := g.GetAttrByName(op, "constValue"); !ok {
			return errors.Wrap(grherrors.ErrMissingAttribute, "Constant requires constValue")
		}
	case OpReplicate:
		attr, ok := g.GetAttrByName(op, "rep")
		if !ok || attr.Kind() != AttrInt {
			return errors.Wrap(grherrors.ErrMissingAttribute, "Replicate requires integer rep")
		}
		if attr.Int() <= 0 {
			return errors.Wrap(grherrors.ErrInvalidAttribute, "Replicate rep must be positive")
		}
	case OpSliceStatic:
		startAttr, ok1 := g.GetAttrByName(op, "sliceStart")
		endAttr, ok2 := g.GetAttrByName(op, "sliceEnd")
		if !ok1 || !ok2 {
			return errors.Wrap(grherrors.ErrMissingAttribute, "SliceStatic requires sliceStart and sliceEnd")
		}
		if startAttr.Int() < 0 || endAttr.Int() < startAttr.Int() {
			return errors.Wrap(grherrors.ErrInvalidAttribute, "SliceStatic requires 0 <= sliceStart <= sliceEnd")
		}
	case OpSliceDynamic:
		if _, ok := g.GetAttrByName(op, "sliceWidth"); !ok {
			return errors.Wrap(grherrors.ErrMissingAttribute, "SliceDynamic requires sliceWidth")
		}
	case OpMemoryWritePort, OpRegisterWritePort, OpLatchWritePort:
		if kind == OpMemoryWritePort {
			if _, ok := g.GetAttrByName(op, "memSymbol"); !ok {
				return errors.Wrap(grherrors.ErrMissingAttribute, "MemoryWritePort requires memSymbol")
			}
		}
		if kind == OpRegisterWritePort || kind == OpMemoryWritePort {
			attr, ok := g.GetAttrByName(op, "eventEdge")
			if !ok || attr.Kind() != AttrStringArray || len(attr.StringArray()) == 0 {
				return errors.Wrap(grherrors.ErrMissingAttribute, "sequential write port requires non-empty eventEdge")
			}
		}
	}
	return nil
}
