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

package fold

import (
	"fmt"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/svint"
)

// evalOp computes the folded value of op given its already-resolved
// constant operands, or returns an error naming the reason folding was
// skipped (a missing/invalid attribute, an out-of-range index, ...).
// The result always carries the defining result value's declared width
// and signedness.
func evalOp(g *ir.Graph, op ir.OperationID, kind ir.OperationKind, ops []svint.SVInt) (svint.SVInt, error) {
	result := g.OpResult(op, 0)
	width := g.ValueWidth(result)
	signed := g.ValueSigned(result)

	switch kind {
	case ir.OpAdd:
		return svint.Resize(svint.Add(ops[0], ops[1]), width, signed), nil
	case ir.OpSub:
		return svint.Resize(svint.Sub(ops[0], ops[1]), width, signed), nil
	case ir.OpMul:
		return svint.Resize(svint.Mul(ops[0], ops[1]), width, signed), nil
	case ir.OpDiv:
		return svint.Resize(svint.Div(ops[0], ops[1]), width, signed), nil
	case ir.OpMod:
		return svint.Resize(svint.Mod(ops[0], ops[1]), width, signed), nil
	case ir.OpNeg:
		return svint.Resize(svint.Neg(ops[0]), width, signed), nil

	case ir.OpAnd:
		return svint.Resize(svint.And(ops[0], ops[1]), width, signed), nil
	case ir.OpOr:
		return svint.Resize(svint.Or(ops[0], ops[1]), width, signed), nil
	case ir.OpXor:
		return svint.Resize(svint.Xor(ops[0], ops[1]), width, signed), nil
	case ir.OpXnor:
		return svint.Resize(svint.Xnor(ops[0], ops[1]), width, signed), nil
	case ir.OpNot:
		return svint.Resize(svint.Not(ops[0]), width, signed), nil

	case ir.OpReduceAnd:
		return svint.ReduceAnd(ops[0]), nil
	case ir.OpReduceOr:
		return svint.ReduceOr(ops[0]), nil
	case ir.OpReduceXor:
		return svint.ReduceXor(ops[0]), nil
	case ir.OpReduceNand:
		return svint.ReduceNand(ops[0]), nil
	case ir.OpReduceNor:
		return svint.ReduceNor(ops[0]), nil
	case ir.OpReduceXnor:
		return svint.ReduceXnor(ops[0]), nil

	case ir.OpShl:
		if ops[1].HasUnknown() {
			return svint.SVInt{}, fmt.Errorf("shift amount is unknown")
		}
		return svint.Resize(svint.Shl(ops[0], ops[1].KnownUint64()), width, signed), nil
	case ir.OpLShr:
		if ops[1].HasUnknown() {
			return svint.SVInt{}, fmt.Errorf("shift amount is unknown")
		}
		return svint.Resize(svint.LShr(ops[0], ops[1].KnownUint64()), width, signed), nil
	case ir.OpAShr:
		if ops[1].HasUnknown() {
			return svint.SVInt{}, fmt.Errorf("shift amount is unknown")
		}
		return svint.Resize(svint.AShr(ops[0], ops[1].KnownUint64()), width, signed), nil

	case ir.OpLogicalAnd:
		return boolOf(nonzero(ops[0]) && nonzero(ops[1])), nil
	case ir.OpLogicalOr:
		return boolOf(nonzero(ops[0]) || nonzero(ops[1])), nil
	case ir.OpLogicalNot:
		return boolOf(!nonzero(ops[0])), nil

	case ir.OpEq:
		return svint.Eq(ops[0], ops[1]), nil
	case ir.OpNe:
		return svint.Ne(ops[0], ops[1]), nil
	case ir.OpCaseEq:
		return svint.CaseEq(ops[0], ops[1]), nil
	case ir.OpCaseNe:
		return svint.CaseNe(ops[0], ops[1]), nil
	case ir.OpWildcardEq:
		return svint.WildcardEq(ops[0], ops[1]), nil
	case ir.OpWildcardNe:
		return svint.WildcardNe(ops[0], ops[1]), nil
	case ir.OpULt:
		return svint.ULt(ops[0], ops[1]), nil
	case ir.OpULe:
		return svint.ULe(ops[0], ops[1]), nil
	case ir.OpUGt:
		return svint.UGt(ops[0], ops[1]), nil
	case ir.OpUGe:
		return svint.UGe(ops[0], ops[1]), nil
	case ir.OpSLt:
		return svint.SLt(ops[0], ops[1]), nil
	case ir.OpSLe:
		return svint.SLe(ops[0], ops[1]), nil
	case ir.OpSGt:
		return svint.SGt(ops[0], ops[1]), nil
	case ir.OpSGe:
		return svint.SGe(ops[0], ops[1]), nil

	case ir.OpMux:
		return svint.Resize(svint.Mux(ops[0], ops[1], ops[2]), width, signed), nil
	case ir.OpAssign:
		return svint.Resize(ops[0], width, signed), nil
	case ir.OpConcat:
		return svint.Concat(ops...), nil
	case ir.OpReplicate:
		rep, ok := g.GetAttrByName(op, "rep")
		if !ok || rep.Kind() != ir.AttrInt || rep.Int() <= 0 {
			return svint.SVInt{}, fmt.Errorf("invalid or missing rep attribute")
		}
		return svint.Replicate(int(rep.Int()), ops[0]), nil
	case ir.OpSliceStatic:
		startAttr, ok1 := g.GetAttrByName(op, "sliceStart")
		endAttr, ok2 := g.GetAttrByName(op, "sliceEnd")
		if !ok1 || !ok2 || startAttr.Int() < 0 || endAttr.Int() < startAttr.Int() {
			return svint.SVInt{}, fmt.Errorf("invalid or missing slice bounds")
		}
		return svint.Slice(ops[0], int(startAttr.Int()), int(endAttr.Int())), nil
	case ir.OpSliceDynamic:
		widthAttr, ok := g.GetAttrByName(op, "sliceWidth")
		if !ok || widthAttr.Kind() != ir.AttrInt || widthAttr.Int() <= 0 {
			return svint.SVInt{}, fmt.Errorf("invalid or missing sliceWidth attribute")
		}
		if len(ops) < 2 {
			return svint.SVInt{}, fmt.Errorf("SliceDynamic requires a start operand")
		}
		if ops[1].HasUnknown() {
			return svint.SVInt{}, fmt.Errorf("dynamic slice start is unknown")
		}
		low := int(ops[1].KnownUint64())
		return svint.Slice(ops[0], low, low+int(widthAttr.Int())-1), nil

	case ir.OpSystemFunction:
		nameAttr, _ := g.GetAttrByName(op, "systemFunctionName")
		if nameAttr.String() == "clog2" {
			if ops[0].HasUnknown() {
				return svint.SVInt{}, fmt.Errorf("clog2 argument is unknown")
			}
			return svint.Resize(svint.FromUint64(width, signed, uint64(svint.Clog2(ops[0].KnownUint64()))), width, signed), nil
		}
		return svint.SVInt{}, fmt.Errorf("unsupported system function for folding")
	}
	return svint.SVInt{}, fmt.Errorf("unhandled foldable kind %s", kind)
}

func nonzero(v svint.SVInt) bool {
	if v.HasUnknown() {
		return false
	}
	return v.Known().Sign() != 0
}

func boolOf(b bool) svint.SVInt {
	if b {
		return svint.FromUint64(1, false, 1)
	}
	return svint.Zero(1, false)
}

// simplifySliceOfConcat implements phase 3: a SliceStatic over a Concat
// whose input widths align exactly with [low,high] on one input is
// replaced by that input directly.
func simplifySliceOfConcat(g *ir.Graph, st *stats) bool {
	changed := false
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpSliceStatic {
			continue
		}
		if g.OpOperandCount(op) != 1 || g.OpResultCount(op) != 1 {
			continue
		}
		result := g.OpResult(op, 0)
		if isProtected(g, result) {
			continue
		}
		operand := g.OpOperand(op, 0)
		defOp := g.ValueDefiningOp(operand)
		if !defOp.Valid() || g.OpKind(defOp) != ir.OpConcat {
			continue
		}
		startAttr, ok1 := g.GetAttrByName(op, "sliceStart")
		endAttr, ok2 := g.GetAttrByName(op, "sliceEnd")
		if !ok1 || !ok2 {
			continue
		}
		low, high := int(startAttr.Int()), int(endAttr.Int())
		parts := g.OpOperands(defOp)
		// parts are ordered MSB-first; compute each part's [partLow,
		// partHigh] in the concat's own LSB-0 coordinate space.
		bitPos := 0
		totalWidth := 0
		for _, part := range parts {
			totalWidth += g.ValueWidth(part)
		}
		cursor := totalWidth
		for _, part := range parts {
			w := g.ValueWidth(part)
			cursor -= w
			partLow, partHigh := cursor, cursor+w-1
			if partLow == low && partHigh == high &&
				g.ValueWidth(part) == g.ValueWidth(result) &&
				g.ValueSigned(part) == g.ValueSigned(result) {
				if err := g.ReplaceAllUses(result, part); err == nil {
					g.EraseOpUnchecked(op)
					st.sliceSimplified++
					st.opsErased++
					changed = true
				}
				break
			}
			bitPos += w
		}
		_ = bitPos
	}
	return changed
}

// simplifyUnsignedCompare implements phase 5: `u >= 0` and
// `u <= all-ones(width(u))` fold to 1'b1 for unsigned u.
func simplifyUnsignedCompare(g *ir.Graph, consts map[ir.ValueID]svint.SVInt, pool *constPool, st *stats) bool {
	changed := false
	for _, op := range g.Operations() {
		kind := g.OpKind(op)
		if kind != ir.OpUGe && kind != ir.OpULe {
			continue
		}
		if g.OpOperandCount(op) != 2 || g.OpResultCount(op) != 1 {
			continue
		}
		result := g.OpResult(op, 0)
		if isProtected(g, result) {
			continue
		}
		lhs, rhs := g.OpOperand(op, 0), g.OpOperand(op, 1)
		if g.ValueSigned(lhs) {
			continue
		}

		var matches bool
		switch kind {
		case ir.OpUGe:
			if c, ok := consts[rhs]; ok && !c.HasUnknown() && c.Known().Sign() == 0 {
				matches = true
			}
		case ir.OpULe:
			if c, ok := consts[rhs]; ok && !c.HasUnknown() {
				allOnes := svint.UMax(g.ValueWidth(lhs))
				if c.Width() == allOnes.Width() && c.Known().Cmp(allOnes.Known()) == 0 {
					matches = true
				}
			}
		}
		if !matches {
			continue
		}
		one := boolOf(true)
		newVal, minted, err := createConstant(g, pool, one, st)
		if err != nil {
			continue
		}
		if minted {
			consts[newVal] = one
		}
		if err := g.ReplaceAllUses(result, newVal); err != nil {
			continue
		}
		g.EraseOpUnchecked(op)
		st.unsignedCmp++
		st.opsErased++
		changed = true
	}
	return changed
}
