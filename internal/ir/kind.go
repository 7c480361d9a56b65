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

// OperationKind is the closed enum of operation node kinds the graph IR
// supports. Foldability, side-effect status, and structural validation are
// table lookups over this enum (§9 "Op kinds"), never virtual dispatch.
type OperationKind uint8

const (
	OpUnknown OperationKind = iota

	// Arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg

	// Bitwise
	OpAnd
	OpOr
	OpXor
	OpXnor
	OpNot

	// Reductions
	OpReduceAnd
	OpReduceOr
	OpReduceXor
	OpReduceNand
	OpReduceNor
	OpReduceXnor

	// Shifts
	OpShl
	OpLShr
	OpAShr

	// Logical
	OpLogicalAnd
	OpLogicalOr
	OpLogicalNot

	// Comparisons
	OpEq
	OpNe
	OpCaseEq
	OpCaseNe
	OpWildcardEq
	OpWildcardNe
	OpULt
	OpULe
	OpUGt
	OpUGe
	OpSLt
	OpSLe
	OpSGt
	OpSGe

	OpMux
	OpAssign
	OpConcat
	OpReplicate
	OpSliceStatic
	OpSliceDynamic
	OpSliceArray
	OpConstant

	// Memory / storage
	OpMemory
	OpMemoryReadPort
	OpMemoryWritePort
	OpRegister
	OpRegisterReadPort
	OpRegisterWritePort
	OpLatch
	OpLatchReadPort
	OpLatchWritePort

	OpInstance
	OpBlackbox
	OpSystemFunction
	OpSystemTask
	OpDisplay
	OpAssert
	OpDpicImport
	OpDpicCall
	OpXMRRead
	OpXMRWrite
)

var kindNames = map[OperationKind]string{
	OpUnknown: "Unknown", OpAdd: "Add", OpSub: "Sub", OpMul: "Mul", OpDiv: "Div", OpMod: "Mod", OpNeg: "Neg",
	OpAnd: "And", OpOr: "Or", OpXor: "Xor", OpXnor: "Xnor", OpNot: "Not",
	OpReduceAnd: "ReduceAnd", OpReduceOr: "ReduceOr", OpReduceXor: "ReduceXor",
	OpReduceNand: "ReduceNand", OpReduceNor: "ReduceNor", OpReduceXnor: "ReduceXnor",
	OpShl: "Shl", OpLShr: "LShr", OpAShr: "AShr",
	OpLogicalAnd: "LogicalAnd", OpLogicalOr: "LogicalOr", OpLogicalNot: "LogicalNot",
	OpEq: "Eq", OpNe: "Ne", OpCaseEq: "CaseEq", OpCaseNe: "CaseNe",
	OpWildcardEq: "WildcardEq", OpWildcardNe: "WildcardNe",
	OpULt: "ULt", OpULe: "ULe", OpUGt: "UGt", OpUGe: "UGe",
	OpSLt: "SLt", OpSLe: "SLe", OpSGt: "SGt", OpSGe: "SGe",
	OpMux: "Mux", OpAssign: "Assign", OpConcat: "Concat", OpReplicate: "Replicate",
	OpSliceStatic: "SliceStatic", OpSliceDynamic: "SliceDynamic", OpSliceArray: "SliceArray",
	OpConstant: "Constant",
	OpMemory:   "Memory", OpMemoryReadPort: "MemoryReadPort", OpMemoryWritePort: "MemoryWritePort",
	OpRegister: "Register", OpRegisterReadPort: "RegisterReadPort", OpRegisterWritePort: "RegisterWritePort",
	OpLatch: "Latch", OpLatchReadPort: "LatchReadPort", OpLatchWritePort: "LatchWritePort",
	OpInstance: "Instance", OpBlackbox: "Blackbox",
	OpSystemFunction: "SystemFunction", OpSystemTask: "SystemTask",
	OpDisplay: "Display", OpAssert: "Assert",
	OpDpicImport: "DpicImport", OpDpicCall: "DpicCall",
	OpXMRRead: "XMRRead", OpXMRWrite: "XMRWrite",
}

var nameToKind = func() map[string]OperationKind {
	m := make(map[string]OperationKind, len(kindNames))
	for k, v := range kindNames {
		m[v] = k
	}
	return m
}()

func (k OperationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// KindFromString inverts String, reporting ok=false for an unrecognized name.
func KindFromString(s string) (OperationKind, bool) {
	k, ok := nameToKind[s]
	return k, ok
}

// sideEffecting is the closed set of kinds that may never be removed by DCE
// regardless of use count (§4.7 "Side-effect taxonomy").
var sideEffecting = map[OperationKind]bool{
	OpMemory: true, OpMemoryWritePort: true,
	OpRegisterWritePort: true, OpLatchWritePort: true,
	OpInstance: true, OpBlackbox: true,
	OpSystemFunction: true, OpSystemTask: true,
	OpDisplay: true, OpAssert: true,
	OpDpicImport: true, OpDpicCall: true,
}

// IsSideEffecting reports whether k can never be eliminated purely for
// lack of users.
func IsSideEffecting(k OperationKind) bool { return sideEffecting[k] }

// foldable is the closed set of kinds the constant-folding pass may reduce
// to a Constant when every operand is known (§4.6 "Foldable operations").
// OpSystemFunction is handled separately: it folds only when explicitly
// whitelisted and side-effect-free (see pass/fold).
var foldable = map[OperationKind]bool{
	OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpMod: true, OpNeg: true,
	OpAnd: true, OpOr: true, OpXor: true, OpXnor: true, OpNot: true,
	OpReduceAnd: true, OpReduceOr: true, OpReduceXor: true,
	OpReduceNand: true, OpReduceNor: true, OpReduceXnor: true,
	OpShl: true, OpLShr: true, OpAShr: true,
	OpLogicalAnd: true, OpLogicalOr: true, OpLogicalNot: true,
	OpEq: true, OpNe: true, OpCaseEq: true, OpCaseNe: true,
	OpWildcardEq: true, OpWildcardNe: true,
	OpULt: true, OpULe: true, OpUGt: true, OpUGe: true,
	OpSLt: true, OpSLe: true, OpSGt: true, OpSGe: true,
	OpMux: true, OpAssign: true, OpConcat: true, OpReplicate: true,
	OpSliceStatic: true, OpSliceDynamic: true,
}

// IsFoldable reports whether k is a candidate for constant folding, ignoring
// the SystemFunction whitelist special case.
func IsFoldable(k OperationKind) bool { return foldable[k] }

// IsStorage reports whether k denotes a storage element an XMR path can
// terminate on (§4.8 "Storage classification").
func IsStorage(k OperationKind) bool {
	switch k {
	case OpRegister, OpLatch, OpMemory:
		return true
	default:
		return false
	}
}
