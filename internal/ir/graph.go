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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/erigontech/grh/internal/grherrors"
)

// InoutTriple is the (in, out, oe) value triple bound to an inout port.
type InoutTriple struct {
	In, Out, OE ValueID
}

// Graph is one module's lowered IR: a symbol table plus dense value and
// operation arenas with def-use bookkeeping. Values and operations are
// never reused once erased (erasure tombstones the dense ID in the
// erased-bitmap rather than freeing the arena slot) so that a pass's
// worklist snapshot stays valid across erasures within the same run.
type Graph struct {
	name string
	st   *symtab

	values []value
	ops    []operation

	erasedValues *roaringLite
	erasedOps    *roaringLite

	declared mapset.Set[SymbolID]

	inputOrder  []SymbolID
	inputPorts  map[SymbolID]ValueID
	outputOrder []SymbolID
	outputPorts map[SymbolID]ValueID
	inoutOrder  []SymbolID
	inoutPorts  map[SymbolID]InoutTriple
}

// NewGraph creates an empty graph named name (unique within its owning
// netlist; the netlist is responsible for that uniqueness check).
func NewGraph(name string) *Graph {
	return &Graph{
		name:         name,
		st:           newSymtab(),
		erasedValues: newRoaringLite(),
		erasedOps:    newRoaringLite(),
		declared:     mapset.NewThreadUnsafeSet[SymbolID](),
		inputPorts:   make(map[SymbolID]ValueID),
		outputPorts:  make(map[SymbolID]ValueID),
		inoutPorts:   make(map[SymbolID]InoutTriple),
	}
}

func (g *Graph) Name() string { return g.name }

// ---- symbol table passthrough ----

func (g *Graph) Intern(s string) SymbolID       { return g.st.intern(s) }
func (g *Graph) Lookup(s string) SymbolID       { return g.st.lookup(s) }
func (g *Graph) Text(id SymbolID) string        { return g.st.text(id) }
func (g *Graph) MintInternalValueSym() SymbolID { return g.st.mintInternal("val") }
func (g *Graph) MintInternalOpSym() SymbolID    { return g.st.mintInternal("op") }

// Declare marks sym as a declared (front-end-promised) symbol: DCE must
// never collect the value carrying it even when unused.
func (g *Graph) Declare(sym SymbolID) { g.declared.Add(sym) }

func (g *Graph) IsDeclared(sym SymbolID) bool { return g.declared.Contains(sym) }

func (g *Graph) DeclaredSymbols() []SymbolID {
	out := g.declared.ToSlice()
	return out
}

// ---- value/operation validity ----

func (g *Graph) validValue(v ValueID) bool {
	return v.Valid() && int(v) < len(g.values) && !g.erasedValues.contains(uint32(v))
}

func (g *Graph) validOp(o OperationID) bool {
	return o.Valid() && int(o) < len(g.ops) && !g.erasedOps.contains(uint32(o))
}

func (g *Graph) ValueExists(v ValueID) bool  { return g.validValue(v) }
func (g *Graph) OpExists(o OperationID) bool { return g.validOp(o) }

// ---- creation ----

// CreateValue creates a fresh value. Fails if width <= 0 or sym already
// exists in this graph's symbol scope.
func (g *Graph) CreateValue(symStr string, width int, signed bool, ty ValueType) (ValueID, error) {
	if width <= 0 {
		return InvalidValueID, errors.Wrapf(grherrors.ErrWidthNotPositive, "value %q", symStr)
	}
	if g.st.lookup(symStr).Valid() {
		return InvalidValueID, errors.Wrapf(grherrors.ErrDuplicateSymbol, "value %q", symStr)
	}
	sym := g.st.intern(symStr)
	id := ValueID(len(g.values))
	g.values = append(g.values, value{
		sym:        sym,
		width:      width,
		signed:     signed,
		typ:        ty,
		definingOp: InvalidOperationID,
	})
	return id, nil
}

// CreateOperation creates a fresh operation of the given kind. Fails if
// sym already exists in this graph's symbol scope.
func (g *Graph) CreateOperation(kind OperationKind, symStr string) (OperationID, error) {
	if g.st.lookup(symStr).Valid() {
		return InvalidOperationID, errors.Wrapf(grherrors.ErrDuplicateSymbol, "operation %q", symStr)
	}
	sym := g.st.intern(symStr)
	id := OperationID(len(g.ops))
	g.ops = append(g.ops, operation{
		sym:   sym,
		kind:  kind,
		attrs: newAttrMap(),
	})
	return id, nil
}

// ---- operand/result mutation ----

func (g *Graph) addUser(v ValueID, u ValueUser) {
	val := &g.values[v]
	val.users = append(val.users, u)
}

func (g *Graph) removeUser(v ValueID, u ValueUser) {
	val := &g.values[v]
	for i, x := range val.users {
		if x == u {
			val.users = append(val.users[:i], val.users[i+1:]...)
			return
		}
	}
}

// shiftUsersFrom increments the recorded operand index of every use of v
// at index >= from by delta, used when an operand list insertion/removal
// shifts subsequent positions.
func (g *Graph) shiftUsersFrom(op OperationID, v ValueID, from int, delta int) {
	val := &g.values[v]
	for i := range val.users {
		if val.users[i].Op == op && val.users[i].Index >= from {
			val.users[i].Index += delta
		}
	}
}

// AddOperand appends v as the next operand of op.
func (g *Graph) AddOperand(op OperationID, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	o := &g.ops[op]
	idx := len(o.operands)
	o.operands = append(o.operands, v)
	g.addUser(v, ValueUser{Op: op, Index: idx})
	return nil
}

// AddResult appends v as the next result of op. Fails if v already has a
// defining operation (single-driver, §3.6 item 3).
func (g *Graph) AddResult(op OperationID, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	val := &g.values[v]
	if val.definingOp.Valid() {
		return errors.Wrapf(grherrors.ErrDoubleDriver, "value %q", g.st.text(val.sym))
	}
	o := &g.ops[op]
	o.results = append(o.results, v)
	val.definingOp = op
	return nil
}

// InsertOperand inserts v at position i, shifting subsequent operands and
// their recorded use-list indices up by one.
func (g *Graph) InsertOperand(op OperationID, i int, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	o := &g.ops[op]
	if i < 0 || i > len(o.operands) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operand index %d", i)
	}
	seen := make(map[ValueID]bool)
	for idx := i; idx < len(o.operands); idx++ {
		v := o.operands[idx]
		if seen[v] {
			continue
		}
		seen[v] = true
		g.shiftUsersFrom(op, v, i, 1)
	}
	o.operands = append(o.operands, InvalidValueID)
	copy(o.operands[i+1:], o.operands[i:])
	o.operands[i] = v
	g.addUser(v, ValueUser{Op: op, Index: i})
	return nil
}

// InsertResult inserts v at position i among op's results.
func (g *Graph) InsertResult(op OperationID, i int, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	val := &g.values[v]
	if val.definingOp.Valid() {
		return errors.Wrapf(grherrors.ErrDoubleDriver, "value %q", g.st.text(val.sym))
	}
	o := &g.ops[op]
	if i < 0 || i > len(o.results) {
		return errors.Wrapf(grherrors.ErrInvalidID, "result index %d", i)
	}
	o.results = append(o.results, InvalidValueID)
	copy(o.results[i+1:], o.results[i:])
	o.results[i] = v
	val.definingOp = op
	return nil
}

// ReplaceOperand swaps the operand at index i for v, detaching the old
// edge's use-list entry first.
func (g *Graph) ReplaceOperand(op OperationID, i int, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	o := &g.ops[op]
	if i < 0 || i >= len(o.operands) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operand index %d", i)
	}
	old := o.operands[i]
	g.removeUser(old, ValueUser{Op: op, Index: i})
	o.operands[i] = v
	g.addUser(v, ValueUser{Op: op, Index: i})
	return nil
}

// ReplaceResult swaps the result at index i for v, re-checking
// single-driver for the new value.
func (g *Graph) ReplaceResult(op OperationID, i int, v ValueID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	o := &g.ops[op]
	if i < 0 || i >= len(o.results) {
		return errors.Wrapf(grherrors.ErrInvalidID, "result index %d", i)
	}
	newVal := &g.values[v]
	if newVal.definingOp.Valid() && newVal.definingOp != op {
		return errors.Wrapf(grherrors.ErrDoubleDriver, "value %q", g.st.text(newVal.sym))
	}
	old := o.results[i]
	g.values[old].definingOp = InvalidOperationID
	o.results[i] = v
	newVal.definingOp = op
	return nil
}

// ReplaceAllUses rewrites every operand currently pointing at oldV to
// point at newV, atomically with respect to both use-lists, and rebinds
// any output ports bound to oldV.
func (g *Graph) ReplaceAllUses(oldV, newV ValueID) error {
	if !g.validValue(oldV) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", oldV)
	}
	if !g.validValue(newV) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", newV)
	}
	if oldV == newV {
		return nil
	}
	users := append([]ValueUser(nil), g.values[oldV].users...)
	for _, u := range users {
		g.ops[u.Op].operands[u.Index] = newV
	}
	g.values[newV].users = append(g.values[newV].users, users...)
	g.values[oldV].users = nil

	for name, bound := range g.outputPorts {
		if bound == oldV {
			g.outputPorts[name] = newV
			g.values[newV].isOutput = true
		}
	}
	return nil
}

// ---- erase ----

// EraseOp removes op, failing if any result still has users or is
// port-bound. Detaches operand edges on success.
func (g *Graph) EraseOp(op OperationID) error {
	if !g.validOp(op) {
		return errors.Wrapf(grherrors.ErrInvalidID, "operation %d", op)
	}
	o := &g.ops[op]
	for _, r := range o.results {
		if len(g.values[r].users) > 0 {
			return errors.Wrapf(grherrors.ErrEraseOpHasUsers, "operation %q", g.st.text(o.sym))
		}
		if g.isPortBound(r) {
			return errors.Wrapf(grherrors.ErrEraseOpBoundToPort, "operation %q", g.st.text(o.sym))
		}
	}
	g.EraseOpUnchecked(op)
	return nil
}

// EraseOpUnchecked detaches op's operand edges and drops it without
// re-checking that its results are unused; for worklist callers that
// have already proved no users remain.
func (g *Graph) EraseOpUnchecked(op OperationID) {
	o := &g.ops[op]
	for i, v := range o.operands {
		g.removeUser(v, ValueUser{Op: op, Index: i})
	}
	for _, r := range o.results {
		g.values[r].definingOp = InvalidOperationID
	}
	o.operands = nil
	o.results = nil
	g.erasedOps.add(uint32(op))
}

func (g *Graph) isPortBound(v ValueID) bool {
	val := &g.values[v]
	return val.isInput || val.isOutput || val.isInoutIn || val.isInoutOut || val.isInoutOE
}

// EraseValue removes v, failing if it has users, is an operation result,
// or is bound to a port.
func (g *Graph) EraseValue(v ValueID) error {
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	val := &g.values[v]
	if len(val.users) > 0 {
		return errors.Wrapf(grherrors.ErrEraseHasUsers, "value %q", g.st.text(val.sym))
	}
	if val.definingOp.Valid() {
		return errors.Wrapf(grherrors.ErrEraseIsResult, "value %q", g.st.text(val.sym))
	}
	if g.isPortBound(v) {
		return errors.Wrapf(grherrors.ErrEraseIsPort, "value %q", g.st.text(val.sym))
	}
	g.erasedValues.add(uint32(v))
	return nil
}

// EraseValueUnchecked drops v without re-validating its preconditions.
func (g *Graph) EraseValueUnchecked(v ValueID) {
	g.erasedValues.add(uint32(v))
}

// ---- ports ----

func (g *Graph) BindInputPort(name string, v ValueID) error {
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	sym := g.st.intern(name)
	if _, exists := g.inputPorts[sym]; exists {
		return errors.Wrapf(grherrors.ErrDuplicatePortName, "input port %q", name)
	}
	val := &g.values[v]
	if val.isOutput {
		return errors.Wrapf(grherrors.ErrPortRoleConflict, "value %q", g.st.text(val.sym))
	}
	val.isInput = true
	g.inputPorts[sym] = v
	g.inputOrder = append(g.inputOrder, sym)
	return nil
}

func (g *Graph) BindOutputPort(name string, v ValueID) error {
	if !g.validValue(v) {
		return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
	}
	sym := g.st.intern(name)
	if _, exists := g.outputPorts[sym]; exists {
		return errors.Wrapf(grherrors.ErrDuplicatePortName, "output port %q", name)
	}
	val := &g.values[v]
	if val.isInput {
		return errors.Wrapf(grherrors.ErrPortRoleConflict, "value %q", g.st.text(val.sym))
	}
	val.isOutput = true
	g.outputPorts[sym] = v
	g.outputOrder = append(g.outputOrder, sym)
	return nil
}

func (g *Graph) BindInoutPort(name string, in, out, oe ValueID) error {
	for _, v := range []ValueID{in, out, oe} {
		if !g.validValue(v) {
			return errors.Wrapf(grherrors.ErrInvalidID, "value %d", v)
		}
	}
	sym := g.st.intern(name)
	if _, exists := g.inoutPorts[sym]; exists {
		return errors.Wrapf(grherrors.ErrDuplicatePortName, "inout port %q", name)
	}
	g.values[in].isInoutIn = true
	g.values[out].isInoutOut = true
	g.values[oe].isInoutOE = true
	g.inoutPorts[sym] = InoutTriple{In: in, Out: out, OE: oe}
	g.inoutOrder = append(g.inoutOrder, sym)
	return nil
}

// OutputPortFor returns the port name currently bound to v, if any.
func (g *Graph) OutputPortFor(v ValueID) (SymbolID, bool) {
	for _, sym := range g.outputOrder {
		if g.outputPorts[sym] == v {
			return sym, true
		}
	}
	return InvalidSymbolID, false
}

func (g *Graph) InputPorts() []SymbolID  { return append([]SymbolID(nil), g.inputOrder...) }
func (g *Graph) OutputPorts() []SymbolID { return append([]SymbolID(nil), g.outputOrder...) }
func (g *Graph) InoutPorts() []SymbolID  { return append([]SymbolID(nil), g.inoutOrder...) }

func (g *Graph) InputPortValue(sym SymbolID) (ValueID, bool) {
	v, ok := g.inputPorts[sym]
	return v, ok
}
func (g *Graph) OutputPortValue(sym SymbolID) (ValueID, bool) {
	v, ok := g.outputPorts[sym]
	return v, ok
}
func (g *Graph) InoutPortValue(sym SymbolID) (InoutTriple, bool) {
	v, ok := g.inoutPorts[sym]
	return v, ok
}

// ---- queries ----

// Values iterates live value IDs in insertion (= dense index) order.
func (g *Graph) Values() []ValueID {
	out := make([]ValueID, 0, len(g.values))
	for i := range g.values {
		id := ValueID(i)
		if !g.erasedValues.contains(uint32(id)) {
			out = append(out, id)
		}
	}
	return out
}

// Operations iterates live operation IDs in creation order.
func (g *Graph) Operations() []OperationID {
	out := make([]OperationID, 0, len(g.ops))
	for i := range g.ops {
		id := OperationID(i)
		if !g.erasedOps.contains(uint32(id)) {
			out = append(out, id)
		}
	}
	return out
}

func (g *Graph) ValueSymbol(v ValueID) SymbolID { return g.values[v].sym }
func (g *Graph) ValueWidth(v ValueID) int       { return g.values[v].width }
func (g *Graph) ValueSigned(v ValueID) bool     { return g.values[v].signed }
func (g *Graph) ValueType(v ValueID) ValueType  { return g.values[v].typ }
func (g *Graph) ValueIsInput(v ValueID) bool    { return g.values[v].isInput }
func (g *Graph) ValueIsOutput(v ValueID) bool   { return g.values[v].isOutput }
func (g *Graph) ValueInoutRoles(v ValueID) (in, out, oe bool) {
	val := &g.values[v]
	return val.isInoutIn, val.isInoutOut, val.isInoutOE
}
func (g *Graph) ValueDefiningOp(v ValueID) OperationID { return g.values[v].definingOp }
func (g *Graph) ValueUsers(v ValueID) []ValueUser {
	return append([]ValueUser(nil), g.values[v].users...)
}
func (g *Graph) ValueUseCount(v ValueID) int           { return len(g.values[v].users) }
func (g *Graph) ValueSrcLoc(v ValueID) *SrcLoc         { return g.values[v].loc }
func (g *Graph) SetValueSrcLoc(v ValueID, loc *SrcLoc) { g.values[v].loc = loc }

func (g *Graph) OpSymbol(op OperationID) SymbolID    { return g.ops[op].sym }
func (g *Graph) OpKind(op OperationID) OperationKind { return g.ops[op].kind }
func (g *Graph) OpOperands(op OperationID) []ValueID {
	return append([]ValueID(nil), g.ops[op].operands...)
}
func (g *Graph) OpResults(op OperationID) []ValueID {
	return append([]ValueID(nil), g.ops[op].results...)
}
func (g *Graph) OpOperandCount(op OperationID) int       { return len(g.ops[op].operands) }
func (g *Graph) OpResultCount(op OperationID) int        { return len(g.ops[op].results) }
func (g *Graph) OpOperand(op OperationID, i int) ValueID { return g.ops[op].operands[i] }
func (g *Graph) OpResult(op OperationID, i int) ValueID  { return g.ops[op].results[i] }
func (g *Graph) OpSrcLoc(op OperationID) *SrcLoc         { return g.ops[op].loc }
func (g *Graph) SetOpSrcLoc(op OperationID, loc *SrcLoc) { g.ops[op].loc = loc }

func (g *Graph) SetAttr(op OperationID, key SymbolID, val AttributeValue) error {
	if !val.IsJSONSerializable() {
		return errors.Wrapf(grherrors.ErrNonSerializableAttr, "operation %q attribute %q", g.st.text(g.ops[op].sym), g.st.text(key))
	}
	g.ops[op].attrs.Set(key, val)
	return nil
}

func (g *Graph) GetAttr(op OperationID, key SymbolID) (AttributeValue, bool) {
	return g.ops[op].attrs.Get(key)
}

func (g *Graph) AttrKeys(op OperationID) []SymbolID { return g.ops[op].attrs.Keys() }

// SetAttrByName is a convenience wrapper interning key before SetAttr.
func (g *Graph) SetAttrByName(op OperationID, key string, val AttributeValue) error {
	return g.SetAttr(op, g.st.intern(key), val)
}

// GetAttrByName looks up an attribute by name without interning on miss.
func (g *Graph) GetAttrByName(op OperationID, key string) (AttributeValue, bool) {
	sym := g.st.lookup(key)
	if !sym.Valid() {
		return AttributeValue{}, false
	}
	return g.GetAttr(op, sym)
}

// ---- clone ----

// Clone deep-copies values, operations, ports, attributes, src-locs and
// the declared-symbol set into a new graph with the given name, assigning
// fresh dense IDs. It does not propagate top-marking or aliases (those
// live at the netlist level).
func (g *Graph) Clone(newName string) *Graph {
	out := NewGraph(newName)

	// Re-intern every symbol in SymbolID order so that the new graph's
	// interner assigns the same ordinal as the old one did; value, op,
	// port and attribute-key SymbolIDs can then be copied verbatim.
	for _, s := range g.st.interned {
		out.st.intern(s)
	}
	// Clone arenas verbatim: each ValueID/OperationID keeps its original
	// index, erased slots included.
	out.values = make([]value, len(g.values))
	copy(out.values, g.values)
	for i := range out.values {
		out.values[i].users = append([]ValueUser(nil), g.values[i].users...)
		if g.values[i].loc != nil {
			loc := *g.values[i].loc
			out.values[i].loc = &loc
		}
	}

	out.ops = make([]operation, len(g.ops))
	for i := range g.ops {
		o := g.ops[i]
		cloned := operation{
			sym:      o.sym,
			kind:     o.kind,
			operands: append([]ValueID(nil), o.operands...),
			results:  append([]ValueID(nil), o.results...),
			attrs:    newAttrMap(),
		}
		for _, k := range o.attrs.Keys() {
			v, _ := o.attrs.Get(k)
			cloned.attrs.Set(k, v)
		}
		if o.loc != nil {
			loc := *o.loc
			cloned.loc = &loc
		}
		out.ops[i] = cloned
	}

	out.erasedValues = g.erasedValues.clone()
	out.erasedOps = g.erasedOps.clone()

	for _, sym := range g.declared.ToSlice() {
		out.declared.Add(sym)
	}

	for _, sym := range g.inputOrder {
		out.inputOrder = append(out.inputOrder, sym)
		out.inputPorts[sym] = g.inputPorts[sym]
	}
	for _, sym := range g.outputOrder {
		out.outputOrder = append(out.outputOrder, sym)
		out.outputPorts[sym] = g.outputPorts[sym]
	}
	for _, sym := range g.inoutOrder {
		out.inoutOrder = append(out.inoutOrder, sym)
		out.inoutPorts[sym] = g.inoutPorts[sym]
	}

	return out
}

// CheckInvariants walks the graph and returns the first invariant
// violation found, wrapped with enough context to build a diagnostic.
// Used by the JSON codec's parse path (§4.4) and available to callers
// that want to validate a graph built outside the normal mutation API.
func (g *Graph) CheckInvariants() error {
	seenSym := make(map[SymbolID]bool)
	for _, v := range g.Values() {
		sym := g.ValueSymbol(v)
		if seenSym[sym] {
			return errors.Wrapf(grherrors.ErrDuplicateSymbol, "value %q", g.Text(sym))
		}
		seenSym[sym] = true
		if g.ValueWidth(v) <= 0 {
			return errors.Wrapf(grherrors.ErrWidthNotPositive, "value %q", g.Text(sym))
		}
		if g.ValueIsInput(v) && g.ValueIsOutput(v) {
			return errors.Wrapf(grherrors.ErrPortRoleConflict, "value %q", g.Text(sym))
		}
		def := g.ValueDefiningOp(v)
		if def.Valid() && g.ValueIsInput(v) {
			return errors.Wrapf(grherrors.ErrInvalidAttribute, "input value %q has a defining operation", g.Text(sym))
		}
		for _, u := range g.ValueUsers(v) {
			if !g.validOp(u.Op) {
				return errors.Wrapf(grherrors.ErrDanglingReference, "value %q user references missing op", g.Text(sym))
			}
			if u.Index < 0 || u.Index >= g.OpOperandCount(u.Op) || g.OpOperand(u.Op, u.Index) != v {
				return errors.Wrapf(grherrors.ErrDanglingReference, "value %q use-list entry %v inconsistent", g.Text(sym), u)
			}
		}
	}
	for _, op := range g.Operations() {
		sym := g.OpSymbol(op)
		if seenSym[sym] {
			return errors.Wrapf(grherrors.ErrDuplicateSymbol, "operation %q", g.Text(sym))
		}
		seenSym[sym] = true
		for _, r := range g.OpResults(op) {
			if !g.validValue(r) {
				return errors.Wrapf(grherrors.ErrDanglingReference, "operation %q result references missing value", g.Text(sym))
			}
			if g.ValueDefiningOp(r) != op {
				return errors.Wrapf(grherrors.ErrDoubleDriver, "operation %q result %q", g.Text(sym), g.Text(g.ValueSymbol(r)))
			}
		}
		for _, operand := range g.OpOperands(op) {
			if !g.validValue(operand) {
				return errors.Wrapf(grherrors.ErrDanglingReference, "operation %q operand references missing value", g.Text(sym))
			}
		}
		if err := ValidateStructure(g, op); err != nil {
			return errors.Wrapf(err, "operation %q", g.Text(sym))
		}
	}
	return nil
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%s, %d values, %d ops)", g.name, len(g.Values()), len(g.Operations()))
}
