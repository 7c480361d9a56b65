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

// Package xmr resolves cross-module reference operations (XMRRead,
// XMRWrite) into explicit port-and-wire plumbing: a hierarchical path
// is walked hop by hop, manufacturing ports on every intervening
// instance so that downstream passes see only ordinary in-module
// signals.
package xmr

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/pass"
	"github.com/erigontech/grh/internal/svint"
)

const passID = "xmr-resolve"

// Pass is the cross-module-reference resolution transformation.
type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) ID() string          { return passID }
func (p *Pass) Name() string        { return "XMR Resolve" }
func (p *Pass) Description() string { return "lowers XMRRead/XMRWrite into port-and-wire plumbing" }

type stats struct {
	reads, writes, padded, dropped, errors int
}

// portCacheKey is the (child graph, remaining-path, direction) tuple the
// spec's determinism guarantee is keyed on.
type portCacheKey struct {
	graph     string
	remaining string
	dir       byte // 'r' or 'w'
}

// run holds the state shared across every XMR op processed in a single
// pipeline invocation: the port-name cache (scoped to the whole run, not
// just one graph, since a path may re-enter a module instantiated in
// several places) and the set of modules whose input-port surface grew,
// needed by the pad-input phase.
type run struct {
	ctx  *pass.Context
	st   *stats
	port map[portCacheKey]string

	// grownInputs records the names of graphs that gained a new input
	// port during write resolution, and padCache dedupes, per parent
	// graph, the zero constant minted for each (width,signed) pad.
	grownInputs map[string]bool
	padCache    map[string]map[padKey]ir.ValueID
}

type padKey struct {
	width  int
	signed bool
}

func (p *Pass) Run(ctx *pass.Context) pass.PassResult {
	r := &run{
		ctx:         ctx,
		st:          &stats{},
		port:        make(map[portCacheKey]string),
		grownInputs: make(map[string]bool),
		padCache:    make(map[string]map[padKey]ir.ValueID),
	}
	changed := false

	_ = ctx.ForEachGraph(func(g *ir.Graph) error {
		for _, op := range g.Operations() {
			switch g.OpKind(op) {
			case ir.OpXMRRead:
				if r.resolveRead(g, op) {
					changed = true
				}
			case ir.OpXMRWrite:
				if r.resolveWrite(g, op) {
					changed = true
				}
			}
		}
		return nil
	})

	if r.padInputs() {
		changed = true
	}

	if ctx.Logger != nil {
		ctx.Logger.Debugf("xmr", "reads=%d writes=%d padded=%d dropped=%d errors=%d",
			r.st.reads, r.st.writes, r.st.padded, r.st.dropped, r.st.errors)
	}

	return pass.PassResult{Changed: changed, Failed: r.st.errors > 0}
}

// ---- path model ----

func (r *run) splitPath(g *ir.Graph, pathAttr string) ([]string, bool) {
	segs := strings.Split(pathAttr, ".")
	if len(segs) > 0 && segs[0] == g.Name() {
		segs = segs[1:]
	}
	if len(segs) == 0 {
		r.ctx.Diagnostics.Warning(passID, pathAttr, "XMR path is empty after self-prefix stripping")
		r.st.dropped++
		return nil, false
	}
	return segs, true
}

// nameIndex resolves plain identifiers within a single graph: instance
// operations by their own symbol, storage/value-defining operations by
// their result's symbol, and plain values by their own symbol.
type nameIndex struct {
	values map[string]ir.ValueID
	instOp map[string]ir.OperationID
}

func buildNameIndex(g *ir.Graph) *nameIndex {
	idx := &nameIndex{values: make(map[string]ir.ValueID), instOp: make(map[string]ir.OperationID)}
	for _, v := range g.Values() {
		idx.values[g.Text(g.ValueSymbol(v))] = v
	}
	for _, op := range g.Operations() {
		switch g.OpKind(op) {
		case ir.OpInstance, ir.OpRegister, ir.OpLatch, ir.OpMemory:
			idx.instOp[g.Text(g.OpSymbol(op))] = op
		}
	}
	return idx
}

// hop describes one graph visited along an XMR path, and (for every hop
// but the last) the instance operation in that graph leading to the
// next hop's graph.
type hop struct {
	graph    *ir.Graph
	instance ir.OperationID // invalid for the leaf hop
}

// walkHops resolves every instance segment of segs, returning one hop
// per graph visited (len(segs)) so that hops[len(segs)-1] is the leaf
// graph containing the final symbol.
func (r *run) walkHops(startGraph *ir.Graph, segs []string) ([]hop, bool) {
	hops := make([]hop, 0, len(segs))
	g := startGraph
	for i := 0; i < len(segs)-1; i++ {
		idx := buildNameIndex(g)
		instOp, ok := idx.instOp[segs[i]]
		if !ok {
			r.ctx.Diagnostics.Warning(passID, strings.Join(segs, "."), fmt.Sprintf("unknown instance %q in graph %q", segs[i], g.Name()))
			r.st.dropped++
			return nil, false
		}
		moduleAttr, ok := g.GetAttrByName(instOp, "moduleName")
		if !ok || moduleAttr.Kind() != ir.AttrString {
			r.ctx.Diagnostics.Warning(passID, strings.Join(segs, "."), fmt.Sprintf("instance %q missing moduleName attribute", segs[i]))
			r.st.dropped++
			return nil, false
		}
		child, ok := r.ctx.Netlist.FindGraph(moduleAttr.String())
		if !ok {
			r.ctx.Diagnostics.Warning(passID, strings.Join(segs, "."), fmt.Sprintf("unknown module %q instantiated by %q", moduleAttr.String(), segs[i]))
			r.st.dropped++
			return nil, false
		}
		hops = append(hops, hop{graph: g, instance: instOp})
		g = child
	}
	hops = append(hops, hop{graph: g, instance: ir.InvalidOperationID})
	return hops, true
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

// portName derives a stable, sanitized port name from the remaining
// path segments from a hop to the leaf, falling back to a short FNV
// hash once the sanitized form would be unreasonably long.
func portName(prefix string, remaining []string) string {
	joined := nonIdent.ReplaceAllString(strings.Join(remaining, "_"), "_")
	if len(joined) <= 48 {
		return prefix + joined
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(remaining, ".")))
	return prefix + "h" + strconv.FormatUint(h.Sum64(), 16)
}

func (r *run) cachedPortName(childGraph string, remaining []string, dir byte, prefix string) string {
	key := portCacheKey{graph: childGraph, remaining: strings.Join(remaining, "."), dir: dir}
	if name, ok := r.port[key]; ok {
		return name
	}
	name := portName(prefix, remaining)
	r.port[key] = name
	return name
}

// ---- read resolution ----

func (r *run) resolveRead(g *ir.Graph, op ir.OperationID) bool {
	pathAttr, ok := g.GetAttrByName(op, "path")
	if !ok || pathAttr.Kind() != ir.AttrString {
		r.ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "XMRRead missing path attribute")
		r.st.errors++
		return false
	}
	segs, ok := r.splitPath(g, pathAttr.String())
	if !ok {
		return false
	}
	hops, ok := r.walkHops(g, segs)
	if !ok {
		return false
	}
	leaf := hops[len(hops)-1]
	leafIdx := buildNameIndex(leaf.graph)
	leafName := segs[len(segs)-1]

	var propagated ir.ValueID
	if instOp, ok := leafIdx.instOp[leafName]; ok && ir.IsStorage(leaf.graph.OpKind(instOp)) {
		v, err := synthesizeStorageRead(leaf.graph, instOp)
		if err != nil {
			r.ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), err.Error())
			r.st.errors++
			return false
		}
		propagated = v
	} else if v, ok := leafIdx.values[leafName]; ok {
		propagated = v
	} else {
		r.ctx.Diagnostics.Warning(passID, pathAttr.String(), fmt.Sprintf("unresolved XMR leaf symbol %q", leafName))
		r.st.dropped++
		return false
	}

	for i := len(hops) - 2; i >= 0; i-- {
		parent := hops[i].graph
		child := hops[i+1].graph
		instOp := hops[i].instance
		remaining := segs[i+1:]

		name := r.cachedPortName(child.Name(), remaining, 'r', "__xmr_r_")
		if _, exists := child.OutputPortFor(propagated); !exists {
			if err := child.BindOutputPort(name, propagated); err != nil {
				r.ctx.Diagnostics.Error(passID, pathAttr.String(), "bind output port: "+err.Error())
				r.st.errors++
				return false
			}
		}

		newSym := parent.MintInternalValueSym()
		newVal, err := parent.CreateValue(parent.Text(newSym), child.ValueWidth(propagated), child.ValueSigned(propagated), child.ValueType(propagated))
		if err != nil {
			r.ctx.Diagnostics.Error(passID, pathAttr.String(), "mint instance result: "+err.Error())
			r.st.errors++
			return false
		}
		boundary := insertionBoundaryForResult(parent, instOp)
		if err := parent.InsertResult(instOp, boundary, newVal); err != nil {
			r.ctx.Diagnostics.Error(passID, pathAttr.String(), "insert instance result: "+err.Error())
			r.st.errors++
			return false
		}
		propagated = newVal
	}

	result := g.OpResult(op, 0)
	if err := g.ReplaceAllUses(result, propagated); err != nil {
		r.ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "replace XMRRead result: "+err.Error())
		r.st.errors++
		return false
	}
	g.EraseOpUnchecked(op)
	r.st.reads++
	return true
}

// ---- write resolution ----

func (r *run) resolveWrite(g *ir.Graph, op ir.OperationID) bool {
	pathAttr, ok := g.GetAttrByName(op, "path")
	if !ok || pathAttr.Kind() != ir.AttrString {
		r.ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "XMRWrite missing path attribute")
		r.st.errors++
		return false
	}
	if g.OpOperandCount(op) != 1 {
		r.ctx.Diagnostics.Error(passID, g.Text(g.OpSymbol(op)), "XMRWrite expects exactly one data operand")
		r.st.errors++
		return false
	}
	segs, ok := r.splitPath(g, pathAttr.String())
	if !ok {
		return false
	}
	hops, ok := r.walkHops(g, segs)
	if !ok {
		return false
	}

	driver := g.OpOperand(op, 0)
	driverGraph := g
	for i := 0; i < len(hops)-1; i++ {
		parent := hops[i].graph
		child := hops[i+1].graph
		instOp := hops[i].instance
		remaining := segs[i+1:]

		name := r.cachedPortName(child.Name(), remaining, 'w', "__xmr_w_")
		childVal, hasPort := func() (ir.ValueID, bool) {
			for _, sym := range child.InputPorts() {
				if child.Text(sym) == name {
					v, _ := child.InputPortValue(sym)
					return v, true
				}
			}
			return ir.InvalidValueID, false
		}()
		if !hasPort {
			sym := child.MintInternalValueSym()
			v, err := child.CreateValue(child.Text(sym), driverGraph.ValueWidth(driver), driverGraph.ValueSigned(driver), driverGraph.ValueType(driver))
			if err != nil {
				r.ctx.Diagnostics.Error(passID, pathAttr.String(), "mint child input: "+err.Error())
				r.st.errors++
				return false
			}
			if err := child.BindInputPort(name, v); err != nil {
				r.ctx.Diagnostics.Error(passID, pathAttr.String(), "bind input port: "+err.Error())
				r.st.errors++
				return false
			}
			childVal = v
			r.grownInputs[child.Name()] = true
		}

		boundary := insertionBoundaryForOperand(parent, instOp)
		if err := parent.InsertOperand(instOp, boundary, driver); err != nil {
			r.ctx.Diagnostics.Error(passID, pathAttr.String(), "insert instance operand: "+err.Error())
			r.st.errors++
			return false
		}

		driver = childVal
		driverGraph = child
	}

	leaf := hops[len(hops)-1]
	leafIdx := buildNameIndex(leaf.graph)
	leafName := segs[len(segs)-1]

	if instOp, ok := leafIdx.instOp[leafName]; ok && ir.IsStorage(leaf.graph.OpKind(instOp)) {
		if err := synthesizeStorageWrite(leaf.graph, instOp, driver); err != nil {
			r.ctx.Diagnostics.Error(passID, pathAttr.String(), err.Error())
			r.st.errors++
			return false
		}
	} else if v, ok := leafIdx.values[leafName]; ok {
		if err := forceSingleDriver(r.ctx, leaf.graph, v, driver); err != nil {
			r.ctx.Diagnostics.Warning(passID, pathAttr.String(), err.Error())
			r.st.dropped++
			return false
		}
	} else {
		r.ctx.Diagnostics.Warning(passID, pathAttr.String(), fmt.Sprintf("unresolved XMR leaf symbol %q", leafName))
		r.st.dropped++
		return false
	}

	g.EraseOpUnchecked(op)
	r.st.writes++
	return true
}

// ---- storage classification ----

// synthesizeStorageRead creates a *ReadPort op in g for the storage
// instance op and returns its result value.
func synthesizeStorageRead(g *ir.Graph, storageOp ir.OperationID) (ir.ValueID, error) {
	kind := g.OpKind(storageOp)
	var portKind ir.OperationKind
	switch kind {
	case ir.OpRegister:
		portKind = ir.OpRegisterReadPort
	case ir.OpLatch:
		portKind = ir.OpLatchReadPort
	case ir.OpMemory:
		portKind = ir.OpMemoryReadPort
	default:
		return ir.InvalidValueID, fmt.Errorf("xmr: %s is not a readable storage kind", kind)
	}
	if g.OpResultCount(storageOp) == 0 {
		return ir.InvalidValueID, fmt.Errorf("xmr: storage op has no result to read")
	}
	storageVal := g.OpResult(storageOp, 0)

	valSym := g.MintInternalValueSym()
	resVal, err := g.CreateValue(g.Text(valSym), g.ValueWidth(storageVal), g.ValueSigned(storageVal), g.ValueType(storageVal))
	if err != nil {
		return ir.InvalidValueID, err
	}
	opSym := g.MintInternalOpSym()
	portOp, err := g.CreateOperation(portKind, g.Text(opSym))
	if err != nil {
		return ir.InvalidValueID, err
	}
	if err := g.AddOperand(portOp, storageVal); err != nil {
		return ir.InvalidValueID, err
	}
	if err := g.AddResult(portOp, resVal); err != nil {
		return ir.InvalidValueID, err
	}
	return resVal, nil
}

// synthesizeStorageWrite creates a *WritePort op in g driving the
// storage instance op with an unconditional, unmasked write of driver.
// Without an elaboration-level clock/event context (the front end is a
// data record only) the event edge and clock operands are left absent;
// this is documented as a known simplification.
func synthesizeStorageWrite(g *ir.Graph, storageOp ir.OperationID, driver ir.ValueID) error {
	kind := g.OpKind(storageOp)
	var portKind ir.OperationKind
	switch kind {
	case ir.OpRegister:
		portKind = ir.OpRegisterWritePort
	case ir.OpLatch:
		portKind = ir.OpLatchWritePort
	case ir.OpMemory:
		portKind = ir.OpMemoryWritePort
	default:
		return fmt.Errorf("xmr: %s is not a writable storage kind", kind)
	}

	width := g.ValueWidth(driver)
	signed := g.ValueSigned(driver)
	condSym := g.MintInternalValueSym()
	condVal, err := g.CreateValue(g.Text(condSym), 1, false, ir.TypeLogic)
	if err != nil {
		return err
	}
	condOpSym := g.MintInternalOpSym()
	condOp, err := g.CreateOperation(ir.OpConstant, g.Text(condOpSym))
	if err != nil {
		return err
	}
	if err := g.AddResult(condOp, condVal); err != nil {
		return err
	}
	if err := g.SetAttrByName(condOp, "constValue", ir.StringAttr(svint.FromUint64(1, false, 1).HexLiteral())); err != nil {
		return err
	}

	maskSym := g.MintInternalValueSym()
	maskVal, err := g.CreateValue(g.Text(maskSym), width, false, ir.TypeLogic)
	if err != nil {
		return err
	}
	maskOpSym := g.MintInternalOpSym()
	maskOp, err := g.CreateOperation(ir.OpConstant, g.Text(maskOpSym))
	if err != nil {
		return err
	}
	if err := g.AddResult(maskOp, maskVal); err != nil {
		return err
	}
	if err := g.SetAttrByName(maskOp, "constValue", ir.StringAttr(svint.UMax(width).HexLiteral())); err != nil {
		return err
	}

	opSym := g.MintInternalOpSym()
	writeOp, err := g.CreateOperation(portKind, g.Text(opSym))
	if err != nil {
		return err
	}
	for _, v := range []ir.ValueID{condVal, driver, maskVal} {
		if err := g.AddOperand(writeOp, v); err != nil {
			return err
		}
	}
	if kind == ir.OpRegister {
		if err := g.SetAttrByName(writeOp, "eventEdge", ir.StringAttr("posedge")); err != nil {
			return err
		}
	}
	_ = signed
	return nil
}

// forceSingleDriver rewires v so that driver becomes its sole source,
// per the spec's per-role behavior.
func forceSingleDriver(ctx *pass.Context, g *ir.Graph, v ir.ValueID, driver ir.ValueID) error {
	if in, out, oe := g.ValueInoutRoles(v); in || out || oe {
		return fmt.Errorf("xmr: cannot force a single driver onto inout value %q", g.Text(g.ValueSymbol(v)))
	}
	if g.Text(g.ValueSymbol(v)) == "" {
		return fmt.Errorf("xmr: cannot force a single driver onto an anonymous value")
	}

	if g.ValueIsInput(v) {
		ctx.Diagnostics.Warning(passID, g.Text(g.ValueSymbol(v)), "XMR write targets an input port; rewiring uses to a fresh value and leaving the port unconnected")
		sym := g.MintInternalValueSym()
		repl, err := g.CreateValue(g.Text(sym), g.ValueWidth(v), g.ValueSigned(v), g.ValueType(v))
		if err != nil {
			return err
		}
		if err := g.ReplaceAllUses(v, repl); err != nil {
			return err
		}
		return assignInto(g, repl, driver)
	}

	if outSym, isOutput := g.OutputPortFor(v); isOutput {
		// The symbol table has no rename operation, so rather than
		// relabeling v to an internal name and minting the original
		// name fresh (as a mutable-symbol representation would), a
		// fresh internal-named value takes over as the port's driver
		// and v's old name simply goes unused from here on.
		freshSym := g.MintInternalValueSym()
		fresh, err := g.CreateValue(g.Text(freshSym), g.ValueWidth(v), g.ValueSigned(v), g.ValueType(v))
		if err != nil {
			return err
		}
		if err := g.ReplaceAllUses(v, fresh); err != nil {
			return err
		}
		if err := g.BindOutputPort(g.Text(outSym), fresh); err != nil {
			return err
		}
		return assignInto(g, fresh, driver)
	}

	if g.ValueDefiningOp(v).Valid() {
		ctx.Diagnostics.Warning(passID, g.Text(g.ValueSymbol(v)), "XMR write replaces an existing driver")
	}
	sym := g.MintInternalValueSym()
	fresh, err := g.CreateValue(g.Text(sym), g.ValueWidth(v), g.ValueSigned(v), g.ValueType(v))
	if err != nil {
		return err
	}
	if err := g.ReplaceAllUses(v, fresh); err != nil {
		return err
	}
	return assignInto(g, fresh, driver)
}

func assignInto(g *ir.Graph, target, driver ir.ValueID) error {
	opSym := g.MintInternalOpSym()
	op, err := g.CreateOperation(ir.OpAssign, g.Text(opSym))
	if err != nil {
		return err
	}
	if err := g.AddOperand(op, driver); err != nil {
		return err
	}
	return g.AddResult(op, target)
}

// ---- instance port insertion boundaries ----

func inoutLen(g *ir.Graph, op ir.OperationID) int {
	attr, ok := g.GetAttrByName(op, "inoutPortName")
	if !ok || attr.Kind() != ir.AttrStringArray {
		return 0
	}
	return len(attr.StringArray())
}

func insertionBoundaryForOperand(g *ir.Graph, op ir.OperationID) int {
	return g.OpOperandCount(op) - inoutLen(g, op)
}

func insertionBoundaryForResult(g *ir.Graph, op ir.OperationID) int {
	return g.OpResultCount(op) - inoutLen(g, op)
}

// ---- pad-input phase ----

// padInputs inserts a zero-constant driver for every remaining instance
// of a module whose input-port surface grew during write resolution,
// but that was never itself visited on the XMR path.
func (r *run) padInputs() bool {
	if len(r.grownInputs) == 0 {
		return false
	}
	changed := false

	grownNames := maps.Keys(r.grownInputs)
	sort.Strings(grownNames)

	for _, moduleName := range grownNames {
		child, ok := r.ctx.Netlist.FindGraph(moduleName)
		if !ok {
			continue
		}
		newPorts := newlyAddedPortSyms(child)
		if len(newPorts) == 0 {
			continue
		}
		_ = r.ctx.ForEachGraph(func(parent *ir.Graph) error {
			for _, instOp := range instancesOf(parent, moduleName) {
				for _, portSym := range newPorts {
					boundary := findOperandIndexForInputPort(parent, instOp, child, portSym)
					if boundary < 0 {
						continue
					}
					if boundary < parent.OpOperandCount(instOp) {
						continue // already wired (this instance was on the XMR path)
					}
					v, _ := child.InputPortValue(portSym)
					pad, err := r.padFor(parent, child.ValueWidth(v), child.ValueSigned(v))
					if err != nil {
						r.st.errors++
						continue
					}
					if err := parent.InsertOperand(instOp, boundary, pad); err == nil {
						r.st.padded++
						changed = true
					}
				}
			}
			return nil
		})
	}
	return changed
}

func newlyAddedPortSyms(g *ir.Graph) []ir.SymbolID {
	var out []ir.SymbolID
	for _, sym := range g.InputPorts() {
		if strings.HasPrefix(g.Text(sym), "__xmr_w_") {
			out = append(out, sym)
		}
	}
	return out
}

func instancesOf(g *ir.Graph, moduleName string) []ir.OperationID {
	var out []ir.OperationID
	for _, op := range g.Operations() {
		if g.OpKind(op) != ir.OpInstance {
			continue
		}
		if attr, ok := g.GetAttrByName(op, "moduleName"); ok && attr.Kind() == ir.AttrString && attr.String() == moduleName {
			out = append(out, op)
		}
	}
	return out
}

// findOperandIndexForInputPort returns the operand position an instance
// reserves for the given child input port under the declared port
// order, or -1 if it cannot be determined.
func findOperandIndexForInputPort(parent *ir.Graph, instOp ir.OperationID, child *ir.Graph, portSym ir.SymbolID) int {
	attr, ok := parent.GetAttrByName(instOp, "inputPortName")
	if !ok || attr.Kind() != ir.AttrStringArray {
		return insertionBoundaryForOperand(parent, instOp)
	}
	name := child.Text(portSym)
	for i, n := range attr.StringArray() {
		if n == name {
			return i
		}
	}
	return insertionBoundaryForOperand(parent, instOp)
}

func (r *run) padFor(g *ir.Graph, width int, signed bool) (ir.ValueID, error) {
	cache, ok := r.padCache[g.Name()]
	if !ok {
		cache = make(map[padKey]ir.ValueID)
		r.padCache[g.Name()] = cache
	}
	key := padKey{width: width, signed: signed}
	if v, ok := cache[key]; ok {
		return v, nil
	}

	sign := "u"
	if signed {
		sign = "s"
	}
	symName := fmt.Sprintf("__xmr_pad_in_%d%s", width, sign)
	valSym := g.Intern(symName)
	valID, err := g.CreateValue(symName, width, signed, ir.TypeLogic)
	if err != nil {
		_ = valSym
		return ir.InvalidValueID, err
	}
	opSym := g.MintInternalOpSym()
	op, err := g.CreateOperation(ir.OpConstant, g.Text(opSym))
	if err != nil {
		return ir.InvalidValueID, err
	}
	if err := g.AddResult(op, valID); err != nil {
		return ir.InvalidValueID, err
	}
	if err := g.SetAttrByName(op, "constValue", ir.StringAttr(svint.Zero(width, signed).HexLiteral())); err != nil {
		return ir.InvalidValueID, err
	}
	cache[key] = valID
	return valID, nil
}
