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

// Package frontend declares ModulePlan: the plain data record an
// (out-of-scope) SystemVerilog elaborator hands to a graph-assembly
// layer. It carries no elaboration or lowering logic of its own —
// only the shapes a builder needs to walk to emit an initial Graph.
package frontend

import "github.com/erigontech/grh/internal/numeric"

// PortDirection is the closed set of module port directions.
type PortDirection uint8

const (
	DirIn PortDirection = iota
	DirOut
	DirInout
)

func (d PortDirection) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInout:
		return "inout"
	default:
		return "unknown"
	}
}

// SignalKind is the closed set of signal classifications a ModulePlan
// may attach to a declared symbol.
type SignalKind uint8

const (
	SignalNet SignalKind = iota
	SignalVariable
	SignalMemory
	SignalPort
)

func (k SignalKind) String() string {
	switch k {
	case SignalNet:
		return "Net"
	case SignalVariable:
		return "Variable"
	case SignalMemory:
		return "Memory"
	case SignalPort:
		return "Port"
	default:
		return "Unknown"
	}
}

// Domain is the closed set of update domains a read/write site may
// belong to.
type Domain uint8

const (
	DomainComb Domain = iota
	DomainSeq
	DomainLatch
	DomainUnknown
)

func (d Domain) String() string {
	switch d {
	case DomainComb:
		return "Comb"
	case DomainSeq:
		return "Seq"
	case DomainLatch:
		return "Latch"
	case DomainUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// PortInfo describes one module port. SubIn/SubOut/SubOE name the
// sub-symbols an Inout port's read/write/output-enable split uses;
// all three are empty for a non-inout port.
type PortInfo struct {
	Symbol string
	Dir    PortDirection
	Width  int
	Signed bool
	SubIn  string
	SubOut string
	SubOE  string
}

// SignalInfo describes one declared signal: a net, a procedural
// variable, a memory, or a port alias. MemoryRows is only meaningful
// when Kind is SignalMemory.
type SignalInfo struct {
	Symbol       string
	Kind         SignalKind
	Width        int
	Signed       bool
	MemoryRows   int
	PackedDims   []int
	UnpackedDims []int
}

// TotalBits returns the total storage width the signal occupies: its
// element Width times its MemoryRows (taken as 1 when not positive) times
// the product of every packed and unpacked dimension. ok is false if
// that product overflows a uint64, which a graph-assembly layer should
// treat as a malformed plan rather than silently truncating.
func (s SignalInfo) TotalBits() (total uint64, ok bool) {
	total = uint64(s.Width)
	rows := s.MemoryRows
	if rows <= 0 {
		rows = 1
	}
	var overflow bool
	if total, overflow = numeric.SafeMul(total, uint64(rows)); overflow {
		return 0, false
	}
	for _, d := range s.PackedDims {
		if d <= 0 {
			continue
		}
		if total, overflow = numeric.SafeMul(total, uint64(d)); overflow {
			return 0, false
		}
	}
	for _, d := range s.UnpackedDims {
		if d <= 0 {
			continue
		}
		if total, overflow = numeric.SafeMul(total, uint64(d)); overflow {
			return 0, false
		}
	}
	return total, true
}

// ReadWriteOp records one read or write site against a target signal,
// tagged with the update domain it occurs in.
type ReadWriteOp struct {
	TargetSignal string
	Domain       Domain
	IsWrite      bool
}

// MemoryPortSite describes one access port synthesized against a
// declared memory.
type MemoryPortSite struct {
	Memory   string
	IsRead   bool
	IsWrite  bool
	IsMasked bool
	IsSync   bool
	HasReset bool
}

// ChildInstance records one submodule or blackbox instantiation site.
type ChildInstance struct {
	InstanceName string
	ModuleName   string
	IsBlackbox   bool
}

// ModulePlan is the complete elaborated record of one module, as an
// (out-of-scope) front end would produce it. It carries no behavior:
// a graph-assembly layer external to this module is expected to walk
// it and emit a Graph via internal/ir's builder API.
type ModulePlan struct {
	ModuleSymbol string
	Ports        []PortInfo
	Signals      []SignalInfo
	ReadWrites   []ReadWriteOp
	MemoryPorts  []MemoryPortSite
	Children     []ChildInstance
}
