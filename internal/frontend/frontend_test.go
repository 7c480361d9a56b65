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

package frontend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModulePlanIsADataRecord(t *testing.T) {
	plan := ModulePlan{
		ModuleSymbol: "adder",
		Ports: []PortInfo{
			{Symbol: "a", Dir: DirIn, Width: 8},
			{Symbol: "y", Dir: DirOut, Width: 8},
			{Symbol: "io", Dir: DirInout, Width: 1, SubIn: "io_i", SubOut: "io_o", SubOE: "io_oe"},
		},
		Signals: []SignalInfo{
			{Symbol: "acc", Kind: SignalVariable, Width: 8},
			{Symbol: "mem", Kind: SignalMemory, Width: 8, MemoryRows: 16},
		},
		ReadWrites: []ReadWriteOp{
			{TargetSignal: "acc", Domain: DomainSeq, IsWrite: true},
			{TargetSignal: "y", Domain: DomainComb, IsWrite: true},
		},
		MemoryPorts: []MemoryPortSite{
			{Memory: "mem", IsRead: true, IsSync: true},
		},
		Children: []ChildInstance{
			{InstanceName: "u0", ModuleName: "sub", IsBlackbox: false},
		},
	}

	require.Equal(t, "adder", plan.ModuleSymbol)
	require.Len(t, plan.Ports, 3)
	require.Equal(t, "inout", plan.Ports[2].Dir.String())
	require.Equal(t, "Memory", plan.Signals[1].Kind.String())
	require.Equal(t, "Seq", plan.ReadWrites[0].Domain.String())
	require.True(t, plan.MemoryPorts[0].IsRead)
	require.Equal(t, "sub", plan.Children[0].ModuleName)
}

func TestSignalInfoTotalBits(t *testing.T) {
	mem := SignalInfo{Kind: SignalMemory, Width: 8, MemoryRows: 16}
	total, ok := mem.TotalBits()
	require.True(t, ok)
	require.Equal(t, uint64(128), total)

	net := SignalInfo{Kind: SignalNet, Width: 4}
	total, ok = net.TotalBits()
	require.True(t, ok)
	require.Equal(t, uint64(4), total)

	huge := SignalInfo{Width: 1 << 40, MemoryRows: 1 << 40}
	_, ok = huge.TotalBits()
	require.False(t, ok)
}
