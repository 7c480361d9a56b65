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

package pass

import (
	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/pkg/grhlog"
)

// Options configures a PassManager's run-level policy.
type Options struct {
	// StopOnError terminates the pipeline after a pass whose own result
	// failed, or that left an Error-severity diagnostic behind.
	StopOnError bool
	Verbose     bool
}

// TransformResult is the outcome a PassManager.Run hands back to its
// caller: no exception ever propagates across the pipeline boundary,
// only this plus the accumulated Diagnostics.
type TransformResult struct {
	Success bool
	Changed bool
}

// Manager holds an ordered pipeline of passes and runs them
// sequentially against a netlist.
type Manager struct {
	passes  []Pass
	options Options
	logger  *grhlog.Logger
}

// NewManager builds a pipeline manager. A nil logger is replaced with a
// silent one so passes can always call ctx.Logger without a nil check.
func NewManager(options Options, logger *grhlog.Logger) *Manager {
	if logger == nil {
		logger = grhlog.NewLogger(grhlog.NopSink{}, grhlog.Off)
	}
	return &Manager{options: options, logger: logger}
}

// Add appends p to the end of the pipeline.
func (m *Manager) Add(p Pass) { m.passes = append(m.passes, p) }

// Passes returns the pipeline in run order.
func (m *Manager) Passes() []Pass { return append([]Pass(nil), m.passes...) }

// Run executes the pipeline against netlist sequentially, sharing
// diagnostics across every pass. See §4.5 of the design notes for the
// stop_on_error/changed-aggregation semantics this implements exactly.
func (m *Manager) Run(netlist *ir.Netlist, diagnostics *Diagnostics) TransformResult {
	if diagnostics == nil {
		diagnostics = NewDiagnostics()
	}
	ctx := &Context{
		Netlist:     netlist,
		Diagnostics: diagnostics,
		Logger:      m.logger,
		Verbose:     m.options.Verbose,
	}

	changed := false
	anyFailed := false

	for _, p := range m.passes {
		result := p.Run(ctx)
		changed = changed || result.Changed
		if result.Failed {
			anyFailed = true
		}
		if m.logger != nil {
			m.logger.Debugf("pass", "%s: changed=%v failed=%v", p.ID(), result.Changed, result.Failed)
		}
		if (result.Failed || diagnostics.HasError()) && m.options.StopOnError {
			return TransformResult{Success: false, Changed: changed}
		}
	}

	success := !anyFailed && !diagnostics.HasError()
	return TransformResult{Success: success, Changed: changed}
}
