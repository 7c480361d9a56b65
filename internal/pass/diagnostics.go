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

// DiagnosticKind is the closed severity set a PassDiagnostic carries.
type DiagnosticKind int

const (
	DiagInfo DiagnosticKind = iota
	DiagWarning
	DiagError
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagInfo:
		return "info"
	case DiagWarning:
		return "warning"
	case DiagError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported finding: a severity, a human message, a
// free-form context string (typically the offending op/value symbol),
// and the name of the pass that raised it.
type Diagnostic struct {
	Kind     DiagnosticKind
	Message  string
	Context  string
	PassName string
}

// Diagnostics accumulates Diagnostic values across an entire pipeline
// run. It is shared by reference through Context so every pass appends
// to the same sink.
type Diagnostics struct {
	items []Diagnostic
}

func NewDiagnostics() *Diagnostics { return &Diagnostics{} }

func (d *Diagnostics) Add(diag Diagnostic) { d.items = append(d.items, diag) }

func (d *Diagnostics) Error(passName, context, message string) {
	d.Add(Diagnostic{Kind: DiagError, Message: message, Context: context, PassName: passName})
}

func (d *Diagnostics) Warning(passName, context, message string) {
	d.Add(Diagnostic{Kind: DiagWarning, Message: message, Context: context, PassName: passName})
}

func (d *Diagnostics) Info(passName, context, message string) {
	d.Add(Diagnostic{Kind: DiagInfo, Message: message, Context: context, PassName: passName})
}

// HasError reports whether at least one Error-severity diagnostic has
// been recorded.
func (d *Diagnostics) HasError() bool {
	for _, item := range d.items {
		if item.Kind == DiagError {
			return true
		}
	}
	return false
}

// Items returns every recorded diagnostic, in recording order.
func (d *Diagnostics) Items() []Diagnostic { return append([]Diagnostic(nil), d.items...) }

// ForPass filters Items to a single pass's own diagnostics.
func (d *Diagnostics) ForPass(passName string) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.items {
		if item.PassName == passName {
			out = append(out, item)
		}
	}
	return out
}
