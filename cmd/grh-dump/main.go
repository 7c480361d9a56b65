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

// Command grh-dump is an illustrative driver over the pass pipeline: it
// reads a JSON netlist, runs a configurable subset of the fold/
// redundant/dce/xmr/meminit passes against it, and re-emits either the
// transformed netlist as JSON or a Graphviz dump of one of its graphs.
// It demonstrates the library end to end; it is not part of the core
// contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erigontech/grh/internal/ir"
	"github.com/erigontech/grh/internal/ir/dotdump"
	"github.com/erigontech/grh/internal/pass"
	"github.com/erigontech/grh/internal/pass/dce"
	"github.com/erigontech/grh/internal/pass/fold"
	"github.com/erigontech/grh/internal/pass/meminit"
	"github.com/erigontech/grh/internal/pass/redundant"
	"github.com/erigontech/grh/internal/pass/xmr"
	"github.com/erigontech/grh/pkg/grhlog"
	grhir "github.com/erigontech/grh/pkg/ir"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "grh-dump",
		Short:         "Run the grh pass pipeline over a JSON netlist and re-emit it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		inPath    string
		outPath   string
		dotGraph  string
		passNames []string
		stopOnErr bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Decode a netlist, run passes, emit JSON or a .dot dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", inPath, err)
			}
			netlist, err := ir.DecodeNetlist(data)
			if err != nil {
				return fmt.Errorf("decoding netlist: %w", err)
			}

			logger := newLogger(verbose)
			mgr := pass.NewManager(pass.Options{StopOnError: stopOnErr, Verbose: verbose}, logger)
			if err := addPasses(mgr, passNames); err != nil {
				return err
			}

			diags := pass.NewDiagnostics()
			result := mgr.Run(netlist, diags)
			for _, d := range diags.Items() {
				fmt.Fprintf(os.Stderr, "[%s] %s: %s (%s)\n", d.Kind, d.PassName, d.Message, d.Context)
			}
			if !result.Success {
				return fmt.Errorf("pipeline failed")
			}

			if dotGraph != "" {
				g, ok := netlist.FindGraph(dotGraph)
				if !ok {
					return fmt.Errorf("graph %q not found in netlist", dotGraph)
				}
				out := dotdump.Render(grhir.NewGraphView(g))
				return writeOutput(outPath, []byte(out))
			}

			return writeOutput(outPath, ir.EncodeNetlist(netlist, ir.Pretty))
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "path to the input JSON netlist (required)")
	cmd.Flags().StringVar(&outPath, "out", "-", "output path, or - for stdout")
	cmd.Flags().StringVar(&dotGraph, "dot", "", "if set, emit a Graphviz dump of the named graph instead of JSON")
	cmd.Flags().StringSliceVar(&passNames, "passes", []string{"fold", "redundant", "dce", "meminit", "xmr"}, "ordered list of passes to run")
	cmd.Flags().BoolVar(&stopOnErr, "stop-on-error", true, "stop the pipeline after the first failing pass")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func addPasses(mgr *pass.Manager, names []string) error {
	for _, name := range names {
		switch name {
		case "fold":
			mgr.Add(fold.New(fold.DefaultOptions()))
		case "redundant":
			mgr.Add(redundant.New())
		case "dce":
			mgr.Add(dce.New())
		case "meminit":
			mgr.Add(meminit.New())
		case "xmr":
			mgr.Add(xmr.New())
		default:
			return fmt.Errorf("unknown pass %q", name)
		}
	}
	return nil
}

func newLogger(verbose bool) *grhlog.Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		return grhlog.NewLogger(grhlog.NopSink{}, grhlog.Off)
	}
	threshold := grhlog.Info
	if verbose {
		threshold = grhlog.Debug
	}
	return grhlog.NewLogger(grhlog.NewZapSink(zl), threshold)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
