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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/grh/internal/pass"
	"github.com/erigontech/grh/internal/pass/dce"
	"github.com/erigontech/grh/internal/pass/fold"
	"github.com/erigontech/grh/internal/pass/meminit"
	"github.com/erigontech/grh/internal/pass/redundant"
	"github.com/erigontech/grh/internal/pass/xmr"
)

func TestAddPassesDispatchesKnownNames(t *testing.T) {
	mgr := pass.NewManager(pass.Options{}, nil)
	err := addPasses(mgr, []string{"fold", "redundant", "dce", "meminit", "xmr"})
	require.NoError(t, err)

	got := mgr.Passes()
	require.Len(t, got, 5)
	require.IsType(t, &fold.Pass{}, got[0])
	require.IsType(t, &redundant.Pass{}, got[1])
	require.IsType(t, &dce.Pass{}, got[2])
	require.IsType(t, &meminit.Pass{}, got[3])
	require.IsType(t, &xmr.Pass{}, got[4])
}

func TestAddPassesRejectsUnknownName(t *testing.T) {
	mgr := pass.NewManager(pass.Options{}, nil)
	err := addPasses(mgr, []string{"fold", "bogus"})
	require.Error(t, err)
}

func TestWriteOutputToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, writeOutput(path, []byte(`{"ok":true}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, string(data))
}

func TestNewRootCmdHasRunSubcommand(t *testing.T) {
	root := newRootCmd()
	sub, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.Equal(t, "run", sub.Name())
}
