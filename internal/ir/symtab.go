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

	lru "github.com/hashicorp/golang-lru/v2"
)

// symtab is a per-graph string interner. It hands out dense SymbolIDs and
// never reuses or evicts an entry once interned.
type symtab struct {
	interned []string // SymbolID -> string
	toindex  map[string]SymbolID

	// counterCache remembers the next untried counter for a given mint
	// prefix (e.g. "_val_", "_op_") so repeated internal-symbol minting
	// doesn't rescan the interner from zero every time.
	counterCache *lru.Cache[string, int]
}

func newSymtab() *symtab {
	c, err := lru.New[string, int](64)
	if err != nil {
		// Only fails on a non-positive size, which is a fixed constant here.
		panic(fmt.Sprintf("ir: symtab counter cache: %v", err))
	}
	return &symtab{
		toindex:      make(map[string]SymbolID),
		counterCache: c,
	}
}

// intern returns the SymbolID for s, interning it if this is the first
// occurrence. Idempotent.
func (t *symtab) intern(s string) SymbolID {
	if id, ok := t.toindex[s]; ok {
		return id
	}
	id := SymbolID(len(t.interned))
	t.interned = append(t.interned, s)
	t.toindex[s] = id
	return id
}

// lookup returns the SymbolID for s without interning it, or
// InvalidSymbolID if s is not yet known.
func (t *symtab) lookup(s string) SymbolID {
	if id, ok := t.toindex[s]; ok {
		return id
	}
	return InvalidSymbolID
}

// text returns the string for id, or "" if id is invalid.
func (t *symtab) text(id SymbolID) string {
	if !id.Valid() || int(id) >= len(t.interned) {
		return ""
	}
	return t.interned[id]
}

// mintInternal produces a fresh symbol of the form "_<kind>_<counter>",
// advancing counter past any collision with an existing symbol (including
// ones registered by the front end, which this generator does not own).
func (t *symtab) mintInternal(kind string) SymbolID {
	prefix := "_" + kind + "_"
	start := 0
	if n, ok := t.counterCache.Get(prefix); ok {
		start = n
	}
	for n := start; ; n++ {
		cand := fmt.Sprintf("%s%d", prefix, n)
		if t.lookup(cand).Valid() {
			continue
		}
		t.counterCache.Add(prefix, n+1)
		return t.intern(cand)
	}
}
