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

import "github.com/RoaringBitmap/roaring/v2"

// roaringLite is a thin wrapper around a compressed bitmap of dense IDs,
// used to mark erased value/operation slots as tombstoned without
// shrinking or reindexing the backing arena (erasure must not invalidate
// IDs a pass's worklist has already captured). A roaring bitmap beats a
// plain []bool here once a graph's erased fraction is sparse relative to
// its arena size, which is the common case mid-pass.
type roaringLite struct {
	bm *roaring.Bitmap
}

func newRoaringLite() *roaringLite {
	return &roaringLite{bm: roaring.New()}
}

func (r *roaringLite) add(id uint32)           { r.bm.Add(id) }
func (r *roaringLite) contains(id uint32) bool { return r.bm.Contains(id) }
func (r *roaringLite) remove(id uint32)        { r.bm.Remove(id) }
func (r *roaringLite) cardinality() uint64     { return r.bm.GetCardinality() }

func (r *roaringLite) clone() *roaringLite {
	return &roaringLite{bm: r.bm.Clone()}
}
