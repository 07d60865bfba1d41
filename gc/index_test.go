// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "testing"

func freshIndex() *ptrIndex {
	return &ptrIndex{}
}

func TestPtrIndexFindExactAndInterior(t *testing.T) {
	idx := freshIndex()
	idx.insert(0x1000, 0x40, true)
	idx.insert(0x2000, 0x10, false)

	if info, ok := idx.find(0x1000); !ok || !info.Managed {
		t.Fatalf("find(base) = %+v, %v; want managed hit", info, ok)
	}
	if info, ok := idx.find(0x1010); !ok || info.Base != 0x1000 {
		t.Fatalf("find(interior) = %+v, %v; want base 0x1000", info, ok)
	}
	if info, ok := idx.find(0x1040); ok {
		t.Fatalf("find(one past end) = %+v, true; want miss", info)
	}
	if info, ok := idx.find(0x2005); !ok || info.Managed {
		t.Fatalf("find(unmanaged interior) = %+v, %v; want unmanaged hit", info, ok)
	}
	if _, ok := idx.find(0x3000); ok {
		t.Fatal("find(untracked) = true; want miss")
	}
}

func TestPtrIndexRemove(t *testing.T) {
	idx := freshIndex()
	idx.insert(0x1000, 0x10, true)
	idx.insert(0x2000, 0x10, true)

	idx.remove(0x1000)
	if idx.len() != 1 {
		t.Fatalf("len after remove = %d; want 1", idx.len())
	}
	if _, ok := idx.find(0x1000); ok {
		t.Fatal("removed record still found")
	}
	if _, ok := idx.find(0x2000); !ok {
		t.Fatal("surviving record not found")
	}
}

func TestPtrIndexRemoveMissingIsNoop(t *testing.T) {
	idx := freshIndex()
	idx.insert(0x1000, 0x10, true)
	idx.remove(0x9999)
	if idx.len() != 1 {
		t.Fatalf("len = %d; want 1 (remove of absent base should be a no-op)", idx.len())
	}
}

func TestPtrIndexOverlapIsFatal(t *testing.T) {
	idx := freshIndex()
	idx.insert(0x1000, 0x20, true)

	defer func() {
		if recover() == nil {
			t.Fatal("overlapping insert did not panic")
		}
	}()
	idx.insert(0x1010, 0x20, true)
}

func TestPtrIndexStaysSortedAndDisjoint(t *testing.T) {
	idx := freshIndex()
	bases := []uintptr{0x5000, 0x1000, 0x3000, 0x2000, 0x4000}
	for _, b := range bases {
		idx.insert(b, 0x10, true)
	}

	var prevEnd uintptr
	idx.iter(func(info ptrInfo) bool {
		if info.Base < prevEnd {
			t.Fatalf("records not sorted/disjoint: base %#x precedes previous end %#x", info.Base, prevEnd)
		}
		prevEnd = info.Base + info.Size
		return true
	})
}
