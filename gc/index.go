// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"sort"
	"sync"
)

// ptrInfo is the allocation record spec.md calls PtrInfo: the half-open
// range [Base, Base+Size) of a single allocation, and whether it came
// through the managed allocator (and therefore carries a blockHeader
// immediately before Base).
type ptrInfo struct {
	Base    uintptr
	Size    uintptr
	Managed bool
}

func (r ptrInfo) contains(word uintptr) bool {
	return word >= r.Base && word < r.Base+r.Size
}

// ptrIndex is the process-wide allocation metadata index: given any machine
// word, it answers whether that word could be a pointer into a live
// allocation. Ranges are kept sorted by Base so find is a binary search;
// insert/remove keep that invariant.
//
// The collector never allocates while it holds the world stopped, so a
// snapshot taken at the start of iter stays valid for the duration of a
// mark or sweep phase.
type ptrIndex struct {
	mu   sync.RWMutex
	recs []ptrInfo
}

var globalIndex ptrIndex

func (x *ptrIndex) search(base uintptr) int {
	return sort.Search(len(x.recs), func(i int) bool { return x.recs[i].Base >= base })
}

// insert records a new allocation range. It is a fatal error (IndexOverlap)
// for the new range to overlap an existing one.
func (x *ptrIndex) insert(base, size uintptr, managed bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.search(base)
	if i < len(x.recs) && x.recs[i].Base < base+size {
		fatal(errIndexOverlap)
	}
	if i > 0 {
		prev := x.recs[i-1]
		if prev.Base+prev.Size > base {
			fatal(errIndexOverlap)
		}
	}

	x.recs = append(x.recs, ptrInfo{})
	copy(x.recs[i+1:], x.recs[i:])
	x.recs[i] = ptrInfo{Base: base, Size: size, Managed: managed}
}

// remove deletes the record with the exact given base. It is a no-op if no
// such record exists (sweep may race a direct free in tests, but never in
// the collector itself since the world is stopped during sweep).
func (x *ptrIndex) remove(base uintptr) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := x.search(base)
	if i < len(x.recs) && x.recs[i].Base == base {
		x.recs = append(x.recs[:i], x.recs[i+1:]...)
	}
}

// find returns the unique record containing word, if any.
func (x *ptrIndex) find(word uintptr) (ptrInfo, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	i := x.search(word)
	// word may fall inside the record that starts at or before it.
	if i < len(x.recs) && x.recs[i].Base == word {
		return x.recs[i], true
	}
	if i > 0 && x.recs[i-1].contains(word) {
		return x.recs[i-1], true
	}
	return ptrInfo{}, false
}

// iter calls fn for every record in base order. fn must not mutate the
// index; it is the caller's job to not allocate managed memory from within
// fn during a collection.
func (x *ptrIndex) iter(fn func(ptrInfo) bool) {
	x.mu.RLock()
	snapshot := make([]ptrInfo, len(x.recs))
	copy(snapshot, x.recs)
	x.mu.RUnlock()

	for _, r := range snapshot {
		if !fn(r) {
			return
		}
	}
}

// len reports the number of tracked ranges (test helper).
func (x *ptrIndex) len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.recs)
}
