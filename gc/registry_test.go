// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"reflect"
	"testing"
)

func TestRegistryRegisterLookupRelease(t *testing.T) {
	r := &registry{entries: make(map[uint64]descriptor)}

	id := r.register(descriptor{typ: reflect.TypeOf(0), pinned: 42})
	d, ok := r.lookup(id)
	if !ok {
		t.Fatal("lookup after register: not found")
	}
	if d.pinned != 42 {
		t.Fatalf("pinned = %v; want 42", d.pinned)
	}

	r.release(id)
	if _, ok := r.lookup(id); ok {
		t.Fatal("lookup after release: still found")
	}
}

func TestRegistryIDsAreUnique(t *testing.T) {
	r := &registry{entries: make(map[uint64]descriptor)}
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		id := r.register(descriptor{})
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if r.count() != 1000 {
		t.Fatalf("count = %d; want 1000", r.count())
	}
}
