// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "sync/atomic"

// triggerState tracks bytes allocated since the last collection and fires
// an automatic Collect once that total crosses threshold. Deallocations
// (sweep freeing an object) never decrement the counter — spec.md's
// resolved Open Question (a) — so the trigger is purely a function of
// allocation volume, not live-set size.
type triggerState struct {
	allocated atomic.Uint64
	threshold atomic.Uint64
}

var trigger = newTriggerState()

const defaultThreshold = 1 << 20 // 1 MiB, overridable via SetThreshold or GCRT_THRESHOLD

func newTriggerState() *triggerState {
	t := &triggerState{}
	t.threshold.Store(defaultThreshold)
	return t
}

// SetThreshold changes the allocation volume, in bytes, that triggers an
// automatic collection. A threshold of 0 disables the automatic trigger;
// callers must invoke Collect explicitly.
func SetThreshold(bytes uint64) {
	trigger.threshold.Store(bytes)
}

func (t *triggerState) reset() {
	t.allocated.Store(0)
}

// accountAlloc records n newly allocated bytes and runs a collection
// synchronously if that pushes the running total past the threshold.
//
// A finalizer that allocates is free to do so — spec.md leaves destructor-
// triggered allocation during sweep unbounded rather than specially
// metered. Such an allocation can land here while a cycle is already
// running on this goroutine; Collect's own CAS guard makes that call a
// no-op instead of a deadlock, so accountAlloc does not need to check the
// collector's phase itself.
func (t *triggerState) accountAlloc(n uint64) {
	threshold := t.threshold.Load()
	if threshold == 0 {
		return
	}
	total := t.allocated.Add(n)
	if total >= threshold {
		Collect()
	}
}
