// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "golang.org/x/xerrors"

// errIndexOverlap is raised when a newly registered allocation range
// overlaps one already tracked by the metadata index. This indicates a bug
// in the arena, not anything a caller can recover from.
var errIndexOverlap = xerrors.New("gc: allocation range overlaps an existing one")

// errAllocationFailure is raised when the arena cannot satisfy a page
// request. Handles are never null by contract, so there is no representable
// "allocation failed" return from New; this is fatal.
var errAllocationFailure = xerrors.New("gc: system allocator returned no memory")

// fatal reports an unrecoverable allocator or index invariant violation by
// panicking with err wrapped by xerrors.Errorf; unless a caller recovers
// the panic, the process terminates. Mirrors the runtime's throw: the mutator has no
// meaningful way to continue once the allocator's bookkeeping is suspect.
func fatal(err error) {
	panic(xerrors.Errorf("gc: fatal: %w", err))
}

// destructorPanic wraps a panic recovered from a user finalizer so sweep
// can finish deallocating the current slot before re-raising it.
type destructorPanic struct {
	addr uintptr
	val  any
}

func (d *destructorPanic) Error() string {
	return xerrors.Errorf("gc: destructor for object at %#x panicked: %v", d.addr, d.val).Error()
}
