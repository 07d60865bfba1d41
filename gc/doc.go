// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gc implements a conservative, stop-the-world, mark-and-sweep
// tracing garbage collector over a heap of raw pages obtained outside the
// host Go runtime's own collector (see arena.go). It exposes managed memory
// to callers through Handle[T], a copyable smart pointer, and requires no
// cooperation from T beyond an optional finalizer registered at
// construction time.
//
// The collector assumes a single mutator goroutine drives allocation and
// collection; see collector.go for the state machine that enforces this.
package gc
