// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package gc

import "unsafe"

// pinnedBackend is the fallback arena for GOOS targets without mmap. It
// hands out ordinary Go byte slices and pins them for the life of the
// process instead of returning them to the allocator on free: the host Go
// GC has to treat this memory as live heap either way, so there is no
// soundness loss, only the inability to give pages back to the OS.
type pinnedBackend struct {
	pinned [][]byte
}

func newArenaBackend() arenaBackend {
	return &pinnedBackend{}
}

func (b *pinnedBackend) alloc(size uintptr) uintptr {
	buf := make([]byte, size)
	b.pinned = append(b.pinned, buf)
	return uintptr(unsafe.Pointer(&buf[0]))
}

func (b *pinnedBackend) free(base, size uintptr) {
	// Memory stays pinned; this backend trades eager reclamation for
	// portability. See the pinnedBackend doc comment.
}
