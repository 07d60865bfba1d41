// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package gc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapBackend obtains pages directly from the kernel via mmap, the same
// way the host runtime's own pagealloc does. Unlike the host runtime, it
// issues one mapping per allocation: this collector favours the simplicity
// of munmap-on-sweep over span-style batching, since mutator throughput is
// explicitly out of scope.
type mmapBackend struct {
	pageSize uintptr
}

func newArenaBackend() arenaBackend {
	return &mmapBackend{pageSize: uintptr(unix.Getpagesize())}
}

func (b *mmapBackend) roundUp(size uintptr) uintptr {
	return (size + b.pageSize - 1) &^ (b.pageSize - 1)
}

func (b *mmapBackend) alloc(size uintptr) uintptr {
	n := b.roundUp(size)
	buf, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}

func (b *mmapBackend) free(base, size uintptr) {
	n := b.roundUp(size)
	buf := unsafe.Slice((*byte)(unsafe.Pointer(base)), n)
	// Best-effort: the process is shutting the mapping down, not the
	// mutator's own memory, so an error here is not actionable.
	_ = unix.Munmap(buf)
}
