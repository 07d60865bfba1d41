// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"io"

	"github.com/google/pprof/profile"
)

// DumpProfile writes a pprof heap profile of every currently managed
// allocation to w: one sample per live object, valued by its payload size
// in bytes. It is meant to be loaded with `go tool pprof`, the same way a
// profile from runtime/pprof is, to see what this collector is holding
// onto and why, alongside the host process's own heap profile.
func DumpProfile(w io.Writer) error {
	sizeFn := &profile.Function{ID: 1, Name: "managed_object"}
	sizeLoc := &profile.Location{ID: 1, Line: []profile.Line{{Function: sizeFn}}}

	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "objects", Unit: "count"},
			{Type: "space", Unit: "bytes"},
		},
		PeriodType: &profile.ValueType{Type: "space", Unit: "bytes"},
		Period:     1,
		Function:   []*profile.Function{sizeFn},
		Location:   []*profile.Location{sizeLoc},
	}

	globalIndex.iter(func(info ptrInfo) bool {
		if !info.Managed {
			return true
		}
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{sizeLoc},
			Value:    []int64{1, int64(info.Size)},
		})
		return true
	})

	return p.Write(w)
}
