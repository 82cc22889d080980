// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal"
)

// ShaderBindingTable is a device-resident table of shader-group handles
// (and optional per-entry records), the region a TraceRaysCommand reads
// to dispatch each ray into the right shader group.
type ShaderBindingTable struct {
	tensor *hephaistos.Tensor
	region hal.ShaderBindingTableRegion
}

// NewRangeSBT builds an SBT over [firstGroup, firstGroup+count) with
// handle-only entries: entry_size = align(handleSize, handleAlignment).
func (p *RayTracingPipeline) NewRangeSBT(firstGroup, count uint32) (*ShaderBindingTable, error) {
	handles := p.handle.ShaderGroupHandles()
	handleSize := p.handle.HandleSize()
	groupCount := uint32(len(handles)) / handleSize
	if firstGroup+count > groupCount {
		return nil, invalidArg("NewRangeSBT", "group range out of bounds")
	}

	entrySize := alignUp(handleSize, p.handle.HandleAlignment())
	buf := make([]byte, uint64(entrySize)*uint64(count))
	for i := uint32(0); i < count; i++ {
		g := firstGroup + i
		copy(buf[uint64(i)*uint64(entrySize):], handles[g*handleSize:(g+1)*handleSize])
	}
	return p.uploadSBT(buf, entrySize, count)
}

// SBTEntry is one entry-form SBT row: the shader group whose handle to
// copy (or NoGroupIndex for a handle-less record-only row) plus an
// optional shader record appended after the handle.
type SBTEntry struct {
	GroupIndex uint32
	Record     []byte
}

// NoGroupIndex marks an SBTEntry with no handle, record bytes only.
const NoGroupIndex = ^uint32(0)

// NewEntrySBT builds an SBT from explicit {group, record} rows:
// entry_size = align(handleSize + max(len(record)), handleAlignment).
// An out-of-range GroupIndex (other than NoGroupIndex) is an error.
func (p *RayTracingPipeline) NewEntrySBT(entries []SBTEntry) (*ShaderBindingTable, error) {
	if len(entries) == 0 {
		return nil, invalidArg("NewEntrySBT", "entries must not be empty")
	}
	handles := p.handle.ShaderGroupHandles()
	handleSize := p.handle.HandleSize()
	groupCount := uint32(len(handles)) / handleSize

	maxRecord := 0
	for _, e := range entries {
		if len(e.Record) > maxRecord {
			maxRecord = len(e.Record)
		}
	}
	entrySize := alignUp(handleSize+uint32(maxRecord), p.handle.HandleAlignment())

	buf := make([]byte, uint64(entrySize)*uint64(len(entries)))
	for i, e := range entries {
		off := uint64(i) * uint64(entrySize)
		if e.GroupIndex != NoGroupIndex {
			if e.GroupIndex >= groupCount {
				return nil, invalidArg("NewEntrySBT", "group index out of range")
			}
			copy(buf[off:], handles[e.GroupIndex*handleSize:(e.GroupIndex+1)*handleSize])
		}
		copy(buf[off+uint64(handleSize):], e.Record)
	}
	return p.uploadSBT(buf, entrySize, uint32(len(entries)))
}

func (p *RayTracingPipeline) uploadSBT(buf []byte, entrySize, count uint32) (*ShaderBindingTable, error) {
	t, err := p.ctx.CreateTensor(uint64(len(buf)), true)
	if err != nil {
		return nil, wrapErr("ShaderBindingTable", "", err)
	}
	copy(t.Bytes(), buf)
	t.Flush(0, uint64(len(buf)))
	return &ShaderBindingTable{
		tensor: t,
		region: hal.ShaderBindingTableRegion{Address: t.Address(), Stride: entrySize, Count: count},
	}, nil
}

// Destroy releases the SBT's backing storage.
func (s *ShaderBindingTable) Destroy() { s.tensor.Destroy() }

func alignUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}
