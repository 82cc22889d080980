// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// FillTensorCommand fills a tensor range with a repeated 32-bit word,
// guarded by the same pre/post-barrier policy as UpdateTensorCommand.
type FillTensorCommand struct {
	dst            *Tensor
	offset, size   uint64
	word           uint32
	unsafe         bool
}

// NewFillTensorCommand validates the in-bounds invariant. size may be
// WholeSize to mean "the rest of dst from offset".
func NewFillTensorCommand(dst *Tensor, offset, size uint64, word uint32) (*FillTensorCommand, error) {
	eff := effectiveSize(size, offset, dst.SizeBytes())
	if offset+eff > dst.SizeBytes() {
		return nil, invalidArg("NewFillTensorCommand", "range out of bounds")
	}
	if eff%4 != 0 {
		return nil, invalidArg("NewFillTensorCommand", "size must be a multiple of 4")
	}
	return &FillTensorCommand{dst: dst, offset: offset, size: eff, word: word}, nil
}

func (c *FillTensorCommand) Unsafe() *FillTensorCommand { c.unsafe = true; return c }

func (c *FillTensorCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.dst.resource(), Offset: c.offset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
				DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite, DstAccess: hal.AccessTransferWrite},
		}, nil, nil)
	}
	rec.FillBuffer(c.dst.resource(), c.offset, c.size, c.word)
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.dst.resource(), Offset: c.offset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				DstStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessTransferWrite, DstAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite},
		}, nil, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}
