// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// WholeSize requests "the rest of the resource from offset" when passed
// as a copy command's size parameter.
const WholeSize = ^uint64(0)

func effectiveSize(size, offset, total uint64) uint64 {
	if size == WholeSize {
		return total - offset
	}
	return size
}

func checkCopyBounds(op string, srcCtx, dstCtx *Context, srcOffset, srcSize, srcTotal, dstOffset, dstSize, dstTotal uint64) error {
	if srcCtx != dstCtx {
		return invalidArg(op, "source and destination belong to different contexts")
	}
	if srcSize != dstSize {
		return invalidArg(op, "source and destination sizes do not match")
	}
	if srcOffset+srcSize > srcTotal {
		return invalidArg(op, "source range out of bounds")
	}
	if dstOffset+dstSize > dstTotal {
		return invalidArg(op, "destination range out of bounds")
	}
	return nil
}

// RetrieveTensorCommand copies a device tensor range into a host staging
// buffer ("retrieve").
type RetrieveTensorCommand struct {
	src               *Tensor
	dst               *Buffer
	srcOffset, dstOffset, size uint64
	unsafe            bool
}

// NewRetrieveTensorCommand validates the three copy invariants (same
// context, size match, in-bounds) and returns a command ready to record.
// size may be WholeSize to mean "the rest of src from srcOffset".
func NewRetrieveTensorCommand(src *Tensor, dst *Buffer, srcOffset, dstOffset, size uint64) (*RetrieveTensorCommand, error) {
	srcSize := effectiveSize(size, srcOffset, src.SizeBytes())
	dstSize := effectiveSize(size, dstOffset, dst.SizeBytes())
	if err := checkCopyBounds("NewRetrieveTensorCommand", src.ctx, dst.ctx, srcOffset, srcSize, src.SizeBytes(), dstOffset, dstSize, dst.SizeBytes()); err != nil {
		return nil, err
	}
	return &RetrieveTensorCommand{src: src, dst: dst, srcOffset: srcOffset, dstOffset: dstOffset, size: srcSize}, nil
}

// Unsafe marks the command as caller-synchronized, skipping the
// automatic pre/post barriers.
func (c *RetrieveTensorCommand) Unsafe() *RetrieveTensorCommand { c.unsafe = true; return c }

func (c *RetrieveTensorCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	region := hal.BufferCopyRegion{SrcOffset: c.srcOffset, DstOffset: c.dstOffset, Size: c.size}
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.src.resource(), Offset: c.srcOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
				DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessMemoryWrite, DstAccess: hal.AccessTransferRead},
			{Buffer: c.dst.resource(), Offset: c.dstOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer), DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessTransferRead | hal.AccessTransferWrite, DstAccess: hal.AccessTransferWrite},
		}, nil, nil)
	}
	rec.CopyBufferToBuffer(c.src.resource(), c.dst.resource(), region)
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.dst.resource(), Offset: c.dstOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer), DstStage: hal.PipelineStageMask(hal.PipelineStageHost),
				SrcAccess: hal.AccessTransferWrite, DstAccess: hal.AccessHostRead},
		}, nil, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}

// UpdateTensorCommand copies a host staging buffer range into a device
// tensor ("update").
type UpdateTensorCommand struct {
	src               *Buffer
	dst               *Tensor
	srcOffset, dstOffset, size uint64
	unsafe            bool
}

// NewUpdateTensorCommand validates the three copy invariants and returns
// a command ready to record. size may be WholeSize.
func NewUpdateTensorCommand(src *Buffer, dst *Tensor, srcOffset, dstOffset, size uint64) (*UpdateTensorCommand, error) {
	srcSize := effectiveSize(size, srcOffset, src.SizeBytes())
	dstSize := effectiveSize(size, dstOffset, dst.SizeBytes())
	if err := checkCopyBounds("NewUpdateTensorCommand", src.ctx, dst.ctx, srcOffset, srcSize, src.SizeBytes(), dstOffset, dstSize, dst.SizeBytes()); err != nil {
		return nil, err
	}
	return &UpdateTensorCommand{src: src, dst: dst, srcOffset: srcOffset, dstOffset: dstOffset, size: srcSize}, nil
}

func (c *UpdateTensorCommand) Unsafe() *UpdateTensorCommand { c.unsafe = true; return c }

func (c *UpdateTensorCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	region := hal.BufferCopyRegion{SrcOffset: c.srcOffset, DstOffset: c.dstOffset, Size: c.size}
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.dst.resource(), Offset: c.dstOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
				DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite, DstAccess: hal.AccessTransferWrite},
			{Buffer: c.src.resource(), Offset: c.srcOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageHost), DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessHostWrite, DstAccess: hal.AccessTransferRead},
		}, nil, nil)
	}
	rec.CopyBufferToBuffer(c.src.resource(), c.dst.resource(), region)
	if !c.unsafe {
		rec.PipelineBarrier([]hal.BufferBarrier{
			{Buffer: c.dst.resource(), Offset: c.dstOffset, Size: c.size,
				SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
				DstStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
				SrcAccess: hal.AccessTransferWrite, DstAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite},
		}, nil, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}

// RetrieveImageCommand copies an Image's or Texture's pixels into a
// host-visible ImageBuffer, transitioning the source to transfer-src
// layout and back.
type RetrieveImageCommand struct {
	src    imageLike
	dst    *ImageBuffer
	unsafe bool
}

// imageLike is satisfied by *Image and *Texture; the two differ only in
// their rest layout (general vs shader-read-only-optimal).
type imageLike interface {
	resource() hal.Resource
	SizeBytes() uint64
	restLayout() hal.ImageLayout
}

func (i *Image) restLayout() hal.ImageLayout   { return hal.ImageLayoutGeneral }
func (t *Texture) restLayout() hal.ImageLayout { return hal.ImageLayoutShaderReadOnlyOptimal }

// NewRetrieveImageCommand validates that src and dst describe the same
// byte size and originate from the same context.
func NewRetrieveImageCommand(src imageLike, dst *ImageBuffer) (*RetrieveImageCommand, error) {
	if err := checkCopyBounds("NewRetrieveImageCommand", ownerCtx(src), dst.ctx, 0, src.SizeBytes(), src.SizeBytes(), 0, dst.SizeBytes(), dst.SizeBytes()); err != nil {
		return nil, err
	}
	return &RetrieveImageCommand{src: src, dst: dst}, nil
}

func (c *RetrieveImageCommand) Unsafe() *RetrieveImageCommand { c.unsafe = true; return c }

func (c *RetrieveImageCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.src.resource(), OldLayout: c.src.restLayout(), NewLayout: hal.ImageLayoutTransferSrcOptimal,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute), DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
			SrcAccess: hal.AccessMemoryWrite, DstAccess: hal.AccessTransferRead,
		}}, nil)
	}
	rec.CopyImageToBuffer(c.src.resource(), c.dst.resource(), c.src.SizeBytes())
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.src.resource(), OldLayout: hal.ImageLayoutTransferSrcOptimal, NewLayout: c.src.restLayout(),
			SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer), DstStage: hal.PipelineStageMask(hal.PipelineStageHost),
			SrcAccess: hal.AccessTransferRead, DstAccess: hal.AccessHostRead,
		}}, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}

// UpdateImageCommand copies a host-visible ImageBuffer's pixels into an
// Image, transitioning the image to transfer-dst layout and back to
// general.
type UpdateImageCommand struct {
	src    *ImageBuffer
	dst    *Image
	unsafe bool
}

func NewUpdateImageCommand(src *ImageBuffer, dst *Image) (*UpdateImageCommand, error) {
	if err := checkCopyBounds("NewUpdateImageCommand", src.ctx, dst.ctx, 0, src.SizeBytes(), src.SizeBytes(), 0, dst.SizeBytes(), dst.SizeBytes()); err != nil {
		return nil, err
	}
	return &UpdateImageCommand{src: src, dst: dst}, nil
}

func (c *UpdateImageCommand) Unsafe() *UpdateImageCommand { c.unsafe = true; return c }

func (c *UpdateImageCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.dst.resource(), OldLayout: hal.ImageLayoutGeneral, NewLayout: hal.ImageLayoutTransferDstOptimal,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute), DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
			SrcAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite, DstAccess: hal.AccessTransferWrite,
		}}, nil)
	}
	rec.CopyBufferToImage(c.src.resource(), c.dst.resource(), c.dst.SizeBytes())
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.dst.resource(), OldLayout: hal.ImageLayoutTransferDstOptimal, NewLayout: hal.ImageLayoutGeneral,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer), DstStage: hal.PipelineStageMask(hal.PipelineStageCompute),
			SrcAccess: hal.AccessTransferWrite, DstAccess: hal.AccessMemoryRead | hal.AccessMemoryWrite,
		}}, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}

// UpdateTextureCommand copies a host-visible ImageBuffer's pixels into a
// Texture, transitioning the texture to transfer-dst layout and back to
// shader-read-only-optimal.
type UpdateTextureCommand struct {
	src    *ImageBuffer
	dst    *Texture
	unsafe bool
}

func NewUpdateTextureCommand(src *ImageBuffer, dst *Texture) (*UpdateTextureCommand, error) {
	if err := checkCopyBounds("NewUpdateTextureCommand", src.ctx, dst.ctx, 0, src.SizeBytes(), src.SizeBytes(), 0, dst.SizeBytes(), dst.SizeBytes()); err != nil {
		return nil, err
	}
	return &UpdateTextureCommand{src: src, dst: dst}, nil
}

func (c *UpdateTextureCommand) Unsafe() *UpdateTextureCommand { c.unsafe = true; return c }

func (c *UpdateTextureCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.dst.resource(), OldLayout: hal.ImageLayoutShaderReadOnlyOptimal, NewLayout: hal.ImageLayoutTransferDstOptimal,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute), DstStage: hal.PipelineStageMask(hal.PipelineStageTransfer),
			SrcAccess: hal.AccessShaderRead, DstAccess: hal.AccessTransferWrite,
		}}, nil)
	}
	rec.CopyBufferToImage(c.src.resource(), c.dst.resource(), c.dst.SizeBytes())
	if !c.unsafe {
		rec.PipelineBarrier(nil, []hal.ImageBarrier{{
			Image: c.dst.resource(), OldLayout: hal.ImageLayoutTransferDstOptimal, NewLayout: hal.ImageLayoutShaderReadOnlyOptimal,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer), DstStage: hal.PipelineStageMask(hal.PipelineStageCompute),
			SrcAccess: hal.AccessTransferWrite, DstAccess: hal.AccessShaderRead,
		}}, nil)
	}
	return hal.PipelineStageMask(hal.PipelineStageTransfer)
}

func ownerCtx(i imageLike) *Context {
	switch v := i.(type) {
	case *Image:
		return v.ctx
	case *Texture:
		return v.ctx
	default:
		return nil
	}
}
