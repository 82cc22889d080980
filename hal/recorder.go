// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

// BufferBarrier requests a memory-dependency between two stage/access
// pairs on (a sub-range of) a buffer or tensor.
type BufferBarrier struct {
	Buffer               Resource // the Buffer or Tensor being transitioned
	Offset, Size         uint64
	SrcStage, DstStage   PipelineStageMask
	SrcAccess, DstAccess AccessFlag
}

// ImageBarrier requests a layout transition and/or memory-dependency for
// an image or texture.
type ImageBarrier struct {
	Image                Resource // the Image or Texture being transitioned
	OldLayout, NewLayout ImageLayout
	SrcStage, DstStage   PipelineStageMask
	SrcAccess, DstAccess AccessFlag
}

// MemoryBarrier is a global (not resource-scoped) memory dependency, used
// by FlushMemoryCommand to order two compute steps without a timeline
// boundary.
type MemoryBarrier struct {
	SrcStage, DstStage   PipelineStageMask
	SrcAccess, DstAccess AccessFlag
}

// BufferCopyRegion describes one buffer-to-buffer copy.
type BufferCopyRegion struct {
	SrcOffset, DstOffset, Size uint64
}

// DescriptorWrite attaches a concrete resource to one reflected binding
// for the duration of a dispatch or trace-rays command.
type DescriptorWrite struct {
	Binding uint32
	Kind    ParameterKind

	// Exactly one of the following is populated, matching Kind.
	Buffer                Resource // Tensor, for uniform/storage buffer bindings
	BufferOffset, BufferSize uint64
	Image                 Resource // Image or Texture
	AccelStruct            Resource // AccelerationStructure
}

// Recorder is the command-recording surface shared by inline Commands and
// Subroutines. It corresponds to one open command buffer.
type Recorder interface {
	PipelineBarrier(buffers []BufferBarrier, images []ImageBarrier, global []MemoryBarrier)

	CopyBufferToBuffer(src, dst Resource, region BufferCopyRegion)
	FillBuffer(dst Resource, offset, size uint64, word uint32)
	CopyBufferToImage(src Resource, dst Resource, dstSizeBytes uint64)
	CopyImageToBuffer(src Resource, dst Resource, srcSizeBytes uint64)

	BindComputePipeline(pipeline ComputePipeline)
	PushDescriptorSet(layout PipelineLayout, writes []DescriptorWrite)
	PushConstants(layout PipelineLayout, stages ShaderStageMask, data []byte)
	Dispatch(x, y, z uint32)
	DispatchIndirect(buf Resource, offset uint64)

	BindRayTracingPipeline(pipeline RayTracingPipelineHandle)
	TraceRays(pipeline RayTracingPipelineHandle, bindings ShaderBindingRegions, x, y, z uint32)
	TraceRaysIndirect(pipeline RayTracingPipelineHandle, bindings ShaderBindingRegions, indirectAddr uint64)

	BuildAccelerationStructures(builds []AccelBuild)

	WriteTimestamp(pool QueryPool, index uint32, stage PipelineStage)
}

// ShaderBindingRegions bundles the four SBT regions a trace-rays command
// consumes.
type ShaderBindingRegions struct {
	RayGen, Miss, Hit, Callable ShaderBindingTableRegion
}

// ShaderBindingTableRegion is a device-address range of (handle[,record])
// entries consulted by the ray-tracing pipeline.
type ShaderBindingTableRegion struct {
	Address uint64
	Stride  uint32
	Count   uint32
}
