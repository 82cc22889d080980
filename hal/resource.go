// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

// Resource is the base interface for every GPU-backed handle. Resources
// must be explicitly destroyed to free GPU memory; calling Destroy more
// than once is undefined behavior.
type Resource interface {
	Destroy()
}

// Buffer is a host-visible staging allocation: a persistently mapped,
// host-coherent byte range.
type Buffer interface {
	Resource
	// Bytes returns the mapped byte span backing the buffer. Valid for
	// the buffer's entire lifetime.
	Bytes() []byte
	SizeBytes() uint64
}

// Tensor is a device-local allocation usable as storage, uniform,
// indirect-dispatch source, and shader-device-address target. It may
// optionally also be host-mapped.
type Tensor interface {
	Resource
	SizeBytes() uint64
	// Address returns the device address captured at creation. Non-zero.
	Address() uint64
	// Mapped reports whether the tensor exposes a host-visible mapping.
	Mapped() bool
	// Bytes returns the mapped byte span, or nil if Mapped() is false.
	Bytes() []byte
	// Flush and Invalidate perform the non-coherent cache op for the
	// given byte range; no-ops on coherent memory.
	Flush(offset, size uint64)
	Invalidate(offset, size uint64)
}

// Image is a storage-writable 1D/2D/3D pixel region (layout = general).
type Image interface {
	Resource
	Width() uint32
	Height() uint32
	Depth() uint32
	Format() ImageFormat
	SizeBytes() uint64
}

// SamplerDesc configures a Texture's attached sampler.
type SamplerDesc struct {
	AddressModeU, AddressModeV, AddressModeW AddressMode
	Filter                                   Filter
	UnnormalizedCoordinates                  bool
}

type AddressMode uint32

const (
	AddressModeRepeat AddressMode = iota
	AddressModeMirroredRepeat
	AddressModeClampToEdge
	AddressModeMirrorClampToEdge
)

type Filter uint32

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Texture is a sampled-read-only pixel region (layout =
// shader-read-only-optimal) with an attached sampler.
type Texture interface {
	Resource
	Width() uint32
	Height() uint32
	Depth() uint32
	Format() ImageFormat
	SizeBytes() uint64
}

// ShaderModule wraps compiled SPIR-V bytecode.
type ShaderModule interface {
	Resource
}

// DescriptorSetLayout describes one program's deduplicated binding table.
type DescriptorSetLayout interface {
	Resource
	Bindings() []BindingTraits
}

// PipelineLayout combines a descriptor-set layout with a merged
// push-constant range.
type PipelineLayout interface {
	Resource
	PushConstantSize() uint32
	PushConstantStages() ShaderStageMask
}

// ComputePipeline is a compiled compute shader bound to a pipeline layout.
type ComputePipeline interface {
	Resource
}

// RayTracingPipelineHandle is a compiled ray-tracing pipeline plus its
// cached shader-group handle blob.
type RayTracingPipelineHandle interface {
	Resource
	ShaderGroupHandles() []byte
	HandleSize() uint32
	HandleAlignment() uint32
	BaseAlignment() uint32
	ShaderCount() uint32
}

// AccelerationStructure is a built BLAS or TLAS.
type AccelerationStructure interface {
	Resource
	DeviceAddress() uint64
}

// CommandPool allocates and recycles CommandBuffers.
type CommandPool interface {
	Resource
	Acquire() (CommandBuffer, error)
}

// CommandBuffer records commands through the Recorder interface and is
// submitted as part of a queue batch.
type CommandBuffer interface {
	Resource
	Recorder
	Begin() error
	End() error
}

// Fence is a single-shot CPU/GPU synchronization primitive used by the
// synchronous Execute helpers.
type Fence interface {
	Resource
	Reset() error
	// Wait blocks (bounded by timeoutNs, 0 = forever) until signaled.
	// Returns false on timeout without error.
	Wait(timeoutNs uint64) (bool, error)
}

// TimelineSemaphore is a monotonic 64-bit counter shared CPU<->GPU.
type TimelineSemaphore interface {
	Resource
	ID() uint64
	Value() (uint64, error)
	// Signal sets the counter from the host; must not decrease.
	Signal(value uint64) error
	// Wait blocks (bounded by timeoutNs, 0 = forever) until the counter
	// reaches value. Returns false on timeout without error.
	Wait(value uint64, timeoutNs uint64) (bool, error)
}

// QueryPool is a fixed-size pool of GPU timestamps.
type QueryPool interface {
	Resource
	Count() uint32
	Reset() error
	// Results reads back raw ticks and per-entry availability. When wait
	// is true, blocks until every entry is available.
	Results(wait bool) (ticks []uint64, available []bool, err error)
}
