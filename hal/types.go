// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

// ImageFormat enumerates the pixel formats Hephaistos images and textures
// may be created with. Values are chosen so UNKNOWN reads as "unsupported
// or unreflectable" the same way the reflection pass reports a binding it
// could not classify.
type ImageFormat uint32

const (
	ImageFormatUnknown ImageFormat = 0x7FFFFFFF

	ImageFormatR8G8B8A8Unorm ImageFormat = iota + 1
	ImageFormatR8G8B8A8Snorm
	ImageFormatR8G8B8A8Uint
	ImageFormatR8G8B8A8Sint
	ImageFormatR16G16B16A16Uint
	ImageFormatR16G16B16A16Sint
	ImageFormatR32Uint
	ImageFormatR32Sint
	ImageFormatR32Sfloat
	ImageFormatR32G32Uint
	ImageFormatR32G32Sint
	ImageFormatR32G32Sfloat
	ImageFormatR32G32B32A32Uint
	ImageFormatR32G32B32A32Sint
	ImageFormatR32G32B32A32Sfloat
)

// ElementSize returns the size in bytes of a single pixel of the format,
// or 0 for ImageFormatUnknown.
func (f ImageFormat) ElementSize() uint32 {
	switch f {
	case ImageFormatR8G8B8A8Unorm, ImageFormatR8G8B8A8Snorm,
		ImageFormatR8G8B8A8Uint, ImageFormatR8G8B8A8Sint:
		return 4
	case ImageFormatR16G16B16A16Uint, ImageFormatR16G16B16A16Sint:
		return 8
	case ImageFormatR32Uint, ImageFormatR32Sint, ImageFormatR32Sfloat:
		return 4
	case ImageFormatR32G32Uint, ImageFormatR32G32Sint, ImageFormatR32G32Sfloat:
		return 8
	case ImageFormatR32G32B32A32Uint, ImageFormatR32G32B32A32Sint, ImageFormatR32G32B32A32Sfloat:
		return 16
	default:
		return 0
	}
}

// ImageLayout mirrors the Vulkan-like layout states an image/texture can
// be transitioned between.
type ImageLayout uint32

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutGeneral
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutTransferSrcOptimal
	ImageLayoutTransferDstOptimal
)

// PipelineStage is a single bit in a PipelineStageMask.
type PipelineStage uint32

const (
	PipelineStageTopOfPipe PipelineStage = 1 << iota
	PipelineStageTransfer
	PipelineStageCompute
	PipelineStageDrawIndirect
	PipelineStageRayTracing
	PipelineStageHost
	PipelineStageBottomOfPipe
)

// PipelineStageMask is an OR of PipelineStage bits. Copy and dispatch
// commands OR their stage into the enclosing command buffer's cumulative
// mask; the sequence engine uses that mask as the wait-destination stage
// for the timeline semaphore entering the next step.
type PipelineStageMask uint32

func (m PipelineStageMask) With(s PipelineStage) PipelineStageMask {
	return m | PipelineStageMask(s)
}

// AccessFlag describes a memory access kind used when building barriers.
type AccessFlag uint32

const (
	AccessMemoryRead AccessFlag = 1 << iota
	AccessMemoryWrite
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite
	AccessShaderRead
	AccessShaderWrite
)

// ShaderStageMask selects which shader stages a push-constant range or
// binding is visible to.
type ShaderStageMask uint32

const (
	ShaderStageCompute ShaderStageMask = 1 << iota
	ShaderStageRayGen
	ShaderStageMiss
	ShaderStageClosestHit
	ShaderStageAnyHit
	ShaderStageCallable
)

// ShaderStageAllRayTracing is the union of every ray-tracing-pipeline
// stage, used as the push-constant visibility mask for TraceRaysCommand.
const ShaderStageAllRayTracing = ShaderStageRayGen | ShaderStageMiss |
	ShaderStageClosestHit | ShaderStageAnyHit | ShaderStageCallable

// ParameterKind enumerates the descriptor kinds a program binding may
// declare, mirroring the original's ParameterType enum. Numeric values
// follow the Vulkan descriptor-type constants the original source uses
// (ACCELERATION_STRUCTURE reuses VK_DESCRIPTOR_TYPE_ACCELERATION_STRUCTURE_KHR's
// value so debug dumps compare directly against Vulkan documentation).
type ParameterKind uint32

const (
	ParameterCombinedImageSampler ParameterKind = 1
	ParameterStorageImage         ParameterKind = 3
	ParameterUniformBuffer        ParameterKind = 6
	ParameterStorageBuffer        ParameterKind = 7
	ParameterAccelerationStruct   ParameterKind = 1000150000
)

// ImageBindingTraits describes the image/texture properties a binding
// declares, present only when Kind is CombinedImageSampler or StorageImage.
type ImageBindingTraits struct {
	Format ImageFormat
	Dims   uint8
}

// BindingTraits describes one reflected shader binding.
type BindingTraits struct {
	Name        string
	Index       uint32
	Kind        ParameterKind
	ImageTraits *ImageBindingTraits
	// Count is the binding's array multiplicity; 0 denotes a runtime array.
	Count uint32
}

// Equal reports whether two binding traits describe the same binding
// shape, per the dedup rule: same kind, count, and image traits.
func (b BindingTraits) Equal(o BindingTraits) bool {
	if b.Kind != o.Kind || b.Count != o.Count {
		return false
	}
	if (b.ImageTraits == nil) != (o.ImageTraits == nil) {
		return false
	}
	if b.ImageTraits != nil && *b.ImageTraits != *o.ImageTraits {
		return false
	}
	return true
}

// DeviceInfo summarizes a selectable physical device.
type DeviceInfo struct {
	Name       string
	IsDiscrete bool
}

// TypeSupport lists the optional numeric types a device's shaders may use.
type TypeSupport struct {
	Float64 bool
	Float16 bool
	Int64   bool
	Int16   bool
	Int8    bool
}

// SubgroupProperties mirrors the original's subgroup capability query.
type SubgroupProperties struct {
	SubgroupSize             uint32
	BasicSupport              bool
	VoteSupport               bool
	ArithmeticSupport         bool
	BallotSupport             bool
	ShuffleSupport            bool
	ShuffleRelativeSupport    bool
	ShuffleClusteredSupport   bool
	QuadSupport               bool
}

// RayTracingFeatures lists the optional ray-tracing capabilities a device
// (and, separately, an enabled extension) may support.
type RayTracingFeatures struct {
	Query             bool
	Pipeline          bool
	IndirectDispatch  bool
	PositionFetch     bool
	HitObjects        bool
}

// RayTracingProperties carries device limits relevant to building
// acceleration structures and ray-tracing pipelines.
type RayTracingProperties struct {
	MaxGeometryCount          uint64
	MaxInstanceCount          uint64
	MaxPrimitiveCount         uint64
	MaxAccelerationStructures uint32
	MaxRayRecursionDepth      uint32
	MaxRayDispatchCount       uint32
	MaxShaderRecordSize       uint32
	CanReorder                bool
}

// DeviceFaultInfo is retrievable after a device-lost error when the
// "DeviceFault" extension is enabled.
type DeviceFaultInfo struct {
	Description   string
	AddressFaults []DeviceFaultAddressInfo
	VendorInfo    []DeviceFaultVendorInfo
}

// DeviceFaultAddressInfo names a faulting device address range.
type DeviceFaultAddressInfo struct {
	Description string
	Address     uint64
	AddressType uint32
}

// DeviceFaultVendorInfo carries vendor-specific diagnostic data.
type DeviceFaultVendorInfo struct {
	Description string
	FaultCode   uint64
	FaultData   uint64
}
