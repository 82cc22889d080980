// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

// Device is the logical-device surface a backend (hal/vulkan,
// hal/software) exposes to the root hephaistos package. One Device
// backs one Context.
type Device interface {
	Info() DeviceInfo
	Queue() Queue

	// SupportsCapabilities reports whether the device exposes every
	// named device-level capability, used when checking whether a
	// requested Extension can be satisfied.
	SupportsCapabilities(names []string) bool

	SupportedTypes() TypeSupport
	SubgroupProperties() SubgroupProperties
	RayTracingSupported() bool
	RayTracingFeatures() RayTracingFeatures
	RayTracingProperties() RayTracingProperties
	DeviceFaultSupported() bool
	// DeviceFaultInfo retrieves structured fault data after a device-lost
	// error, when the "DeviceFault" extension was enabled. Returns false
	// if no fault info is available.
	DeviceFaultInfo() (DeviceFaultInfo, bool)

	TimestampPeriod() float64
	TimestampValidBits() uint32
	NonCoherentAtomSize() uint64
	ShaderGroupHandleAlignment() uint32
	ShaderGroupBaseAlignment() uint32

	CreateBuffer(size uint64) (Buffer, error)
	CreateBufferFromBytes(data []byte) (Buffer, error)
	CreateTensor(size uint64, mapped bool) (Tensor, error)
	CreateTensorFromBytes(data []byte, mapped bool) (Tensor, error)
	CreateImage(format ImageFormat, width, height, depth uint32) (Image, error)
	CreateTexture(format ImageFormat, width, height, depth uint32, sampler SamplerDesc) (Texture, error)

	CreateShaderModule(code []uint32) (ShaderModule, error)
	CreateDescriptorSetLayout(bindings []BindingTraits) (DescriptorSetLayout, error)
	CreatePipelineLayout(set DescriptorSetLayout, pushConstantSize uint32, pushConstantStages ShaderStageMask) (PipelineLayout, error)
	CreateComputePipeline(module ShaderModule, entryPoint string, layout PipelineLayout, specialization []byte, specIDs []uint32) (ComputePipeline, error)

	NewCommandPool() (CommandPool, error)
	NewTimelineSemaphore(initial uint64) (TimelineSemaphore, error)
	NewFence() (Fence, error)
	NewQueryPool(count uint32) (QueryPool, error)

	BuildBLAS(geom AccelGeometry) (AccelerationStructure, uint64 /*scratchSize*/, error)
	BuildTLAS(instances []TLASInstanceRecord) (AccelerationStructure, uint64 /*scratchSize*/, error)
	CreateRayTracingPipeline(groups []RTShaderGroup, layout PipelineLayout, specialization []byte, specIDs []uint32, maxRecursionDepth uint32) (RayTracingPipelineHandle, error)

	Destroy()
}

// SubmitBatch is one step's worth of submitted work: command buffers plus
// the timeline wait/signal pair bracketing the step.
type SubmitBatch struct {
	CommandBuffers  []CommandBuffer
	Wait            TimelineSemaphore
	WaitValue       uint64
	WaitStageMask   PipelineStageMask
	Signal          TimelineSemaphore
	SignalValue     uint64
}

// Queue submits batches of recorded work in order.
type Queue interface {
	Submit(batches []SubmitBatch) error
	// SubmitOneShot submits a single command buffer and signals fence on
	// completion, for the synchronous Execute helpers.
	SubmitOneShot(cmd CommandBuffer, fence Fence) error
}
