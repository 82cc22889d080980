// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vulkan

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan/memory"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

// Device implements hal.Device for Vulkan. One Device owns one logical
// VkDevice, its graphics/compute queue, and the memory allocator backing
// every buffer, tensor, image, and texture it creates.
type Device struct {
	handle         vk.Device
	physicalDevice vk.PhysicalDevice
	properties     vk.PhysicalDeviceProperties
	features       vk.PhysicalDeviceFeatures
	instance       *Instance
	queueFamily    uint32
	allocator      *memory.GpuAllocator
	cmds           *vk.Commands
	queue          *Queue

	hasTimelineSemaphore bool
	hasPushDescriptor    bool
	hasRayTracing        bool
}

// openDevice finds a compute-capable queue family on pd, creates a logical
// device, and wires up the allocator and queue. The returned Device keeps a
// reference to inst but does not destroy it: Device.Destroy releases only
// the allocator and the logical device.
func openDevice(inst *Instance, pd vk.PhysicalDevice, props vk.PhysicalDeviceProperties, features vk.PhysicalDeviceFeatures) (*Device, error) {
	var familyCount uint32
	vkGetPhysicalDeviceQueueFamilyProperties(inst, pd, &familyCount, nil)
	if familyCount == 0 {
		return nil, fmt.Errorf("vulkan: no queue families reported")
	}
	families := make([]vk.QueueFamilyProperties, familyCount)
	vkGetPhysicalDeviceQueueFamilyProperties(inst, pd, &familyCount, &families[0])

	computeFamily := int32(-1)
	for i, f := range families {
		if f.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			computeFamily = int32(i)
			break
		}
	}
	if computeFamily < 0 {
		return nil, fmt.Errorf("vulkan: no compute-capable queue family found")
	}

	extensions := queryAvailableExtensions(inst, pd)
	hasTimeline := extensions["VK_KHR_timeline_semaphore"] || props.ApiVersion >= vkMakeVersion(1, 2, 0)
	hasPushDesc := extensions["VK_KHR_push_descriptor"]
	hasRT := extensions["VK_KHR_ray_tracing_pipeline"] && extensions["VK_KHR_acceleration_structure"]

	queuePriority := float32(1.0)
	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: uint32(computeFamily),
		QueueCount:       1,
		PQueuePriorities: &queuePriority,
	}

	var deviceExtensions []string
	if hasPushDesc {
		deviceExtensions = append(deviceExtensions, "VK_KHR_push_descriptor\x00")
	}
	extPtrs := make([]uintptr, len(deviceExtensions))
	for i, e := range deviceExtensions {
		extPtrs[i] = uintptr(unsafe.Pointer(unsafe.StringData(e)))
	}

	addressFeatures := vk.PhysicalDeviceBufferDeviceAddressFeatures{
		SType:               vk.StructureTypePhysicalDeviceBufferDeviceAddressFeatures,
		BufferDeviceAddress: vk.True,
	}
	timelineFeatures := vk.PhysicalDeviceTimelineSemaphoreFeatures{
		SType:             vk.StructureTypePhysicalDeviceTimelineSemaphoreFeatures,
		PNext:             uintptr(unsafe.Pointer(&addressFeatures)),
		TimelineSemaphore: vk.True,
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                 vk.StructureTypeDeviceCreateInfo,
		PNext:                 uintptr(unsafe.Pointer(&timelineFeatures)),
		QueueCreateInfoCount:  1,
		PQueueCreateInfos:     &queueCreateInfo,
		EnabledExtensionCount: uint32(len(deviceExtensions)),
		PEnabledFeatures:      &features,
	}
	if len(extPtrs) > 0 {
		deviceCreateInfo.PpEnabledExtensionNames = uintptr(unsafe.Pointer(&extPtrs[0]))
	}

	var handle vk.Device
	result := vkCreateDevice(inst, pd, &deviceCreateInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateDevice failed: %d", result)
	}

	dev := &Device{
		handle:               handle,
		physicalDevice:       pd,
		properties:           props,
		features:             features,
		instance:             inst,
		queueFamily:          uint32(computeFamily),
		cmds:                 &inst.cmds,
		hasTimelineSemaphore: hasTimeline,
		hasPushDescriptor:    hasPushDesc,
		hasRayTracing:        hasRT,
	}
	dev.cmds.LoadDevice(handle)

	if err := dev.initAllocator(); err != nil {
		vkDestroyDevice(handle, nil)
		return nil, fmt.Errorf("vulkan: failed to initialize allocator: %w", err)
	}

	var queueHandle vk.Queue
	vkGetDeviceQueue(handle, uint32(computeFamily), 0, &queueHandle)
	dev.queue = &Queue{handle: queueHandle, device: dev}

	return dev, nil
}

// queryAvailableExtensions returns the set of device extension names pd
// reports, used to decide whether timeline semaphores, push descriptors,
// and ray tracing can be relied on without failing vkCreateDevice.
func queryAvailableExtensions(inst *Instance, pd vk.PhysicalDevice) map[string]bool {
	var count uint32
	vkEnumerateDeviceExtensionProperties(inst, pd, &count, nil)
	if count == 0 {
		return nil
	}
	props := make([]vk.ExtensionProperties, count)
	vkEnumerateDeviceExtensionProperties(inst, pd, &count, &props[0])

	set := make(map[string]bool, count)
	for _, p := range props {
		set[cStringToGo(p.ExtensionName[:])] = true
	}
	return set
}

// initAllocator sets up the sub-allocator backing every buffer/image on
// this device from the physical device's memory heaps.
func (d *Device) initAllocator() error {
	var vkProps vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(d.cmds, d.physicalDevice, &vkProps)

	props := memory.DeviceMemoryProperties{
		MemoryTypes: make([]memory.MemoryType, vkProps.MemoryTypeCount),
		MemoryHeaps: make([]memory.MemoryHeap, vkProps.MemoryHeapCount),
	}
	for i := uint32(0); i < vkProps.MemoryTypeCount; i++ {
		props.MemoryTypes[i] = memory.MemoryType{
			PropertyFlags: vkProps.MemoryTypes[i].PropertyFlags,
			HeapIndex:     vkProps.MemoryTypes[i].HeapIndex,
		}
	}
	for i := uint32(0); i < vkProps.MemoryHeapCount; i++ {
		props.MemoryHeaps[i] = memory.MemoryHeap{
			Size:  uint64(vkProps.MemoryHeaps[i].Size),
			Flags: vkProps.MemoryHeaps[i].Flags,
		}
	}

	allocator, err := memory.NewGpuAllocator(d.handle, props, memory.DefaultConfig())
	if err != nil {
		return err
	}
	d.allocator = allocator
	vk.SetDeviceCommands(d.cmds)
	return nil
}

// Info summarizes the physical device for Context/EnumerateDevices callers.
func (d *Device) Info() hal.DeviceInfo {
	return hal.DeviceInfo{
		Name:       cStringToGo(d.properties.DeviceName[:]),
		IsDiscrete: d.properties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu,
	}
}

// Queue returns the device's single compute queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// SupportsCapabilities reports whether every named capability is satisfied.
// Only the names "timeline", "push-descriptor" and "ray-tracing" are
// recognized; any other name, including the root package's extension
// names ("Atomics", "Types", "DeviceFault", ...), is reported as
// unsupported rather than as an error.
func (d *Device) SupportsCapabilities(names []string) bool {
	for _, n := range names {
		switch n {
		case "timeline":
			if !d.hasTimelineSemaphore {
				return false
			}
		case "push-descriptor":
			if !d.hasPushDescriptor {
				return false
			}
		case "ray-tracing":
			if !d.hasRayTracing {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SupportedTypes reports the optional shader numeric types this physical
// device exposes via VkPhysicalDeviceFeatures.
func (d *Device) SupportedTypes() hal.TypeSupport {
	return hal.TypeSupport{
		Float64: d.features.ShaderFloat64 != 0,
		Float16: false, // requires VK_KHR_shader_float16_int8, not queried here
		Int64:   d.features.ShaderInt64 != 0,
		Int16:   d.features.ShaderInt16 != 0,
		Int8:    false,
	}
}

// SubgroupProperties reports conservative subgroup capabilities. Querying
// VkPhysicalDeviceSubgroupProperties requires VkPhysicalDeviceProperties2,
// which this backend does not yet chain; until it does, only the size the
// original's Vulkan implementations universally report (32 on desktop GPUs)
// is assumed, with every operation flag left false so callers fall back to
// portable code paths.
func (d *Device) SubgroupProperties() hal.SubgroupProperties {
	return hal.SubgroupProperties{SubgroupSize: 32}
}

// RayTracingSupported reports whether both ray-tracing-pipeline device
// extensions were available at device-creation time. The backend does not
// yet implement BLAS/TLAS build or ray-tracing-pipeline creation (BuildBLAS,
// BuildTLAS and CreateRayTracingPipeline below return errors), so this currently always reports false regardless of
// driver support; flipping it on is gated on that implementation landing.
func (d *Device) RayTracingSupported() bool { return false }

func (d *Device) RayTracingFeatures() hal.RayTracingFeatures {
	return hal.RayTracingFeatures{}
}

func (d *Device) RayTracingProperties() hal.RayTracingProperties {
	return hal.RayTracingProperties{}
}

// DeviceFaultSupported reports whether VK_EXT_device_fault is usable.
// Not yet queried; always false.
func (d *Device) DeviceFaultSupported() bool { return false }

func (d *Device) DeviceFaultInfo() (hal.DeviceFaultInfo, bool) {
	return hal.DeviceFaultInfo{}, false
}

// TimestampPeriod is the number of nanoseconds a single timestamp-query
// tick represents on this device.
func (d *Device) TimestampPeriod() float64 { return float64(d.properties.Limits.TimestampPeriod) }

func (d *Device) TimestampValidBits() uint32 {
	return d.properties.Limits.TimestampComputeAndGraphics
}

func (d *Device) NonCoherentAtomSize() uint64 {
	return uint64(d.properties.Limits.NonCoherentAtomSize)
}

// ShaderGroupHandleAlignment and ShaderGroupBaseAlignment describe SBT
// layout constraints from VkPhysicalDeviceRayTracingPipelinePropertiesKHR;
// not chained yet, so the commonly observed desktop-driver values are used
// as a placeholder until ray tracing is implemented.
func (d *Device) ShaderGroupHandleAlignment() uint32 { return 32 }
func (d *Device) ShaderGroupBaseAlignment() uint32   { return 64 }

// CreateBuffer allocates a persistently mapped, host-coherent staging
// buffer usable as a transfer source and destination.
func (d *Device) CreateBuffer(size uint64) (hal.Buffer, error) {
	if size == 0 {
		return nil, fmt.Errorf("vulkan: buffer size must be > 0")
	}

	handle, block, err := d.allocBuffer(size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit)|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		memory.UsageHostAccess|memory.UsageUpload|memory.UsageDownload)
	if err != nil {
		return nil, err
	}

	var mapped uintptr
	result := vk.MapMemory(d.handle, block.Memory, 0, uint64(vk.WholeSize), 0, &mapped)
	if result != vk.Success {
		vk.DestroyBuffer(d.handle, handle, nil)
		//nolint:errcheck // best-effort release, nothing actionable on failure
		d.allocator.Free(block)
		return nil, fmt.Errorf("vulkan: vkMapMemory failed: %d", result)
	}

	return &Buffer{handle: handle, block: block, size: size, mapped: mapped, device: d}, nil
}

// CreateBufferFromBytes creates a buffer of len(data) bytes and copies
// data into its mapped span.
func (d *Device) CreateBufferFromBytes(data []byte) (hal.Buffer, error) {
	buf, err := d.CreateBuffer(uint64(len(data)))
	if err != nil {
		return nil, err
	}
	copy(buf.Bytes(), data)
	return buf, nil
}

// CreateTensor allocates a device-local storage/uniform/indirect buffer
// with a captured device address, optionally also host-mapped.
func (d *Device) CreateTensor(size uint64, mapped bool) (hal.Tensor, error) {
	if size == 0 {
		return nil, fmt.Errorf("vulkan: tensor size must be > 0")
	}

	usage := vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit) |
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit) |
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit) |
		vk.BufferUsageFlags(vk.BufferUsageTransferDstBit) |
		vk.BufferUsageFlags(vk.BufferUsageIndirectBufferBit) |
		vk.BufferUsageFlags(vk.BufferUsageShaderDeviceAddressBit)

	memUsage := memory.UsageFastDeviceAccess
	if mapped {
		memUsage |= memory.UsageHostAccess
	}

	handle, block, err := d.allocBuffer(size, usage, memUsage)
	if err != nil {
		return nil, err
	}

	addrInfo := vk.BufferDeviceAddressInfo{SType: vk.StructureTypeBufferDeviceAddressInfo, Buffer: handle}
	address := vkGetBufferDeviceAddress(d.cmds, d.handle, &addrInfo)

	var mappedPtr uintptr
	if mapped {
		result := vk.MapMemory(d.handle, block.Memory, 0, uint64(vk.WholeSize), 0, &mappedPtr)
		if result != vk.Success {
			vk.DestroyBuffer(d.handle, handle, nil)
			//nolint:errcheck // best-effort release, nothing actionable on failure
			d.allocator.Free(block)
			return nil, fmt.Errorf("vulkan: vkMapMemory failed: %d", result)
		}
	}

	return &Tensor{handle: handle, block: block, size: size, address: address, mapped: mappedPtr, device: d}, nil
}

// CreateTensorFromBytes creates a mapped tensor of len(data) bytes and
// copies data into its mapped span; if mapped is false, the mapping is
// released after the copy.
func (d *Device) CreateTensorFromBytes(data []byte, mapped bool) (hal.Tensor, error) {
	t, err := d.CreateTensor(uint64(len(data)), true)
	if err != nil {
		return nil, err
	}
	copy(t.Bytes(), data)
	if !mapped {
		// caller asked for a device-only tensor; keep the transient
		// staging mapping only long enough to have populated it above.
		vk.UnmapMemory(d.handle, t.(*Tensor).block.Memory)
		t.(*Tensor).mapped = 0
	}
	return t, nil
}

func (d *Device) allocBuffer(size uint64, usage vk.BufferUsageFlags, memUsage memory.UsageFlags) (vk.Buffer, *memory.MemoryBlock, error) {
	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	result := vk.CreateBuffer(d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return 0, nil, fmt.Errorf("vulkan: vkCreateBuffer failed: %d", result)
	}

	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(d.handle, handle, &memReqs)

	block, err := d.allocator.Alloc(memory.AllocationRequest{
		Size:           uint64(memReqs.Size),
		Alignment:      uint64(memReqs.Alignment),
		Usage:          memUsage,
		MemoryTypeBits: memReqs.MemoryTypeBits,
	})
	if err != nil {
		vk.DestroyBuffer(d.handle, handle, nil)
		return 0, nil, fmt.Errorf("vulkan: failed to allocate buffer memory: %w", err)
	}

	result = vk.BindBufferMemory(d.handle, handle, block.Memory, block.Offset)
	if result != vk.Success {
		//nolint:errcheck // best-effort release, nothing actionable on failure
		d.allocator.Free(block)
		vk.DestroyBuffer(d.handle, handle, nil)
		return 0, nil, fmt.Errorf("vulkan: vkBindBufferMemory failed: %d", result)
	}

	return handle, block, nil
}

// CreateImage allocates a storage-writable image kept in
// VK_IMAGE_LAYOUT_GENERAL for the whole of its lifetime.
func (d *Device) CreateImage(format hal.ImageFormat, width, height, depth uint32) (hal.Image, error) {
	handle, block, err := d.allocImage(format, width, height, depth,
		vk.ImageUsageFlags(vk.ImageUsageStorageBit)|vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)|vk.ImageUsageFlags(vk.ImageUsageTransferDstBit))
	if err != nil {
		return nil, err
	}
	return &Image{handle: handle, block: block, width: width, height: height, depth: depth, format: format, device: d}, nil
}

// CreateTexture allocates a sampled-read-only image with an attached
// sampler, kept in VK_IMAGE_LAYOUT_SHADER_READ_ONLY_OPTIMAL.
func (d *Device) CreateTexture(format hal.ImageFormat, width, height, depth uint32, sampler hal.SamplerDesc) (hal.Texture, error) {
	handle, block, err := d.allocImage(format, width, height, depth,
		vk.ImageUsageFlags(vk.ImageUsageSampledBit)|vk.ImageUsageFlags(vk.ImageUsageTransferDstBit))
	if err != nil {
		return nil, err
	}

	view, err := d.createImageView(handle, textureFormatToVk(format))
	if err != nil {
		vk.DestroyImage(d.handle, handle, nil)
		//nolint:errcheck // best-effort release, nothing actionable on failure
		d.allocator.Free(block)
		return nil, err
	}

	samplerHandle, err := d.createSampler(sampler)
	if err != nil {
		vkDestroyImageView(d.cmds, d.handle, view, nil)
		vk.DestroyImage(d.handle, handle, nil)
		//nolint:errcheck // best-effort release, nothing actionable on failure
		d.allocator.Free(block)
		return nil, err
	}

	return &Texture{
		handle: handle, view: view, sampler: samplerHandle, block: block,
		width: width, height: height, depth: depth, format: format, device: d,
	}, nil
}

func (d *Device) allocImage(format hal.ImageFormat, width, height, depth uint32, usage vk.ImageUsageFlags) (vk.Image, *memory.MemoryBlock, error) {
	if width == 0 || height == 0 {
		return 0, nil, fmt.Errorf("vulkan: image dimensions must be > 0")
	}
	if depth == 0 {
		depth = 1
	}

	imageType := vk.ImageType2d
	if depth > 1 {
		imageType = vk.ImageType3d
	}

	createInfo := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     imageType,
		Format:        textureFormatToVk(format),
		Extent:        vk.Extent3D{Width: width, Height: height, Depth: depth},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var handle vk.Image
	result := vk.CreateImage(d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return 0, nil, fmt.Errorf("vulkan: vkCreateImage failed: %d", result)
	}

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(d.handle, handle, &memReqs)

	block, err := d.allocator.Alloc(memory.AllocationRequest{
		Size:           uint64(memReqs.Size),
		Alignment:      uint64(memReqs.Alignment),
		Usage:          memory.UsageFastDeviceAccess,
		MemoryTypeBits: memReqs.MemoryTypeBits,
	})
	if err != nil {
		vk.DestroyImage(d.handle, handle, nil)
		return 0, nil, fmt.Errorf("vulkan: failed to allocate image memory: %w", err)
	}

	result = vk.BindImageMemory(d.handle, handle, block.Memory, block.Offset)
	if result != vk.Success {
		//nolint:errcheck // best-effort release, nothing actionable on failure
		d.allocator.Free(block)
		vk.DestroyImage(d.handle, handle, nil)
		return 0, nil, fmt.Errorf("vulkan: vkBindImageMemory failed: %d", result)
	}

	return handle, block, nil
}

func (d *Device) createImageView(image vk.Image, format vk.Format) (vk.ImageView, error) {
	createInfo := vk.ImageViewCreateInfo{
		SType:      vk.StructureTypeImageViewCreateInfo,
		Image:      image,
		ViewType:   vk.ImageViewType2d,
		Format:     format,
		Components: vk.ComponentMapping{},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount:     1,
			LayerCount:     1,
		},
	}
	var view vk.ImageView
	result := vkCreateImageView(d.cmds, d.handle, &createInfo, nil, &view)
	if result != vk.Success {
		return 0, fmt.Errorf("vulkan: vkCreateImageView failed: %d", result)
	}
	return view, nil
}

func (d *Device) createSampler(desc hal.SamplerDesc) (vk.Sampler, error) {
	filter := vk.FilterNearest
	mipmapMode := vk.SamplerMipmapModeNearest
	if desc.Filter == hal.FilterLinear {
		filter = vk.FilterLinear
		mipmapMode = vk.SamplerMipmapModeLinear
	}

	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               filter,
		MinFilter:               filter,
		MipmapMode:              mipmapMode,
		AddressModeU:            addressModeToVk(desc.AddressModeU),
		AddressModeV:            addressModeToVk(desc.AddressModeV),
		AddressModeW:            addressModeToVk(desc.AddressModeW),
		UnnormalizedCoordinates: boolToVk(desc.UnnormalizedCoordinates),
	}
	var sampler vk.Sampler
	result := vkCreateSampler(d.cmds, d.handle, &createInfo, nil, &sampler)
	if result != vk.Success {
		return 0, fmt.Errorf("vulkan: vkCreateSampler failed: %d", result)
	}
	return sampler, nil
}

// NewCommandPool creates a command pool whose buffers can be individually
// reset (needed since Hephaistos recycles one CommandBuffer per pending
// step rather than resetting the whole pool between submissions).
func (d *Device) NewCommandPool() (hal.CommandPool, error) {
	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: d.queueFamily,
	}
	var handle vk.CommandPool
	result := vkCreateCommandPool(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateCommandPool failed: %d", result)
	}
	return &CommandPool{handle: handle, device: d}, nil
}

// NewTimelineSemaphore creates a VK_SEMAPHORE_TYPE_TIMELINE semaphore
// starting at initial.
func (d *Device) NewTimelineSemaphore(initial uint64) (hal.TimelineSemaphore, error) {
	typeCreateInfo := vk.SemaphoreTypeCreateInfo{
		SType:         vk.StructureTypeSemaphoreTypeCreateInfo,
		SemaphoreType: vk.SemaphoreTypeTimeline,
		InitialValue:  initial,
	}
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: uintptr(unsafe.Pointer(&typeCreateInfo)),
	}
	var handle vk.Semaphore
	result := vkCreateSemaphore(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSemaphore failed: %d", result)
	}
	return &TimelineSemaphore{handle: handle, device: d}, nil
}

// NewFence creates an unsignaled binary fence for Queue.SubmitOneShot.
func (d *Device) NewFence() (hal.Fence, error) {
	createInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	var handle vk.Fence
	result := vkCreateFence(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateFence failed: %d", result)
	}
	return &Fence{handle: handle, device: d}, nil
}

// NewQueryPool creates a timestamp query pool with count entries.
func (d *Device) NewQueryPool(count uint32) (hal.QueryPool, error) {
	createInfo := vk.QueryPoolCreateInfo{
		SType:      vk.StructureTypeQueryPoolCreateInfo,
		QueryType:  vk.QueryTypeTimestamp,
		QueryCount: count,
	}
	var handle vk.QueryPool
	result := vkCreateQueryPool(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateQueryPool failed: %d", result)
	}
	return &QueryPool{handle: handle, count: count, device: d}, nil
}

// BuildBLAS, BuildTLAS, and CreateRayTracingPipeline are not yet
// implemented: VK_KHR_acceleration_structure and
// VK_KHR_ray_tracing_pipeline wiring (acceleration-structure buffers,
// scratch sizing, build commands, and shader-group-handle retrieval)
// is tracked as follow-up work gated on RayTracingSupported returning
// true, which this backend never does yet.
func (d *Device) BuildBLAS(geom hal.AccelGeometry) (hal.AccelerationStructure, uint64, error) {
	return nil, 0, fmt.Errorf("vulkan: BuildBLAS not implemented")
}

func (d *Device) BuildTLAS(instances []hal.TLASInstanceRecord) (hal.AccelerationStructure, uint64, error) {
	return nil, 0, fmt.Errorf("vulkan: BuildTLAS not implemented")
}

func (d *Device) CreateRayTracingPipeline(groups []hal.RTShaderGroup, layout hal.PipelineLayout, specialization []byte, specIDs []uint32, maxRecursionDepth uint32) (hal.RayTracingPipelineHandle, error) {
	return nil, fmt.Errorf("vulkan: CreateRayTracingPipeline not implemented")
}

// Destroy releases the allocator and the logical device. The instance the
// device was opened against is not destroyed.
func (d *Device) Destroy() {
	if d.allocator != nil {
		d.allocator.Destroy()
		d.allocator = nil
	}
	if d.handle != 0 {
		vkDestroyDevice(d.handle, nil)
		d.handle = 0
	}
}

// Vulkan function wrappers

func vkGetPhysicalDeviceQueueFamilyProperties(i *Instance, device vk.PhysicalDevice, count *uint32, props *vk.QueueFamilyProperties) {
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(i.cmds.GetPhysicalDeviceQueueFamilyProperties(),
		uintptr(device), uintptr(unsafe.Pointer(count)), uintptr(unsafe.Pointer(props)))
}

func vkEnumerateDeviceExtensionProperties(i *Instance, device vk.PhysicalDevice, count *uint32, props *vk.ExtensionProperties) vk.Result {
	proc := vk.GetInstanceProcAddr(i.handle, "vkEnumerateDeviceExtensionProperties")
	if proc == nil {
		return vk.ErrorExtensionNotPresent
	}
	var layerName uintptr
	r, _, _ := syscall.SyscallN(uintptr(proc),
		uintptr(device), layerName, uintptr(unsafe.Pointer(count)), uintptr(unsafe.Pointer(props)))
	return vk.Result(r)
}

func vkCreateDevice(i *Instance, physicalDevice vk.PhysicalDevice, createInfo *vk.DeviceCreateInfo, allocator unsafe.Pointer, device *vk.Device) vk.Result {
	r, _, _ := syscall.SyscallN(i.cmds.CreateDevice(),
		uintptr(physicalDevice), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(device)))
	return vk.Result(r)
}

func vkGetDeviceQueue(device vk.Device, queueFamilyIndex, queueIndex uint32, queue *vk.Queue) {
	proc := vk.GetInstanceProcAddr(0, "vkGetDeviceQueue")
	if proc == nil {
		return
	}
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(uintptr(proc), uintptr(device), uintptr(queueFamilyIndex), uintptr(queueIndex), uintptr(unsafe.Pointer(queue)))
}

func vkDestroyDevice(device vk.Device, allocator unsafe.Pointer) {
	proc := vk.GetInstanceProcAddr(0, "vkDestroyDevice")
	if proc == nil {
		return
	}
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(uintptr(proc), uintptr(device), uintptr(allocator))
}

func vkGetBufferDeviceAddress(cmds *vk.Commands, device vk.Device, info *vk.BufferDeviceAddressInfo) uint64 {
	r, _, _ := syscall.SyscallN(cmds.GetBufferDeviceAddress(), uintptr(device), uintptr(unsafe.Pointer(info)))
	return uint64(r)
}

func vkCreateImageView(cmds *vk.Commands, device vk.Device, createInfo *vk.ImageViewCreateInfo, allocator unsafe.Pointer, view *vk.ImageView) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateImageView(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(view)))
	return vk.Result(r)
}

func vkCreateSampler(cmds *vk.Commands, device vk.Device, createInfo *vk.SamplerCreateInfo, allocator unsafe.Pointer, sampler *vk.Sampler) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateSampler(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(sampler)))
	return vk.Result(r)
}

func vkCreateCommandPool(cmds *vk.Commands, device vk.Device, createInfo *vk.CommandPoolCreateInfo, allocator unsafe.Pointer, pool *vk.CommandPool) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateCommandPool(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(pool)))
	return vk.Result(r)
}

func vkCreateSemaphore(cmds *vk.Commands, device vk.Device, createInfo *vk.SemaphoreCreateInfo, allocator unsafe.Pointer, semaphore *vk.Semaphore) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateSemaphore(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(semaphore)))
	return vk.Result(r)
}

func vkCreateFence(cmds *vk.Commands, device vk.Device, createInfo *vk.FenceCreateInfo, allocator unsafe.Pointer, fence *vk.Fence) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateFence(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(fence)))
	return vk.Result(r)
}

func vkCreateQueryPool(cmds *vk.Commands, device vk.Device, createInfo *vk.QueryPoolCreateInfo, allocator unsafe.Pointer, pool *vk.QueryPool) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateQueryPool(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(pool)))
	return vk.Result(r)
}
