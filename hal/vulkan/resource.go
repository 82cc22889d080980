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

// Buffer implements hal.Buffer: a persistently mapped, host-coherent
// staging allocation.
type Buffer struct {
	handle vk.Buffer
	block  *memory.MemoryBlock
	size   uint64
	mapped uintptr
	device *Device
}

func (b *Buffer) Destroy() {
	if b.device == nil {
		return
	}
	if b.mapped != 0 {
		vk.UnmapMemory(b.device.handle, b.block.Memory)
	}
	vk.DestroyBuffer(b.device.handle, b.handle, nil)
	//nolint:errcheck // best-effort release, nothing actionable on failure
	b.device.allocator.Free(b.block)
	b.device = nil
}

func (b *Buffer) SizeBytes() uint64 { return b.size }

func (b *Buffer) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(b.mapped)), b.size)
}

// Tensor implements hal.Tensor: a device-local allocation, optionally
// also host-mapped, exposing a captured VkDeviceAddress for shader use.
type Tensor struct {
	handle  vk.Buffer
	block   *memory.MemoryBlock
	size    uint64
	address uint64
	mapped  uintptr
	device  *Device
}

func (t *Tensor) Destroy() {
	if t.device == nil {
		return
	}
	if t.mapped != 0 {
		vk.UnmapMemory(t.device.handle, t.block.Memory)
	}
	vk.DestroyBuffer(t.device.handle, t.handle, nil)
	//nolint:errcheck // best-effort release, nothing actionable on failure
	t.device.allocator.Free(t.block)
	t.device = nil
}

func (t *Tensor) SizeBytes() uint64 { return t.size }
func (t *Tensor) Address() uint64   { return t.address }
func (t *Tensor) Mapped() bool      { return t.mapped != 0 }

func (t *Tensor) Bytes() []byte {
	if t.mapped == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(t.mapped)), t.size)
}

func (t *Tensor) Flush(offset, size uint64) {
	if t.mapped == 0 {
		return
	}
	rng := vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: t.block.Memory,
		Offset: vk.DeviceSize(t.block.Offset + offset),
		Size:   vk.DeviceSize(size),
	}
	//nolint:errcheck // flush failures are not actionable mid-dispatch
	vk.FlushMappedMemoryRanges(t.device.handle, 1, &rng)
}

func (t *Tensor) Invalidate(offset, size uint64) {
	if t.mapped == 0 {
		return
	}
	rng := vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: t.block.Memory,
		Offset: vk.DeviceSize(t.block.Offset + offset),
		Size:   vk.DeviceSize(size),
	}
	//nolint:errcheck // invalidate failures are not actionable mid-dispatch
	vk.InvalidateMappedMemoryRanges(t.device.handle, 1, &rng)
}

// Image implements hal.Image: a storage-writable pixel region, always
// created and kept in VK_IMAGE_LAYOUT_GENERAL.
type Image struct {
	handle               vk.Image
	block                *memory.MemoryBlock
	width, height, depth uint32
	format               hal.ImageFormat
	device               *Device
}

func (i *Image) Destroy() {
	if i.device == nil {
		return
	}
	vk.DestroyImage(i.device.handle, i.handle, nil)
	//nolint:errcheck // best-effort release, nothing actionable on failure
	i.device.allocator.Free(i.block)
	i.device = nil
}

func (i *Image) Width() uint32           { return i.width }
func (i *Image) Height() uint32          { return i.height }
func (i *Image) Depth() uint32           { return i.depth }
func (i *Image) Format() hal.ImageFormat { return i.format }
func (i *Image) SizeBytes() uint64 {
	return uint64(i.width) * uint64(i.height) * uint64(i.depth) * uint64(i.format.ElementSize())
}

// Texture implements hal.Texture: a sampled-read-only pixel region with
// an attached sampler, kept in VK_IMAGE_LAYOUT_SHADER_READ_ONLY_OPTIMAL.
type Texture struct {
	handle               vk.Image
	view                 vk.ImageView
	sampler              vk.Sampler
	block                *memory.MemoryBlock
	width, height, depth uint32
	format               hal.ImageFormat
	device               *Device
}

func (t *Texture) Destroy() {
	if t.device == nil {
		return
	}
	vkDestroySampler(t.device.cmds, t.device.handle, t.sampler, nil)
	vkDestroyImageView(t.device.cmds, t.device.handle, t.view, nil)
	vk.DestroyImage(t.device.handle, t.handle, nil)
	//nolint:errcheck // best-effort release, nothing actionable on failure
	t.device.allocator.Free(t.block)
	t.device = nil
}

func (t *Texture) Width() uint32           { return t.width }
func (t *Texture) Height() uint32          { return t.height }
func (t *Texture) Depth() uint32           { return t.depth }
func (t *Texture) Format() hal.ImageFormat { return t.format }
func (t *Texture) SizeBytes() uint64 {
	return uint64(t.width) * uint64(t.height) * uint64(t.depth) * uint64(t.format.ElementSize())
}

// ShaderModule wraps a VkShaderModule built from SPIR-V words.
type ShaderModule struct {
	handle vk.ShaderModule
	device *Device
}

func (m *ShaderModule) Destroy() {
	if m.device == nil {
		return
	}
	vkDestroyShaderModule(m.device.cmds, m.device.handle, m.handle, nil)
	m.device = nil
}

// DescriptorSetLayout wraps a VkDescriptorSetLayout created with the
// push-descriptor flag, so PushDescriptorSet needs no backing
// VkDescriptorPool.
type DescriptorSetLayout struct {
	handle   vk.DescriptorSetLayout
	bindings []hal.BindingTraits
	device   *Device
}

func (l *DescriptorSetLayout) Destroy() {
	if l.device == nil {
		return
	}
	vkDestroyDescriptorSetLayout(l.device.cmds, l.device.handle, l.handle, nil)
	l.device = nil
}

func (l *DescriptorSetLayout) Bindings() []hal.BindingTraits { return l.bindings }

// PipelineLayout combines a descriptor-set layout with a single merged
// push-constant range.
type PipelineLayout struct {
	handle             vk.PipelineLayout
	pushConstantSize   uint32
	pushConstantStages hal.ShaderStageMask
	device             *Device
}

func (l *PipelineLayout) Destroy() {
	if l.device == nil {
		return
	}
	vkDestroyPipelineLayout(l.device.cmds, l.device.handle, l.handle, nil)
	l.device = nil
}

func (l *PipelineLayout) PushConstantSize() uint32                { return l.pushConstantSize }
func (l *PipelineLayout) PushConstantStages() hal.ShaderStageMask { return l.pushConstantStages }

// ComputePipeline is a compiled compute shader bound to a pipeline layout.
type ComputePipeline struct {
	handle vk.Pipeline
	device *Device
}

func (p *ComputePipeline) Destroy() {
	if p.device == nil {
		return
	}
	vkDestroyPipeline(p.device.cmds, p.device.handle, p.handle, nil)
	p.device = nil
}

// RayTracingPipelineHandle is left unimplemented: CreateRayTracingPipeline
// always errors before one of these can be constructed (see device.go).
type RayTracingPipelineHandle struct {
	device *Device
}

func (p *RayTracingPipelineHandle) Destroy()                  {}
func (p *RayTracingPipelineHandle) ShaderGroupHandles() []byte { return nil }
func (p *RayTracingPipelineHandle) HandleSize() uint32         { return 0 }
func (p *RayTracingPipelineHandle) HandleAlignment() uint32    { return 0 }
func (p *RayTracingPipelineHandle) BaseAlignment() uint32      { return 0 }
func (p *RayTracingPipelineHandle) ShaderCount() uint32        { return 0 }

// AccelerationStructure is left unimplemented for the same reason: BuildBLAS
// and BuildTLAS always error before one of these can be constructed.
type AccelerationStructure struct {
	device *Device
}

func (a *AccelerationStructure) Destroy()              {}
func (a *AccelerationStructure) DeviceAddress() uint64 { return 0 }

// Fence is a single-shot binary VkFence used by Queue.SubmitOneShot.
type Fence struct {
	handle vk.Fence
	device *Device
}

func (f *Fence) Destroy() {
	if f.device == nil {
		return
	}
	vkDestroyFence(f.device.cmds, f.device.handle, f.handle, nil)
	f.device = nil
}

func (f *Fence) Reset() error {
	result := vkResetFences(f.device.cmds, f.device.handle, 1, &f.handle)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkResetFences failed: %d", result)
	}
	return nil
}

func (f *Fence) Wait(timeoutNs uint64) (bool, error) {
	if timeoutNs == 0 {
		timeoutNs = ^uint64(0)
	}
	result := vkWaitForFences(f.device.cmds, f.device.handle, 1, &f.handle, vk.True, timeoutNs)
	switch result {
	case vk.Success:
		return true, nil
	case vk.Timeout:
		return false, nil
	default:
		return false, fmt.Errorf("vulkan: vkWaitForFences failed: %d", result)
	}
}

// TimelineSemaphore wraps a VkSemaphore created with
// VK_SEMAPHORE_TYPE_TIMELINE, adapted from the binary/timeline dual-mode
// deviceFence this backend originally used only for frame pacing.
type TimelineSemaphore struct {
	handle vk.Semaphore
	device *Device
}

func (s *TimelineSemaphore) Destroy() {
	if s.device == nil {
		return
	}
	vkDestroySemaphore(s.device.cmds, s.device.handle, s.handle, nil)
	s.device = nil
}

func (s *TimelineSemaphore) ID() uint64 { return uint64(s.handle) }

func (s *TimelineSemaphore) Value() (uint64, error) {
	var value uint64
	result := vkGetSemaphoreCounterValue(s.device.cmds, s.device.handle, s.handle, &value)
	if result != vk.Success {
		return 0, fmt.Errorf("vulkan: vkGetSemaphoreCounterValue failed: %d", result)
	}
	return value, nil
}

func (s *TimelineSemaphore) Signal(value uint64) error {
	info := vk.SemaphoreSignalInfo{
		SType:     vk.StructureTypeSemaphoreSignalInfo,
		Semaphore: s.handle,
		Value:     value,
	}
	result := vkSignalSemaphore(s.device.cmds, s.device.handle, &info)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkSignalSemaphore failed: %d", result)
	}
	return nil
}

func (s *TimelineSemaphore) Wait(value uint64, timeoutNs uint64) (bool, error) {
	if timeoutNs == 0 {
		timeoutNs = ^uint64(0)
	}
	semaphores := [1]vk.Semaphore{s.handle}
	values := [1]uint64{value}
	waitInfo := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    &semaphores[0],
		PValues:        &values[0],
	}
	result := s.device.cmds.WaitSemaphores(s.device.handle, &waitInfo, timeoutNs)
	switch result {
	case vk.Success:
		return true, nil
	case vk.Timeout:
		return false, nil
	default:
		return false, fmt.Errorf("vulkan: vkWaitSemaphores failed: %d", result)
	}
}

// QueryPool is a fixed-size pool of timestamp queries.
type QueryPool struct {
	handle vk.QueryPool
	count  uint32
	device *Device
}

func (q *QueryPool) Destroy() {
	if q.device == nil {
		return
	}
	vkDestroyQueryPool(q.device.cmds, q.device.handle, q.handle, nil)
	q.device = nil
}

func (q *QueryPool) Count() uint32 { return q.count }

func (q *QueryPool) Reset() error {
	vkResetQueryPool(q.device.cmds, q.device.handle, q.handle, 0, q.count)
	return nil
}

func (q *QueryPool) Results(wait bool) ([]uint64, []bool, error) {
	ticks := make([]uint64, q.count)
	available := make([]bool, q.count)

	flags := vk.QueryResultFlags(vk.QueryResult64Bit | vk.QueryResultWithAvailabilityBit)
	if wait {
		flags |= vk.QueryResultFlags(vk.QueryResultWaitBit)
	}

	// Stride is 16 bytes: one uint64 tick plus one uint64 availability flag
	// per query, matching the VK_QUERY_RESULT_WITH_AVAILABILITY_BIT layout.
	raw := make([]uint64, q.count*2)
	dataSize := uintptr(len(raw)) * 8
	result := vkGetQueryPoolResults(q.device.cmds, q.device.handle, q.handle, 0, q.count,
		dataSize, unsafe.Pointer(&raw[0]), 16, flags)
	if result != vk.Success && result != vk.NotReady {
		return nil, nil, fmt.Errorf("vulkan: vkGetQueryPoolResults failed: %d", result)
	}
	for i := uint32(0); i < q.count; i++ {
		ticks[i] = raw[i*2]
		available[i] = raw[i*2+1] != 0
	}
	return ticks, available, nil
}

// Vulkan function wrappers not already exposed by vk.Commands' generated
// accessor set.

func vkDestroySampler(cmds *vk.Commands, device vk.Device, sampler vk.Sampler, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroySampler(), uintptr(device), uintptr(sampler), uintptr(allocator))
}

func vkDestroyImageView(cmds *vk.Commands, device vk.Device, view vk.ImageView, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyImageView(), uintptr(device), uintptr(view), uintptr(allocator))
}

func vkDestroyShaderModule(cmds *vk.Commands, device vk.Device, module vk.ShaderModule, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyShaderModule(), uintptr(device), uintptr(module), uintptr(allocator))
}

func vkDestroyDescriptorSetLayout(cmds *vk.Commands, device vk.Device, layout vk.DescriptorSetLayout, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyDescriptorSetLayout(), uintptr(device), uintptr(layout), uintptr(allocator))
}

func vkDestroyPipelineLayout(cmds *vk.Commands, device vk.Device, layout vk.PipelineLayout, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyPipelineLayout(), uintptr(device), uintptr(layout), uintptr(allocator))
}

func vkDestroyFence(cmds *vk.Commands, device vk.Device, fence vk.Fence, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyFence(), uintptr(device), uintptr(fence), uintptr(allocator))
}

func vkResetFences(cmds *vk.Commands, device vk.Device, count uint32, fences *vk.Fence) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.ResetFences(), uintptr(device), uintptr(count), uintptr(unsafe.Pointer(fences)))
	return vk.Result(r)
}

func vkWaitForFences(cmds *vk.Commands, device vk.Device, count uint32, fences *vk.Fence, waitAll vk.Bool32, timeout uint64) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.WaitForFences(),
		uintptr(device), uintptr(count), uintptr(unsafe.Pointer(fences)), uintptr(waitAll), uintptr(timeout))
	return vk.Result(r)
}

func vkDestroySemaphore(cmds *vk.Commands, device vk.Device, semaphore vk.Semaphore, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroySemaphore(), uintptr(device), uintptr(semaphore), uintptr(allocator))
}

func vkSignalSemaphore(cmds *vk.Commands, device vk.Device, info *vk.SemaphoreSignalInfo) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.SignalSemaphore(), uintptr(device), uintptr(unsafe.Pointer(info)))
	return vk.Result(r)
}

func vkGetSemaphoreCounterValue(cmds *vk.Commands, device vk.Device, semaphore vk.Semaphore, value *uint64) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.GetSemaphoreCounterValue(),
		uintptr(device), uintptr(semaphore), uintptr(unsafe.Pointer(value)))
	return vk.Result(r)
}

func vkDestroyQueryPool(cmds *vk.Commands, device vk.Device, pool vk.QueryPool, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyQueryPool(), uintptr(device), uintptr(pool), uintptr(allocator))
}

func vkResetQueryPool(cmds *vk.Commands, device vk.Device, pool vk.QueryPool, firstQuery, queryCount uint32) {
	//nolint:errcheck // Vulkan void function (core since 1.2; loaded alongside the rest of device.go's feature set)
	syscall.SyscallN(cmds.ResetQueryPool(), uintptr(device), uintptr(pool), uintptr(firstQuery), uintptr(queryCount))
}

func vkGetQueryPoolResults(cmds *vk.Commands, device vk.Device, pool vk.QueryPool, firstQuery, queryCount uint32,
	dataSize uintptr, data unsafe.Pointer, stride uint64, flags vk.QueryResultFlags) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.GetQueryPoolResults(),
		uintptr(device), uintptr(pool), uintptr(firstQuery), uintptr(queryCount),
		uintptr(dataSize), uintptr(data), uintptr(stride), uintptr(flags))
	return vk.Result(r)
}
