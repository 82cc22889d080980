// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vulkan

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

// CommandPool allocates CommandBuffers from a single VkCommandPool created
// with VK_COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT, so Acquire never
// needs to reset the whole pool to recycle one buffer.
type CommandPool struct {
	handle vk.CommandPool
	device *Device
}

func (p *CommandPool) Destroy() {
	if p.device == nil {
		return
	}
	vkDestroyCommandPool(p.device.cmds, p.device.handle, p.handle, nil)
	p.device = nil
}

// Acquire allocates a fresh primary command buffer from the pool. Callers
// are expected to Destroy it (freeing it back via vkFreeCommandBuffers)
// once it is no longer needed.
func (p *CommandPool) Acquire() (hal.CommandBuffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.handle,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}

	var handle vk.CommandBuffer
	result := vkAllocateCommandBuffers(p.device.cmds, p.device.handle, &allocInfo, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkAllocateCommandBuffers failed: %d", result)
	}

	return &CommandBuffer{handle: handle, pool: p}, nil
}

// CommandBuffer records commands into a single VkCommandBuffer. It
// implements hal.Recorder directly: Begin/End bracket recording, and every
// Recorder method below issues its vkCmd* call immediately against
// c.handle, matching how a single-use, linearly-recorded command buffer
// is meant to be built.
type CommandBuffer struct {
	handle vk.CommandBuffer
	pool   *CommandPool
}

func (c *CommandBuffer) Destroy() {
	if c.pool == nil {
		return
	}
	vkFreeCommandBuffers(c.pool.device.cmds, c.pool.device.handle, c.pool.handle, 1, &c.handle)
	c.pool = nil
}

func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	result := vkBeginCommandBuffer(c.device().cmds, c.handle, &beginInfo)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkBeginCommandBuffer failed: %d", result)
	}
	return nil
}

func (c *CommandBuffer) End() error {
	result := vkEndCommandBuffer(c.device().cmds, c.handle)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkEndCommandBuffer failed: %d", result)
	}
	return nil
}

func (c *CommandBuffer) device() *Device { return c.pool.device }

// PipelineBarrier issues one vkCmdPipelineBarrier covering every requested
// buffer, image, and global dependency at once.
func (c *CommandBuffer) PipelineBarrier(buffers []hal.BufferBarrier, images []hal.ImageBarrier, global []hal.MemoryBarrier) {
	if len(buffers) == 0 && len(images) == 0 && len(global) == 0 {
		return
	}

	var srcStage, dstStage vk.PipelineStageFlags

	memBarriers := make([]vk.MemoryBarrier, len(global))
	for i, b := range global {
		srcStage |= pipelineStageMaskToVk(b.SrcStage)
		dstStage |= pipelineStageMaskToVk(b.DstStage)
		memBarriers[i] = vk.MemoryBarrier{
			SType:         vk.StructureTypeMemoryBarrier,
			SrcAccessMask: accessFlagToVk(b.SrcAccess),
			DstAccessMask: accessFlagToVk(b.DstAccess),
		}
	}

	bufBarriers := make([]vk.BufferMemoryBarrier, len(buffers))
	for i, b := range buffers {
		srcStage |= pipelineStageMaskToVk(b.SrcStage)
		dstStage |= pipelineStageMaskToVk(b.DstStage)
		size := vk.DeviceSize(b.Size)
		if size == 0 {
			size = vk.DeviceSize(vk.WholeSize)
		}
		bufBarriers[i] = vk.BufferMemoryBarrier{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       accessFlagToVk(b.SrcAccess),
			DstAccessMask:       accessFlagToVk(b.DstAccess),
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Buffer:              bufferHandleOf(b.Buffer),
			Offset:              vk.DeviceSize(b.Offset),
			Size:                size,
		}
	}

	imgBarriers := make([]vk.ImageMemoryBarrier, len(images))
	for i, b := range images {
		srcStage |= pipelineStageMaskToVk(b.SrcStage)
		dstStage |= pipelineStageMaskToVk(b.DstStage)
		imgBarriers[i] = vk.ImageMemoryBarrier{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       accessFlagToVk(b.SrcAccess),
			DstAccessMask:       accessFlagToVk(b.DstAccess),
			OldLayout:           imageLayoutToVk(b.OldLayout),
			NewLayout:           imageLayoutToVk(b.NewLayout),
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               imageHandleOf(b.Image),
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: vk.RemainingMipLevels,
				LayerCount: vk.RemainingArrayLayers,
			},
		}
	}

	if srcStage == 0 {
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
	}
	if dstStage == 0 {
		dstStage = vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	}

	var pMem *vk.MemoryBarrier
	if len(memBarriers) > 0 {
		pMem = &memBarriers[0]
	}
	var pBuf *vk.BufferMemoryBarrier
	if len(bufBarriers) > 0 {
		pBuf = &bufBarriers[0]
	}
	var pImg *vk.ImageMemoryBarrier
	if len(imgBarriers) > 0 {
		pImg = &imgBarriers[0]
	}

	vkCmdPipelineBarrier(c.device().cmds, c.handle, srcStage, dstStage, 0,
		uint32(len(memBarriers)), pMem,
		uint32(len(bufBarriers)), pBuf,
		uint32(len(imgBarriers)), pImg)
}

func (c *CommandBuffer) CopyBufferToBuffer(src, dst hal.Resource, region hal.BufferCopyRegion) {
	vkRegion := vk.BufferCopy{
		SrcOffset: vk.DeviceSize(region.SrcOffset),
		DstOffset: vk.DeviceSize(region.DstOffset),
		Size:      vk.DeviceSize(region.Size),
	}
	vkCmdCopyBuffer(c.device().cmds, c.handle, bufferHandleOf(src), bufferHandleOf(dst), 1, &vkRegion)
}

func (c *CommandBuffer) FillBuffer(dst hal.Resource, offset, size uint64, word uint32) {
	vkCmdFillBuffer(c.device().cmds, c.handle, bufferHandleOf(dst), vk.DeviceSize(offset), vk.DeviceSize(size), word)
}

// CopyBufferToImage copies src into dst. The caller's barrier has already
// moved dst to VK_IMAGE_LAYOUT_TRANSFER_DST_OPTIMAL, so the copy names
// that layout.
func (c *CommandBuffer) CopyBufferToImage(src, dst hal.Resource, dstSizeBytes uint64) {
	w, h, d, _ := imageExtentOf(dst)
	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{Width: w, Height: h, Depth: d},
	}
	_ = dstSizeBytes
	vkCmdCopyBufferToImage(c.device().cmds, c.handle, bufferHandleOf(src), imageHandleOf(dst), vk.ImageLayoutTransferDstOptimal, 1, &region)
}

func (c *CommandBuffer) CopyImageToBuffer(src, dst hal.Resource, srcSizeBytes uint64) {
	w, h, d, _ := imageExtentOf(src)
	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{Width: w, Height: h, Depth: d},
	}
	_ = srcSizeBytes
	vkCmdCopyImageToBuffer(c.device().cmds, c.handle, imageHandleOf(src), vk.ImageLayoutTransferSrcOptimal, bufferHandleOf(dst), 1, &region)
}

func (c *CommandBuffer) BindComputePipeline(pipeline hal.ComputePipeline) {
	p, ok := pipeline.(*ComputePipeline)
	if !ok || p == nil {
		return
	}
	vkCmdBindPipeline(c.device().cmds, c.handle, vk.PipelineBindPointCompute, p.handle)
}

// PushDescriptorSet writes every binding directly into the command buffer
// via vkCmdPushDescriptorSetKHR, without ever allocating a VkDescriptorSet
// or VkDescriptorPool: layout's VkDescriptorSetLayout was created with
// VK_DESCRIPTOR_SET_LAYOUT_CREATE_PUSH_DESCRIPTOR_BIT_KHR specifically so
// this call is legal.
func (c *CommandBuffer) PushDescriptorSet(layout hal.PipelineLayout, writes []hal.DescriptorWrite) {
	l, ok := layout.(*PipelineLayout)
	if !ok || l == nil || len(writes) == 0 {
		return
	}

	bufferInfos := make([]vk.DescriptorBufferInfo, 0, len(writes))
	imageInfos := make([]vk.DescriptorImageInfo, 0, len(writes))
	vkWrites := make([]vk.WriteDescriptorSet, len(writes))

	for i, w := range writes {
		vkWrites[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstBinding:      w.Binding,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorType(w.Kind),
		}
		switch w.Kind {
		case hal.ParameterUniformBuffer, hal.ParameterStorageBuffer:
			size := w.BufferSize
			if size == 0 {
				size = uint64(vk.WholeSize)
			}
			bufferInfos = append(bufferInfos, vk.DescriptorBufferInfo{
				Buffer: bufferHandleOf(w.Buffer),
				Offset: vk.DeviceSize(w.BufferOffset),
				Range:  vk.DeviceSize(size),
			})
			vkWrites[i].PBufferInfo = &bufferInfos[len(bufferInfos)-1]
		case hal.ParameterStorageImage, hal.ParameterCombinedImageSampler:
			layout := vk.ImageLayoutGeneral
			var sampler vk.Sampler
			view := imageViewHandleOf(w.Image)
			if w.Kind == hal.ParameterCombinedImageSampler {
				layout = vk.ImageLayoutShaderReadOnlyOptimal
				sampler = samplerHandleOf(w.Image)
			}
			imageInfos = append(imageInfos, vk.DescriptorImageInfo{
				Sampler:     sampler,
				ImageView:   view,
				ImageLayout: layout,
			})
			vkWrites[i].PImageInfo = &imageInfos[len(imageInfos)-1]
		default:
			// ParameterAccelerationStruct is unreachable until ray tracing
			// is wired up; CreateRayTracingPipeline always errors first.
		}
	}

	vkCmdPushDescriptorSetKHR(c.device(), c.handle, vk.PipelineBindPointCompute, l.handle, 0, uint32(len(vkWrites)), &vkWrites[0])
}

func (c *CommandBuffer) PushConstants(layout hal.PipelineLayout, stages hal.ShaderStageMask, data []byte) {
	if len(data) == 0 {
		return
	}
	l, ok := layout.(*PipelineLayout)
	if !ok || l == nil {
		return
	}
	vkCmdPushConstants(c.device().cmds, c.handle, l.handle, shaderStageMaskToVk(stages), 0, uint32(len(data)), unsafe.Pointer(&data[0]))
}

func (c *CommandBuffer) Dispatch(x, y, z uint32) {
	vkCmdDispatch(c.device().cmds, c.handle, x, y, z)
}

func (c *CommandBuffer) DispatchIndirect(buf hal.Resource, offset uint64) {
	vkCmdDispatchIndirect(c.device().cmds, c.handle, bufferHandleOf(buf), vk.DeviceSize(offset))
}

// BindRayTracingPipeline, TraceRays, TraceRaysIndirect, and
// BuildAccelerationStructures are no-ops: CreateRayTracingPipeline,
// BuildBLAS, and BuildTLAS always error before any of these handles can
// exist, so a well-formed caller never reaches these with real work to do.
func (c *CommandBuffer) BindRayTracingPipeline(pipeline hal.RayTracingPipelineHandle) {}

func (c *CommandBuffer) TraceRays(pipeline hal.RayTracingPipelineHandle, bindings hal.ShaderBindingRegions, x, y, z uint32) {
}

func (c *CommandBuffer) TraceRaysIndirect(pipeline hal.RayTracingPipelineHandle, bindings hal.ShaderBindingRegions, indirectAddr uint64) {
}

func (c *CommandBuffer) BuildAccelerationStructures(builds []hal.AccelBuild) {}

func (c *CommandBuffer) WriteTimestamp(pool hal.QueryPool, index uint32, stage hal.PipelineStage) {
	qp, ok := pool.(*QueryPool)
	if !ok || qp == nil {
		return
	}
	c.device().cmds.CmdWriteTimestamp(c.handle, pipelineStageToVkBits(stage), qp.handle, index)
}

// --- Resource handle accessors ---
//
// Recorder methods accept hal.Resource rather than concrete types, since
// buffers, tensors, images, and textures all back storage the same
// Resource interface describes. These helpers narrow back to the Vulkan
// handle the command actually needs.

func bufferHandleOf(r hal.Resource) vk.Buffer {
	switch v := r.(type) {
	case *Buffer:
		return v.handle
	case *Tensor:
		return v.handle
	default:
		return 0
	}
}

func imageHandleOf(r hal.Resource) vk.Image {
	switch v := r.(type) {
	case *Image:
		return v.handle
	case *Texture:
		return v.handle
	default:
		return 0
	}
}

func imageViewHandleOf(r hal.Resource) vk.ImageView {
	if t, ok := r.(*Texture); ok {
		return t.view
	}
	return 0
}

func samplerHandleOf(r hal.Resource) vk.Sampler {
	if t, ok := r.(*Texture); ok {
		return t.sampler
	}
	return 0
}

func imageExtentOf(r hal.Resource) (width, height, depth uint32, format hal.ImageFormat) {
	switch v := r.(type) {
	case *Image:
		return v.width, v.height, v.depth, v.format
	case *Texture:
		return v.width, v.height, v.depth, v.format
	default:
		return 0, 0, 0, hal.ImageFormatUnknown
	}
}

// --- hal enum -> Vulkan conversions used only by command recording ---

func pipelineStageMaskToVk(mask hal.PipelineStageMask) vk.PipelineStageFlags {
	var flags vk.PipelineStageFlagBits
	if mask&hal.PipelineStageMask(hal.PipelineStageTopOfPipe) != 0 {
		flags |= vk.PipelineStageTopOfPipeBit
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageTransfer) != 0 {
		flags |= vk.PipelineStageTransferBit
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageCompute) != 0 {
		flags |= vk.PipelineStageComputeShaderBit
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageDrawIndirect) != 0 {
		flags |= vk.PipelineStageDrawIndirectBit
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageRayTracing) != 0 {
		flags |= vk.PipelineStageRayTracingShaderBitKhr
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageHost) != 0 {
		flags |= vk.PipelineStageHostBit
	}
	if mask&hal.PipelineStageMask(hal.PipelineStageBottomOfPipe) != 0 {
		flags |= vk.PipelineStageBottomOfPipeBit
	}
	return vk.PipelineStageFlags(flags)
}

func pipelineStageToVkBits(stage hal.PipelineStage) vk.PipelineStageFlagBits {
	return vk.PipelineStageFlagBits(pipelineStageMaskToVk(hal.PipelineStageMask(stage)))
}

func accessFlagToVk(access hal.AccessFlag) vk.AccessFlags {
	var flags vk.AccessFlagBits
	if access&hal.AccessMemoryRead != 0 {
		flags |= vk.AccessMemoryReadBit
	}
	if access&hal.AccessMemoryWrite != 0 {
		flags |= vk.AccessMemoryWriteBit
	}
	if access&hal.AccessTransferRead != 0 {
		flags |= vk.AccessTransferReadBit
	}
	if access&hal.AccessTransferWrite != 0 {
		flags |= vk.AccessTransferWriteBit
	}
	if access&hal.AccessHostRead != 0 {
		flags |= vk.AccessHostReadBit
	}
	if access&hal.AccessHostWrite != 0 {
		flags |= vk.AccessHostWriteBit
	}
	if access&hal.AccessShaderRead != 0 {
		flags |= vk.AccessShaderReadBit
	}
	if access&hal.AccessShaderWrite != 0 {
		flags |= vk.AccessShaderWriteBit
	}
	return vk.AccessFlags(flags)
}

func imageLayoutToVk(layout hal.ImageLayout) vk.ImageLayout {
	switch layout {
	case hal.ImageLayoutGeneral:
		return vk.ImageLayoutGeneral
	case hal.ImageLayoutShaderReadOnlyOptimal:
		return vk.ImageLayoutShaderReadOnlyOptimal
	case hal.ImageLayoutTransferSrcOptimal:
		return vk.ImageLayoutTransferSrcOptimal
	case hal.ImageLayoutTransferDstOptimal:
		return vk.ImageLayoutTransferDstOptimal
	default:
		return vk.ImageLayoutUndefined
	}
}

// --- Vulkan function wrappers ---

func vkDestroyCommandPool(cmds *vk.Commands, device vk.Device, pool vk.CommandPool, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyCommandPool(), uintptr(device), uintptr(pool), uintptr(allocator))
}

func vkAllocateCommandBuffers(cmds *vk.Commands, device vk.Device, allocInfo *vk.CommandBufferAllocateInfo, buffers *vk.CommandBuffer) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.AllocateCommandBuffers(),
		uintptr(device), uintptr(unsafe.Pointer(allocInfo)), uintptr(unsafe.Pointer(buffers)))
	return vk.Result(r)
}

func vkFreeCommandBuffers(cmds *vk.Commands, device vk.Device, pool vk.CommandPool, count uint32, buffers *vk.CommandBuffer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.FreeCommandBuffers(),
		uintptr(device), uintptr(pool), uintptr(count), uintptr(unsafe.Pointer(buffers)))
}

func vkBeginCommandBuffer(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, beginInfo *vk.CommandBufferBeginInfo) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.BeginCommandBuffer(), uintptr(cmdBuffer), uintptr(unsafe.Pointer(beginInfo)))
	return vk.Result(r)
}

func vkEndCommandBuffer(cmds *vk.Commands, cmdBuffer vk.CommandBuffer) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.EndCommandBuffer(), uintptr(cmdBuffer))
	return vk.Result(r)
}

func vkCmdPipelineBarrier(cmds *vk.Commands, cmdBuffer vk.CommandBuffer,
	srcStageMask, dstStageMask vk.PipelineStageFlags, dependencyFlags vk.DependencyFlags,
	memoryBarrierCount uint32, pMemoryBarriers *vk.MemoryBarrier,
	bufferMemoryBarrierCount uint32, pBufferMemoryBarriers *vk.BufferMemoryBarrier,
	imageMemoryBarrierCount uint32, pImageMemoryBarriers *vk.ImageMemoryBarrier) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdPipelineBarrier(),
		uintptr(cmdBuffer),
		uintptr(srcStageMask),
		uintptr(dstStageMask),
		uintptr(dependencyFlags),
		uintptr(memoryBarrierCount), uintptr(unsafe.Pointer(pMemoryBarriers)),
		uintptr(bufferMemoryBarrierCount), uintptr(unsafe.Pointer(pBufferMemoryBarriers)),
		uintptr(imageMemoryBarrierCount), uintptr(unsafe.Pointer(pImageMemoryBarriers)))
}

func vkCmdFillBuffer(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, buffer vk.Buffer, offset, size vk.DeviceSize, data uint32) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdFillBuffer(), uintptr(cmdBuffer), uintptr(buffer), uintptr(offset), uintptr(size), uintptr(data))
}

func vkCmdCopyBuffer(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, src, dst vk.Buffer, regionCount uint32, pRegions *vk.BufferCopy) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdCopyBuffer(), uintptr(cmdBuffer), uintptr(src), uintptr(dst), uintptr(regionCount), uintptr(unsafe.Pointer(pRegions)))
}

func vkCmdCopyBufferToImage(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, src vk.Buffer, dst vk.Image, layout vk.ImageLayout, regionCount uint32, pRegions *vk.BufferImageCopy) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdCopyBufferToImage(),
		uintptr(cmdBuffer), uintptr(src), uintptr(dst), uintptr(layout), uintptr(regionCount), uintptr(unsafe.Pointer(pRegions)))
}

func vkCmdCopyImageToBuffer(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, src vk.Image, layout vk.ImageLayout, dst vk.Buffer, regionCount uint32, pRegions *vk.BufferImageCopy) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdCopyImageToBuffer(),
		uintptr(cmdBuffer), uintptr(src), uintptr(layout), uintptr(dst), uintptr(regionCount), uintptr(unsafe.Pointer(pRegions)))
}

func vkCmdBindPipeline(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, bindPoint vk.PipelineBindPoint, pipeline vk.Pipeline) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdBindPipeline(), uintptr(cmdBuffer), uintptr(bindPoint), uintptr(pipeline))
}

func vkCmdPushConstants(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, layout vk.PipelineLayout, stages vk.ShaderStageFlags, offset, size uint32, data unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdPushConstants(),
		uintptr(cmdBuffer), uintptr(layout), uintptr(stages), uintptr(offset), uintptr(size), uintptr(data))
}

func vkCmdDispatch(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, x, y, z uint32) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdDispatch(), uintptr(cmdBuffer), uintptr(x), uintptr(y), uintptr(z))
}

func vkCmdDispatchIndirect(cmds *vk.Commands, cmdBuffer vk.CommandBuffer, buffer vk.Buffer, offset vk.DeviceSize) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.CmdDispatchIndirect(), uintptr(cmdBuffer), uintptr(buffer), uintptr(offset))
}

// vkCmdPushDescriptorSetKHR is a VK_KHR_push_descriptor entry point with no
// accessor of its own in vk.Commands; it is looked up once per device via
// vk.GetDeviceProcAddr, the same way queue.go resolves vkQueueSubmit.
var cmdPushDescriptorSetKHR uintptr

func vkCmdPushDescriptorSetKHR(d *Device, cmdBuffer vk.CommandBuffer, bindPoint vk.PipelineBindPoint, layout vk.PipelineLayout, set, descriptorWriteCount uint32, pDescriptorWrites *vk.WriteDescriptorSet) {
	if cmdPushDescriptorSetKHR == 0 {
		cmdPushDescriptorSetKHR = uintptr(vk.GetDeviceProcAddr(d.handle, "vkCmdPushDescriptorSetKHR"))
	}
	if cmdPushDescriptorSetKHR == 0 {
		return
	}
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmdPushDescriptorSetKHR,
		uintptr(cmdBuffer), uintptr(bindPoint), uintptr(layout), uintptr(set),
		uintptr(descriptorWriteCount), uintptr(unsafe.Pointer(pDescriptorWrites)))
}
