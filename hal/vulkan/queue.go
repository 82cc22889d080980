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

// Queue implements hal.Queue for Vulkan.
type Queue struct {
	handle vk.Queue
	device *Device
}

// Submit submits every batch in order. Each batch's wait/signal are
// VkTimelineSemaphoreSubmitInfo values chained onto the VkSubmitInfo via
// PNext, since every hal.TimelineSemaphore this backend hands out is a
// real VK_SEMAPHORE_TYPE_TIMELINE semaphore rather than a binary one.
func (q *Queue) Submit(batches []hal.SubmitBatch) error {
	for _, batch := range batches {
		if err := q.submitOne(batch); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) submitOne(batch hal.SubmitBatch) error {
	if len(batch.CommandBuffers) == 0 {
		return nil
	}

	vkCmdBuffers := make([]vk.CommandBuffer, len(batch.CommandBuffers))
	for i, cb := range batch.CommandBuffers {
		vkCB, ok := cb.(*CommandBuffer)
		if !ok || vkCB == nil {
			return fmt.Errorf("vulkan: command buffer is not a Vulkan command buffer")
		}
		vkCmdBuffers[i] = vkCB.handle
	}

	var waitValues, signalValues [1]uint64
	var waitSemaphores, signalSemaphores [1]vk.Semaphore
	var waitStages [1]vk.PipelineStageFlags

	timelineInfo := vk.TimelineSemaphoreSubmitInfo{
		SType: vk.StructureTypeTimelineSemaphoreSubmitInfo,
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		PNext:              unsafe.Pointer(&timelineInfo),
		CommandBufferCount: uint32(len(vkCmdBuffers)),
		PCommandBuffers:    &vkCmdBuffers[0],
	}

	if batch.Wait != nil {
		sem, ok := batch.Wait.(*TimelineSemaphore)
		if !ok || sem == nil {
			return fmt.Errorf("vulkan: wait semaphore is not a Vulkan timeline semaphore")
		}
		waitSemaphores[0] = sem.handle
		waitValues[0] = batch.WaitValue
		waitStages[0] = pipelineStageMaskToVk(batch.WaitStageMask)
		submitInfo.WaitSemaphoreCount = 1
		submitInfo.PWaitSemaphores = &waitSemaphores[0]
		submitInfo.PWaitDstStageMask = &waitStages[0]
		timelineInfo.WaitSemaphoreValueCount = 1
		timelineInfo.PWaitSemaphoreValues = &waitValues[0]
	}

	if batch.Signal != nil {
		sem, ok := batch.Signal.(*TimelineSemaphore)
		if !ok || sem == nil {
			return fmt.Errorf("vulkan: signal semaphore is not a Vulkan timeline semaphore")
		}
		signalSemaphores[0] = sem.handle
		signalValues[0] = batch.SignalValue
		submitInfo.SignalSemaphoreCount = 1
		submitInfo.PSignalSemaphores = &signalSemaphores[0]
		timelineInfo.SignalSemaphoreValueCount = 1
		timelineInfo.PSignalSemaphoreValues = &signalValues[0]
	}

	result := vkQueueSubmit(q, 1, &submitInfo, 0)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkQueueSubmit failed: %d", result)
	}
	return nil
}

// SubmitOneShot submits a single command buffer and signals fence on
// completion, for callers that want a plain VkFence wait rather than a
// timeline value (one-off uploads, synchronous readbacks).
func (q *Queue) SubmitOneShot(cmd hal.CommandBuffer, fence hal.Fence) error {
	vkCB, ok := cmd.(*CommandBuffer)
	if !ok || vkCB == nil {
		return fmt.Errorf("vulkan: command buffer is not a Vulkan command buffer")
	}

	var vkFence vk.Fence
	if fence != nil {
		f, ok := fence.(*Fence)
		if !ok || f == nil {
			return fmt.Errorf("vulkan: fence is not a Vulkan fence")
		}
		vkFence = f.handle
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &vkCB.handle,
	}

	result := vkQueueSubmit(q, 1, &submitInfo, vkFence)
	if result != vk.Success {
		return fmt.Errorf("vulkan: vkQueueSubmit failed: %d", result)
	}
	return nil
}

// Vulkan function wrapper

func vkQueueSubmit(q *Queue, submitCount uint32, submits *vk.SubmitInfo, fence vk.Fence) vk.Result {
	proc := vk.GetDeviceProcAddr(q.device.handle, "vkQueueSubmit")
	if proc == nil {
		return vk.ErrorExtensionNotPresent
	}
	r, _, _ := syscall.SyscallN(uintptr(proc),
		uintptr(q.handle),
		uintptr(submitCount),
		uintptr(unsafe.Pointer(submits)),
		uintptr(fence))
	return vk.Result(r)
}
