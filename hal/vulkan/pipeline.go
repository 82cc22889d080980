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

const defaultEntryPoint = "main"

// CreateShaderModule wraps SPIR-V words in a VkShaderModule. code is
// already word-aligned; Hephaistos never assembles shader source itself.
func (d *Device) CreateShaderModule(code []uint32) (hal.ShaderModule, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("vulkan: shader code is empty")
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(code)) * 4,
		PCode:    &code[0],
	}

	var handle vk.ShaderModule
	result := vkCreateShaderModule(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateShaderModule failed: %d", result)
	}

	return &ShaderModule{handle: handle, device: d}, nil
}

// CreateDescriptorSetLayout builds a single-set layout flagged for push
// descriptors, so PushDescriptorSet never needs a backing VkDescriptorPool.
// ParameterKind values already equal their Vulkan VkDescriptorType
// counterparts, so no translation table is needed.
func (d *Device) CreateDescriptorSetLayout(bindings []hal.BindingTraits) (hal.DescriptorSetLayout, error) {
	vkBindings := make([]vk.DescriptorSetLayoutBinding, len(bindings))
	for i, b := range bindings {
		count := b.Count
		if count == 0 {
			count = 1
		}
		vkBindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         b.Index,
			DescriptorType:  vk.DescriptorType(b.Kind),
			DescriptorCount: count,
			StageFlags:      allShaderStagesVk,
		}
	}

	createInfo := vk.DescriptorSetLayoutCreateInfo{
		SType: vk.StructureTypeDescriptorSetLayoutCreateInfo,
		Flags: vk.DescriptorSetLayoutCreateFlags(vk.DescriptorSetLayoutCreatePushDescriptorBitKhr),
	}
	if len(vkBindings) > 0 {
		createInfo.BindingCount = uint32(len(vkBindings))
		createInfo.PBindings = &vkBindings[0]
	}

	var handle vk.DescriptorSetLayout
	result := vkCreateDescriptorSetLayout(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateDescriptorSetLayout failed: %d", result)
	}

	return &DescriptorSetLayout{handle: handle, bindings: bindings, device: d}, nil
}

// CreatePipelineLayout combines one descriptor-set layout with a single
// merged push-constant range visible to the given stages.
func (d *Device) CreatePipelineLayout(set hal.DescriptorSetLayout, pushConstantSize uint32, pushConstantStages hal.ShaderStageMask) (hal.PipelineLayout, error) {
	vkSet, ok := set.(*DescriptorSetLayout)
	if !ok || vkSet == nil {
		return nil, fmt.Errorf("vulkan: invalid descriptor set layout")
	}

	createInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    &vkSet.handle,
	}

	var pushRange vk.PushConstantRange
	if pushConstantSize > 0 {
		pushRange = vk.PushConstantRange{
			StageFlags: shaderStageMaskToVk(pushConstantStages),
			Offset:     0,
			Size:       pushConstantSize,
		}
		createInfo.PushConstantRangeCount = 1
		createInfo.PPushConstantRanges = &pushRange
	}

	var handle vk.PipelineLayout
	result := vkCreatePipelineLayout(d.cmds, d.handle, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreatePipelineLayout failed: %d", result)
	}

	return &PipelineLayout{
		handle:             handle,
		pushConstantSize:   pushConstantSize,
		pushConstantStages: pushConstantStages,
		device:             d,
	}, nil
}

// CreateComputePipeline compiles module's entry point against layout,
// optionally with specialization constants. specIDs[i] names the constant
// ID that the i-th 4-byte word of specialization binds.
func (d *Device) CreateComputePipeline(module hal.ShaderModule, entryPoint string, layout hal.PipelineLayout, specialization []byte, specIDs []uint32) (hal.ComputePipeline, error) {
	vkModule, ok := module.(*ShaderModule)
	if !ok || vkModule == nil {
		return nil, fmt.Errorf("vulkan: invalid shader module")
	}
	vkLayout, ok := layout.(*PipelineLayout)
	if !ok || vkLayout == nil {
		return nil, fmt.Errorf("vulkan: invalid pipeline layout")
	}

	if entryPoint == "" {
		entryPoint = defaultEntryPoint
	}
	entryPointBytes := append([]byte(entryPoint), 0)

	stage := vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageComputeBit,
		Module: vkModule.handle,
		PName:  uintptr(unsafe.Pointer(&entryPointBytes[0])),
	}

	var specInfo vk.SpecializationInfo
	if len(specIDs) > 0 {
		entries := make([]vk.SpecializationMapEntry, len(specIDs))
		for i, id := range specIDs {
			entries[i] = vk.SpecializationMapEntry{
				ConstantID: id,
				Offset:     uint32(i * 4),
				Size:       4,
			}
		}
		specInfo = vk.SpecializationInfo{
			MapEntryCount: uint32(len(entries)),
			PMapEntries:   &entries[0],
			DataSize:      uintptr(len(specialization)),
			PData:         unsafe.Pointer(&specialization[0]),
		}
		stage.PSpecializationInfo = &specInfo
	}

	createInfo := vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  stage,
		Layout: vkLayout.handle,
	}

	var pipeline vk.Pipeline
	result := vkCreateComputePipelines(d.cmds, d.handle, 0, 1, &createInfo, nil, &pipeline)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateComputePipelines failed: %d", result)
	}

	return &ComputePipeline{handle: pipeline, device: d}, nil
}

// allShaderStagesVk is the stage visibility applied to every push-descriptor
// binding: every binding is visible to compute and to every ray-tracing
// stage, since Hephaistos' reflection pass does not (yet) narrow per-stage
// visibility below "whatever pipeline type created the layout".
var allShaderStagesVk = vk.ShaderStageFlags(vk.ShaderStageComputeBit) |
	vk.ShaderStageFlags(vk.ShaderStageRaygenBitKhr) |
	vk.ShaderStageFlags(vk.ShaderStageMissBitKhr) |
	vk.ShaderStageFlags(vk.ShaderStageClosestHitBitKhr) |
	vk.ShaderStageFlags(vk.ShaderStageAnyHitBitKhr) |
	vk.ShaderStageFlags(vk.ShaderStageCallableBitKhr)

func shaderStageMaskToVk(mask hal.ShaderStageMask) vk.ShaderStageFlags {
	var flags vk.ShaderStageFlagBits
	if mask&hal.ShaderStageCompute != 0 {
		flags |= vk.ShaderStageComputeBit
	}
	if mask&hal.ShaderStageRayGen != 0 {
		flags |= vk.ShaderStageRaygenBitKhr
	}
	if mask&hal.ShaderStageMiss != 0 {
		flags |= vk.ShaderStageMissBitKhr
	}
	if mask&hal.ShaderStageClosestHit != 0 {
		flags |= vk.ShaderStageClosestHitBitKhr
	}
	if mask&hal.ShaderStageAnyHit != 0 {
		flags |= vk.ShaderStageAnyHitBitKhr
	}
	if mask&hal.ShaderStageCallable != 0 {
		flags |= vk.ShaderStageCallableBitKhr
	}
	return vk.ShaderStageFlags(flags)
}

// Vulkan function wrappers not already exposed by vk.Commands' generated
// accessor set.

func vkCreateShaderModule(cmds *vk.Commands, device vk.Device, createInfo *vk.ShaderModuleCreateInfo, allocator unsafe.Pointer, module *vk.ShaderModule) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateShaderModule(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(module)))
	return vk.Result(r)
}

func vkCreateDescriptorSetLayout(cmds *vk.Commands, device vk.Device, createInfo *vk.DescriptorSetLayoutCreateInfo, allocator unsafe.Pointer, layout *vk.DescriptorSetLayout) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateDescriptorSetLayout(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(layout)))
	return vk.Result(r)
}

func vkCreatePipelineLayout(cmds *vk.Commands, device vk.Device, createInfo *vk.PipelineLayoutCreateInfo, allocator unsafe.Pointer, layout *vk.PipelineLayout) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreatePipelineLayout(),
		uintptr(device), uintptr(unsafe.Pointer(createInfo)), uintptr(allocator), uintptr(unsafe.Pointer(layout)))
	return vk.Result(r)
}

func vkCreateComputePipelines(cmds *vk.Commands, device vk.Device, cache vk.PipelineCache, count uint32, createInfo *vk.ComputePipelineCreateInfo, allocator unsafe.Pointer, pipeline *vk.Pipeline) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateComputePipelines(),
		uintptr(device),
		uintptr(cache),
		uintptr(count),
		uintptr(unsafe.Pointer(createInfo)),
		uintptr(allocator),
		uintptr(unsafe.Pointer(pipeline)))
	return vk.Result(r)
}

func vkDestroyPipeline(cmds *vk.Commands, device vk.Device, pipeline vk.Pipeline, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function
	syscall.SyscallN(cmds.DestroyPipeline(),
		uintptr(device),
		uintptr(pipeline),
		uintptr(allocator))
}
