// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vulkan

import (
	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

// textureFormatToVk converts a hal.ImageFormat to its Vulkan VkFormat
// equivalent. ImageFormatUnknown and anything not in the table map to
// VK_FORMAT_UNDEFINED.
func textureFormatToVk(format hal.ImageFormat) vk.Format {
	if f, ok := imageFormatMap[format]; ok {
		return f
	}
	return vk.FormatUndefined
}

var imageFormatMap = map[hal.ImageFormat]vk.Format{
	hal.ImageFormatR8G8B8A8Unorm:     vk.FormatR8g8b8a8Unorm,
	hal.ImageFormatR8G8B8A8Snorm:     vk.FormatR8g8b8a8Snorm,
	hal.ImageFormatR8G8B8A8Uint:      vk.FormatR8g8b8a8Uint,
	hal.ImageFormatR8G8B8A8Sint:      vk.FormatR8g8b8a8Sint,
	hal.ImageFormatR16G16B16A16Uint:  vk.FormatR16g16b16a16Uint,
	hal.ImageFormatR16G16B16A16Sint:  vk.FormatR16g16b16a16Sint,
	hal.ImageFormatR32Uint:           vk.FormatR32Uint,
	hal.ImageFormatR32Sint:           vk.FormatR32Sint,
	hal.ImageFormatR32Sfloat:         vk.FormatR32Sfloat,
	hal.ImageFormatR32G32Uint:        vk.FormatR32g32Uint,
	hal.ImageFormatR32G32Sint:        vk.FormatR32g32Sint,
	hal.ImageFormatR32G32Sfloat:      vk.FormatR32g32Sfloat,
	hal.ImageFormatR32G32B32A32Uint:  vk.FormatR32g32b32a32Uint,
	hal.ImageFormatR32G32B32A32Sint:  vk.FormatR32g32b32a32Sint,
	hal.ImageFormatR32G32B32A32Sfloat: vk.FormatR32g32b32a32Sfloat,
}

func addressModeToVk(mode hal.AddressMode) vk.SamplerAddressMode {
	switch mode {
	case hal.AddressModeMirroredRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case hal.AddressModeClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	case hal.AddressModeMirrorClampToEdge:
		return vk.SamplerAddressModeMirrorClampToEdge
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func boolToVk(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
