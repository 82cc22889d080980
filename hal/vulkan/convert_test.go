// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

func TestTextureFormatToVk(t *testing.T) {
	tests := []struct {
		name   string
		format hal.ImageFormat
		want   vk.Format
	}{
		{"R8G8B8A8Unorm", hal.ImageFormatR8G8B8A8Unorm, vk.FormatR8g8b8a8Unorm},
		{"R8G8B8A8Snorm", hal.ImageFormatR8G8B8A8Snorm, vk.FormatR8g8b8a8Snorm},
		{"R8G8B8A8Uint", hal.ImageFormatR8G8B8A8Uint, vk.FormatR8g8b8a8Uint},
		{"R8G8B8A8Sint", hal.ImageFormatR8G8B8A8Sint, vk.FormatR8g8b8a8Sint},
		{"R16G16B16A16Uint", hal.ImageFormatR16G16B16A16Uint, vk.FormatR16g16b16a16Uint},
		{"R16G16B16A16Sint", hal.ImageFormatR16G16B16A16Sint, vk.FormatR16g16b16a16Sint},
		{"R32Uint", hal.ImageFormatR32Uint, vk.FormatR32Uint},
		{"R32Sint", hal.ImageFormatR32Sint, vk.FormatR32Sint},
		{"R32Sfloat", hal.ImageFormatR32Sfloat, vk.FormatR32Sfloat},
		{"R32G32Uint", hal.ImageFormatR32G32Uint, vk.FormatR32g32Uint},
		{"R32G32Sint", hal.ImageFormatR32G32Sint, vk.FormatR32g32Sint},
		{"R32G32Sfloat", hal.ImageFormatR32G32Sfloat, vk.FormatR32g32Sfloat},
		{"R32G32B32A32Uint", hal.ImageFormatR32G32B32A32Uint, vk.FormatR32g32b32a32Uint},
		{"R32G32B32A32Sint", hal.ImageFormatR32G32B32A32Sint, vk.FormatR32g32b32a32Sint},
		{"R32G32B32A32Sfloat", hal.ImageFormatR32G32B32A32Sfloat, vk.FormatR32g32b32a32Sfloat},
		{"Unknown maps to Undefined", hal.ImageFormatUnknown, vk.FormatUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textureFormatToVk(tt.format); got != tt.want {
				t.Errorf("textureFormatToVk(%v) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestAddressModeToVk(t *testing.T) {
	tests := []struct {
		name string
		mode hal.AddressMode
		want vk.SamplerAddressMode
	}{
		{"MirroredRepeat", hal.AddressModeMirroredRepeat, vk.SamplerAddressModeMirroredRepeat},
		{"ClampToEdge", hal.AddressModeClampToEdge, vk.SamplerAddressModeClampToEdge},
		{"MirrorClampToEdge", hal.AddressModeMirrorClampToEdge, vk.SamplerAddressModeMirrorClampToEdge},
		{"unrecognized defaults to Repeat", hal.AddressMode(99), vk.SamplerAddressModeRepeat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := addressModeToVk(tt.mode); got != tt.want {
				t.Errorf("addressModeToVk(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestBoolToVk(t *testing.T) {
	if got := boolToVk(true); got != vk.True {
		t.Errorf("boolToVk(true) = %v, want vk.True", got)
	}
	if got := boolToVk(false); got != vk.False {
		t.Errorf("boolToVk(false) = %v, want vk.False", got)
	}
}
