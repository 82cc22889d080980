// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Value types shared with the hal package are defined once there (hal
// cannot import this package) and aliased here so callers never need to
// import hal directly for ordinary use.
type (
	ImageFormat   = hal.ImageFormat
	ImageLayout   = hal.ImageLayout
	ParameterKind = hal.ParameterKind

	BindingTraits      = hal.BindingTraits
	ImageBindingTraits = hal.ImageBindingTraits

	DeviceInfo         = hal.DeviceInfo
	TypeSupport        = hal.TypeSupport
	SubgroupProperties = hal.SubgroupProperties

	RayTracingFeatures  = hal.RayTracingFeatures
	RayTracingProperties = hal.RayTracingProperties

	DeviceFaultInfo        = hal.DeviceFaultInfo
	DeviceFaultAddressInfo = hal.DeviceFaultAddressInfo
	DeviceFaultVendorInfo  = hal.DeviceFaultVendorInfo

	AddressMode = hal.AddressMode
	Filter      = hal.Filter
)

const (
	ImageFormatUnknown          = hal.ImageFormatUnknown
	ImageFormatR8G8B8A8Unorm    = hal.ImageFormatR8G8B8A8Unorm
	ImageFormatR8G8B8A8Snorm    = hal.ImageFormatR8G8B8A8Snorm
	ImageFormatR8G8B8A8Uint     = hal.ImageFormatR8G8B8A8Uint
	ImageFormatR8G8B8A8Sint     = hal.ImageFormatR8G8B8A8Sint
	ImageFormatR16G16B16A16Uint = hal.ImageFormatR16G16B16A16Uint
	ImageFormatR16G16B16A16Sint = hal.ImageFormatR16G16B16A16Sint
	ImageFormatR32Uint          = hal.ImageFormatR32Uint
	ImageFormatR32Sint          = hal.ImageFormatR32Sint
	ImageFormatR32Sfloat        = hal.ImageFormatR32Sfloat
	ImageFormatR32G32Uint       = hal.ImageFormatR32G32Uint
	ImageFormatR32G32Sint       = hal.ImageFormatR32G32Sint
	ImageFormatR32G32Sfloat     = hal.ImageFormatR32G32Sfloat
	ImageFormatR32G32B32A32Uint   = hal.ImageFormatR32G32B32A32Uint
	ImageFormatR32G32B32A32Sint   = hal.ImageFormatR32G32B32A32Sint
	ImageFormatR32G32B32A32Sfloat = hal.ImageFormatR32G32B32A32Sfloat
)

const (
	ParameterCombinedImageSampler = hal.ParameterCombinedImageSampler
	ParameterStorageImage         = hal.ParameterStorageImage
	ParameterUniformBuffer        = hal.ParameterUniformBuffer
	ParameterStorageBuffer        = hal.ParameterStorageBuffer
	ParameterAccelerationStruct   = hal.ParameterAccelerationStruct
)

const (
	AddressModeRepeat            = hal.AddressModeRepeat
	AddressModeMirroredRepeat    = hal.AddressModeMirroredRepeat
	AddressModeClampToEdge       = hal.AddressModeClampToEdge
	AddressModeMirrorClampToEdge = hal.AddressModeMirrorClampToEdge
)

const (
	FilterNearest = hal.FilterNearest
	FilterLinear  = hal.FilterLinear
)

// Sampler configures a Texture's filtering and addressing behavior.
type Sampler struct {
	AddressModeU, AddressModeV, AddressModeW AddressMode
	Filter                                   Filter
	UnnormalizedCoordinates                  bool
}

func (s Sampler) toHAL() hal.SamplerDesc {
	return hal.SamplerDesc{
		AddressModeU:             s.AddressModeU,
		AddressModeV:             s.AddressModeV,
		AddressModeW:             s.AddressModeW,
		Filter:                   s.Filter,
		UnnormalizedCoordinates:  s.UnnormalizedCoordinates,
	}
}
