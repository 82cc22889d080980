// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

// Extension names, stable strings on the wire to collaborators.
const (
	ExtensionAtomics     = "Atomics"
	ExtensionTypes       = "Types"
	ExtensionRaytracing  = "Raytracing"  // ray-query acceleration structures
	ExtensionRayTracing  = "RayTracing"  // ray-tracing pipeline + SBT
	ExtensionDeviceFault = "DeviceFault"
)

// Extension is a capability module a Context may be asked to enable.
// Built-in extensions are constructed with NewAtomicsExtension,
// NewTypesExtension and NewDeviceFaultExtension; the raytracing
// subpackage builds its own Raytracing and RayTracing extensions as
// Extension literals.
type Extension struct {
	Name                string
	RequiredCapabilities []string
	// Finalize runs once, after the device is created, with the chosen
	// device in hand; used to cache device properties an extension's API
	// surface will later need (e.g. ray-tracing limits).
	Finalize func(ctx *Context)
}

func (e *Extension) satisfiedBy(caps func(names []string) bool) bool {
	if e == nil {
		return true
	}
	if len(e.RequiredCapabilities) == 0 {
		return true
	}
	return caps(e.RequiredCapabilities)
}

// NewAtomicsExtension declares the shader-atomics capability requirement
// ("shaderBufferInt64Atomics"-class feature bits in the original source).
func NewAtomicsExtension() *Extension {
	return &Extension{Name: ExtensionAtomics, RequiredCapabilities: []string{ExtensionAtomics}}
}

// NewTypesExtension declares the optional numeric-type capability
// requirement (float64/float16/int64/int16/int8 shader support).
func NewTypesExtension() *Extension {
	return &Extension{Name: ExtensionTypes, RequiredCapabilities: []string{ExtensionTypes}}
}

// NewDeviceFaultExtension enables VK_EXT_device_fault-style structured
// fault reporting on device-lost errors. Its finalize hook is
// intentionally a no-op: fault info is retrieved on demand from the
// device after a device-lost error is observed, not cached at creation.
func NewDeviceFaultExtension() *Extension {
	return &Extension{Name: ExtensionDeviceFault, RequiredCapabilities: []string{ExtensionDeviceFault}}
}
