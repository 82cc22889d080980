// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import "github.com/gogpu/hephaistos"

// NewRaytracingExtension declares the ray-query acceleration-structure
// capability (BLAS/TLAS build and bind, no pipeline). BuildBLAS and
// BuildTLAS do not check whether it was enabled on the context.
func NewRaytracingExtension() *hephaistos.Extension {
	return &hephaistos.Extension{
		Name:                 hephaistos.ExtensionRaytracing,
		RequiredCapabilities: []string{hephaistos.ExtensionRaytracing},
	}
}

// NewRayTracingPipelineExtension declares the ray-tracing *pipeline*
// capability (RayTracingPipeline, ShaderBindingTable, trace-rays
// commands), distinct from NewRaytracingExtension's acceleration
// structures per spec.md §6's two capability names.
func NewRayTracingPipelineExtension() *hephaistos.Extension {
	return &hephaistos.Extension{
		Name:                 hephaistos.ExtensionRayTracing,
		RequiredCapabilities: []string{hephaistos.ExtensionRaytracing, hephaistos.ExtensionRayTracing},
	}
}

// IsSupported reports whether ctx's device exposes ray-query
// acceleration structures at all, independent of whether the pipeline
// extension was enabled.
func IsSupported(ctx *hephaistos.Context) bool {
	return ctx.Device().RayTracingSupported()
}

// GetFeatures returns the device's optional ray-tracing capability bits.
func GetFeatures(ctx *hephaistos.Context) hephaistos.RayTracingFeatures {
	return ctx.Device().RayTracingFeatures()
}

// GetProperties returns the device's ray-tracing build/dispatch limits.
func GetProperties(ctx *hephaistos.Context) hephaistos.RayTracingProperties {
	return ctx.Device().RayTracingProperties()
}
