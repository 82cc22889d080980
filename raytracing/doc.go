// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package raytracing is Hephaistos's optional ray-tracing extension:
// bottom/top-level acceleration structures built from Geometry and
// AccelerationStructure instances, a RayTracingPipeline compiled from a
// list of ray-gen/miss/hit/callable shader variants with reflection
// merged across stages, a ShaderBindingTable in either range or entry
// form, and TraceRaysCommand/TraceRaysIndirectCommand implementing the
// root package's Command interface.
//
// Enabling ray tracing requires two separate capability extensions from
// the root package: "Raytracing" (ray-query acceleration structures)
// and "RayTracing" (the ray-tracing pipeline and shader-binding table),
// matching spec.md §6's two distinct capability names.
package raytracing
