// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package software implements [hal.Device] purely in Go memory, with no
// real GPU or Vulkan loader involved: a deterministic target for
// exercising the resource model, copy/fill barrier bookkeeping, timeline
// semaphores, and sequence/submission lifecycle without hardware.
//
// It deliberately does not execute SPIR-V: Dispatch, TraceRays, and
// acceleration-structure builds are recorded but have no way to run
// shader code, since no SPIR-V interpreter exists anywhere in scope here.
// Tests written against this backend therefore check validation,
// recording and byte movement by copy/fill commands; none of them checks
// the output of a shader.
package software
