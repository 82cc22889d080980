// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hal provides the hardware abstraction layer underneath Hephaistos.
//
// The HAL defines a backend-agnostic interface over a Vulkan-like
// compute-capable graphics API: device/queue access, buffer and image
// allocation, descriptor/pipeline-layout reflection plumbing, command
// recording, timeline semaphores, and (optionally) acceleration structures
// and ray-tracing pipelines. [hal/vulkan] implements it against real
// Vulkan entry points; [hal/software] implements it purely in Go memory
// for deterministic, hardware-free testing.
//
// # Design principles
//
// The HAL prioritizes portability over safety, delegating validation to
// the root hephaistos package. This means:
//
//   - Most methods are unsafe in terms of GPU state validation.
//   - Validation (bounds, context identity, binding completeness) is the
//     caller's responsibility, performed once in the root package.
//   - Only unrecoverable errors are returned by the HAL itself (out of
//     memory, device lost, extension unavailable).
//
// # Resource types
//
// All GPU resources (buffers, images, pipelines, command pools, ...)
// implement the Resource interface, which provides a Destroy method.
// Resources must be explicitly destroyed to free GPU memory.
//
// # Thread safety
//
// Unless explicitly stated, HAL interfaces are not safe for concurrent
// use from multiple goroutines; synchronization is the caller's
// responsibility, matching the single-threaded-cooperative scheduling
// model the root package documents.
package hal
