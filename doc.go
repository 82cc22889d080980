// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hephaistos is a GPU compute runtime: a thin, explicit,
// low-latency layer over a Vulkan-like compute-capable graphics API.
//
// A [Context] owns a logical device, a queue, command-pool caches, and
// the set of enabled [Extension]s. From a Context a caller allocates
// [Buffer]s (host-visible staging) and [Tensor]s (device-local,
// optionally mapped), [Image]s and [Texture]s, compiles a [Program] from
// SPIR-V bytecode, and records copy/fill/dispatch commands into a
// [SequenceBuilder]. A sequence is a list of steps synchronized by a
// [Timeline] counter; Submit turns it into a [Submission].
//
// The optional raytracing subpackage adds acceleration-structure
// building and ray-tracing pipelines on top of the same Context.
//
// Hephaistos consumes precompiled SPIR-V directly: shader compilation and
// PNG codec are external collaborators, and the underlying graphics API
// (instance/device creation, allocator, command pools) is abstracted by
// the hal package, with hal/vulkan and hal/software as the two backends.
package hephaistos
