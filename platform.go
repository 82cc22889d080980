// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan"
)

// vulkanAvailable and vulkanEnumerate are the platform layer's sole
// dependency on a concrete backend. hal/vulkan is adapted from the
// teacher's multi-backend hal/api.go + hal/backends.go selection logic,
// simplified to the single Vulkan-like target this runtime assumes
// (spec.md §1 names exactly one target API).
func vulkanAvailable() bool {
	return vulkan.IsAvailable()
}

func vulkanEnumerate() ([]hal.Device, error) {
	return vulkan.EnumerateDevices()
}
