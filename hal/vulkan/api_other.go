// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package vulkan

import "github.com/gogpu/hephaistos/hal"

// IsAvailable reports whether the Vulkan loader can be initialized on this
// machine, without creating an instance or opening a device. The Vulkan
// backend is implemented for Windows only; every other platform reports
// unavailable so callers fall back to hal/software.
func IsAvailable() bool {
	return false
}

// EnumerateDevices always fails on this platform; see IsAvailable.
func EnumerateDevices() ([]hal.Device, error) {
	return nil, hal.ErrNotAvailable
}
