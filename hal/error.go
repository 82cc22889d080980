// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import "errors"

// Low-level HAL errors representing unrecoverable platform states. The
// root hephaistos package wraps these into its own typed *Error alongside
// validation failures that never reach the HAL (invalid-argument,
// already-submitted).
var (
	// ErrNotAvailable indicates the platform (e.g. the Vulkan loader) is
	// not installed, or no device meets the caller's suitability criteria.
	ErrNotAvailable = errors.New("hal: platform not available")

	// ErrExtensionUnavailable indicates a requested capability extension
	// has no device that can satisfy it.
	ErrExtensionUnavailable = errors.New("hal: requested extension unavailable")

	// ErrDeviceOutOfMemory indicates the GPU has exhausted its memory.
	// This is unrecoverable - the caller should reduce resource usage or
	// gracefully terminate.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the GPU device has been lost: a driver
	// crash or reset, hardware disconnection, or driver timeout. The
	// device cannot be recovered and must be recreated. If the
	// "DeviceFault" extension is enabled, a DeviceFaultInfo may be
	// retrievable from the backend.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrTimeout indicates a wait operation timed out. The operation
	// being waited on continues on the device.
	ErrTimeout = errors.New("hal: timeout")

	// ErrPlatformError is any other failure surfaced by the underlying
	// graphics API that does not fit a more specific category above.
	ErrPlatformError = errors.New("hal: platform error")
)
