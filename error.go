// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"errors"
	"fmt"

	"github.com/gogpu/hephaistos/hal"
)

// Sentinel errors callers can test for with errors.Is. The first four
// alias hal's own sentinels, which reach callers wrapped in *Error; the
// last two are raised by the root package's own validation.
var (
	// ErrNotAvailable indicates the platform is unavailable or no device
	// satisfies the caller's suitability criteria.
	ErrNotAvailable = hal.ErrNotAvailable

	// ErrExtensionUnavailable indicates a requested Extension cannot be
	// satisfied by the chosen device.
	ErrExtensionUnavailable = hal.ErrExtensionUnavailable

	// ErrOutOfDeviceMemory indicates the GPU has exhausted its memory.
	ErrOutOfDeviceMemory = hal.ErrDeviceOutOfMemory

	// ErrDeviceLost indicates the device was lost mid-operation. Any
	// resource or submission created from the owning Context is no
	// longer usable.
	ErrDeviceLost = hal.ErrDeviceLost

	// ErrInvalidArgument indicates a caller-supplied argument failed
	// validation: mismatched contexts, out-of-bounds ranges, duplicate
	// or conflicting binding traits, out-of-range shader-group indices,
	// and similar.
	ErrInvalidArgument = errors.New("hephaistos: invalid argument")

	// ErrAlreadySubmitted indicates a builder method was called on a
	// SequenceBuilder after Submit, or a binding target method was
	// called after the binding target's owner was destroyed.
	ErrAlreadySubmitted = errors.New("hephaistos: already submitted")
)

// Error wraps one of the sentinels above with operation context. It
// supports errors.Is against its wrapped sentinel and errors.Unwrap.
type Error struct {
	// Op names the failing operation, e.g. "CreateContext", "BindParameter".
	Op string
	// Detail is a human-readable description, e.g. the offending binding
	// name or the out-of-bounds range.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("hephaistos: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hephaistos: %s: %s: %v", e.Op, e.Detail, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op, detail string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Detail: detail, Err: err}
}

func invalidArg(op, detail string) error {
	return &Error{Op: op, Detail: detail, Err: ErrInvalidArgument}
}
