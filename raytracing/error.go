// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import "github.com/gogpu/hephaistos"

// wrapErr and invalidArg mirror the root package's private helpers,
// built on its exported Error type and sentinels so errors from this
// subpackage unwrap identically to errors from hephaistos itself.
func wrapErr(op, detail string, err error) error {
	if err == nil {
		return nil
	}
	return &hephaistos.Error{Op: op, Detail: detail, Err: err}
}

func invalidArg(op, detail string) error {
	return &hephaistos.Error{Op: op, Detail: detail, Err: hephaistos.ErrInvalidArgument}
}
