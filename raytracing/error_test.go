// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/hephaistos"
)

func TestInvalidArgWrapsSentinel(t *testing.T) {
	err := invalidArg("Op", "detail")
	if !errors.Is(err, hephaistos.ErrInvalidArgument) {
		t.Fatal("invalidArg should wrap hephaistos.ErrInvalidArgument")
	}
	var target *hephaistos.Error
	if !errors.As(err, &target) {
		t.Fatal("invalidArg should produce a *hephaistos.Error")
	}
	if target.Op != "Op" || target.Detail != "detail" {
		t.Fatalf("Op/Detail = %q/%q, want Op/detail", target.Op, target.Detail)
	}
}

func TestWrapErrPassesThroughNil(t *testing.T) {
	if wrapErr("Op", "detail", nil) != nil {
		t.Fatal("wrapErr(nil) should return nil")
	}
}

func TestWrapErrPreservesUnderlyingError(t *testing.T) {
	underlying := fmt.Errorf("boom")
	err := wrapErr("Op", "detail", underlying)
	if !errors.Is(err, underlying) {
		t.Fatal("wrapErr should preserve the underlying error for errors.Is")
	}
}
