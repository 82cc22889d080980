// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"testing"

	"github.com/gogpu/hephaistos/hal/software"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	dev := software.NewDevice("software", false)
	ctx, err := NewContextForDevice(dev, ContextOptions{})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return ctx
}

func TestContextCloseWaitsForResources(t *testing.T) {
	dev := software.NewDevice("software", false)
	ctx, err := NewContextForDevice(dev, ContextOptions{})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}

	buf, err := ctx.CreateBuffer(64)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close with outstanding resource: %v", err)
	}

	buf.Destroy()

	if err := ctx.Close(); err == nil {
		t.Fatal("second Close should report already-closed, got nil")
	}
}

func TestContextHasExtension(t *testing.T) {
	ctx := newTestContext(t)
	if ctx.HasExtension("nonexistent") {
		t.Fatal("HasExtension reported an extension that was never enabled")
	}
}
