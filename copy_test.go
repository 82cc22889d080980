// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"testing"

	"github.com/gogpu/hephaistos/hal/software"
)

func TestNewRetrieveTensorCommandRejectsSizeMismatch(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	buf, err := ctx.CreateBuffer(8)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer buf.Destroy()

	if _, err := NewRetrieveTensorCommand(tensor, buf, 0, 0, WholeSize); err == nil {
		t.Fatal("mismatched src/dst sizes should fail")
	}
}

func TestNewRetrieveTensorCommandRejectsOutOfBounds(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	buf, err := ctx.CreateBuffer(16)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer buf.Destroy()

	if _, err := NewRetrieveTensorCommand(tensor, buf, 8, 0, 16); err == nil {
		t.Fatal("a source range extending past the tensor's size should fail")
	}
}

func TestNewRetrieveTensorCommandRejectsCrossContext(t *testing.T) {
	ctx := newTestContext(t)

	otherDev := software.NewDevice("other", false)
	other, err := NewContextForDevice(otherDev, ContextOptions{})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}
	defer other.Close()

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	buf, err := other.CreateBuffer(16)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer buf.Destroy()

	if _, err := NewRetrieveTensorCommand(tensor, buf, 0, 0, WholeSize); err == nil {
		t.Fatal("a retrieve across two different contexts should fail")
	}
}

func TestNewUpdateTensorCommandWholeSize(t *testing.T) {
	ctx := newTestContext(t)

	src, err := ctx.CreateBufferFromBytes([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("CreateBufferFromBytes: %v", err)
	}
	defer src.Destroy()

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	cmd, err := NewUpdateTensorCommand(src, tensor, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewUpdateTensorCommand: %v", err)
	}
	if cmd.Unsafe() == nil {
		t.Fatal("Unsafe() should return the command, not nil")
	}
}
