// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "testing"

func TestNewFillTensorCommandRejectsOutOfBounds(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	if _, err := NewFillTensorCommand(tensor, 12, 8, 0); err == nil {
		t.Fatal("a fill range extending past the tensor's size should fail")
	}
}

func TestNewFillTensorCommandRejectsUnalignedSize(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	if _, err := NewFillTensorCommand(tensor, 0, 6, 0); err == nil {
		t.Fatal("a fill size that is not a multiple of 4 should fail")
	}
}
