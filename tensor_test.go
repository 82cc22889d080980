// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"testing"
)

func TestTensorMappedUpdateRetrieve(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(8, true)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	if !tensor.Mapped() {
		t.Fatal("tensor created with mapped=true should report Mapped()")
	}
	if tensor.Address() == 0 {
		t.Fatal("Address() should be non-zero")
	}

	if err := tensor.Update([]byte("hephais"), 0); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var out [7]byte
	if err := tensor.Retrieve(out[:], 0); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if !bytes.Equal(out[:], []byte("hephais")) {
		t.Fatalf("Retrieve = %q, want %q", out[:], "hephais")
	}

	tensor.Flush(0, 8)
	tensor.Invalidate(0, 8)
}

func TestTensorUpdateOutOfBoundsFails(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(4, true)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	if err := tensor.Update([]byte("too long"), 0); err == nil {
		t.Fatal("Update beyond the tensor's size should fail")
	}
}

func TestTensorUnmappedUpdateFails(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(8, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	if tensor.Bytes() != nil {
		t.Fatal("an unmapped tensor should report a nil Bytes() span")
	}
	if err := tensor.Update([]byte("x"), 0); err == nil {
		t.Fatal("Update on an unmapped tensor should fail")
	}
	if err := tensor.Retrieve(make([]byte, 1), 0); err == nil {
		t.Fatal("Retrieve on an unmapped tensor should fail")
	}
}

func TestTypedTensorMemory(t *testing.T) {
	ctx := newTestContext(t)

	tt, err := NewTypedTensor[uint32](ctx, 4, true)
	if err != nil {
		t.Fatalf("NewTypedTensor: %v", err)
	}
	defer tt.Destroy()

	mem := tt.Memory()
	if len(mem) != 4 {
		t.Fatalf("len(Memory()) = %d, want 4", len(mem))
	}
	mem[2] = 0xCAFEBABE
	var check [4]byte
	if err := tt.Retrieve(check[:], 8); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
}
