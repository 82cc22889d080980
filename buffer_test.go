// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"testing"
)

func TestBufferFromBytesAndTypedRoundTrip(t *testing.T) {
	ctx := newTestContext(t)

	buf, err := ctx.CreateBufferFromBytes([]byte("abcdefgh"))
	if err != nil {
		t.Fatalf("CreateBufferFromBytes: %v", err)
	}
	defer buf.Destroy()

	if buf.SizeBytes() != 8 {
		t.Fatalf("SizeBytes = %d, want 8", buf.SizeBytes())
	}
	if buf.Context() != ctx {
		t.Fatal("Context() did not return the owning Context")
	}
	if !bytes.Equal(buf.Bytes(), []byte("abcdefgh")) {
		t.Fatalf("Bytes = %q, want %q", buf.Bytes(), "abcdefgh")
	}
}

func TestTypedBufferFromSliceAndMemory(t *testing.T) {
	ctx := newTestContext(t)

	data := []uint32{1, 2, 3, 4}
	tb, err := NewTypedBufferFromSlice(ctx, data)
	if err != nil {
		t.Fatalf("NewTypedBufferFromSlice: %v", err)
	}
	defer tb.Destroy()

	mem := tb.Memory()
	if len(mem) != len(data) {
		t.Fatalf("len(Memory()) = %d, want %d", len(mem), len(data))
	}
	for i, v := range data {
		if mem[i] != v {
			t.Fatalf("mem[%d] = %d, want %d", i, mem[i], v)
		}
	}
}

func TestNewTypedBufferAllocatesZeroed(t *testing.T) {
	ctx := newTestContext(t)

	tb, err := NewTypedBuffer[uint64](ctx, 3)
	if err != nil {
		t.Fatalf("NewTypedBuffer: %v", err)
	}
	defer tb.Destroy()

	if tb.SizeBytes() != 24 {
		t.Fatalf("SizeBytes = %d, want 24", tb.SizeBytes())
	}
	for _, v := range tb.Memory() {
		if v != 0 {
			t.Fatalf("expected zeroed memory, got %d", v)
		}
	}
}
