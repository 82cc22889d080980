// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import "testing"

func TestNewTraceRaysCommandRejectsExcessiveDispatchCount(t *testing.T) {
	p := testPipeline(t)

	_, err := NewTraceRaysCommand(p, ShaderBindingRegions{}, 1<<20, 1<<20, 1<<20)
	if err == nil {
		t.Fatal("a dispatch count exceeding MaxRayDispatchCount should fail")
	}
}

func TestTraceRaysCommandValidateRequiresBoundParameters(t *testing.T) {
	p := testPipeline(t)

	cmd, err := NewTraceRaysCommand(p, ShaderBindingRegions{}, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewTraceRaysCommand: %v", err)
	}
	if err := cmd.Validate(); err == nil {
		t.Fatal("Validate should fail when the pipeline's bindings are unbound")
	}
}

func TestTraceRaysCommandPushConstants(t *testing.T) {
	p := testPipeline(t)

	cmd, err := NewTraceRaysCommand(p, ShaderBindingRegions{}, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewTraceRaysCommand: %v", err)
	}
	if cmd.PushConstants([]byte{1, 2, 3, 4}) != cmd {
		t.Fatal("PushConstants should return the same command for chaining")
	}
}

func TestNewTraceRaysIndirectCommandRejectsOutOfBounds(t *testing.T) {
	ctx := newTestContext(t)
	p := testPipeline(t)

	buf, err := ctx.CreateTensor(8, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer buf.Destroy()

	if _, err := NewTraceRaysIndirectCommand(p, ShaderBindingRegions{}, buf, 0); err == nil {
		t.Fatal("a buffer smaller than the 12-byte indirect region should fail")
	}
}

func TestNewTraceRaysIndirectCommandValidate(t *testing.T) {
	ctx := newTestContext(t)
	p := testPipeline(t)

	buf, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer buf.Destroy()

	cmd, err := NewTraceRaysIndirectCommand(p, ShaderBindingRegions{}, buf, 0)
	if err != nil {
		t.Fatalf("NewTraceRaysIndirectCommand: %v", err)
	}
	if err := cmd.Validate(); err == nil {
		t.Fatal("Validate should fail when the pipeline's bindings are unbound")
	}
}
