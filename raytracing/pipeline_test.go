// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/hephaistos/hal"
)

func TestCreatePipelineRejectsEmptyGroups(t *testing.T) {
	ctx := newTestContext(t)

	if _, err := CreatePipeline(ctx, nil, PipelineOptions{}); err == nil {
		t.Fatal("empty groups should fail")
	}
}

func TestCreatePipelineRejectsExcessiveRecursionDepth(t *testing.T) {
	ctx := newTestContext(t)

	groups := []ShaderGroup{{Stage: hal.ShaderStageRayGen, General: buildRTShaderModule()}}
	_, err := CreatePipeline(ctx, groups, PipelineOptions{MaxRecursionDepth: 1 << 20})
	if err == nil {
		t.Fatal("a recursion depth exceeding the device limit should fail")
	}
}

func TestCreatePipelineRejectsGeneralGroupMissingStage(t *testing.T) {
	ctx := newTestContext(t)

	groups := []ShaderGroup{{General: buildRTShaderModule()}}
	if _, err := CreatePipeline(ctx, groups, PipelineOptions{}); err == nil {
		t.Fatal("a general group with no Stage should fail")
	}
}

func TestCreatePipelineGeneralGroup(t *testing.T) {
	ctx := newTestContext(t)

	groups := []ShaderGroup{{Stage: hal.ShaderStageRayGen, General: buildRTShaderModule()}}
	p, err := CreatePipeline(ctx, groups, PipelineOptions{MaxRecursionDepth: 1})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer p.Destroy()

	if p.Context() != ctx {
		t.Fatal("Context() did not return the owning Context")
	}
}

func TestCreatePipelineHitGroup(t *testing.T) {
	ctx := newTestContext(t)

	groups := []ShaderGroup{
		{Stage: hal.ShaderStageRayGen, General: buildRTShaderModule()},
		{Closest: buildRTShaderModule()},
	}
	p, err := CreatePipeline(ctx, groups, PipelineOptions{MaxRecursionDepth: 1})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer p.Destroy()
}

func TestCreatePipelineHitGroupWithAnyHit(t *testing.T) {
	ctx := newTestContext(t)

	groups := []ShaderGroup{
		{Stage: hal.ShaderStageRayGen, General: buildRTShaderModule()},
		{Closest: buildRTShaderModule(), AnyHit: buildRTShaderModule()},
	}
	p, err := CreatePipeline(ctx, groups, PipelineOptions{MaxRecursionDepth: 1})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer p.Destroy()

	if p.AllBindingsBound() {
		t.Fatal("AllBindingsBound() should be false before any parameter is bound")
	}
}
