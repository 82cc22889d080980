// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/hephaistos/hal"
)

func testPipeline(t *testing.T) *RayTracingPipeline {
	t.Helper()
	ctx := newTestContext(t)
	groups := []ShaderGroup{
		{Stage: hal.ShaderStageRayGen, General: buildRTShaderModule()},
		{Stage: hal.ShaderStageMiss, General: buildRTShaderModule()},
		{Closest: buildRTShaderModule()},
	}
	p, err := CreatePipeline(ctx, groups, PipelineOptions{MaxRecursionDepth: 1})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	t.Cleanup(p.Destroy)
	return p
}

func TestNewRangeSBT(t *testing.T) {
	p := testPipeline(t)

	sbt, err := p.NewRangeSBT(0, 2)
	if err != nil {
		t.Fatalf("NewRangeSBT: %v", err)
	}
	defer sbt.Destroy()

	if sbt.region.Count != 2 {
		t.Fatalf("region.Count = %d, want 2", sbt.region.Count)
	}
	if sbt.region.Address == 0 {
		t.Fatal("region.Address should be non-zero")
	}
}

func TestNewRangeSBTRejectsOutOfBoundsRange(t *testing.T) {
	p := testPipeline(t)

	if _, err := p.NewRangeSBT(0, 100); err == nil {
		t.Fatal("a group range past the pipeline's group count should fail")
	}
}

func TestNewEntrySBT(t *testing.T) {
	p := testPipeline(t)

	entries := []SBTEntry{
		{GroupIndex: 0, Record: []byte("raygen-record")},
		{GroupIndex: NoGroupIndex, Record: []byte("record-only")},
	}
	sbt, err := p.NewEntrySBT(entries)
	if err != nil {
		t.Fatalf("NewEntrySBT: %v", err)
	}
	defer sbt.Destroy()

	if sbt.region.Count != 2 {
		t.Fatalf("region.Count = %d, want 2", sbt.region.Count)
	}
}

func TestNewEntrySBTRejectsEmptyEntries(t *testing.T) {
	p := testPipeline(t)

	if _, err := p.NewEntrySBT(nil); err == nil {
		t.Fatal("empty entries should fail")
	}
}

func TestNewEntrySBTRejectsOutOfRangeGroupIndex(t *testing.T) {
	p := testPipeline(t)

	entries := []SBTEntry{{GroupIndex: 100}}
	if _, err := p.NewEntrySBT(entries); err == nil {
		t.Fatal("an out-of-range group index should fail")
	}
}
