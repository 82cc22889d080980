// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/hephaistos"
)

func TestBuildTLASRejectsEmptyInstances(t *testing.T) {
	ctx := newTestContext(t)

	if _, err := BuildTLAS(ctx, nil); err == nil {
		t.Fatal("empty instances should fail")
	}
}

func TestBuildTLASRejectsNilGeometry(t *testing.T) {
	ctx := newTestContext(t)

	_, err := BuildTLAS(ctx, []Instance{{Geometry: nil}})
	if err == nil {
		t.Fatal("a nil geometry instance should fail")
	}
}

func TestBuildTLASDedupesGeometryByPointer(t *testing.T) {
	ctx := newTestContext(t)

	geom, err := BuildBLAS(ctx, testTriangleVertices(), 12, 3, nil)
	if err != nil {
		t.Fatalf("BuildBLAS: %v", err)
	}
	defer geom.Destroy()

	instances := []Instance{
		{Geometry: geom, CustomIndex: 1, Mask: 0xFF},
		{Geometry: geom, CustomIndex: 2, Mask: 0x01},
	}
	tlas, err := BuildTLAS(ctx, instances)
	if err != nil {
		t.Fatalf("BuildTLAS: %v", err)
	}
	defer tlas.Destroy()

	if len(tlas.kept) != 1 {
		t.Fatalf("kept = %d geometries, want 1 (deduped by pointer)", len(tlas.kept))
	}
	if tlas.DeviceAddress() == 0 {
		t.Fatal("DeviceAddress() should be non-zero after a successful build")
	}
}

func TestAccelerationStructureDescriptorWrite(t *testing.T) {
	ctx := newTestContext(t)

	geom, err := BuildBLAS(ctx, testTriangleVertices(), 12, 3, nil)
	if err != nil {
		t.Fatalf("BuildBLAS: %v", err)
	}
	defer geom.Destroy()

	tlas, err := BuildTLAS(ctx, []Instance{{Geometry: geom}})
	if err != nil {
		t.Fatalf("BuildTLAS: %v", err)
	}
	defer tlas.Destroy()

	write, err := tlas.DescriptorWrite(3, hephaistos.ParameterAccelerationStruct)
	if err != nil {
		t.Fatalf("DescriptorWrite: %v", err)
	}
	if write.Binding != 3 {
		t.Fatalf("Binding = %d, want 3", write.Binding)
	}
	if write.AccelStruct == nil {
		t.Fatal("DescriptorWrite should attach the TLAS handle")
	}

	if _, err := tlas.DescriptorWrite(0, hephaistos.ParameterStorageBuffer); err == nil {
		t.Fatal("a mismatched ParameterKind should fail")
	}
}
