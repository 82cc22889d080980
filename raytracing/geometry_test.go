// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import "testing"

func TestBuildBLASRejectsEmptyVertices(t *testing.T) {
	ctx := newTestContext(t)

	if _, err := BuildBLAS(ctx, nil, 12, 0, nil); err == nil {
		t.Fatal("empty vertices should fail")
	}
}

func TestBuildBLASRejectsZeroVertexCount(t *testing.T) {
	ctx := newTestContext(t)

	if _, err := BuildBLAS(ctx, testTriangleVertices(), 12, 0, nil); err == nil {
		t.Fatal("zero vertexCount should fail")
	}
}

func TestBuildBLASWithIndices(t *testing.T) {
	ctx := newTestContext(t)

	geom, err := BuildBLAS(ctx, testTriangleVertices(), 12, 3, testTriangleIndices())
	if err != nil {
		t.Fatalf("BuildBLAS: %v", err)
	}
	defer geom.Destroy()

	if geom.DeviceAddress() == 0 {
		t.Fatal("DeviceAddress() should be non-zero after a successful build")
	}
}

func TestBuildBLASWithoutIndices(t *testing.T) {
	ctx := newTestContext(t)

	geom, err := BuildBLAS(ctx, testTriangleVertices(), 12, 3, nil)
	if err != nil {
		t.Fatalf("BuildBLAS: %v", err)
	}
	defer geom.Destroy()

	if geom.DeviceAddress() == 0 {
		t.Fatal("DeviceAddress() should be non-zero after a successful build")
	}
}
