// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"unsafe"

	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal"
)

// Geometry is a built bottom-level acceleration structure (BLAS): one
// triangle mesh, optionally indexed. Built once via BuildBLAS and
// referenced by any number of TLAS Instances by pointer identity.
type Geometry struct {
	accel       hal.AccelerationStructure
	address     uint64
	scratchSize uint64
	release     func()
}

// BuildBLAS describes one triangle geometry (packed float32 vertex
// data, vertexStride bytes apart, vertexCount vertices; optional
// uint32 index list) and issues its BLAS build: allocate a mapped
// device-local input buffer, copy vertex then index bytes, request the
// build, then release the input buffer.
func BuildBLAS(ctx *hephaistos.Context, vertices []float32, vertexStride, vertexCount uint32, indices []uint32) (*Geometry, error) {
	if len(vertices) == 0 || vertexCount == 0 {
		return nil, invalidArg("BuildBLAS", "vertices must not be empty")
	}

	vbytes := float32SliceBytes(vertices)
	ibytes := uint32SliceBytes(indices)
	total := uint64(len(vbytes) + len(ibytes))

	input, err := ctx.CreateTensor(total, true)
	if err != nil {
		return nil, wrapErr("BuildBLAS", "input tensor", err)
	}
	dst := input.Bytes()
	copy(dst, vbytes)
	copy(dst[len(vbytes):], ibytes)
	input.Flush(0, total)

	geom := hal.AccelGeometry{
		VertexAddress: input.Address(),
		VertexStride:  vertexStride,
		VertexCount:   vertexCount,
	}
	if len(indices) > 0 {
		geom.IndexAddress = input.Address() + uint64(len(vbytes))
		geom.IndexCount = uint32(len(indices))
	}

	accel, scratchSize, err := ctx.Device().BuildBLAS(geom)
	input.Destroy()
	if err != nil {
		return nil, wrapErr("BuildBLAS", "", err)
	}

	return &Geometry{
		accel:       accel,
		address:     accel.DeviceAddress(),
		scratchSize: scratchSize,
		release:     ctx.TrackResource(),
	}, nil
}

// DeviceAddress returns the BLAS's device address, the value baked into
// every TLAS instance record that references it.
func (g *Geometry) DeviceAddress() uint64 { return g.address }

// Destroy releases the BLAS's backing storage.
func (g *Geometry) Destroy() {
	g.accel.Destroy()
	g.release()
}

func float32SliceBytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

func uint32SliceBytes(s []uint32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}
