// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal"
)

// Instance places one Geometry into a top-level acceleration structure
// with its own transform, custom index, and visibility mask.
type Instance struct {
	Geometry    *Geometry
	Transform   [12]float32 // row-major 3x4
	CustomIndex uint32      // low 24 bits used
	Mask        uint8
}

// AccelerationStructure is a built top-level acceleration structure
// (TLAS): the bindable handle a RayTracingPipeline traces rays against.
// It implements hephaistos.Parameter so it can be bound directly to a
// program's acceleration-structure binding.
type AccelerationStructure struct {
	accel   hal.AccelerationStructure
	kept    []*Geometry // referenced geometries, deduped by pointer, kept alive
	release func()
}

// BuildTLAS deduplicates instances' geometry references by pointer
// identity (preserving insertion order), builds one instance record per
// instance, and issues the TLAS build.
func BuildTLAS(ctx *hephaistos.Context, instances []Instance) (*AccelerationStructure, error) {
	if len(instances) == 0 {
		return nil, invalidArg("BuildTLAS", "instances must not be empty")
	}

	seen := make(map[*Geometry]bool, len(instances))
	var kept []*Geometry
	records := make([]hal.TLASInstanceRecord, len(instances))
	for i, inst := range instances {
		if inst.Geometry == nil {
			return nil, invalidArg("BuildTLAS", "instance has a nil geometry")
		}
		if !seen[inst.Geometry] {
			seen[inst.Geometry] = true
			kept = append(kept, inst.Geometry)
		}
		records[i] = hal.TLASInstanceRecord{
			Transform:       inst.Transform,
			CustomIndexMask: (inst.CustomIndex & 0x00FFFFFF) | (uint32(inst.Mask) << 24),
			SBTOffsetFlags:  hal.TLASFlagTriangleFacingCullDisable << 24,
			BLASReference:   inst.Geometry.DeviceAddress(),
		}
	}

	accel, _, err := ctx.Device().BuildTLAS(records)
	if err != nil {
		return nil, wrapErr("BuildTLAS", "", err)
	}
	return &AccelerationStructure{accel: accel, kept: kept, release: ctx.TrackResource()}, nil
}

// DeviceAddress returns the TLAS's device address.
func (a *AccelerationStructure) DeviceAddress() uint64 { return a.accel.DeviceAddress() }

// DescriptorWrite implements hephaistos.Parameter: it attaches the TLAS
// handle directly, with no buffer or image info.
func (a *AccelerationStructure) DescriptorWrite(binding uint32, kind hephaistos.ParameterKind) (hal.DescriptorWrite, error) {
	if kind != hephaistos.ParameterAccelerationStruct {
		return hal.DescriptorWrite{}, invalidArg("DescriptorWrite", "binding is not an acceleration structure")
	}
	return hal.DescriptorWrite{Binding: binding, Kind: kind, AccelStruct: a.accel}, nil
}

// Destroy releases the TLAS's backing storage and its references to the
// geometries it was built from.
func (a *AccelerationStructure) Destroy() {
	a.accel.Destroy()
	a.release()
	a.kept = nil
}
