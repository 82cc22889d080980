// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal"
)

// ShaderBindingRegions bundles the four SBT regions a trace-rays
// command consults; Callable may be nil (zero region).
type ShaderBindingRegions struct {
	RayGen, Miss, Hit, Callable *ShaderBindingTable
}

func (r ShaderBindingRegions) toHAL() hal.ShaderBindingRegions {
	region := func(t *ShaderBindingTable) hal.ShaderBindingTableRegion {
		if t == nil {
			return hal.ShaderBindingTableRegion{}
		}
		return t.region
	}
	return hal.ShaderBindingRegions{
		RayGen: region(r.RayGen), Miss: region(r.Miss),
		Hit: region(r.Hit), Callable: region(r.Callable),
	}
}

// TraceRaysCommand invokes a RayTracingPipeline over a 3D ray count,
// with every declared binding pushed from the pipeline's currently
// bound parameters and optional push-constant bytes visible to every
// ray-tracing stage.
type TraceRaysCommand struct {
	pipeline  *RayTracingPipeline
	bindings  ShaderBindingRegions
	x, y, z   uint32
	pushBytes []byte
}

// NewTraceRaysCommand validates x*y*z against the device's
// maxRayDispatchCount limit.
func NewTraceRaysCommand(p *RayTracingPipeline, bindings ShaderBindingRegions, x, y, z uint32) (*TraceRaysCommand, error) {
	limit := uint64(p.ctx.Device().RayTracingProperties().MaxRayDispatchCount)
	if uint64(x)*uint64(y)*uint64(z) > limit {
		return nil, invalidArg("NewTraceRaysCommand", "ray dispatch count exceeds device limit")
	}
	return &TraceRaysCommand{pipeline: p, bindings: bindings, x: x, y: y, z: z}, nil
}

// PushConstants attaches push-constant bytes visible to every
// ray-tracing stage.
func (c *TraceRaysCommand) PushConstants(data []byte) *TraceRaysCommand {
	c.pushBytes = data
	return c
}

// Validate reports whether every declared binding has a bound parameter.
func (c *TraceRaysCommand) Validate() error {
	if !c.pipeline.AllBindingsBound() {
		return invalidArg("TraceRaysCommand", "not every declared binding is bound")
	}
	return nil
}

func (c *TraceRaysCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	p := c.pipeline
	rec.BindRayTracingPipeline(p.handle)
	rec.PushDescriptorSet(p.layout, p.DescriptorWrites())
	if len(c.pushBytes) > 0 {
		rec.PushConstants(p.layout, hal.ShaderStageAllRayTracing, c.pushBytes)
	}
	rec.TraceRays(p.handle, c.bindings.toHAL(), c.x, c.y, c.z)
	return hal.PipelineStageMask(hal.PipelineStageRayTracing)
}

// TraceRaysIndirectCommand is TraceRaysCommand with the ray count read
// from a 12-byte (x,y,z uint32) region of a device tensor, preceded by
// a barrier ordering prior writers against indirect-draw consumption.
type TraceRaysIndirectCommand struct {
	pipeline  *RayTracingPipeline
	bindings  ShaderBindingRegions
	indirect  *hephaistos.Tensor
	addr      uint64
	offset    uint64
	pushBytes []byte
}

// NewTraceRaysIndirectCommand builds an indirect trace-rays command
// reading its ray count from a 12-byte (x,y,z uint32) region of buf at
// offset.
func NewTraceRaysIndirectCommand(p *RayTracingPipeline, bindings ShaderBindingRegions, buf *hephaistos.Tensor, offset uint64) (*TraceRaysIndirectCommand, error) {
	if offset+12 > buf.SizeBytes() {
		return nil, invalidArg("NewTraceRaysIndirectCommand", "indirect region out of bounds")
	}
	return &TraceRaysIndirectCommand{pipeline: p, bindings: bindings, indirect: buf, offset: offset, addr: buf.Address() + offset}, nil
}

// PushConstants attaches push-constant bytes visible to every
// ray-tracing stage.
func (c *TraceRaysIndirectCommand) PushConstants(data []byte) *TraceRaysIndirectCommand {
	c.pushBytes = data
	return c
}

// Validate reports whether every declared binding has a bound parameter.
func (c *TraceRaysIndirectCommand) Validate() error {
	if !c.pipeline.AllBindingsBound() {
		return invalidArg("TraceRaysIndirectCommand", "not every declared binding is bound")
	}
	return nil
}

func (c *TraceRaysIndirectCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	p := c.pipeline
	rec.PipelineBarrier([]hal.BufferBarrier{
		{Buffer: c.indirect.Resource(), Offset: c.offset, Size: 12,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageTransfer) | hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageRayTracing),
			DstStage: hal.PipelineStageMask(hal.PipelineStageDrawIndirect),
			SrcAccess: hal.AccessMemoryWrite, DstAccess: hal.AccessMemoryRead},
	}, nil, nil)
	rec.BindRayTracingPipeline(p.handle)
	rec.PushDescriptorSet(p.layout, p.DescriptorWrites())
	if len(c.pushBytes) > 0 {
		rec.PushConstants(p.layout, hal.ShaderStageAllRayTracing, c.pushBytes)
	}
	rec.TraceRaysIndirect(p.handle, c.bindings.toHAL(), c.addr)
	return hal.PipelineStageMask(hal.PipelineStageRayTracing) | hal.PipelineStageMask(hal.PipelineStageDrawIndirect)
}
