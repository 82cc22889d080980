// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Program is a compiled compute shader with its reflected binding table:
// create once, bind parameters per dispatch, and submit DispatchCommand
// values through a SequenceBuilder.
type Program struct {
	*BindingTarget

	ctx    *Context
	module hal.ShaderModule
	set    hal.DescriptorSetLayout
	layout hal.PipelineLayout
	pso    hal.ComputePipeline

	entryPoint string
	localSize  [3]uint32
	specSlots  []uint32
}

// ProgramOptions configures CreateProgram.
type ProgramOptions struct {
	// EntryPoint names the compute shader's entry point; "main" if empty.
	EntryPoint string
	// Specialization supplies override bytes for the shader's
	// specialization constants, tightly packed in ascending id order.
	Specialization []byte
}

// CreateProgram reflects code (a single SPIR-V compute shader module)
// and builds its descriptor-set layout, pipeline layout, and compute
// pipeline.
func (c *Context) CreateProgram(code []uint32, opts ProgramOptions) (*Program, error) {
	entry := opts.EntryPoint
	if entry == "" {
		entry = "main"
	}

	b := NewReflectionBuilder()
	if err := b.Add(code, hal.ShaderStageCompute); err != nil {
		return nil, wrapErr("CreateProgram", "reflection", err)
	}
	refl := b.Finish()

	module, err := c.device.CreateShaderModule(code)
	if err != nil {
		return nil, wrapErr("CreateProgram", "shader module", err)
	}
	set, err := c.device.CreateDescriptorSetLayout(refl.Bindings)
	if err != nil {
		module.Destroy()
		return nil, wrapErr("CreateProgram", "descriptor set layout", err)
	}
	layout, err := c.device.CreatePipelineLayout(set, refl.PushConstantSize, refl.PushConstantStages)
	if err != nil {
		set.Destroy()
		module.Destroy()
		return nil, wrapErr("CreateProgram", "pipeline layout", err)
	}
	specIDs := refl.SpecializationSlots(len(opts.Specialization))
	pso, err := c.device.CreateComputePipeline(module, entry, layout, opts.Specialization, specIDs)
	if err != nil {
		layout.Destroy()
		set.Destroy()
		module.Destroy()
		return nil, wrapErr("CreateProgram", "compute pipeline", err)
	}

	c.retain()
	return &Program{
		BindingTarget: newBindingTarget(refl.Bindings),
		ctx:           c,
		module:        module,
		set:           set,
		layout:        layout,
		pso:           pso,
		entryPoint:    entry,
		localSize:     refl.LocalSize,
		specSlots:     specIDs,
	}, nil
}

// LocalSize returns the shader's declared local workgroup size.
func (p *Program) LocalSize() [3]uint32 { return p.localSize }

// Context returns the owning Context.
func (p *Program) Context() *Context { return p.ctx }

// Destroy releases the program's pipeline, layouts, and shader module.
func (p *Program) Destroy() {
	p.pso.Destroy()
	p.layout.Destroy()
	p.set.Destroy()
	p.module.Destroy()
	p.ctx.release()
}

// DispatchCommand invokes a Program over a 3D group count, with every
// declared binding pushed from the Program's currently bound parameters
// and optional push-constant bytes.
type DispatchCommand struct {
	program    *Program
	x, y, z    uint32
	pushBytes  []byte
}

// NewDispatchCommand builds a dispatch over x*y*z workgroups.
func NewDispatchCommand(p *Program, x, y, z uint32) *DispatchCommand {
	return &DispatchCommand{program: p, x: x, y: y, z: z}
}

// PushConstants attaches push-constant bytes, copied at record time into
// the layout's declared push-constant range.
func (c *DispatchCommand) PushConstants(data []byte) *DispatchCommand {
	c.pushBytes = data
	return c
}

// Validate reports whether every declared binding has a bound parameter.
func (c *DispatchCommand) Validate() error {
	return c.program.checkAllBindingsBound("DispatchCommand")
}

func (c *DispatchCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	p := c.program
	rec.BindComputePipeline(p.pso)
	rec.PushDescriptorSet(p.layout, p.writes())
	if len(c.pushBytes) > 0 {
		rec.PushConstants(p.layout, hal.ShaderStageCompute, c.pushBytes)
	}
	rec.Dispatch(c.x, c.y, c.z)
	return hal.PipelineStageMask(hal.PipelineStageCompute)
}

// DispatchIndirectCommand invokes a Program with its group count read
// from a device-resident tensor at offset (3 uint32 words: x, y, z).
type DispatchIndirectCommand struct {
	program   *Program
	buf       *Tensor
	offset    uint64
	pushBytes []byte
}

// NewDispatchIndirectCommand builds an indirect dispatch reading its
// group count from buf at offset.
func NewDispatchIndirectCommand(p *Program, buf *Tensor, offset uint64) (*DispatchIndirectCommand, error) {
	if offset+12 > buf.SizeBytes() {
		return nil, invalidArg("NewDispatchIndirectCommand", "indirect region out of bounds")
	}
	return &DispatchIndirectCommand{program: p, buf: buf, offset: offset}, nil
}

// PushConstants attaches push-constant bytes for the indirect dispatch.
func (c *DispatchIndirectCommand) PushConstants(data []byte) *DispatchIndirectCommand {
	c.pushBytes = data
	return c
}

// Validate reports whether every declared binding has a bound parameter.
func (c *DispatchIndirectCommand) Validate() error {
	return c.program.checkAllBindingsBound("DispatchIndirectCommand")
}

func (c *DispatchIndirectCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	p := c.program
	rec.PipelineBarrier([]hal.BufferBarrier{
		{Buffer: c.buf.resource(), Offset: c.offset, Size: 12,
			SrcStage: hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageTransfer),
			DstStage: hal.PipelineStageMask(hal.PipelineStageDrawIndirect),
			SrcAccess: hal.AccessMemoryWrite, DstAccess: hal.AccessMemoryRead},
	}, nil, nil)
	rec.BindComputePipeline(p.pso)
	rec.PushDescriptorSet(p.layout, p.writes())
	if len(c.pushBytes) > 0 {
		rec.PushConstants(p.layout, hal.ShaderStageCompute, c.pushBytes)
	}
	rec.DispatchIndirect(c.buf.resource(), c.offset)
	return hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageDrawIndirect)
}

// GetSubgroupProperties reports the device's subgroup capabilities,
// relevant when authoring a compute shader that uses subgroup ops.
func (c *Context) GetSubgroupProperties() SubgroupProperties {
	return c.device.SubgroupProperties()
}
