// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"

	"github.com/gogpu/hephaistos/hal"
)

type buffer struct{ data []byte }

func (b *buffer) Destroy()          {}
func (b *buffer) Bytes() []byte     { return b.data }
func (b *buffer) SizeBytes() uint64 { return uint64(len(b.data)) }

func (d *Device) CreateBuffer(size uint64) (hal.Buffer, error) {
	return &buffer{data: make([]byte, size)}, nil
}

func (d *Device) CreateBufferFromBytes(data []byte) (hal.Buffer, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &buffer{data: cp}, nil
}

type tensor struct {
	data   []byte
	mapped bool
	addr   uint64
}

func (t *tensor) Destroy()                  {}
func (t *tensor) SizeBytes() uint64         { return uint64(len(t.data)) }
func (t *tensor) Address() uint64           { return t.addr }
func (t *tensor) Mapped() bool              { return t.mapped }
func (t *tensor) Bytes() []byte {
	if !t.mapped {
		return nil
	}
	return t.data
}
func (t *tensor) Flush(offset, size uint64)      {}
func (t *tensor) Invalidate(offset, size uint64) {}

func (d *Device) CreateTensor(size uint64, mapped bool) (hal.Tensor, error) {
	t := &tensor{data: make([]byte, size), mapped: mapped}
	t.addr = d.allocAddr(t)
	return t, nil
}

func (d *Device) CreateTensorFromBytes(data []byte, mapped bool) (hal.Tensor, error) {
	t, err := d.CreateTensor(uint64(len(data)), mapped)
	if err != nil {
		return nil, err
	}
	st := t.(*tensor)
	copy(st.data, data)
	return st, nil
}

type image struct {
	data                  []byte
	w, h, depth           uint32
	format                hal.ImageFormat
}

func (i *image) Destroy()               {}
func (i *image) Width() uint32          { return i.w }
func (i *image) Height() uint32         { return i.h }
func (i *image) Depth() uint32          { return i.depth }
func (i *image) Format() hal.ImageFormat { return i.format }
func (i *image) SizeBytes() uint64      { return uint64(len(i.data)) }
func (i *image) Bytes() []byte          { return i.data }

func (d *Device) CreateImage(format hal.ImageFormat, width, height, depth uint32) (hal.Image, error) {
	sz := uint64(format.ElementSize()) * uint64(width) * uint64(height) * uint64(depth)
	return &image{data: make([]byte, sz), w: width, h: height, depth: depth, format: format}, nil
}

type texture struct {
	image
	sampler hal.SamplerDesc
}

func (d *Device) CreateTexture(format hal.ImageFormat, width, height, depth uint32, sampler hal.SamplerDesc) (hal.Texture, error) {
	sz := uint64(format.ElementSize()) * uint64(width) * uint64(height) * uint64(depth)
	return &texture{
		image:   image{data: make([]byte, sz), w: width, h: height, depth: depth, format: format},
		sampler: sampler,
	}, nil
}

type shaderModule struct{ code []uint32 }

func (s *shaderModule) Destroy() {}

func (d *Device) CreateShaderModule(code []uint32) (hal.ShaderModule, error) {
	cp := make([]uint32, len(code))
	copy(cp, code)
	return &shaderModule{code: cp}, nil
}

type descriptorSetLayout struct{ bindings []hal.BindingTraits }

func (l *descriptorSetLayout) Destroy()                      {}
func (l *descriptorSetLayout) Bindings() []hal.BindingTraits { return l.bindings }

func (d *Device) CreateDescriptorSetLayout(bindings []hal.BindingTraits) (hal.DescriptorSetLayout, error) {
	cp := make([]hal.BindingTraits, len(bindings))
	copy(cp, bindings)
	return &descriptorSetLayout{bindings: cp}, nil
}

type pipelineLayout struct {
	set              hal.DescriptorSetLayout
	pushSize         uint32
	pushStages       hal.ShaderStageMask
}

func (l *pipelineLayout) Destroy()                             {}
func (l *pipelineLayout) PushConstantSize() uint32             { return l.pushSize }
func (l *pipelineLayout) PushConstantStages() hal.ShaderStageMask { return l.pushStages }

func (d *Device) CreatePipelineLayout(set hal.DescriptorSetLayout, pushConstantSize uint32, pushConstantStages hal.ShaderStageMask) (hal.PipelineLayout, error) {
	return &pipelineLayout{set: set, pushSize: pushConstantSize, pushStages: pushConstantStages}, nil
}

type computePipeline struct {
	module hal.ShaderModule
	layout hal.PipelineLayout
}

func (p *computePipeline) Destroy() {}

func (d *Device) CreateComputePipeline(module hal.ShaderModule, entryPoint string, layout hal.PipelineLayout, specialization []byte, specIDs []uint32) (hal.ComputePipeline, error) {
	return &computePipeline{module: module, layout: layout}, nil
}

// accelStruct models both BLAS and TLAS; geometry/instances are retained
// so TraceRays could in principle simulate intersection, though the
// current software backend does not execute ray generation shaders.
type accelStruct struct {
	addr      uint64
	geometry  *hal.AccelGeometry
	instances []hal.TLASInstanceRecord
}

func (a *accelStruct) Destroy()           {}
func (a *accelStruct) DeviceAddress() uint64 { return a.addr }

func (d *Device) BuildBLAS(geom hal.AccelGeometry) (hal.AccelerationStructure, uint64, error) {
	if geom.VertexCount == 0 {
		return nil, 0, fmt.Errorf("hephaistos/software: BuildBLAS: empty geometry")
	}
	g := geom
	as := &accelStruct{geometry: &g}
	as.addr = d.allocAddr(as)
	const scratchSize = 1 << 16
	return as, scratchSize, nil
}

func (d *Device) BuildTLAS(instances []hal.TLASInstanceRecord) (hal.AccelerationStructure, uint64, error) {
	cp := make([]hal.TLASInstanceRecord, len(instances))
	copy(cp, instances)
	as := &accelStruct{instances: cp}
	as.addr = d.allocAddr(as)
	const scratchSize = 1 << 16
	return as, scratchSize, nil
}

type rtPipeline struct {
	groups  []hal.RTShaderGroup
	layout  hal.PipelineLayout
	handles []byte
}

func (p *rtPipeline) Destroy()                 {}
func (p *rtPipeline) ShaderGroupHandles() []byte { return p.handles }
func (p *rtPipeline) HandleSize() uint32       { return shaderGroupHandleSize }
func (p *rtPipeline) HandleAlignment() uint32  { return 32 }
func (p *rtPipeline) BaseAlignment() uint32    { return 64 }
func (p *rtPipeline) ShaderCount() uint32      { return uint32(len(p.groups)) }

func (d *Device) CreateRayTracingPipeline(groups []hal.RTShaderGroup, layout hal.PipelineLayout, specialization []byte, specIDs []uint32, maxRecursionDepth uint32) (hal.RayTracingPipelineHandle, error) {
	if maxRecursionDepth > d.RayTracingProperties().MaxRayRecursionDepth {
		return nil, fmt.Errorf("hephaistos/software: max recursion depth %d exceeds device limit", maxRecursionDepth)
	}
	handles := make([]byte, shaderGroupHandleSize*len(groups))
	for i := range groups {
		// deterministic, distinguishable per-group fill so tests can
		// assert each group produced a unique handle.
		for b := range handles[i*shaderGroupHandleSize : (i+1)*shaderGroupHandleSize] {
			handles[i*shaderGroupHandleSize+b] = byte(i + 1)
		}
	}
	return &rtPipeline{groups: groups, layout: layout, handles: handles}, nil
}
