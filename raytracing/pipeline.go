// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal"
)

// ShaderGroup describes one emitted ray-tracing shader-group entry: a
// single general-purpose shader (ray-gen, miss, or callable — Stage
// selects which) or a triangle-hit group (closest, plus optional any-hit).
type ShaderGroup struct {
	// Stage selects the general shader's stage; required when General is set.
	Stage hal.ShaderStageMask

	General      []uint32
	GeneralEntry string

	Closest      []uint32
	ClosestEntry string
	AnyHit       []uint32
	AnyHitEntry  string
}

func (g ShaderGroup) isHitGroup() bool { return g.Closest != nil }

func entryOrMain(name string) string {
	if name == "" {
		return "main"
	}
	return name
}

// PipelineOptions configures CreatePipeline.
type PipelineOptions struct {
	MaxRecursionDepth uint32
	Specialization    []byte
}

// RayTracingPipeline is a compiled ray-tracing pipeline: reflection is
// merged across every shader variant (same rules as Program's single
// compute shader), producing one shared binding table and push-constant
// range.
type RayTracingPipeline struct {
	*hephaistos.BindingTarget

	ctx    *hephaistos.Context
	set    hal.DescriptorSetLayout
	layout hal.PipelineLayout
	handle hal.RayTracingPipelineHandle

	release func()
}

// CreatePipeline reflects every shader variant in groups, merges their
// binding tables and push-constant ranges, and compiles the pipeline.
// maxRecursionDepth must not exceed the device's reported limit.
func CreatePipeline(ctx *hephaistos.Context, groups []ShaderGroup, opts PipelineOptions) (*RayTracingPipeline, error) {
	if len(groups) == 0 {
		return nil, invalidArg("CreatePipeline", "at least one shader group is required")
	}
	limit := ctx.Device().RayTracingProperties().MaxRayRecursionDepth
	if opts.MaxRecursionDepth > limit {
		return nil, invalidArg("CreatePipeline", "max recursion depth exceeds device limit")
	}

	b := hephaistos.NewReflectionBuilder()
	halGroups := make([]hal.RTShaderGroup, len(groups))
	for i, g := range groups {
		if g.isHitGroup() {
			if err := b.Add(g.Closest, hal.ShaderStageClosestHit); err != nil {
				return nil, wrapErr("CreatePipeline", "closest-hit shader", err)
			}
			var anyHit *hal.RTShaderCode
			if g.AnyHit != nil {
				if err := b.Add(g.AnyHit, hal.ShaderStageAnyHit); err != nil {
					return nil, wrapErr("CreatePipeline", "any-hit shader", err)
				}
				anyHit = &hal.RTShaderCode{Code: g.AnyHit, EntryName: entryOrMain(g.AnyHitEntry)}
			}
			halGroups[i] = hal.RTShaderGroup{
				Kind:    hal.RTGroupTrianglesHit,
				Closest: hal.RTShaderCode{Code: g.Closest, EntryName: entryOrMain(g.ClosestEntry)},
				AnyHit:  anyHit,
			}
			continue
		}
		if g.General == nil || g.Stage == 0 {
			return nil, invalidArg("CreatePipeline", "shader group must set either Closest or General+Stage")
		}
		if err := b.Add(g.General, g.Stage); err != nil {
			return nil, wrapErr("CreatePipeline", "general shader", err)
		}
		halGroups[i] = hal.RTShaderGroup{
			Kind:    hal.RTGroupGeneral,
			General: hal.RTShaderCode{Code: g.General, EntryName: entryOrMain(g.GeneralEntry)},
		}
	}
	refl := b.Finish()

	set, err := ctx.Device().CreateDescriptorSetLayout(refl.Bindings)
	if err != nil {
		return nil, wrapErr("CreatePipeline", "descriptor set layout", err)
	}
	layout, err := ctx.Device().CreatePipelineLayout(set, refl.PushConstantSize, refl.PushConstantStages)
	if err != nil {
		set.Destroy()
		return nil, wrapErr("CreatePipeline", "pipeline layout", err)
	}
	specIDs := refl.SpecializationSlots(len(opts.Specialization))
	handle, err := ctx.Device().CreateRayTracingPipeline(halGroups, layout, opts.Specialization, specIDs, opts.MaxRecursionDepth)
	if err != nil {
		layout.Destroy()
		set.Destroy()
		return nil, wrapErr("CreatePipeline", "pipeline", err)
	}

	return &RayTracingPipeline{
		BindingTarget: hephaistos.NewBindingTarget(refl.Bindings),
		ctx:           ctx,
		set:           set,
		layout:        layout,
		handle:        handle,
		release:       ctx.TrackResource(),
	}, nil
}

// Context returns the owning Context.
func (p *RayTracingPipeline) Context() *hephaistos.Context { return p.ctx }

// Destroy releases the pipeline's compiled handle, layouts, and the
// context reference it held.
func (p *RayTracingPipeline) Destroy() {
	p.handle.Destroy()
	p.layout.Destroy()
	p.set.Destroy()
	p.release()
}
