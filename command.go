// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Command is one recordable unit of work: a copy, a fill, a dispatch, or
// (via the raytracing subpackage) a trace-rays command. Recording a
// Command into a Recorder is a pure side effect; its return value is the
// pipeline stage(s) it touches, which the enclosing step ORs into its
// cumulative stage mask (§4.C's record-time side effect).
type Command interface {
	Record(rec hal.Recorder) hal.PipelineStageMask
}

// Validatable is implemented by commands with a precondition that must
// hold before recording (e.g. DispatchCommand requires every declared
// binding to be bound). SequenceBuilder checks it for every command
// added to a step, before any of the step's commands are recorded.
type Validatable interface {
	Validate() error
}

// CommandFunc adapts a plain closure to a Command, used by Subroutine
// building and by the raytracing subpackage for its trace-rays commands.
type CommandFunc func(rec hal.Recorder) hal.PipelineStageMask

func (f CommandFunc) Record(rec hal.Recorder) hal.PipelineStageMask { return f(rec) }

// FlushMemoryCommand is an empty command recorded as a global memory
// barrier (SHADER_WRITE -> SHADER_READ|HOST_READ), letting callers order
// two compute steps without a timeline boundary.
type FlushMemoryCommand struct{}

func (FlushMemoryCommand) Record(rec hal.Recorder) hal.PipelineStageMask {
	rec.PipelineBarrier(nil, nil, []hal.MemoryBarrier{{
		SrcStage:  hal.PipelineStageMask(hal.PipelineStageCompute),
		DstStage:  hal.PipelineStageMask(hal.PipelineStageCompute) | hal.PipelineStageMask(hal.PipelineStageHost),
		SrcAccess: hal.AccessShaderWrite,
		DstAccess: hal.AccessShaderRead | hal.AccessHostRead,
	}})
	return hal.PipelineStageMask(hal.PipelineStageCompute)
}
