// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Subroutine is a pre-recorded, reusable command buffer: build it once
// (typically a fixed setup or teardown sequence) and reference it from
// many sequence steps without re-recording. Lives in the context's
// long-lived subroutine pool, never the per-sequence LIFO cache.
type Subroutine struct {
	ctx       *Context
	buf       hal.CommandBuffer
	stageMask hal.PipelineStageMask
}

// SubroutineBuilder accumulates commands into a subroutine's command
// buffer; call Build to finish recording.
type SubroutineBuilder struct {
	ctx       *Context
	buf       hal.CommandBuffer
	stageMask hal.PipelineStageMask
	err       error
}

// BeginSubroutine opens a new subroutine recording against the context's
// subroutine pool.
func (c *Context) BeginSubroutine() (*SubroutineBuilder, error) {
	buf, err := c.subroutinePool.Acquire()
	if err != nil {
		return nil, wrapErr("BeginSubroutine", "", err)
	}
	if err := buf.Begin(); err != nil {
		return nil, wrapErr("BeginSubroutine", "", err)
	}
	return &SubroutineBuilder{ctx: c, buf: buf}, nil
}

// And records cmd into the subroutine, OR-ing its stage mask into the
// subroutine's cumulative mask.
func (b *SubroutineBuilder) And(cmd Command) *SubroutineBuilder {
	if b.err != nil {
		return b
	}
	if v, ok := cmd.(Validatable); ok {
		if err := v.Validate(); err != nil {
			b.err = err
			return b
		}
	}
	b.stageMask |= cmd.Record(b.buf)
	return b
}

// Build ends recording and returns the finished Subroutine.
func (b *SubroutineBuilder) Build() (*Subroutine, error) {
	if b.err != nil {
		return nil, wrapErr("Subroutine.Build", "", b.err)
	}
	if err := b.buf.End(); err != nil {
		return nil, wrapErr("Subroutine.Build", "", err)
	}
	b.ctx.retain()
	return &Subroutine{ctx: b.ctx, buf: b.buf, stageMask: b.stageMask}, nil
}

// Destroy releases the subroutine's command buffer.
func (s *Subroutine) Destroy() {
	s.buf.Destroy()
	s.ctx.release()
}
