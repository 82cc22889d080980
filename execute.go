// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Execute records cmd into the context's reusable one-time-submit
// command buffer, submits it on the reusable fence, waits, and resets —
// a synchronous shortcut distinct from building a Sequence.
func (c *Context) Execute(cmd Command) error {
	if v, ok := cmd.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return wrapErr("Execute", "", err)
		}
	}
	return c.executeRecorded(func(rec hal.Recorder) { cmd.Record(rec) })
}

// ExecuteFunc is the closure form of Execute.
func (c *Context) ExecuteFunc(fn func(rec hal.Recorder)) error {
	return c.executeRecorded(fn)
}

// ExecuteSubroutine replays a pre-recorded Subroutine synchronously.
func (c *Context) ExecuteSubroutine(s *Subroutine) error {
	if err := c.oneShotBuf.Begin(); err != nil {
		return wrapErr("ExecuteSubroutine", "", err)
	}
	if err := c.oneShotBuf.End(); err != nil {
		return wrapErr("ExecuteSubroutine", "", err)
	}
	if err := c.oneShotFence.Reset(); err != nil {
		return wrapErr("ExecuteSubroutine", "reset fence", err)
	}
	if err := c.device.Queue().SubmitOneShot(s.buf, c.oneShotFence); err != nil {
		return wrapErr("ExecuteSubroutine", "submit", err)
	}
	if _, err := c.oneShotFence.Wait(0); err != nil {
		return wrapErr("ExecuteSubroutine", "wait", err)
	}
	return nil
}

func (c *Context) executeRecorded(fn func(rec hal.Recorder)) error {
	if err := c.oneShotBuf.Begin(); err != nil {
		return wrapErr("Execute", "", err)
	}
	fn(c.oneShotBuf)
	if err := c.oneShotBuf.End(); err != nil {
		return wrapErr("Execute", "", err)
	}
	if err := c.oneShotFence.Reset(); err != nil {
		return wrapErr("Execute", "reset fence", err)
	}
	if err := c.device.Queue().SubmitOneShot(c.oneShotBuf, c.oneShotFence); err != nil {
		return wrapErr("Execute", "submit", err)
	}
	if _, err := c.oneShotFence.Wait(0); err != nil {
		return wrapErr("Execute", "wait", err)
	}
	return nil
}
