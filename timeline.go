// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Timeline is a monotonic 64-bit counter shared between host and device,
// the synchronization primitive a SequenceBuilder uses to order its
// steps and that a Submission's caller waits on for completion.
type Timeline struct {
	ctx *Context
	sem hal.TimelineSemaphore
}

// CreateTimeline allocates a new timeline semaphore starting at initial.
func (c *Context) CreateTimeline(initial uint64) (*Timeline, error) {
	sem, err := c.device.NewTimelineSemaphore(initial)
	if err != nil {
		return nil, wrapErr("CreateTimeline", "", err)
	}
	c.retain()
	return &Timeline{ctx: c, sem: sem}, nil
}

// ID returns a stable identifier for debug printing (PrintWaitGraph).
func (t *Timeline) ID() uint64 { return t.sem.ID() }

// GetValue reads the timeline's current counter value.
func (t *Timeline) GetValue() (uint64, error) {
	v, err := t.sem.Value()
	if err != nil {
		return 0, wrapErr("GetValue", "", err)
	}
	return v, nil
}

// SetValue advances the timeline's counter from the host. The counter
// must never decrease; violating that is a backend-reported error.
func (t *Timeline) SetValue(value uint64) error {
	if err := t.sem.Signal(value); err != nil {
		return wrapErr("SetValue", "", err)
	}
	return nil
}

// WaitValue blocks until the timeline reaches value, or until timeoutNs
// elapses (0 = forever). Returns false on timeout without error.
func (t *Timeline) WaitValue(value uint64, timeoutNs uint64) (bool, error) {
	ok, err := t.sem.Wait(value, timeoutNs)
	if err != nil {
		return false, wrapErr("WaitValue", "", err)
	}
	return ok, nil
}

// Context returns the owning Context.
func (t *Timeline) Context() *Context { return t.ctx }

// Destroy releases the timeline semaphore.
func (t *Timeline) Destroy() {
	t.sem.Destroy()
	t.ctx.release()
}

func (t *Timeline) resource() hal.TimelineSemaphore { return t.sem }
