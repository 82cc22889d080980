// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import "github.com/gogpu/hephaistos/hal"

// Submission is the token returned by SequenceBuilder.Submit: it ties a
// timeline to the counter value that marks the sequence's completion,
// and owns the command buffers and pool used to record it. Destroying a
// Submission joins (waits) on completion before releasing them, since
// outstanding command buffers must not be freed while the device may
// still reference them.
type Submission struct {
	ctx          *Context
	timeline     *Timeline
	finalValue   uint64
	pool         hal.CommandPool
	bufs         []hal.CommandBuffer
	ownsPool     bool
	ownsTimeline bool
	released     bool
}

// FinalValue returns the timeline counter value reached once every step
// of the sequence has completed.
func (s *Submission) FinalValue() uint64 { return s.finalValue }

// Timeline returns the timeline this submission completes on.
func (s *Submission) Timeline() *Timeline { return s.timeline }

// Wait blocks until the submission's final value is reached.
func (s *Submission) Wait() error {
	_, err := s.timeline.WaitValue(s.finalValue, 0)
	if err != nil {
		return wrapErr("Submission.Wait", "", err)
	}
	return nil
}

// WaitTimeout blocks until the submission's final value is reached or
// timeoutNs elapses; returns false on timeout without error.
func (s *Submission) WaitTimeout(timeoutNs uint64) (bool, error) {
	ok, err := s.timeline.WaitValue(s.finalValue, timeoutNs)
	if err != nil {
		return false, wrapErr("Submission.Wait", "", err)
	}
	return ok, nil
}

// Release waits for completion (if not already reached), then returns
// the sequence's command pool to the context's LIFO cache, destroys its
// command buffers, and — for an implicit (sequence-owned) timeline —
// destroys the timeline itself. Equivalent to the original's
// destructor-time join; call it once the submission's result is no
// longer needed.
func (s *Submission) Release() error {
	if s.released {
		return nil
	}
	if err := s.Wait(); err != nil {
		return err
	}
	s.released = true
	for _, b := range s.bufs {
		b.Destroy()
	}
	if s.ownsPool {
		s.ctx.releaseSequencePool(s.pool)
	}
	if s.ownsTimeline {
		s.timeline.Destroy()
	}
	return nil
}
