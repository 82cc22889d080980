// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"
	"strings"

	"github.com/gogpu/hephaistos/hal"
)

type waitEntry struct {
	timeline *Timeline // nil means the sequence's own timeline
	value    uint64
}

type sequenceStep struct {
	buf         hal.CommandBuffer
	hasInline   bool
	subroutines []*Subroutine
	stageMask   hal.PipelineStageMask
	numCommands int
	extraWait   *waitEntry
}

// SequenceBuilder assembles an ordered list of steps: commands added with
// And join the current step; NextStep (or its sugar Then) closes it and
// opens the next. Submit is terminal and consumes the builder.
type SequenceBuilder struct {
	ctx        *Context
	timeline   *Timeline
	implicit   bool
	startValue uint64
	pool       hal.CommandPool

	steps     []*sequenceStep
	submitted bool
	err       error
}

// BeginSequence opens a sequence on a fresh, sequence-owned timeline
// starting at 0; its lifetime is tied to the resulting Submission.
func (c *Context) BeginSequence() *SequenceBuilder {
	t, err := c.CreateTimeline(0)
	if err != nil {
		return &SequenceBuilder{ctx: c, err: wrapErr("BeginSequence", "", err)}
	}
	return newSequenceBuilder(c, t, 0, true)
}

// BeginSequenceOn opens a sequence on an existing timeline, waiting for
// it to reach startValue before the first step runs.
func (c *Context) BeginSequenceOn(t *Timeline, startValue uint64) *SequenceBuilder {
	return newSequenceBuilder(c, t, startValue, false)
}

func newSequenceBuilder(c *Context, t *Timeline, startValue uint64, implicit bool) *SequenceBuilder {
	pool, err := c.acquireSequencePool()
	if err != nil {
		return &SequenceBuilder{ctx: c, err: wrapErr("BeginSequence", "acquire pool", err)}
	}
	b := &SequenceBuilder{ctx: c, timeline: t, implicit: implicit, startValue: startValue, pool: pool}
	b.steps = append(b.steps, &sequenceStep{})
	return b
}

func (b *SequenceBuilder) current() *sequenceStep { return b.steps[len(b.steps)-1] }

func (b *SequenceBuilder) fail(op string, err error) *SequenceBuilder {
	if b.err == nil {
		b.err = wrapErr(op, "", err)
	}
	return b
}

// And records cmd into the current step.
func (b *SequenceBuilder) And(cmd Command) *SequenceBuilder {
	if b.err != nil {
		return b
	}
	if b.submitted {
		return b.fail("And", ErrAlreadySubmitted)
	}
	if v, ok := cmd.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return b.fail("And", err)
		}
	}
	step := b.current()
	if !step.hasInline {
		buf, err := b.pool.Acquire()
		if err != nil {
			return b.fail("And", err)
		}
		if err := buf.Begin(); err != nil {
			return b.fail("And", err)
		}
		step.buf = buf
		step.hasInline = true
	}
	step.stageMask |= cmd.Record(step.buf)
	step.numCommands++
	return b
}

// AndSubroutine references a pre-recorded Subroutine from the current step.
func (b *SequenceBuilder) AndSubroutine(s *Subroutine) *SequenceBuilder {
	if b.err != nil {
		return b
	}
	if b.submitted {
		return b.fail("AndSubroutine", ErrAlreadySubmitted)
	}
	step := b.current()
	step.subroutines = append(step.subroutines, s)
	step.stageMask |= s.stageMask
	step.numCommands++
	return b
}

// NextStep closes the current step and opens a new one.
func (b *SequenceBuilder) NextStep() *SequenceBuilder {
	if b.err != nil {
		return b
	}
	if b.submitted {
		return b.fail("NextStep", ErrAlreadySubmitted)
	}
	if err := b.closeStep(b.current()); err != nil {
		return b.fail("NextStep", err)
	}
	b.steps = append(b.steps, &sequenceStep{})
	return b
}

// Then is sugar for NextStep().And(cmd).
func (b *SequenceBuilder) Then(cmd Command) *SequenceBuilder {
	return b.NextStep().And(cmd)
}

// WaitFor inserts an additional host-observed wait on the sequence's own
// timeline before the next step starts. Illegal on an implicit
// (sequence-owned) timeline, since nothing else can advance it.
func (b *SequenceBuilder) WaitFor(value uint64) *SequenceBuilder {
	if b.err != nil {
		return b
	}
	if b.implicit {
		return b.fail("WaitFor", invalidArg("WaitFor", "sequence owns an implicit timeline, WaitFor would deadlock"))
	}
	b.current().extraWait = &waitEntry{timeline: b.timeline, value: value}
	return b
}

// WaitForExternal inserts an additional wait on a different timeline
// before the next step starts.
func (b *SequenceBuilder) WaitForExternal(t *Timeline, value uint64) *SequenceBuilder {
	if b.err != nil {
		return b
	}
	b.current().extraWait = &waitEntry{timeline: t, value: value}
	return b
}

func (b *SequenceBuilder) closeStep(s *sequenceStep) error {
	if s.hasInline {
		return s.buf.End()
	}
	return nil
}

// PrintWaitGraph renders a human-readable dump of the sequence's
// wait/signal chain; callable only before Submit.
func (b *SequenceBuilder) PrintWaitGraph() (string, error) {
	if b.submitted {
		return "", wrapErr("PrintWaitGraph", "", ErrAlreadySubmitted)
	}
	var sb strings.Builder
	for k, step := range b.steps {
		wait := b.startValue + uint64(k)
		signal := b.startValue + uint64(k) + 1
		fmt.Fprintf(&sb, "Timeline.%d(wait=%d) -> [%d commands] -> Timeline.%d(signal=%d)\n",
			b.timeline.ID(), wait, step.numCommands, b.timeline.ID(), signal)
	}
	return sb.String(), nil
}

// Submit is terminal: it ends any open command buffer, builds one submit
// batch per step, queues them in order, and returns a Submission. Any
// further call on the builder after Submit returns ErrAlreadySubmitted.
func (b *SequenceBuilder) Submit() (*Submission, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.submitted {
		return nil, wrapErr("Submit", "", ErrAlreadySubmitted)
	}
	if err := b.closeStep(b.current()); err != nil {
		return nil, wrapErr("Submit", "", err)
	}
	b.submitted = true

	queue := b.ctx.device.Queue()
	for k, step := range b.steps {
		if step.extraWait != nil {
			if _, err := step.extraWait.timeline.WaitValue(step.extraWait.value, 0); err != nil {
				return nil, wrapErr("Submit", "extra wait", err)
			}
		}
		waitStage := step.stageMask
		if waitStage == 0 {
			waitStage = hal.PipelineStageMask(hal.PipelineStageTopOfPipe)
		}
		bufs := make([]hal.CommandBuffer, 0, len(step.subroutines)+1)
		if step.hasInline {
			bufs = append(bufs, step.buf)
		}
		for _, s := range step.subroutines {
			bufs = append(bufs, s.buf)
		}
		batch := hal.SubmitBatch{
			CommandBuffers: bufs,
			Wait:           b.timeline.sem,
			WaitValue:      b.startValue + uint64(k),
			WaitStageMask:  waitStage,
			Signal:         b.timeline.sem,
			SignalValue:    b.startValue + uint64(k) + 1,
		}
		if err := queue.Submit([]hal.SubmitBatch{batch}); err != nil {
			return nil, wrapErr("Submit", fmt.Sprintf("step %d", k), err)
		}
	}

	finalValue := b.startValue + uint64(len(b.steps))
	sub := &Submission{
		ctx:        b.ctx,
		timeline:   b.timeline,
		finalValue: finalValue,
		pool:       b.pool,
		ownsPool:   true,
		ownsTimeline: b.implicit,
	}
	for _, s := range b.steps {
		if s.hasInline {
			sub.bufs = append(sub.bufs, s.buf)
		}
	}
	return sub, nil
}
