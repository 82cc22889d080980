// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"errors"
	"testing"
)

func TestSequenceFillThenRetrieve(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	readback, err := ctx.CreateBuffer(16)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer readback.Destroy()

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 0x2A2A2A2A)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}
	retrieve, err := NewRetrieveTensorCommand(tensor, readback, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewRetrieveTensorCommand: %v", err)
	}

	sub, err := ctx.BeginSequence().
		And(fill).
		Then(retrieve).
		Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, want := sub.FinalValue(), uint64(2); got != want {
		t.Fatalf("FinalValue = %d, want %d", got, want)
	}

	want := bytes.Repeat([]byte{0x2A}, 16)
	if got := readback.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("readback = %x, want %x", got, want)
	}

	if err := sub.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestSequenceUpdateThenRetrieve(t *testing.T) {
	ctx := newTestContext(t)

	src, err := ctx.CreateBufferFromBytes([]byte("hephaistos!!!!!!"))
	if err != nil {
		t.Fatalf("CreateBufferFromBytes: %v", err)
	}
	defer src.Destroy()

	tensor, err := ctx.CreateTensor(uint64(src.SizeBytes()), false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	dst, err := ctx.CreateBuffer(src.SizeBytes())
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer dst.Destroy()

	update, err := NewUpdateTensorCommand(src, tensor, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewUpdateTensorCommand: %v", err)
	}
	retrieve, err := NewRetrieveTensorCommand(tensor, dst, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewRetrieveTensorCommand: %v", err)
	}

	sub, err := ctx.BeginSequence().And(update).Then(retrieve).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer sub.Release()

	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, want := string(dst.Bytes()), "hephaistos!!!!!!"; got != want {
		t.Fatalf("readback = %q, want %q", got, want)
	}
}

func TestSequenceWaitForExternalTimeline(t *testing.T) {
	ctx := newTestContext(t)

	gate, err := ctx.CreateTimeline(0)
	if err != nil {
		t.Fatalf("CreateTimeline: %v", err)
	}
	defer gate.Destroy()

	tensor, err := ctx.CreateTensor(4, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 1)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}

	if err := gate.SetValue(1); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	sub, err := ctx.BeginSequence().WaitForExternal(gate, 1).And(fill).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := sub.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestSequenceWaitForOnImplicitTimelineFails(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(4, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 1)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}

	_, err = ctx.BeginSequence().WaitFor(1).And(fill).Submit()
	if err == nil {
		t.Fatal("WaitFor on an implicit sequence-owned timeline should fail, got nil error")
	}
}

func TestSequenceAndAfterSubmitFails(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(4, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 1)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}

	b := ctx.BeginSequence().And(fill)
	sub, err := b.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer sub.Release()

	if _, err := b.Submit(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second Submit = %v, want ErrAlreadySubmitted", err)
	}
	if b.And(fill) == nil {
		t.Fatal("And should return the builder, not nil, even after failing")
	}
}

func TestTimelineGetSetValue(t *testing.T) {
	ctx := newTestContext(t)

	tl, err := ctx.CreateTimeline(5)
	if err != nil {
		t.Fatalf("CreateTimeline: %v", err)
	}
	defer tl.Destroy()

	v, err := tl.GetValue()
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != 5 {
		t.Fatalf("GetValue = %d, want 5", v)
	}

	if err := tl.SetValue(10); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	ok, err := tl.WaitValue(10, 0)
	if err != nil {
		t.Fatalf("WaitValue: %v", err)
	}
	if !ok {
		t.Fatal("WaitValue(10) should have been satisfied immediately")
	}
}
