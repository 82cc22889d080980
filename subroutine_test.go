// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"testing"
)

func TestSubroutineBuildAndRunViaSequence(t *testing.T) {
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

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 0x11111111)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}
	retrieve, err := NewRetrieveTensorCommand(tensor, readback, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewRetrieveTensorCommand: %v", err)
	}

	sb, err := ctx.BeginSubroutine()
	if err != nil {
		t.Fatalf("BeginSubroutine: %v", err)
	}
	sub, err := sb.And(fill).And(retrieve).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer sub.Destroy()

	submission, err := ctx.BeginSequence().AndSubroutine(sub).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer submission.Release()

	if err := submission.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	want := bytes.Repeat([]byte{0x11}, 16)
	if got := readback.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("readback = %x, want %x", got, want)
	}
}

func TestSubroutineBuilderValidatesCommands(t *testing.T) {
	ctx := newTestContext(t)

	prog, err := ctx.CreateProgram(buildStorageModule(storageClassStorageBuffer), ProgramOptions{})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	defer prog.Destroy()

	sb, err := ctx.BeginSubroutine()
	if err != nil {
		t.Fatalf("BeginSubroutine: %v", err)
	}

	dispatch := NewDispatchCommand(prog, 1, 1, 1)
	if _, err := sb.And(dispatch).Build(); err == nil {
		t.Fatal("Build should fail when a recorded command fails validation")
	}
}
