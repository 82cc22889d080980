// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"errors"
	"testing"
)

func TestCreateProgramAndDispatch(t *testing.T) {
	ctx := newTestContext(t)

	prog, err := ctx.CreateProgram(buildStorageModule(storageClassStorageBuffer), ProgramOptions{})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	defer prog.Destroy()

	if want := [3]uint32{8, 8, 1}; prog.LocalSize() != want {
		t.Fatalf("LocalSize = %v, want %v", prog.LocalSize(), want)
	}
	if prog.Context() != ctx {
		t.Fatal("Context() did not return the owning Context")
	}
	if !prog.HasBinding(ByIndex(0)) {
		t.Fatal("program should declare binding 0")
	}

	tensor, err := ctx.CreateTensor(256, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	dispatch := NewDispatchCommand(prog, 1, 1, 1)
	if err := dispatch.Validate(); err == nil {
		t.Fatal("Validate should fail before any binding is bound")
	}

	if err := prog.BindParameter(ByIndex(0), tensor); err != nil {
		t.Fatalf("BindParameter: %v", err)
	}
	if !prog.AllBindingsBound() {
		t.Fatal("AllBindingsBound should be true once binding 0 is set")
	}
	if err := dispatch.Validate(); err != nil {
		t.Fatalf("Validate after binding: %v", err)
	}

	sub, err := ctx.BeginSequence().And(dispatch).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer sub.Release()

	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestCreateProgramRejectsUnboundDispatchIndirect(t *testing.T) {
	ctx := newTestContext(t)

	prog, err := ctx.CreateProgram(buildStorageModule(storageClassStorageBuffer), ProgramOptions{})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	defer prog.Destroy()

	args, err := ctx.CreateTensor(12, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer args.Destroy()

	cmd, err := NewDispatchIndirectCommand(prog, args, 0)
	if err != nil {
		t.Fatalf("NewDispatchIndirectCommand: %v", err)
	}
	if err := cmd.Validate(); err == nil {
		t.Fatal("Validate should fail with no bound parameters")
	}
}

func TestCreateProgramBadModuleFails(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ctx.CreateProgram([]uint32{0, 0, 0, 0, 0}, ProgramOptions{})
	if err == nil {
		t.Fatal("CreateProgram with a bad SPIR-V magic number should fail")
	}
	var target *Error
	if !errors.As(err, &target) {
		t.Fatalf("error should be a *Error, got %T", err)
	}
}
