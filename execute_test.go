// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"testing"

	"github.com/gogpu/hephaistos/hal"
)

func TestContextExecuteFillTensor(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(16, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 0x77777777)
	if err != nil {
		t.Fatalf("NewFillTensorCommand: %v", err)
	}
	if err := ctx.Execute(fill); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	readback, err := ctx.CreateBuffer(16)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer readback.Destroy()

	retrieve, err := NewRetrieveTensorCommand(tensor, readback, 0, 0, WholeSize)
	if err != nil {
		t.Fatalf("NewRetrieveTensorCommand: %v", err)
	}
	if err := ctx.Execute(retrieve); err != nil {
		t.Fatalf("Execute retrieve: %v", err)
	}

	want := bytes.Repeat([]byte{0x77}, 16)
	if got := readback.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("readback = %x, want %x", got, want)
	}
}

func TestContextExecuteFunc(t *testing.T) {
	ctx := newTestContext(t)

	tensor, err := ctx.CreateTensor(8, false)
	if err != nil {
		t.Fatalf("CreateTensor: %v", err)
	}
	defer tensor.Destroy()

	ran := false
	err = ctx.ExecuteFunc(func(rec hal.Recorder) {
		ran = true
		rec.FillBuffer(tensor.resource(), 0, WholeSize, 0x01010101)
	})
	if err != nil {
		t.Fatalf("ExecuteFunc: %v", err)
	}
	if !ran {
		t.Fatal("ExecuteFunc's closure never ran")
	}
}

func TestContextExecuteSubroutine(t *testing.T) {
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

	fill, err := NewFillTensorCommand(tensor, 0, WholeSize, 0x99999999)
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

	if err := ctx.ExecuteSubroutine(sub); err != nil {
		t.Fatalf("ExecuteSubroutine: %v", err)
	}

	want := bytes.Repeat([]byte{0x99}, 16)
	if got := readback.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("readback = %x, want %x", got, want)
	}
}

func TestContextExecuteValidatesCommand(t *testing.T) {
	ctx := newTestContext(t)

	prog, err := ctx.CreateProgram(buildStorageModule(storageClassStorageBuffer), ProgramOptions{})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	defer prog.Destroy()

	dispatch := NewDispatchCommand(prog, 1, 1, 1)
	if err := ctx.Execute(dispatch); err == nil {
		t.Fatal("Execute should fail validation before a binding is bound")
	}
}
