// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command compute-copy demonstrates GPU buffer copying via a compute
// shader. It uploads an array of float32 values, dispatches a shader
// that copies each element from source to destination (with a scale
// factor), and reads back the results for CPU verification.
//
// The example is headless (no window required) and works on any
// Vulkan-like GPU reachable through hephaistos.CreateContext.
//
// copy.comp.spv is precompiled offline from:
//
//	#version 450
//	layout(local_size_x = 64) in;
//	layout(binding = 0) readonly buffer Input { float data[]; } input_;
//	layout(binding = 1) buffer Output { float data[]; } output_;
//	layout(push_constant) uniform Params { uint count; float scale; } params;
//	void main() {
//	    uint i = gl_GlobalInvocationID.x;
//	    if (i >= params.count) return;
//	    output_.data[i] = input_.data[i] * params.scale;
//	}
//
// via `glslangValidator -V copy.comp -o copy.comp.spv`; hephaistos never
// compiles shader source itself (spec places the compiler front end out
// of scope), so the binary is checked in alongside this command.
package main

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/gogpu/hephaistos"
)

//go:embed copy.comp.spv
var copyShaderSPIRV []byte

const (
	numElements = 1024
	scaleFactor = float32(2.5)
	bufSize     = uint64(numElements * 4)
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== Compute Shader: Scaled Copy ===")
	fmt.Println()

	fmt.Print("1. Opening device... ")
	ctx, err := hephaistos.CreateContext(hephaistos.ContextOptions{})
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}
	defer ctx.Close()
	fmt.Printf("OK (%s)\n", ctx.Device().Info().Name)

	fmt.Printf("2. Input: %d float32 elements, scale = %.1f\n", numElements, scaleFactor)
	inputData := make([]byte, bufSize)
	for i := uint32(0); i < numElements; i++ {
		binary.LittleEndian.PutUint32(inputData[i*4:], math.Float32bits(float32(i+1)))
	}

	fmt.Print("3. Creating tensors... ")
	input, output, err := createTensors(ctx, inputData)
	if err != nil {
		return err
	}
	defer input.Destroy()
	defer output.Destroy()
	fmt.Println("OK")

	fmt.Print("4. Compiling program... ")
	prog, err := createProgram(ctx, input, output)
	if err != nil {
		return err
	}
	defer prog.Destroy()
	fmt.Println("OK")

	fmt.Print("5. Dispatching compute... ")
	if err := dispatch(ctx, prog); err != nil {
		return err
	}
	fmt.Println("OK")

	fmt.Print("6. Reading results... ")
	resultBytes := make([]byte, bufSize)
	if err := output.Retrieve(resultBytes, 0); err != nil {
		return fmt.Errorf("retrieve output: %w", err)
	}
	fmt.Println("OK")

	return verifyResults(resultBytes)
}

func spirvWords(code []byte) []uint32 {
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words
}

func createTensors(ctx *hephaistos.Context, inputData []byte) (input, output *hephaistos.Tensor, err error) {
	input, err = ctx.CreateTensorFromBytes(inputData, false)
	if err != nil {
		return nil, nil, fmt.Errorf("create input tensor: %w", err)
	}
	output, err = ctx.CreateTensor(bufSize, true)
	if err != nil {
		input.Destroy()
		return nil, nil, fmt.Errorf("create output tensor: %w", err)
	}
	return input, output, nil
}

func createProgram(ctx *hephaistos.Context, input, output *hephaistos.Tensor) (*hephaistos.Program, error) {
	prog, err := ctx.CreateProgram(spirvWords(copyShaderSPIRV), hephaistos.ProgramOptions{EntryPoint: "main"})
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	if err := prog.BindParameterList(input, output); err != nil {
		prog.Destroy()
		return nil, fmt.Errorf("bind parameters: %w", err)
	}
	return prog, nil
}

// dispatch records a single-step sequence (dispatch the copy program)
// and blocks until it completes.
func dispatch(ctx *hephaistos.Context, prog *hephaistos.Program) error {
	pushData := make([]byte, 8)
	binary.LittleEndian.PutUint32(pushData[0:4], numElements)
	binary.LittleEndian.PutUint32(pushData[4:8], math.Float32bits(scaleFactor))

	groups := (numElements + 63) / 64
	cmd := hephaistos.NewDispatchCommand(prog, uint32(groups), 1, 1).PushConstants(pushData)

	sub, err := ctx.BeginSequence().And(cmd).Submit()
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer sub.Release()

	ok, err := sub.WaitTimeout(5_000_000_000)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if !ok {
		return fmt.Errorf("submission timeout after 5s")
	}
	return nil
}

func verifyResults(resultBytes []byte) error {
	const tolerance = 0.001
	mismatches := 0

	for i := uint32(0); i < numElements; i++ {
		bits := binary.LittleEndian.Uint32(resultBytes[i*4:])
		got := math.Float32frombits(bits)
		want := float32(i+1) * scaleFactor
		if math.Abs(float64(got-want)) > tolerance {
			if mismatches < 5 {
				fmt.Printf("  MISMATCH [%d]: got %.4f, want %.4f\n", i, got, want)
			}
			mismatches++
		}
	}

	fmt.Println()
	fmt.Println("Sample results (first 8):")
	for i := uint32(0); i < 8; i++ {
		bits := binary.LittleEndian.Uint32(resultBytes[i*4:])
		got := math.Float32frombits(bits)
		fmt.Printf("  [%d] %.1f * %.1f = %.1f\n", i, float32(i+1), scaleFactor, got)
	}

	fmt.Println()
	if mismatches == 0 {
		fmt.Printf("PASS: all %d elements match (tolerance=%.4f)\n", numElements, tolerance)
		return nil
	}

	fmt.Printf("FAIL: %d/%d mismatches\n", mismatches, numElements)
	return fmt.Errorf("%d elements mismatched", mismatches)
}
