// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"testing"

	"github.com/gogpu/hephaistos/hal"
)

func spirvWord(wordCount int, opcode uint32) uint32 {
	return uint32(wordCount)<<16 | opcode
}

// buildStorageModule assembles a minimal hand-crafted SPIR-V module
// declaring one binding-0 buffer (storage or uniform, depending on
// storageClass), one 128-byte push-constant block, and a LocalSize
// execution mode of 8x8x1. It implements just enough of the instruction
// stream for reflect.go's walker to classify the binding; it is not a
// module any real compiler would ever emit or any driver would accept.
func buildStorageModule(storageClass uint32) []uint32 {
	const (
		struct1, ptr1, var1 = 10, 11, 12
		struct2, ptr2, var2 = 20, 21, 22
	)
	body := []uint32{
		spirvWord(3, 71), struct1, 2, // OpDecorate %struct1 Block
		spirvWord(2, 30), struct1, // OpTypeStruct %struct1
		spirvWord(4, 32), ptr1, storageClass, struct1, // OpTypePointer %ptr1 <SC> %struct1
		spirvWord(4, 59), ptr1, var1, storageClass, // OpVariable %var1 %ptr1 <SC>
		spirvWord(4, 71), var1, 34, 0, // OpDecorate %var1 DescriptorSet 0
		spirvWord(4, 71), var1, 33, 0, // OpDecorate %var1 Binding 0
		spirvWord(2, 30), struct2, // OpTypeStruct %struct2 (push constant block)
		spirvWord(4, 32), ptr2, 9, struct2, // OpTypePointer %ptr2 PushConstant %struct2
		spirvWord(4, 59), ptr2, var2, 9, // OpVariable %var2 %ptr2 PushConstant
		spirvWord(6, 16), 1, 17, 8, 8, 1, // OpExecutionMode %1 LocalSize 8 8 1
		spirvWord(1, 54),        // OpFunction
		spirvWord(3, 9999), 100, var1, // (unrecognized) references %var1
		spirvWord(1, 56), // OpFunctionEnd
	}
	code := make([]uint32, 0, 5+len(body))
	code = append(code, spvMagicNumber, 0x00010300, 0, 256, 0)
	code = append(code, body...)
	return code
}

func TestReflectionBuilderStorageBuffer(t *testing.T) {
	b := NewReflectionBuilder()
	if err := b.Add(buildStorageModule(storageClassStorageBuffer), hal.ShaderStageCompute); err != nil {
		t.Fatalf("Add: %v", err)
	}
	refl := b.Finish()

	if refl.LocalSize != [3]uint32{8, 8, 1} {
		t.Fatalf("LocalSize = %v, want [8 8 1]", refl.LocalSize)
	}
	if len(refl.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(refl.Bindings))
	}
	if got := refl.Bindings[0].Kind; got != ParameterStorageBuffer {
		t.Fatalf("Bindings[0].Kind = %v, want ParameterStorageBuffer", got)
	}
	if got := refl.Bindings[0].Index; got != 0 {
		t.Fatalf("Bindings[0].Index = %d, want 0", got)
	}
	if refl.PushConstantSize != 128 {
		t.Fatalf("PushConstantSize = %d, want 128", refl.PushConstantSize)
	}
	if refl.PushConstantStages&hal.ShaderStageCompute == 0 {
		t.Fatal("PushConstantStages missing ShaderStageCompute")
	}
}

func TestReflectionBuilderUniformBuffer(t *testing.T) {
	b := NewReflectionBuilder()
	if err := b.Add(buildStorageModule(storageClassUniform), hal.ShaderStageCompute); err != nil {
		t.Fatalf("Add: %v", err)
	}
	refl := b.Finish()
	if got := refl.Bindings[0].Kind; got != ParameterUniformBuffer {
		t.Fatalf("Bindings[0].Kind = %v, want ParameterUniformBuffer", got)
	}
}

func TestReflectionBuilderConflictingRedeclaration(t *testing.T) {
	b := NewReflectionBuilder()
	if err := b.Add(buildStorageModule(storageClassStorageBuffer), hal.ShaderStageCompute); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := b.Add(buildStorageModule(storageClassUniform), hal.ShaderStageCompute)
	if err == nil {
		t.Fatal("second Add redeclaring binding 0 with a different kind should fail")
	}
}

func TestReflectionBuilderRejectsBadMagic(t *testing.T) {
	b := NewReflectionBuilder()
	bad := []uint32{0, 0, 0, 0, 0}
	if err := b.Add(bad, hal.ShaderStageCompute); err == nil {
		t.Fatal("Add with a bad magic number should fail")
	}
}

func TestSpecializationSlots(t *testing.T) {
	r := &Reflection{SpecializationIDs: []uint32{1, 2, 5, 9}}
	if got := r.SpecializationSlots(0); len(got) != 0 {
		t.Fatalf("SpecializationSlots(0) = %v, want empty", got)
	}
	if got := r.SpecializationSlots(8); len(got) != 2 {
		t.Fatalf("SpecializationSlots(8) = %v, want 2 entries", got)
	}
	if got := r.SpecializationSlots(1000); len(got) != 4 {
		t.Fatalf("SpecializationSlots(1000) = %v, want all 4 entries", got)
	}
}
