// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal/software"
)

func newTestContext(t *testing.T) *hephaistos.Context {
	t.Helper()
	dev := software.NewDevice("software", false)
	ctx, err := hephaistos.NewContextForDevice(dev, hephaistos.ContextOptions{})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

// a single-triangle mesh, positions only.
func testTriangleVertices() []float32 {
	return []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
}

func testTriangleIndices() []uint32 {
	return []uint32{0, 1, 2}
}

// spirvWord and buildRTShaderModule mirror the root package's
// buildStorageModule fixture: one storage-buffer binding at set 0
// binding 0, referenced from inside a function body, good enough to
// drive ReflectionBuilder.Add for any shader stage since Add does not
// inspect the execution model, only the module's declared bindings.
func spirvWord(wordCount int, opcode uint32) uint32 {
	return uint32(wordCount<<16) | opcode
}

const (
	testOpDecorate    = 71
	testOpTypeStruct  = 30
	testOpTypePointer = 32
	testOpVariable    = 59
	testOpFunction    = 54
	testOpFunctionEnd = 56
	testOpLoad        = 61

	testDecorationBlock           = 2
	testDecorationBinding         = 33
	testDecorationDescriptorSet   = 34
	testStorageClassStorageBuffer = 12
)

func buildRTShaderModule() []uint32 {
	const struct1, ptr1, var1 = 10, 11, 12

	body := []uint32{
		spirvWord(3, testOpDecorate), struct1, testDecorationBlock,
		spirvWord(2, testOpTypeStruct), struct1,
		spirvWord(4, testOpTypePointer), ptr1, testStorageClassStorageBuffer, struct1,
		spirvWord(4, testOpVariable), ptr1, var1, testStorageClassStorageBuffer,
		spirvWord(4, testOpDecorate), var1, testDecorationDescriptorSet, 0,
		spirvWord(4, testOpDecorate), var1, testDecorationBinding, 0,
		spirvWord(1, testOpFunction),
		spirvWord(2, testOpLoad), var1,
		spirvWord(1, testOpFunctionEnd),
	}
	code := make([]uint32, 0, 5+len(body))
	code = append(code, 0x07230203, 0x00010300, 0, 256, 0)
	code = append(code, body...)
	return code
}
