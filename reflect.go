// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"
	"sort"

	"github.com/gogpu/hephaistos/hal"
)

// SPIR-V opcodes and enum values this walker understands. Only the
// subset needed to derive descriptor bindings, push-constant ranges,
// specialization-constant ids and local workgroup size is implemented;
// unrecognized instructions are skipped by their encoded word count.
const (
	spvMagicNumber = 0x07230203

	opName                 = 5
	opEntryPoint           = 15
	opExecutionMode        = 16
	opTypeInt              = 21
	opTypeFloat            = 22
	opTypeImage            = 25
	opTypeSampledImage     = 27
	opTypeArray            = 28
	opTypeRuntimeArray     = 29
	opTypeStruct           = 30
	opTypePointer          = 32
	opConstant             = 43
	opSpecConstantTrue     = 48
	opSpecConstantFalse    = 49
	opSpecConstant         = 50
	opSpecConstantComposite = 51
	opSpecConstantOp       = 52
	opFunction             = 54
	opFunctionEnd          = 56
	opVariable             = 59
	opDecorate             = 71
	opMemberDecorate       = 72
	opTypeAccelerationStructureKHR = 5341

	decorationSpecID       = 1
	decorationBlock        = 2
	decorationBufferBlock  = 3
	decorationBinding      = 33
	decorationDescriptorSet = 34

	executionModeLocalSize = 17

	storageClassUniformConstant = 0
	storageClassUniform         = 2
	storageClassPushConstant    = 9
	storageClassStorageBuffer   = 12
)

type spirvTypeInfo struct {
	isImage, isSampledImage, isStruct, isArray, isRuntimeArray, isPointer, isAccelStruct bool
	imageFormat  uint32
	imageDim     uint32
	elementType  uint32
	length       uint32
	storageClass uint32
	pointee      uint32
	decoratedBlk bool
}

// Reflection is the merged result of walking one or more SPIR-V modules
// through a ReflectionBuilder: the deduplicated binding table, the
// merged push-constant range, the union of specialization-constant ids,
// and the local workgroup size from the last module reflected that
// declares one.
type Reflection struct {
	LocalSize          [3]uint32
	Bindings           []BindingTraits
	PushConstantSize   uint32
	PushConstantStages hal.ShaderStageMask
	SpecializationIDs  []uint32
}

// SpecializationSlots returns the sorted specialization-constant ids that
// fit in a blobSize-byte specialization buffer (4 bytes per slot,
// tightly packed); a shorter blob overrides fewer constants, the rest
// keep their shader defaults.
func (r *Reflection) SpecializationSlots(blobSize int) []uint32 {
	n := blobSize / 4
	if n > len(r.SpecializationIDs) {
		n = len(r.SpecializationIDs)
	}
	return r.SpecializationIDs[:n]
}

// ReflectionBuilder accumulates bindings, push-constant range, and
// specialization ids across one or more Add calls, matching the
// original's incremental add()-per-shader reflection builder: Program
// calls Add once (one compute shader); a ray-tracing pipeline calls Add
// once per shader variant before Finish.
type ReflectionBuilder struct {
	localSize    [3]uint32
	haveLocalSize bool
	order        []uint32
	byIndex      map[uint32]BindingTraits
	pushSize     uint32
	pushStages   hal.ShaderStageMask
	specIDs      map[uint32]bool
}

func NewReflectionBuilder() *ReflectionBuilder {
	return &ReflectionBuilder{byIndex: make(map[uint32]BindingTraits), specIDs: make(map[uint32]bool)}
}

// Add walks one compiled SPIR-V module, merging its accessed bindings,
// push-constant range and specialization ids into the builder. Bindings
// with the same index across calls must agree on kind/count/image
// traits or Add returns an error naming the conflicting binding.
func (b *ReflectionBuilder) Add(code []uint32, stage hal.ShaderStageMask) error {
	if len(code) < 5 || code[0] != spvMagicNumber {
		return invalidArg("ReflectionBuilder.Add", "not a valid SPIR-V module")
	}

	names := make(map[uint32]string)
	types := make(map[uint32]spirvTypeInfo)
	constants := make(map[uint32]uint32)
	decorations := make(map[uint32]map[uint32][]uint32)
	type varInfo struct{ id, ptrType uint32 }
	var vars []varInfo
	referenced := make(map[uint32]bool)

	insideFunction := false
	seenDescriptorSets := make(map[uint32]bool)
	sawLocalSize := false

	words := code[5:]
	for i := 0; i < len(words); {
		head := words[i]
		wordCount := int(head >> 16)
		opcode := head & 0xFFFF
		if wordCount == 0 || i+wordCount > len(words) {
			return invalidArg("ReflectionBuilder.Add", "truncated instruction stream")
		}
		ops := words[i+1 : i+wordCount]

		switch opcode {
		case opFunction:
			insideFunction = true
		case opFunctionEnd:
			insideFunction = false
		case opName:
			if len(ops) >= 1 {
				names[ops[0]] = decodeSPIRVString(ops[1:])
			}
		case opExecutionMode:
			if len(ops) >= 2 && ops[1] == executionModeLocalSize && len(ops) >= 5 {
				b.localSize = [3]uint32{ops[2], ops[3], ops[4]}
				sawLocalSize = true
			}
		case opDecorate:
			if len(ops) >= 2 {
				id := ops[0]
				dec := ops[1]
				if decorations[id] == nil {
					decorations[id] = make(map[uint32][]uint32)
				}
				decorations[id][dec] = append([]uint32{}, ops[2:]...)
			}
		case opTypeInt, opTypeFloat:
			// tracked only so OpTypeArray's element-type lookups resolve.
		case opTypeImage:
			if len(ops) >= 3 {
				t := types[ops[0]]
				t.isImage = true
				t.imageDim = ops[2]
				if len(ops) >= 8 {
					t.imageFormat = ops[7]
				}
				types[ops[0]] = t
			}
		case opTypeSampledImage:
			if len(ops) >= 2 {
				t := types[ops[0]]
				t.isSampledImage = true
				t.elementType = ops[1]
				types[ops[0]] = t
			}
		case opTypeAccelerationStructureKHR:
			if len(ops) >= 1 {
				t := types[ops[0]]
				t.isAccelStruct = true
				types[ops[0]] = t
			}
		case opTypeArray:
			if len(ops) >= 3 {
				t := types[ops[0]]
				t.isArray = true
				t.elementType = ops[1]
				t.length = constants[ops[2]]
				types[ops[0]] = t
			}
		case opTypeRuntimeArray:
			if len(ops) >= 2 {
				t := types[ops[0]]
				t.isRuntimeArray = true
				t.elementType = ops[1]
				types[ops[0]] = t
			}
		case opTypeStruct:
			if len(ops) >= 1 {
				t := types[ops[0]]
				t.isStruct = true
				if d, ok := decorations[ops[0]][decorationBlock]; ok {
					_ = d
					t.decoratedBlk = true
				}
				if _, ok := decorations[ops[0]][decorationBufferBlock]; ok {
					t.decoratedBlk = true
				}
				types[ops[0]] = t
			}
		case opTypePointer:
			if len(ops) >= 3 {
				t := types[ops[0]]
				t.isPointer = true
				t.storageClass = ops[1]
				t.pointee = ops[2]
				types[ops[0]] = t
			}
		case opConstant:
			if len(ops) >= 3 {
				constants[ops[1]] = ops[2]
			}
		case opSpecConstant, opSpecConstantTrue, opSpecConstantFalse, opSpecConstantComposite, opSpecConstantOp:
			if len(ops) >= 2 {
				if d, ok := decorations[ops[1]][decorationSpecID]; ok && len(d) >= 1 {
					b.specIDs[d[0]] = true
				}
			}
		case opVariable:
			if len(ops) >= 3 {
				vars = append(vars, varInfo{id: ops[1], ptrType: ops[0]})
			}
		}

		if insideFunction {
			for _, w := range ops {
				referenced[w] = true
			}
		}
		i += wordCount
	}
	if sawLocalSize {
		b.haveLocalSize = true
	}

	for _, v := range vars {
		ptrType, ok := types[v.ptrType]
		if !ok || !ptrType.isPointer {
			continue
		}
		sc := ptrType.storageClass

		if sc == storageClassPushConstant {
			pointee := types[ptrType.pointee]
			size := estimateStructSize(pointee, types, constants)
			b.pushStages |= stage
			if size > b.pushSize {
				b.pushSize = size
			}
			continue
		}
		if sc != storageClassUniformConstant && sc != storageClassUniform && sc != storageClassStorageBuffer {
			continue
		}
		if !referenced[v.id] {
			continue // unaccessed binding, skipped per reflection contract
		}
		dec := decorations[v.id]
		bindingIdx, hasBinding := firstOperand(dec[decorationBinding])
		setIdx, hasSet := firstOperand(dec[decorationDescriptorSet])
		if !hasBinding {
			continue
		}
		if hasSet {
			seenDescriptorSets[setIdx] = true
		}

		trait, err := classifyBinding(v.id, ptrType, types, names)
		if err != nil {
			return wrapErr("ReflectionBuilder.Add", names[v.id], err)
		}
		trait.Index = bindingIdx

		if existing, ok := b.byIndex[bindingIdx]; ok {
			if !existing.Equal(trait) {
				return invalidArg("ReflectionBuilder.Add", fmt.Sprintf("binding %d redeclared with incompatible traits", bindingIdx))
			}
			continue
		}
		b.byIndex[bindingIdx] = trait
		b.order = append(b.order, bindingIdx)
	}

	if len(seenDescriptorSets) > 1 {
		return invalidArg("ReflectionBuilder.Add", "shader declares more than one descriptor set")
	}
	return nil
}

// Finish returns the accumulated reflection. Bindings are sorted by
// ascending binding index.
func (b *ReflectionBuilder) Finish() *Reflection {
	bindings := make([]BindingTraits, len(b.order))
	for i, idx := range b.order {
		bindings[i] = b.byIndex[idx]
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Index < bindings[j].Index })

	ids := make([]uint32, 0, len(b.specIDs))
	for id := range b.specIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return &Reflection{
		LocalSize:          b.localSize,
		Bindings:           bindings,
		PushConstantSize:   b.pushSize,
		PushConstantStages: b.pushStages,
		SpecializationIDs:  ids,
	}
}

func firstOperand(ops []uint32) (uint32, bool) {
	if len(ops) == 0 {
		return 0, false
	}
	return ops[0], true
}

func decodeSPIRVString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		for s := 0; s < 4; s++ {
			b := byte(w >> (8 * s))
			if b == 0 {
				return string(buf)
			}
			buf = append(buf, b)
		}
	}
	return string(buf)
}

func estimateStructSize(t spirvTypeInfo, types map[uint32]spirvTypeInfo, constants map[uint32]uint32) uint32 {
	// Without full member-offset decoration walking, approximate with a
	// conservative fixed block size; real size only affects how much of
	// the caller-supplied push-constant bytes get copied, never
	// correctness of which stages declare the range.
	if t.isArray {
		return t.length * 4
	}
	return 128
}

func classifyBinding(id uint32, ptrType spirvTypeInfo, types map[uint32]spirvTypeInfo, names map[uint32]string) (BindingTraits, error) {
	name := names[id]
	pointee := types[ptrType.pointee]

	count := uint32(1)
	target := pointee
	if pointee.isArray {
		count = pointee.length
		target = types[pointee.elementType]
	} else if pointee.isRuntimeArray {
		count = 0
		target = types[pointee.elementType]
	}

	switch {
	case target.isAccelStruct:
		return BindingTraits{Name: name, Kind: ParameterAccelerationStruct, Count: count}, nil
	case target.isSampledImage:
		img := types[target.elementType]
		return BindingTraits{Name: name, Kind: ParameterCombinedImageSampler, Count: count,
			ImageTraits: &ImageBindingTraits{Format: castSPIRVImageFormat(img.imageFormat), Dims: castSPIRVDim(img.imageDim)}}, nil
	case target.isImage:
		return BindingTraits{Name: name, Kind: ParameterStorageImage, Count: count,
			ImageTraits: &ImageBindingTraits{Format: castSPIRVImageFormat(target.imageFormat), Dims: castSPIRVDim(target.imageDim)}}, nil
	case target.isStruct && target.decoratedBlk:
		if ptrType.storageClass == storageClassStorageBuffer {
			return BindingTraits{Name: name, Kind: ParameterStorageBuffer, Count: count}, nil
		}
		return BindingTraits{Name: name, Kind: ParameterUniformBuffer, Count: count}, nil
	default:
		return BindingTraits{}, fmt.Errorf("binding %q has an unrecognized descriptor type", name)
	}
}

func castSPIRVDim(dim uint32) uint8 {
	switch dim {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 3
	default:
		return 0
	}
}

func castSPIRVImageFormat(f uint32) ImageFormat {
	switch f {
	case 1:
		return ImageFormatR32G32B32A32Sfloat
	case 21:
		return ImageFormatR32G32B32A32Sint
	case 30:
		return ImageFormatR32G32B32A32Uint
	case 6:
		return ImageFormatR32G32Sfloat
	case 25:
		return ImageFormatR32G32Sint
	case 35:
		return ImageFormatR32G32Uint
	case 3:
		return ImageFormatR32Sfloat
	case 24:
		return ImageFormatR32Sint
	case 33:
		return ImageFormatR32Uint
	case 22:
		return ImageFormatR16G16B16A16Sint
	case 31:
		return ImageFormatR16G16B16A16Uint
	case 4:
		return ImageFormatR8G8B8A8Unorm
	case 5:
		return ImageFormatR8G8B8A8Snorm
	case 23:
		return ImageFormatR8G8B8A8Sint
	case 32:
		return ImageFormatR8G8B8A8Uint
	default:
		return ImageFormatUnknown
	}
}
