// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/hephaistos/hal"
)

// Tensor is a device-local buffer usable as storage, uniform,
// indirect-dispatch, and shader-device-address source. It may also be
// host-mapped, in which case Bytes/Flush/Invalidate are usable.
type Tensor struct {
	ctx *Context
	res hal.Tensor
}

// CreateTensor allocates a size-byte device-local tensor. If mapped is
// true and the device exposes host-visible device-local memory, the
// tensor is additionally host-mapped; check Mapped() to find out.
func (c *Context) CreateTensor(size uint64, mapped bool) (*Tensor, error) {
	res, err := c.device.CreateTensor(size, mapped)
	if err != nil {
		return nil, wrapErr("CreateTensor", "", err)
	}
	c.retain()
	return &Tensor{ctx: c, res: res}, nil
}

// CreateTensorFromBytes allocates a tensor sized to data, mapped for the
// duration of the initial write.
func (c *Context) CreateTensorFromBytes(data []byte, mapped bool) (*Tensor, error) {
	res, err := c.device.CreateTensorFromBytes(data, mapped)
	if err != nil {
		return nil, wrapErr("CreateTensorFromBytes", "", err)
	}
	c.retain()
	return &Tensor{ctx: c, res: res}, nil
}

func (t *Tensor) SizeBytes() uint64 { return t.res.SizeBytes() }

// Address returns the tensor's stable, non-zero device address.
func (t *Tensor) Address() uint64 { return t.res.Address() }

// Mapped reports whether the tensor exposes a host-visible mapping.
func (t *Tensor) Mapped() bool { return t.res.Mapped() }

// Bytes returns the mapped byte span, or nil if Mapped() is false.
func (t *Tensor) Bytes() []byte { return t.res.Bytes() }

// Update copies src into the tensor's mapped memory at offset. Writes
// are not visible to the device until Flush or a copy-command barrier.
func (t *Tensor) Update(src []byte, offset uint64) error {
	b := t.res.Bytes()
	if b == nil {
		return invalidArg("Update", "tensor is not mapped")
	}
	if offset+uint64(len(src)) > uint64(len(b)) {
		return invalidArg("Update", "range out of bounds")
	}
	copy(b[offset:], src)
	return nil
}

// Retrieve copies len(dst) bytes from the tensor's mapped memory at
// offset into dst.
func (t *Tensor) Retrieve(dst []byte, offset uint64) error {
	b := t.res.Bytes()
	if b == nil {
		return invalidArg("Retrieve", "tensor is not mapped")
	}
	if offset+uint64(len(dst)) > uint64(len(b)) {
		return invalidArg("Retrieve", "range out of bounds")
	}
	copy(dst, b[offset:])
	return nil
}

// Flush makes a prior Update visible to the device on non-coherent
// memory; a no-op on coherent memory.
func (t *Tensor) Flush(offset, size uint64) { t.res.Flush(offset, size) }

// Invalidate makes device writes visible to a subsequent Retrieve on
// non-coherent memory; a no-op on coherent memory.
func (t *Tensor) Invalidate(offset, size uint64) { t.res.Invalidate(offset, size) }

// Context returns the owning Context.
func (t *Tensor) Context() *Context { return t.ctx }

// DescriptorWrite implements Parameter: a tensor binds as a uniform or
// storage buffer.
func (t *Tensor) DescriptorWrite(binding uint32, kind ParameterKind) (hal.DescriptorWrite, error) {
	if kind != ParameterUniformBuffer && kind != ParameterStorageBuffer {
		return hal.DescriptorWrite{}, fmt.Errorf("tensor cannot bind to kind %v", kind)
	}
	return hal.DescriptorWrite{
		Binding:      binding,
		Kind:         kind,
		Buffer:       t.res,
		BufferOffset: 0,
		BufferSize:   t.res.SizeBytes(),
	}, nil
}

// Destroy releases the tensor's storage.
func (t *Tensor) Destroy() {
	t.res.Destroy()
	t.ctx.release()
}

// resource exposes the underlying hal.Resource for copy/fill commands.
func (t *Tensor) resource() hal.Resource { return t.res }

// Resource exposes the underlying hal.Resource for packages outside
// hephaistos that need to build their own barriers against a tensor
// (the raytracing subpackage's indirect trace-rays command).
func (t *Tensor) Resource() hal.Resource { return t.res }

// TypedTensor layers a phantom element type T over a byte-typed Tensor,
// the Go-generic realization of the original's templated Tensor<T>.
type TypedTensor[T any] struct {
	*Tensor
}

// NewTypedTensor allocates a device tensor sized for count elements of T.
func NewTypedTensor[T any](ctx *Context, count int, mapped bool) (*TypedTensor[T], error) {
	var zero T
	size := uint64(count) * uint64(unsafe.Sizeof(zero))
	t, err := ctx.CreateTensor(size, mapped)
	if err != nil {
		return nil, err
	}
	return &TypedTensor[T]{Tensor: t}, nil
}

// Memory reinterprets the tensor's mapped byte span as a []T, or nil if
// the tensor is not mapped.
func (t *TypedTensor[T]) Memory() []T {
	return bytesAsSlice[T](t.Bytes())
}
