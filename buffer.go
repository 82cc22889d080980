// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"unsafe"

	"github.com/gogpu/hephaistos/hal"
)

// Buffer is a host-visible staging buffer: a persistently mapped,
// host-coherent byte range. Buffers never bind directly to a shader;
// they are the host side of a retrieve/update copy command (§copy.go).
type Buffer struct {
	ctx *Context
	res hal.Buffer
}

// CreateBuffer allocates a size-byte staging buffer.
func (c *Context) CreateBuffer(size uint64) (*Buffer, error) {
	res, err := c.device.CreateBuffer(size)
	if err != nil {
		return nil, wrapErr("CreateBuffer", "", err)
	}
	c.retain()
	return &Buffer{ctx: c, res: res}, nil
}

// CreateBufferFromBytes allocates a staging buffer sized to data and
// copies data into it.
func (c *Context) CreateBufferFromBytes(data []byte) (*Buffer, error) {
	res, err := c.device.CreateBufferFromBytes(data)
	if err != nil {
		return nil, wrapErr("CreateBufferFromBytes", "", err)
	}
	c.retain()
	return &Buffer{ctx: c, res: res}, nil
}

// Bytes returns the buffer's mapped byte span, valid for its lifetime.
func (b *Buffer) Bytes() []byte { return b.res.Bytes() }

// SizeBytes returns the buffer's size in bytes.
func (b *Buffer) SizeBytes() uint64 { return b.res.SizeBytes() }

// Context returns the owning Context.
func (b *Buffer) Context() *Context { return b.ctx }

// Destroy releases the buffer's storage and the Context's implicit
// reference it held.
func (b *Buffer) Destroy() {
	b.res.Destroy()
	b.ctx.release()
}

// resource exposes the underlying hal.Resource for copy commands.
func (b *Buffer) resource() hal.Resource { return b.res }

// TypedBuffer layers a phantom element type T over a byte-typed Buffer,
// the Go-generic realization of the original's templated Buffer<T>.
type TypedBuffer[T any] struct {
	*Buffer
}

// NewTypedBuffer allocates a staging buffer sized for count elements of T.
func NewTypedBuffer[T any](ctx *Context, count int) (*TypedBuffer[T], error) {
	var zero T
	size := uint64(count) * uint64(unsafe.Sizeof(zero))
	b, err := ctx.CreateBuffer(size)
	if err != nil {
		return nil, err
	}
	return &TypedBuffer[T]{Buffer: b}, nil
}

// NewTypedBufferFromSlice allocates a staging buffer initialized from data.
func NewTypedBufferFromSlice[T any](ctx *Context, data []T) (*TypedBuffer[T], error) {
	b, err := ctx.CreateBufferFromBytes(sliceBytes(data))
	if err != nil {
		return nil, err
	}
	return &TypedBuffer[T]{Buffer: b}, nil
}

// Memory reinterprets the buffer's byte span as a []T.
func (b *TypedBuffer[T]) Memory() []T {
	return bytesAsSlice[T](b.Bytes())
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sz)
}

func bytesAsSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/sz)
}
