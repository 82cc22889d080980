// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"sync"

	"github.com/gogpu/hephaistos/hal"
)

type byteAccessor interface {
	Bytes() []byte
}

func bytesOf(r hal.Resource) []byte {
	if t, ok := r.(*tensor); ok {
		return t.data // device-side storage, whether or not host-mapped
	}
	if ba, ok := r.(byteAccessor); ok {
		return ba.Bytes()
	}
	return nil
}

// commandPool allocates commandBuffers; the software backend needs no
// real pooling, so Acquire simply constructs a fresh one each time. The
// root package's own LIFO cache still governs how many pools it keeps
// around per context.
type commandPool struct{ device *Device }

func (p *commandPool) Destroy() {}

func (p *commandPool) Acquire() (hal.CommandBuffer, error) {
	return &commandBuffer{device: p.device}, nil
}

func (d *Device) NewCommandPool() (hal.CommandPool, error) {
	return &commandPool{device: d}, nil
}

type op func()

// commandBuffer records a list of closures and replays them in order
// when the queue executes it.
type commandBuffer struct {
	device *Device
	ops    []op
	bound  struct {
		compute    hal.ComputePipeline
		rayTracing hal.RayTracingPipelineHandle
	}
}

func (c *commandBuffer) Destroy() {}
func (c *commandBuffer) Begin() error {
	c.ops = c.ops[:0]
	return nil
}
func (c *commandBuffer) End() error { return nil }

func (c *commandBuffer) replay() {
	for _, o := range c.ops {
		o()
	}
}

func (c *commandBuffer) PipelineBarrier(buffers []hal.BufferBarrier, images []hal.ImageBarrier, global []hal.MemoryBarrier) {
	// The software backend has no hazard tracker to synchronize against;
	// barriers are a real-hardware concern only. Recorded as a no-op so
	// call sites (copy.go, fill.go) stay backend-agnostic.
}

func (c *commandBuffer) CopyBufferToBuffer(src, dst hal.Resource, region hal.BufferCopyRegion) {
	c.ops = append(c.ops, func() {
		s, d := bytesOf(src), bytesOf(dst)
		copy(d[region.DstOffset:region.DstOffset+region.Size], s[region.SrcOffset:region.SrcOffset+region.Size])
	})
}

func (c *commandBuffer) FillBuffer(dst hal.Resource, offset, size uint64, word uint32) {
	c.ops = append(c.ops, func() {
		d := bytesOf(dst)
		if size == ^uint64(0) {
			size = uint64(len(d)) - offset
		}
		var w [4]byte
		w[0] = byte(word)
		w[1] = byte(word >> 8)
		w[2] = byte(word >> 16)
		w[3] = byte(word >> 24)
		for i := uint64(0); i < size; i += 4 {
			copy(d[offset+i:offset+i+4], w[:])
		}
	})
}

func (c *commandBuffer) CopyBufferToImage(src, dst hal.Resource, dstSizeBytes uint64) {
	c.ops = append(c.ops, func() {
		s, d := bytesOf(src), bytesOf(dst)
		copy(d[:dstSizeBytes], s[:dstSizeBytes])
	})
}

func (c *commandBuffer) CopyImageToBuffer(src, dst hal.Resource, srcSizeBytes uint64) {
	c.ops = append(c.ops, func() {
		s, d := bytesOf(src), bytesOf(dst)
		copy(d[:srcSizeBytes], s[:srcSizeBytes])
	})
}

func (c *commandBuffer) BindComputePipeline(pipeline hal.ComputePipeline) {
	c.bound.compute = pipeline
}

func (c *commandBuffer) PushDescriptorSet(layout hal.PipelineLayout, writes []hal.DescriptorWrite) {
	// No shader execution happens in software, so descriptor writes have
	// nothing to feed; recorded only so callers exercise the same code
	// path a real backend would.
}

func (c *commandBuffer) PushConstants(layout hal.PipelineLayout, stages hal.ShaderStageMask, data []byte) {}

func (c *commandBuffer) Dispatch(x, y, z uint32) {
	// No SPIR-V interpreter backs this; see package doc.
}

func (c *commandBuffer) DispatchIndirect(buf hal.Resource, offset uint64) {}

func (c *commandBuffer) BindRayTracingPipeline(pipeline hal.RayTracingPipelineHandle) {
	c.bound.rayTracing = pipeline
}

func (c *commandBuffer) TraceRays(pipeline hal.RayTracingPipelineHandle, bindings hal.ShaderBindingRegions, x, y, z uint32) {
}

func (c *commandBuffer) TraceRaysIndirect(pipeline hal.RayTracingPipelineHandle, bindings hal.ShaderBindingRegions, indirectAddr uint64) {
}

func (c *commandBuffer) BuildAccelerationStructures(builds []hal.AccelBuild) {
	// Structures are already fully built at BuildBLAS/BuildTLAS call
	// time in this backend; recording exists purely for parity with the
	// real command-stream shape.
}

func (c *commandBuffer) WriteTimestamp(pool hal.QueryPool, index uint32, stage hal.PipelineStage) {
	c.ops = append(c.ops, func() {
		qp := pool.(*queryPool)
		qp.mu.Lock()
		qp.values[index] = qp.tick
		qp.tick++
		qp.available[index] = true
		qp.mu.Unlock()
	})
}

// Queue executes submitted batches synchronously and in order. Because
// execution is immediate, a batch's Wait value is always already
// satisfied by the time Submit reaches it in well-formed call sequences;
// Submit returns an error instead of blocking forever if it is not.
type Queue struct{ device *Device }

func (q *Queue) Submit(batches []hal.SubmitBatch) error {
	for _, b := range batches {
		if b.Wait != nil {
			cur, _ := b.Wait.Value()
			if cur < b.WaitValue {
				return fmt.Errorf("hephaistos/software: queue submit: wait value %d not yet reached (have %d)", b.WaitValue, cur)
			}
		}
		for _, cmd := range b.CommandBuffers {
			cmd.(*commandBuffer).replay()
		}
		if b.Signal != nil {
			if err := b.Signal.Signal(b.SignalValue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (q *Queue) SubmitOneShot(cmd hal.CommandBuffer, fence hal.Fence) error {
	cmd.(*commandBuffer).replay()
	if f, ok := fence.(*swFence); ok {
		f.mu.Lock()
		f.signaled = true
		f.mu.Unlock()
	}
	return nil
}

func (d *Device) NewTimelineSemaphore(initial uint64) (hal.TimelineSemaphore, error) {
	d.mu.Lock()
	id := d.nextAddr
	d.nextAddr++
	d.mu.Unlock()
	return &timelineSemaphore{id: id, value: initial}, nil
}

type timelineSemaphore struct {
	mu    sync.Mutex
	id    uint64
	value uint64
}

func (t *timelineSemaphore) Destroy() {}
func (t *timelineSemaphore) ID() uint64 { return t.id }

func (t *timelineSemaphore) Value() (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, nil
}

func (t *timelineSemaphore) Signal(value uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if value < t.value {
		return fmt.Errorf("hephaistos/software: timeline %d: value %d is less than current %d", t.id, value, t.value)
	}
	t.value = value
	return nil
}

func (t *timelineSemaphore) Wait(value uint64, timeoutNs uint64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value >= value, nil
}

type swFence struct {
	mu       sync.Mutex
	signaled bool
}

func (f *swFence) Destroy() {}
func (f *swFence) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signaled = false
	return nil
}
func (f *swFence) Wait(timeoutNs uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled, nil
}

func (d *Device) NewFence() (hal.Fence, error) { return &swFence{}, nil }

type queryPool struct {
	mu        sync.Mutex
	values    []uint64
	available []bool
	tick      uint64
}

func (p *queryPool) Destroy()      {}
func (p *queryPool) Count() uint32 { return uint32(len(p.values)) }

func (p *queryPool) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.values {
		p.values[i] = 0
		p.available[i] = false
	}
	p.tick = 0
	return nil
}

func (p *queryPool) Results(wait bool) ([]uint64, []bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ticks := make([]uint64, len(p.values))
	avail := make([]bool, len(p.available))
	copy(ticks, p.values)
	copy(avail, p.available)
	return ticks, avail, nil
}

func (d *Device) NewQueryPool(count uint32) (hal.QueryPool, error) {
	return &queryPool{values: make([]uint64, count), available: make([]bool, count)}, nil
}
