// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/hephaistos/hal"
)

// ContextOptions configures CreateContext / NewContextForDevice.
type ContextOptions struct {
	// Device explicitly selects the backend device. If nil, CreateContext
	// auto-selects: first discrete device satisfying every requested
	// extension, else the first device that merely satisfies them, else
	// ErrNotAvailable.
	Device hal.Device
	// Extensions lists the capability modules the caller requires.
	Extensions []*Extension
}

// Context is the shared root owning the logical device, queue,
// command-pool caches, and the set of enabled extensions. It is
// reference-counted: every resource created from it holds an implicit
// reference (acquired by the creating method via retain, released by the resource's
// Destroy), so the underlying device is torn down only once the caller
// has called Close and every resource it created has been destroyed.
type Context struct {
	device hal.Device

	extMu      sync.RWMutex
	extensions map[string]*Extension

	subroutinePool hal.CommandPool
	oneShotPool    hal.CommandPool
	oneShotBuf     hal.CommandBuffer
	oneShotFence   hal.Fence

	poolCacheMu sync.Mutex
	poolCache   []hal.CommandPool // LIFO, popped/pushed by SequenceBuilder

	debugOpts *DebugOptions

	refCount atomic.Int64
	closed   atomic.Bool
}

// IsAvailable reports whether a usable backend device can be reached at
// all (the platform's graphics driver/loader is present).
func IsAvailable() bool {
	return vulkanAvailable()
}

// EnumerateDevices lists every device the platform backend can see.
func EnumerateDevices() ([]hal.Device, error) {
	return vulkanEnumerate()
}

// GetDeviceInfo returns the summary info for a device obtained from
// EnumerateDevices or from a live Context.
func GetDeviceInfo(d hal.Device) DeviceInfo { return d.Info() }

func deviceSuitable(d hal.Device, exts []*Extension) bool {
	for _, e := range exts {
		if !e.satisfiedBy(d.SupportsCapabilities) {
			return false
		}
	}
	return true
}

// CreateContext selects a device (explicit or auto-selected) and builds
// a Context around it, failing if the platform is unavailable, no
// device is suitable, or a requested extension cannot be satisfied.
func CreateContext(opts ContextOptions) (*Context, error) {
	dev := opts.Device
	if dev == nil {
		devices, err := EnumerateDevices()
		if err != nil {
			return nil, wrapErr("CreateContext", "enumerate devices", err)
		}
		if len(devices) == 0 {
			return nil, wrapErr("CreateContext", "no devices", ErrNotAvailable)
		}
		var fallback hal.Device
		for _, d := range devices {
			if !deviceSuitable(d, opts.Extensions) {
				continue
			}
			if d.Info().IsDiscrete {
				dev = d
				break
			}
			if fallback == nil {
				fallback = d
			}
		}
		if dev == nil {
			dev = fallback
		}
		if dev == nil {
			return nil, wrapErr("CreateContext", "no suitable device", ErrNotAvailable)
		}
	} else if !deviceSuitable(dev, opts.Extensions) {
		return nil, wrapErr("CreateContext", "explicit device missing required extension", ErrExtensionUnavailable)
	}
	return NewContextForDevice(dev, opts)
}

// NewContextForDevice builds a Context directly around an already-chosen
// device, skipping auto-selection. Used by tests to target the
// deterministic software backend, and by callers that performed their
// own device selection via EnumerateDevices.
func NewContextForDevice(dev hal.Device, opts ContextOptions) (*Context, error) {
	for _, e := range opts.Extensions {
		if !e.satisfiedBy(dev.SupportsCapabilities) {
			return nil, wrapErr("NewContextForDevice", e.Name, ErrExtensionUnavailable)
		}
	}

	subPool, err := dev.NewCommandPool()
	if err != nil {
		return nil, wrapErr("NewContextForDevice", "subroutine pool", err)
	}
	oneShotPool, err := dev.NewCommandPool()
	if err != nil {
		return nil, wrapErr("NewContextForDevice", "one-shot pool", err)
	}
	oneShotBuf, err := oneShotPool.Acquire()
	if err != nil {
		return nil, wrapErr("NewContextForDevice", "one-shot command buffer", err)
	}
	oneShotFence, err := dev.NewFence()
	if err != nil {
		return nil, wrapErr("NewContextForDevice", "one-shot fence", err)
	}

	ctx := &Context{
		device:         dev,
		extensions:     make(map[string]*Extension, len(opts.Extensions)),
		subroutinePool: subPool,
		oneShotPool:    oneShotPool,
		oneShotBuf:     oneShotBuf,
		oneShotFence:   oneShotFence,
	}
	ctx.refCount.Store(1)
	for _, e := range opts.Extensions {
		ctx.extensions[e.Name] = e
		if e.Finalize != nil {
			e.Finalize(ctx)
		}
	}
	return ctx, nil
}

// Device returns the backing hal.Device.
func (c *Context) Device() hal.Device { return c.device }

// HasExtension reports whether name was enabled at creation.
func (c *Context) HasExtension(name string) bool {
	c.extMu.RLock()
	defer c.extMu.RUnlock()
	_, ok := c.extensions[name]
	return ok
}

func (c *Context) retain() { c.refCount.Add(1) }

func (c *Context) release() {
	if c.refCount.Add(-1) == 0 {
		c.device.Destroy()
	}
}

// TrackResource increments the context's resource reference count and
// returns a function that decrements it. Used by packages outside
// hephaistos that create their own resources against a Context's
// hal.Device (the raytracing subpackage's acceleration structures and
// pipelines); every resource constructed from a Context must hold one
// of these for its lifetime so the device is not torn down early.
func (c *Context) TrackResource() (release func()) {
	c.retain()
	return c.release
}

// Close drops the caller's reference to the context. If resources
// created from it are still outstanding, the underlying device is torn
// down only once the last of them is destroyed.
func (c *Context) Close() error {
	if c.closed.Swap(true) {
		return wrapErr("Close", "", fmt.Errorf("context already closed"))
	}
	c.subroutinePool.Destroy()
	c.oneShotBuf.Destroy()
	c.oneShotPool.Destroy()
	c.oneShotFence.Destroy()
	c.poolCacheMu.Lock()
	for _, p := range c.poolCache {
		p.Destroy()
	}
	c.poolCache = nil
	c.poolCacheMu.Unlock()
	c.release()
	return nil
}

// acquireSequencePool pops a pool from the LIFO cache, creating one if
// the cache is empty.
func (c *Context) acquireSequencePool() (hal.CommandPool, error) {
	c.poolCacheMu.Lock()
	if n := len(c.poolCache); n > 0 {
		p := c.poolCache[n-1]
		c.poolCache = c.poolCache[:n-1]
		c.poolCacheMu.Unlock()
		return p, nil
	}
	c.poolCacheMu.Unlock()
	return c.device.NewCommandPool()
}

// releaseSequencePool pushes a pool back onto the LIFO cache for reuse.
func (c *Context) releaseSequencePool(p hal.CommandPool) {
	c.poolCacheMu.Lock()
	c.poolCache = append(c.poolCache, p)
	c.poolCacheMu.Unlock()
}
