// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package software

import (
	"sync"

	"github.com/gogpu/hephaistos/hal"
)

// Device is an in-memory stand-in for a Vulkan-like compute device.
type Device struct {
	info hal.DeviceInfo

	mu       sync.Mutex
	nextAddr uint64
	byAddr   map[uint64]any

	queue *Queue
}

// NewDevice constructs a software device. name/discrete let tests
// exercise device-enumeration and auto-selection logic without a real
// adapter list.
func NewDevice(name string, discrete bool) *Device {
	d := &Device{
		info:     hal.DeviceInfo{Name: name, IsDiscrete: discrete},
		nextAddr: 1,
		byAddr:   make(map[uint64]any),
	}
	d.queue = &Queue{device: d}
	return d
}

func (d *Device) allocAddr(v any) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	addr := d.nextAddr
	d.nextAddr++
	d.byAddr[addr] = v
	return addr
}

func (d *Device) lookup(addr uint64) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byAddr[addr]
}

func (d *Device) Info() hal.DeviceInfo { return d.info }
func (d *Device) Queue() hal.Queue     { return d.queue }

// SupportsCapabilities: the software backend claims every capability name
// so extensions can always be enabled in tests. Individual feature
// queries below (RayTracingSupported, DeviceFaultSupported, ...) are the
// ones actual extension code should branch on.
func (d *Device) SupportsCapabilities(names []string) bool { return true }

func (d *Device) SupportedTypes() hal.TypeSupport {
	return hal.TypeSupport{Float64: true, Float16: true, Int64: true, Int16: true, Int8: true}
}

func (d *Device) SubgroupProperties() hal.SubgroupProperties {
	return hal.SubgroupProperties{
		SubgroupSize: 32, BasicSupport: true, VoteSupport: true,
		ArithmeticSupport: true, BallotSupport: true, ShuffleSupport: true,
		ShuffleRelativeSupport: true, ShuffleClusteredSupport: true, QuadSupport: true,
	}
}

func (d *Device) RayTracingSupported() bool { return true }

func (d *Device) RayTracingFeatures() hal.RayTracingFeatures {
	return hal.RayTracingFeatures{Query: true, Pipeline: true, IndirectDispatch: true}
}

func (d *Device) RayTracingProperties() hal.RayTracingProperties {
	return hal.RayTracingProperties{
		MaxGeometryCount: 1 << 20, MaxInstanceCount: 1 << 20, MaxPrimitiveCount: 1 << 28,
		MaxAccelerationStructures: 1 << 16, MaxRayRecursionDepth: 31,
		MaxRayDispatchCount: 1 << 30, MaxShaderRecordSize: 4096, CanReorder: false,
	}
}

func (d *Device) DeviceFaultSupported() bool { return true }

func (d *Device) DeviceFaultInfo() (hal.DeviceFaultInfo, bool) { return hal.DeviceFaultInfo{}, false }

func (d *Device) TimestampPeriod() float64       { return 1.0 }
func (d *Device) TimestampValidBits() uint32     { return 64 }
func (d *Device) NonCoherentAtomSize() uint64    { return 64 }
func (d *Device) ShaderGroupHandleAlignment() uint32 { return 32 }
func (d *Device) ShaderGroupBaseAlignment() uint32   { return 64 }

const shaderGroupHandleSize = 32

func (d *Device) Destroy() {}
