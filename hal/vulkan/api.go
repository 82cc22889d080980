// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vulkan

import (
	"fmt"
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/gogpu/hephaistos/hal"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

// Instance wraps a VkInstance. Hephaistos never exposes Instance directly;
// it exists only to back the Device values EnumerateDevices returns.
type Instance struct {
	handle    vk.Instance
	cmds      vk.Commands
	messenger vk.DebugUtilsMessengerEXT
}

// IsAvailable reports whether the Vulkan loader can be initialized on this
// machine, without creating an instance or opening a device.
func IsAvailable() bool {
	return vk.Init() == nil
}

// EnumerateDevices opens the Vulkan loader, creates a headless instance, and
// returns one hal.Device per physical device the driver reports. Every
// returned Device already owns a logical VkDevice and queue; callers that do
// not use a given entry should call Destroy on it.
func EnumerateDevices() ([]hal.Device, error) {
	inst, err := createInstance()
	if err != nil {
		return nil, err
	}

	var count uint32
	vkEnumeratePhysicalDevices(inst, &count, nil)
	if count == 0 {
		inst.Destroy()
		return nil, fmt.Errorf("vulkan: no physical devices found")
	}

	physicalDevices := make([]vk.PhysicalDevice, count)
	vkEnumeratePhysicalDevices(inst, &count, &physicalDevices[0])

	devices := make([]hal.Device, 0, count)
	for _, pd := range physicalDevices {
		var props vk.PhysicalDeviceProperties
		vkGetPhysicalDeviceProperties(inst, pd, &props)
		var features vk.PhysicalDeviceFeatures
		vkGetPhysicalDeviceFeatures(inst, pd, &features)

		dev, err := openDevice(inst, pd, props, features)
		if err != nil {
			hal.Logger().Warn("vulkan: skipping physical device", "name", cStringToGo(props.DeviceName[:]), "error", err)
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		inst.Destroy()
		return nil, fmt.Errorf("vulkan: no physical device could be opened")
	}
	return devices, nil
}

// createInstance builds a headless (no surface extensions) Vulkan instance
// targeting Vulkan 1.2, the floor for core timeline semaphores.
func createInstance() (*Instance, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: failed to initialize loader: %w", err)
	}

	var cmds vk.Commands
	cmds.LoadGlobal()

	appName := []byte("hephaistos\x00")
	engineName := []byte("hephaistos\x00")

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   uintptr(unsafe.Pointer(&appName[0])),
		ApplicationVersion: vkMakeVersion(1, 0, 0),
		PEngineName:        uintptr(unsafe.Pointer(&engineName[0])),
		EngineVersion:      vkMakeVersion(1, 0, 0),
		ApiVersion:         vkMakeVersion(1, 2, 0),
	}

	var extensions []string
	var layers []string
	debug := os.Getenv("HEPHAISTOS_VK_DEBUG") != ""
	if debug {
		extensions = append(extensions, "VK_EXT_debug_utils\x00")
		layers = append(layers, "VK_LAYER_KHRONOS_validation\x00")
	}

	extensionPtrs := make([]uintptr, len(extensions))
	for i, ext := range extensions {
		extensionPtrs[i] = uintptr(unsafe.Pointer(unsafe.StringData(ext)))
	}
	layerPtrs := make([]uintptr, len(layers))
	for i, layer := range layers {
		layerPtrs[i] = uintptr(unsafe.Pointer(unsafe.StringData(layer)))
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                 vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:      &appInfo,
		EnabledExtensionCount: uint32(len(extensions)),
		EnabledLayerCount:     uint32(len(layers)),
	}
	if len(extensionPtrs) > 0 {
		createInfo.PpEnabledExtensionNames = uintptr(unsafe.Pointer(&extensionPtrs[0]))
	}
	if len(layerPtrs) > 0 {
		createInfo.PpEnabledLayerNames = uintptr(unsafe.Pointer(&layerPtrs[0]))
	}

	var handle vk.Instance
	result := vkCreateInstance(&cmds, &createInfo, nil, &handle)
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateInstance failed: %d", result)
	}
	cmds.LoadInstance(handle)
	vk.SetDeviceProcAddr(handle)

	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	runtime.KeepAlive(extensions)
	runtime.KeepAlive(layers)
	runtime.KeepAlive(extensionPtrs)
	runtime.KeepAlive(layerPtrs)

	inst := &Instance{handle: handle, cmds: cmds}
	if debug {
		inst.messenger = createDebugMessenger(inst)
	}
	return inst, nil
}

// Destroy releases the instance and its debug messenger, if any.
func (i *Instance) Destroy() {
	if i.messenger != 0 {
		destroyDebugMessenger(i, i.messenger)
		i.messenger = 0
	}
	if i.handle != 0 {
		vkDestroyInstance(i, i.handle, nil)
		i.handle = 0
	}
}

// Helper functions

func vkMakeVersion(major, minor, patch uint32) uint32 {
	return (major << 22) | (minor << 12) | patch
}

func vkVersionMajor(version uint32) uint32 { return version >> 22 }
func vkVersionMinor(version uint32) uint32 { return (version >> 12) & 0x3FF }
func vkVersionPatch(version uint32) uint32 { return version & 0xFFF }

func cStringToGo(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Vulkan function wrappers using syscall.SyscallN

func vkCreateInstance(cmds *vk.Commands, createInfo *vk.InstanceCreateInfo, allocator unsafe.Pointer, instance *vk.Instance) vk.Result {
	r, _, _ := syscall.SyscallN(cmds.CreateInstance(),
		uintptr(unsafe.Pointer(createInfo)),
		uintptr(allocator),
		uintptr(unsafe.Pointer(instance)))
	return vk.Result(r)
}

func vkDestroyInstance(i *Instance, instance vk.Instance, allocator unsafe.Pointer) {
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(i.cmds.DestroyInstance(), uintptr(instance), uintptr(allocator))
}

//nolint:unparam // result is used in caller but linter doesn't see it
func vkEnumeratePhysicalDevices(i *Instance, count *uint32, devices *vk.PhysicalDevice) vk.Result {
	r, _, _ := syscall.SyscallN(i.cmds.EnumeratePhysicalDevices(),
		uintptr(i.handle),
		uintptr(unsafe.Pointer(count)),
		uintptr(unsafe.Pointer(devices)))
	return vk.Result(r)
}

func vkGetPhysicalDeviceProperties(i *Instance, device vk.PhysicalDevice, props *vk.PhysicalDeviceProperties) {
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(i.cmds.GetPhysicalDeviceProperties(), uintptr(device), uintptr(unsafe.Pointer(props)))
}

func vkGetPhysicalDeviceFeatures(i *Instance, device vk.PhysicalDevice, features *vk.PhysicalDeviceFeatures) {
	//nolint:errcheck // Vulkan void function, no return value to check
	syscall.SyscallN(i.cmds.GetPhysicalDeviceFeatures(), uintptr(device), uintptr(unsafe.Pointer(features)))
}
