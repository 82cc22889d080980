// Command vk-test is a headless integration smoke test for the Vulkan
// backend. It initializes the loader, enumerates devices through the
// same hephaistos.IsAvailable/EnumerateDevices path an application
// uses, and opens a Context against the first one.
//
//nolint:errcheck,gosec,staticcheck,errorlint,gocritic // test utility
package main

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/gogpu/hephaistos"
	"github.com/gogpu/hephaistos/hal/vulkan"
	"github.com/gogpu/hephaistos/hal/vulkan/vk"
)

func main() {
	fmt.Println("=== Vulkan Backend Integration Test ===")
	fmt.Println()

	fmt.Print("1. Initializing Vulkan library... ")
	if err := vk.Init(); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	fmt.Print("2. Loading global commands... ")
	var cmds vk.Commands
	cmds.LoadGlobal()
	fmt.Println("OK")

	fmt.Print("3. Querying Vulkan version... ")
	if proc := cmds.EnumerateInstanceVersion(); proc != 0 {
		var version uint32
		syscall.SyscallN(proc, uintptr(unsafe.Pointer(&version)))
		major := version >> 22
		minor := (version >> 12) & 0x3FF
		patch := version & 0xFFF
		fmt.Printf("OK (Vulkan %d.%d.%d)\n", major, minor, patch)
	} else {
		fmt.Println("OK (Vulkan 1.0)")
	}

	fmt.Println()
	fmt.Println("=== Testing hephaistos device enumeration ===")
	if err := testDeviceOpen(); err != nil {
		fmt.Printf("Backend test FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Backend test PASSED")

	fmt.Println()
	fmt.Println("=== Test Complete ===")
}

func testDeviceOpen() error {
	fmt.Print("  Checking availability... ")
	if !vulkan.IsAvailable() {
		return fmt.Errorf("no Vulkan loader available")
	}
	fmt.Println("OK")

	fmt.Print("  Enumerating devices... ")
	devices, err := vulkan.EnumerateDevices()
	if err != nil {
		return fmt.Errorf("EnumerateDevices: %w", err)
	}
	if len(devices) == 0 {
		return fmt.Errorf("no devices found")
	}
	fmt.Printf("OK (found %d)\n", len(devices))
	for i, d := range devices {
		info := d.Info()
		fmt.Printf("    Device %d: %s (discrete=%v)\n", i, info.Name, info.IsDiscrete)
	}

	fmt.Print("  Opening context... ")
	ctx, err := hephaistos.CreateContext(hephaistos.ContextOptions{Device: devices[0]})
	if err != nil {
		return fmt.Errorf("CreateContext: %w", err)
	}
	defer ctx.Close()
	fmt.Println("OK")

	return nil
}
