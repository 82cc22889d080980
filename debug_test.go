// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"testing"

	"github.com/gogpu/hephaistos/hal/software"
)

func TestDebugExtensionCallbackFiltersBySeverity(t *testing.T) {
	var got []DebugMessage
	ext := NewDebugExtension(DebugOptions{
		MinSeverity: DebugSeverityWarning,
		Callback:    func(m DebugMessage) { got = append(got, m) },
	})

	dev := software.NewDevice("software", false)
	ctx, err := NewContextForDevice(dev, ContextOptions{Extensions: []*Extension{ext}})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}
	defer ctx.Close()

	ctx.reportDebugMessage(DebugMessage{Severity: DebugSeverityInfo, Text: "suppressed"})
	ctx.reportDebugMessage(DebugMessage{Severity: DebugSeverityError, Text: "reported"})

	if len(got) != 1 {
		t.Fatalf("callback invocations = %d, want 1", len(got))
	}
	if got[0].Text != "reported" {
		t.Fatalf("callback message = %q, want %q", got[0].Text, "reported")
	}
}

func TestDebugExtensionWithoutOptionsStillLogs(t *testing.T) {
	ctx := newTestContext(t)
	// No Debug extension enabled: debugOpts is nil, so every message
	// should funnel through hal.Logger() without panicking.
	ctx.reportDebugMessage(DebugMessage{Severity: DebugSeverityVerbose, Text: "noop"})
}

func TestIsDebugAvailable(t *testing.T) {
	dev := software.NewDevice("software", false)
	if !IsDebugAvailable(dev) {
		t.Fatal("software backend should report every capability as supported")
	}
}

func TestContextDeviceFaultInfoUnavailable(t *testing.T) {
	ctx := newTestContext(t)
	if _, ok := ctx.DeviceFaultInfo(); ok {
		t.Fatal("software backend never has fault info available")
	}
}
