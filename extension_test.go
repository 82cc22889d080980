// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"testing"

	"github.com/gogpu/hephaistos/hal/software"
)

func TestBuiltinExtensionConstructors(t *testing.T) {
	cases := []struct {
		ext  *Extension
		name string
	}{
		{NewAtomicsExtension(), ExtensionAtomics},
		{NewTypesExtension(), ExtensionTypes},
		{NewDeviceFaultExtension(), ExtensionDeviceFault},
	}
	for _, c := range cases {
		if c.ext.Name != c.name {
			t.Errorf("Name = %q, want %q", c.ext.Name, c.name)
		}
		if len(c.ext.RequiredCapabilities) != 1 || c.ext.RequiredCapabilities[0] != c.name {
			t.Errorf("RequiredCapabilities = %v, want [%q]", c.ext.RequiredCapabilities, c.name)
		}
	}
}

func TestExtensionSatisfiedBy(t *testing.T) {
	e := NewAtomicsExtension()
	if !e.satisfiedBy(func(names []string) bool { return true }) {
		t.Error("satisfiedBy should be true when caps reports support")
	}
	if e.satisfiedBy(func(names []string) bool { return false }) {
		t.Error("satisfiedBy should be false when caps reports no support")
	}

	var nilExt *Extension
	if !nilExt.satisfiedBy(func([]string) bool { return false }) {
		t.Error("a nil Extension should always be satisfied")
	}

	noReqs := &Extension{Name: "NoRequirements"}
	if !noReqs.satisfiedBy(func([]string) bool { return false }) {
		t.Error("an extension with no RequiredCapabilities should always be satisfied")
	}
}

func TestContextEnablesExtensionsAndRunsFinalize(t *testing.T) {
	var finalized *Context
	ext := &Extension{
		Name: "Custom",
		Finalize: func(ctx *Context) {
			finalized = ctx
		},
	}

	dev := software.NewDevice("software", false)
	ctx, err := NewContextForDevice(dev, ContextOptions{Extensions: []*Extension{ext}})
	if err != nil {
		t.Fatalf("NewContextForDevice: %v", err)
	}
	defer ctx.Close()

	if !ctx.HasExtension("Custom") {
		t.Fatal("HasExtension should report the enabled extension")
	}
	if finalized != ctx {
		t.Fatal("Finalize should have run once, with the new Context")
	}
}
