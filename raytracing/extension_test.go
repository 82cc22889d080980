// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/hephaistos"
)

func TestNewRaytracingExtension(t *testing.T) {
	ext := NewRaytracingExtension()
	if ext.Name != hephaistos.ExtensionRaytracing {
		t.Fatalf("Name = %q, want %q", ext.Name, hephaistos.ExtensionRaytracing)
	}
	if len(ext.RequiredCapabilities) != 1 || ext.RequiredCapabilities[0] != hephaistos.ExtensionRaytracing {
		t.Fatalf("RequiredCapabilities = %v", ext.RequiredCapabilities)
	}
}

func TestNewRayTracingPipelineExtension(t *testing.T) {
	ext := NewRayTracingPipelineExtension()
	if ext.Name != hephaistos.ExtensionRayTracing {
		t.Fatalf("Name = %q, want %q", ext.Name, hephaistos.ExtensionRayTracing)
	}
	if len(ext.RequiredCapabilities) != 2 {
		t.Fatalf("RequiredCapabilities = %v, want 2 entries", ext.RequiredCapabilities)
	}
}

func TestIsSupportedAndFeatures(t *testing.T) {
	ctx := newTestContext(t)

	if !IsSupported(ctx) {
		t.Fatal("IsSupported should be true for the software backend")
	}
	features := GetFeatures(ctx)
	if !features.Query || !features.Pipeline {
		t.Fatalf("GetFeatures = %+v, want Query and Pipeline true", features)
	}
	props := GetProperties(ctx)
	if props.MaxRayRecursionDepth == 0 {
		t.Fatal("GetProperties should report a non-zero MaxRayRecursionDepth")
	}
}
