// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	"testing"
)

func TestImageFieldsAndDescriptorWrite(t *testing.T) {
	ctx := newTestContext(t)

	img, err := ctx.CreateImage(ImageFormatR8G8B8A8Unorm, 4, 4, 1)
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	defer img.Destroy()

	if img.Width() != 4 || img.Height() != 4 || img.Depth() != 1 {
		t.Fatalf("dims = %dx%dx%d, want 4x4x1", img.Width(), img.Height(), img.Depth())
	}
	if img.Format() != ImageFormatR8G8B8A8Unorm {
		t.Fatalf("Format = %v, want R8G8B8A8Unorm", img.Format())
	}
	if img.Context() != ctx {
		t.Fatal("Context() did not return the owning Context")
	}

	if _, err := img.DescriptorWrite(0, ParameterUniformBuffer); err == nil {
		t.Fatal("binding an Image as a uniform buffer should fail")
	}
	w, err := img.DescriptorWrite(3, ParameterStorageImage)
	if err != nil {
		t.Fatalf("DescriptorWrite: %v", err)
	}
	if w.Binding != 3 || w.Kind != ParameterStorageImage {
		t.Fatalf("DescriptorWrite = %+v, want binding 3 / ParameterStorageImage", w)
	}
}

func TestCreateImageRejectsZeroDimensions(t *testing.T) {
	ctx := newTestContext(t)
	if _, err := ctx.CreateImage(ImageFormatR8G8B8A8Unorm, 0, 4, 1); err == nil {
		t.Fatal("CreateImage with a zero dimension should fail")
	}
}

func TestTextureFieldsAndDescriptorWrite(t *testing.T) {
	ctx := newTestContext(t)

	tex, err := ctx.CreateTexture(ImageFormatR8G8B8A8Unorm, 2, 2, 1, Sampler{Filter: FilterLinear})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Destroy()

	if _, err := tex.DescriptorWrite(0, ParameterStorageImage); err == nil {
		t.Fatal("binding a Texture as a storage image should fail")
	}
	w, err := tex.DescriptorWrite(1, ParameterCombinedImageSampler)
	if err != nil {
		t.Fatalf("DescriptorWrite: %v", err)
	}
	if w.Binding != 1 || w.Kind != ParameterCombinedImageSampler {
		t.Fatalf("DescriptorWrite = %+v, want binding 1 / ParameterCombinedImageSampler", w)
	}
}

func TestImageBufferPNGRoundTrip(t *testing.T) {
	ctx := newTestContext(t)

	ib, err := ctx.CreateImageBuffer(2, 2)
	if err != nil {
		t.Fatalf("CreateImageBuffer: %v", err)
	}
	defer ib.Destroy()

	pixels := ib.Bytes()
	for i := range pixels {
		pixels[i] = byte(i * 17)
	}

	var buf bytes.Buffer
	if err := ib.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := LoadImageBufferBytes(ctx, buf.Bytes())
	if err != nil {
		t.Fatalf("LoadImageBufferBytes: %v", err)
	}
	defer decoded.Destroy()

	if decoded.Width() != 2 || decoded.Height() != 2 {
		t.Fatalf("decoded dims = %dx%d, want 2x2", decoded.Width(), decoded.Height())
	}
	if !bytes.Equal(decoded.Bytes(), pixels) {
		t.Fatalf("decoded pixels = %x, want %x", decoded.Bytes(), pixels)
	}
}

func TestUpdateImageThenRetrieveImage(t *testing.T) {
	ctx := newTestContext(t)

	img, err := ctx.CreateImage(ImageFormatR8G8B8A8Unorm, 2, 2, 1)
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	defer img.Destroy()

	src, err := ctx.CreateImageBuffer(2, 2)
	if err != nil {
		t.Fatalf("CreateImageBuffer (src): %v", err)
	}
	defer src.Destroy()
	for i := range src.Bytes() {
		src.Bytes()[i] = 0x55
	}

	dst, err := ctx.CreateImageBuffer(2, 2)
	if err != nil {
		t.Fatalf("CreateImageBuffer (dst): %v", err)
	}
	defer dst.Destroy()

	update, err := NewUpdateImageCommand(src, img)
	if err != nil {
		t.Fatalf("NewUpdateImageCommand: %v", err)
	}
	retrieve, err := NewRetrieveImageCommand(img, dst)
	if err != nil {
		t.Fatalf("NewRetrieveImageCommand: %v", err)
	}

	sub, err := ctx.BeginSequence().And(update).Then(retrieve).Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	defer sub.Release()

	if err := sub.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !bytes.Equal(dst.Bytes(), src.Bytes()) {
		t.Fatalf("dst = %x, want %x", dst.Bytes(), src.Bytes())
	}
}
