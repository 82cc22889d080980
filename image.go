// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"

	"github.com/gogpu/hephaistos/hal"
)

// Image is a storage-writable 1D/2D/3D pixel region, created in general
// layout. The core assumes a single mip level and a single array layer.
type Image struct {
	ctx *Context
	res hal.Image
}

// CreateImage allocates a width x height x depth image of the given format.
func (c *Context) CreateImage(format ImageFormat, width, height, depth uint32) (*Image, error) {
	if width == 0 || height == 0 || depth == 0 {
		return nil, invalidArg("CreateImage", "dimensions must be positive")
	}
	res, err := c.device.CreateImage(format, width, height, depth)
	if err != nil {
		return nil, wrapErr("CreateImage", "", err)
	}
	c.retain()
	return &Image{ctx: c, res: res}, nil
}

func (i *Image) Width() uint32       { return i.res.Width() }
func (i *Image) Height() uint32      { return i.res.Height() }
func (i *Image) Depth() uint32       { return i.res.Depth() }
func (i *Image) Format() ImageFormat { return i.res.Format() }
func (i *Image) SizeBytes() uint64   { return i.res.SizeBytes() }
func (i *Image) Context() *Context   { return i.ctx }

// DescriptorWrite implements Parameter: an Image binds as a storage image.
func (i *Image) DescriptorWrite(binding uint32, kind ParameterKind) (hal.DescriptorWrite, error) {
	if kind != ParameterStorageImage {
		return hal.DescriptorWrite{}, fmt.Errorf("image cannot bind to kind %v", kind)
	}
	return hal.DescriptorWrite{Binding: binding, Kind: kind, Image: i.res}, nil
}

func (i *Image) Destroy() {
	i.res.Destroy()
	i.ctx.release()
}

func (i *Image) resource() hal.Resource { return i.res }

// Texture is a sampled-read-only pixel region with an attached sampler,
// created in shader-read-only-optimal layout.
type Texture struct {
	ctx *Context
	res hal.Texture
}

// CreateTexture allocates a width x height x depth texture sampled per sampler.
func (c *Context) CreateTexture(format ImageFormat, width, height, depth uint32, sampler Sampler) (*Texture, error) {
	if width == 0 || height == 0 || depth == 0 {
		return nil, invalidArg("CreateTexture", "dimensions must be positive")
	}
	res, err := c.device.CreateTexture(format, width, height, depth, sampler.toHAL())
	if err != nil {
		return nil, wrapErr("CreateTexture", "", err)
	}
	c.retain()
	return &Texture{ctx: c, res: res}, nil
}

func (t *Texture) Width() uint32       { return t.res.Width() }
func (t *Texture) Height() uint32      { return t.res.Height() }
func (t *Texture) Depth() uint32       { return t.res.Depth() }
func (t *Texture) Format() ImageFormat { return t.res.Format() }
func (t *Texture) SizeBytes() uint64   { return t.res.SizeBytes() }
func (t *Texture) Context() *Context   { return t.ctx }

// DescriptorWrite implements Parameter: a Texture binds as a combined
// image sampler.
func (t *Texture) DescriptorWrite(binding uint32, kind ParameterKind) (hal.DescriptorWrite, error) {
	if kind != ParameterCombinedImageSampler {
		return hal.DescriptorWrite{}, fmt.Errorf("texture cannot bind to kind %v", kind)
	}
	return hal.DescriptorWrite{Binding: binding, Kind: kind, Image: t.res}, nil
}

func (t *Texture) Destroy() {
	t.res.Destroy()
	t.ctx.release()
}

func (t *Texture) resource() hal.Resource { return t.res }
