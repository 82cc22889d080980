// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"bytes"
	goimage "image"
	"image/png"
	"io"
	"os"
)

// ImageBuffer is a host-visible staging buffer specialized to
// RGBA8_UNORM, with a known width/height, supporting round-trip to/from
// an Image or Texture (via RetrieveImageCommand/UpdateImageCommand/
// UpdateTextureCommand) and PNG encode/decode.
type ImageBuffer struct {
	*Buffer
	width, height uint32
}

// CreateImageBuffer allocates a width x height RGBA8_UNORM staging buffer.
func (c *Context) CreateImageBuffer(width, height uint32) (*ImageBuffer, error) {
	b, err := c.CreateBuffer(uint64(width) * uint64(height) * 4)
	if err != nil {
		return nil, wrapErr("CreateImageBuffer", "", err)
	}
	return &ImageBuffer{Buffer: b, width: width, height: height}, nil
}

func (ib *ImageBuffer) Width() uint32  { return ib.width }
func (ib *ImageBuffer) Height() uint32 { return ib.height }

// LoadImageBuffer decodes a PNG file into a new RGBA8_UNORM ImageBuffer.
func LoadImageBuffer(ctx *Context, filename string) (*ImageBuffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, wrapErr("LoadImageBuffer", filename, err)
	}
	defer f.Close()
	return decodeImageBuffer(ctx, f)
}

// LoadImageBufferBytes decodes PNG-encoded bytes into a new RGBA8_UNORM
// ImageBuffer.
func LoadImageBufferBytes(ctx *Context, data []byte) (*ImageBuffer, error) {
	return decodeImageBuffer(ctx, bytes.NewReader(data))
}

func decodeImageBuffer(ctx *Context, r io.Reader) (*ImageBuffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, wrapErr("LoadImageBuffer", "decode PNG", err)
	}
	bounds := img.Bounds()
	w, h := uint32(bounds.Dx()), uint32(bounds.Dy())
	ib, err := ctx.CreateImageBuffer(w, h)
	if err != nil {
		return nil, err
	}
	dst := ib.Bytes()
	rgba, ok := img.(*goimage.NRGBA)
	if ok && rgba.Stride == int(w)*4 {
		copy(dst, rgba.Pix)
		return ib, nil
	}
	// Slow path for any other color model/stride: walk pixel-by-pixel.
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			dst[i+0] = byte(r >> 8)
			dst[i+1] = byte(g >> 8)
			dst[i+2] = byte(b >> 8)
			dst[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return ib, nil
}

// Save encodes the ImageBuffer's pixels as a PNG file, stride width*4.
func (ib *ImageBuffer) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return wrapErr("Save", filename, err)
	}
	defer f.Close()
	return ib.Encode(f)
}

// Encode writes the ImageBuffer's pixels as PNG to w.
func (ib *ImageBuffer) Encode(w io.Writer) error {
	img := &goimage.NRGBA{
		Pix:    ib.Bytes(),
		Stride: int(ib.width) * 4,
		Rect:   goimage.Rect(0, 0, int(ib.width), int(ib.height)),
	}
	if err := png.Encode(w, img); err != nil {
		return wrapErr("Encode", "encode PNG", err)
	}
	return nil
}
