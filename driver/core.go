// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines the small vocabulary of GPU concepts that
// the render graph compiler shares with its surrounding runtime:
// pixel formats, image dimensions, layouts and access masks used to
// build synchronization barriers, and the process-wide swapchain
// dimensions that the driver publishes once per frame.
//
// It deliberately does not define command buffers, pipelines or
// resource objects - actual GPU resource creation and command
// submission belong to the runtime that consumes the compiled plan,
// not to the compiler itself.
package driver

import "sync/atomic"

// PixelFmt describes the format of a pixel.
// The zero value, FormatUndefined, means "inherit the swapchain's
// format" wherever it appears in an AttachmentInfo.
type PixelFmt int

// Pixel formats.
const (
	FormatUndefined PixelFmt = iota

	// Color, 8-bit channels.
	RGBA8un
	RGBA8sRGB
	BGRA8un
	RG8un
	R8un

	// Color, 16-bit channels.
	RGBA16Float
	RG16Float
	R16Float

	// Color, 32-bit channels.
	RGBA32Float
	RG32Float
	R32Float

	// Depth/stencil.
	D16Unorm
	D32Float
	S8
	D24UnormS8
	D32FloatS8
)

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}

// Layout is the type of an image layout.
type Layout int

// Image layouts.
const (
	LUndefined Layout = iota
	// LCommon is a layout compatible with any access, used when
	// a resource is both sampled and depth-tested within the
	// same subpass.
	LCommon
	LColorTarget
	LDSTarget
	LDSReadOnly
	LShaderRead
	LPresent
)

// Access is the type of a memory access mask. Masks combine with
// bitwise OR as a pass touches a resource through more than one role.
type Access int

// Memory access flags.
const (
	ANone Access = 0
)

const (
	AColorRead Access = 1 << iota
	AColorWrite
	ADSRead
	ADSWrite
	AShaderRead
	AInputAttachmentRead
)

// SwapchainDimensions describes the present engine's current target:
// the dimensions and format that SwapchainRelative attachments and
// undefined-format attachments resolve against.
type SwapchainDimensions struct {
	Width, Height int
	Format        PixelFmt
}

// swapchain holds the process-wide SwapchainDimensions. The driver
// updates it once per frame, atomically, before the render graph is
// baked; the compiler never mutates it.
var swapchain atomic.Pointer[SwapchainDimensions]

// SetSwapchainDimensions atomically publishes the current swapchain
// dimensions. Called by the driver, never by the compiler.
func SetSwapchainDimensions(d SwapchainDimensions) { swapchain.Store(&d) }

// CurrentSwapchainDimensions returns the most recently published
// SwapchainDimensions. It returns the zero value if none has been
// set yet.
func CurrentSwapchainDimensions() SwapchainDimensions {
	p := swapchain.Load()
	if p == nil {
		return SwapchainDimensions{}
	}
	return *p
}
