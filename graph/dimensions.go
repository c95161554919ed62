// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import "github.com/gviegas/rgraph/driver"

// ResourceDimensions is the resolved, concrete description of a
// physical resource: its size, format and transient classification.
type ResourceDimensions struct {
	driver.Dim3D
	Layers, Levels int
	Format         driver.PixelFmt
	Transient      bool
}

// sameExtent reports whether two dimensions describe the same
// width/height/depth/layers/levels, ignoring format and transience.
// This is the equality the spec calls on to detect dimension
// mismatches and to decide whether a color input must be scaled.
func (d ResourceDimensions) sameExtent(o ResourceDimensions) bool {
	return d.Width == o.Width && d.Height == o.Height && d.Depth == o.Depth &&
		d.Layers == o.Layers && d.Levels == o.Levels
}

// resourceDimensions resolves the concrete dimensions of the texture
// referred to by ref (component C2). InputRelative resources recurse
// into the resource they scale; a dangling reference is reported as
// ErrUnknownResource.
func (g *Graph) resourceDimensions(ref TextureRef) (ResourceDimensions, error) {
	res := g.texture(ref)
	info := res.info
	swap := driver.CurrentSwapchainDimensions()

	var dim ResourceDimensions
	dim.Transient = res.transient
	dim.Layers = orOne(info.Layers)
	dim.Levels = orOne(info.Levels)
	dim.Depth = orOne(info.Depth)

	switch info.SizeClass {
	case SwapchainRelative:
		dim.Width = int(info.SizeX * float32(swap.Width))
		dim.Height = int(info.SizeY * float32(swap.Height))

	case Absolute:
		dim.Width = int(info.SizeX)
		dim.Height = int(info.SizeY)

	case InputRelative:
		relRef, ok := g.textureIdx[info.SizeRelativeName]
		if !ok {
			return dim, newBakeError(ErrUnknownResource,
				"size-relative resource %q does not exist", info.SizeRelativeName)
		}
		relDim, err := g.resourceDimensions(relRef)
		if err != nil {
			return dim, err
		}
		dim.Width = int(float32(relDim.Width) * info.SizeX)
		dim.Height = int(float32(relDim.Height) * info.SizeY)
		dim.Depth = relDim.Depth
		dim.Layers = relDim.Layers
		dim.Levels = relDim.Levels
	}

	dim.Format = info.Format
	if dim.Format == driver.FormatUndefined {
		dim.Format = swap.Format
	}
	return dim, nil
}

// orOne returns n, or 1 if n is zero; AttachmentInfo leaves Depth,
// Layers and Levels at their zero value to mean "a single slice".
func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
