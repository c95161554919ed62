// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"fmt"
	"io"
)

// Log writes a human-readable dump of p to w: one line per logical
// resource giving its physical index, transience and dimensions,
// followed by one block per physical pass listing its invalidate
// barriers, subpasses and flush barriers in order. p must have been
// produced by g's most recent Bake.
func (g *Graph) Log(p *Plan, w io.Writer) error {
	for _, res := range g.textures {
		var dim ResourceDimensions
		if res.physIdx != Unused && res.physIdx < len(p.PhysicalDimensions) {
			dim = p.PhysicalDimensions[res.physIdx]
		}
		if _, err := fmt.Fprintf(w, "resource %q: phys=%d transient=%t dim=%dx%dx%d fmt=%v\n",
			res.name, res.physIdx, res.transient, dim.Width, dim.Height, dim.Depth, dim.Format); err != nil {
			return err
		}
	}

	for i, ib := range p.InitialBarriers {
		if _, err := fmt.Fprintf(w, "initial barrier %d: phys=%d layout=%v access=%v\n",
			i, ib.PhysIdx, ib.Layout, ib.Access); err != nil {
			return err
		}
	}

	for i, pp := range p.PhysicalPasses {
		if _, err := fmt.Fprintf(w, "physical pass %d:\n", i); err != nil {
			return err
		}
		for _, b := range pp.Invalidate {
			if _, err := fmt.Fprintf(w, "  invalidate: phys=%d layout=%v access=%v\n", b.PhysIdx, b.Layout, b.Access); err != nil {
				return err
			}
		}
		for _, pr := range pp.Subpasses {
			if _, err := fmt.Fprintf(w, "  subpass: %s\n", g.passes[pr].name); err != nil {
				return err
			}
		}
		for _, b := range pp.Flush {
			if _, err := fmt.Fprintf(w, "  flush: phys=%d layout=%v access=%v\n", b.PhysIdx, b.Layout, b.Access); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "swapchain physical index: %d\n", p.SwapchainPhysicalIndex); err != nil {
		return err
	}
	return nil
}
