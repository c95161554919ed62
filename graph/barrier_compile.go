// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import "github.com/gviegas/rgraph/driver"

// resourceState is the global, cross-physical-pass synchronization
// state carried for one physical resource (component C9). Transient
// and swapchain-bound resources never accumulate it - their entire
// lifetime fits inside a single physical pass, so nothing needs to
// survive past it.
type resourceState struct {
	currentLayout      driver.Layout
	invalidatedAccess  driver.Access
	flushedAccess      driver.Access
	lastInvalidatePass int
	lastFlushPass      int
}

// scratchState records a physical resource's first and last use
// within one physical pass.
type scratchState struct {
	touched           bool
	initialLayout     driver.Layout
	finalLayout       driver.Layout
	invalidatedAccess driver.Access
	flushedAccess     driver.Access
}

// compilePhysicalBarriers folds every logical pass's subpass
// barriers (component C8) into the final per-physical-pass
// invalidate/flush lists, the frame-initial barrier list, and
// determines the swapchain binding (component C9).
func (g *Graph) compilePhysicalBarriers(order []PassRef, physDims []ResourceDimensions) ([]PhysicalPass, []Barrier, int, error) {
	swapPhysIdx, err := g.bindSwapchain()
	if err != nil {
		return nil, nil, Unused, err
	}

	physTransient := make([]bool, len(physDims))
	for i := range physTransient {
		physTransient[i] = true
	}
	for _, res := range g.textures {
		if res.physIdx != Unused && !res.transient {
			physTransient[res.physIdx] = false
		}
	}
	skip := func(physIdx int) bool { return physTransient[physIdx] || physIdx == swapPhysIdx }

	barriersOf := make(map[PassRef][2][]Barrier, len(order))
	for _, pr := range order {
		inv, flu, err := g.buildSubpassBarriers(g.passes[pr])
		if err != nil {
			return nil, nil, Unused, err
		}
		barriersOf[pr] = [2][]Barrier{inv, flu}
	}

	physRuns := groupByPhysicalPass(order, g.passes)

	global := make([]resourceState, len(physDims))
	for i := range global {
		global[i] = resourceState{currentLayout: driver.LUndefined, lastInvalidatePass: Unused, lastFlushPass: Unused}
	}

	var initial []Barrier
	var passes []PhysicalPass

	for ppIdx, subpasses := range physRuns {
		scratch := make([]scratchState, len(physDims))

		for _, pr := range subpasses {
			bp := barriersOf[pr]
			for _, b := range bp[0] {
				s := &scratch[b.PhysIdx]
				if !s.touched {
					s.touched = true
					s.initialLayout = b.Layout
				}
				s.invalidatedAccess |= b.Access
				s.flushedAccess = 0
			}
			for _, b := range bp[1] {
				s := &scratch[b.PhysIdx]
				s.flushedAccess |= b.Access
				s.finalLayout = b.Layout
				if !s.touched {
					s.touched = true
					s.initialLayout = b.Layout
					initial = append(initial, Barrier{PhysIdx: b.PhysIdx, Layout: b.Layout, Access: flushToInvalidate(b.Access)})
				}
			}
		}

		var ppInvalidate, ppFlush []Barrier
		for idx := range scratch {
			s := &scratch[idx]
			if !s.touched || skip(idx) {
				continue
			}
			gs := &global[idx]

			if s.initialLayout != gs.currentLayout || s.invalidatedAccess&^gs.invalidatedAccess != 0 {
				merged := false
				if gs.lastInvalidatePass != Unused && gs.currentLayout == s.initialLayout {
					prev := &passes[gs.lastInvalidatePass]
					for i := range prev.Invalidate {
						if prev.Invalidate[i].PhysIdx == idx {
							prev.Invalidate[i].Access |= s.invalidatedAccess
							merged = true
							break
						}
					}
				}
				if !merged {
					ppInvalidate = append(ppInvalidate, Barrier{PhysIdx: idx, Layout: s.initialLayout, Access: s.invalidatedAccess})
					gs.invalidatedAccess = s.invalidatedAccess
				} else {
					gs.invalidatedAccess |= s.invalidatedAccess
				}
				gs.currentLayout = s.initialLayout
				gs.lastInvalidatePass = ppIdx
				gs.lastFlushPass = Unused
			}

			if s.flushedAccess != 0 {
				ppFlush = append(ppFlush, Barrier{PhysIdx: idx, Layout: s.finalLayout, Access: s.flushedAccess})
				gs.invalidatedAccess = 0
				gs.currentLayout = s.finalLayout
				gs.lastFlushPass = ppIdx
				gs.lastInvalidatePass = Unused
			}
		}

		passes = append(passes, PhysicalPass{Subpasses: subpasses, Invalidate: ppInvalidate, Flush: ppFlush})
	}

	return passes, initial, swapPhysIdx, nil
}

// bindSwapchain compares the backbuffer resource's dimensions
// against the driver-provided swapchain dimensions. A match binds
// the backbuffer's physical index directly to the swapchain and
// marks it transient; a mismatch forces it persistent and requires
// a later blit.
func (g *Graph) bindSwapchain() (int, error) {
	bbRef := g.textureIdx[g.backbuffer]
	res := g.texture(bbRef)
	dim, err := g.resourceDimensions(bbRef)
	if err != nil {
		return Unused, err
	}
	swap := driver.CurrentSwapchainDimensions()
	if dim.Width == swap.Width && dim.Height == swap.Height {
		res.transient = true
		return res.physIdx, nil
	}
	res.transient = false
	return Unused, nil
}

// flushToInvalidate widens a flush's access mask to the invalidate
// access implied by the frame-initial layout transition.
func flushToInvalidate(a driver.Access) driver.Access {
	if a&driver.AColorWrite != 0 {
		a |= driver.AColorRead
	}
	if a&driver.ADSWrite != 0 {
		a |= driver.ADSRead
	}
	return a
}

// groupByPhysicalPass splits order into runs sharing the same
// physPass index, in the order they first appear.
func groupByPhysicalPass(order []PassRef, passes []*pass) [][]PassRef {
	var runs [][]PassRef
	cur := Unused
	for _, pr := range order {
		idx := passes[pr].physPass
		if idx != cur {
			runs = append(runs, nil)
			cur = idx
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], pr)
	}
	return runs
}
