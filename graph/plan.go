// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import "github.com/gviegas/rgraph/driver"

// Barrier describes a single synchronization point against one
// physical resource: a layout transition together with the access
// flags it must make visible.
type Barrier struct {
	PhysIdx int
	Layout  driver.Layout
	Access  driver.Access
}

// PhysicalPass is a fused run of logical passes sharing one on-tile
// execution (component C5), together with the barriers that carry
// its resources in and out of the tile.
//
// A worker-thread pool recording a Plan schedules one task group per
// PhysicalPass: Invalidate runs as the group's entry dependency,
// Subpasses enqueue as the group's own tasks, and Flush runs once
// every subpass task has completed, before any group depending on
// this one's output resources may start.
type PhysicalPass struct {
	Subpasses  []PassRef
	Invalidate []Barrier
	Flush      []Barrier
}

// Plan is the immutable output of Bake: everything a frame's
// recording threads need to allocate physical resources, order
// on-tile work, and synchronize it, with no further reference to
// the Graph that produced it.
type Plan struct {
	PhysicalDimensions []ResourceDimensions
	PhysicalPasses     []PhysicalPass
	InitialBarriers    []Barrier

	// SwapchainPhysicalIndex is the physical resource consumed
	// directly by the present engine, or Unused if the backbuffer's
	// dimensions differ from the swapchain's and a blit is required.
	SwapchainPhysicalIndex int
}
