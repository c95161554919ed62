// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

// Bake compiles every pass and texture declaration accumulated on g
// since the last Reset into a Plan. It runs the registry (C1, already
// populated), validator (C3), reachability and ordering (C4),
// physical-pass merger (C5), transient classifier (C6), aliaser (C7),
// and the per-subpass and physical barrier compilers (C8, C9), in
// that order - consulting the dimension resolver (C2) wherever C6,
// C7 or C9 need a resource's concrete size.
//
// Bake fails fast on the first error encountered; the Graph's
// declarations are left untouched; a caller that wants to retry must
// correct the declarations (Reset does not run automatically).
func (g *Graph) Bake() (*Plan, error) {
	log := logger()

	if err := g.validate(); err != nil {
		log.Warn("bake failed", "stage", "validate", "error", err)
		return nil, err
	}

	order, err := g.reachability()
	if err != nil {
		log.Warn("bake failed", "stage", "reachability", "error", err)
		return nil, err
	}
	log.Debug("reachability ordered", "passes", len(order))

	g.mergePhysicalPasses(order)
	g.classifyTransients()

	physDims, err := g.aliasResources(order)
	if err != nil {
		log.Warn("bake failed", "stage", "alias", "error", err)
		return nil, err
	}
	log.Debug("aliased resources", "logical", len(g.textures), "physical", len(physDims))

	physPasses, initial, swapIdx, err := g.compilePhysicalBarriers(order, physDims)
	if err != nil {
		log.Warn("bake failed", "stage", "barriers", "error", err)
		return nil, err
	}
	log.Debug("compiled barriers", "physicalPasses", len(physPasses), "initialBarriers", len(initial))

	return &Plan{
		PhysicalDimensions:     physDims,
		PhysicalPasses:         physPasses,
		InitialBarriers:        initial,
		SwapchainPhysicalIndex: swapIdx,
	}, nil
}
