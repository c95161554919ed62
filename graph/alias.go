// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

// aliasResources traverses order and assigns every texture resource
// a physical index, appending its resolved dimensions to the
// returned dense vector (component C7). Paired color and
// depth-stencil input/output slots alias onto the same physical
// index; every other role - attachment input, texture input, color
// scale input, and any output with no paired input - gets a fresh
// index of its own.
func (g *Graph) aliasResources(order []PassRef) ([]ResourceDimensions, error) {
	var physDims []ResourceDimensions

	allocate := func(ref TextureRef) error {
		res := g.texture(ref)
		if res.physIdx != Unused {
			return nil
		}
		dim, err := g.resourceDimensions(ref)
		if err != nil {
			return err
		}
		res.physIdx = len(physDims)
		physDims = append(physDims, dim)
		return nil
	}

	alias := func(in, out TextureRef) error {
		inRes := g.texture(in)
		if err := allocate(in); err != nil {
			return err
		}
		outRes := g.texture(out)
		switch {
		case outRes.physIdx == Unused:
			outRes.physIdx = inRes.physIdx
		case outRes.physIdx != inRes.physIdx:
			return newBakeError(ErrAliasConflict, "resource %q cannot alias resource %q", outRes.name, inRes.name)
		}
		return nil
	}

	for _, pr := range order {
		p := g.passes[pr]

		for _, ref := range p.attachmentInputs {
			if err := allocate(ref); err != nil {
				return nil, err
			}
		}
		for _, ref := range p.textureInputs {
			if err := allocate(ref); err != nil {
				return nil, err
			}
		}
		for _, ref := range p.colorScaleInputs {
			if ref != Unused {
				if err := allocate(ref); err != nil {
					return nil, err
				}
			}
		}

		for i, out := range p.colorOutputs {
			in := TextureRef(Unused)
			if i < len(p.colorInputs) {
				in = p.colorInputs[i]
			}
			if in == Unused {
				if err := allocate(out); err != nil {
					return nil, err
				}
				continue
			}
			if err := alias(in, out); err != nil {
				return nil, err
			}
		}

		switch {
		case p.dsInput != Unused && p.dsOutput != Unused:
			if err := alias(p.dsInput, p.dsOutput); err != nil {
				return nil, err
			}
		case p.dsInput != Unused:
			if err := allocate(p.dsInput); err != nil {
				return nil, err
			}
		case p.dsOutput != Unused:
			if err := allocate(p.dsOutput); err != nil {
				return nil, err
			}
		}
	}

	return physDims, nil
}
