// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

// validate enforces the structural constraints between a pass's
// declared inputs and outputs (component C3), reclassifying color
// inputs whose dimensions differ from their paired output as color
// scale inputs along the way.
func (g *Graph) validate() error {
	for _, p := range g.passes {
		if len(p.colorInputs) > 0 && len(p.colorInputs) != len(p.colorOutputs) {
			return newBakeError(ErrShapeMismatch,
				"pass %q: %d color input(s), %d color output(s)",
				p.name, len(p.colorInputs), len(p.colorOutputs))
		}

		for i := range p.colorInputs {
			in := p.colorInputs[i]
			if in == Unused {
				continue
			}
			inDim, err := g.resourceDimensions(in)
			if err != nil {
				return err
			}
			outDim, err := g.resourceDimensions(p.colorOutputs[i])
			if err != nil {
				return err
			}
			if !inDim.sameExtent(outDim) {
				p.colorScaleInputs[i] = in
				p.colorInputs[i] = Unused
			}
		}

		if p.dsInput != Unused && p.dsOutput != Unused {
			inDim, err := g.resourceDimensions(p.dsInput)
			if err != nil {
				return err
			}
			outDim, err := g.resourceDimensions(p.dsOutput)
			if err != nil {
				return err
			}
			if !inDim.sameExtent(outDim) {
				return newBakeError(ErrDimensionMismatch,
					"pass %q: depth-stencil input %v, output %v", p.name, inDim, outDim)
			}
		}
	}
	return nil
}
