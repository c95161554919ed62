// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"sort"

	"github.com/gviegas/rgraph/driver"
)

// buildSubpassBarriers computes p's per-physical-resource invalidate
// and flush barrier candidates (component C8), keyed by role. A
// resource touched by more than one role within p has its access
// flags merged into a single entry; a role disagreeing on layout
// with an earlier role touching the same resource is rejected as
// LayoutMismatch, except for the Granite special case of a
// depth-stencil resource also sampled within the same pass, which
// takes the general layout instead.
func (g *Graph) buildSubpassBarriers(p *pass) (invalidate, flush []Barrier, err error) {
	invalidates := make(map[int]*Barrier)
	flushes := make(map[int]*Barrier)

	add := func(m map[int]*Barrier, physIdx int, layout driver.Layout, access driver.Access) error {
		if b, ok := m[physIdx]; ok {
			if b.Layout != layout {
				return newBakeError(ErrLayoutMismatch,
					"pass %q: physical resource %d requested both layout %v and %v",
					p.name, physIdx, b.Layout, layout)
			}
			b.Access |= access
			return nil
		}
		m[physIdx] = &Barrier{PhysIdx: physIdx, Layout: layout, Access: access}
		return nil
	}

	dsPhys := Unused
	switch {
	case p.dsInput != Unused:
		dsPhys = g.texture(p.dsInput).physIdx
	case p.dsOutput != Unused:
		dsPhys = g.texture(p.dsOutput).physIdx
	}

	sampledDS := false
	if dsPhys != Unused {
		for _, ref := range p.textureInputs {
			if ref != Unused && g.texture(ref).physIdx == dsPhys {
				sampledDS = true
			}
		}
		for _, ref := range p.attachmentInputs {
			if ref != Unused && g.texture(ref).physIdx == dsPhys {
				sampledDS = true
			}
		}
	}

	for _, ref := range p.textureInputs {
		if ref == Unused {
			continue
		}
		physIdx := g.texture(ref).physIdx
		if sampledDS && physIdx == dsPhys {
			continue
		}
		if err := add(invalidates, physIdx, driver.LShaderRead, driver.AShaderRead); err != nil {
			return nil, nil, err
		}
	}
	for _, ref := range p.attachmentInputs {
		if ref == Unused {
			continue
		}
		physIdx := g.texture(ref).physIdx
		if sampledDS && physIdx == dsPhys {
			continue
		}
		if err := add(invalidates, physIdx, driver.LShaderRead, driver.AInputAttachmentRead); err != nil {
			return nil, nil, err
		}
	}
	for _, ref := range p.colorScaleInputs {
		if ref == Unused {
			continue
		}
		physIdx := g.texture(ref).physIdx
		if err := add(invalidates, physIdx, driver.LShaderRead, driver.AShaderRead); err != nil {
			return nil, nil, err
		}
	}
	for i, out := range p.colorOutputs {
		in := TextureRef(Unused)
		if i < len(p.colorInputs) {
			in = p.colorInputs[i]
		}
		physIdx := g.texture(out).physIdx
		if in != Unused {
			if err := add(invalidates, physIdx, driver.LColorTarget, driver.AColorRead|driver.AColorWrite); err != nil {
				return nil, nil, err
			}
		}
		if err := add(flushes, physIdx, driver.LColorTarget, driver.AColorWrite); err != nil {
			return nil, nil, err
		}
	}

	switch {
	case dsPhys == Unused:
	case sampledDS:
		if err := add(invalidates, dsPhys, driver.LCommon, driver.ADSRead|driver.ADSWrite); err != nil {
			return nil, nil, err
		}
		if err := add(flushes, dsPhys, driver.LCommon, driver.ADSRead|driver.ADSWrite); err != nil {
			return nil, nil, err
		}
	case p.dsInput != Unused && p.dsOutput != Unused:
		if err := add(invalidates, dsPhys, driver.LDSTarget, driver.ADSRead|driver.ADSWrite); err != nil {
			return nil, nil, err
		}
		if err := add(flushes, dsPhys, driver.LDSTarget, driver.ADSWrite); err != nil {
			return nil, nil, err
		}
	case p.dsInput != Unused:
		if err := add(invalidates, dsPhys, driver.LDSReadOnly, driver.ADSRead); err != nil {
			return nil, nil, err
		}
	case p.dsOutput != Unused:
		if err := add(flushes, dsPhys, driver.LDSTarget, driver.ADSWrite); err != nil {
			return nil, nil, err
		}
	}

	return sortBarriers(invalidates), sortBarriers(flushes), nil
}

func sortBarriers(m map[int]*Barrier) []Barrier {
	out := make([]Barrier, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhysIdx < out[j].PhysIdx })
	return out
}
