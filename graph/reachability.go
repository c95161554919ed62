// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"math/bits"
	"sort"

	"github.com/gviegas/rgraph/internal/bitvec"
)

// reachability traverses writer-of-resource edges backwards from the
// backbuffer (component C4) and returns a topologically sorted,
// deduplicated pass list: the tail is the backbuffer's producers,
// the head consists of leaves with no reachable inputs.
func (g *Graph) reachability() ([]PassRef, error) {
	bbRef, ok := g.textureIdx[g.backbuffer]
	if !ok {
		return nil, newBakeError(ErrUnreachableBackbuffer, "backbuffer resource %q was never declared", g.backbuffer)
	}
	bb := g.texture(bbRef)
	if len(bb.writers) == 0 {
		return nil, newBakeError(ErrUnreachableBackbuffer, "no pass writes resource %q", g.backbuffer)
	}

	var stack []PassRef
	var seen bitvec.V[uint]
	if n := len(g.passes); n > 0 {
		seen.Grow((n + bits.UintSize - 1) / bits.UintSize)
	}

	frontier := dedupPasses(bb.writers)
	stack = append(stack, frontier...)

	rounds := 0
	for len(frontier) > 0 {
		rounds++
		if rounds > len(g.passes) {
			return nil, newBakeError(ErrCycleDetected, "traversal did not settle within %d rounds", len(g.passes))
		}

		var next []PassRef
		for _, pr := range frontier {
			if seen.IsSet(int(pr)) {
				continue
			}
			seen.Set(int(pr))

			p := g.passes[pr]
			deps, err := g.writersOf(p)
			if err != nil {
				return nil, err
			}
			stack = append(stack, deps...)
			next = append(next, deps...)
		}
		frontier = dedupPasses(next)
	}

	reversePasses(stack)
	return dedupKeepFirst(stack), nil
}

// writersOf returns every pass that writes one of p's inputs: its
// depth-stencil input and its attachment, color (and color scale)
// and texture inputs. Any input resource with no writer at all is
// reported as ErrUnreachableBackbuffer, since no path to the
// backbuffer can flow through it.
func (g *Graph) writersOf(p *pass) ([]PassRef, error) {
	var out []PassRef
	add := func(ref TextureRef) error {
		if ref == Unused {
			return nil
		}
		res := g.texture(ref)
		if len(res.writers) == 0 {
			return newBakeError(ErrUnreachableBackbuffer, "no pass writes resource %q, required by pass %q", res.name, p.name)
		}
		out = append(out, res.writers...)
		return nil
	}

	if err := add(p.dsInput); err != nil {
		return nil, err
	}
	for _, ref := range p.attachmentInputs {
		if err := add(ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range p.colorInputs {
		if err := add(ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range p.colorScaleInputs {
		if err := add(ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range p.textureInputs {
		if err := add(ref); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// dedupPasses returns a sorted copy of refs with duplicates removed.
func dedupPasses(refs []PassRef) []PassRef {
	if len(refs) == 0 {
		return nil
	}
	out := append([]PassRef(nil), refs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, r := range out {
		if i == 0 || r != out[i-1] {
			out[n] = r
			n++
		}
	}
	return out[:n]
}

func reversePasses(s []PassRef) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// dedupKeepFirst removes later duplicates from s, keeping the first
// occurrence of each PassRef (the spec's "stable de-duplication that
// keeps the last occurrence first seen from the reversed side").
func dedupKeepFirst(s []PassRef) []PassRef {
	seen := make(map[PassRef]bool, len(s))
	out := s[:0]
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
