// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"errors"
	"testing"
)

func TestAliasColorPairSharesPhysicalIndex(t *testing.T) {
	g := NewGraph()
	a := g.AddPass("a")
	a.AddColorOutput("x", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	b := g.AddPass("b")
	b.AddColorInput("x")
	b.AddColorOutput("y", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	order := []PassRef{a.Ref(), b.Ref()}
	dims, err := g.aliasResources(order)
	if err != nil {
		t.Fatalf("aliasResources: %v", err)
	}

	xPhys := g.texture(g.textureIdx["x"]).physIdx
	yPhys := g.texture(g.textureIdx["y"]).physIdx
	if xPhys != yPhys {
		t.Fatalf("x and y physical indices: have %d and %d, want equal (aliased pair)", xPhys, yPhys)
	}
	if len(dims) != 1 {
		t.Fatalf("physical dimensions: have %d entries, want 1", len(dims))
	}
}

func TestAliasNonAliasingRolesGetFreshIndices(t *testing.T) {
	g := NewGraph()
	a := g.AddPass("a")
	a.AddColorOutput("tex", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	b := g.AddPass("b")
	b.AddTextureInput("tex")
	b.AddColorOutput("out", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	order := []PassRef{a.Ref(), b.Ref()}
	dims, err := g.aliasResources(order)
	if err != nil {
		t.Fatalf("aliasResources: %v", err)
	}

	texPhys := g.texture(g.textureIdx["tex"]).physIdx
	outPhys := g.texture(g.textureIdx["out"]).physIdx
	if texPhys == outPhys {
		t.Fatalf("tex and out share physical index %d, want distinct (texture input does not alias)", texPhys)
	}
	if len(dims) != 2 {
		t.Fatalf("physical dimensions: have %d entries, want 2", len(dims))
	}
}

func TestAliasDepthStencilPairSharesIndex(t *testing.T) {
	g := NewGraph()
	a := g.AddPass("a")
	a.SetDepthStencilOutput("d1", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	b := g.AddPass("b")
	b.SetDepthStencilInput("d1")
	b.SetDepthStencilOutput("d1", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	order := []PassRef{a.Ref(), b.Ref()}
	if _, err := g.aliasResources(order); err != nil {
		t.Fatalf("aliasResources: %v", err)
	}

	res := g.texture(g.textureIdx["d1"])
	if res.physIdx == Unused {
		t.Fatal("d1 physical index: have Unused, want assigned")
	}
}

func TestAliasConflictOnMismatchedPairing(t *testing.T) {
	g := NewGraph()
	a := g.AddPass("a")
	a.AddColorOutput("x", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})
	a.AddColorOutput("y", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	b := g.AddPass("b")
	b.AddColorInput("x")
	b.AddColorOutput("y", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	order := []PassRef{a.Ref(), b.Ref()}

	// Force "y" to already hold a different physical index than "x"
	// before aliasing b, so the (x, y) pairing conflicts.
	yRes := g.texture(g.textureIdx["y"])
	yRes.physIdx = 99

	_, err := g.aliasResources(order)
	if !errors.Is(err, ErrAliasConflict) {
		t.Fatalf("aliasResources error: have %v, want ErrAliasConflict", err)
	}
}
