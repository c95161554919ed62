// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package graph compiles a declarative description of a frame's
// render passes - the textures they read and write - into an
// optimized execution plan for a tiled GPU: a deduplicated,
// topologically ordered pass list, a grouping of passes into
// physical (on-tile) passes, a minimal set of aliased physical
// resources, a transient/persistent classification of each, and
// the synchronization barriers that carry every resource through
// the frame.
//
// The package is pure: Bake consumes the declarations accumulated
// on a Graph and produces a Plan. It performs no GPU resource
// creation, command recording or submission; those belong to the
// runtime that consumes the Plan.
package graph

import "github.com/gviegas/rgraph/driver"

// Unused is the sentinel value for TextureRef, PassRef and physical
// resource/pass indices that have not been assigned yet.
const Unused = -1

// TextureRef identifies a logical texture resource within a Graph.
type TextureRef int

// PassRef identifies a logical pass within a Graph.
type PassRef int

// SizeClass selects how a texture's concrete dimensions are derived.
type SizeClass int

// Size classes.
const (
	// SwapchainRelative dimensions are (SizeX*swap.Width, SizeY*swap.Height).
	SwapchainRelative SizeClass = iota
	// Absolute dimensions are the literal (SizeX, SizeY).
	Absolute
	// InputRelative dimensions are the named resource's dimensions
	// scaled by (SizeX, SizeY); depth, layers and levels are
	// inherited from the named resource.
	InputRelative
)

// AttachmentInfo declares the format and size of a texture resource.
// It is supplied when a pass declares a color or depth-stencil
// output; the first declaration for a given resource wins.
type AttachmentInfo struct {
	Format           driver.PixelFmt
	SizeClass        SizeClass
	SizeX, SizeY     float32
	SizeRelativeName string

	Depth  int
	Layers int
	Levels int
}

// textureResource is the internal, arena-indexed representation of
// a logical texture. Cross-references to owning passes are plain
// PassRef indices rather than pointers, per the arena-of-indices
// design used throughout this package.
type textureResource struct {
	name    string
	info    AttachmentInfo
	writers []PassRef
	readers []PassRef

	transient bool
	physIdx   int
}

// pass is the internal, arena-indexed representation of a logical
// pass. A nil-like Unused TextureRef in colorInputs represents the
// "no corresponding input" null slot described by the spec.
type pass struct {
	name string

	attachmentInputs []TextureRef
	// colorInputs and colorScaleInputs are parallel, mutually
	// exclusive slices positionally paired with colorOutputs: a
	// slot starts out populated in colorInputs, and validate moves
	// it to colorScaleInputs (replacing it with Unused in
	// colorInputs) if its dimensions differ from the paired output.
	colorInputs      []TextureRef
	colorScaleInputs []TextureRef
	colorOutputs     []TextureRef
	textureInputs    []TextureRef

	dsInput  TextureRef
	dsOutput TextureRef

	physPass int
}

func newPass(name string) *pass {
	return &pass{name: name, dsInput: Unused, dsOutput: Unused, physPass: Unused}
}

// Graph accumulates pass and texture declarations for a single
// frame and compiles them into a Plan. A Graph is not safe for
// concurrent use by multiple goroutines, but independent Graphs
// operating on disjoint frames may be baked concurrently.
type Graph struct {
	textures   []*textureResource
	textureIdx map[string]TextureRef

	passes   []*pass
	passIdx  map[string]PassRef

	backbuffer string
}

// NewGraph returns an empty Graph ready for pass declarations.
func NewGraph() *Graph {
	return &Graph{
		textureIdx: make(map[string]TextureRef),
		passIdx:    make(map[string]PassRef),
	}
}

// getOrInsertTexture returns the TextureRef for name, creating a new,
// otherwise-undeclared texture resource if necessary.
func (g *Graph) getOrInsertTexture(name string) TextureRef {
	if ref, ok := g.textureIdx[name]; ok {
		return ref
	}
	ref := TextureRef(len(g.textures))
	g.textures = append(g.textures, &textureResource{name: name, physIdx: Unused})
	g.textureIdx[name] = ref
	return ref
}

// texture returns the textureResource referred to by ref.
func (g *Graph) texture(ref TextureRef) *textureResource { return g.textures[ref] }

// AddPass returns the Pass named name, creating it if this is the
// first time name is seen. Calling AddPass with a previously used
// name returns the same Pass, so declarations may be split across
// multiple call sites.
func (g *Graph) AddPass(name string) *Pass {
	ref, ok := g.passIdx[name]
	if !ok {
		ref = PassRef(len(g.passes))
		g.passes = append(g.passes, newPass(name))
		g.passIdx[name] = ref
	}
	return &Pass{g: g, ref: ref}
}

// SetBackbufferSource designates name as the resource ultimately
// presented to the display. Bake fails with ErrUnreachableBackbuffer
// if no declared pass writes it.
func (g *Graph) SetBackbufferSource(name string) { g.backbuffer = name }

// Reset discards every pass and resource declaration, invalidating
// any Plan previously returned by Bake. The Graph is then ready to
// accumulate a new frame's declarations.
func (g *Graph) Reset() {
	g.textures = nil
	g.passes = nil
	g.textureIdx = make(map[string]TextureRef)
	g.passIdx = make(map[string]PassRef)
	g.backbuffer = ""
}

// Pass is a handle to a logical pass declared on a Graph. Its
// methods accumulate the pass's read/write declarations; all
// validation happens when the owning Graph's Bake method runs.
type Pass struct {
	g   *Graph
	ref PassRef
}

// Ref returns the PassRef identifying p within its Graph.
func (p *Pass) Ref() PassRef { return p.ref }

func (p *Pass) self() *pass { return p.g.passes[p.ref] }

// AddAttachmentInput declares that p samples name on-tile as an
// input attachment. It returns name's TextureRef.
func (p *Pass) AddAttachmentInput(name string) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	p.g.texture(ref).readers = append(p.g.texture(ref).readers, p.ref)
	s := p.self()
	s.attachmentInputs = append(s.attachmentInputs, ref)
	return ref
}

// AddColorInput declares name as the color input paired positionally
// with the subsequent call to AddColorOutput at the same index. To
// leave a slot with "no corresponding input", call
// AddNullColorInput instead.
func (p *Pass) AddColorInput(name string) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	p.g.texture(ref).readers = append(p.g.texture(ref).readers, p.ref)
	s := p.self()
	s.colorInputs = append(s.colorInputs, ref)
	s.colorScaleInputs = append(s.colorScaleInputs, Unused)
	return ref
}

// AddNullColorInput pushes a "no corresponding input" null slot onto
// p's color input list, positionally paired with the next color
// output.
func (p *Pass) AddNullColorInput() {
	s := p.self()
	s.colorInputs = append(s.colorInputs, Unused)
	s.colorScaleInputs = append(s.colorScaleInputs, Unused)
}

// AddTextureInput declares that p samples name in a shader, with no
// on-tile locality guarantee.
func (p *Pass) AddTextureInput(name string) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	p.g.texture(ref).readers = append(p.g.texture(ref).readers, p.ref)
	s := p.self()
	s.textureInputs = append(s.textureInputs, ref)
	return ref
}

// AddColorOutput declares name as a color output of p, carrying the
// given AttachmentInfo. info is only honored the first time name is
// written; later calls for the same name are ignored.
func (p *Pass) AddColorOutput(name string, info AttachmentInfo) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	res := p.g.texture(ref)
	res.writers = append(res.writers, p.ref)
	setAttachmentInfo(res, info)
	s := p.self()
	s.colorOutputs = append(s.colorOutputs, ref)
	return ref
}

// SetDepthStencilInput declares name as p's depth-stencil input.
func (p *Pass) SetDepthStencilInput(name string) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	p.g.texture(ref).readers = append(p.g.texture(ref).readers, p.ref)
	p.self().dsInput = ref
	return ref
}

// SetDepthStencilOutput declares name as p's depth-stencil output,
// carrying the given AttachmentInfo (honored the first time name is
// written).
func (p *Pass) SetDepthStencilOutput(name string, info AttachmentInfo) TextureRef {
	ref := p.g.getOrInsertTexture(name)
	res := p.g.texture(ref)
	res.writers = append(res.writers, p.ref)
	setAttachmentInfo(res, info)
	p.self().dsOutput = ref
	return ref
}

// setAttachmentInfo records info on res the first time it is
// written; a resource's size class and format are fixed by its
// first writer.
func setAttachmentInfo(res *textureResource, info AttachmentInfo) {
	if len(res.writers) <= 1 {
		res.info = info
	}
}
