// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package graph

import (
	"errors"
	"testing"

	"github.com/gviegas/rgraph/driver"
)

func TestValidateShapeMismatch(t *testing.T) {
	driver.SetSwapchainDimensions(driver.SwapchainDimensions{Width: 1920, Height: 1080})

	g := NewGraph()
	p := g.AddPass("p")
	p.AddColorInput("a")
	p.AddColorOutput("b", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})
	p.AddColorOutput("c", AttachmentInfo{SizeClass: Absolute, SizeX: 1, SizeY: 1})

	if err := g.validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("validate: have %v, want ErrShapeMismatch", err)
	}
}

func TestValidateDepthStencilDimensionMismatch(t *testing.T) {
	driver.SetSwapchainDimensions(driver.SwapchainDimensions{Width: 1920, Height: 1080})

	g := NewGraph()
	p := g.AddPass("p")
	p.SetDepthStencilInput("din")
	p.SetDepthStencilOutput("dout", AttachmentInfo{SizeClass: Absolute, SizeX: 2, SizeY: 2})

	// din was never written, so it keeps the zero AttachmentInfo
	// (0x0 swapchain-relative), which differs from dout's 2x2.
	if err := g.validate(); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("validate: have %v, want ErrDimensionMismatch", err)
	}
}

func TestValidateReclassifiesScaledColorInput(t *testing.T) {
	driver.SetSwapchainDimensions(driver.SwapchainDimensions{Width: 1920, Height: 1080})

	g := NewGraph()
	low := g.AddPass("low")
	low.AddColorOutput("low_res", AttachmentInfo{SizeClass: Absolute, SizeX: 320, SizeY: 180})

	p := g.AddPass("p")
	p.AddColorInput("low_res")
	p.AddColorOutput("full_res", AttachmentInfo{SizeClass: Absolute, SizeX: 1920, SizeY: 1080})

	if err := g.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	s := g.passes[g.passIdx["p"]]
	if s.colorInputs[0] != Unused {
		t.Fatalf("colorInputs[0]: have %d, want Unused", s.colorInputs[0])
	}
	if s.colorScaleInputs[0] == Unused {
		t.Fatal("colorScaleInputs[0]: have Unused, want low_res's ref")
	}
}

func TestValidatePassesMatchingColorInputDimensions(t *testing.T) {
	driver.SetSwapchainDimensions(driver.SwapchainDimensions{Width: 1920, Height: 1080})

	g := NewGraph()
	low := g.AddPass("low")
	low.AddColorOutput("a", AttachmentInfo{SizeClass: Absolute, SizeX: 640, SizeY: 480})

	p := g.AddPass("p")
	p.AddColorInput("a")
	p.AddColorOutput("b", AttachmentInfo{SizeClass: Absolute, SizeX: 640, SizeY: 480})

	if err := g.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	s := g.passes[g.passIdx["p"]]
	if s.colorInputs[0] == Unused {
		t.Fatal("colorInputs[0]: have Unused, want a's ref (same dimensions, not reclassified)")
	}
	if s.colorScaleInputs[0] != Unused {
		t.Fatalf("colorScaleInputs[0]: have %d, want Unused", s.colorScaleInputs[0])
	}
}
