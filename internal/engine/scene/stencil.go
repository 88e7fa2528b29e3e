package scene

import (
	"fmt"

	"github.com/Faultbox/umbra/internal/engine/gpu"
)

// Convention is the stencil counting rule of the shadow volume pass.
type Convention int

const (
	// ConventionDepthFail counts volume faces behind the visible surface
	// (Carmack's reverse). Robust when the camera is inside a volume.
	ConventionDepthFail Convention = iota
	// ConventionDepthPass counts volume faces in front of the visible surface.
	ConventionDepthPass
)

func (c Convention) String() string {
	switch c {
	case ConventionDepthFail:
		return "depth-fail"
	case ConventionDepthPass:
		return "depth-pass"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention parses the names produced by String.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "depth-fail", "":
		return ConventionDepthFail, nil
	case "depth-pass":
		return ConventionDepthPass, nil
	}
	return 0, fmt.Errorf("unknown shadow convention %q", s)
}

// StencilOp is the (stencil fail, depth fail, depth pass) triple of
// glStencilOpSeparate.
type StencilOp struct {
	StencilFail gpu.Enum
	DepthFail   gpu.Enum
	DepthPass   gpu.Enum
}

// StencilOps holds the per-face operations of a convention.
type StencilOps struct {
	Back  StencilOp
	Front StencilOp
}

// StencilOps returns the face operations that implement the convention.
func (c Convention) StencilOps() StencilOps {
	if c == ConventionDepthPass {
		return StencilOps{
			Back:  StencilOp{gpu.Keep, gpu.Keep, gpu.DecrWrap},
			Front: StencilOp{gpu.Keep, gpu.Keep, gpu.IncrWrap},
		}
	}
	return StencilOps{
		Back:  StencilOp{gpu.Keep, gpu.IncrWrap, gpu.Keep},
		Front: StencilOp{gpu.Keep, gpu.DecrWrap, gpu.Keep},
	}
}

// Crossing is a shadow volume face hit by the view ray through a pixel.
type Crossing struct {
	Depth       float32
	FrontFacing bool
}

// EvaluateStencil replays the stencil operations of convention for one
// pixel whose visible surface is at fragmentDepth. The result wraps like an
// 8-bit stencil buffer; a non-zero value means the pixel is in shadow.
func EvaluateStencil(convention Convention, crossings []Crossing, fragmentDepth float32) uint8 {
	ops := convention.StencilOps()
	var stencil uint8
	for _, c := range crossings {
		op := ops.Back
		if c.FrontFacing {
			op = ops.Front
		}
		if c.Depth <= fragmentDepth {
			stencil = applyStencilOp(op.DepthPass, stencil)
		} else {
			stencil = applyStencilOp(op.DepthFail, stencil)
		}
	}
	return stencil
}

func applyStencilOp(op gpu.Enum, v uint8) uint8 {
	switch op {
	case gpu.IncrWrap:
		return v + 1
	case gpu.DecrWrap:
		return v - 1
	case gpu.Zero:
		return 0
	case gpu.Invert:
		return ^v
	}
	return v
}
