package scene

import (
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/lighting"
	"github.com/Faultbox/umbra/pkg/math"
)

// Pass selects what a draw call renders. Exactly one variant applies per
// call: DepthPass, ShadowVolumePass, LightPass or SpotLightPass.
type Pass interface {
	isPass()
}

// DepthPass fills the depth buffer with color writes off.
type DepthPass struct{}

// ShadowVolumePass extrudes the silhouettes of the casters away from Light
// into the stencil buffer.
type ShadowVolumePass struct {
	Light lighting.Light
}

// LightPass adds the contribution of Light. Direct selects the diffuse and
// specular term, Ambient the ambient term; both may be set.
type LightPass struct {
	Light   lighting.Light
	Direct  bool
	Ambient bool
}

// SpotLightPass adds the shadow-mapped spotlight.
type SpotLightPass struct {
	Spot          lighting.SpotLight
	LightViewProj math.Mat4
}

func (DepthPass) isPass()        {}
func (ShadowVolumePass) isPass() {}
func (LightPass) isPass()        {}
func (SpotLightPass) isPass()    {}

// uniform is one resolved uniform value. The number of components picks
// the upload call: 1, 3, 4 floats or a 16-float matrix.
type uniform struct {
	name  string
	value []float32
}

// resolveUniforms returns the uniforms a pass sets on every program it
// draws with. viewPos is the camera position in world space (w = 1).
func resolveUniforms(p Pass, viewPos math.Vec4) []uniform {
	switch p := p.(type) {
	case ShadowVolumePass:
		return []uniform{
			vec4("lightPosWS", p.Light.Position.Vec4(1)),
		}

	case LightPass:
		var w, ambient float32
		if p.Direct {
			w = 1
		}
		if p.Ambient {
			ambient = p.Light.Color.W
		}
		return []uniform{
			vec4("lightPosWS", p.Light.Position.Vec4(w)),
			vec4("viewPosWS", viewPos),
			vec4("lightColor", p.Light.Color.WithW(ambient)),
		}

	case SpotLightPass:
		s := p.Spot
		return []uniform{
			vec4("lightPosWS", s.Position.Vec4(1)),
			vec4("viewPosWS", viewPos),
			vec4("lightColor", s.Color.WithW(0)),
			{"lightDirection", []float32{s.Direction.X, s.Direction.Y, s.Direction.Z}},
			{"cosInnerAngle", []float32{s.CosInner()}},
			{"cosOuterAngle", []float32{s.CosOuter()}},
			{"maxLightDistance", []float32{s.MaxDistance}},
			{"lightViewProj", p.LightViewProj[:]},
		}
	}
	return nil
}

func vec4(name string, v math.Vec4) uniform {
	return uniform{name, []float32{v.X, v.Y, v.Z, v.W}}
}

// applyUniforms uploads uniforms to program, which must be in use.
// Names the program does not declare are skipped.
func applyUniforms(dev gpu.Device, program uint32, uniforms []uniform) {
	for _, u := range uniforms {
		loc := dev.UniformLocation(program, u.name)
		if loc < 0 {
			continue
		}
		v := u.value
		switch len(v) {
		case 1:
			dev.Uniform1f(loc, v[0])
		case 3:
			dev.Uniform3f(loc, v[0], v[1], v[2])
		case 4:
			dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case 16:
			var m [16]float32
			copy(m[:], v)
			dev.UniformMatrix4fv(loc, m)
		}
	}
}
