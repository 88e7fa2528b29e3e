// Package shader compiles and links the engine's shader programs and checks
// their uniform blocks against the host layouts.
package shader

import (
	"github.com/Faultbox/umbra/internal/engine/shader/glsl"
	"github.com/Faultbox/umbra/internal/engine/ubo"
)

// ProgramID names a linked program.
type ProgramID int

const (
	Default ProgramID = iota
	SpotlightDefault
	DefaultDepthPass
	Instancing
	InstancingSpotLights
	InstancingDepthPass
	InstancedShadowVolume
	PointRendering
	Tonemapping
	TonemappingSingleSample
	NumPrograms
)

// Texture units of the sampler uniforms.
const (
	UnitDiffuse   = 0
	UnitNormal    = 1
	UnitSpecular  = 2
	UnitOcclusion = 3
	UnitShadowMap = 4
	UnitHDR       = 0
)

// programSource describes how to build one program.
type programSource struct {
	name     string
	vertex   string
	geometry string
	fragment string
	blocks   []ubo.Layout
	samplers map[string]int32
}

var (
	transformOnly = []ubo.Layout{ubo.TransformLayout}
	instanced     = []ubo.Layout{ubo.TransformLayout, ubo.InstanceLayout}

	materialUnits = map[string]int32{
		"Diffuse":   UnitDiffuse,
		"Normal":    UnitNormal,
		"Specular":  UnitSpecular,
		"Occlusion": UnitOcclusion,
	}
	spotUnits = map[string]int32{
		"Diffuse":   UnitDiffuse,
		"Normal":    UnitNormal,
		"Specular":  UnitSpecular,
		"Occlusion": UnitOcclusion,
		"ShadowMap": UnitShadowMap,
	}
	hdrUnits = map[string]int32{"HDR": UnitHDR}
)

var programs = [NumPrograms]programSource{
	Default: {
		name:     "Default",
		vertex:   glsl.DefaultVertexShader,
		fragment: glsl.PhongFragmentShader,
		blocks:   transformOnly,
		samplers: materialUnits,
	},
	SpotlightDefault: {
		name:     "SpotlightDefault",
		vertex:   glsl.DefaultVertexShader,
		fragment: glsl.SpotlightFragmentShader,
		blocks:   transformOnly,
		samplers: spotUnits,
	},
	DefaultDepthPass: {
		name:     "DefaultDepthPass",
		vertex:   glsl.DefaultVertexShader,
		fragment: glsl.NullFragmentShader,
		blocks:   transformOnly,
	},
	Instancing: {
		name:     "Instancing",
		vertex:   glsl.InstancingVertexShader,
		fragment: glsl.PhongFragmentShader,
		blocks:   instanced,
		samplers: materialUnits,
	},
	InstancingSpotLights: {
		name:     "InstancingSpotLights",
		vertex:   glsl.InstancingVertexShader,
		fragment: glsl.SpotlightFragmentShader,
		blocks:   instanced,
		samplers: spotUnits,
	},
	InstancingDepthPass: {
		name:     "InstancingDepthPass",
		vertex:   glsl.InstancingVertexShader,
		fragment: glsl.NullFragmentShader,
		blocks:   instanced,
	},
	InstancedShadowVolume: {
		name:     "InstancedShadowVolume",
		vertex:   glsl.ShadowVolumeVertexShader,
		geometry: glsl.ShadowVolumeGeometryShader,
		fragment: glsl.NullFragmentShader,
		blocks:   instanced,
	},
	PointRendering: {
		name:     "PointRendering",
		vertex:   glsl.PointVertexShader,
		fragment: glsl.SingleColorFragmentShader,
		blocks:   transformOnly,
	},
	Tonemapping: {
		name:     "Tonemapping",
		vertex:   glsl.ScreenQuadVertexShader,
		fragment: glsl.TonemappingFragmentShader,
		samplers: hdrUnits,
	},
	TonemappingSingleSample: {
		name:     "TonemappingSingleSample",
		vertex:   glsl.ScreenQuadVertexShader,
		fragment: glsl.TonemappingSingleFragmentShader,
		samplers: hdrUnits,
	},
}

func (id ProgramID) String() string {
	if id < 0 || id >= NumPrograms {
		return "unknown"
	}
	return programs[id].name
}
