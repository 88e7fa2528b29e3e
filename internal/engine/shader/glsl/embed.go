// Package glsl provides embedded GLSL shader sources.
package glsl

import _ "embed"

// DefaultVertexShader transforms non-instanced geometry by a modelToWorld
// uniform.
//
//go:embed default.vert
var DefaultVertexShader string

// InstancingVertexShader reads model-to-world matrices from InstanceBuffer.
//
//go:embed instancing.vert
var InstancingVertexShader string

// ShadowVolumeVertexShader outputs instanced world positions for extrusion.
//
//go:embed shadow_volume.vert
var ShadowVolumeVertexShader string

// PointVertexShader places a single point given in world space.
//
//go:embed point.vert
var PointVertexShader string

// ScreenQuadVertexShader emits a fullscreen quad from gl_VertexID.
//
//go:embed screen_quad.vert
var ScreenQuadVertexShader string

// PhongFragmentShader shades one light, direct or ambient term.
//
//go:embed phong.frag
var PhongFragmentShader string

// SpotlightFragmentShader shades a shadow-mapped spotlight cone.
//
//go:embed spotlight.frag
var SpotlightFragmentShader string

// SingleColorFragmentShader writes a constant color.
//
//go:embed single_color.frag
var SingleColorFragmentShader string

// NullFragmentShader is used by depth and stencil passes.
//
//go:embed null.frag
var NullFragmentShader string

// TonemappingFragmentShader resolves a multisampled HDR texture.
//
//go:embed tonemapping.frag
var TonemappingFragmentShader string

// TonemappingSingleFragmentShader tonemaps a single-sampled HDR texture.
//
//go:embed tonemapping_single.frag
var TonemappingSingleFragmentShader string

// ShadowVolumeGeometryShader extrudes silhouette edges to infinity.
//
//go:embed shadow_volume.geom
var ShadowVolumeGeometryShader string
