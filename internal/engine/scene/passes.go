package scene

import (
	"github.com/Faultbox/umbra/internal/engine/geometry"
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/lighting"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/internal/engine/shadow"
	"github.com/Faultbox/umbra/pkg/math"
)

// Light marker appearance.
const (
	markerScale = 0.05
	markerSize  = 10
)

// programSet is the programs a frame draws with.
type programSet struct {
	def, spotDef, defDepth    uint32
	inst, instSpot, instDepth uint32
	shadowVolume, point       uint32
}

func resolvePrograms(p ShaderProvider) programSet {
	return programSet{
		def:          p.Program(shader.Default),
		spotDef:      p.Program(shader.SpotlightDefault),
		defDepth:     p.Program(shader.DefaultDepthPass),
		inst:         p.Program(shader.Instancing),
		instSpot:     p.Program(shader.InstancingSpotLights),
		instDepth:    p.Program(shader.InstancingDepthPass),
		shadowVolume: p.Program(shader.InstancedShadowVolume),
		point:        p.Program(shader.PointRendering),
	}
}

// drawList is everything a pass draws. instances is 0 when the instance
// upload was refused, which skips the cubes.
type drawList struct {
	quad       geometry.Handle
	cube       geometry.Handle
	adjacency  geometry.Handle
	background []drawable
	cubeMat    material
	instances  int32
	sampler    uint32
}

// drawBackground draws the background quads with program. Materials are
// bound only when withMaterial is set.
func drawBackground(dev gpu.Device, program uint32, d drawList, withMaterial bool) {
	if d.quad.VAO == 0 {
		return
	}
	loc := dev.UniformLocation(program, "modelToWorld")
	dev.BindVertexArray(d.quad.VAO)
	for _, b := range d.background {
		if withMaterial {
			b.mat.bind(dev, d.sampler)
		}
		dev.UniformMatrix4x3fv(loc, b.modelToWorld.Affine4x3())
		dev.DrawElements(gpu.Triangles, d.quad.IndexCount, gpu.UnsignedInt, 0)
	}
}

// drawCubes draws the instanced cubes with the program in use.
func drawCubes(dev gpu.Device, d drawList, withMaterial bool) {
	if d.instances == 0 || d.cube.VAO == 0 {
		return
	}
	if withMaterial {
		d.cubeMat.bind(dev, d.sampler)
	}
	dev.BindVertexArray(d.cube.VAO)
	dev.DrawElementsInstanced(gpu.Triangles, d.cube.IndexCount, gpu.UnsignedInt, 0, d.instances)
}

// depthPrimePass lays down scene depth. The caller has color writes off and
// depth writes on.
func depthPrimePass(dev gpu.Device, progs programSet, d drawList) {
	dev.DepthFunc(gpu.LEqual)

	dev.UseProgram(progs.defDepth)
	drawBackground(dev, progs.defDepth, d, false)

	dev.UseProgram(progs.instDepth)
	drawCubes(dev, d, false)

	dev.BindVertexArray(0)
}

// shadowVolumePass renders the extruded cube silhouettes of one light into
// the stencil buffer. The caller has cleared stencil, enabled the stencil
// test and disabled color writes.
func shadowVolumePass(dev gpu.Device, program uint32, pass ShadowVolumePass, conv Convention, d drawList) {
	if d.instances == 0 || d.adjacency.VAO == 0 {
		return
	}
	dev.Disable(gpu.CullFace)

	dev.StencilFunc(gpu.Always, 0, 0xff)
	ops := conv.StencilOps()
	dev.StencilOpSeparate(gpu.Back, ops.Back.StencilFail, ops.Back.DepthFail, ops.Back.DepthPass)
	dev.StencilOpSeparate(gpu.Front, ops.Front.StencilFail, ops.Front.DepthFail, ops.Front.DepthPass)

	dev.UseProgram(program)
	applyUniforms(dev, program, resolveUniforms(pass, math.Vec4{}))
	dev.BindVertexArray(d.adjacency.VAO)
	dev.DrawElementsInstanced(gpu.TrianglesAdjacency, d.adjacency.IndexCount, gpu.UnsignedInt, 0, d.instances)
	dev.BindVertexArray(0)

	dev.Enable(gpu.CullFace)
}

// lightPass adds one light to the HDR target with additive blending. For a
// direct pass the stencil test must be enabled by the caller; only pixels
// with a zero count are lit.
func lightPass(dev gpu.Device, progs programSet, pass LightPass, viewPos math.Vec4, d drawList) {
	if pass.Direct {
		dev.StencilFunc(gpu.Equal, 0, 0xff)
		dev.StencilOp(gpu.Keep, gpu.Keep, gpu.Keep)
	}
	additiveBlend(dev)
	uniforms := resolveUniforms(pass, viewPos)
	drawLit(dev, progs.def, progs.inst, uniforms, d)
}

// spotLightPass adds the spotlight, sampling the shadow map on its unit.
func spotLightPass(dev gpu.Device, progs programSet, pass SpotLightPass, viewPos math.Vec4, sm *shadow.Map, d drawList) {
	additiveBlend(dev)
	if sm != nil {
		sm.BindTexture(shader.UnitShadowMap)
		// The comparison state lives on the texture, not on a sampler.
		dev.BindSampler(shader.UnitShadowMap, 0)
	}
	uniforms := resolveUniforms(pass, viewPos)
	drawLit(dev, progs.spotDef, progs.instSpot, uniforms, d)
}

func drawLit(dev gpu.Device, background, instanced uint32, uniforms []uniform, d drawList) {
	dev.UseProgram(background)
	applyUniforms(dev, background, uniforms)
	drawBackground(dev, background, d, true)

	dev.UseProgram(instanced)
	applyUniforms(dev, instanced, uniforms)
	drawCubes(dev, d, true)

	dev.BindVertexArray(0)
}

func additiveBlend(dev gpu.Device) {
	dev.Enable(gpu.Blend)
	dev.BlendEquation(gpu.FuncAdd)
	dev.BlendFunc(gpu.One, gpu.One)
}

// markerPass draws the light as a point in its own color.
func markerPass(dev gpu.Device, program, vao uint32, light lighting.Light) {
	dev.Disable(gpu.Blend)
	dev.UseProgram(program)

	p, c := light.Position, light.Color.XYZ().Scale(markerScale)
	dev.Uniform3f(dev.UniformLocation(program, "position"), p.X, p.Y, p.Z)
	dev.Uniform3f(dev.UniformLocation(program, "color"), c.X, c.Y, c.Z)

	dev.PointSize(markerSize)
	dev.BindVertexArray(vao)
	dev.DrawArrays(gpu.Points, 0, 1)
	dev.BindVertexArray(0)
}

// shadowMapPass renders cube depth from the light camera into the shadow
// map and restores the view camera, the HDR target and depth writes.
func shadowMapPass(dev gpu.Device, program uint32, f frame, light shadow.LightCamera, d drawList) {
	if f.shadowMap == nil {
		return
	}
	f.transform.Update(light.WorldToView(), light.Projection())

	dev.DepthMask(true)
	f.shadowMap.Bind()

	dev.UseProgram(program)
	drawCubes(dev, d, false)
	dev.BindVertexArray(0)

	f.targets.Bind()
	dev.DepthMask(false)
	f.transform.Update(f.view.WorldToView(), f.view.Projection())
}
