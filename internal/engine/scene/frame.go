package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/framebuffer"
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/shadow"
	"github.com/Faultbox/umbra/internal/engine/texture"
	"github.com/Faultbox/umbra/internal/engine/ubo"
	"github.com/Faultbox/umbra/pkg/math"
)

// frame carries the per-frame state the shadow map pass restores.
type frame struct {
	view      Camera
	transform *ubo.TransformBlock
	targets   *framebuffer.Targets
	shadowMap *shadow.Map
}

// Draw renders one frame into the HDR target:
//
//	depth prime
//	for each point light: stencil clear, shadow volumes, direct light, ambient light, marker
//	spotlight: shadow map, spot light
func (s *Scene) Draw(cam Camera, settings RenderSettings, conv Convention) {
	if !s.initialized {
		return
	}
	dev := s.dev

	s.targets.Bind()
	s.transform.Update(cam.WorldToView(), cam.Projection())

	d := drawList{
		quad:       s.geo.Quad(),
		cube:       s.geo.Cube(),
		adjacency:  s.geo.CubeAdjacency(),
		background: s.background,
		cubeMat:    s.cubeMat,
		sampler:    s.tex.Sampler(texture.Anisotropic),
	}
	if _, err := s.instances.Update(s.cubes); err != nil {
		s.log.Warn("instance upload refused, skipping cubes", zap.Error(err))
	} else {
		d.instances = int32(s.instances.Count())
	}
	s.instances.Bind()
	progs := resolvePrograms(s.shaders)

	if settings.MSAASamples > 1 {
		dev.Enable(gpu.Multisample)
	} else {
		dev.Disable(gpu.Multisample)
	}
	dev.Enable(gpu.CullFace)
	dev.CullFace(gpu.Back)
	if settings.Wireframe {
		dev.PolygonMode(gpu.FrontAndBack, gpu.Line)
	} else {
		dev.PolygonMode(gpu.FrontAndBack, gpu.Fill)
	}
	dev.Enable(gpu.DepthTest)
	// Far caps are projected to infinity; clamping keeps them from being
	// clipped by the far plane.
	dev.Enable(gpu.DepthClamp)
	dev.DepthFunc(gpu.LEqual)
	dev.DepthMask(true)

	dev.ClearColor(0, 0, 0, 1)
	dev.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	dev.ColorMask(false, false, false, false)
	depthPrimePass(dev, progs, d)
	dev.DepthMask(false)

	viewPos := cam.ViewToWorld().Column(3)
	for _, light := range s.lights.Lights() {
		dev.Clear(gpu.StencilBufferBit)
		dev.Enable(gpu.StencilTest)
		dev.ColorMask(false, false, false, false)
		shadowVolumePass(dev, progs.shadowVolume, ShadowVolumePass{Light: light}, conv, d)

		dev.ColorMask(true, true, true, true)
		lightPass(dev, progs, LightPass{Light: light, Direct: true}, viewPos, d)

		dev.Disable(gpu.StencilTest)
		lightPass(dev, progs, LightPass{Light: light, Ambient: true}, viewPos, d)
		markerPass(dev, progs.point, s.pointVAO.Name(), light)
	}

	if s.spotlight {
		spot := s.lights.Spot()
		f := frame{
			view:      cam,
			transform: s.transform,
			targets:   s.targets,
			shadowMap: s.targets.ShadowMap(),
		}
		lightCam := shadow.NewLightCamera(spot.Position, math.Vec3{}, cam.Projection(), cam.Near(), cam.Far())
		shadowMapPass(dev, progs.instDepth, f, lightCam, d)
		pass := SpotLightPass{Spot: spot, LightViewProj: lightCam.ViewProjection()}
		spotLightPass(dev, progs, pass, viewPos, f.shadowMap, d)
	}

	dev.ColorMask(true, true, true, true)
	dev.Disable(gpu.Blend)
	dev.DepthMask(true)
}
