package scene

import (
	"path/filepath"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/pkg/math"
)

// Background layout: a 30x30 floor and two walls along its far edges.
const (
	floorSize     = 30
	checkerSize   = 512
	checkerSquare = 32
)

// material is the texture set bound to units 0-3.
type material struct {
	diffuse   uint32
	normal    uint32
	specular  uint32
	occlusion uint32
}

// bind attaches the textures and sampler to their units.
func (m material) bind(dev gpu.Device, sampler uint32) {
	for unit, tex := range [...]uint32{
		shader.UnitDiffuse:   m.diffuse,
		shader.UnitNormal:    m.normal,
		shader.UnitSpecular:  m.specular,
		shader.UnitOcclusion: m.occlusion,
	} {
		dev.ActiveTexture(gpu.Texture0 + uint32(unit))
		dev.BindTexture(gpu.Texture2D, tex)
		dev.BindSampler(uint32(unit), sampler)
	}
}

// drawable is one non-instanced quad of the background.
type drawable struct {
	modelToWorld math.Mat4
	mat          material
}

func (s *Scene) buildBackground() []drawable {
	mat := material{
		diffuse:   s.tex.Checkerboard(checkerSize, checkerSquare),
		normal:    s.tex.SolidColor(127, 127, 255),
		specular:  s.tex.SolidColor(127, 127, 127),
		occlusion: s.tex.SolidColor(255, 255, 255),
	}
	scale := math.Scale(math.Vec3{X: floorSize, Y: 1, Z: floorSize})
	half := float32(floorSize) / 2

	floor := scale
	zWall := math.Translate(math.Vec3{Z: half}).
		Mul(math.RotateAxis(math.Vec3{X: 1}, -math32.Pi/2)).
		Mul(scale)
	xWall := math.Translate(math.Vec3{X: half}).
		Mul(math.RotateAxis(math.Vec3{Z: 1}, math32.Pi/2)).
		Mul(scale)

	return []drawable{
		{floor, mat},
		{zWall, mat},
		{xWall, mat},
	}
}

// loadCubeMaterial loads the cube textures from the texture directory,
// using solid colors for any that cannot be read.
func (s *Scene) loadCubeMaterial() material {
	load := func(name string, srgb bool, r, g, b uint8) uint32 {
		if name != "" {
			path := filepath.Join(s.opt.TextureDir, name)
			tex, err := s.tex.Load(path, srgb)
			if err == nil {
				return tex
			}
			s.log.Warn("texture unavailable, using solid color",
				zap.String("path", path),
				zap.Error(err))
		}
		return s.tex.SolidColor(r, g, b)
	}
	return material{
		diffuse:   load(s.opt.Diffuse, true, 200, 200, 200),
		normal:    load(s.opt.Normal, false, 127, 127, 255),
		specular:  load(s.opt.Specular, false, 127, 127, 127),
		occlusion: load(s.opt.Occlusion, false, 255, 255, 255),
	}
}
