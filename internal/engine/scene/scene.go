// Package scene renders the shadow volume lab: a floor, two walls and a set
// of instanced cubes lit by animated point lights with stencil shadows,
// plus an optional shadow-mapped spotlight.
package scene

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/framebuffer"
	"github.com/Faultbox/umbra/internal/engine/geometry"
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/instancing"
	"github.com/Faultbox/umbra/internal/engine/lighting"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/internal/engine/texture"
	"github.com/Faultbox/umbra/internal/engine/ubo"
	"github.com/Faultbox/umbra/internal/logger"
	"github.com/Faultbox/umbra/pkg/math"
)

// Camera is the viewpoint a frame is rendered from.
type Camera interface {
	WorldToView() math.Mat4
	ViewToWorld() math.Mat4
	Projection() math.Mat4
	Near() float32
	Far() float32
}

// GeometryProvider supplies the uploaded meshes.
type GeometryProvider interface {
	Quad() geometry.Handle
	Cube() geometry.Handle
	CubeAdjacency() geometry.Handle
}

// TextureProvider creates textures and owns the sampler objects.
type TextureProvider interface {
	SolidColor(r, g, b uint8) uint32
	Checkerboard(size, checker int) uint32
	Load(path string, srgb bool) (uint32, error)
	Sampler(kind texture.SamplerKind) uint32
}

// ShaderProvider returns linked programs.
type ShaderProvider interface {
	Program(id shader.ProgramID) uint32
}

// Providers bundles the collaborators a Scene draws with. The scene does
// not release anything they own.
type Providers struct {
	Geometry GeometryProvider
	Textures TextureProvider
	Shaders  ShaderProvider
}

// Options configures a Scene.
type Options struct {
	// TextureDir holds the cube material images. Missing files fall back
	// to solid colors.
	TextureDir string
	Diffuse    string
	Normal     string
	Specular   string
	Occlusion  string

	// Seed drives cube placement and light randomization.
	Seed uint64
	// InstanceCapacity limits the cube count; 0 means instancing.MaxInstances.
	InstanceCapacity int
	Spotlight        bool
}

// RenderSettings are fixed for a frame and changed by the driver between
// frames.
type RenderSettings struct {
	VSync       bool
	Wireframe   bool
	Tonemapping bool
	MSAASamples int32
}

// Scene is the renderer context. It owns the transform and instance
// blocks, the offscreen targets and the lights.
type Scene struct {
	dev     gpu.Device
	geo     GeometryProvider
	tex     TextureProvider
	shaders ShaderProvider
	opt     Options
	log     *zap.Logger

	capacity    int
	initialized bool
	spotlight   bool

	targets   *framebuffer.Targets
	transform *ubo.TransformBlock
	instances *instancing.Batcher
	pointVAO  *gpu.VertexArray

	lights     *lighting.Store
	cubes      []math.Vec3
	background []drawable
	cubeMat    material
}

// New creates a scene. GPU resources other than the target framebuffer are
// allocated by Init.
func New(dev gpu.Device, p Providers, opt Options) *Scene {
	capacity := opt.InstanceCapacity
	if capacity <= 0 || capacity > instancing.MaxInstances {
		capacity = instancing.MaxInstances
	}
	return &Scene{
		dev:       dev,
		geo:       p.Geometry,
		tex:       p.Textures,
		shaders:   p.Shaders,
		opt:       opt,
		log:       logger.Named("scene"),
		capacity:  capacity,
		spotlight: opt.Spotlight,
		targets:   framebuffer.New(dev),
	}
}

// Init places cubeCount cubes and creates lightCount point lights. The
// first call allocates the GPU blocks; later calls do nothing.
func (s *Scene) Init(cubeCount, lightCount int) error {
	if s.initialized {
		return nil
	}
	if cubeCount > s.capacity {
		return fmt.Errorf("%w: %d cubes, capacity %d", instancing.ErrCapacityExceeded, cubeCount, s.capacity)
	}
	if cubeCount < 0 {
		cubeCount = 0
	}

	rng := rand.New(rand.NewPCG(s.opt.Seed, s.opt.Seed^0x9e3779b97f4a7c15))
	s.cubes = placeCubes(cubeCount, rng)
	s.lights = lighting.NewStore(lightCount, rng)

	s.transform = ubo.NewTransformBlock(s.dev)
	s.instances = instancing.New(s.dev, s.capacity)
	s.pointVAO = gpu.NewVertexArray(s.dev)

	s.background = s.buildBackground()
	s.cubeMat = s.loadCubeMaterial()

	s.initialized = true
	s.log.Info("scene initialized",
		zap.Int("cubes", len(s.cubes)),
		zap.Int("lights", s.lights.Len()),
		zap.Bool("spotlight", s.spotlight))
	return nil
}

// placeCubes puts the first cube on the floor at the origin and scatters
// the rest above the floor.
func placeCubes(n int, rng *rand.Rand) []math.Vec3 {
	cubes := make([]math.Vec3, n)
	for i := range cubes {
		if i == 0 {
			cubes[i] = math.Vec3{Y: 0.5}
			continue
		}
		cubes[i] = math.Vec3{
			X: -5 + rng.Float32()*10,
			Y: 1 + rng.Float32()*4,
			Z: -5 + rng.Float32()*10,
		}
	}
	return cubes
}

// Update advances the lights by dt seconds.
func (s *Scene) Update(dt float32) {
	if !s.initialized {
		return
	}
	s.lights.Update(dt)
}

// ConfigureTargets recreates the offscreen targets. An *IncompleteError is
// returned for the caller to report; the scene keeps rendering.
func (s *Scene) ConfigureTargets(width, height, samples int32) error {
	return s.targets.Configure(width, height, samples)
}

// Targets returns the offscreen targets.
func (s *Scene) Targets() *framebuffer.Targets {
	return s.targets
}

// Lights returns the light store, nil before Init.
func (s *Scene) Lights() *lighting.Store {
	return s.lights
}

// Cubes returns the cube positions.
func (s *Scene) Cubes() []math.Vec3 {
	return s.cubes
}

// SetSpotlight enables or disables the shadow-mapped spotlight.
func (s *Scene) SetSpotlight(on bool) {
	s.spotlight = on
}

// Spotlight reports whether the spotlight is drawn.
func (s *Scene) Spotlight() bool {
	return s.spotlight
}

// Destroy releases everything the scene allocated. Safe to call twice; the
// scene draws nothing afterwards.
func (s *Scene) Destroy() {
	s.targets.Destroy()
	if s.transform != nil {
		s.transform.Release()
		s.instances.Release()
		s.pointVAO.Release()
	}
	s.initialized = false
}
