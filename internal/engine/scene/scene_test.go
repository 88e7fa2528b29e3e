package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/umbra/internal/engine/camera"
	"github.com/Faultbox/umbra/internal/engine/geometry"
	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/gpu/gputest"
	"github.com/Faultbox/umbra/internal/engine/instancing"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/internal/engine/texture"
	"github.com/Faultbox/umbra/internal/engine/ubo"
	"github.com/Faultbox/umbra/pkg/math"
)

// Fake GL names handed out by the fake providers. They sit far above the
// recorder's counter so they never collide.
const (
	quadVAO      = 9001
	cubeVAO      = 9002
	adjacencyVAO = 9003
	quadIndices  = 6
	cubeIndices  = 36
	adjIndices   = 72
	anisoSampler = 9100
)

type fakeGeometry struct{}

func (fakeGeometry) Quad() geometry.Handle { return geometry.Handle{VAO: quadVAO, IndexCount: quadIndices} }
func (fakeGeometry) Cube() geometry.Handle { return geometry.Handle{VAO: cubeVAO, IndexCount: cubeIndices} }
func (fakeGeometry) CubeAdjacency() geometry.Handle {
	return geometry.Handle{VAO: adjacencyVAO, IndexCount: adjIndices}
}

type fakeTextures struct {
	next    uint32
	solid   int
	loaded  []string
	loadErr error
}

func (f *fakeTextures) name() uint32 {
	f.next++
	return 9200 + f.next
}

func (f *fakeTextures) SolidColor(r, g, b uint8) uint32 {
	f.solid++
	return f.name()
}

func (f *fakeTextures) Checkerboard(size, checker int) uint32 { return f.name() }

func (f *fakeTextures) Load(path string, srgb bool) (uint32, error) {
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	f.loaded = append(f.loaded, path)
	return f.name(), nil
}

func (f *fakeTextures) Sampler(kind texture.SamplerKind) uint32 {
	if kind == texture.Anisotropic {
		return anisoSampler
	}
	return 0
}

type fakeShaders struct{}

func (fakeShaders) Program(id shader.ProgramID) uint32 { return 100 + uint32(id) }

func program(id shader.ProgramID) uint32 { return fakeShaders{}.Program(id) }

func newTestScene(t *testing.T, opt Options) (*Scene, *gputest.Recorder, *fakeTextures) {
	t.Helper()
	rec := gputest.New()
	tex := &fakeTextures{}
	s := New(rec, Providers{Geometry: fakeGeometry{}, Textures: tex, Shaders: fakeShaders{}}, opt)
	return s, rec, tex
}

func testCamera() camera.Camera {
	cam := camera.New(camera.Config{FOV: 60, Near: 0.1, Far: 100, Speed: 1, TurboSpeed: 2}, 16.0/9)
	cam.LookAt(math.Vec3{X: -3, Y: 3, Z: -5}, math.Vec3{})
	return cam
}

func drawFrame(t *testing.T, s *Scene, rec *gputest.Recorder, conv Convention) {
	t.Helper()
	require.NoError(t, s.ConfigureTargets(320, 180, 1))
	rec.ResetCalls()
	s.Draw(testCamera(), RenderSettings{MSAASamples: 1}, conv)
}

func TestInitPlacesHeroLight(t *testing.T) {
	s, _, _ := newTestScene(t, Options{Seed: 7})
	require.NoError(t, s.Init(5, 1))

	require.Len(t, s.Cubes(), 5)
	assert.Equal(t, math.Vec3{Y: 0.5}, s.Cubes()[0])
	for _, c := range s.Cubes()[1:] {
		assert.True(t, c.X >= -5 && c.X <= 5, "x %v", c.X)
		assert.True(t, c.Y >= 1 && c.Y <= 5, "y %v", c.Y)
		assert.True(t, c.Z >= -5 && c.Z <= 5, "z %v", c.Z)
	}

	s.Update(0)
	require.Equal(t, 1, s.Lights().Len())
	hero := s.Lights().Lights()[0].Position
	assert.InDelta(t, -3, hero.X, 1e-6)
	assert.InDelta(t, 3, hero.Y, 1e-6)
	assert.InDelta(t, 0, hero.Z, 1e-6)
}

func TestInitIsIdempotent(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	require.NoError(t, s.Init(3, 2))
	live := rec.Live("")
	cubes := s.Cubes()

	require.NoError(t, s.Init(10, 10))
	assert.Equal(t, live, rec.Live(""))
	assert.Equal(t, cubes, s.Cubes())
	assert.Equal(t, 2, s.Lights().Len())
}

func TestInitRejectsTooManyCubes(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	err := s.Init(instancing.MaxInstances+1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, instancing.ErrCapacityExceeded))
	assert.Zero(t, rec.Live("Buffer"))

	// A valid call still works afterwards.
	require.NoError(t, s.Init(instancing.MaxInstances, 1))
}

func TestInitSeedIsDeterministic(t *testing.T) {
	a, _, _ := newTestScene(t, Options{Seed: 42})
	b, _, _ := newTestScene(t, Options{Seed: 42})
	require.NoError(t, a.Init(6, 3))
	require.NoError(t, b.Init(6, 3))
	assert.Equal(t, a.Cubes(), b.Cubes())
	assert.Equal(t, a.Lights().Lights(), b.Lights().Lights())
}

func TestCubeTexturesLoadFromDirectory(t *testing.T) {
	s, _, tex := newTestScene(t, Options{TextureDir: "textures", Diffuse: "d.png", Normal: "n.png"})
	require.NoError(t, s.Init(1, 1))
	assert.Equal(t, []string{"textures/d.png", "textures/n.png"}, tex.loaded)
}

func TestMissingCubeTexturesFallBackToSolidColors(t *testing.T) {
	s, _, tex := newTestScene(t, Options{Diffuse: "d.png", Normal: "n.png", Specular: "s.png", Occlusion: "o.png"})
	tex.loadErr = errors.New("no such file")
	require.NoError(t, s.Init(1, 1))

	// Three background colors plus four cube fallbacks.
	assert.Equal(t, 7, tex.solid)
	assert.NotZero(t, s.cubeMat.diffuse)
}

func TestStencilClearedBeforeEachShadowVolumePass(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	require.NoError(t, s.Init(4, 3))
	drawFrame(t, s, rec, ConventionDepthFail)

	volumes := rec.Indices("DrawElementsInstanced", gpu.TrianglesAdjacency)
	clears := rec.Indices("Clear", gpu.StencilBufferBit)
	require.Len(t, volumes, 3)
	require.Len(t, clears, 3)

	for k := range volumes {
		assert.Less(t, clears[k], volumes[k])
		if k > 0 {
			assert.Greater(t, clears[k], volumes[k-1], "stencil not cleared between lights")
		}
		enable := rec.Index(clears[k], "Enable", gpu.StencilTest)
		assert.True(t, enable > clears[k] && enable < volumes[k])
	}
}

func TestShadowVolumeStencilOpsFollowConvention(t *testing.T) {
	for _, conv := range []Convention{ConventionDepthFail, ConventionDepthPass} {
		t.Run(conv.String(), func(t *testing.T) {
			s, rec, _ := newTestScene(t, Options{})
			require.NoError(t, s.Init(2, 1))
			drawFrame(t, s, rec, conv)

			ops := conv.StencilOps()
			assert.Len(t, rec.Find("StencilOpSeparate", gpu.Back, ops.Back.StencilFail, ops.Back.DepthFail, ops.Back.DepthPass), 1)
			assert.Len(t, rec.Find("StencilOpSeparate", gpu.Front, ops.Front.StencilFail, ops.Front.DepthFail, ops.Front.DepthPass), 1)
			assert.Len(t, rec.Find("StencilFunc", gpu.Always, int32(0), uint32(0xff)), 1)

			// Culling is off only while volumes are drawn.
			vol := rec.Index(0, "DrawElementsInstanced", gpu.TrianglesAdjacency)
			off := rec.Index(0, "Disable", gpu.CullFace)
			on := rec.Index(vol, "Enable", gpu.CullFace)
			assert.True(t, off >= 0 && off < vol)
			assert.Greater(t, on, vol)
		})
	}
}

func TestDrawSequence(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	require.NoError(t, s.Init(2, 1))
	drawFrame(t, s, rec, ConventionDepthFail)

	bind := rec.Index(0, "BindFramebuffer", gpu.FramebufferTarget, s.Targets().Framebuffer())
	require.Equal(t, 0, bind, "HDR target is bound first")

	clear := rec.Index(0, "Clear", gpu.ColorBufferBit|gpu.DepthBufferBit)
	colorOff := rec.Index(clear, "ColorMask", false, false, false, false)
	prime := rec.Index(0, "UseProgram", program(shader.DefaultDepthPass))
	depthOff := rec.Index(prime, "DepthMask", false)
	stencil := rec.Index(0, "Clear", gpu.StencilBufferBit)
	colorOn := rec.Index(stencil, "ColorMask", true, true, true, true)
	direct := rec.Index(colorOn, "StencilFunc", gpu.Equal, int32(0), uint32(0xff))
	stencilOff := rec.Index(direct, "Disable", gpu.StencilTest)
	marker := rec.Index(stencilOff, "DrawArrays", gpu.Points, int32(0), int32(1))

	order := []int{bind, clear, colorOff, prime, depthOff, stencil, colorOn, direct, stencilOff, marker}
	for i := 1; i < len(order); i++ {
		require.Greater(t, order[i], order[i-1], "step %d out of order: %v", i, order)
	}

	assert.NotEmpty(t, rec.Find("Enable", gpu.DepthClamp))
	assert.NotEmpty(t, rec.Find("DepthFunc", gpu.LEqual))
	assert.NotEmpty(t, rec.Find("BlendFunc", gpu.One, gpu.One))
	assert.NotEmpty(t, rec.Find("PolygonMode", gpu.FrontAndBack, gpu.Fill))
	assert.NotEmpty(t, rec.Find("Disable", gpu.Multisample))
	assert.NotEmpty(t, rec.Find("BindSampler", uint32(0), uint32(anisoSampler)))

	// Depth prime draws all three background quads and the cubes.
	assert.Len(t, rec.Find("DrawElements", gpu.Triangles, int32(quadIndices)), 3*3)
	assert.Len(t, rec.Find("DrawElementsInstanced", gpu.Triangles, int32(cubeIndices), gpu.UnsignedInt, 0, int32(2)), 3)
}

func TestDrawWireframeAndMSAA(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	require.NoError(t, s.Init(1, 1))
	require.NoError(t, s.ConfigureTargets(64, 64, 4))
	rec.ResetCalls()

	s.Draw(testCamera(), RenderSettings{Wireframe: true, MSAASamples: 4}, ConventionDepthFail)
	assert.NotEmpty(t, rec.Find("PolygonMode", gpu.FrontAndBack, gpu.Line))
	assert.NotEmpty(t, rec.Find("Enable", gpu.Multisample))
}

func TestLightPassUniforms(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	require.NoError(t, s.Init(1, 1))
	s.Update(0)
	drawFrame(t, s, rec, ConventionDepthFail)

	light := s.Lights().Lights()[0]
	def := program(shader.Default)
	loc := rec.LocationOf(def, "lightPosWS")
	require.GreaterOrEqual(t, loc, int32(0))

	p := light.Position
	assert.NotEmpty(t, rec.Find("Uniform4f", loc, p.X, p.Y, p.Z, float32(1)), "direct")
	assert.NotEmpty(t, rec.Find("Uniform4f", loc, p.X, p.Y, p.Z, float32(0)), "ambient")

	color := rec.LocationOf(def, "lightColor")
	c := light.Color
	assert.NotEmpty(t, rec.Find("Uniform4f", color, c.X, c.Y, c.Z, float32(0)))
	assert.NotEmpty(t, rec.Find("Uniform4f", color, c.X, c.Y, c.Z, s.Lights().Ambient()))

	marker := rec.LocationOf(program(shader.PointRendering), "color")
	assert.NotEmpty(t, rec.Find("Uniform3f", marker, c.X*markerScale, c.Y*markerScale, c.Z*markerScale))
}

func TestDrawUploadsFullCapacity(t *testing.T) {
	const capacity = 8
	s, rec, _ := newTestScene(t, Options{InstanceCapacity: capacity})
	require.NoError(t, s.Init(capacity, 1))
	drawFrame(t, s, rec, ConventionDepthFail)

	assert.Len(t, rec.Find("MapBuffer", gpu.UniformBuffer, gpu.WriteOnly, capacity*instancing.InstanceSize), 1)
	assert.NotEmpty(t, rec.Find("DrawElementsInstanced", gpu.Triangles, int32(cubeIndices), gpu.UnsignedInt, 0, int32(capacity)))
}

func TestDrawSkipsCubesWhenUploadRefused(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{InstanceCapacity: 2})
	require.NoError(t, s.Init(2, 1))
	s.cubes = append(s.cubes, math.Vec3{X: 1})
	drawFrame(t, s, rec, ConventionDepthFail)

	assert.Empty(t, rec.Find("MapBuffer"))
	assert.Empty(t, rec.Find("DrawElementsInstanced"))
	assert.NotEmpty(t, rec.Find("DrawElements", gpu.Triangles, int32(quadIndices)))
}

func TestSpotlightRendersShadowMapAndRestores(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{Spotlight: true})
	require.NoError(t, s.Init(2, 1))
	cam := testCamera()
	require.NoError(t, s.ConfigureTargets(320, 180, 1))
	rec.ResetCalls()
	s.Draw(cam, RenderSettings{MSAASamples: 1}, ConventionDepthFail)

	sm := s.Targets().ShadowMap()
	toShadow := rec.Index(0, "BindFramebuffer", gpu.FramebufferTarget, sm.Framebuffer())
	require.Greater(t, toShadow, 0)
	maskOn := rec.Index(0, "DepthMask", true)
	for maskOn >= 0 && maskOn < toShadow {
		next := rec.Index(maskOn+1, "DepthMask", true)
		if next < 0 || next > toShadow {
			break
		}
		maskOn = next
	}
	assert.Less(t, maskOn, toShadow, "depth writes enabled before the shadow map clear")

	depthDraw := rec.Index(toShadow, "UseProgram", program(shader.InstancingDepthPass))
	back := rec.Index(toShadow, "BindFramebuffer", gpu.FramebufferTarget, s.Targets().Framebuffer())
	spot := rec.Index(back, "UseProgram", program(shader.InstancingSpotLights))
	assert.True(t, depthDraw > toShadow && back > depthDraw && spot > back)
	assert.NotEmpty(t, rec.Find("ActiveTexture", gpu.Texture0+shader.UnitShadowMap))
	assert.NotEmpty(t, rec.Find("BindTexture", gpu.Texture2D, sm.Texture()))

	// The transform block ends the frame with the view camera.
	var want [ubo.Mat3x4Size]byte
	ubo.EncodeMat3x4(want[:], cam.WorldToView().Mat3x4())
	assert.Equal(t, want[:], rec.Storage(s.transform.Buffer())[:ubo.Mat3x4Size])

	s.SetSpotlight(false)
	rec.ResetCalls()
	s.Draw(cam, RenderSettings{MSAASamples: 1}, ConventionDepthFail)
	assert.Empty(t, rec.Find("BindFramebuffer", gpu.FramebufferTarget, sm.Framebuffer()))
}

func TestDrawBeforeInitIsNoop(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{})
	rec.ResetCalls()
	s.Draw(testCamera(), RenderSettings{}, ConventionDepthFail)
	s.Update(1)
	assert.Empty(t, rec.Calls)
}

func TestDestroyReleasesEverything(t *testing.T) {
	s, rec, _ := newTestScene(t, Options{Spotlight: true})
	require.NoError(t, s.Init(3, 2))
	drawFrame(t, s, rec, ConventionDepthPass)

	s.Destroy()
	s.Destroy()
	assert.Zero(t, rec.Live(""))
	assert.Empty(t, rec.DoubleFrees())

	rec.ResetCalls()
	s.Draw(testCamera(), RenderSettings{}, ConventionDepthFail)
	assert.Empty(t, rec.Calls)
}
