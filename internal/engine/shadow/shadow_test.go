package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/gpu/gputest"
	"github.com/Faultbox/umbra/internal/logger"
	"github.com/Faultbox/umbra/pkg/math"
)

func TestNewMapSetsUpComparisonTexture(t *testing.T) {
	rec := gputest.New()
	sm, err := NewMap(rec, 256, 128)
	require.NoError(t, err)
	require.True(t, sm.IsValid())

	tex := sm.Texture()
	assert.NotEmpty(t, rec.Find("TexImage2D", gpu.Texture2D, int32(0), gpu.DepthComponent24, int32(256), int32(128)))
	for _, p := range [][2]any{
		{gpu.TextureMinFilter, int32(gpu.Linear)},
		{gpu.TextureWrapS, int32(gpu.ClampToEdge)},
		{gpu.TextureWrapT, int32(gpu.ClampToEdge)},
		{gpu.TextureCompareMode, int32(gpu.CompareRefToTexture)},
		{gpu.TextureCompareFunc, int32(gpu.LEqual)},
	} {
		assert.NotEmpty(t, rec.Find("TexParameteri", gpu.Texture2D, p[0], p[1]), "%v", p)
	}
	assert.Equal(t, tex, rec.Attachment(sm.Framebuffer(), gpu.DepthAttachment))
	assert.NotEmpty(t, rec.Find("DrawBuffers", []gpu.Enum{gpu.None}))
	assert.NotEmpty(t, rec.Find("ReadBuffer", gpu.None))

	w, h := sm.Size()
	assert.Equal(t, int32(256), w)
	assert.Equal(t, int32(128), h)
}

func TestNewMapReportsIncomplete(t *testing.T) {
	rec := gputest.New()
	rec.Status = gpu.FramebufferUnsupported

	core, logs := observer.New(zapcore.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	sm, err := NewMap(rec, 64, 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x8CDD")
	require.NotNil(t, sm)

	entries := logs.FilterMessage("shadow map framebuffer incomplete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, gpu.FramebufferUnsupported, entries[0].ContextMap()["status"])
	sm.Release()
	assert.Zero(t, rec.Live(""))
}

func TestResizeRecreatesTargets(t *testing.T) {
	rec := gputest.New()
	sm, err := NewMap(rec, 64, 64)
	require.NoError(t, err)
	fbo, oldTex := sm.Framebuffer(), sm.Texture()

	require.NoError(t, sm.Resize(128, 32))
	assert.NotEqual(t, fbo, sm.Framebuffer())
	assert.True(t, rec.Released(fbo))
	assert.NotEqual(t, oldTex, sm.Texture())
	assert.True(t, rec.Released(oldTex))
	assert.Equal(t, sm.Texture(), rec.Attachment(sm.Framebuffer(), gpu.DepthAttachment))
	assert.Equal(t, 1, rec.Live("Texture"))
	assert.Equal(t, 1, rec.Live("Framebuffer"))

	sm.Release()
	sm.Release()
	assert.Zero(t, rec.Live(""))
	assert.Empty(t, rec.DoubleFrees())
	assert.False(t, sm.IsValid())
}

func TestBindSetsViewportAndClears(t *testing.T) {
	rec := gputest.New()
	sm, err := NewMap(rec, 300, 200)
	require.NoError(t, err)
	rec.ResetCalls()

	sm.Bind()
	sm.BindTexture(4)

	i := rec.Index(0, "BindFramebuffer", gpu.FramebufferTarget, sm.Framebuffer())
	require.GreaterOrEqual(t, i, 0)
	assert.Greater(t, rec.Index(i, "Viewport", int32(0), int32(0), int32(300), int32(200)), i)
	assert.NotEmpty(t, rec.Find("Clear", gpu.DepthBufferBit))
	assert.NotEmpty(t, rec.Find("ActiveTexture", gpu.Texture0+4))
	assert.NotEmpty(t, rec.Find("BindTexture", gpu.Texture2D, sm.Texture()))
}

func TestLightCameraLooksAtTarget(t *testing.T) {
	proj := math.Perspective(math.Radians(60), 1.5, 0.1, 100)
	eye := math.Vec3{X: 2, Y: 6, Z: 1}

	light := NewLightCamera(eye, math.Vec3{}, proj, 0.1, 100)

	pos := light.Position()
	assert.InDelta(t, 2, pos.X, 1e-4)
	assert.InDelta(t, 6, pos.Y, 1e-4)
	assert.InDelta(t, 1, pos.Z, 1e-4)

	// The target lies on the view -Z axis.
	target := light.WorldToView().TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, target.X, 1e-4)
	assert.InDelta(t, 0, target.Y, 1e-4)
	assert.InDelta(t, -eye.Length(), target.Z, 1e-4)

	assert.Equal(t, proj, light.Projection())
	assert.Equal(t, float32(0.1), light.Near())
	assert.Equal(t, float32(100), light.Far())
}

func TestLightViewVerticalDirection(t *testing.T) {
	v := LightView(math.Vec3{Y: 10}, math.Vec3{})
	for _, x := range v {
		assert.False(t, math32.IsNaN(x), "NaN in light view")
	}
	p := v.TransformPoint(math.Vec3{})
	assert.InDelta(t, -10, p.Z, 1e-4)
}

func TestViewProjection(t *testing.T) {
	proj := math.Perspective(math.Radians(90), 1, 1, 50)
	light := NewLightCamera(math.Vec3{Z: 5}, math.Vec3{}, proj, 1, 50)

	// The origin projects to the center of the map.
	c := light.ViewProjection().TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)
	assert.Greater(t, c.Z, float32(-1))
	assert.Less(t, c.Z, float32(1))
}
