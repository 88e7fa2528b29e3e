package framebuffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/gpu/gputest"
)

func TestConfigureSingleSample(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	require.NoError(t, tg.Configure(640, 480, 1))

	assert.Equal(t, gpu.Texture2D, tg.HDRTarget())
	assert.NotEmpty(t, rec.Find("TexImage2D", gpu.Texture2D, int32(0), gpu.RGB16F, int32(640), int32(480)))
	assert.NotEmpty(t, rec.Find("TexParameteri", gpu.Texture2D, gpu.TextureMinFilter, int32(gpu.Linear)))
	assert.NotEmpty(t, rec.Find("RenderbufferStorage", gpu.RenderbufferTarget, gpu.Depth24Stencil8, int32(640), int32(480)))
	assert.Empty(t, rec.Find("TexImage2DMultisample"))

	assert.Equal(t, tg.HDRTexture(), rec.Attachment(tg.Framebuffer(), gpu.ColorAttachment0))
	assert.Equal(t, tg.DepthStencil(), rec.Attachment(tg.Framebuffer(), gpu.DepthStencilAttachment))
	assert.NotEmpty(t, rec.Find("DrawBuffers", []gpu.Enum{gpu.ColorAttachment0}))

	w, h := tg.ShadowMap().Size()
	assert.Equal(t, int32(640), w)
	assert.Equal(t, int32(480), h)
}

func TestConfigureMultisample(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	require.NoError(t, tg.Configure(800, 600, 4))

	assert.Equal(t, int32(4), tg.Samples())
	assert.Equal(t, gpu.Texture2DMultisample, tg.HDRTarget())
	assert.NotEmpty(t, rec.Find("TexImage2DMultisample", gpu.Texture2DMultisample, int32(4), gpu.RGB16F, int32(800), int32(600), true))
	assert.NotEmpty(t, rec.Find("RenderbufferStorageMultisample", gpu.RenderbufferTarget, int32(4), gpu.Depth24Stencil8))
	assert.NotEmpty(t, rec.Find("FramebufferTexture2D", gpu.FramebufferTarget, gpu.ColorAttachment0, gpu.Texture2DMultisample))
}

func TestReconfigureReleasesPreviousTargets(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)

	require.NoError(t, tg.Configure(320, 240, 1))
	fbo, shadowFBO := tg.Framebuffer(), tg.ShadowMap().Framebuffer()
	hdr, ds, depth := tg.HDRTexture(), tg.DepthStencil(), tg.ShadowMap().Texture()
	live := rec.Live("")

	require.NoError(t, tg.Configure(320, 240, 1))
	assert.True(t, rec.Released(fbo))
	assert.True(t, rec.Released(shadowFBO))
	assert.True(t, rec.Released(hdr))
	assert.True(t, rec.Released(ds))
	assert.True(t, rec.Released(depth))
	assert.NotEqual(t, hdr, tg.HDRTexture())
	assert.NotEqual(t, fbo, tg.Framebuffer())
	assert.Equal(t, tg.HDRTexture(), rec.Attachment(tg.Framebuffer(), gpu.ColorAttachment0))
	assert.Equal(t, tg.DepthStencil(), rec.Attachment(tg.Framebuffer(), gpu.DepthStencilAttachment))
	assert.Equal(t, live, rec.Live(""), "no objects leaked")
	assert.Empty(t, rec.DoubleFrees())
}

func TestToggleMSAAKeepsObjectCount(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	require.NoError(t, tg.Configure(100, 100, 1))
	live := rec.Live("")

	require.NoError(t, tg.Configure(100, 100, 8))
	require.NoError(t, tg.Configure(200, 50, 1))
	assert.Equal(t, live, rec.Live(""))
	assert.Equal(t, 2, rec.Live("Framebuffer"), "HDR and shadow framebuffers")
}

func TestConfigureIncomplete(t *testing.T) {
	rec := gputest.New()
	rec.Status = gpu.FramebufferIncompleteMultisample
	tg := New(rec)

	err := tg.Configure(64, 64, 4)
	require.Error(t, err)
	var inc *IncompleteError
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, gpu.FramebufferIncompleteMultisample, inc.Status)
	assert.Equal(t, "hdr", inc.Target)
	assert.Contains(t, err.Error(), "0x8D56")

	// Still usable.
	tg.Bind()
	assert.NotEmpty(t, rec.Find("Viewport", int32(0), int32(0), int32(64), int32(64)))
}

func TestConfigureClampsParameters(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	require.NoError(t, tg.Configure(0, -5, 0))

	w, h := tg.Size()
	assert.Equal(t, int32(1), w)
	assert.Equal(t, int32(1), h)
	assert.Equal(t, int32(1), tg.Samples())
}

func TestDestroyReleasesEverything(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	require.NoError(t, tg.Configure(32, 32, 2))

	tg.Destroy()
	tg.Destroy()
	assert.Zero(t, rec.Live(""))
	assert.Empty(t, rec.DoubleFrees())
}

func TestDestroyBeforeConfigure(t *testing.T) {
	rec := gputest.New()
	tg := New(rec)
	tg.Destroy()
	assert.Zero(t, rec.Live(""))
	assert.Zero(t, tg.HDRTexture())
	assert.Nil(t, tg.ShadowMap())
}
