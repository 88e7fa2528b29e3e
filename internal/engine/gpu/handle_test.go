package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/gpu/gputest"
)

func TestBindTargetsMatchGL(t *testing.T) {
	assert.Equal(t, gpu.Enum(0x8D40), gpu.FramebufferTarget)
	assert.Equal(t, gpu.Enum(0x8D41), gpu.RenderbufferTarget)
	assert.Equal(t, gpu.Enum(0x8CA8), gpu.ReadFramebuffer)
	assert.Equal(t, gpu.Enum(0x8CA9), gpu.DrawFramebuffer)
}

func TestFramebufferHandleReset(t *testing.T) {
	rec := gputest.New()
	fb := gpu.NewFramebuffer(rec)
	old := fb.Name()
	assert.True(t, fb.Valid())

	fb.Reset()
	assert.True(t, rec.Released(old))
	assert.NotEqual(t, old, fb.Name())
	assert.Equal(t, 1, rec.Live("Framebuffer"))

	fb.Release()
	fb.Release()
	assert.False(t, fb.Valid())
	assert.Zero(t, rec.Live("Framebuffer"))
	assert.Empty(t, rec.DoubleFrees())
}

func TestRenderbufferHandleReset(t *testing.T) {
	rec := gputest.New()
	rb := gpu.NewRenderbuffer(rec)
	old := rb.Name()

	rb.Reset()
	assert.True(t, rec.Released(old))
	assert.Equal(t, 1, rec.Live("Renderbuffer"))

	rb.Release()
	assert.Zero(t, rec.Live(""))
	assert.Empty(t, rec.DoubleFrees())
}
