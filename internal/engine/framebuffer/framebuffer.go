// Package framebuffer manages the offscreen targets the scene renders into:
// an HDR color texture, a packed depth-stencil renderbuffer and the
// spotlight shadow map.
package framebuffer

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/shadow"
	"github.com/Faultbox/umbra/internal/logger"
)

// IncompleteError reports a framebuffer that failed the completeness check.
type IncompleteError struct {
	Status gpu.Enum
	Target string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("framebuffer %s incomplete: 0x%04X", e.Target, e.Status)
}

// Targets owns the HDR framebuffer and its attachments. Configure recreates
// all of them.
type Targets struct {
	dev gpu.Device
	log *zap.Logger

	fbo          *gpu.Framebuffer
	hdr          *gpu.Texture
	depthStencil *gpu.Renderbuffer
	shadowMap    *shadow.Map

	width, height int32
	samples       int32
}

// New allocates the framebuffer name. Call Configure before rendering.
func New(dev gpu.Device) *Targets {
	return &Targets{
		dev: dev,
		log: logger.Named("framebuffer"),
		fbo: gpu.NewFramebuffer(dev),
	}
}

// Configure releases the current framebuffer and attachments and allocates
// new ones of the given size and sample count. It always recreates, even when nothing
// changed. The error is an *IncompleteError for the HDR target; the targets
// stay usable either way.
func (t *Targets) Configure(width, height, samples int32) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if samples < 1 {
		samples = 1
	}
	t.width, t.height, t.samples = width, height, samples

	if t.hdr == nil {
		t.hdr = gpu.NewTexture(t.dev)
		t.depthStencil = gpu.NewRenderbuffer(t.dev)
	} else {
		t.fbo.Reset()
		t.hdr.Reset()
		t.depthStencil.Reset()
	}

	dev := t.dev
	target := t.HDRTarget()
	dev.BindTexture(target, t.hdr.Name())
	if samples > 1 {
		dev.TexImage2DMultisample(target, samples, gpu.RGB16F, width, height, true)
	} else {
		dev.TexImage2D(target, 0, gpu.RGB16F, width, height, gpu.RGB, gpu.Float, nil)
		dev.TexParameteri(target, gpu.TextureMinFilter, int32(gpu.Linear))
		dev.TexParameteri(target, gpu.TextureMagFilter, int32(gpu.Linear))
	}
	dev.BindTexture(target, 0)

	dev.BindRenderbuffer(gpu.RenderbufferTarget, t.depthStencil.Name())
	if samples > 1 {
		dev.RenderbufferStorageMultisample(gpu.RenderbufferTarget, samples, gpu.Depth24Stencil8, width, height)
	} else {
		dev.RenderbufferStorage(gpu.RenderbufferTarget, gpu.Depth24Stencil8, width, height)
	}
	dev.BindRenderbuffer(gpu.RenderbufferTarget, 0)

	dev.BindFramebuffer(gpu.FramebufferTarget, t.fbo.Name())
	dev.FramebufferTexture2D(gpu.FramebufferTarget, gpu.ColorAttachment0, target, t.hdr.Name(), 0)
	dev.FramebufferRenderbuffer(gpu.FramebufferTarget, gpu.DepthStencilAttachment, gpu.RenderbufferTarget, t.depthStencil.Name())
	dev.DrawBuffers(gpu.ColorAttachment0)

	var errs error
	if status := dev.CheckFramebufferStatus(gpu.FramebufferTarget); status != gpu.FramebufferComplete {
		errs = &IncompleteError{Status: status, Target: "hdr"}
	}
	dev.BindFramebuffer(gpu.FramebufferTarget, 0)

	var err error
	if t.shadowMap == nil {
		t.shadowMap, err = shadow.NewMap(dev, width, height)
	} else {
		err = t.shadowMap.Resize(width, height)
	}
	errs = multierr.Append(errs, err)

	t.log.Info("render targets configured",
		zap.Int32("width", width),
		zap.Int32("height", height),
		zap.Int32("samples", samples))
	return errs
}

// Bind makes the HDR framebuffer current and sets the viewport to cover it.
func (t *Targets) Bind() {
	t.dev.BindFramebuffer(gpu.FramebufferTarget, t.fbo.Name())
	t.dev.Viewport(0, 0, t.width, t.height)
}

// Destroy releases the framebuffer and every attachment.
func (t *Targets) Destroy() {
	t.fbo.Release()
	if t.hdr != nil {
		t.hdr.Release()
		t.depthStencil.Release()
	}
	if t.shadowMap != nil {
		t.shadowMap.Release()
	}
}

// HDRTarget returns the texture target of the HDR color attachment.
func (t *Targets) HDRTarget() gpu.Enum {
	if t.samples > 1 {
		return gpu.Texture2DMultisample
	}
	return gpu.Texture2D
}

// HDRTexture returns the HDR color texture name, 0 before Configure.
func (t *Targets) HDRTexture() uint32 {
	if t.hdr == nil {
		return 0
	}
	return t.hdr.Name()
}

// DepthStencil returns the depth-stencil renderbuffer name.
func (t *Targets) DepthStencil() uint32 {
	if t.depthStencil == nil {
		return 0
	}
	return t.depthStencil.Name()
}

// Framebuffer returns the HDR framebuffer name.
func (t *Targets) Framebuffer() uint32 { return t.fbo.Name() }

// ShadowMap returns the spotlight shadow map, nil before Configure.
func (t *Targets) ShadowMap() *shadow.Map { return t.shadowMap }

// Samples returns the configured MSAA sample count; 1 means single-sampled.
func (t *Targets) Samples() int32 { return t.samples }

// Size returns the target dimensions.
func (t *Targets) Size() (width, height int32) { return t.width, t.height }
