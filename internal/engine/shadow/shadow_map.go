// Package shadow provides the spotlight shadow map: a depth-only render
// target and the light-space camera that renders into it.
package shadow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/logger"
)

// Map is a depth texture attached to a depth-only framebuffer. The texture
// is set up for sampler2DShadow comparison lookups.
type Map struct {
	dev   gpu.Device
	log   *zap.Logger
	fbo   *gpu.Framebuffer
	depth *gpu.Texture

	width, height int32
}

// NewMap creates a shadow map of the given size. The returned map is never
// nil; on an incomplete framebuffer the error carries the GL status.
func NewMap(dev gpu.Device, width, height int32) (*Map, error) {
	sm := &Map{
		dev:   dev,
		log:   logger.Named("shadow"),
		fbo:   gpu.NewFramebuffer(dev),
		depth: gpu.NewTexture(dev),
	}
	return sm, sm.allocate(width, height)
}

func (sm *Map) allocate(width, height int32) error {
	dev := sm.dev
	sm.width, sm.height = width, height

	dev.BindTexture(gpu.Texture2D, sm.depth.Name())
	dev.TexImage2D(gpu.Texture2D, 0, gpu.DepthComponent24, width, height, gpu.DepthComponent, gpu.Float, nil)
	dev.TexParameteri(gpu.Texture2D, gpu.TextureMinFilter, int32(gpu.Linear))
	dev.TexParameteri(gpu.Texture2D, gpu.TextureMagFilter, int32(gpu.Linear))
	dev.TexParameteri(gpu.Texture2D, gpu.TextureWrapS, int32(gpu.ClampToEdge))
	dev.TexParameteri(gpu.Texture2D, gpu.TextureWrapT, int32(gpu.ClampToEdge))
	dev.TexParameteri(gpu.Texture2D, gpu.TextureCompareMode, int32(gpu.CompareRefToTexture))
	dev.TexParameteri(gpu.Texture2D, gpu.TextureCompareFunc, int32(gpu.LEqual))
	dev.BindTexture(gpu.Texture2D, 0)

	dev.BindFramebuffer(gpu.FramebufferTarget, sm.fbo.Name())
	dev.FramebufferTexture2D(gpu.FramebufferTarget, gpu.DepthAttachment, gpu.Texture2D, sm.depth.Name(), 0)
	// No color buffer for the depth pass.
	dev.DrawBuffers(gpu.None)
	dev.ReadBuffer(gpu.None)

	status := dev.CheckFramebufferStatus(gpu.FramebufferTarget)
	dev.BindFramebuffer(gpu.FramebufferTarget, 0)
	if status != gpu.FramebufferComplete {
		sm.log.Warn("shadow map framebuffer incomplete",
			zap.Uint32("status", status),
			zap.Int32("width", width),
			zap.Int32("height", height))
		return fmt.Errorf("shadow map framebuffer incomplete: 0x%04X", status)
	}
	return nil
}

// Resize replaces the framebuffer and the depth texture with new ones of the
// given size.
func (sm *Map) Resize(width, height int32) error {
	sm.fbo.Reset()
	sm.depth.Reset()
	return sm.allocate(width, height)
}

// Bind makes the shadow map the render target, sets the viewport to its
// size and clears depth.
func (sm *Map) Bind() {
	sm.dev.BindFramebuffer(gpu.FramebufferTarget, sm.fbo.Name())
	sm.dev.Viewport(0, 0, sm.width, sm.height)
	sm.dev.Clear(gpu.DepthBufferBit)
}

// BindTexture binds the depth texture to texture unit.
func (sm *Map) BindTexture(unit uint32) {
	sm.dev.ActiveTexture(gpu.Texture0 + unit)
	sm.dev.BindTexture(gpu.Texture2D, sm.depth.Name())
}

// Texture returns the depth texture name.
func (sm *Map) Texture() uint32 { return sm.depth.Name() }

// Framebuffer returns the framebuffer name.
func (sm *Map) Framebuffer() uint32 { return sm.fbo.Name() }

// Size returns the map dimensions.
func (sm *Map) Size() (width, height int32) { return sm.width, sm.height }

// Release deletes the framebuffer and the depth texture.
func (sm *Map) Release() {
	sm.fbo.Release()
	sm.depth.Release()
}

// IsValid returns true while the map owns its GPU objects.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.fbo.Valid() && sm.depth.Valid()
}
