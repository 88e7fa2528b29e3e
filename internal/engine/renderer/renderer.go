// Package renderer presents the HDR scene target on the window: tonemapped
// through a fullscreen pass, or copied as is.
package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/gpu"
	"github.com/Faultbox/umbra/internal/engine/shader"
	"github.com/Faultbox/umbra/internal/logger"
)

// Vertices of the two fullscreen triangles generated by the screen quad
// vertex shader.
const screenQuadVertices = 6

// Programs returns linked programs.
type Programs interface {
	Program(id shader.ProgramID) uint32
}

// Source is the offscreen target being presented.
type Source interface {
	Framebuffer() uint32
	HDRTexture() uint32
	HDRTarget() gpu.Enum
	Samples() int32
	Size() (width, height int32)
}

// Renderer draws the HDR target to the default framebuffer.
type Renderer struct {
	dev      gpu.Device
	programs Programs
	// The screen quad has no attributes but core profiles still need a
	// vertex array bound to draw.
	vao *gpu.VertexArray
	log *zap.Logger
}

// New creates a renderer.
func New(dev gpu.Device, programs Programs) *Renderer {
	r := &Renderer{
		dev:      dev,
		programs: programs,
		vao:      gpu.NewVertexArray(dev),
		log:      logger.Named("renderer"),
	}
	r.log.Debug("presenter created", zap.Uint32("vao", r.vao.Name()))
	return r
}

// Present writes src to the window framebuffer of the given size. With
// tonemap set, each sample is Reinhard-tonemapped before the resolve;
// otherwise the target is blitted. Output is converted to sRGB.
func (r *Renderer) Present(src Source, width, height int32, tonemap bool) {
	dev := r.dev
	dev.BindFramebuffer(gpu.FramebufferTarget, 0)
	dev.Viewport(0, 0, width, height)
	dev.Enable(gpu.FramebufferSRGB)

	if tonemap {
		r.tonemap(src)
	} else {
		sw, sh := src.Size()
		dev.BindFramebuffer(gpu.ReadFramebuffer, src.Framebuffer())
		dev.BindFramebuffer(gpu.DrawFramebuffer, 0)
		dev.BlitFramebuffer(0, 0, sw, sh, 0, 0, width, height, gpu.ColorBufferBit, gpu.Nearest)
		dev.BindFramebuffer(gpu.FramebufferTarget, 0)
	}

	dev.Disable(gpu.FramebufferSRGB)
}

func (r *Renderer) tonemap(src Source) {
	dev := r.dev
	dev.Disable(gpu.DepthTest)
	dev.Disable(gpu.StencilTest)
	dev.Disable(gpu.Blend)
	dev.PolygonMode(gpu.FrontAndBack, gpu.Fill)

	id := shader.TonemappingSingleSample
	if src.Samples() > 1 {
		id = shader.Tonemapping
	}
	program := r.programs.Program(id)
	dev.UseProgram(program)
	if src.Samples() > 1 {
		dev.Uniform1f(dev.UniformLocation(program, "MSAA_LEVEL"), float32(src.Samples()))
	}

	dev.ActiveTexture(gpu.Texture0 + shader.UnitHDR)
	dev.BindTexture(src.HDRTarget(), src.HDRTexture())
	dev.BindSampler(shader.UnitHDR, 0)

	dev.BindVertexArray(r.vao.Name())
	dev.DrawArrays(gpu.Triangles, 0, screenQuadVertices)
	dev.BindVertexArray(0)
}

// Close releases the renderer's vertex array.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.vao.Release()
}
